// Package cc1 implements the framing codec for the CC1 hub/relay radio
// protocol used on the heating control link.
//
// Every message is a fixed 7-byte body (leading frame-type byte, two-byte
// house code, four payload/extension bytes) followed by a 7-bit CRC byte.
// Most on-wire values are whitened so that they are never 0x00 or 0xFF,
// which the radio carrier treats specially.
//
// Construction via the Make* factories coerces out-of-range values into the
// legal range; Decode never coerces and rejects the whole frame on any
// out-of-range field. The codec does not select a decoder for an inbound
// buffer — the calling layer reads the leading byte and picks one.
package cc1

// Frame type tags. A secure variant would OR the tag with 0x80; not
// implemented here.
const (
	FrameTypeAlert          byte = '!' // 0x21
	FrameTypePollAndCommand byte = '?' // 0x3F
	FrameTypePollResponse   byte = '*' // 0x2A
)

// BodyLen is the frame length including the leading type byte but excluding
// the trailing CRC. The CRC7/0x5B is most effective at no more than 7 bytes.
const BodyLen = 7

// FrameLen is the full on-wire frame length including the CRC byte.
const FrameLen = BodyLen + 1

// invalidHouseCode is the sentinel for an unset/invalid house code byte.
const invalidHouseCode byte = 0xFF

// Kind identifies which message variant a frame carries.
type Kind int

const (
	KindUnknown Kind = iota
	KindAlert
	KindPollAndCommand
	KindPollResponse
)

func (k Kind) String() string {
	switch k {
	case KindAlert:
		return "alert"
	case KindPollAndCommand:
		return "poll_and_command"
	case KindPollResponse:
		return "poll_response"
	default:
		return "unknown"
	}
}

// FrameKind classifies a frame by its leading type byte. It performs no
// validation beyond the tag itself.
func FrameKind(typeByte byte) Kind {
	switch typeByte {
	case FrameTypeAlert:
		return KindAlert
	case FrameTypePollAndCommand:
		return KindPollAndCommand
	case FrameTypePollResponse:
		return KindPollResponse
	default:
		return KindUnknown
	}
}

// houseCode holds the two-byte relay identifier common to all message
// variants. Each byte is normally in [0,99]; anything other than 0xFF can
// be considered valid.
type houseCode struct {
	hc1, hc2 byte
}

// HC1 returns house code byte 1; any non-0xFF value is potentially valid.
func (h houseCode) HC1() byte { return h.hc1 }

// HC2 returns house code byte 2; any non-0xFF value is potentially valid.
func (h houseCode) HC2() byte { return h.hc2 }

// HouseCodeIsValid reports whether neither house code byte is the 0xFF
// sentinel.
func (h houseCode) HouseCodeIsValid() bool {
	return h.hc1 != invalidHouseCode && h.hc2 != invalidHouseCode
}

// forceInvalid marks the instance invalid. Setting hc1 alone is enough for
// HouseCodeIsValid to fail.
func (h *houseCode) forceInvalid() { h.hc1 = invalidHouseCode }

// encodeArgsSane checks the encode buffer preconditions: at least the body
// must fit, plus the CRC byte when one is requested.
func encodeArgsSane(buf []byte, includeCRC bool) bool {
	if buf == nil {
		return false
	}
	if includeCRC {
		return len(buf) >= FrameLen
	}
	return len(buf) >= BodyLen
}

// decodeArgsSane checks the decode buffer preconditions. Decode always
// verifies the trailing CRC, so a full frame must be present.
func decodeArgsSane(buf []byte) bool {
	return buf != nil && len(buf) >= FrameLen
}

func clamp(v, lo, hi byte) byte {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
