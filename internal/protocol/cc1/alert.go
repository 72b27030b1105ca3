package cc1

// Alert is sent asynchronously by a relay to flag a condition needing hub
// attention. It carries only the house code; the four extension bytes are
// reserved and always 1 on the wire.
//
// Wire layout: '!' hc1 hc2 1 1 1 1 crc
//
// Protocol convention (not enforced here): sent no more often than roughly
// every 30s. The value is immutable once constructed.
type Alert struct {
	houseCode
}

// MakeAlert builds an Alert for the given house code. Check IsValid on the
// result: 0xFF house code bytes are representable but invalid.
func MakeAlert(hc1, hc2 byte) Alert {
	return Alert{houseCode{hc1: hc1, hc2: hc2}}
}

// IsValid reports whether the instance carries a valid house code.
func (a Alert) IsValid() bool { return a.HouseCodeIsValid() }

// Encode writes the alert into buf, appending the CRC when includeCRC is
// set. Returns the number of bytes written (7 or 8), or 0 if the buffer is
// too small.
func (a Alert) Encode(buf []byte, includeCRC bool) int {
	if !encodeArgsSane(buf, includeCRC) {
		return 0
	}
	buf[0] = FrameTypeAlert
	buf[1] = a.hc1
	buf[2] = a.hc2
	buf[3] = 1
	buf[4] = 1
	buf[5] = 1
	buf[6] = 1
	if !includeCRC {
		return BodyLen
	}
	buf[7] = ComputeCRC(buf)
	return FrameLen
}

// Decode reads an alert frame, including CRC verification, into the
// receiver. Returns the number of bytes read (8), or 0 on any rejection,
// in which case the receiver is left forced-invalid.
func (a *Alert) Decode(buf []byte) int {
	a.forceInvalid()
	if !decodeArgsSane(buf) {
		return 0
	}
	if buf[0] != FrameTypeAlert {
		return 0
	}
	// Cheap structural check on the first extension byte before paying for
	// the CRC.
	if buf[3] != 1 {
		return 0
	}
	if ComputeCRC(buf) != buf[7] {
		return 0
	}
	staged := MakeAlert(buf[1], buf[2])
	*a = staged
	return FrameLen
}

// DecodeAlert decodes buf as an alert frame. On failure the returned count
// is 0 and the message is the invalid sentinel.
func DecodeAlert(buf []byte) (Alert, int) {
	var a Alert
	n := a.Decode(buf)
	return a, n
}
