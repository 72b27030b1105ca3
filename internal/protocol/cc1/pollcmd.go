package cc1

// PollAndCommand is sent by the hub to a relay, both to solicit a
// PollResponse and to carry the current command state:
//
//   - rad-open-percent  rp [0,100]  percent open to set the rad valve
//   - light-colour      lc [0,3]    bit flags, 1=red 2=green, 0 stops all
//   - light-on-time     lt [1,15]   30-450s in units of 30s, 0 not allowed
//   - light-flash       lf [1,3]    1=single 2=double 3=on, 0 not allowed
//
// Wire layout: '?' hc1 hc2 1+rp lf|lt|lc 1 1 crc
//
// The +1 offset on rp keeps that byte non-zero on the wire. Protocol
// convention: sent at least every 15m, generally at most every 30s; after
// ~30m without one a relay may enter fallback mode. The value is immutable
// once constructed.
type PollAndCommand struct {
	houseCode
	rp byte
	lc byte
	lt byte
	lf byte
}

// MakePollAndCommand builds a PollAndCommand, coercing each command field
// into its legal range. House code bytes pass through; check IsValid.
func MakePollAndCommand(hc1, hc2, rp, lc, lt, lf byte) PollAndCommand {
	return PollAndCommand{
		houseCode: houseCode{hc1: hc1, hc2: hc2},
		rp:        clamp(rp, 0, 100),
		lc:        lc & 3,
		lt:        clamp(lt, 1, 15),
		lf:        clamp(lf, 1, 3),
	}
}

// IsValid reports whether the instance carries a valid house code.
func (p PollAndCommand) IsValid() bool { return p.HouseCodeIsValid() }

// RadOpenPercent returns the valve open percentage [0,100].
func (p PollAndCommand) RadOpenPercent() byte { return p.rp }

// LightColour returns the LED colour bit flags [0,3].
func (p PollAndCommand) LightColour() byte { return p.lc }

// LightOnTime returns the light on-time field [1,15].
func (p PollAndCommand) LightOnTime() byte { return p.lt }

// LightFlash returns the light flash mode [1,3].
func (p PollAndCommand) LightFlash() byte { return p.lf }

// Encode writes the poll/command into buf, appending the CRC when
// includeCRC is set. Returns the number of bytes written (7 or 8), or 0 if
// the buffer is too small.
func (p PollAndCommand) Encode(buf []byte, includeCRC bool) int {
	if !encodeArgsSane(buf, includeCRC) {
		return 0
	}
	buf[0] = FrameTypePollAndCommand
	buf[1] = p.hc1
	buf[2] = p.hc2
	buf[3] = p.rp + 1
	buf[4] = (p.lf << 6) | ((p.lt << 2) & 0x3C) | (p.lc & 3)
	buf[5] = 1
	buf[6] = 1
	if !includeCRC {
		return BodyLen
	}
	buf[7] = ComputeCRC(buf)
	return FrameLen
}

// Decode reads a poll/command frame, including CRC verification, into the
// receiver. Any field outside its legal range rejects the whole frame.
// Returns the number of bytes read (8), or 0 on any rejection, in which
// case the receiver is left forced-invalid.
func (p *PollAndCommand) Decode(buf []byte) int {
	p.forceInvalid()
	if !decodeArgsSane(buf) {
		return 0
	}
	if buf[0] != FrameTypePollAndCommand {
		return 0
	}
	if buf[5] != 1 {
		return 0
	}
	// A raw byte of 0 wraps to 255 here and is caught by the range check.
	rp := buf[3] - 1
	if rp >= 101 {
		return 0
	}
	lc := buf[4] & 3
	lt := (buf[4] >> 2) & 0xF
	if lt == 0 {
		return 0
	}
	lf := (buf[4] >> 6) & 3
	if lf == 0 {
		return 0
	}
	if ComputeCRC(buf) != buf[7] {
		return 0
	}
	staged := PollAndCommand{
		houseCode: houseCode{hc1: buf[1], hc2: buf[2]},
		rp:        rp,
		lc:        lc,
		lt:        lt,
		lf:        lf,
	}
	*p = staged
	return FrameLen
}

// DecodePollAndCommand decodes buf as a poll/command frame. On failure the
// returned count is 0 and the message is the invalid sentinel.
func DecodePollAndCommand(buf []byte) (PollAndCommand, int) {
	var p PollAndCommand
	n := p.Decode(buf)
	return p, n
}
