package cc1

// PollResponse is sent by a relay within ~10s of a poll/command, carrying
// its telemetry and state:
//
//   - relative-humidity  rh [0,50]   0-100% in 2% steps
//   - pipe temperature   tp [0,199]  DS18B20, 0.000-99.999C in 1/2 C steps
//   - room temperature   tr [0,199]  0.000-49.999C in 1/4 C steps
//   - ambient light      al [1,62]   no units, dark to light
//   - window             w           false=closed, true=open
//   - switch             s           activation toggle for async polls
//   - syncing            sy          true while (re)syncing to the valve
//
// Wire layout: '*' hc1 hc2 w|s|1+rh 1+tp 1+tr sy|al|0 crc
//
// In this revision tr is carried in a single byte; values above 199 are not
// representable and are clamped by the factory before encoding. The value
// is immutable once constructed.
type PollResponse struct {
	houseCode
	rh byte
	tp byte
	tr byte
	al byte
	w  bool
	s  bool
	sy bool
}

// MakePollResponse builds a PollResponse, coercing each numeric field into
// its legal range; booleans pass through. Check IsValid.
func MakePollResponse(hc1, hc2, rh, tp, tr, al byte, s, w, sy bool) PollResponse {
	return PollResponse{
		houseCode: houseCode{hc1: hc1, hc2: hc2},
		rh:        clamp(rh, 0, 50),
		tp:        clamp(tp, 0, 199),
		tr:        clamp(tr, 0, 199),
		al:        clamp(al, 1, 62),
		s:         s,
		w:         w,
		sy:        sy,
	}
}

// IsValid reports whether the instance carries a valid house code.
func (p PollResponse) IsValid() bool { return p.HouseCodeIsValid() }

// RelHumidity returns relative humidity [0,50], in 2% steps.
func (p PollResponse) RelHumidity() byte { return p.rh }

// PipeTemp returns the pipe temperature reading [0,199].
func (p PollResponse) PipeTemp() byte { return p.tp }

// RoomTemp returns the room temperature reading [0,199].
func (p PollResponse) RoomTemp() byte { return p.tr }

// AmbientLight returns the ambient light level [1,62].
func (p PollResponse) AmbientLight() byte { return p.al }

// WindowOpen reports the window sensor state.
func (p PollResponse) WindowOpen() bool { return p.w }

// SwitchToggled reports the activation toggle state.
func (p PollResponse) SwitchToggled() bool { return p.s }

// Syncing reports whether the relay is (re)syncing to its valve.
func (p PollResponse) Syncing() bool { return p.sy }

// Encode writes the poll response into buf, appending the CRC when
// includeCRC is set. Returns the number of bytes written (7 or 8), or 0 if
// the buffer is too small.
func (p PollResponse) Encode(buf []byte, includeCRC bool) int {
	if !encodeArgsSane(buf, includeCRC) {
		return 0
	}
	buf[0] = FrameTypePollResponse
	buf[1] = p.hc1
	buf[2] = p.hc2
	buf[3] = p.rh + 1
	if p.w {
		buf[3] |= 0x80
	}
	if p.s {
		buf[3] |= 0x40
	}
	buf[4] = p.tp + 1
	buf[5] = p.tr + 1
	buf[6] = p.al << 1
	if p.sy {
		buf[6] |= 0x80
	}
	if !includeCRC {
		return BodyLen
	}
	buf[7] = ComputeCRC(buf)
	return FrameLen
}

// Decode reads a poll response frame, including CRC verification, into the
// receiver. Any field outside its legal range rejects the whole frame.
// Returns the number of bytes read (8), or 0 on any rejection, in which
// case the receiver is left forced-invalid.
func (p *PollResponse) Decode(buf []byte) int {
	p.forceInvalid()
	if !decodeArgsSane(buf) {
		return 0
	}
	if buf[0] != FrameTypePollResponse {
		return 0
	}
	rh := buf[3] & 0x3F
	if rh == 0 || rh > 51 {
		return 0
	}
	w := buf[3]&0x80 != 0
	s := buf[3]&0x40 != 0
	// Raw temperature bytes of 0 wrap to 255 and fail the range checks.
	tp := buf[4] - 1
	if tp >= 200 {
		return 0
	}
	tr := buf[5] - 1
	if tr >= 200 {
		return 0
	}
	al := (buf[6] >> 1) & 0x3F
	if al == 0 || al == 0x3F {
		return 0
	}
	sy := buf[6]&0x80 != 0
	if ComputeCRC(buf) != buf[7] {
		return 0
	}
	staged := PollResponse{
		houseCode: houseCode{hc1: buf[1], hc2: buf[2]},
		rh:        rh - 1,
		tp:        tp,
		tr:        tr,
		al:        al,
		w:         w,
		s:         s,
		sy:        sy,
	}
	*p = staged
	return FrameLen
}

// DecodePollResponse decodes buf as a poll response frame. On failure the
// returned count is 0 and the message is the invalid sentinel.
func DecodePollResponse(buf []byte) (PollResponse, int) {
	var p PollResponse
	n := p.Decode(buf)
	return p, n
}
