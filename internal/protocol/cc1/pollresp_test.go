package cc1

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakePollResponseCoercesRanges(t *testing.T) {
	p := MakePollResponse(1, 2, 99, 250, 250, 99, false, false, false)
	assert.Equal(t, byte(50), p.RelHumidity())
	assert.Equal(t, byte(199), p.PipeTemp())
	assert.Equal(t, byte(199), p.RoomTemp())
	assert.Equal(t, byte(62), p.AmbientLight())

	low := MakePollResponse(1, 2, 0, 0, 0, 0, true, true, true)
	assert.Equal(t, byte(0), low.RelHumidity())
	assert.Equal(t, byte(0), low.PipeTemp())
	assert.Equal(t, byte(0), low.RoomTemp())
	assert.Equal(t, byte(1), low.AmbientLight(), "ambient light of 0 is reserved")
	assert.True(t, low.SwitchToggled())
	assert.True(t, low.WindowOpen())
	assert.True(t, low.Syncing())
}

func TestPollResponseEncode(t *testing.T) {
	p := MakePollResponse(1, 2, 30, 40, 80, 20, true, false, true)
	buf := make([]byte, FrameLen)
	n := p.Encode(buf, true)
	require.Equal(t, FrameLen, n)
	// byte3 = s<<6 | rh+1, byte4 = tp+1, byte5 = tr+1, byte6 = sy<<7 | al<<1.
	assert.Equal(t, []byte{'*', 1, 2, 0x5F, 41, 81, 0xA8, 0x78}, buf)
}

func TestPollResponseRoundTrip(t *testing.T) {
	p := MakePollResponse(1, 2, 30, 40, 80, 20, true, false, true)
	buf := make([]byte, FrameLen)
	require.Equal(t, FrameLen, p.Encode(buf, true))

	got, n := DecodePollResponse(buf)
	require.Equal(t, FrameLen, n)
	assert.True(t, got.IsValid())
	assert.Equal(t, byte(1), got.HC1())
	assert.Equal(t, byte(2), got.HC2())
	assert.Equal(t, byte(30), got.RelHumidity())
	assert.Equal(t, byte(40), got.PipeTemp())
	assert.Equal(t, byte(80), got.RoomTemp())
	assert.Equal(t, byte(20), got.AmbientLight())
	assert.True(t, got.SwitchToggled())
	assert.False(t, got.WindowOpen())
	assert.True(t, got.Syncing())
}

func TestPollResponseRoundTripFlagCombinations(t *testing.T) {
	buf := make([]byte, FrameLen)
	for _, s := range []bool{false, true} {
		for _, w := range []bool{false, true} {
			for _, sy := range []bool{false, true} {
				p := MakePollResponse(7, 8, 25, 100, 150, 31, s, w, sy)
				require.Equal(t, FrameLen, p.Encode(buf, true))
				got, n := DecodePollResponse(buf)
				require.Equal(t, FrameLen, n)
				assert.Equal(t, p, got)
			}
		}
	}
}

func TestPollResponseDecodeRejections(t *testing.T) {
	valid := []byte{'*', 1, 2, 0x5F, 41, 81, 0xA8, 0x78}

	cases := []struct {
		name   string
		mutate func(b []byte) []byte
	}{
		{"short buffer", func(b []byte) []byte { return b[:BodyLen] }},
		{"wrong frame type", func(b []byte) []byte { b[0] = '!'; return b }},
		{"rh raw zero", func(b []byte) []byte { b[3] &^= 0x3F; return b }},
		{"rh out of range", func(b []byte) []byte { b[3] = (b[3] & 0xC0) | 52; return b }},
		{"tp raw byte zero", func(b []byte) []byte { b[4] = 0; return b }},
		{"tp out of range", func(b []byte) []byte { b[4] = 201; return b }},
		{"tr raw byte zero", func(b []byte) []byte { b[5] = 0; return b }},
		{"tr out of range", func(b []byte) []byte { b[5] = 201; return b }},
		{"al zero", func(b []byte) []byte { b[6] &^= 0x7E; return b }},
		{"al reserved 63", func(b []byte) []byte { b[6] |= 0x7E; return b }},
		{"corrupt crc", func(b []byte) []byte { b[7] ^= 0x20; return b }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			buf := tc.mutate(append([]byte(nil), valid...))
			got, n := DecodePollResponse(buf)
			assert.Equal(t, 0, n)
			assert.False(t, got.IsValid(), "rejected decode must leave the instance invalid")
		})
	}
}

func TestPollResponseSingleBitCorruption(t *testing.T) {
	valid := []byte{'*', 1, 2, 0x5F, 41, 81, 0xA8, 0x78}
	for i := 0; i < BodyLen; i++ {
		for bit := uint(0); bit < 8; bit++ {
			buf := append([]byte(nil), valid...)
			buf[i] ^= 1 << bit
			_, n := DecodePollResponse(buf)
			assert.Equal(t, 0, n, "byte %d bit %d", i, bit)
		}
	}
}

func TestPollResponseEncodeBufferTooSmall(t *testing.T) {
	p := MakePollResponse(1, 2, 30, 40, 80, 20, true, false, true)
	assert.Equal(t, 0, p.Encode(make([]byte, BodyLen), true))
	assert.Equal(t, 0, p.Encode(make([]byte, BodyLen-1), false))
	assert.Equal(t, 0, p.Encode(nil, true))
}
