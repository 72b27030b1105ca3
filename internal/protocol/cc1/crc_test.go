package cc1

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeCRCDeterministic(t *testing.T) {
	buf := []byte{FrameTypeAlert, 12, 34, 1, 1, 1, 1}
	first := ComputeCRC(buf)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, ComputeCRC(buf))
	}
}

func TestComputeCRCShortBuffer(t *testing.T) {
	assert.Equal(t, byte(0), ComputeCRC(nil))
	assert.Equal(t, byte(0), ComputeCRC([]byte{FrameTypeAlert, 1, 2, 3, 4, 5}))
}

func TestComputeCRCZeroTypeByte(t *testing.T) {
	// A zero leading byte is always a protocol violation.
	assert.Equal(t, byte(0), ComputeCRC([]byte{0, 12, 34, 1, 1, 1, 1}))
}

func TestComputeCRCNeverZeroAndSevenBit(t *testing.T) {
	tags := []byte{FrameTypeAlert, FrameTypePollAndCommand, FrameTypePollResponse}
	for _, tag := range tags {
		for b := 0; b < 256; b++ {
			buf := []byte{tag, byte(b), byte(255 - b), byte(b), 1, 1, byte(b)}
			crc := ComputeCRC(buf)
			assert.NotEqual(t, byte(0), crc, "tag 0x%02X body byte %d", tag, b)
			assert.LessOrEqual(t, crc, byte(0x7F))
		}
	}
}

func TestComputeCRCSensitiveToEveryByte(t *testing.T) {
	base := []byte{FrameTypePollResponse, 1, 2, 0x5F, 41, 81, 0xA8}
	want := ComputeCRC(base)
	for i := 1; i < BodyLen; i++ {
		mutated := append([]byte(nil), base...)
		mutated[i] ^= 0x01
		assert.NotEqual(t, want, ComputeCRC(mutated), "byte %d", i)
	}
}
