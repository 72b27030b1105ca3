package cc1

// 7-bit CRC, polynomial 0x5B (1011011, Koopman) =
// (x+1)(x^6 + x^5 + x^3 + x^2 + 1) = 0x37 (0110111, Normal).
// Detects all 3-bit errors in up to 7 bytes of payload, which is why the
// frame body is capped at 7 bytes.

// crcNonZeroAlt replaces a computed CRC of zero, since zero is reserved to
// mean "no checksum / invalid" on this link.
const crcNonZeroAlt byte = 0x40

// crc7Update folds one byte into a running CRC7/0x5B value. The result
// always has the top bit clear.
func crc7Update(crc, datum byte) byte {
	for i := byte(0x80); i != 0; i >>= 1 {
		bit := crc&0x40 != 0
		if datum&i != 0 {
			bit = !bit
		}
		crc <<= 1
		if bit {
			crc ^= 0x37
		}
	}
	return crc & 0x7F
}

// ComputeCRC computes the non-zero CRC over the fixed 7-byte frame body,
// for encode or decode. The running value is seeded with the type byte
// itself rather than a separate constant, and the result is not inverted;
// the fixed message length makes that safe.
//
// Returns 0 (invalid) if the buffer is shorter than the body or the type
// byte is zero, which is always a protocol violation. A computed value of
// zero is replaced with a fixed non-zero alternate so the wire byte is
// never 0x00.
func ComputeCRC(buf []byte) byte {
	if len(buf) < BodyLen {
		return 0
	}
	crc := buf[0]
	if crc == 0 {
		return 0
	}
	for i := 1; i < BodyLen; i++ {
		crc = crc7Update(crc, buf[i])
	}
	if crc == 0 {
		return crcNonZeroAlt
	}
	return crc
}
