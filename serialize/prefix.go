// Package serialize implements the canonical byte codec of spec.md §4.2: a
// prefix-coded grammar shared by atoms and pairs, decoded with a one-pass
// state machine over an explicit parse stack (ParseValue/Cons), the same
// "stack of pending work, not Go call-stack recursion" shape
// gongfarmer-ntap/encoding/atom/binary.go uses for its own length-prefixed
// binary container format (its containerStack Push/Pop/PopCompleted is the
// direct ancestor of the opStack/valueStack pair used throughout this
// package).
package serialize

import "github.com/clvmgo/clvm/clvmerr"

const (
	pairMarker    = 0xFF
	backrefMarker = 0xFE
)

// PairMarker and BackrefMarker are exported for the backref package, which
// extends this grammar with a back-reference branch of its own.
const (
	PairMarker    = pairMarker
	BackrefMarker = backrefMarker
)

// DecodeAtomPrefix is the exported form of decodeAtomPrefix, for the
// backref decoder, which shares this grammar but adds a 0xFE branch of its
// own before falling back to it.
func DecodeAtomPrefix(data []byte, pos int) (payloadStart, length, consumed int, err error) {
	dec, consumed, err := decodeAtomPrefix(data, pos)
	return dec.payloadStart, dec.length, consumed, err
}

// encodeAtomPrefix appends to out the length prefix (not the payload) for
// an atom of the given length, marker bits included, per spec.md §4.2's
// six-way grammar.
func encodeAtomPrefix(out []byte, length int) ([]byte, error) {
	switch {
	case length == 0:
		return append(out, 0x80), nil
	case length < 0x40:
		return append(out, 0x80|byte(length)), nil
	case length < 0x2000:
		return append(out, 0xC0|byte(length>>8), byte(length)), nil
	case length < 0x10_0000:
		return append(out, 0xE0|byte(length>>16), byte(length>>8), byte(length)), nil
	case length < 0x800_0000:
		return append(out, 0xF0|byte(length>>24), byte(length>>16), byte(length>>8), byte(length)), nil
	case length < 0x4_0000_0000:
		return append(out,
			0xF8|byte(length>>32),
			byte(length>>24), byte(length>>16), byte(length>>8), byte(length),
		), nil
	default:
		return nil, clvmerr.ErrAtomTooBig
	}
}

// AtomPrefixLen returns the number of prefix bytes (not counting the
// payload) a length-byte atom needs, per the same six-way grammar as
// encodeAtomPrefix. Exported for objcache's serialized-length folder, which
// needs the prefix size without an actual byte slice to encode.
func AtomPrefixLen(length int) (int, error) {
	switch {
	case length == 0, length < 0x40:
		return 1, nil
	case length < 0x2000:
		return 2, nil
	case length < 0x10_0000:
		return 3, nil
	case length < 0x800_0000:
		return 4, nil
	case length < 0x4_0000_0000:
		return 5, nil
	default:
		return 0, clvmerr.ErrAtomTooBig
	}
}

// decodedAtomPrefix is the result of reading one atom's length prefix: the
// byte offset of its payload and the payload's length.
type decodedAtomPrefix struct {
	payloadStart int
	length       int
}

// decodeAtomPrefix reads the atom prefix (and, for the single-raw-byte
// case, the atom itself) starting at data[pos]. It returns the payload
// location and the total number of bytes consumed (prefix + payload).
func decodeAtomPrefix(data []byte, pos int) (decodedAtomPrefix, int, error) {
	if pos >= len(data) {
		return decodedAtomPrefix{}, 0, &clvmerr.EncodingError{Offset: pos, Reason: clvmerr.ErrBadEncoding}
	}
	b0 := data[pos]

	switch {
	case b0 < 0x80:
		// The single byte *is* the one-byte atom's content.
		return decodedAtomPrefix{payloadStart: pos, length: 1}, 1, nil
	case b0 == 0x80:
		return decodedAtomPrefix{payloadStart: pos + 1, length: 0}, 1, nil
	case b0 < 0xC0:
		length := int(b0 & 0x3F)
		return finishAtomPrefix(data, pos, 1, length)
	case b0 < 0xE0:
		if pos+1 >= len(data) {
			return decodedAtomPrefix{}, 0, truncated(pos)
		}
		length := int(b0&0x1F)<<8 | int(data[pos+1])
		return finishAtomPrefix(data, pos, 2, length)
	case b0 < 0xF0:
		if pos+2 >= len(data) {
			return decodedAtomPrefix{}, 0, truncated(pos)
		}
		length := int(b0&0x0F)<<16 | int(data[pos+1])<<8 | int(data[pos+2])
		return finishAtomPrefix(data, pos, 3, length)
	case b0 < 0xF8:
		if pos+3 >= len(data) {
			return decodedAtomPrefix{}, 0, truncated(pos)
		}
		length := int(b0&0x07)<<24 | int(data[pos+1])<<16 | int(data[pos+2])<<8 | int(data[pos+3])
		return finishAtomPrefix(data, pos, 4, length)
	case b0 < 0xFC:
		if pos+4 >= len(data) {
			return decodedAtomPrefix{}, 0, truncated(pos)
		}
		length := int(b0&0x03)<<32 | int(data[pos+1])<<24 | int(data[pos+2])<<16 | int(data[pos+3])<<8 | int(data[pos+4])
		return finishAtomPrefix(data, pos, 5, length)
	default:
		// 0xFC, 0xFD unused; 0xFE/0xFF are the back-reference/pair markers
		// and must be dispatched on before calling this function.
		return decodedAtomPrefix{}, 0, &clvmerr.EncodingError{Offset: pos, Reason: clvmerr.ErrBadEncoding}
	}
}

func finishAtomPrefix(data []byte, pos, prefixLen, length int) (decodedAtomPrefix, int, error) {
	payloadStart := pos + prefixLen
	if payloadStart+length > len(data) {
		return decodedAtomPrefix{}, 0, truncated(pos)
	}
	return decodedAtomPrefix{payloadStart: payloadStart, length: length}, prefixLen + length, nil
}

func truncated(pos int) error {
	return &clvmerr.EncodingError{Offset: pos, Reason: clvmerr.ErrBadEncoding}
}
