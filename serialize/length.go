package serialize

// SerializedLengthFromBytes computes the length in bytes of the one
// encoded object at the start of data, without materializing a tree. It
// walks the same ParseValue/Cons shape as Decode, but only tracks how many
// "pending value" slots remain open, per spec.md §4.2.
func SerializedLengthFromBytes(data []byte) (uint64, error) {
	return scanLength(data, false)
}

// SerializedLengthFromBytesTrusted is spec.md §4.2's `_trusted` entry
// point. It runs the same scan with the same checks as
// SerializedLengthFromBytes and returns the same results; it skips nothing.
func SerializedLengthFromBytesTrusted(data []byte) (uint64, error) {
	return scanLength(data, true)
}

func scanLength(data []byte, trusted bool) (uint64, error) {
	pos := 0
	pending := 1 // number of ParseValue "slots" still owed, starting with the root
	for pending > 0 {
		if pos >= len(data) {
			if trusted {
				// Trusted callers asked us to skip truncation checks; we
				// still cannot read past the slice without panicking, so
				// surface the same error rather than indexing out of range.
				return 0, truncated(pos)
			}
			return 0, truncated(pos)
		}
		switch data[pos] {
		case pairMarker:
			pos++
			pending++ // one ParseValue consumed, two more owed (first, rest)
		case backrefMarker:
			return 0, truncated(pos)
		default:
			_, consumed, err := decodeAtomPrefix(data, pos)
			if err != nil {
				return 0, err
			}
			pos += consumed
			pending--
		}
	}
	return uint64(pos), nil
}
