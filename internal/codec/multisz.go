package codec

// EncodeMultiString returns the REG_MULTI_SZ wire form of ss in width w.
//
// Every non-empty string is written followed by one terminator unit, and one
// more terminator closes the sequence. Empty strings are skipped because the
// format cannot represent them: an empty entry would read back as the end of
// the block.
func EncodeMultiString(w Width, ss []string) ([]byte, error) {
	size := w.UnitSize()
	for _, s := range ss {
		size += (len(s) + 1) * w.UnitSize()
	}
	out := make([]byte, 0, size)

	var err error
	for _, s := range ss {
		if s == "" {
			continue
		}
		if out, err = appendText(out, w, s, false); err != nil {
			return nil, err
		}
		out = append(out, w.Terminator()...)
	}
	return append(out, w.Terminator()...), nil
}

// DecodeMultiString splits a REG_MULTI_SZ block into its strings.
//
// The block is scanned one unit at a time. A terminator ends the current
// string; a terminator that immediately follows another one (or opens the
// block) ends the whole sequence, and the terminator run is never reported
// as a string. A block written by another producer with embedded empty
// strings therefore decodes to the strings before the first empty one.
// A trailing string without a terminator is still returned.
func DecodeMultiString(w Width, data []byte) []string {
	unit := w.UnitSize()
	end := len(data) - len(data)%unit

	var out []string
	start := 0
	for off := 0; off < end; off += unit {
		if !isTerminator(w, data, off) {
			continue
		}
		if off == start {
			// second terminator in a row: end of sequence
			return out
		}
		out = append(out, decodeUnits(w, data[start:off]))
		start = off + unit
	}
	if start < end {
		out = append(out, decodeUnits(w, data[start:end]))
	}
	return out
}
