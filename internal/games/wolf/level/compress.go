package level

import (
	"encoding/binary"
	"fmt"
)

// Carmack back-reference tags, stored in the high byte of a word.
const (
	NearTag = 0xA7
	FarTag  = 0xA8
)

// CarmackExpand decodes Carmack-compressed src into expandedLen bytes worth of words.
// A near reference copies count words from a one-byte offset behind the output
// cursor; a far reference copies from an absolute word offset. A count of zero
// escapes a literal word whose high byte equals a tag.
func CarmackExpand(src []byte, expandedLen int) ([]uint16, error) {
	if expandedLen < 0 || expandedLen%2 != 0 {
		return nil, fmt.Errorf("level: carmack length %d: %w", expandedLen, ErrFormat)
	}
	out := make([]uint16, 0, expandedLen/2)
	want := expandedLen / 2
	in := 0

	readByte := func() (byte, error) {
		if in >= len(src) {
			return 0, fmt.Errorf("level: carmack stream truncated at byte %d: %w", in, ErrFormat)
		}
		b := src[in]
		in++
		return b, nil
	}

	for len(out) < want {
		if in+2 > len(src) {
			return nil, fmt.Errorf("level: carmack stream truncated at byte %d: %w", in, ErrFormat)
		}
		ch := binary.LittleEndian.Uint16(src[in:])
		in += 2
		hi := ch >> 8
		if hi != NearTag && hi != FarTag {
			out = append(out, ch)
			continue
		}

		count := int(ch & 0xFF)
		if count == 0 {
			lo, err := readByte()
			if err != nil {
				return nil, err
			}
			out = append(out, ch|uint16(lo))
			continue
		}

		var from int
		if hi == NearTag {
			off, err := readByte()
			if err != nil {
				return nil, err
			}
			from = len(out) - int(off)
		} else {
			if in+2 > len(src) {
				return nil, fmt.Errorf("level: carmack far offset truncated: %w", ErrFormat)
			}
			from = int(binary.LittleEndian.Uint16(src[in:]))
			in += 2
		}
		if from < 0 || from >= len(out) {
			return nil, fmt.Errorf("level: carmack reference to word %d with %d decoded: %w", from, len(out), ErrFormat)
		}
		if len(out)+count > want {
			return nil, fmt.Errorf("level: carmack run overflows %d words: %w", want, ErrFormat)
		}
		// Runs may overlap their own output.
		for i := 0; i < count; i++ {
			out = append(out, out[from+i])
		}
	}
	return out, nil
}

// CarmackCompress encodes words with greedy longest-match back-references.
// The result expands with CarmackExpand(result, 2*len(words)).
func CarmackCompress(words []uint16) []byte {
	out := make([]byte, 0, len(words)*2)
	put16 := func(v uint16) {
		out = append(out, byte(v), byte(v>>8))
	}

	for i := 0; i < len(words); {
		bestLen, bestFrom := 0, 0
		for from := 0; from < i; from++ {
			n := 0
			for n < 255 && i+n < len(words) && words[from+n] == words[i+n] {
				n++
			}
			// Prefer the nearest source on ties so near tags are used more.
			if n >= bestLen && n > 0 {
				bestLen, bestFrom = n, from
			}
		}

		near := i-bestFrom <= 0xFF
		switch {
		case bestLen >= 2 && near:
			put16(NearTag<<8 | uint16(bestLen))
			out = append(out, byte(i-bestFrom))
			i += bestLen
		case bestLen >= 3 && bestFrom <= 0xFFFF:
			put16(FarTag<<8 | uint16(bestLen))
			put16(uint16(bestFrom))
			i += bestLen
		default:
			w := words[i]
			if hi := w >> 8; hi == NearTag || hi == FarTag {
				put16(w & 0xFF00)
				out = append(out, byte(w))
			} else {
				put16(w)
			}
			i++
		}
	}
	return out
}

// RLEWExpand expands run-length encoded words until n words are produced.
// A word equal to tag is followed by a count and the value to repeat.
func RLEWExpand(src []uint16, n int, tag uint16) ([]uint16, error) {
	out := make([]uint16, 0, n)
	in := 0
	for len(out) < n {
		if in >= len(src) {
			return nil, fmt.Errorf("level: rlew stream truncated after %d words: %w", len(out), ErrFormat)
		}
		v := src[in]
		in++
		if v != tag {
			out = append(out, v)
			continue
		}
		if in+2 > len(src) {
			return nil, fmt.Errorf("level: rlew run truncated: %w", ErrFormat)
		}
		count, value := int(src[in]), src[in+1]
		in += 2
		if len(out)+count > n {
			return nil, fmt.Errorf("level: rlew run overflows %d words: %w", n, ErrFormat)
		}
		for i := 0; i < count; i++ {
			out = append(out, value)
		}
	}
	return out, nil
}

// RLEWCompress run-length encodes words with the given tag.
func RLEWCompress(words []uint16, tag uint16) []uint16 {
	out := make([]uint16, 0, len(words))
	for i := 0; i < len(words); {
		v := words[i]
		n := 1
		for i+n < len(words) && words[i+n] == v && n < 0xFFFF {
			n++
		}
		if n > 3 || v == tag {
			out = append(out, tag, uint16(n), v)
		} else {
			for j := 0; j < n; j++ {
				out = append(out, v)
			}
		}
		i += n
	}
	return out
}
