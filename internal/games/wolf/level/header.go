package level

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// ErrFormat is returned for any map file that fails validation.
var ErrFormat = errors.New("invalid map format")

// Magic is the four byte signature at the start of every map file.
const Magic = "WMAP"

// HeaderSize is the fixed size of the map header in bytes.
const HeaderSize = 49

// Header is the fixed-size prefix of a map file.
type Header struct {
	RLETag   uint16
	Width    uint16
	Height   uint16
	Ceiling  uint32
	Floor    uint32
	Lengths  [3]uint16
	Offsets  [3]uint32
	NameLen  uint16
	MusicLen uint16
	Par      float32
	ParStr   string
}

// ReadHeader parses and validates the header at the start of data.
func ReadHeader(data []byte) (Header, error) {
	var h Header
	if len(data) < HeaderSize {
		return h, fmt.Errorf("level: file is %d bytes, header needs %d: %w", len(data), HeaderSize, ErrFormat)
	}
	if string(data[0:4]) != Magic {
		return h, fmt.Errorf("level: bad signature %q: %w", data[0:4], ErrFormat)
	}

	le := binary.LittleEndian
	h.RLETag = le.Uint16(data[4:])
	h.Width = le.Uint16(data[6:])
	h.Height = le.Uint16(data[8:])
	h.Ceiling = le.Uint32(data[10:])
	h.Floor = le.Uint32(data[14:])
	for i := 0; i < 3; i++ {
		h.Lengths[i] = le.Uint16(data[18+2*i:])
		h.Offsets[i] = le.Uint32(data[24+4*i:])
	}
	h.NameLen = le.Uint16(data[36:])
	h.MusicLen = le.Uint16(data[38:])
	h.Par = math.Float32frombits(le.Uint32(data[40:]))
	h.ParStr = trimZero(data[44:49])

	if h.Width != MapSize || h.Height != MapSize {
		return h, fmt.Errorf("level: map is %dx%d, expected %dx%d: %w", h.Width, h.Height, MapSize, MapSize, ErrFormat)
	}

	need := HeaderSize + int(h.NameLen) + int(h.MusicLen)
	for _, l := range h.Lengths {
		need += int(l)
	}
	if len(data) < need {
		return h, fmt.Errorf("level: file is %d bytes, declared content needs %d: %w", len(data), need, ErrFormat)
	}
	for i := 0; i < 3; i++ {
		end := uint64(h.Offsets[i]) + uint64(h.Lengths[i])
		if end > uint64(len(data)) {
			return h, fmt.Errorf("level: plane %d ends at %d past file size %d: %w", i, end, len(data), ErrFormat)
		}
	}
	return h, nil
}

func (h Header) put(buf []byte) {
	le := binary.LittleEndian
	copy(buf[0:4], Magic)
	le.PutUint16(buf[4:], h.RLETag)
	le.PutUint16(buf[6:], h.Width)
	le.PutUint16(buf[8:], h.Height)
	le.PutUint32(buf[10:], h.Ceiling)
	le.PutUint32(buf[14:], h.Floor)
	for i := 0; i < 3; i++ {
		le.PutUint16(buf[18+2*i:], h.Lengths[i])
		le.PutUint32(buf[24+4*i:], h.Offsets[i])
	}
	le.PutUint16(buf[36:], h.NameLen)
	le.PutUint16(buf[38:], h.MusicLen)
	le.PutUint32(buf[40:], math.Float32bits(h.Par))
	copy(buf[44:49], h.ParStr)
}

func trimZero(b []byte) string {
	for i, c := range b {
		if c == 0 {
			return string(b[:i])
		}
	}
	return string(b)
}
