package level

import (
	"encoding/binary"
	"fmt"

	"github.com/vovakirdan/tui-wolf/internal/games/wolf/units"
)

// MapSize is the width and height of every map in tiles.
const MapSize = units.MapSize

// PlaneWords is the number of words in one decoded plane.
const PlaneWords = MapSize * MapSize

// Plane indices.
const (
	PlaneWalls   = 0
	PlaneObjects = 1
	PlaneExtra   = 2
)

// DefaultRLETag is the run-length tag used when encoding new maps.
const DefaultRLETag = 0xABCD

// MapFile is the uncompressed content of a map file. Planes are stored in
// file order: row 0 is the topmost map row.
type MapFile struct {
	Name    string
	Music   string
	Ceiling uint32
	Floor   uint32
	Par     float32
	ParStr  string
	RLETag  uint16
	Planes  [3][]uint16
}

// NewMapFile returns an empty map with zeroed planes.
func NewMapFile(name string) *MapFile {
	m := &MapFile{
		Name:    name,
		Ceiling: 0x383838,
		Floor:   0x707070,
		RLETag:  DefaultRLETag,
	}
	for i := range m.Planes {
		m.Planes[i] = make([]uint16, PlaneWords)
	}
	return m
}

// planeIndex maps live grid coordinates (y grows north) to a plane offset.
func planeIndex(x, y int) int {
	return (MapSize-1-y)*MapSize + x
}

// Set stores code at live grid coordinate (x, y) in the given plane.
func (m *MapFile) Set(plane, x, y int, code uint16) {
	if !units.InMap(x, y) {
		return
	}
	m.Planes[plane][planeIndex(x, y)] = code
}

// At returns the code at live grid coordinate (x, y) in the given plane.
func (m *MapFile) At(plane, x, y int) uint16 {
	if !units.InMap(x, y) {
		return 0
	}
	return m.Planes[plane][planeIndex(x, y)]
}

// Fill sets every tile in the rectangle [x0,x1]x[y0,y1] to code.
func (m *MapFile) Fill(plane, x0, y0, x1, y1 int, code uint16) {
	for x := x0; x <= x1; x++ {
		for y := y0; y <= y1; y++ {
			m.Set(plane, x, y, code)
		}
	}
}

// Unpack validates data and decompresses its three planes.
func Unpack(data []byte) (*MapFile, error) {
	h, err := ReadHeader(data)
	if err != nil {
		return nil, err
	}

	m := &MapFile{
		Ceiling: h.Ceiling,
		Floor:   h.Floor,
		Par:     h.Par,
		ParStr:  h.ParStr,
		RLETag:  h.RLETag,
	}
	off := HeaderSize
	m.Name = string(data[off : off+int(h.NameLen)])
	off += int(h.NameLen)
	m.Music = string(data[off : off+int(h.MusicLen)])

	for i := 0; i < 3; i++ {
		blob := data[h.Offsets[i] : h.Offsets[i]+uint32(h.Lengths[i])]
		plane, err := expandPlane(blob, h.RLETag)
		if err != nil {
			return nil, fmt.Errorf("level: plane %d: %w", i, err)
		}
		m.Planes[i] = plane
	}
	return m, nil
}

func expandPlane(blob []byte, tag uint16) ([]uint16, error) {
	if len(blob) < 2 {
		return nil, fmt.Errorf("level: plane blob of %d bytes: %w", len(blob), ErrFormat)
	}
	expanded := int(binary.LittleEndian.Uint16(blob))
	words, err := CarmackExpand(blob[2:], expanded)
	if err != nil {
		return nil, err
	}
	if len(words) < 1 {
		return nil, fmt.Errorf("level: empty rlew stream: %w", ErrFormat)
	}
	if rlewLen := int(words[0]); rlewLen != PlaneWords*2 {
		return nil, fmt.Errorf("level: rlew length %d, expected %d: %w", rlewLen, PlaneWords*2, ErrFormat)
	}
	return RLEWExpand(words[1:], PlaneWords, tag)
}

func compressPlane(plane []uint16, tag uint16) []byte {
	rlew := append([]uint16{PlaneWords * 2}, RLEWCompress(plane, tag)...)
	carmack := CarmackCompress(rlew)
	blob := make([]byte, 2, 2+len(carmack))
	binary.LittleEndian.PutUint16(blob, uint16(len(rlew)*2))
	return append(blob, carmack...)
}

// Encode writes m in the map file format read by Unpack and Decode.
func Encode(m *MapFile) []byte {
	tag := m.RLETag
	if tag == 0 {
		tag = DefaultRLETag
	}

	var blobs [3][]byte
	for i := range blobs {
		plane := m.Planes[i]
		if len(plane) != PlaneWords {
			plane = make([]uint16, PlaneWords)
			copy(plane, m.Planes[i])
		}
		blobs[i] = compressPlane(plane, tag)
	}

	h := Header{
		RLETag:   tag,
		Width:    MapSize,
		Height:   MapSize,
		Ceiling:  m.Ceiling,
		Floor:    m.Floor,
		NameLen:  uint16(len(m.Name)),
		MusicLen: uint16(len(m.Music)),
		Par:      m.Par,
		ParStr:   m.ParStr,
	}
	off := HeaderSize + len(m.Name) + len(m.Music)
	for i, b := range blobs {
		h.Lengths[i] = uint16(len(b))
		h.Offsets[i] = uint32(off)
		off += len(b)
	}

	buf := make([]byte, HeaderSize, off)
	h.put(buf)
	buf = append(buf, m.Name...)
	buf = append(buf, m.Music...)
	for _, b := range blobs {
		buf = append(buf, b...)
	}
	return buf
}
