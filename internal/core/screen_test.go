package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)
	if s.Width() != 80 || s.Height() != 24 {
		t.Errorf("size = %dx%d, expected 80x24", s.Width(), s.Height())
	}
	for y := range s.Height() {
		for x := range s.Width() {
			if c := s.GetCell(x, y); c != (Cell{Rune: ' '}) {
				t.Fatalf("GetCell(%d, %d) = %+v, expected blank", x, y, c)
			}
		}
	}
}

func TestNewScreenNegativeSize(t *testing.T) {
	s := NewScreen(-3, -1)
	if s.Width() != 0 || s.Height() != 0 || s.String() != "" {
		t.Errorf("NewScreen(-3, -1) = %dx%d %q", s.Width(), s.Height(), s.String())
	}
}

func TestScreenSetColored(t *testing.T) {
	s := NewScreen(10, 10)
	s.SetColored(5, 5, '#', ColorRed)
	if c := s.GetCell(5, 5); c.Rune != '#' || c.Color != ColorRed {
		t.Errorf("GetCell(5, 5) = %+v, expected red '#'", c)
	}
	s.Set(5, 5, 'X')
	if c := s.GetCell(5, 5); c.Rune != 'X' || c.Color != ColorDefault {
		t.Errorf("Set should reset the color, got %+v", c)
	}

	// Out of bounds writes are dropped and reads are blank.
	s.SetColored(-1, 0, 'A', ColorRed)
	s.SetColored(10, 0, 'A', ColorRed)
	s.SetColored(0, 10, 'A', ColorRed)
	if s.Get(-1, 0) != ' ' || s.Get(0, 10) != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenClearAndFill(t *testing.T) {
	s := NewScreen(5, 5)
	s.SetColored(1, 1, 'x', ColorGreen)
	s.Fill('#')
	if c := s.GetCell(1, 1); c.Rune != '#' || c.Color != ColorDefault {
		t.Errorf("after Fill, GetCell(1, 1) = %+v", c)
	}
	s.Clear()
	if s.String() != strings.TrimSuffix(strings.Repeat("     \n", 5), "\n") {
		t.Errorf("after Clear, String() = %q", s.String())
	}
}

func TestScreenDrawTextColored(t *testing.T) {
	s := NewScreen(8, 2)
	s.DrawTextColored(5, 0, "Héllo", ColorYellow)
	if s.Row(0) != "     Hél" {
		t.Errorf("Row(0) = %q, expected clipped text", s.Row(0))
	}
	if c := s.GetCell(6, 0); c.Rune != 'é' || c.Color != ColorYellow {
		t.Errorf("GetCell(6, 0) = %+v", c)
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi")
	if s.Get(9, 2) != 'H' || s.Get(10, 2) != 'i' {
		t.Errorf("Row(2) = %q, expected centered text", s.Row(2))
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(7, 4)
	s.DrawBox(NewRect(0, 0, 7, 4), ColorGray)
	expected := "┌─────┐\n│     │\n│     │\n└─────┘"
	if s.String() != expected {
		t.Errorf("DrawBox:\n%s\nexpected:\n%s", s.String(), expected)
	}
	if s.GetCell(0, 0).Color != ColorGray {
		t.Error("box corners should carry the color")
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(6, 3)
	s.DrawRect(NewRect(1, 1, 3, 5), '#')
	if s.Row(0) != "      " || s.Row(1) != " ###  " || s.Row(2) != " ###  " {
		t.Errorf("DrawRect rows = %q %q %q", s.Row(0), s.Row(1), s.Row(2))
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawTextColored(0, 0, "Hello", ColorCyan)

	s.Resize(3, 2)
	if s.Width() != 3 || s.Height() != 2 || s.Row(0) != "Hel" {
		t.Errorf("after shrink: %dx%d row %q", s.Width(), s.Height(), s.Row(0))
	}

	s.Resize(6, 4)
	if s.Row(0) != "Hel   " || s.GetCell(0, 0).Color != ColorCyan {
		t.Errorf("after grow: row %q cell %+v", s.Row(0), s.GetCell(0, 0))
	}
	if s.Row(-1) != "      " {
		t.Errorf("Row(-1) = %q, expected spaces", s.Row(-1))
	}
}
