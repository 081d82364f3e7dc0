package core

import (
	"strings"
	"testing"
)

func TestNewScreen(t *testing.T) {
	s := NewScreen(80, 24)

	if s.Width() != 80 || s.Height() != 24 {
		t.Fatalf("dimensions = %dx%d, expected 80x24", s.Width(), s.Height())
	}

	for y := 0; y < s.Height(); y++ {
		for x := 0; x < s.Width(); x++ {
			if c := s.GetCell(x, y); c.Rune != ' ' || c.Color != ColorDefault {
				t.Fatalf("new screen should be blank, got %+v at (%d, %d)", c, x, y)
			}
		}
	}
}

func TestNewScreenNegativeSize(t *testing.T) {
	s := NewScreen(-5, -1)
	if s.Width() != 0 || s.Height() != 0 {
		t.Errorf("negative size should clamp to 0x0, got %dx%d", s.Width(), s.Height())
	}
	if s.String() != "" {
		t.Errorf("empty screen should render empty string, got %q", s.String())
	}
}

func TestScreenSetGet(t *testing.T) {
	s := NewScreen(10, 10)

	s.Set(5, 5, 'X')
	if s.GetCell(5, 5).Rune != 'X' {
		t.Errorf("GetCell(5, 5).Rune = %q, expected 'X'", s.GetCell(5, 5).Rune)
	}

	// Out of bounds writes are ignored
	s.Set(-1, 0, 'A')
	s.Set(100, 0, 'A')
	s.Set(0, -1, 'A')
	s.Set(0, 100, 'A')

	if s.GetCell(-1, 0).Rune != ' ' || s.GetCell(100, 0).Rune != ' ' {
		t.Error("out of bounds Get should return space")
	}
}

func TestScreenSetColor(t *testing.T) {
	s := NewScreen(4, 4)
	s.SetColor(1, 2, 'o', ColorWhite)

	c := s.GetCell(1, 2)
	if c.Rune != 'o' || c.Color != ColorWhite {
		t.Errorf("GetCell = %+v, expected white 'o'", c)
	}

	// Plain Set resets the color
	s.Set(1, 2, 'x')
	if c := s.GetCell(1, 2); c.Color != ColorDefault {
		t.Errorf("Set should use default color, got %v", c.Color)
	}
}

func TestScreenClear(t *testing.T) {
	s := NewScreen(5, 5)
	s.DrawRect(NewRect(0, 0, 5, 5), '#')
	s.SetColor(4, 4, 'o', ColorRed)

	s.Clear()
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			if c := s.GetCell(x, y); c != (Cell{Rune: ' '}) {
				t.Errorf("after Clear expected uncolored space at (%d, %d), got %+v", x, y, c)
			}
		}
	}
}

func TestScreenDrawText(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextColor(2, 1, "Hello", ColorLime)

	for i, ch := range "Hello" {
		c := s.GetCell(2+i, 1)
		if c.Rune != ch || c.Color != ColorLime {
			t.Errorf("DrawTextColor: expected lime %q at (%d, 1), got %+v", ch, 2+i, c)
		}
	}

	// Clipped at the right edge
	s.DrawText(18, 0, "Hello")
	if s.GetCell(18, 0).Rune != 'H' || s.GetCell(19, 0).Rune != 'e' {
		t.Error("text should be clipped at right boundary")
	}
}

func TestScreenDrawTextMultibyte(t *testing.T) {
	s := NewScreen(5, 1)
	s.DrawText(0, 0, "•o•")

	if s.Row(0) != "•o•  " {
		t.Errorf("Row(0) = %q, expected %q", s.Row(0), "•o•  ")
	}
}

func TestScreenDrawTextCentered(t *testing.T) {
	s := NewScreen(20, 5)
	s.DrawTextCentered(2, "Hi")

	x := (20 - 2) / 2
	if s.GetCell(x, 2).Rune != 'H' || s.GetCell(x+1, 2).Rune != 'i' {
		t.Error("DrawTextCentered: text not at expected position")
	}

	s.DrawTextCenteredColor(3, "PAUSED", ColorYellow)
	x = (20 - 6) / 2
	if c := s.GetCell(x, 3); c.Rune != 'P' || c.Color != ColorYellow {
		t.Errorf("DrawTextCenteredColor: cell (%d, 3) = %+v", x, c)
	}
}

func TestScreenDrawBox(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawBox(NewRect(1, 1, 5, 4))

	corners := map[[2]int]rune{
		{1, 1}: '┌',
		{5, 1}: '┐',
		{1, 4}: '└',
		{5, 4}: '┘',
	}
	for pos, want := range corners {
		if got := s.GetCell(pos[0], pos[1]).Rune; got != want {
			t.Errorf("corner at %v = %q, expected %q", pos, got, want)
		}
	}

	for x := 2; x < 5; x++ {
		if s.GetCell(x, 1).Rune != '─' || s.GetCell(x, 4).Rune != '─' {
			t.Errorf("horizontal edge missing at x=%d", x)
		}
	}
	for y := 2; y < 4; y++ {
		if s.GetCell(1, y).Rune != '│' || s.GetCell(5, y).Rune != '│' {
			t.Errorf("vertical edge missing at y=%d", y)
		}
	}
}

func TestScreenDrawRect(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawRect(NewRect(2, 2, 3, 3), '#')

	if s.GetCell(2, 2).Rune != '#' || s.GetCell(4, 4).Rune != '#' {
		t.Error("DrawRect should fill the area")
	}
	if s.GetCell(1, 1).Rune != ' ' || s.GetCell(5, 5).Rune != ' ' {
		t.Error("DrawRect should not affect outside area")
	}
}

func TestScreenString(t *testing.T) {
	s := NewScreen(5, 3)
	s.DrawText(0, 0, "AAAAA")
	s.DrawText(0, 1, "BBBBB")
	s.DrawText(0, 2, "CCCCC")

	if got, want := s.String(), "AAAAA\nBBBBB\nCCCCC"; got != want {
		t.Errorf("String() = %q, expected %q", got, want)
	}
}

func TestScreenResize(t *testing.T) {
	s := NewScreen(10, 10)
	s.DrawText(0, 0, "Hello")

	s.Resize(8, 4)
	if s.Width() != 8 || s.Height() != 4 {
		t.Fatalf("after resize, dimensions should be 8x4, got %dx%d", s.Width(), s.Height())
	}
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("content should be preserved, row 0 = %q", s.Row(0))
	}

	s.Resize(15, 8)
	if !strings.HasPrefix(s.Row(0), "Hello") {
		t.Errorf("content should be preserved after enlarging, row 0 = %q", s.Row(0))
	}
	if s.GetCell(14, 7).Rune != ' ' {
		t.Error("new area should be blank")
	}
}

func TestScreenRowOutOfBounds(t *testing.T) {
	s := NewScreen(10, 5)
	if got := s.Row(-1); got != "          " {
		t.Errorf("out of bounds row should be spaces, got %q", got)
	}
}
