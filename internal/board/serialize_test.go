package board

import (
	stderrors "errors"
	"reflect"
	"strings"
	"testing"
)

func TestSerializeRoundTrip(t *testing.T) {
	s := mustDeserialize(t, gameNaiveHorizontalWon)
	if got := s.Serialize(); got != strings.TrimSpace(gameNaiveHorizontalWon) {
		t.Errorf("Serialize:\n%s\nwant:\n%s", got, strings.TrimSpace(gameNaiveHorizontalWon))
	}
}

func TestDeserializeRoundTrip(t *testing.T) {
	for name, text := range map[string]string{
		"ongoing":   gameOngoing,
		"clogged":   gameClogged,
		"stalemate": gameStalemate,
		"won":       gameNaiveHorizontalWon,
		"empty":     gameEmpty5,
	} {
		t.Run(name, func(t *testing.T) {
			s := mustDeserialize(t, text)
			again, err := Deserialize(s.Serialize())
			if err != nil {
				t.Fatalf("Deserialize(Serialize): %v", err)
			}
			if !reflect.DeepEqual(s, again) {
				t.Errorf("round trip changed the state:\n got %+v\nwant %+v", again, s)
			}
		})
	}
}

func TestSerializeAfterPushes(t *testing.T) {
	s := New(2, 2)
	moves := []Move{
		{Height: 0, Side: Left},
		{Height: 0, Side: Right},
		{Height: 1, Side: Left},
		{Height: 1, Side: Right},
	}
	for _, m := range moves {
		if err := s.PushMove(m); err != nil {
			t.Fatalf("PushMove %+v: %v", m, err)
		}
	}
	if got, want := s.Serialize(), "1 2\n3 4"; got != want {
		t.Errorf("Serialize = %q, want %q", got, want)
	}
	if !s.IsStalemate() {
		t.Error("expected stalemate")
	}
}

func TestHashNonHistorical(t *testing.T) {
	s := mustDeserialize(t, `
0 0 0 0 0
0 0 0 0 4
0 0 7 5 3
0 0 0 2 1
0 0 0 0 6
`)
	want := "_ _ _ _ _\n_ _ _ _ B\n_ _ R R R\n_ _ _ B R\n_ _ _ _ B"
	if got := s.HashNonHistorical(); got != want {
		t.Errorf("HashNonHistorical = %q, want %q", got, want)
	}
}

func TestHashIgnoresMoveOrder(t *testing.T) {
	// Two play sequences reaching the same final configuration.
	a := New(4, 4)
	b := New(4, 4)
	for _, m := range []Move{{0, Left}, {1, Left}, {2, Left}, {3, Left}} {
		if err := a.PushMove(m); err != nil {
			t.Fatalf("PushMove: %v", err)
		}
	}
	for _, m := range []Move{{2, Left}, {3, Left}, {0, Left}, {1, Left}} {
		if err := b.PushMove(m); err != nil {
			t.Fatalf("PushMove: %v", err)
		}
	}
	if a.Serialize() == b.Serialize() {
		t.Fatal("histories should differ")
	}
	if a.HashNonHistorical() != b.HashNonHistorical() {
		t.Errorf("hashes differ:\n%s\n%s", a.HashNonHistorical(), b.HashNonHistorical())
	}
}

func TestDeserializeWhitespace(t *testing.T) {
	// Aligned columns and surrounding blank lines are fine.
	s := mustDeserialize(t, "\n\n1  3   5 7 6 4 2\n0 0 0 0 0  0 0\n\n")
	if s.SizeX() != 7 || s.SizeY() != 2 {
		t.Errorf("dimensions = %dx%d, want 7x2", s.SizeX(), s.SizeY())
	}
	if got := s.TryWinner(); got != Red {
		t.Errorf("TryWinner = %v, want Red", got)
	}
}

func TestDeserializeFloatingPieceAccepted(t *testing.T) {
	// The decoder writes literal coordinates and does not re-validate
	// gravity; a mid-row piece with empties beside it is accepted.
	s, err := Deserialize("0 1 0\n0 0 0\n0 0 0")
	if err != nil {
		t.Fatalf("Deserialize: %v", err)
	}
	cell, err := s.Cell(1, 0)
	if err != nil || cell != Red {
		t.Errorf("Cell(1,0) = %v %v, want Red", cell, err)
	}
}

func TestDeserializeErrors(t *testing.T) {
	cases := []struct {
		name string
		text string
		want error
	}{
		{"empty", "", ErrInvalidDimensions},
		{"blank", "\n  \n", ErrInvalidDimensions},
		{"ragged", "1 2\n3", ErrInvalidDimensions},
		{"duplicate", "1 1\n0 0", ErrDuplicateTurn},
		{"gap", "1 3\n0 0", ErrNonContiguousHistory},
		{"beyond-capacity", "1 5\n0 0", ErrNonContiguousHistory},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Deserialize(tc.text)
			if !stderrors.Is(err, tc.want) {
				t.Errorf("Deserialize(%q) err = %v, want %v", tc.text, err, tc.want)
			}
		})
	}
	if _, err := Deserialize("x 0\n0 0"); err == nil {
		t.Error("expected an error for a non-numeric token")
	}
}

func TestRows(t *testing.T) {
	s := mustDeserialize(t, gameStalemate)
	want := [][]Player{
		{Red, Blue},
		{Red, Blue},
	}
	if got := s.Rows(); !reflect.DeepEqual(got, want) {
		t.Errorf("Rows = %v, want %v", got, want)
	}
}
