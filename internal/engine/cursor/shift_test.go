package cursor

import "testing"

func TestShiftApply(t *testing.T) {
	// "ab|cd|ef" with "cd" replaced by "XYZ\nW": end (4,0) moves to (1,1).
	s := ShiftBetween(Pos(4, 0), Pos(1, 1))

	tests := []struct {
		in, want Position
	}{
		{Pos(4, 0), Pos(1, 1)},
		{Pos(6, 0), Pos(3, 1)},
		{Pos(2, 1), Pos(2, 2)},
		{Pos(0, 3), Pos(0, 4)},
	}
	for _, tc := range tests {
		if got := s.Apply(tc.in); got != tc.want {
			t.Errorf("Apply(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestNoShift(t *testing.T) {
	p := Pos(3, 0)
	if got := NoShift.Apply(p); got != p {
		t.Errorf("NoShift moved %v to %v", p, got)
	}
}

func TestShiftApplyCaret(t *testing.T) {
	s := ShiftBetween(Pos(2, 0), Pos(5, 0))
	got := s.ApplyCaret(Selected(Pos(3, 0), Pos(1, 1)))
	want := Selected(Pos(6, 0), Pos(1, 1))
	if !got.Equal(want) {
		t.Errorf("ApplyCaret = %v, want %v", got, want)
	}
	if got := s.ApplyCaret(Collapsed(Pos(2, 0))); !got.Equal(Collapsed(Pos(5, 0))) {
		t.Errorf("ApplyCaret collapsed = %v", got)
	}
}
