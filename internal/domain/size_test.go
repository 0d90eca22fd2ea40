package domain

import (
	"errors"
	"testing"
)

func TestCheckSize(t *testing.T) {
	cases := []struct {
		size int
		ok   bool
	}{
		{0, false},
		{-3, false},
		{1, true},
		{7, true},
		{MaxGridSize, true},
		{MaxGridSize + 1, false},
		{1 << 32, false},
	}
	for _, tc := range cases {
		err := CheckSize(tc.size)
		if tc.ok && err != nil {
			t.Fatalf("CheckSize(%d) = %v, want nil", tc.size, err)
		}
		if !tc.ok && !errors.Is(err, ErrInvalidArgument) {
			t.Fatalf("CheckSize(%d) = %v, want ErrInvalidArgument", tc.size, err)
		}
	}
}

func TestLevelValidateRejectsOversizedGrid(t *testing.T) {
	l := LevelConfig{Name: "huge", GridSize: MaxGridSize + 1}
	if err := l.Validate(); !errors.Is(err, ErrInvalidLevels) {
		t.Fatalf("Validate = %v, want ErrInvalidLevels", err)
	}
}
