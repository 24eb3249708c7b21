package scramble

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGenerateLengthAndNotation(t *testing.T) {
	gen := NewSeeded(7)
	for i := 0; i < 50; i++ {
		s := gen.Generate(DefaultLength)
		moves := strings.Fields(s)
		if len(moves) != DefaultLength {
			t.Fatalf("expected %d moves, got %d: %s", DefaultLength, len(moves), s)
		}
		if !Valid(s) {
			t.Fatalf("generated scramble is not valid notation: %s", s)
		}
	}
}

func TestGenerateAvoidsRedundantMoves(t *testing.T) {
	gen := NewSeeded(42)
	faceIndex := map[byte]int{'U': 0, 'D': 1, 'L': 2, 'R': 3, 'F': 4, 'B': 5}
	for i := 0; i < 200; i++ {
		moves := strings.Fields(gen.Generate(25))
		for j := 1; j < len(moves); j++ {
			if moves[j][0] == moves[j-1][0] {
				t.Fatalf("face repeated back to back: %v", moves)
			}
			if j >= 2 {
				a := axis(faceIndex[moves[j][0]])
				b := axis(faceIndex[moves[j-1][0]])
				c := axis(faceIndex[moves[j-2][0]])
				if a == b && b == c {
					t.Fatalf("three moves on one axis: %v", moves[j-2:j+1])
				}
			}
		}
	}
}

func TestGenerateIsDeterministicForSeed(t *testing.T) {
	if NewSeeded(3).Generate(20) != NewSeeded(3).Generate(20) {
		t.Fatalf("expected identical scrambles for identical seeds")
	}
	if got := NewSeeded(3).Generate(0); got != "" {
		t.Fatalf("expected empty scramble, got %q", got)
	}
}

func TestValid(t *testing.T) {
	for _, s := range []string{"R U R' U'", "F2 B2", "Rw 3Fw2 Uw'", "D2'"} {
		if !Valid(s) {
			t.Fatalf("expected %q to be valid", s)
		}
	}
	for _, s := range []string{"", "X", "R3", "3R", "r U", "R U''"} {
		if Valid(s) {
			t.Fatalf("expected %q to be rejected", s)
		}
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrambles.txt")
	content := "# round 1\nR U  R' U'\n\nF2 B2 L\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	list, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load file: %v", err)
	}
	if len(list) != 2 || list[0] != "R U R' U'" || list[1] != "F2 B2 L" {
		t.Fatalf("unexpected scrambles: %q", list)
	}
}

func TestLoadFileRejectsBadLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scrambles.txt")
	if err := os.WriteFile(path, []byte("R U\nhello\n"), 0o644); err != nil {
		t.Fatalf("write file: %v", err)
	}
	_, err := LoadFile(path)
	if err == nil || !strings.Contains(err.Error(), "line 2") {
		t.Fatalf("expected line 2 error, got %v", err)
	}
}

func TestListSourceCycles(t *testing.T) {
	src := NewListSource([]string{"R", "U"})
	got := []string{src.Next(), src.Next(), src.Next()}
	if strings.Join(got, ",") != "R,U,R" {
		t.Fatalf("unexpected cycle: %v", got)
	}
	if NewListSource(nil).Next() != "" {
		t.Fatalf("expected empty scramble from empty list")
	}
}
