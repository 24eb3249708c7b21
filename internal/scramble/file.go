package scramble

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadFile reads one scramble per line. Blank lines and lines starting
// with '#' are skipped; any other line must be valid notation.
func LoadFile(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only scramble file.
			_ = cerr
		}
	}()

	var scrambles []string
	scanner := bufio.NewScanner(file)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if !Valid(line) {
			return nil, fmt.Errorf("invalid scramble on line %d: %q", lineNo, line)
		}
		scrambles = append(scrambles, strings.Join(strings.Fields(line), " "))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(scrambles) == 0 {
		return nil, fmt.Errorf("scramble file is empty")
	}
	return scrambles, nil
}

// Valid reports whether s is a sequence of face turns in WCA notation,
// including wide turns such as Rw or 3Fw2.
func Valid(s string) bool {
	moves := strings.Fields(s)
	if len(moves) == 0 {
		return false
	}
	for _, move := range moves {
		if !validMove(move) {
			return false
		}
	}
	return true
}

func validMove(move string) bool {
	i := 0
	for i < len(move) && move[i] >= '2' && move[i] <= '9' {
		i++
	}
	layered := i > 0
	if i >= len(move) || !strings.ContainsRune("UDLRFB", rune(move[i])) {
		return false
	}
	i++
	if i < len(move) && move[i] == 'w' {
		i++
	} else if layered {
		return false
	}
	switch move[i:] {
	case "", "'", "2", "2'":
		return true
	default:
		return false
	}
}
