package scramble

// Source hands out the scramble for each attempt.
type Source interface {
	Next() string
}

type randomSource struct {
	gen    *Generator
	length int
}

// NewRandomSource generates a fresh scramble of the given length each time.
func NewRandomSource(gen *Generator, length int) Source {
	return &randomSource{gen: gen, length: length}
}

func (s *randomSource) Next() string {
	return s.gen.Generate(s.length)
}

type listSource struct {
	list []string
	next int
}

// NewListSource cycles through a fixed list of scrambles.
func NewListSource(list []string) Source {
	return &listSource{list: append([]string(nil), list...)}
}

func (s *listSource) Next() string {
	if len(s.list) == 0 {
		return ""
	}
	out := s.list[s.next]
	s.next = (s.next + 1) % len(s.list)
	return out
}
