package diag

type dedupKey struct {
	cop    string
	line   int
	column int
	msg    string
}

// Dedup запоминает уже выданные диагностики по копу, позиции и сообщению.
// Хуки одного копа могут сообщить одно и то же дважды (строки и узлы).
type Dedup struct {
	seen map[dedupKey]struct{}
}

func NewDedup() *Dedup {
	return &Dedup{seen: make(map[dedupKey]struct{})}
}

// First reports whether d is the first diagnostic with its key and
// remembers it.
func (s *Dedup) First(d Diagnostic) bool {
	key := dedupKey{cop: d.CopName, line: d.Location.Line, column: d.Location.Column, msg: d.Message}
	if _, ok := s.seen[key]; ok {
		return false
	}
	s.seen[key] = struct{}{}
	return true
}
