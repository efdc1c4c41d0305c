package collector

// cursorSet remembers the page addresses already visited during one walk.
type cursorSet map[string]struct{}

func newCursorSet() cursorSet {
	return make(cursorSet)
}

func (s cursorSet) add(pageURL string) {
	s[pageURL] = struct{}{}
}

func (s cursorSet) contains(pageURL string) bool {
	_, exists := s[pageURL]
	return exists
}
