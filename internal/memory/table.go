package memory

// Table is an array of fixed size items stored at a pointer.
type Table struct {
	Pointer
	ItemSize int
}

// Index returns the pointer to item n.
func (t Table) Index(n int) Pointer {
	return t.Add(n * t.ItemSize)
}

// Read16 reads the first word of item n.
func (t Table) Read16(s *Space, n int) (uint16, error) {
	p := t.Index(n)
	return s.Read16(p.Banks(), p.Address)
}
