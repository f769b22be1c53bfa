package models

// Entry is one manifest row: a normalized reference code and the client
// it belongs to.
type Entry struct {
	Reference string
	FullName  string
}

// Manifest is the authoritative reference-to-client mapping for one run.
// Iteration order is insertion order; tolerant reference matching breaks
// ties by that order, so it must stay stable.
type Manifest struct {
	entries []Entry
	index   map[string]int
}

func NewManifest() *Manifest {
	return &Manifest{index: make(map[string]int)}
}

// Add inserts an entry or, when the reference already exists, overwrites
// the name while keeping the original position.
func (m *Manifest) Add(reference, fullName string) {
	if i, ok := m.index[reference]; ok {
		m.entries[i].FullName = fullName
		return
	}
	m.index[reference] = len(m.entries)
	m.entries = append(m.entries, Entry{Reference: reference, FullName: fullName})
}

// Get returns the client name for an exact reference key.
func (m *Manifest) Get(reference string) (string, bool) {
	i, ok := m.index[reference]
	if !ok {
		return "", false
	}
	return m.entries[i].FullName, true
}

// Entries returns the entries in insertion order. Callers must not mutate
// the returned slice.
func (m *Manifest) Entries() []Entry {
	return m.entries
}

func (m *Manifest) Len() int {
	return len(m.entries)
}
