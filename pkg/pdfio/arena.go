package pdfio

// Arena owns the open source documents of one run, keyed by path. A
// source document can feed pages into several client bundles, so handles
// acquired during attribution stay open until every merge has finished.
type Arena struct {
	docs  map[string]*Document
	order []string
}

func NewArena() *Arena {
	return &Arena{docs: make(map[string]*Document)}
}

// Acquire returns the open document for path, opening it on first use.
func (a *Arena) Acquire(path string) (*Document, error) {
	if d, ok := a.docs[path]; ok {
		return d, nil
	}
	d, err := OpenDocument(path)
	if err != nil {
		return nil, err
	}
	a.docs[path] = d
	a.order = append(a.order, path)
	return d, nil
}

// Len reports how many documents are currently held open.
func (a *Arena) Len() int {
	return len(a.docs)
}

// ReleaseAll closes every held document and empties the arena. Calling it
// again is a no-op, so callers can defer it as a backstop and still
// release explicitly once the merges are done.
func (a *Arena) ReleaseAll() error {
	var firstErr error
	for _, path := range a.order {
		if err := a.docs[path].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(a.docs, path)
	}
	a.order = nil
	return firstErr
}
