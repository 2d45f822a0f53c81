package lsp

import "sync"

type Document struct {
	Text    string
	Version int32

	analysis *Analysis
}

// Store holds open documents by URI. Analyses are computed on first use and
// dropped whenever the text changes.
type Store struct {
	mu   sync.RWMutex
	docs map[string]*Document
}

func NewStore() *Store {
	return &Store{docs: map[string]*Document{}}
}

func (s *Store) Set(uri, text string, version int32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[uri] = &Document{Text: text, Version: version}
}

func (s *Store) Get(uri string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.docs[uri]
	if !ok {
		return "", false
	}
	return d.Text, true
}

func (s *Store) Analysis(uri string) (*Analysis, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[uri]
	if !ok {
		return nil, false
	}
	if d.analysis == nil {
		d.analysis = Analyze(d.Text)
	}
	return d.analysis, true
}

func (s *Store) Delete(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}
