package metadata

import (
	"context"
	"sync"

	"github.com/rommapp/romm-sub002/internal/platform"
)

type stubProvider struct {
	name    string
	enabled bool
	caps    Capabilities

	hashResults   []Candidate
	searchResults []Candidate
	detail        map[string]*Candidate
	hashErr       error
	searchErr     error

	mu        sync.Mutex
	terms     []string
	hashCalls int
}

func newStub(name string) *stubProvider {
	return &stubProvider{name: name, enabled: true}
}

func (s *stubProvider) Name() string               { return s.name }
func (s *stubProvider) Enabled() bool              { return s.enabled }
func (s *stubProvider) Capabilities() Capabilities { return s.caps }

func (s *stubProvider) SearchByHash(context.Context, ROM) ([]Candidate, error) {
	s.mu.Lock()
	s.hashCalls++
	s.mu.Unlock()
	if s.hashErr != nil {
		return nil, s.hashErr
	}
	return append([]Candidate(nil), s.hashResults...), nil
}

func (s *stubProvider) Search(_ context.Context, term string, _ platform.Identity) ([]Candidate, error) {
	s.mu.Lock()
	s.terms = append(s.terms, term)
	s.mu.Unlock()
	if s.searchErr != nil {
		return nil, s.searchErr
	}
	return append([]Candidate(nil), s.searchResults...), nil
}

func (s *stubProvider) GetByID(_ context.Context, id string) (*Candidate, error) {
	if s.detail == nil {
		return nil, nil
	}
	c := s.detail[id]
	if c == nil {
		return nil, nil
	}
	out := *c
	return &out, nil
}

func (s *stubProvider) searchTerms() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.terms...)
}

func nesROM(fileName string) ROM {
	p, _ := platform.Lookup("nes")
	return NewROM(fileName, 40976, Hashes{}, p)
}
