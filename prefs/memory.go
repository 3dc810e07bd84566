package prefs

import (
	"sync"

	"github.com/d0ngw/chanstat/stats"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore keeps the encoded document in memory
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore create MemoryStore with the initial encoded document
func NewMemoryStore(data []byte) *MemoryStore {
	return &MemoryStore{data: append([]byte(nil), data...)}
}

// LoadStatistics implements stats.Preferences.LoadStatistics
func (p *MemoryStore) LoadStatistics() (stats.Document, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return Decode(p.data)
}

// SaveStatistics implements stats.Preferences.SaveStatistics
func (p *MemoryStore) SaveStatistics(doc stats.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	p.mu.Lock()
	p.data = data
	p.mu.Unlock()
	return nil
}

// Bytes returns the encoded document
func (p *MemoryStore) Bytes() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.data...)
}

// Close implements Store.Close
func (p *MemoryStore) Close() error {
	return nil
}
