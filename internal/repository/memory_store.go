package repository

import (
	"bytes"
	"context"
	"sort"
	"sync"
)

// MemoryStore is a process-local Store. Nothing survives a restart; it backs
// degraded mode when the configured engine cannot be opened, and tests.
type MemoryStore struct {
	mu         sync.Mutex
	partitions map[Partition]map[string][]byte
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{partitions: make(map[Partition]map[string][]byte)}
}

func (s *MemoryStore) Put(_ context.Context, partition Partition, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.partitions[partition]
	if !ok {
		p = make(map[string][]byte)
		s.partitions[partition] = p
	}
	p[key] = bytes.Clone(value)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, partition Partition, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	value, ok := s.partitions[partition][key]
	if !ok {
		return nil, false, nil
	}
	return bytes.Clone(value), true, nil
}

func (s *MemoryStore) GetAll(_ context.Context, partition Partition) ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := make([]Record, 0, len(s.partitions[partition]))
	for key, value := range s.partitions[partition] {
		records = append(records, Record{Key: key, Value: bytes.Clone(value)})
	}
	sort.Slice(records, func(i, j int) bool { return records[i].Key < records[j].Key })
	return records, nil
}

func (s *MemoryStore) Delete(_ context.Context, partition Partition, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.partitions[partition], key)
	return nil
}

func (s *MemoryStore) Clear(_ context.Context, partition Partition) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.partitions, partition)
	return nil
}

func (s *MemoryStore) Replace(_ context.Context, partition Partition, records []Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p := make(map[string][]byte, len(records))
	for _, r := range records {
		p[r.Key] = bytes.Clone(r.Value)
	}
	s.partitions[partition] = p
	return nil
}

func (s *MemoryStore) Close() error {
	return nil
}
