package setup

import (
	"context"
	"sync"
)

// StoredRecord is a record held by a MemoryStore.
type StoredRecord struct {
	ID          string
	Request     Request
	Permissions []string
}

// MemoryStore is an in-process RecordStore. It backs dry runs and tests.
type MemoryStore struct {
	mu      sync.Mutex
	calls   int
	records []StoredRecord
	fail    map[Kind]error
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{fail: map[Kind]error{}}
}

// FailOn makes every subsequent Create of the kind return err.
func (m *MemoryStore) FailOn(kind Kind, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fail[kind] = err
}

func (m *MemoryStore) Create(ctx context.Context, request Request) (Created, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls++

	if err := ctx.Err(); err != nil {
		return Created{}, err
	}
	if err, ok := m.fail[request.Kind]; ok {
		return Created{}, err
	}
	if err := request.Record.Validate(); err != nil {
		return Created{}, err
	}

	id := NewID(request.Kind)
	m.records = append(m.records, StoredRecord{
		ID:          id,
		Request:     request,
		Permissions: request.Permissions,
	})

	return Created{ID: id, Token: request.Token}, nil
}

// Calls returns the number of Create calls received.
func (m *MemoryStore) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// Records returns the stored records of a kind in creation order.
func (m *MemoryStore) Records(kind Kind) []StoredRecord {
	m.mu.Lock()
	defer m.mu.Unlock()

	records := []StoredRecord{}
	for _, r := range m.records {
		if r.Request.Kind == kind {
			records = append(records, r)
		}
	}
	return records
}

// Find returns the stored record with the passed id.
func (m *MemoryStore) Find(id string) (StoredRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, r := range m.records {
		if r.ID == id {
			return r, nil
		}
	}
	return StoredRecord{}, ErrRecordNotFound
}
