package host

import (
	"context"
	"fmt"
	"sync"

	"github.com/arthur-debert/nanoshelf/types"
)

// Notification records one Notify call made against a MockGateway.
type Notification struct {
	Level   NotifyLevel
	Message string
}

// MockGateway is an in-memory Gateway for tests. Every call can be forced to
// fail through the corresponding error field, and all side effects
// (notifications, navigations, kv writes) are recorded for assertions.
type MockGateway struct {
	mu sync.Mutex

	// Blocks holds the host content blocks visible through GetBlock.
	Blocks map[string]*types.Block

	// QueryResults scripts RunQuery: each call pops the next result set.
	// When empty, RunQuery evaluates the query against Blocks instead.
	QueryResults [][]string

	kv map[string]string

	Notifications []Notification
	Navigations   []string

	GetBlockError error
	RunQueryError error
	NavigateError error
	KVGetError    error
	KVSetError    error
}

// NewMockGateway returns an empty mock gateway.
func NewMockGateway() *MockGateway {
	return &MockGateway{
		Blocks: make(map[string]*types.Block),
		kv:     make(map[string]string),
	}
}

// AddBlock registers a block with the given id, text and properties.
func (m *MockGateway) AddBlock(b *types.Block) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Blocks[b.ID] = b
}

// EnqueueQueryResult scripts the result of the next RunQuery call.
func (m *MockGateway) EnqueueQueryResult(ids ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueryResults = append(m.QueryResults, ids)
}

// SeedKV pre-populates the key/value store, bypassing KVSetError.
func (m *MockGateway) SeedKV(namespace, key, value string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.kv[namespace+"/"+key] = value
}

// KVValue reads back a stored value for assertions.
func (m *MockGateway) KVValue(namespace, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.kv[namespace+"/"+key]
	return v, ok
}

// GetBlock implements Gateway.
func (m *MockGateway) GetBlock(_ context.Context, id string) (*types.Block, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.GetBlockError != nil {
		return nil, m.GetBlockError
	}
	return m.Blocks[id], nil
}

// RunQuery implements Gateway.
func (m *MockGateway) RunQuery(_ context.Context, q types.QueryDescription) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.RunQueryError != nil {
		return nil, m.RunQueryError
	}
	if len(m.QueryResults) > 0 {
		next := m.QueryResults[0]
		m.QueryResults = m.QueryResults[1:]
		return next, nil
	}
	blocks := make([]*types.Block, 0, len(m.Blocks))
	for _, b := range m.Blocks {
		blocks = append(blocks, b)
	}
	return EvaluateQuery(q, blocks), nil
}

// NavigateToBlock implements Gateway.
func (m *MockGateway) NavigateToBlock(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.NavigateError != nil {
		return m.NavigateError
	}
	if _, ok := m.Blocks[id]; !ok {
		return fmt.Errorf("block %s not found", id)
	}
	m.Navigations = append(m.Navigations, id)
	return nil
}

// KVGet implements Gateway.
func (m *MockGateway) KVGet(_ context.Context, namespace, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.KVGetError != nil {
		return "", false, m.KVGetError
	}
	v, ok := m.kv[namespace+"/"+key]
	return v, ok, nil
}

// KVSet implements Gateway.
func (m *MockGateway) KVSet(_ context.Context, namespace, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.KVSetError != nil {
		return m.KVSetError
	}
	m.kv[namespace+"/"+key] = value
	return nil
}

// Notify implements Gateway.
func (m *MockGateway) Notify(level NotifyLevel, message string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Notifications = append(m.Notifications, Notification{Level: level, Message: message})
}

// LastNotification returns the most recent notification, if any.
func (m *MockGateway) LastNotification() (Notification, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.Notifications) == 0 {
		return Notification{}, false
	}
	return m.Notifications[len(m.Notifications)-1], true
}
