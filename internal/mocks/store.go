package mocks

import "github.com/selah-content-api/internal/store"

// MockStore is a mock implementation of store.Store. The Func fields
// inject read and write failures so callers' degrade paths can be tested
// without a real file backend.
type MockStore struct {
	GetFunc    func(key string) (string, bool)
	SetFunc    func(key, value string) error
	RemoveFunc func(key string) error

	Data map[string]string
}

// Verify interface compliance
var _ store.Store = (*MockStore)(nil)

func NewMockStore() *MockStore {
	return &MockStore{
		Data: make(map[string]string),
	}
}

func (m *MockStore) Get(key string) (string, bool) {
	if m.GetFunc != nil {
		return m.GetFunc(key)
	}
	v, ok := m.Data[key]
	return v, ok
}

func (m *MockStore) Set(key, value string) error {
	if m.SetFunc != nil {
		return m.SetFunc(key, value)
	}
	m.Data[key] = value
	return nil
}

func (m *MockStore) Remove(key string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(key)
	}
	delete(m.Data, key)
	return nil
}
