package auth

// MockStore is an in-memory auth store for testing.
type MockStore struct {
	keys map[string]string
}

func NewMockStore() *MockStore {
	return &MockStore{keys: make(map[string]string)}
}

func (m *MockStore) SetKey(host string, key string) error {
	m.keys[NormalizeHost(host)] = key
	return nil
}

func (m *MockStore) GetKey(host string) (string, error) {
	key, ok := m.keys[NormalizeHost(host)]
	if !ok {
		return "", ErrKeyNotFound
	}
	return key, nil
}

func (m *MockStore) DeleteKey(host string) error {
	host = NormalizeHost(host)
	if _, ok := m.keys[host]; !ok {
		return ErrKeyNotFound
	}
	delete(m.keys, host)
	return nil
}
