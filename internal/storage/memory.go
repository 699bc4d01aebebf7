package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
)

// Memory is an in-process store used by tests and local demos.
type Memory struct {
	mu      sync.RWMutex
	baseURL string
	objects map[string]memoryObject
	// FailPut, when set, is returned by every Put.
	FailPut error
}

type memoryObject struct {
	data        []byte
	contentType string
}

// NewMemory creates an empty store whose URLs start with baseURL.
func NewMemory(baseURL string) *Memory {
	if baseURL == "" {
		baseURL = "memory://media"
	}
	return &Memory{baseURL: strings.TrimSuffix(baseURL, "/"), objects: make(map[string]memoryObject)}
}

func (m *Memory) Put(ctx context.Context, key string, body io.Reader, contentType string) (string, error) {
	if m.FailPut != nil {
		return "", m.FailPut
	}
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	m.objects[key] = memoryObject{data: data, contentType: contentType}
	m.mu.Unlock()

	return m.PublicURL(key), nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	key, err := cleanKey(key)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[key]; !ok {
		return ErrObjectNotFound
	}
	delete(m.objects, key)
	return nil
}

func (m *Memory) PublicURL(key string) string {
	return m.baseURL + "/" + strings.TrimPrefix(key, "/")
}

// Get returns a stored object's bytes and content type.
func (m *Memory) Get(key string) ([]byte, string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	obj, ok := m.objects[key]
	if !ok {
		return nil, "", false
	}
	return bytes.Clone(obj.data), obj.contentType, true
}

// Keys lists stored object keys with the given prefix.
func (m *Memory) Keys(prefix string) []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var keys []string
	for key := range m.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys
}
