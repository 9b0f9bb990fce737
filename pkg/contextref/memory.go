package contextref

import (
	"context"
	"sync"
)

// MemoryResolver is an in-memory Resolver backed by a map. It is the store
// used by tests and by single-process setups that load context assets at
// startup.
type MemoryResolver struct {
	mu     sync.RWMutex
	assets map[string]string
}

// NewMemoryResolver creates an empty in-memory resolver.
func NewMemoryResolver() *MemoryResolver {
	return &MemoryResolver{assets: make(map[string]string)}
}

// Put stores content under a path. The path must be valid.
func (m *MemoryResolver) Put(_ context.Context, path, content string) error {
	if err := ValidatePath(path); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.assets[path] = content
	return nil
}

// Delete removes the content stored under a path, if any.
func (m *MemoryResolver) Delete(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.assets, path)
}

// Resolve performs a single lookup.
func (m *MemoryResolver) Resolve(_ context.Context, path string) (Resolution, error) {
	if err := ValidatePath(path); err != nil {
		return Resolution{Path: path, Err: err}, nil
	}

	m.mu.RLock()
	content, ok := m.assets[path]
	m.mu.RUnlock()

	if !ok {
		return Resolution{Path: path, Err: &NotFoundError{Path: path}}, nil
	}
	return Resolution{Path: path, Content: content}, nil
}

// ResolveBatch resolves many paths in one pass under a single lock.
func (m *MemoryResolver) ResolveBatch(ctx context.Context, paths []string) (BatchResult, error) {
	result := make(BatchResult, len(paths))
	for _, path := range paths {
		res, err := m.Resolve(ctx, path)
		if err != nil {
			return nil, err
		}
		result[path] = res
	}
	return result, nil
}
