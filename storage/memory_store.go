package storage

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/pkg/errors"
)

// MemoryImageStore keeps images in process memory. Tests use it in place of S3.
type MemoryImageStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	next    int
}

func NewMemoryImageStore() *MemoryImageStore {
	return &MemoryImageStore{objects: make(map[string][]byte)}
}

func (m *MemoryImageStore) Save(ctx context.Context, ownerID uint, fileName, contentType string, body io.Reader) (string, error) {
	if !IsAllowedImageType(contentType) {
		return "", ErrUnsupportedImage
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", errors.Wrap(err, "read image")
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	url := fmt.Sprintf("memory://discussions/%d/%d_%s", ownerID, m.next, fileName)
	m.objects[url] = data
	return url, nil
}

func (m *MemoryImageStore) Delete(ctx context.Context, url string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[url]; !ok {
		return errors.Errorf("image %s not found", url)
	}
	delete(m.objects, url)
	return nil
}

// Has reports whether url is currently stored.
func (m *MemoryImageStore) Has(url string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.objects[url]
	return ok
}
