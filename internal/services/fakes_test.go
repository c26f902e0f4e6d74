package services

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"alfredoptarigan/cv-analyzer/internal/models"
)

type memoryStorage struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemoryStorage() *memoryStorage {
	return &memoryStorage{files: map[string][]byte{}}
}

func (m *memoryStorage) Save(_ context.Context, name string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := storageKey(name)
	m.files[key] = data
	return key, nil
}

func (m *memoryStorage) Read(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[key]
	if !ok {
		return nil, ErrFileNotFound
	}
	return data, nil
}

func (m *memoryStorage) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.files[key]; !ok {
		return ErrFileNotFound
	}
	delete(m.files, key)
	return nil
}

func (m *memoryStorage) EnsureReady(context.Context) error { return nil }

func (m *memoryStorage) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

type recordingNotifier struct {
	mu      sync.Mutex
	updates []StatusUpdate
}

func (n *recordingNotifier) Publish(_ context.Context, u StatusUpdate) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.updates = append(n.updates, u)
	return nil
}

func (n *recordingNotifier) Close() error { return nil }

func (n *recordingNotifier) statuses() []models.AnalysisStatus {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]models.AnalysisStatus, len(n.updates))
	for i, u := range n.updates {
		out[i] = u.Status
	}
	return out
}

type fakeEmbedder struct {
	calls int
	err   error
}

func (f *fakeEmbedder) GenerateEmbedding(_ context.Context, text string) ([]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return []float32{float32(len(text)), 1}, nil
}

type fakeVectorStore struct {
	points  map[uuid.UUID]ResumePoint
	results []SearchResult
}

func newFakeVectorStore() *fakeVectorStore {
	return &fakeVectorStore{points: map[uuid.UUID]ResumePoint{}}
}

func (f *fakeVectorStore) InitCollection(context.Context) error { return nil }

func (f *fakeVectorStore) Upsert(_ context.Context, p ResumePoint) error {
	f.points[p.AnalysisID] = p
	return nil
}

func (f *fakeVectorStore) SearchSimilar(_ context.Context, _ []float32, limit int) ([]SearchResult, error) {
	if len(f.results) > limit {
		return f.results[:limit], nil
	}
	return f.results, nil
}

func (f *fakeVectorStore) DeleteAnalysis(_ context.Context, id uuid.UUID) error {
	delete(f.points, id)
	return nil
}
