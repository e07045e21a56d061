package genclient

import (
	"context"
	"sync"

	"artify/internal/models/request_models"
)

type Image struct {
	URL string `json:"url"`
}

// Snapshot is an observable view of the store: a request in flight, the
// images of the last completed call, or the last error.
type Snapshot struct {
	Loading bool
	Images  []Image
	Err     string
}

// GenerateFunc performs one generation call (typically POST /api/image/generate).
type GenerateFunc func(ctx context.Context, req request_models.GenerateImageRequest) ([]Image, error)

// Store coordinates in-progress image generation for a UI client. A second
// call issued while one is in flight is not cancelled; whichever call
// finishes last wins the shared state, and the store is always ready for a
// new call afterwards.
type Store struct {
	mu       sync.Mutex
	generate GenerateFunc

	loading bool
	images  []Image
	err     string
}

func NewStore(generate GenerateFunc) *Store {
	return &Store{generate: generate}
}

func (s *Store) Generate(ctx context.Context, req request_models.GenerateImageRequest) {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.mu.Unlock()

	images, err := s.generate(ctx, req)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		return
	}
	s.images = images
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	images := make([]Image, len(s.images))
	copy(images, s.images)
	return Snapshot{Loading: s.loading, Images: images, Err: s.err}
}
