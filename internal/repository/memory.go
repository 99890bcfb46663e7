package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"plate-capture-service/internal/domain/capture"
)

// MemoryCaptureStore keeps captures in a process-local map with
// incrementing ids. It backs the "memory" storage driver and the pipeline
// tests.
type MemoryCaptureStore struct {
	mu       sync.Mutex
	captures map[int64]capture.Capture
	nextID   int64
}

func NewMemoryCaptureStore() *MemoryCaptureStore {
	return &MemoryCaptureStore{
		captures: make(map[int64]capture.Capture),
		nextID:   1,
	}
}

func (s *MemoryCaptureStore) Create(_ context.Context, imageData []byte) (*capture.Capture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := capture.Capture{
		ID:        s.nextID,
		ImageData: imageData,
		Timestamp: time.Now(),
	}
	s.nextID++
	s.captures[c.ID] = c

	out := c
	return &out, nil
}

func (s *MemoryCaptureStore) SetDetection(_ context.Context, id int64, det *capture.Detection) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.captures[id]
	if !ok {
		return ErrNotFound
	}

	plate := det.PlateNumber
	confidence := det.Confidence
	c.PlateNumber = &plate
	c.Confidence = &confidence
	s.captures[id] = c
	return nil
}

func (s *MemoryCaptureStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.captures, id)
	return nil
}

func (s *MemoryCaptureStore) List(_ context.Context) ([]capture.Capture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]capture.Capture, 0, len(s.captures))
	for _, c := range s.captures {
		result = append(result, c)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].Timestamp.Equal(result[j].Timestamp) {
			return result[i].Timestamp.After(result[j].Timestamp)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

// MemoryWatchlistStore is the in-memory counterpart of
// WatchlistRepository.
type MemoryWatchlistStore struct {
	mu     sync.Mutex
	plates map[int64]capture.WatchedPlate
	nextID int64
}

func NewMemoryWatchlistStore() *MemoryWatchlistStore {
	return &MemoryWatchlistStore{
		plates: make(map[int64]capture.WatchedPlate),
		nextID: 1,
	}
}

func (s *MemoryWatchlistStore) Insert(_ context.Context, plate *capture.WatchedPlate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, p := range s.plates {
		if p.Normalized == plate.Normalized {
			return ErrDuplicatePlate
		}
	}

	plate.ID = s.nextID
	plate.AddedAt = time.Now()
	s.nextID++
	s.plates[plate.ID] = *plate
	return nil
}

func (s *MemoryWatchlistStore) Delete(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.plates, id)
	return nil
}

func (s *MemoryWatchlistStore) List(_ context.Context) ([]capture.WatchedPlate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]capture.WatchedPlate, 0, len(s.plates))
	for _, p := range s.plates {
		result = append(result, p)
	}
	sort.Slice(result, func(i, j int) bool {
		if !result[i].AddedAt.Equal(result[j].AddedAt) {
			return result[i].AddedAt.After(result[j].AddedAt)
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}
