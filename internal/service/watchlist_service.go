package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"plate-capture-service/internal/domain/capture"
	"plate-capture-service/internal/repository"
	"plate-capture-service/internal/utils"
)

var ErrDuplicatePlate = errors.New("plate already watched")

// WatchlistStore is the persistence contract for the watched-plate
// registry. The registry is an independent resource: nothing in the
// ingestion pipeline reads it.
type WatchlistStore interface {
	Insert(ctx context.Context, plate *capture.WatchedPlate) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]capture.WatchedPlate, error)
}

type WatchlistService struct {
	store WatchlistStore
	log   zerolog.Logger
}

func NewWatchlistService(store WatchlistStore, log zerolog.Logger) *WatchlistService {
	return &WatchlistService{
		store: store,
		log:   log,
	}
}

// Add registers a plate to watch. Uniqueness is decided on the normalized
// form, so "ab-12 345" conflicts with "AB12345".
func (s *WatchlistService) Add(ctx context.Context, plateNumber string, description *string) (*capture.WatchedPlate, error) {
	normalized := utils.NormalizePlate(plateNumber)
	if normalized == "" {
		return nil, fmt.Errorf("%w: plate number is required", ErrInvalidInput)
	}

	plate := &capture.WatchedPlate{
		PlateNumber: plateNumber,
		Normalized:  normalized,
		Description: description,
	}
	if err := s.store.Insert(ctx, plate); err != nil {
		if errors.Is(err, repository.ErrDuplicatePlate) {
			return nil, fmt.Errorf("%w: %s", ErrDuplicatePlate, plateNumber)
		}
		s.log.Error().Err(err).Str("plate", normalized).Msg("failed to add watched plate")
		return nil, fmt.Errorf("failed to add watched plate: %w", err)
	}

	s.log.Info().
		Int64("watched_plate_id", plate.ID).
		Str("plate", normalized).
		Msg("watched plate added")

	return plate, nil
}

// Remove deletes a watched plate; a missing id succeeds.
func (s *WatchlistService) Remove(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to remove watched plate: %w", err)
	}
	return nil
}

func (s *WatchlistService) List(ctx context.Context) ([]capture.WatchedPlate, error) {
	plates, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list watched plates: %w", err)
	}
	return plates, nil
}
