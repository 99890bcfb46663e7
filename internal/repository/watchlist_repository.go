package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"plate-capture-service/internal/domain/capture"
)

type WatchlistRepository struct {
	db *gorm.DB
}

func NewWatchlistRepository(db *gorm.DB) *WatchlistRepository {
	return &WatchlistRepository{db: db}
}

type WatchedPlate struct {
	ID          int64     `gorm:"primaryKey"`
	PlateNumber string    `gorm:"not null"`
	Normalized  string    `gorm:"not null;uniqueIndex"`
	Description *string
	AddedAt     time.Time `gorm:"not null"`
}

// Insert adds a watched plate. The normalized form is unique; a second
// insert of the same plate returns ErrDuplicatePlate.
func (r *WatchlistRepository) Insert(ctx context.Context, plate *capture.WatchedPlate) error {
	row := WatchedPlate{
		PlateNumber: plate.PlateNumber,
		Normalized:  plate.Normalized,
		Description: plate.Description,
		AddedAt:     time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicatePlate
		}
		return err
	}

	plate.ID = row.ID
	plate.AddedAt = row.AddedAt
	return nil
}

// Delete removes a watched plate. A missing id is not an error.
func (r *WatchlistRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&WatchedPlate{}, id).Error
}

// List returns all watched plates, most recently added first.
func (r *WatchlistRepository) List(ctx context.Context) ([]capture.WatchedPlate, error) {
	var rows []WatchedPlate
	err := r.db.WithContext(ctx).
		Order("added_at DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]capture.WatchedPlate, 0, len(rows))
	for _, row := range rows {
		result = append(result, capture.WatchedPlate{
			ID:          row.ID,
			PlateNumber: row.PlateNumber,
			Normalized:  row.Normalized,
			Description: row.Description,
			AddedAt:     row.AddedAt,
		})
	}
	return result, nil
}
