package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"plate-capture-service/internal/domain/capture"
)

var (
	ErrNotFound       = errors.New("not found")
	ErrDuplicatePlate = errors.New("plate already watched")
)

type CaptureRepository struct {
	db *gorm.DB
}

func NewCaptureRepository(db *gorm.DB) *CaptureRepository {
	return &CaptureRepository{db: db}
}

type Capture struct {
	ID           int64     `gorm:"primaryKey"`
	ImageData    []byte    `gorm:"not null"`
	Timestamp    time.Time `gorm:"not null"`
	PlateNumber  *string
	Confidence   *float64
	EngineOutput datatypes.JSON
}

// Create persists the transcoded image and returns the stored record with
// its assigned id and timestamp.
func (r *CaptureRepository) Create(ctx context.Context, imageData []byte) (*capture.Capture, error) {
	row := Capture{
		ImageData: imageData,
		Timestamp: time.Now(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return nil, err
	}
	return row.toDomain(), nil
}

// SetDetection writes the plate fields of one existing capture in a single
// UPDATE. It never creates a record and never touches the image or the
// timestamp.
func (r *CaptureRepository) SetDetection(ctx context.Context, id int64, det *capture.Detection) error {
	res := r.db.WithContext(ctx).
		Model(&Capture{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"plate_number":  det.PlateNumber,
			"confidence":    det.Confidence,
			"engine_output": datatypes.JSON(det.Raw),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a capture. A missing id is not an error.
func (r *CaptureRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Delete(&Capture{}, id).Error
}

// List returns all captures, most recent first.
func (r *CaptureRepository) List(ctx context.Context) ([]capture.Capture, error) {
	var rows []Capture
	err := r.db.WithContext(ctx).
		Order("timestamp DESC, id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	result := make([]capture.Capture, 0, len(rows))
	for _, row := range rows {
		result = append(result, *row.toDomain())
	}
	return result, nil
}

func (c *Capture) toDomain() *capture.Capture {
	return &capture.Capture{
		ID:          c.ID,
		ImageData:   c.ImageData,
		Timestamp:   c.Timestamp,
		PlateNumber: c.PlateNumber,
		Confidence:  c.Confidence,
	}
}
