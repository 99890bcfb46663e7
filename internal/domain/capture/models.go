package capture

import (
	"encoding/json"
	"time"
)

// Capture is one ingested still image and its recognition outcome.
// PlateNumber and Confidence are set together or not at all.
type Capture struct {
	ID          int64     `json:"id"`
	ImageData   []byte    `json:"image_data"`
	Timestamp   time.Time `json:"timestamp"`
	PlateNumber *string   `json:"plate_number,omitempty"`
	Confidence  *float64  `json:"confidence,omitempty"`
}

// Recognized reports whether the capture carries a plate reading.
func (c *Capture) Recognized() bool {
	return c.PlateNumber != nil && c.Confidence != nil
}

// Detection is the recognition engine's reading for one image. Raw holds
// the engine's unmodified JSON output.
type Detection struct {
	PlateNumber string          `json:"plate_number"`
	Confidence  float64         `json:"confidence"`
	Raw         json.RawMessage `json:"-"`
}

type WatchedPlate struct {
	ID          int64     `json:"id"`
	PlateNumber string    `json:"plate_number"`
	Normalized  string    `json:"-"`
	Description *string   `json:"description,omitempty"`
	AddedAt     time.Time `json:"added_at"`
}
