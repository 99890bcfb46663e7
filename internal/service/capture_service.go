package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"

	_ "image/jpeg"
	_ "image/png"

	"github.com/rs/zerolog"

	"plate-capture-service/internal/domain/capture"
	"plate-capture-service/internal/repository"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrTranscodeFailed = errors.New("transcode failed")
	ErrNotFound        = errors.New("not found")
)

// CaptureStore is the persistence contract the pipeline writes through.
// Both the Postgres repository and the in-memory store satisfy it.
type CaptureStore interface {
	Create(ctx context.Context, imageData []byte) (*capture.Capture, error)
	SetDetection(ctx context.Context, id int64, det *capture.Detection) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]capture.Capture, error)
}

type Transcoder interface {
	Transcode(ctx context.Context, image []byte, scalePercent int) ([]byte, error)
}

// Recognizer returns (nil, nil) when the engine ran but found no plate.
type Recognizer interface {
	Recognize(ctx context.Context, image []byte) (*capture.Detection, error)
}

type CaptureService struct {
	store        CaptureStore
	transcoder   Transcoder
	recognizer   Recognizer
	scalePercent int
	log          zerolog.Logger
}

func NewCaptureService(store CaptureStore, transcoder Transcoder, recognizer Recognizer, scalePercent int, log zerolog.Logger) *CaptureService {
	return &CaptureService{
		store:        store,
		transcoder:   transcoder,
		recognizer:   recognizer,
		scalePercent: scalePercent,
		log:          log,
	}
}

// Ingest runs one image through transcode, store and recognition.
//
// Transcoding failure is fatal and leaves no record behind; a capture whose
// image cannot be read is not worth keeping. Recognition is best-effort
// enrichment: if the engine fails, or the plate update cannot be written,
// the stored capture is still returned without plate fields.
func (s *CaptureService) Ingest(ctx context.Context, rawImage []byte) (*capture.Capture, error) {
	if len(rawImage) == 0 {
		return nil, fmt.Errorf("%w: empty image", ErrInvalidInput)
	}
	if _, _, err := image.DecodeConfig(bytes.NewReader(rawImage)); err != nil {
		return nil, fmt.Errorf("%w: not a supported image encoding", ErrInvalidInput)
	}

	// Once accepted, the capture is finished and persisted even if the
	// caller goes away mid-request.
	ctx = context.WithoutCancel(ctx)

	scaled, err := s.transcoder.Transcode(ctx, rawImage, s.scalePercent)
	if err != nil {
		s.log.Error().Err(err).Msg("transcoding failed, capture rejected")
		return nil, fmt.Errorf("%w: %v", ErrTranscodeFailed, err)
	}

	rec, err := s.store.Create(ctx, scaled)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to create capture")
		return nil, fmt.Errorf("failed to create capture: %w", err)
	}

	s.log.Info().
		Int64("capture_id", rec.ID).
		Int("raw_bytes", len(rawImage)).
		Int("stored_bytes", len(scaled)).
		Msg("capture stored")

	det, err := s.recognizer.Recognize(ctx, scaled)
	if err != nil {
		s.log.Warn().
			Err(err).
			Int64("capture_id", rec.ID).
			Msg("recognition failed, capture kept without plate")
		return rec, nil
	}
	if det == nil {
		s.log.Debug().
			Int64("capture_id", rec.ID).
			Msg("no plate detected")
		return rec, nil
	}

	if err := s.store.SetDetection(ctx, rec.ID, det); err != nil {
		// The detection is discarded here; the caller still gets the
		// capture as created, without plate fields.
		s.log.Error().
			Err(err).
			Int64("capture_id", rec.ID).
			Str("plate", det.PlateNumber).
			Msg("failed to write detection, plate reading lost")
		return rec, nil
	}

	plate := det.PlateNumber
	confidence := det.Confidence
	rec.PlateNumber = &plate
	rec.Confidence = &confidence

	s.log.Info().
		Int64("capture_id", rec.ID).
		Str("plate", plate).
		Float64("confidence", confidence).
		Msg("plate recognized")

	return rec, nil
}

func (s *CaptureService) List(ctx context.Context) ([]capture.Capture, error) {
	captures, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list captures: %w", err)
	}
	return captures, nil
}

// Delete removes a capture; deleting an id that does not exist succeeds.
func (s *CaptureService) Delete(ctx context.Context, id int64) error {
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("failed to delete capture: %w", err)
	}
	return nil
}
