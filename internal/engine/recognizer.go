package engine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"plate-capture-service/internal/domain/capture"
)

// PlateDetector runs the YOLO-based detector script, one python process per
// call. The image travels over stdin; the script prints a single JSON object
// on stdout, with a null plate_number when nothing was detected.
type PlateDetector struct {
	pythonPath string
	scriptPath string
	modelPath  string
	log        zerolog.Logger
}

type detectorOutput struct {
	PlateNumber *string `json:"plate_number"`
	Confidence  float64 `json:"confidence"`
}

func NewPlateDetector(pythonPath, scriptPath, modelPath string, log zerolog.Logger) (*PlateDetector, error) {
	path, err := exec.LookPath(pythonPath)
	if err != nil {
		return nil, fmt.Errorf("python not found: %w", err)
	}
	return &PlateDetector{
		pythonPath: path,
		scriptPath: scriptPath,
		modelPath:  modelPath,
		log:        log,
	}, nil
}

// Recognize returns (nil, nil) when the detector ran but found no plate.
func (d *PlateDetector) Recognize(ctx context.Context, image []byte) (*capture.Detection, error) {
	cmd := exec.CommandContext(ctx, d.pythonPath,
		d.scriptPath,
		"--model", d.modelPath,
		"--image", "-",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(image)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		d.log.Error().
			Err(err).
			Str("stderr", strings.TrimSpace(stderr.String())).
			Msg("detector failed")
		return nil, fmt.Errorf("detector failed: %w", err)
	}

	raw := bytes.TrimSpace(stdout.Bytes())
	var out detectorOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to parse detector output: %w", err)
	}

	if out.PlateNumber == nil || *out.PlateNumber == "" {
		return nil, nil
	}

	return &capture.Detection{
		PlateNumber: *out.PlateNumber,
		Confidence:  out.Confidence,
		Raw:         json.RawMessage(raw),
	}, nil
}
