package engine

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"
)

// ImageMagickTranscoder downscales and re-encodes images by running the
// ImageMagick convert tool, one process per call. The image travels over
// stdin, the re-encoded JPEG comes back on stdout.
type ImageMagickTranscoder struct {
	convertPath string
	log         zerolog.Logger
}

func NewImageMagickTranscoder(convertPath string, log zerolog.Logger) (*ImageMagickTranscoder, error) {
	path, err := exec.LookPath(convertPath)
	if err != nil {
		return nil, fmt.Errorf("convert not found: %w", err)
	}
	return &ImageMagickTranscoder{
		convertPath: path,
		log:         log,
	}, nil
}

func (t *ImageMagickTranscoder) Transcode(ctx context.Context, image []byte, scalePercent int) ([]byte, error) {
	cmd := exec.CommandContext(ctx, t.convertPath,
		"-",
		"-resize", fmt.Sprintf("%d%%", scalePercent),
		"jpeg:-",
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(image)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		t.log.Error().
			Err(err).
			Str("stderr", strings.TrimSpace(stderr.String())).
			Int("scale_percent", scalePercent).
			Msg("convert failed")
		return nil, fmt.Errorf("convert failed: %w", err)
	}

	if stdout.Len() == 0 {
		return nil, errors.New("convert produced no output")
	}

	return stdout.Bytes(), nil
}
