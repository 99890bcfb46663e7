package engine

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

// writeStub drops an executable shell script into dir so the adapters can
// be exercised without ImageMagick or python installed.
func writeStub(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	script := "#!/bin/sh\n" + body + "\n"
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		t.Fatalf("Failed to write stub %s: %v", name, err)
	}
	return path
}

func TestTranscode_ReturnsEngineOutput(t *testing.T) {
	// The stub echoes stdin back, standing in for convert's stdout JPEG.
	path := writeStub(t, t.TempDir(), "convert", "cat")

	tr, err := NewImageMagickTranscoder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to create transcoder: %v", err)
	}

	input := []byte("fake image bytes")
	out, err := tr.Transcode(context.Background(), input, 50)
	if err != nil {
		t.Fatalf("Transcode failed: %v", err)
	}
	if !bytes.Equal(out, input) {
		t.Errorf("Expected stub output %q, got %q", input, out)
	}
}

func TestTranscode_NonZeroExitIsAnError(t *testing.T) {
	path := writeStub(t, t.TempDir(), "convert", "cat >/dev/null\necho 'convert: corrupt image' >&2\nexit 1")

	tr, err := NewImageMagickTranscoder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to create transcoder: %v", err)
	}

	if _, err := tr.Transcode(context.Background(), []byte("broken"), 50); err == nil {
		t.Fatal("Expected an error for non-zero exit")
	}
}

func TestTranscode_EmptyOutputIsAnError(t *testing.T) {
	path := writeStub(t, t.TempDir(), "convert", "cat >/dev/null")

	tr, err := NewImageMagickTranscoder(path, zerolog.Nop())
	if err != nil {
		t.Fatalf("Failed to create transcoder: %v", err)
	}

	if _, err := tr.Transcode(context.Background(), []byte("img"), 50); err == nil {
		t.Fatal("Expected an error when the engine produces no output")
	}
}

func TestNewImageMagickTranscoder_MissingBinary(t *testing.T) {
	if _, err := NewImageMagickTranscoder(filepath.Join(t.TempDir(), "no-such-convert"), zerolog.Nop()); err == nil {
		t.Fatal("Expected an error for a missing binary")
	}
}
