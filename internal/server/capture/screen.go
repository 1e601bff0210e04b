package capture

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/kbinani/screenshot"
)

// Seams for testing display capture without a real display.
var (
	numActiveDisplays = screenshot.NumActiveDisplays
	captureDisplay    = func(displayIndex int) (*image.RGBA, error) {
		return screenshot.CaptureDisplay(displayIndex)
	}
)

// Screen captures the primary display and encodes it as PNG.
type Screen struct{}

func NewScreen() *Screen {
	return &Screen{}
}

func (s *Screen) CaptureScreen(ctx context.Context) ([]byte, error) {
	if numActiveDisplays() == 0 {
		return nil, errors.New("no active displays")
	}

	img, err := captureDisplay(0)
	if err != nil {
		return nil, fmt.Errorf("capture display: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}
