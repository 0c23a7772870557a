package qr

import (
	"bytes"
	"errors"
	"image/png"
	"testing"
)

func TestBadge(t *testing.T) {
	data, err := Badge(" 2022M0000 ", 128)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("not a PNG: %v", err)
	}
	if got := img.Bounds().Dx(); got != 128 {
		t.Errorf("width = %d, want 128", got)
	}
}

func TestBadgeEmpty(t *testing.T) {
	if _, err := Badge("  ", DefaultSize); !errors.Is(err, ErrEmptyPayload) {
		t.Errorf("err = %v, want ErrEmptyPayload", err)
	}
}
