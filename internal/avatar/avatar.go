// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package avatar validates uploaded profile pictures and re-encodes them into
// the canonical square PNG stored on the user record.
package avatar

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/task-manager/internal/config"
	"golang.org/x/image/draw"
)

// ContentType is the media type of every normalized avatar.
const ContentType = "image/png"

var (
	ErrUnsupportedFormat = errors.New("please upload an image")
	ErrTooLarge          = errors.New("file too large")
	ErrEmpty             = errors.New("empty file")
	ErrUndecodable       = errors.New("unable to decode image")
	ErrTooManyPixels     = errors.New("image dimensions too large")
)

var allowedExtensions = map[string]struct{}{
	"jpg":  {},
	"jpeg": {},
	"png":  {},
}

// Normalizer checks uploads against the extension allow-list and the size
// ceiling, then resizes them to Size×Size pixels. The aspect ratio is not
// preserved.
type Normalizer struct {
	maxBytes  int64
	maxPixels int64
	size      int
}

func NewNormalizer(cfg config.Avatar) *Normalizer {
	return &Normalizer{maxBytes: cfg.MaxBytes, maxPixels: cfg.MaxPixels, size: cfg.Size}
}

// MaxBytes is the upload size ceiling.
func (n *Normalizer) MaxBytes() int64 {
	return n.maxBytes
}

// Check rejects an upload by its declared filename and length before any
// decoding happens.
func (n *Normalizer) Check(filename string, length int64) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if _, ok := allowedExtensions[ext]; !ok {
		return ErrUnsupportedFormat
	}
	if length == 0 {
		return ErrEmpty
	}
	if n.maxBytes > 0 && length > n.maxBytes {
		return ErrTooLarge
	}

	return nil
}

// Normalize decodes data and returns the PNG encoding of the resized image.
// The declared dimensions are checked against the pixel cap before decoding.
func (n *Normalizer) Normalize(data []byte) ([]byte, error) {
	if n.maxBytes > 0 && int64(len(data)) > n.maxBytes {
		return nil, ErrTooLarge
	}

	header, _, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUndecodable, err)
	}
	if header.Width <= 0 || header.Height <= 0 {
		return nil, ErrUndecodable
	}
	if n.maxPixels > 0 && int64(header.Width)*int64(header.Height) > n.maxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, header.Width, header.Height)
	}

	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUndecodable, err)
	}

	dst := image.NewRGBA(image.Rect(0, 0, n.size, n.size))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)

	var buf bytes.Buffer
	if err = png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("encoding avatar: %w", err)
	}

	return buf.Bytes(), nil
}
