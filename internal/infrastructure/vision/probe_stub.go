//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"dataset-validator/internal/domain/port"
)

// Available сообщает, собран ли пакет с OpenCV.
const Available = false

// ErrUnavailable проба вызвана в сборке без тега gocv.
var ErrUnavailable = errors.New("gocv build tag is not enabled")

// GoCVProbe заглушка (без OpenCV).
type GoCVProbe struct{}

// NewGoCVProbe создаёт пробу-заглушку.
func NewGoCVProbe() *GoCVProbe {
	return &GoCVProbe{}
}

// Dimensions возвращает ошибку, если сборка без тега gocv.
func (p *GoCVProbe) Dimensions(ctx context.Context, imageData []byte) (int, int, error) {
	_ = ctx
	_ = imageData
	return 0, 0, ErrUnavailable
}

var _ port.ImageProbe = (*GoCVProbe)(nil)
