//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"fmt"

	"gocv.io/x/gocv"

	"dataset-validator/internal/domain/port"
)

// Available сообщает, собран ли пакет с OpenCV.
const Available = true

// GoCVProbe читает реальные размеры изображения через OpenCV
type GoCVProbe struct{}

// NewGoCVProbe создаёт пробу размеров.
func NewGoCVProbe() *GoCVProbe {
	return &GoCVProbe{}
}

// Dimensions декодирует изображение и возвращает ширину и высоту.
func (p *GoCVProbe) Dimensions(ctx context.Context, imageData []byte) (int, int, error) {
	if err := ctx.Err(); err != nil {
		return 0, 0, err
	}
	if len(imageData) == 0 {
		return 0, 0, errors.New("empty image data")
	}

	// IMReadUnchanged не приводит каналы и не поворачивает по EXIF.
	mat, err := gocv.IMDecode(imageData, gocv.IMReadUnchanged)
	if err != nil {
		return 0, 0, fmt.Errorf("decode image: %w", err)
	}
	defer mat.Close()

	if mat.Empty() {
		return 0, 0, fmt.Errorf("failed to decode image (%d bytes)", len(imageData))
	}
	return mat.Cols(), mat.Rows(), nil
}

var _ port.ImageProbe = (*GoCVProbe)(nil)
