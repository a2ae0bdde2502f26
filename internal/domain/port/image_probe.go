package port

import "context"

// ImageProbe интерфейс чтения реальных размеров изображения
type ImageProbe interface {
	// Dimensions декодирует изображение и возвращает ширину и высоту
	Dimensions(ctx context.Context, imageData []byte) (width, height int, err error)
}
