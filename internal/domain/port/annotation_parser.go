package port

import "dataset-validator/internal/domain/entity"

// AnnotationParser интерфейс разбора файла аннотации
type AnnotationParser interface {
	// Parse строго разбирает документ; ошибки схемы возвращаются как error
	Parse(data []byte) (*entity.AnnotationRecord, error)
}
