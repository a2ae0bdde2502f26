package entity

import (
	"errors"
	"strings"
)

var (
	// ErrDirectoryNotFound каталог датасета отсутствует или не является каталогом.
	ErrDirectoryNotFound = errors.New("directory not found")
	// ErrPermissionDenied каталог датасета нельзя прочитать.
	ErrPermissionDenied = errors.New("permission denied")
	// ErrMalformedAnnotation аннотация не соответствует схеме Pascal VOC.
	ErrMalformedAnnotation = errors.New("malformed annotation")
)

// SchemaError документ аннотации нарушает схему; содержит все найденные причины.
type SchemaError struct {
	Reasons []string
}

func (e *SchemaError) Error() string {
	return "malformed annotation: " + strings.Join(e.Reasons, "; ")
}

func (e *SchemaError) Unwrap() error {
	return ErrMalformedAnnotation
}
