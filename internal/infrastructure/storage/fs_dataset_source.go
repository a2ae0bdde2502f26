package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"dataset-validator/internal/domain/entity"
	"dataset-validator/internal/domain/port"
)

// FSDatasetSource read-only доступ к каталогам датасета на локальном диске
type FSDatasetSource struct{}

// NewFSDatasetSource создаёт источник поверх файловой системы
func NewFSDatasetSource() *FSDatasetSource {
	return &FSDatasetSource{}
}

// CheckDir проверяет существование и читаемость каталога
func (s *FSDatasetSource) CheckDir(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(dir)
	if err != nil {
		return classify(dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", entity.ErrDirectoryNotFound, dir)
	}

	// Stat проходит и без права чтения, поэтому открываем каталог явно.
	f, err := os.Open(dir)
	if err != nil {
		return classify(dir, err)
	}
	return f.Close()
}

// List возвращает файлы каталога с подходящим расширением, отсортированные по имени
func (s *FSDatasetSource) List(ctx context.Context, dir string, exts []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, classify(dir, err)
	}

	allowed := make(map[string]struct{}, len(exts))
	for _, ext := range exts {
		allowed[strings.ToLower(strings.TrimPrefix(ext, "."))] = struct{}{}
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(e.Name()), "."))
		if _, ok := allowed[ext]; ok {
			names = append(names, e.Name())
		}
	}

	return names, nil
}

// ReadFile читает файл целиком
func (s *FSDatasetSource) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(path)
}

// classify приводит ошибки файловой системы к доменным
func classify(dir string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s", entity.ErrDirectoryNotFound, dir)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s", entity.ErrPermissionDenied, dir)
	default:
		return fmt.Errorf("read directory %s: %w", dir, err)
	}
}

// Проверка реализации интерфейса
var _ port.DatasetSource = (*FSDatasetSource)(nil)
