package port

import "context"

// DatasetSource интерфейс read-only доступа к каталогам датасета
type DatasetSource interface {
	// CheckDir проверяет, что каталог существует и доступен для чтения
	CheckDir(ctx context.Context, dir string) error

	// List возвращает отсортированные имена файлов каталога с расширением из exts (без учёта регистра)
	List(ctx context.Context, dir string, exts []string) ([]string, error)

	// ReadFile возвращает содержимое файла
	ReadFile(ctx context.Context, path string) ([]byte, error)
}
