package entity

import (
	"fmt"
	"path"
	"strings"
)

// AnnotationRecord разобранный файл аннотации.
type AnnotationRecord struct {
	Filename    string         // имя изображения, объявленное в аннотации
	ImageWidth  int            // ширина изображения
	ImageHeight int            // высота изображения
	ImageDepth  int            // число каналов
	Objects     []ObjectRegion // размеченные объекты
}

// Problems проверяет инварианты записи. basename — имя файла аннотации
// без расширения; оно считается главным при сверке с Filename.
func (a *AnnotationRecord) Problems(basename string) []string {
	var problems []string

	if a.ImageWidth <= 0 || a.ImageHeight <= 0 || a.ImageDepth <= 0 {
		problems = append(problems, fmt.Sprintf("image size must be positive, got %dx%dx%d",
			a.ImageWidth, a.ImageHeight, a.ImageDepth))
	}

	if declared := Basename(a.Filename); declared != basename {
		problems = append(problems, fmt.Sprintf("declared filename %q does not match annotation basename %q",
			a.Filename, basename))
	}

	if len(a.Objects) == 0 {
		problems = append(problems, "annotation has no objects")
	}

	for i, obj := range a.Objects {
		problems = append(problems, obj.Problems(i, a.ImageWidth, a.ImageHeight)...)
	}

	return problems
}

// Basename возвращает имя файла без каталога и расширения.
func Basename(name string) string {
	base := path.Base(strings.ReplaceAll(name, `\`, "/"))
	if base == "." || base == "/" {
		return ""
	}
	return strings.TrimSuffix(base, path.Ext(base))
}
