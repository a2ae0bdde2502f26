package entity

import "fmt"

// ObjectRegion размеченная область объекта на изображении
type ObjectRegion struct {
	Label string // имя класса
	XMin  int    // левая граница
	YMin  int    // верхняя граница
	XMax  int    // правая граница
	YMax  int    // нижняя граница
}

// Width возвращает ширину области в пикселях
func (r ObjectRegion) Width() int {
	return r.XMax - r.XMin
}

// Height возвращает высоту области в пикселях
func (r ObjectRegion) Height() int {
	return r.YMax - r.YMin
}

// Center возвращает координаты центра области
func (r ObjectRegion) Center() (x, y int) {
	return r.XMin + r.Width()/2, r.YMin + r.Height()/2
}

// Problems проверяет область относительно размеров изображения и возвращает
// список нарушений. index используется только в тексте причин.
func (r ObjectRegion) Problems(index, imageWidth, imageHeight int) []string {
	prefix := fmt.Sprintf("object %d: ", index)
	var problems []string

	if r.Label == "" {
		problems = append(problems, prefix+"empty label")
	}
	if r.XMin >= r.XMax {
		problems = append(problems, prefix+fmt.Sprintf("invalid rectangle: xmin %d >= xmax %d", r.XMin, r.XMax))
	}
	if r.YMin >= r.YMax {
		problems = append(problems, prefix+fmt.Sprintf("invalid rectangle: ymin %d >= ymax %d", r.YMin, r.YMax))
	}
	if r.XMin < 0 || r.YMin < 0 || r.XMax < 0 || r.YMax < 0 {
		problems = append(problems, prefix+"bounding box has negative coordinates")
	}
	if imageWidth > 0 && (r.XMin >= imageWidth || r.XMax >= imageWidth) {
		problems = append(problems, prefix+fmt.Sprintf("bounding box exceeds image width %d", imageWidth))
	}
	if imageHeight > 0 && (r.YMin >= imageHeight || r.YMax >= imageHeight) {
		problems = append(problems, prefix+fmt.Sprintf("bounding box exceeds image height %d", imageHeight))
	}

	return problems
}
