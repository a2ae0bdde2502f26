package entity

import (
	"fmt"
	"sort"
)

// Verdict итоговая оценка датасета
type Verdict string

const (
	VerdictPass Verdict = "PASS" // датасет готов к обучению
	VerdictFail Verdict = "FAIL" // есть блокирующие проблемы
)

// ReasonNoValidSamples причина FAIL, когда не найдено ни одной корректной пары.
const ReasonNoValidSamples = "no valid samples"

// LabelCount строка гистограммы меток
type LabelCount struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// ValidationReport итог одного прогона проверки.
type ValidationReport struct {
	ImagesDir      string `json:"images_dir"`
	AnnotationsDir string `json:"annotations_dir"`

	TotalImages      int `json:"total_images"`
	TotalAnnotations int `json:"total_annotations"`
	TotalSamples     int `json:"total_samples"` // пары с общим базовым именем
	ValidSamples     int `json:"valid_samples"`

	UnmatchedImages      []string       `json:"unmatched_images"`
	UnmatchedAnnotations []string       `json:"unmatched_annotations"`
	Issues               []FileIssue    `json:"issues"`
	Labels               map[string]int `json:"labels"`
	Warnings             []string       `json:"warnings"`

	Verdict Verdict  `json:"verdict"`
	Reasons []string `json:"reasons"`
}

// NewValidationReport создаёт пустой отчёт для пары каталогов.
func NewValidationReport(imagesDir, annotationsDir string) *ValidationReport {
	return &ValidationReport{
		ImagesDir:            imagesDir,
		AnnotationsDir:       annotationsDir,
		UnmatchedImages:      []string{},
		UnmatchedAnnotations: []string{},
		Issues:               []FileIssue{},
		Labels:               make(map[string]int),
		Warnings:             []string{},
		Reasons:              []string{},
	}
}

// UnmatchedImageCount число изображений без аннотации
func (r *ValidationReport) UnmatchedImageCount() int {
	return len(r.UnmatchedImages)
}

// UnmatchedAnnotationCount число аннотаций без изображения
func (r *ValidationReport) UnmatchedAnnotationCount() int {
	return len(r.UnmatchedAnnotations)
}

// InvalidCount число аннотаций со структурными ошибками
func (r *ValidationReport) InvalidCount() int {
	return len(r.Issues)
}

// TotalObjects суммарное число объектов в корректных сэмплах
func (r *ValidationReport) TotalObjects() int {
	total := 0
	for _, n := range r.Labels {
		total += n
	}
	return total
}

// Passed true, если вердикт PASS
func (r *ValidationReport) Passed() bool {
	return r.Verdict == VerdictPass
}

// SortedLabels возвращает гистограмму по убыванию частоты, при равенстве по имени.
func (r *ValidationReport) SortedLabels() []LabelCount {
	out := make([]LabelCount, 0, len(r.Labels))
	for label, count := range r.Labels {
		out = append(out, LabelCount{Label: label, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// AddSample учитывает корректный сэмпл в гистограмме.
func (r *ValidationReport) AddSample(record *AnnotationRecord) {
	r.ValidSamples++
	for _, obj := range record.Objects {
		r.Labels[obj.Label]++
	}
}

// AddIssue записывает структурные ошибки файла.
func (r *ValidationReport) AddIssue(issue FileIssue) {
	r.Issues = append(r.Issues, issue)
}

// Finalize вычисляет вердикт. Несопоставленные файлы сами по себе не дают FAIL.
func (r *ValidationReport) Finalize() {
	r.Reasons = r.Reasons[:0]

	if r.ValidSamples == 0 {
		r.Reasons = append(r.Reasons, ReasonNoValidSamples)
	}
	if n := len(r.Issues); n > 0 {
		r.Reasons = append(r.Reasons, fmt.Sprintf("%d annotation(s) with structural errors", n))
	}

	if len(r.Reasons) == 0 {
		r.Verdict = VerdictPass
		return
	}
	r.Verdict = VerdictFail
}
