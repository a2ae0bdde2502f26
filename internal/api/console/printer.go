// Package console выводит отчёт проверки в человекочитаемом виде.
package console

import (
	"fmt"
	"io"
	"strings"

	"dataset-validator/internal/domain/entity"
)

// listLimit сколько несопоставленных файлов показывать в каждом списке
const listLimit = 5

var (
	ruleHeavy = strings.Repeat("=", 70)
	ruleLight = strings.Repeat("-", 70)
)

// Printer печатает отчёт в writer
type Printer struct {
	w io.Writer
}

// NewPrinter создаёт принтер поверх writer
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print печатает отчёт целиком
func (p *Printer) Print(r *entity.ValidationReport) error {
	b := &strings.Builder{}

	fmt.Fprintln(b, ruleHeavy)
	fmt.Fprintln(b, "Pascal VOC Dataset Verification")
	fmt.Fprintln(b, ruleHeavy)
	fmt.Fprintf(b, "Images dir:       %s\n", r.ImagesDir)
	fmt.Fprintf(b, "Annotations dir:  %s\n", r.AnnotationsDir)
	fmt.Fprintln(b)
	fmt.Fprintf(b, "Found %d image files\n", r.TotalImages)
	fmt.Fprintf(b, "Found %d annotation XML files\n", r.TotalAnnotations)
	fmt.Fprintf(b, "Matching pairs:      %d\n", r.TotalSamples)
	fmt.Fprintf(b, "Images without XML:  %d\n", r.UnmatchedImageCount())
	fmt.Fprintf(b, "XMLs without images: %d\n", r.UnmatchedAnnotationCount())
	fmt.Fprintln(b)

	writeList(b, "Images without annotations:", r.UnmatchedImages)
	writeList(b, "Annotations without images:", r.UnmatchedAnnotations)
	for _, w := range r.Warnings {
		fmt.Fprintf(b, "[WARNING] %s\n", w)
	}

	fmt.Fprintln(b, ruleLight)
	fmt.Fprintln(b, "Annotation errors")
	fmt.Fprintln(b, ruleLight)
	if len(r.Issues) == 0 {
		fmt.Fprintln(b, "  none")
	}
	for _, issue := range r.Issues {
		fmt.Fprintf(b, "[ERROR] %s\n", issue.File)
		for _, reason := range issue.Reasons {
			fmt.Fprintf(b, "  - %s\n", reason)
		}
	}
	fmt.Fprintln(b)

	fmt.Fprintln(b, ruleLight)
	fmt.Fprintln(b, "Label Summary")
	fmt.Fprintln(b, ruleLight)
	labels := r.SortedLabels()
	if len(labels) == 0 {
		fmt.Fprintln(b, "[WARNING] No labels found in valid annotations!")
	}
	for _, lc := range labels {
		fmt.Fprintf(b, "  %-20s: %4d objects\n", lc.Label, lc.Count)
	}
	if len(labels) > 0 {
		fmt.Fprintln(b)
		fmt.Fprintf(b, "Total unique labels: %d\n", len(labels))
		fmt.Fprintf(b, "Total objects: %d\n", r.TotalObjects())
	}
	fmt.Fprintln(b)

	fmt.Fprintln(b, ruleHeavy)
	if r.Passed() {
		fmt.Fprintf(b, "[PASS] Ready to train with %d valid image/annotation pairs\n", r.ValidSamples)
	} else {
		fmt.Fprintln(b, "[FAIL] Dataset has issues:")
		for _, reason := range r.Reasons {
			fmt.Fprintf(b, "  - %s\n", reason)
		}
	}

	_, err := io.WriteString(p.w, b.String())
	return err
}

func writeList(b *strings.Builder, title string, names []string) {
	if len(names) == 0 {
		return
	}
	fmt.Fprintf(b, "[WARNING] %s\n", title)
	for i, name := range names {
		if i == listLimit {
			fmt.Fprintf(b, "  ... and %d more\n", len(names)-listLimit)
			break
		}
		fmt.Fprintf(b, "  - %s\n", name)
	}
}
