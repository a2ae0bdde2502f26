package app

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"dataset-validator/internal/domain/entity"
	"dataset-validator/internal/domain/port"
)

var (
	// ImageExtensions допустимые расширения изображений (без учёта регистра).
	ImageExtensions = []string{"jpg", "jpeg", "png", "bmp"}
	// AnnotationExtensions допустимые расширения аннотаций.
	AnnotationExtensions = []string{"xml"}
)

// Options параметры прогона проверки
type Options struct {
	Workers   int // число параллельных проверок сэмплов
	MinImages int // порог предупреждения о малом датасете, 0 отключает
}

type ValidationService struct {
	source    port.DatasetSource
	parser    port.AnnotationParser
	probe     port.ImageProbe
	workers   int
	minImages int
}

// NewValidationService создаёт сервис проверки датасета. probe может быть nil,
// тогда реальные размеры изображений не сверяются.
func NewValidationService(source port.DatasetSource, parser port.AnnotationParser, probe port.ImageProbe, opts Options) *ValidationService {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	return &ValidationService{
		source:    source,
		parser:    parser,
		probe:     probe,
		workers:   workers,
		minImages: opts.MinImages,
	}
}

// sampleResult итог проверки одного сэмпла: либо запись, либо причины отказа.
type sampleResult struct {
	record  *entity.AnnotationRecord
	reasons []string
}

// Validate проверяет пару каталогов и возвращает отчёт. Ошибка возвращается
// только для недоступных каталогов и отмены контекста; проблемы отдельных
// файлов попадают в отчёт.
func (s *ValidationService) Validate(ctx context.Context, imagesDir, annotationsDir string) (*entity.ValidationReport, error) {
	for _, dir := range []string{imagesDir, annotationsDir} {
		if err := s.source.CheckDir(ctx, dir); err != nil {
			return nil, err
		}
	}

	images, err := s.source.List(ctx, imagesDir, ImageExtensions)
	if err != nil {
		return nil, err
	}
	annotations, err := s.source.List(ctx, annotationsDir, AnnotationExtensions)
	if err != nil {
		return nil, err
	}

	report := entity.NewValidationReport(imagesDir, annotationsDir)
	report.TotalImages = len(images)
	report.TotalAnnotations = len(annotations)

	imageByBase := indexByBasename(report, "image", images)
	annotationByBase := indexByBasename(report, "annotation", annotations)

	if s.minImages > 0 && len(images) < s.minImages {
		report.Warnings = append(report.Warnings,
			fmt.Sprintf("only %d images found, at least %d recommended for meaningful training", len(images), s.minImages))
	}

	samples := make([]entity.Sample, 0, len(annotationByBase))
	for _, base := range sortedKeys(imageByBase) {
		annotation, ok := annotationByBase[base]
		if !ok {
			report.UnmatchedImages = append(report.UnmatchedImages, imageByBase[base])
			continue
		}
		samples = append(samples, entity.Sample{
			Basename:       base,
			ImagePath:      filepath.Join(imagesDir, imageByBase[base]),
			AnnotationPath: filepath.Join(annotationsDir, annotation),
		})
	}
	for _, base := range sortedKeys(annotationByBase) {
		if _, ok := imageByBase[base]; !ok {
			report.UnmatchedAnnotations = append(report.UnmatchedAnnotations, annotationByBase[base])
		}
	}
	report.TotalSamples = len(samples)

	// Каждый воркер пишет только в свой слот, порядок слотов совпадает с порядком имён.
	results := make([]sampleResult, len(samples))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, sample := range samples {
		g.Go(func() error {
			res, err := s.checkSample(gctx, sample)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, res := range results {
		if len(res.reasons) > 0 {
			report.AddIssue(entity.FileIssue{
				Basename: samples[i].Basename,
				File:     filepath.Base(samples[i].AnnotationPath),
				Reasons:  res.reasons,
			})
			continue
		}
		report.AddSample(res.record)
	}

	report.Finalize()
	return report, nil
}

// checkSample разбирает и проверяет один сэмпл. Ошибка означает только отмену.
func (s *ValidationService) checkSample(ctx context.Context, sample entity.Sample) (sampleResult, error) {
	data, err := s.source.ReadFile(ctx, sample.AnnotationPath)
	if err != nil {
		if isCancelled(err) {
			return sampleResult{}, err
		}
		return sampleResult{reasons: []string{fmt.Sprintf("cannot read annotation: %v", err)}}, nil
	}

	record, err := s.parser.Parse(data)
	if err != nil {
		var schemaErr *entity.SchemaError
		if errors.As(err, &schemaErr) {
			return sampleResult{reasons: schemaErr.Reasons}, nil
		}
		return sampleResult{reasons: []string{err.Error()}}, nil
	}

	reasons := record.Problems(sample.Basename)

	if s.probe != nil {
		reason, err := s.probeImage(ctx, sample.ImagePath, record)
		if err != nil {
			return sampleResult{}, err
		}
		if reason != "" {
			reasons = append(reasons, reason)
		}
	}

	if len(reasons) > 0 {
		return sampleResult{reasons: reasons}, nil
	}
	return sampleResult{record: record}, nil
}

// probeImage сверяет объявленный размер с реальным размером изображения.
func (s *ValidationService) probeImage(ctx context.Context, imagePath string, record *entity.AnnotationRecord) (string, error) {
	data, err := s.source.ReadFile(ctx, imagePath)
	if err != nil {
		if isCancelled(err) {
			return "", err
		}
		return fmt.Sprintf("cannot read image %s: %v", filepath.Base(imagePath), err), nil
	}

	width, height, err := s.probe.Dimensions(ctx, data)
	if err != nil {
		if isCancelled(err) {
			return "", err
		}
		return fmt.Sprintf("cannot decode image %s: %v", filepath.Base(imagePath), err), nil
	}

	if width != record.ImageWidth || height != record.ImageHeight {
		return fmt.Sprintf("declared size %dx%d does not match image %s size %dx%d",
			record.ImageWidth, record.ImageHeight, filepath.Base(imagePath), width, height), nil
	}
	return "", nil
}

// indexByBasename строит отображение базовое имя -> файл. При дубликатах
// берётся первый по порядку файл, остальные отмечаются предупреждением.
func indexByBasename(report *entity.ValidationReport, kind string, names []string) map[string]string {
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	index := make(map[string]string, len(sorted))
	for _, name := range sorted {
		base := entity.Basename(name)
		if first, ok := index[base]; ok {
			report.Warnings = append(report.Warnings,
				fmt.Sprintf("duplicate %s basename %q: using %s, ignoring %s", kind, base, first, name))
			continue
		}
		index[base] = name
	}
	return index
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func isCancelled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
