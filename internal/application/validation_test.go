package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"dataset-validator/internal/domain/entity"
	"dataset-validator/internal/infrastructure/storage"
	"dataset-validator/internal/infrastructure/voc"
)

type dataset struct {
	images      string
	annotations string
}

func newDataset(t *testing.T) dataset {
	t.Helper()
	root := t.TempDir()
	d := dataset{
		images:      filepath.Join(root, "images"),
		annotations: filepath.Join(root, "annotations"),
	}
	require.NoError(t, os.Mkdir(d.images, 0o755))
	require.NoError(t, os.Mkdir(d.annotations, 0o755))
	return d
}

func (d dataset) image(t *testing.T, name string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(d.images, name), []byte("jpeg"), 0o644))
}

func (d dataset) annotation(t *testing.T, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(d.annotations, name), []byte(body), 0o644))
}

func vocXML(filename, label string, xmin, ymin, xmax, ymax int) string {
	return fmt.Sprintf(`<annotation>
  <filename>%s</filename>
  <size><width>100</width><height>80</height><depth>3</depth></size>
  <object>
    <name>%s</name>
    <bndbox><xmin>%d</xmin><ymin>%d</ymin><xmax>%d</xmax><ymax>%d</ymax></bndbox>
  </object>
</annotation>`, filename, label, xmin, ymin, xmax, ymax)
}

func newService(probe *fakeProbe) *ValidationService {
	opts := Options{Workers: 4}
	if probe == nil {
		return NewValidationService(storage.NewFSDatasetSource(), voc.NewParser(), nil, opts)
	}
	return NewValidationService(storage.NewFSDatasetSource(), voc.NewParser(), probe, opts)
}

type fakeProbe struct {
	width, height int
	err           error
}

func (p *fakeProbe) Dimensions(ctx context.Context, imageData []byte) (int, int, error) {
	return p.width, p.height, p.err
}

func TestValidate_OneValidSampleWithUnmatchedImage(t *testing.T) {
	d := newDataset(t)
	d.image(t, "a.jpg")
	d.image(t, "b.jpg")
	d.annotation(t, "a.xml", vocXML("a.jpg", "cat", 10, 10, 50, 50))

	report, err := newService(nil).Validate(context.Background(), d.images, d.annotations)
	require.NoError(t, err)

	require.Equal(t, entity.VerdictPass, report.Verdict)
	require.Empty(t, report.Reasons)
	require.Equal(t, 1, report.ValidSamples)
	require.Equal(t, []string{"b.jpg"}, report.UnmatchedImages)
	require.Equal(t, 0, report.UnmatchedAnnotationCount())
	require.Equal(t, map[string]int{"cat": 1}, report.Labels)
}

func TestValidate_NoImages(t *testing.T) {
	d := newDataset(t)
	d.annotation(t, "x.xml", vocXML("x.jpg", "cat", 10, 10, 50, 50))

	report, err := newService(nil).Validate(context.Background(), d.images, d.annotations)
	require.NoError(t, err)

	require.Equal(t, entity.VerdictFail, report.Verdict)
	require.Contains(t, report.Reasons, entity.ReasonNoValidSamples)
	require.Equal(t, []string{"x.xml"}, report.UnmatchedAnnotations)
}

func TestValidate_EmptyDirectories(t *testing.T) {
	d := newDataset(t)

	report, err := newService(nil).Validate(context.Background(), d.images, d.annotations)
	require.NoError(t, err)
	require.Equal(t, entity.VerdictFail, report.Verdict)
	require.Equal(t, []string{entity.ReasonNoValidSamples}, report.Reasons)
}

func TestValidate_DegenerateRectangle(t *testing.T) {
	d := newDataset(t)
	d.image(t, "p.jpg")
	d.annotation(t, "p.xml", vocXML("p.jpg", "cat", 50, 10, 40, 20))

	report, err := newService(nil).Validate(context.Background(), d.images, d.annotations)
	require.NoError(t, err)

	require.Equal(t, entity.VerdictFail, report.Verdict)
	require.Equal(t, 0, report.ValidSamples)
	require.Empty(t, report.Labels)
	require.Len(t, report.Issues, 1)
	require.Equal(t, "p.xml", report.Issues[0].File)
	require.Contains(t, report.Issues[0].Reasons[0], "invalid rectangle")
}

func TestValidate_OutOfBounds(t *testing.T) {
	d := newDataset(t)
	d.image(t, "wide.jpg")
	d.image(t, "tall.png")
	d.annotation(t, "wide.xml", vocXML("wide.jpg", "cat", 10, 10, 120, 50))
	d.annotation(t, "tall.xml", vocXML("tall.png", "dog", 10, 10, 50, 80))

	report, err := newService(nil).Validate(context.Background(), d.images, d.annotations)
	require.NoError(t, err)

	require.Equal(t, entity.VerdictFail, report.Verdict)
	require.Len(t, report.Issues, 2)
	require.Equal(t, "tall", report.Issues[0].Basename)
	require.Contains(t, report.Issues[0].Reasons[0], "exceeds image height")
	require.Equal(t, "wide", report.Issues[1].Basename)
	require.Contains(t, report.Issues[1].Reasons[0], "exceeds image width")
}

func TestValidate_MissingObjectsAndMalformed(t *testing.T) {
	d := newDataset(t)
	for _, name := range []string{"good.jpg", "empty.jpg", "broken.jpg", "nosize.jpg"} {
		d.image(t, name)
	}
	d.annotation(t, "good.xml", vocXML("good.jpg", "cat", 1, 1, 10, 10))
	d.annotation(t, "empty.xml", `<annotation><filename>empty.jpg</filename>
<size><width>10</width><height>10</height><depth>3</depth></size></annotation>`)
	d.annotation(t, "broken.xml", "<annotation><filename>broken.jpg")
	d.annotation(t, "nosize.xml", `<annotation><filename>nosize.jpg</filename>
<object><name>cat</name><bndbox><xmin>1</xmin><ymin>1</ymin><xmax>2</xmax><ymax>2</ymax></bndbox></object></annotation>`)

	report, err := newService(nil).Validate(context.Background(), d.images, d.annotations)
	require.NoError(t, err)

	require.Equal(t, entity.VerdictFail, report.Verdict)
	require.Equal(t, 1, report.ValidSamples)
	require.Equal(t, 4, report.TotalSamples)
	require.Equal(t, map[string]int{"cat": 1}, report.Labels)

	files := make([]string, 0, len(report.Issues))
	for _, issue := range report.Issues {
		files = append(files, issue.File)
	}
	require.Equal(t, []string{"broken.xml", "empty.xml", "nosize.xml"}, files)
	require.Equal(t, []string{"annotation has no objects"}, report.Issues[1].Reasons)
	require.Equal(t, []string{"missing <size> element"}, report.Issues[2].Reasons)
	require.Equal(t, []string{"3 annotation(s) with structural errors"}, report.Reasons)
}

func TestValidate_TrailingJunkAfterRoot(t *testing.T) {
	d := newDataset(t)
	d.image(t, "a.jpg")
	d.image(t, "b.jpg")
	d.annotation(t, "a.xml", vocXML("a.jpg", "cat", 1, 1, 10, 10))
	d.annotation(t, "b.xml", vocXML("b.jpg", "dog", 1, 1, 10, 10)+"\n</annotation><<< junk &&")

	report, err := newService(nil).Validate(context.Background(), d.images, d.annotations)
	require.NoError(t, err)

	require.Equal(t, entity.VerdictFail, report.Verdict)
	require.Equal(t, 1, report.ValidSamples)
	require.Equal(t, map[string]int{"cat": 1}, report.Labels)
	require.Len(t, report.Issues, 1)
	require.Equal(t, "b.xml", report.Issues[0].File)
	require.Contains(t, report.Issues[0].Reasons[0], "invalid xml")
}

func TestValidate_FilenameMismatch(t *testing.T) {
	d := newDataset(t)
	d.image(t, "a.jpg")
	d.annotation(t, "a.xml", vocXML("other.jpg", "cat", 1, 1, 10, 10))

	report, err := newService(nil).Validate(context.Background(), d.images, d.annotations)
	require.NoError(t, err)
	require.Equal(t, entity.VerdictFail, report.Verdict)
	require.Len(t, report.Issues, 1)
	require.Contains(t, report.Issues[0].Reasons[0], `declared filename "other.jpg"`)
}

func TestValidate_CaseInsensitiveExtensionsAndDuplicates(t *testing.T) {
	d := newDataset(t)
	d.image(t, "a.JPG")
	d.image(t, "a.png")
	d.image(t, "notes.txt")
	d.annotation(t, "a.XML", vocXML("a.JPG", "cat", 1, 1, 10, 10))

	report, err := newService(nil).Validate(context.Background(), d.images, d.annotations)
	require.NoError(t, err)
	require.Equal(t, entity.VerdictPass, report.Verdict)
	require.Equal(t, 2, report.TotalImages)
	require.Equal(t, 1, report.TotalAnnotations)
	require.Empty(t, report.UnmatchedImages)
	require.Equal(t, []string{`duplicate image basename "a": using a.JPG, ignoring a.png`}, report.Warnings)
}

func TestValidate_MinImagesWarning(t *testing.T) {
	d := newDataset(t)
	d.image(t, "a.jpg")
	d.annotation(t, "a.xml", vocXML("a.jpg", "cat", 1, 1, 10, 10))

	svc := NewValidationService(storage.NewFSDatasetSource(), voc.NewParser(), nil, Options{Workers: 1, MinImages: 10})
	report, err := svc.Validate(context.Background(), d.images, d.annotations)
	require.NoError(t, err)
	require.Equal(t, entity.VerdictPass, report.Verdict)
	require.Len(t, report.Warnings, 1)
	require.Contains(t, report.Warnings[0], "only 1 images found")
}

func TestValidate_DirectoryNotFound(t *testing.T) {
	d := newDataset(t)

	_, err := newService(nil).Validate(context.Background(), filepath.Join(d.images, "missing"), d.annotations)
	require.ErrorIs(t, err, entity.ErrDirectoryNotFound)

	_, err = newService(nil).Validate(context.Background(), d.images, filepath.Join(d.annotations, "missing"))
	require.ErrorIs(t, err, entity.ErrDirectoryNotFound)
	require.Contains(t, err.Error(), "missing")
}

func TestValidate_Idempotent(t *testing.T) {
	d := newDataset(t)
	for i := 0; i < 20; i++ {
		name := fmt.Sprintf("img_%03d", i)
		d.image(t, name+".jpg")
		if i%5 == 0 {
			d.annotation(t, name+".xml", vocXML(name+".jpg", "cat", 50, 10, 40, 20))
			continue
		}
		d.annotation(t, name+".xml", vocXML(name+".jpg", []string{"cat", "dog"}[i%2], 1, 1, 10, 10))
	}
	d.annotation(t, "orphan.xml", vocXML("orphan.jpg", "cat", 1, 1, 10, 10))

	svc := newService(nil)
	first, err := svc.Validate(context.Background(), d.images, d.annotations)
	require.NoError(t, err)
	second, err := svc.Validate(context.Background(), d.images, d.annotations)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("reports differ (-first +second):\n%s", diff)
	}
	require.Equal(t, 16, first.ValidSamples)
	require.Len(t, first.Issues, 4)
	require.Equal(t, "img_000", first.Issues[0].Basename)
	require.Equal(t, "img_015", first.Issues[3].Basename)
}

func TestValidate_ImageProbe(t *testing.T) {
	d := newDataset(t)
	d.image(t, "a.jpg")
	d.annotation(t, "a.xml", vocXML("a.jpg", "cat", 1, 1, 10, 10))

	report, err := newService(&fakeProbe{width: 100, height: 80}).Validate(context.Background(), d.images, d.annotations)
	require.NoError(t, err)
	require.Equal(t, entity.VerdictPass, report.Verdict)

	report, err = newService(&fakeProbe{width: 640, height: 480}).Validate(context.Background(), d.images, d.annotations)
	require.NoError(t, err)
	require.Equal(t, entity.VerdictFail, report.Verdict)
	require.Equal(t, []string{"declared size 100x80 does not match image a.jpg size 640x480"}, report.Issues[0].Reasons)

	report, err = newService(&fakeProbe{err: errors.New("bad header")}).Validate(context.Background(), d.images, d.annotations)
	require.NoError(t, err)
	require.Equal(t, []string{"cannot decode image a.jpg: bad header"}, report.Issues[0].Reasons)
}

func TestValidate_CancelledContext(t *testing.T) {
	d := newDataset(t)
	d.image(t, "a.jpg")
	d.annotation(t, "a.xml", vocXML("a.jpg", "cat", 1, 1, 10, 10))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newService(nil).Validate(ctx, d.images, d.annotations)
	require.ErrorIs(t, err, context.Canceled)
}
