// Package voc разбирает аннотации в формате Pascal VOC.
package voc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html/charset"

	"dataset-validator/internal/domain/entity"
	"dataset-validator/internal/domain/port"
)

// Документ описан указателями, чтобы отличать отсутствующий элемент от пустого.
type document struct {
	XMLName  xml.Name `xml:"annotation"`
	Filename *string  `xml:"filename"`
	Size     *size    `xml:"size"`
	Objects  []object `xml:"object"`
}

type size struct {
	Width  *string `xml:"width"`
	Height *string `xml:"height"`
	Depth  *string `xml:"depth"`
}

type object struct {
	Name   *string `xml:"name"`
	BndBox *bndbox `xml:"bndbox"`
}

type bndbox struct {
	XMin *string `xml:"xmin"`
	YMin *string `xml:"ymin"`
	XMax *string `xml:"xmax"`
	YMax *string `xml:"ymax"`
}

// Parser строгий разборщик Pascal VOC XML
type Parser struct{}

// NewParser создаёт разборщик
func NewParser() *Parser {
	return &Parser{}
}

// Parse разбирает документ в AnnotationRecord. Проверка геометрии остаётся
// за AnnotationRecord.Problems; здесь отсекается только нарушение схемы.
func (p *Parser) Parse(data []byte) (*entity.AnnotationRecord, error) {
	doc, err := decode(data)
	if err != nil {
		return nil, &entity.SchemaError{Reasons: []string{fmt.Sprintf("invalid xml: %v", err)}}
	}

	var reasons []string
	record := &entity.AnnotationRecord{}

	if doc.Filename == nil {
		reasons = append(reasons, "missing <filename> element")
	} else {
		record.Filename = strings.TrimSpace(*doc.Filename)
	}

	if doc.Size == nil {
		reasons = append(reasons, "missing <size> element")
	} else {
		record.ImageWidth = number(&reasons, "size", "width", doc.Size.Width)
		record.ImageHeight = number(&reasons, "size", "height", doc.Size.Height)
		record.ImageDepth = number(&reasons, "size", "depth", doc.Size.Depth)
	}

	record.Objects = make([]entity.ObjectRegion, 0, len(doc.Objects))
	for i, obj := range doc.Objects {
		prefix := fmt.Sprintf("object %d", i)
		region := entity.ObjectRegion{}

		if obj.Name == nil {
			reasons = append(reasons, fmt.Sprintf("%s: missing <name> element", prefix))
		} else {
			region.Label = strings.TrimSpace(*obj.Name)
		}

		if obj.BndBox == nil {
			reasons = append(reasons, fmt.Sprintf("%s: missing <bndbox> element", prefix))
		} else {
			region.XMin = number(&reasons, prefix, "xmin", obj.BndBox.XMin)
			region.YMin = number(&reasons, prefix, "ymin", obj.BndBox.YMin)
			region.XMax = number(&reasons, prefix, "xmax", obj.BndBox.XMax)
			region.YMax = number(&reasons, prefix, "ymax", obj.BndBox.YMax)
		}

		record.Objects = append(record.Objects, region)
	}

	if len(reasons) > 0 {
		return nil, &entity.SchemaError{Reasons: reasons}
	}
	return record, nil
}

// decode читает корневой элемент и проверяет, что после него нет ничего,
// кроме пробелов, комментариев и инструкций обработки.
func decode(data []byte) (*document, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.CharsetReader = charset.NewReaderLabel

	var doc document
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			return &doc, nil
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			line, _ := dec.InputPos()
			return nil, fmt.Errorf("line %d: unexpected element <%s> after root element", line, t.Name.Local)
		case xml.CharData:
			if len(bytes.TrimSpace(t)) > 0 {
				line, _ := dec.InputPos()
				return nil, fmt.Errorf("line %d: unexpected text after root element", line)
			}
		}
	}
}

// number разбирает целое поле; дробная часть отбрасывается (значения вида "12.0").
func number(reasons *[]string, scope, field string, text *string) int {
	if text == nil {
		*reasons = append(*reasons, fmt.Sprintf("%s: missing <%s> element", scope, field))
		return 0
	}

	raw := strings.TrimSpace(*text)
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > math.MaxInt32 {
		*reasons = append(*reasons, fmt.Sprintf("%s: <%s> is not a number: %q", scope, field, raw))
		return 0
	}
	return int(math.Trunc(v))
}

// Проверка реализации интерфейса
var _ port.AnnotationParser = (*Parser)(nil)
