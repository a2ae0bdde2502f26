package port

import (
	"context"

	"dataset-validator/internal/domain/entity"
)

// ReportNotifier интерфейс доставки итогового отчёта
type ReportNotifier interface {
	// Notify отправляет сводку отчёта
	Notify(ctx context.Context, report *entity.ValidationReport) error
}
