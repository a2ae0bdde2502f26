package telegram

import (
	"context"
	"fmt"
	"log"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"dataset-validator/internal/domain/entity"
	"dataset-validator/internal/domain/port"
)

// maxIssues сколько проблемных файлов перечислять в сообщении
const maxIssues = 10

// sender часть tgbotapi.BotAPI, нужная для отправки
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier отправляет сводку отчёта в Telegram-чат
type Notifier struct {
	api    sender
	chatID int64
}

// NewNotifier создаёт нотификатор по токену бота
func NewNotifier(token string, chatID int64) (*Notifier, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	return &Notifier{api: api, chatID: chatID}, nil
}

// Notify отправляет сводку отчёта
func (n *Notifier) Notify(ctx context.Context, report *entity.ValidationReport) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := tgbotapi.NewMessage(n.chatID, FormatSummary(report))
	if _, err := n.api.Send(msg); err != nil {
		return fmt.Errorf("send report: %w", err)
	}
	return nil
}

// FormatSummary краткий текст отчёта для чата
func FormatSummary(r *entity.ValidationReport) string {
	b := &strings.Builder{}

	if r.Passed() {
		fmt.Fprintf(b, "✅ Dataset PASS: %d valid samples\n", r.ValidSamples)
	} else {
		fmt.Fprintln(b, "❌ Dataset FAIL")
		for _, reason := range r.Reasons {
			fmt.Fprintf(b, "• %s\n", reason)
		}
	}

	fmt.Fprintf(b, "\n📁 %s\n📁 %s\n", r.ImagesDir, r.AnnotationsDir)
	fmt.Fprintf(b, "Images: %d, annotations: %d, pairs: %d\n", r.TotalImages, r.TotalAnnotations, r.TotalSamples)
	fmt.Fprintf(b, "Without XML: %d, without image: %d\n", r.UnmatchedImageCount(), r.UnmatchedAnnotationCount())

	if labels := r.SortedLabels(); len(labels) > 0 {
		parts := make([]string, 0, len(labels))
		for _, lc := range labels {
			parts = append(parts, fmt.Sprintf("%s=%d", lc.Label, lc.Count))
		}
		fmt.Fprintf(b, "Labels: %s\n", strings.Join(parts, ", "))
	}

	for i, issue := range r.Issues {
		if i == maxIssues {
			fmt.Fprintf(b, "... and %d more files with errors\n", len(r.Issues)-maxIssues)
			break
		}
		fmt.Fprintf(b, "⚠️ %s: %s\n", issue.File, strings.Join(issue.Reasons, "; "))
	}

	return strings.TrimRight(b.String(), "\n")
}

// Проверка реализации интерфейса
var _ port.ReportNotifier = (*Notifier)(nil)
