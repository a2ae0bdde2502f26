package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"dataset-validator/config"
	"dataset-validator/internal/api/console"
	"dataset-validator/internal/api/telegram"
	"dataset-validator/internal/container"
	"dataset-validator/internal/domain/entity"
	"dataset-validator/internal/domain/port"
)

const (
	exitPass  = 0
	exitFail  = 1
	exitFatal = 2
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		return exitFatal
	}

	fset := flag.NewFlagSet("dataset-validator", flag.ContinueOnError)
	fset.Usage = func() {
		fmt.Fprintf(fset.Output(), "Usage: dataset-validator [flags] [imagesDir annotationsDir]\n")
		fset.PrintDefaults()
	}
	imagesDir := fset.String("images", cfg.ImagesDir, "images directory (Pascal VOC)")
	annotationsDir := fset.String("annotations", cfg.AnnotationsDir, "Pascal VOC XML annotations directory")
	workers := fset.Int("workers", cfg.Workers, "number of annotations checked in parallel")
	minImages := fset.Int("min-images", cfg.MinImages, "warn when fewer images are found")
	verifyImages := fset.Bool("verify-images", cfg.VerifyImages, "decode images and compare with declared size (needs gocv build)")
	if err := fset.Parse(args); err != nil {
		return exitFatal
	}

	switch fset.NArg() {
	case 0:
	case 2:
		*imagesDir, *annotationsDir = fset.Arg(0), fset.Arg(1)
	default:
		fset.Usage()
		return exitFatal
	}

	// Нотификатор опционален: без токена отчёт только печатается.
	var notifier port.ReportNotifier
	if cfg.NotifyEnabled() {
		n, err := telegram.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Printf("Telegram notifier disabled: %v", err)
		} else {
			notifier = n
		}
	}

	appContainer := container.New(container.Settings{
		Workers:      *workers,
		MinImages:    *minImages,
		VerifyImages: *verifyImages,
	}, notifier)

	ctx := context.Background()
	report, err := appContainer.ValidationService.Validate(ctx, *imagesDir, *annotationsDir)
	if err != nil {
		switch {
		case errors.Is(err, entity.ErrDirectoryNotFound):
			log.Printf("[ERROR] Dataset directory not found: %v", err)
		case errors.Is(err, entity.ErrPermissionDenied):
			log.Printf("[ERROR] Dataset directory is not readable: %v", err)
		default:
			log.Printf("[ERROR] Validation aborted: %v", err)
		}
		return exitFatal
	}

	if err := console.NewPrinter(os.Stdout).Print(report); err != nil {
		log.Printf("Failed to print report: %v", err)
	}

	if appContainer.Notifier != nil {
		if err := appContainer.Notifier.Notify(ctx, report); err != nil {
			log.Printf("Failed to send report: %v", err)
		}
	}

	if !report.Passed() {
		return exitFail
	}
	return exitPass
}
