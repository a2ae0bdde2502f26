package container

import (
	"log"

	app "dataset-validator/internal/application"
	"dataset-validator/internal/domain/port"
	"dataset-validator/internal/infrastructure/storage"
	"dataset-validator/internal/infrastructure/vision"
	"dataset-validator/internal/infrastructure/voc"
)

// Settings то, что контейнеру нужно знать из конфигурации
type Settings struct {
	Workers      int
	MinImages    int
	VerifyImages bool
}

type Container struct {
	ValidationService *app.ValidationService
	Notifier          port.ReportNotifier
}

// New собирает сервисы. notifier может быть nil.
func New(settings Settings, notifier port.ReportNotifier) *Container {
	var probe port.ImageProbe
	if settings.VerifyImages {
		if vision.Available {
			probe = vision.NewGoCVProbe()
		} else {
			log.Printf("Image verification requested, but binary is built without gocv tag; skipping")
		}
	}

	validationService := app.NewValidationService(
		storage.NewFSDatasetSource(),
		voc.NewParser(),
		probe,
		app.Options{Workers: settings.Workers, MinImages: settings.MinImages},
	)

	return &Container{
		ValidationService: validationService,
		Notifier:          notifier,
	}
}
