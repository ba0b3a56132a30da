package port

import (
	"context"

	"lens-inspector/internal/domain/entity"
)

// LensInspector интерфейс анализатора изображений линз
type LensInspector interface {
	// Inspect прогоняет изображение через пайплайн анализа
	// и возвращает полный результат инспекции.
	Inspect(ctx context.Context, imageData []byte, params entity.Params) (*entity.InspectionResult, error)
}
