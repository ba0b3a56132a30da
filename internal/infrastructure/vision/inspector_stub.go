//go:build !gocv
// +build !gocv

package vision

import (
	"context"
	"errors"

	"lens-inspector/internal/domain/entity"
	"lens-inspector/internal/domain/port"
)

// GoCVInspector заглушка анализатора для сборки без OpenCV.
type GoCVInspector struct{}

// NewGoCVInspector создаёт анализатор-заглушку (без OpenCV).
func NewGoCVInspector() *GoCVInspector {
	return &GoCVInspector{}
}

// Inspect возвращает ошибку, если сборка без тега gocv.
func (ins *GoCVInspector) Inspect(ctx context.Context, imageData []byte, params entity.Params) (*entity.InspectionResult, error) {
	_ = ctx
	_ = imageData
	_ = params
	return nil, errors.New("gocv build tag is not enabled")
}

// Проверка реализации интерфейса
var _ port.LensInspector = (*GoCVInspector)(nil)
