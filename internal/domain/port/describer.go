package port

import (
	"lens-inspector/internal/domain/entity"
)

// DefectDescriber интерфейс описателя результатов инспекции
type DefectDescriber interface {
	// Summary строит краткое текстовое описание вердикта
	Summary(result *entity.InspectionResult) string

	// DefectCard строит описание одного дефекта (индекс для показа, с 1)
	DefectCard(index int, d entity.Defect) string
}
