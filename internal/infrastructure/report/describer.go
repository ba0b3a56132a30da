package report

import (
	"fmt"

	"lens-inspector/internal/domain/entity"
	"lens-inspector/internal/domain/port"
)

// TextDescriber формирует текстовые описания результатов инспекции для чата.
type TextDescriber struct{}

// NewTextDescriber создаёт описатель результатов.
func NewTextDescriber() *TextDescriber {
	return &TextDescriber{}
}

// Summary строит строку вердикта: статус, число дефектов и дефектная площадь.
func (d *TextDescriber) Summary(result *entity.InspectionResult) string {
	verdict := "❌ БРАК"
	if result.Verdict.Pass {
		verdict = "✅ ГОДНАЯ"
	}
	return fmt.Sprintf("%s  |  Дефектов: %d  |  Площадь: %.4f%%",
		verdict, result.Verdict.DefectCount, result.Verdict.Ratio*100)
}

// DefectCard строит описание одного дефекта для карточки или подписи.
func (d *TextDescriber) DefectCard(index int, defect entity.Defect) string {
	return fmt.Sprintf("#%d  %s\nПлощадь: %.1f px\nAR: %.1f\n(%.0f, %.0f)",
		index, typeName(defect.Type), defect.Area, defect.AspectRatio,
		defect.Center.X, defect.Center.Y)
}

// typeName возвращает имя типа дефекта для пользователя.
func typeName(t entity.DefectType) string {
	switch t {
	case entity.Scratch:
		return "царапина"
	case entity.Cluster:
		return "скопление"
	default:
		return "точка"
	}
}

// Проверка реализации интерфейса
var _ port.DefectDescriber = (*TextDescriber)(nil)
