package report

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"

	"lens-inspector/internal/domain/entity"
)

func TestTextDescriber_Summary(t *testing.T) {
	d := NewTextDescriber()

	result := &entity.InspectionResult{
		Verdict: entity.NewVerdict(1_000_000, 2, 1),
	}
	require.Equal(t, "✅ ГОДНАЯ  |  Дефектов: 1  |  Площадь: 0.0002%", d.Summary(result))

	result = &entity.InspectionResult{
		Verdict: entity.NewVerdict(20_000, 69, 2),
	}
	require.Equal(t, "❌ БРАК  |  Дефектов: 2  |  Площадь: 0.3450%", d.Summary(result))
}

func TestTextDescriber_DefectCard(t *testing.T) {
	d := NewTextDescriber()

	defect := entity.NewDefect(entity.Point{X: 120.4, Y: 99.6}, image.Rect(105, 99, 135, 101), 58)
	card := d.DefectCard(2, defect)

	require.Contains(t, card, "#2")
	require.Contains(t, card, "царапина")
	require.Contains(t, card, "58.0 px")
	require.Contains(t, card, "(120, 100)")
}
