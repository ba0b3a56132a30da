package entity

import (
	"image"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewVerdict(t *testing.T) {
	// 4 дефектных пикселя на миллион — ниже порога годности.
	v := NewVerdict(1_000_000, 4, 1)
	require.True(t, v.Pass)
	require.InDelta(t, 4e-6, v.Ratio, 1e-12)
	require.Equal(t, 1, v.DefectCount)

	// Ровно на пороге — уже брак.
	v = NewVerdict(1_000_000, 5, 1)
	require.False(t, v.Pass)

	v = NewVerdict(20_000, 69, 2)
	require.False(t, v.Pass)
	require.Equal(t, 2, v.DefectCount)
}

func TestNewVerdict_EmptyMask(t *testing.T) {
	// Вырожденная маска: знаменатель 1, доля равна числу дефектных пикселей.
	v := NewVerdict(0, 0, 0)
	require.True(t, v.Pass)
	require.Zero(t, v.Ratio)

	v = NewVerdict(0, 3, 1)
	require.False(t, v.Pass)
	require.InDelta(t, 3.0, v.Ratio, 1e-12)
}

func TestInspectionResult_CropAround(t *testing.T) {
	corrected := image.NewGray(image.Rect(0, 0, 100, 100))
	for y := 0; y < 100; y++ {
		for x := 0; x < 100; x++ {
			corrected.Pix[corrected.PixOffset(x, y)] = uint8(x + y)
		}
	}
	result := &InspectionResult{Corrected: corrected}

	// Вырезка целиком внутри изображения.
	crop := result.CropAround(Point{X: 50, Y: 50}, 30)
	require.Equal(t, 60, crop.Bounds().Dx())
	require.Equal(t, 60, crop.Bounds().Dy())
	require.Equal(t, uint8(20+20), crop.GrayAt(0, 0).Y)

	// Вырезка у края прижимается к границам.
	crop = result.CropAround(Point{X: 10, Y: 10}, 50)
	require.Equal(t, 100, crop.Bounds().Dx())
	require.Equal(t, 100, crop.Bounds().Dy())

	// Копия не делит буфер с исходником.
	crop.Pix[0] = 255
	require.Equal(t, uint8(0), corrected.GrayAt(0, 0).Y)
}

func TestInspectionResult_CropAround_SmallImage(t *testing.T) {
	result := &InspectionResult{Corrected: image.NewGray(image.Rect(0, 0, 20, 20))}

	crop := result.CropAround(Point{X: 10, Y: 10}, 50)
	require.Equal(t, 20, crop.Bounds().Dx())
	require.Equal(t, 20, crop.Bounds().Dy())
}
