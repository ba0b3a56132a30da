package entity

import (
	"image"
	"image/draw"
	"math"
)

// PassRatio — доля дефектных пикселей внутри линзы,
// ниже которой линза считается годной.
const PassRatio = 0.000005

// Размеры квадратных вырезок вокруг центроида дефекта (полуширина).
const (
	DetailCropHalf = 50 // детальный просмотр
	ThumbCropHalf  = 30 // миниатюра в списке дефектов
)

// Verdict итог проверки линзы.
type Verdict struct {
	Pass        bool    // годная / брак
	Ratio       float64 // доля дефектных пикселей внутри линзы
	DefectCount int     // количество найденных дефектов
}

// NewVerdict считает долю дефектных пикселей и выносит вердикт.
// Для вырожденной (пустой) маски знаменатель равен 1.
func NewVerdict(lensPixels, defectPixels, defectCount int) Verdict {
	ratio := float64(defectPixels) / math.Max(float64(lensPixels), 1)
	return Verdict{
		Pass:        ratio < PassRatio,
		Ratio:       ratio,
		DefectCount: defectCount,
	}
}

// InspectionResult хранит итог одного прогона анализа. Значение неизменяемо:
// при смене изображения или параметров строится новый результат целиком.
type InspectionResult struct {
	Corrected *image.Gray // изображение после выравнивания освещения
	Annotated image.Image // изображение с разметкой дефектов
	Defects   []Defect    // дефекты в порядке обнаружения, индекс для показа с 1
	Verdict   Verdict
}

// CropAround возвращает копию квадратной вырезки corrected вокруг точки.
// Границы прижимаются к краям изображения, исходник не изменяется.
func (r *InspectionResult) CropAround(center Point, half int) *image.Gray {
	bounds := r.Corrected.Bounds()

	x := int(center.X) - half
	if x < 0 {
		x = 0
	}
	y := int(center.Y) - half
	if y < 0 {
		y = 0
	}
	w := bounds.Dx() - x
	if w > half*2 {
		w = half * 2
	}
	h := bounds.Dy() - y
	if h > half*2 {
		h = half * 2
	}
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}

	crop := image.NewGray(image.Rect(0, 0, w, h))
	draw.Draw(crop, crop.Bounds(), r.Corrected, image.Pt(bounds.Min.X+x, bounds.Min.Y+y), draw.Src)
	return crop
}
