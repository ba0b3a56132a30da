package entity

import (
	"image"
	"math"
)

// DefectType тип дефекта на поверхности линзы
type DefectType int

const (
	Speck   DefectType = iota // мелкая точка
	Scratch                   // царапина — тонкий вытянутый дефект
	Cluster                   // скопление — крупный невытянутый дефект
)

// String возвращает стабильное имя типа дефекта.
func (t DefectType) String() string {
	switch t {
	case Scratch:
		return "scratch"
	case Cluster:
		return "cluster"
	default:
		return "speck"
	}
}

// Пороги таблицы классификации дефектов.
const (
	// MinDefectArea — площадь, ниже которой контур считается шумом
	// и дефектом не становится.
	MinDefectArea = 2.0

	scratchMinArea   = 5.0
	clusterMinArea   = 150.0
	elongatedAboveAR = 2.5
	elongatedBelowAR = 0.70
)

// Classify определяет тип дефекта по площади и соотношению сторон.
// Правила проверяются строго по порядку, побеждает первое совпавшее.
func Classify(area, aspectRatio float64) DefectType {
	elongated := aspectRatio > elongatedAboveAR || aspectRatio <= elongatedBelowAR
	if elongated && area > scratchMinArea {
		return Scratch
	}
	if area > clusterMinArea {
		return Cluster
	}
	return Speck
}

// Point координата на изображении с плавающей точкой
type Point struct {
	X float64
	Y float64
}

// Defect представляет один найденный дефект
type Defect struct {
	Center      Point           // центроид по моментам первого порядка
	BoundingBox image.Rectangle // описанный прямоугольник
	Area        float64         // площадь контура в пикселях
	AspectRatio float64         // ширина / max(высота, 1)
	Type        DefectType      // тип по таблице классификации
}

// NewDefect собирает дефект из геометрии контура и классифицирует его.
func NewDefect(center Point, box image.Rectangle, area float64) Defect {
	ar := float64(box.Dx()) / math.Max(float64(box.Dy()), 1)
	return Defect{
		Center:      center,
		BoundingBox: box,
		Area:        area,
		AspectRatio: ar,
		Type:        Classify(area, ar),
	}
}

// NearestDefect возвращает индекс дефекта, ближайшего к точке изображения,
// или -1 для пустого списка.
func NearestDefect(defects []Defect, x, y float64) int {
	nearest := -1
	nearestDist := math.MaxFloat64

	for i, d := range defects {
		dx := d.Center.X - x
		dy := d.Center.Y - y
		dist := math.Sqrt(dx*dx + dy*dy)
		if dist < nearestDist {
			nearestDist = dist
			nearest = i
		}
	}

	return nearest
}
