//go:build gocv
// +build gocv

package vision

import (
	"image"
	"image/color"
	"math"
	"strconv"

	"gocv.io/x/gocv"

	"lens-inspector/internal/domain/entity"
)

// Фиксированные параметры стадий пайплайна.
const (
	lensThreshold    = 8   // порог отделения подсвеченного диска от тёмного фона
	lensKernelSize   = 15  // эллиптическое ядро закрытия/открытия маски линзы
	tophatKernelSize = 7   // ядро top-hat: оставляет только мелкие яркие детали
	noiseKernelSize  = 3   // ядро открытия для подавления одиночных пикселей
	claheClipLimit   = 3.0 // ограничение усиления локального контраста
	claheTileSize    = 8   // сетка тайлов адаптивной эквализации
)

// Цвета разметки (RGBA, при рисовании переводятся в BGR).
var (
	lensOutline  = color.RGBA{G: 255, A: 255}
	scratchColor = color.RGBA{R: 255, A: 255}
	clusterColor = color.RGBA{R: 255, G: 165, A: 255}
	speckColor   = color.RGBA{R: 255, B: 255, A: 255}
	maskFill     = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// extractLensMask выделяет диск линзы на сером изображении: порог по яркости,
// морфологическое закрытие и открытие, затем заливка наибольшего контура.
// Если контуров нет, возвращается полностью нулевая маска.
func extractLensMask(gray gocv.Mat) gocv.Mat {
	thresholded := gocv.NewMat()
	gocv.Threshold(gray, &thresholded, lensThreshold, 255, gocv.ThresholdBinary)

	kernel := gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(lensKernelSize, lensKernelSize))
	defer kernel.Close()
	gocv.MorphologyEx(thresholded, &thresholded, gocv.MorphClose, kernel)
	gocv.MorphologyEx(thresholded, &thresholded, gocv.MorphOpen, kernel)

	contours := gocv.FindContours(thresholded, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()
	thresholded.Close()

	mask := gocv.Zeros(gray.Rows(), gray.Cols(), gocv.MatTypeCV8U)
	if contours.Size() == 0 {
		return mask
	}

	// Наибольший контур считаем диском линзы, остальное — шум и оснастка.
	largest := 0
	maxArea := 0.0
	for i := 0; i < contours.Size(); i++ {
		if a := gocv.ContourArea(contours.At(i)); a > maxArea {
			maxArea = a
			largest = i
		}
	}

	gocv.DrawContours(&mask, contours, largest, maskFill, -1)
	return mask
}

// correctIllumination выравнивает неравномерное освещение внутри маски линзы.
// Фон оценивается гауссовым размытием, затем берётся отношение (v+1)/(фон+1):
// деление, в отличие от вычитания, устойчиво около нуля и инвариантно
// к равномерному усилению яркости всего кадра.
func correctIllumination(gray, mask gocv.Mat, blurSize int) gocv.Mat {
	if blurSize%2 == 0 {
		blurSize++
	}

	floatGray := gocv.NewMat()
	defer floatGray.Close()
	gray.ConvertTo(&floatGray, gocv.MatTypeCV32F)

	background := gocv.NewMat()
	defer background.Close()
	gocv.GaussianBlur(floatGray, &background, image.Pt(blurSize, blurSize), 0, 0, gocv.BorderDefault)

	floatGray.AddFloat(1.0)
	background.AddFloat(1.0)

	ratio := gocv.NewMat()
	defer ratio.Close()
	gocv.Divide(floatGray, background, &ratio)

	// Диапазон нормализации считается только по пикселям под маской:
	// пиксели вне линзы не должны влиять на растяжку контраста.
	minV, maxV := minMaxMasked(ratio, mask)
	scale := 0.0
	if maxV > minV {
		scale = 255.0 / (maxV - minV)
	}

	ratio.SubtractFloat(float32(minV))
	ratio.MultiplyFloat(float32(scale))

	corrected := gocv.NewMat()
	ratio.ConvertTo(&corrected, gocv.MatTypeCV8U)
	return corrected
}

// minMaxMasked возвращает минимум и максимум значений float-матрицы
// под ненулевыми пикселями маски. Для пустой маски возвращает (0, 0).
func minMaxMasked(src, mask gocv.Mat) (float64, float64) {
	values, err := src.DataPtrFloat32()
	if err != nil {
		return 0, 0
	}
	maskData, err := mask.DataPtrUint8()
	if err != nil || len(maskData) != len(values) {
		return 0, 0
	}

	minV := math.MaxFloat64
	maxV := -math.MaxFloat64
	for i, m := range maskData {
		if m == 0 {
			continue
		}
		v := float64(values[i])
		if v < minV {
			minV = v
		}
		if v > maxV {
			maxV = v
		}
	}

	if minV > maxV {
		return 0, 0
	}
	return minV, maxV
}

// segmentDefects строит бинарную маску кандидатов в дефекты:
// локальный контраст (CLAHE), белый top-hat, порог, открытие от шума
// и пересечение с маской линзы.
func segmentDefects(corrected, mask gocv.Mat, threshold int) gocv.Mat {
	clahe := gocv.NewCLAHEWithParams(claheClipLimit, image.Pt(claheTileSize, claheTileSize))
	defer clahe.Close()

	enhanced := gocv.NewMat()
	defer enhanced.Close()
	clahe.Apply(corrected, &enhanced)

	kernel := gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(tophatKernelSize, tophatKernelSize))
	defer kernel.Close()

	tophat := gocv.NewMat()
	defer tophat.Close()
	gocv.MorphologyEx(enhanced, &tophat, gocv.MorphTophat, kernel)

	defectMask := gocv.NewMat()
	gocv.Threshold(tophat, &defectMask, float32(threshold), 255, gocv.ThresholdBinary)

	noiseKernel := gocv.GetStructuringElement(gocv.MorphEllipse, image.Pt(noiseKernelSize, noiseKernelSize))
	defer noiseKernel.Close()
	gocv.MorphologyEx(defectMask, &defectMask, gocv.MorphOpen, noiseKernel)

	gocv.BitwiseAnd(defectMask, mask, &defectMask)
	return defectMask
}

// analyzeDefects извлекает геометрию дефектов из бинарной маски.
// Порядок дефектов совпадает с порядком обнаружения контуров
// и служит стабильным индексом для показа.
func analyzeDefects(defectMask gocv.Mat) []entity.Defect {
	contours := gocv.FindContours(defectMask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()

	defects := make([]entity.Defect, 0, contours.Size())
	for i := 0; i < contours.Size(); i++ {
		c := contours.At(i)

		area := gocv.ContourArea(c)
		if area < entity.MinDefectArea {
			continue
		}

		box := gocv.BoundingRect(c)

		// Центроид через моменты первого порядка залитого контура.
		filled := gocv.Zeros(defectMask.Rows(), defectMask.Cols(), gocv.MatTypeCV8U)
		gocv.DrawContours(&filled, contours, i, maskFill, -1)
		m := gocv.Moments(filled, true)
		filled.Close()

		m00 := m["m00"]
		if m00 <= 0 {
			continue
		}
		center := entity.Point{X: m["m10"] / m00, Y: m["m01"] / m00}

		defects = append(defects, entity.NewDefect(center, box, area))
	}

	return defects
}

// buildAnnotated рисует поверх выровненного изображения контур линзы
// и круглые маркеры дефектов с номерами (с 1) в порядке обнаружения.
func buildAnnotated(corrected, mask gocv.Mat, defects []entity.Defect) gocv.Mat {
	display := gocv.NewMat()
	gocv.CvtColor(corrected, &display, gocv.ColorGrayToBGR)

	contours := gocv.FindContours(mask, gocv.RetrievalExternal, gocv.ChainApproxSimple)
	defer contours.Close()
	for i := 0; i < contours.Size(); i++ {
		gocv.DrawContours(&display, contours, i, lensOutline, 3)
	}

	for i, d := range defects {
		clr := markerColor(d.Type)

		radius := int(math.Sqrt(d.Area)) + 4
		if radius < 8 {
			radius = 8
		}

		center := image.Pt(int(d.Center.X), int(d.Center.Y))
		gocv.Circle(&display, center, radius, clr, 2)
		gocv.PutText(&display, strconv.Itoa(i+1),
			image.Pt(center.X+radius+2, center.Y+4),
			gocv.FontHersheySimplex, 0.4, clr, 1)
	}

	return display
}

// markerColor возвращает цвет маркера для типа дефекта.
func markerColor(t entity.DefectType) color.RGBA {
	switch t {
	case entity.Scratch:
		return scratchColor
	case entity.Cluster:
		return clusterColor
	default:
		return speckColor
	}
}
