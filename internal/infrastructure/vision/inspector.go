//go:build gocv
// +build gocv

package vision

import (
	"context"
	"errors"
	"image"

	"gocv.io/x/gocv"

	"lens-inspector/internal/domain/entity"
	"lens-inspector/internal/domain/port"
)

// GoCVInspector реализует пайплайн инспекции линз на OpenCV.
// Состояния между вызовами не хранит: каждый Inspect — чистая функция
// от изображения и параметров.
type GoCVInspector struct{}

// NewGoCVInspector создаёт анализатор изображений линз.
func NewGoCVInspector() *GoCVInspector {
	return &GoCVInspector{}
}

// Inspect прогоняет изображение через все стадии пайплайна:
// маска линзы → выравнивание освещения → сегментация дефектов →
// классификация → вердикт → разметка.
func (ins *GoCVInspector) Inspect(ctx context.Context, imageData []byte, params entity.Params) (*entity.InspectionResult, error) {
	_ = ctx
	params = params.Normalize()

	mat, err := decodeToMat(imageData)
	if err != nil {
		return nil, err
	}
	defer mat.Close()

	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(mat, &gray, gocv.ColorBGRToGray)

	mask := extractLensMask(gray)
	defer mask.Close()

	corrected := correctIllumination(gray, mask, params.BlurSize)
	defer corrected.Close()

	defectMask := segmentDefects(corrected, mask, params.Threshold)
	defer defectMask.Close()

	defects := analyzeDefects(defectMask)

	verdict := entity.NewVerdict(
		gocv.CountNonZero(mask),
		gocv.CountNonZero(defectMask),
		len(defects))

	display := buildAnnotated(corrected, mask, defects)
	defer display.Close()

	correctedImg, err := matToGray(corrected)
	if err != nil {
		return nil, err
	}
	annotated, err := display.ToImage()
	if err != nil {
		return nil, err
	}

	return &entity.InspectionResult{
		Corrected: correctedImg,
		Annotated: annotated,
		Defects:   defects,
		Verdict:   verdict,
	}, nil
}

// decodeToMat превращает байты изображения в gocv.Mat.
func decodeToMat(imageData []byte) (gocv.Mat, error) {
	mat, err := gocv.IMDecode(imageData, gocv.IMReadColor)
	if err == nil && !mat.Empty() {
		return mat, nil
	}
	if !mat.Empty() {
		mat.Close()
	}
	return gocv.NewMat(), errors.New("failed to decode image")
}

// matToGray переводит одноканальный Mat в image.Gray.
func matToGray(mat gocv.Mat) (*image.Gray, error) {
	img, err := mat.ToImage()
	if err != nil {
		return nil, err
	}
	gray, ok := img.(*image.Gray)
	if !ok {
		return nil, errors.New("corrected image is not grayscale")
	}
	return gray, nil
}

// Проверка реализации интерфейса
var _ port.LensInspector = (*GoCVInspector)(nil)
