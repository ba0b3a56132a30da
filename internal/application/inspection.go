package app

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/jpeg"
	"sync"

	"lens-inspector/internal/domain/entity"
	"lens-inspector/internal/domain/port"
)

// InspectionService управляет анализом линз: запускает пайплайн и хранит
// последнее фото и результат каждого пользователя, чтобы смена параметров
// перезапускала анализ, а просмотр дефектов был чистым чтением результата.
type InspectionService struct {
	users     *UserService
	inspector port.LensInspector
	describer port.DefectDescriber

	mu      sync.RWMutex
	photos  map[int64][]byte
	results map[int64]*entity.InspectionResult
}

// InspectionOutput содержит результат анализа и картинку с разметкой.
type InspectionOutput struct {
	Result    *entity.InspectionResult
	Annotated []byte // JPEG с контуром линзы и маркерами дефектов
	Summary   string // текст вердикта
}

// DefectView содержит вырезку вокруг дефекта и её описание.
type DefectView struct {
	Index   int    // номер дефекта (с 1)
	Image   []byte // JPEG-вырезка из выровненного изображения
	Caption string
}

// NewInspectionService создаёт сервис анализа линз.
func NewInspectionService(users *UserService, inspector port.LensInspector, describer port.DefectDescriber) *InspectionService {
	return &InspectionService{
		users:     users,
		inspector: inspector,
		describer: describer,
		photos:    make(map[int64][]byte),
		results:   make(map[int64]*entity.InspectionResult),
	}
}

// ProcessPhoto запускает пайплайн для фото и запоминает фото и результат,
// чтобы поддержать повторный анализ и просмотр дефектов.
func (s *InspectionService) ProcessPhoto(ctx context.Context, userID int64, photo []byte, params entity.Params) (*InspectionOutput, error) {
	if s.inspector == nil {
		return nil, errors.New("inspector is not configured")
	}

	result, err := s.inspector.Inspect(ctx, photo, params)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.photos[userID] = photo
	s.results[userID] = result
	s.mu.Unlock()

	return s.buildOutput(result)
}

// Reanalyze повторно прогоняет сохранённое фото с новыми параметрами.
func (s *InspectionService) Reanalyze(ctx context.Context, userID int64, params entity.Params) (*InspectionOutput, error) {
	s.mu.RLock()
	photo, ok := s.photos[userID]
	s.mu.RUnlock()

	if !ok || len(photo) == 0 {
		return nil, errors.New("photo is not found")
	}

	return s.ProcessPhoto(ctx, userID, photo, params)
}

// InspectOnce анализирует фото без сохранения — для одношаговых запросов.
func (s *InspectionService) InspectOnce(ctx context.Context, photo []byte, params entity.Params) (*InspectionOutput, error) {
	if s.inspector == nil {
		return nil, errors.New("inspector is not configured")
	}

	result, err := s.inspector.Inspect(ctx, photo, params)
	if err != nil {
		return nil, err
	}

	return s.buildOutput(result)
}

// DefectDetail возвращает детальную вырезку вокруг дефекта по его номеру (с 1).
func (s *InspectionService) DefectDetail(userID int64, index int) (*DefectView, error) {
	return s.defectView(userID, index, entity.DetailCropHalf)
}

// DefectThumbnail возвращает миниатюру дефекта для списка.
func (s *InspectionService) DefectThumbnail(userID int64, index int) (*DefectView, error) {
	return s.defectView(userID, index, entity.ThumbCropHalf)
}

// DefectAt возвращает номер дефекта (с 1), ближайшего к точке изображения.
func (s *InspectionService) DefectAt(userID int64, x, y float64) (int, error) {
	result, err := s.lastResult(userID)
	if err != nil {
		return 0, err
	}

	idx := entity.NearestDefect(result.Defects, x, y)
	if idx < 0 {
		return 0, errors.New("no defects found")
	}
	return idx + 1, nil
}

func (s *InspectionService) defectView(userID int64, index, half int) (*DefectView, error) {
	result, err := s.lastResult(userID)
	if err != nil {
		return nil, err
	}
	if index < 1 || index > len(result.Defects) {
		return nil, errors.New("defect index is out of range")
	}

	defect := result.Defects[index-1]
	crop := result.CropAround(defect.Center, half)

	img, err := encodeJPEG(crop)
	if err != nil {
		return nil, err
	}

	caption := ""
	if s.describer != nil {
		caption = s.describer.DefectCard(index, defect)
	}

	return &DefectView{Index: index, Image: img, Caption: caption}, nil
}

func (s *InspectionService) lastResult(userID int64) (*entity.InspectionResult, error) {
	s.mu.RLock()
	result, ok := s.results[userID]
	s.mu.RUnlock()

	if !ok {
		return nil, errors.New("inspection result is not found")
	}
	return result, nil
}

func (s *InspectionService) buildOutput(result *entity.InspectionResult) (*InspectionOutput, error) {
	annotated, err := encodeJPEG(result.Annotated)
	if err != nil {
		return nil, err
	}

	summary := ""
	if s.describer != nil {
		summary = s.describer.Summary(result)
	}

	return &InspectionOutput{Result: result, Annotated: annotated, Summary: summary}, nil
}

// encodeJPEG кодирует картинку для отправки в чат.
func encodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
