package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	app "lens-inspector/internal/application"
	"lens-inspector/internal/domain/entity"
	"lens-inspector/internal/infrastructure/report"
	"lens-inspector/internal/infrastructure/storage"
)

type fakeInspector struct {
	lastParams entity.Params
}

func (f *fakeInspector) Inspect(ctx context.Context, imageData []byte, params entity.Params) (*entity.InspectionResult, error) {
	f.lastParams = params
	return &entity.InspectionResult{
		Corrected: image.NewGray(image.Rect(0, 0, 10, 10)),
		Annotated: image.NewRGBA(image.Rect(0, 0, 10, 10)),
		Defects: []entity.Defect{
			entity.NewDefect(entity.Point{X: 5, Y: 5}, image.Rect(4, 4, 7, 7), 9),
		},
		Verdict: entity.NewVerdict(100, 9, 1),
	}, nil
}

func multipartImage(t *testing.T, fields map[string]string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("image", "lens.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake image bytes"))
	require.NoError(t, err)

	for k, v := range fields {
		require.NoError(t, writer.WriteField(k, v))
	}
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func newTestHandler(inspector *fakeInspector) http.Handler {
	users := app.NewUserService(storage.NewMemoryUserRepository())
	inspections := app.NewInspectionService(users, inspector, report.NewTextDescriber())
	return NewHandler(inspections, entity.DefaultParams())
}

func TestHandler_Health(t *testing.T) {
	handler := newTestHandler(&fakeInspector{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_Inspect(t *testing.T) {
	inspector := &fakeInspector{}
	handler := newTestHandler(inspector)

	body, contentType := multipartImage(t, map[string]string{
		"blur_size": "151",
		"threshold": "40",
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/inspect", body)
	req.Header.Set("Content-Type", contentType)
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, entity.Params{BlurSize: 151, Threshold: 40}, inspector.lastParams)

	var resp struct {
		Pass        bool    `json:"pass"`
		Ratio       float64 `json:"ratio"`
		DefectCount int     `json:"defect_count"`
		Defects     []struct {
			Index int    `json:"index"`
			Type  string `json:"type"`
		} `json:"defects"`
		Annotated string `json:"annotated_jpeg_base64"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	require.False(t, resp.Pass)
	require.Equal(t, 1, resp.DefectCount)
	require.Len(t, resp.Defects, 1)
	require.Equal(t, 1, resp.Defects[0].Index)
	require.Equal(t, "speck", resp.Defects[0].Type)
	require.NotEmpty(t, resp.Annotated)
}

func TestHandler_Inspect_MissingImage(t *testing.T) {
	handler := newTestHandler(&fakeInspector{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/inspect", nil)
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}
