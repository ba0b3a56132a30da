package transport

import (
	"encoding/base64"
	"io"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	app "lens-inspector/internal/application"
	"lens-inspector/internal/domain/entity"
)

// defectDTO описание дефекта в ответе API
type defectDTO struct {
	Index       int     `json:"index"`
	Type        string  `json:"type"`
	Area        float64 `json:"area"`
	AspectRatio float64 `json:"aspect_ratio"`
	CenterX     float64 `json:"center_x"`
	CenterY     float64 `json:"center_y"`
}

// inspectResponse результат одношаговой инспекции
type inspectResponse struct {
	Pass        bool        `json:"pass"`
	Ratio       float64     `json:"ratio"`
	DefectCount int         `json:"defect_count"`
	Summary     string      `json:"summary"`
	Defects     []defectDTO `json:"defects"`
	Annotated   string      `json:"annotated_jpeg_base64,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewHandler собирает HTTP-обработчики одношаговой инспекции линз.
func NewHandler(inspections *app.InspectionService, defaults entity.Params) http.Handler {
	r := gin.Default()

	r.GET("/health", healthCheck)
	r.POST("/inspect", inspectImage(inspections, defaults))

	return r
}

func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// inspectImage принимает multipart-файл image и необязательные поля
// blur_size / threshold, запускает пайплайн и возвращает вердикт с дефектами.
func inspectImage(inspections *app.InspectionService, defaults entity.Params) gin.HandlerFunc {
	return func(c *gin.Context) {
		file, err := c.FormFile("image")
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "image file is required"})
			return
		}

		src, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "failed to open image"})
			return
		}
		defer src.Close()

		imageData, err := io.ReadAll(src)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "failed to read image"})
			return
		}

		params := entity.Params{
			BlurSize:  formInt(c, "blur_size", defaults.BlurSize),
			Threshold: formInt(c, "threshold", defaults.Threshold),
		}

		output, err := inspections.InspectOnce(c.Request.Context(), imageData, params)
		if err != nil {
			log.Printf("Error inspecting image: %v", err)
			c.JSON(http.StatusUnprocessableEntity, errorResponse{Error: err.Error()})
			return
		}

		c.JSON(http.StatusOK, buildResponse(output))
	}
}

func buildResponse(output *app.InspectionOutput) inspectResponse {
	result := output.Result

	defects := make([]defectDTO, 0, len(result.Defects))
	for i, d := range result.Defects {
		defects = append(defects, defectDTO{
			Index:       i + 1,
			Type:        d.Type.String(),
			Area:        d.Area,
			AspectRatio: d.AspectRatio,
			CenterX:     d.Center.X,
			CenterY:     d.Center.Y,
		})
	}

	return inspectResponse{
		Pass:        result.Verdict.Pass,
		Ratio:       result.Verdict.Ratio,
		DefectCount: result.Verdict.DefectCount,
		Summary:     output.Summary,
		Defects:     defects,
		Annotated:   base64.StdEncoding.EncodeToString(output.Annotated),
	}
}

// formInt читает целое поле формы с запасным значением.
func formInt(c *gin.Context, key string, fallback int) int {
	raw := c.PostForm(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
