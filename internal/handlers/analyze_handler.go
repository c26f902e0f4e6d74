package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"alfredoptarigan/cv-analyzer/internal/models"
	"alfredoptarigan/cv-analyzer/internal/services"
)

const analyzeField = "files[]"

type AnalyzeHandler struct {
	service     services.AnalysisService
	maxFileSize int64
	logger      *zap.Logger
}

func NewAnalyzeHandler(service services.AnalysisService, maxFileSize int64, log *zap.Logger) *AnalyzeHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AnalyzeHandler{
		service:     service,
		maxFileSize: maxFileSize,
		logger:      log,
	}
}

// HandleAnalyze analyzes every file before responding. A bad file fails on its
// own and does not stop the rest of the batch.
func (h *AnalyzeHandler) HandleAnalyze(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil || len(form.File[analyzeField]) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, `No files provided. Use "files[]" parameter.`)
	}

	req, err := parseAnalysisForm(c)
	if err != nil {
		return err
	}

	files := form.File[analyzeField]
	response := models.AnalyzeResponse{Results: make([]models.AnalyzeFileResult, 0, len(files))}

	for _, fh := range files {
		result := models.AnalyzeFileResult{Filename: fh.Filename, Status: "success"}

		analysis, err := h.analyzeOne(c, fh.Filename, fh.Size, func() ([]byte, error) {
			return readUpload(fh, h.maxFileSize)
		}, req)
		if err != nil {
			msg := err.Error()
			result.Status = "failed"
			result.Error = &msg
			h.logger.Warn("⚠️ file analysis failed", zap.String("filename", fh.Filename), zap.Error(err))
		} else {
			result.ID = analysis.ID.String()
			result.Result = analysis.Data()
			response.SuccessCount++
		}

		response.Results = append(response.Results, result)
	}

	response.Count = len(response.Results)
	return c.JSON(response)
}

func (h *AnalyzeHandler) analyzeOne(c *fiber.Ctx, name string, size int64, read func() ([]byte, error), form AnalysisForm) (*models.Analysis, error) {
	if err := services.ValidateFile(services.UploadFile{Name: name, Size: size}, h.maxFileSize); err != nil {
		return nil, err
	}

	data, err := read()
	if err != nil {
		return nil, err
	}

	return h.service.AnalyzeNow(c.UserContext(), name, data, form.Request())
}
