package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/cv-analyzer/internal/models"
	"alfredoptarigan/cv-analyzer/internal/services"
)

const uploadField = "cv_files"

// JobEnqueuer is satisfied by services.Worker.
type JobEnqueuer interface {
	EnqueueJob(analysisID uuid.UUID)
}

type UploadHandler struct {
	service     services.AnalysisService
	queue       JobEnqueuer
	maxFileSize int64
}

func NewUploadHandler(
	service services.AnalysisService,
	queue JobEnqueuer,
	maxFileSize int64,
) *UploadHandler {
	return &UploadHandler{
		service:     service,
		queue:       queue,
		maxFileSize: maxFileSize,
	}
}

// HandleUpload stores every file of the batch and queues one analysis each.
// The whole batch is rejected when any file is invalid.
func (h *UploadHandler) HandleUpload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "failed to parse multipart form")
	}

	files := form.File[uploadField]
	if err := services.ValidateUpload(uploadFiles(files), h.maxFileSize); err != nil {
		return err
	}

	req, err := parseAnalysisForm(c)
	if err != nil {
		return err
	}

	response := models.UploadResponse{Analyses: make([]models.UploadedAnalysis, 0, len(files))}

	for _, fh := range files {
		data, err := readUpload(fh, h.maxFileSize)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, fh.Filename+": "+err.Error())
		}

		analysis, err := h.service.Submit(c.UserContext(), fh.Filename, data, req.Request())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "failed to save "+fh.Filename+": "+err.Error())
		}

		h.queue.EnqueueJob(analysis.ID)

		response.Analyses = append(response.Analyses, models.UploadedAnalysis{
			ID:       analysis.ID.String(),
			Filename: analysis.Filename,
			Status:   string(analysis.Status),
		})
	}

	response.Count = len(response.Analyses)
	return c.Status(fiber.StatusAccepted).JSON(response)
}
