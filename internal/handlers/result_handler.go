package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"alfredoptarigan/cv-analyzer/internal/models"
	"alfredoptarigan/cv-analyzer/internal/repositories"
	"alfredoptarigan/cv-analyzer/internal/services"
)

type ResultHandler struct {
	repo    repositories.AnalysisRepository
	service services.AnalysisService
}

func NewResultHandler(repo repositories.AnalysisRepository, service services.AnalysisService) *ResultHandler {
	return &ResultHandler{
		repo:    repo,
		service: service,
	}
}

func parseAnalysisID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusBadRequest, "Invalid analysis ID format")
	}
	return id, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Analysis not found")
	}
	return err
}

func (h *ResultHandler) HandleGetResult(c *fiber.Ctx) error {
	id, err := parseAnalysisID(c)
	if err != nil {
		return err
	}

	analysis, err := h.repo.FindByID(id)
	if err != nil {
		return notFoundOr(err)
	}

	return c.JSON(analysis.ResultResponse())
}

// HandleDeleteResult removes the analysis and its stored file.
func (h *ResultHandler) HandleDeleteResult(c *fiber.Ctx) error {
	id, err := parseAnalysisID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return notFoundOr(err)
	}

	return c.JSON(fiber.Map{
		"message": "Analysis deleted",
		"id":      id.String(),
	})
}

// HandleListResults pages through completed analyses, ten per page.
func (h *ResultHandler) HandleListResults(c *fiber.Ctx) error {
	q := ListQuery{Page: c.QueryInt("page", 1)}
	if err := validateQuery(q); err != nil {
		return err
	}

	analyses, total, err := h.repo.ListCompleted(q.Page, resultsPageSize)
	if err != nil {
		return err
	}

	return c.JSON(models.ListResponse{
		Page:       q.Page,
		PageSize:   resultsPageSize,
		Total:      total,
		TotalPages: int((total + resultsPageSize - 1) / resultsPageSize),
		Results:    summaries(analyses),
	})
}

// HandleRank returns the best scoring completed analyses.
func (h *ResultHandler) HandleRank(c *fiber.Ctx) error {
	q := RankQuery{Limit: c.QueryInt("limit", defaultRankSize)}
	if err := validateQuery(q); err != nil {
		return err
	}

	analyses, err := h.repo.TopRanked(q.Limit)
	if err != nil {
		return err
	}

	return c.JSON(models.RankResponse{Results: summaries(analyses)})
}

func summaries(analyses []models.Analysis) []models.AnalysisSummary {
	out := make([]models.AnalysisSummary, len(analyses))
	for i := range analyses {
		out[i] = analyses[i].Summary()
	}
	return out
}
