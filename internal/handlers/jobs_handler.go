package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/cv-analyzer/internal/models"
	"alfredoptarigan/cv-analyzer/internal/services"
)

type JobsHandler struct {
	service services.AnalysisService
}

func NewJobsHandler(service services.AnalysisService) *JobsHandler {
	return &JobsHandler{service: service}
}

// HandleListJobs lists the roles that have keyword data.
func (h *JobsHandler) HandleListJobs(c *fiber.Ctx) error {
	roles := h.service.Roles()

	response := models.JobsResponse{Roles: make([]models.RoleResponse, len(roles))}
	for i, r := range roles {
		response.Roles[i] = models.RoleResponse{Title: r.Title, Keywords: r.Keywords}
	}

	return c.JSON(response)
}

// HandleSimilar finds completed analyses close to a free text query.
func (h *JobsHandler) HandleSimilar(c *fiber.Ctx) error {
	q := SimilarQuery{
		Query: c.Query("q"),
		Limit: c.QueryInt("limit", services.DefaultSimilarLimit),
	}
	if err := validateQuery(q); err != nil {
		return err
	}

	results, err := h.service.Similar(c.UserContext(), q.Query, q.Limit)
	if errors.Is(err, services.ErrIndexDisabled) {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Similar search is disabled")
	}
	if err != nil {
		return err
	}

	return c.JSON(models.SimilarResponse{Query: q.Query, Results: results})
}
