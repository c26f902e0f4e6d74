package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Upload  *UploadHandler
	Analyze *AnalyzeHandler
	Result  *ResultHandler
	Jobs    *JobsHandler
}

var endpoints = []string{
	"POST /api/v1/upload",
	"POST /api/v1/analyze",
	"GET /api/v1/results",
	"GET /api/v1/rank",
	"GET /api/v1/result/:id",
	"DELETE /api/v1/result/:id",
	"GET /api/v1/jobs",
	"GET /api/v1/similar",
}

// Register mounts the API under /api/v1 and the index route at /.
func (h Handlers) Register(app *fiber.App) {
	api := app.Group("/api/v1")

	api.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now(),
		})
	})

	api.Post("/upload", h.Upload.HandleUpload)
	api.Post("/analyze", h.Analyze.HandleAnalyze)
	api.Get("/results", h.Result.HandleListResults)
	api.Get("/rank", h.Result.HandleRank)
	api.Get("/result/:id", h.Result.HandleGetResult)
	api.Delete("/result/:id", h.Result.HandleDeleteResult)
	api.Get("/jobs", h.Jobs.HandleListJobs)
	api.Get("/similar", h.Jobs.HandleSimilar)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"message":   "CV Analyzer API",
			"version":   "1.0.0",
			"endpoints": endpoints,
		})
	})
}
