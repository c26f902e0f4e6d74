package handlers

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"alfredoptarigan/cv-analyzer/internal/criteria"
	"alfredoptarigan/cv-analyzer/internal/models"
	"alfredoptarigan/cv-analyzer/internal/services"
)

const (
	resultsPageSize = 10
	defaultRankSize = 5
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// education_level accepts high school, diploma, bachelors, masters and phd in any case.
	if err := v.RegisterValidation("education_level", func(fl validator.FieldLevel) bool {
		return criteria.IsEducationLevel(fl.Field().String())
	}); err != nil {
		panic(fmt.Sprintf("failed to register education_level validation: %v", err))
	}
	return v
}

// AnalysisForm holds the optional fields sent next to uploaded files.
type AnalysisForm struct {
	JobName           string `validate:"max=100"`
	RequiredYears     *int   `validate:"omitempty,min=0,max=60"`
	RequiredEducation string `validate:"omitempty,education_level"`
	RequiredSkills    string `validate:"max=1000"`
}

func (f AnalysisForm) Request() services.AnalysisRequest {
	return services.AnalysisRequest{
		JobName:           strings.TrimSpace(f.JobName),
		RequiredYears:     f.RequiredYears,
		RequiredEducation: strings.TrimSpace(f.RequiredEducation),
		RequiredSkills:    criteria.ParseSkillList(f.RequiredSkills),
	}
}

func parseAnalysisForm(c *fiber.Ctx) (AnalysisForm, error) {
	form := AnalysisForm{
		JobName:           c.FormValue("job_name"),
		RequiredEducation: strings.TrimSpace(c.FormValue("required_education")),
		RequiredSkills:    c.FormValue("required_skills"),
	}

	if raw := strings.TrimSpace(c.FormValue("required_years")); raw != "" {
		years, err := strconv.Atoi(raw)
		if err != nil {
			return form, fiber.NewError(fiber.StatusBadRequest, "required_years must be a whole number")
		}
		form.RequiredYears = &years
	}

	if err := validate.Struct(form); err != nil {
		return form, fiber.NewError(fiber.StatusBadRequest, validationMessage(err))
	}

	return form, nil
}

type ListQuery struct {
	Page int `validate:"min=1"`
}

type RankQuery struct {
	Limit int `validate:"min=1,max=50"`
}

type SimilarQuery struct {
	Query string `validate:"required,max=500"`
	Limit int    `validate:"min=1,max=20"`
}

// validationMessage reports the first failed rule.
func validationMessage(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		ve := validationErrors[0]
		return fmt.Sprintf("validation error: %s - %s", ve.Field(), ve.Tag())
	}
	return "validation error: invalid request"
}

func validateQuery(q any) error {
	if err := validate.Struct(q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, validationMessage(err))
	}
	return nil
}

// readUpload reads at most maxSize+1 bytes so oversized files are detected
// without buffering them whole.
func readUpload(fh *multipart.FileHeader, maxSize int64) ([]byte, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file: %w", err)
	}
	if int64(len(data)) > maxSize {
		return nil, errors.New("File size exceeds the upload limit")
	}
	return data, nil
}

func uploadFiles(files []*multipart.FileHeader) []services.UploadFile {
	out := make([]services.UploadFile, len(files))
	for i, fh := range files {
		out[i] = services.UploadFile{Name: fh.Filename, Size: fh.Size}
	}
	return out
}

// ErrorHandler renders every error as models.ErrorResponse.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	resp := models.ErrorResponse{Error: err.Error()}

	var fe *fiber.Error
	var ve *services.ValidationError
	switch {
	case errors.As(err, &fe):
		code = fe.Code
		resp.Error = fe.Message
	case errors.As(err, &ve):
		code = fiber.StatusBadRequest
		resp.Error = "Invalid upload"
		resp.Details = ve.Messages
	}

	resp.Code = code
	return c.Status(code).JSON(resp)
}
