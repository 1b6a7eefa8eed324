package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/tutor-marketplace/internal/api/dto"
	"github.com/spec-kit/tutor-marketplace/internal/auth"
	"github.com/spec-kit/tutor-marketplace/internal/domain"
	"github.com/spec-kit/tutor-marketplace/internal/service"
	apperrors "github.com/spec-kit/tutor-marketplace/pkg/util"
)

// CoursesHandler manages course endpoints.
type CoursesHandler struct {
	service *service.CourseService
}

// NewCoursesHandler constructs handler.
func NewCoursesHandler(courseService *service.CourseService) *CoursesHandler {
	return &CoursesHandler{service: courseService}
}

// CreateCourse handles POST /courses.
func (h *CoursesHandler) CreateCourse(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewAuthenticationError("authentication required")
	}
	var req dto.CreateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Title == "" || req.Description == "" || req.Category == "" {
		return apperrors.NewValidationError("title, description, category required")
	}
	if req.Price < 0 {
		return apperrors.NewValidationError("price must not be negative")
	}
	if req.DurationMinutes < 15 || req.DurationMinutes > 480 {
		return apperrors.NewValidationError("duration_minutes must be between 15 and 480")
	}

	course, err := h.service.Create(c.UserContext(), claims.Subject, service.CourseInput{
		Title:           req.Title,
		Description:     req.Description,
		Price:           req.Price,
		DurationMinutes: req.DurationMinutes,
		Category:        req.Category,
		Difficulty:      req.Difficulty,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewCourseResponse(course))
}

// ListCourses handles GET /courses.
func (h *CoursesHandler) ListCourses(c *fiber.Ctx) error {
	courses, err := h.service.ListActive(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(courseResponses(courses))
}

// ListMyCourses handles GET /courses/mine.
func (h *CoursesHandler) ListMyCourses(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewAuthenticationError("authentication required")
	}
	courses, err := h.service.ListMine(c.UserContext(), claims.Subject)
	if err != nil {
		return err
	}
	return c.JSON(courseResponses(courses))
}

// GetCourse handles GET /courses/:id.
func (h *CoursesHandler) GetCourse(c *fiber.Ctx) error {
	courseID, err := parseResourceID(c.Params("id"), "course")
	if err != nil {
		return err
	}
	course, err := h.service.Get(c.UserContext(), courseID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCourseResponse(course))
}

// UpdateCourse handles PUT /courses/:id.
func (h *CoursesHandler) UpdateCourse(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewAuthenticationError("authentication required")
	}
	courseID, err := parseResourceID(c.Params("id"), "course")
	if err != nil {
		return err
	}
	var req dto.UpdateCourseRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	course, err := h.service.Update(c.UserContext(), courseID, claims.Subject, req.Patch())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewCourseResponse(course))
}

// DeleteCourse handles DELETE /courses/:id.
func (h *CoursesHandler) DeleteCourse(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewAuthenticationError("authentication required")
	}
	courseID, err := parseResourceID(c.Params("id"), "course")
	if err != nil {
		return err
	}
	if err := h.service.Delete(c.UserContext(), courseID, claims.Subject); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func courseResponses(courses []domain.Course) []dto.CourseResponse {
	items := make([]dto.CourseResponse, 0, len(courses))
	for i := range courses {
		items = append(items, dto.NewCourseResponse(&courses[i]))
	}
	return items
}
