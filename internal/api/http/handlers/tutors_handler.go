package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/spec-kit/tutor-marketplace/internal/api/dto"
	"github.com/spec-kit/tutor-marketplace/internal/auth"
	"github.com/spec-kit/tutor-marketplace/internal/service"
	apperrors "github.com/spec-kit/tutor-marketplace/pkg/util"
)

// TutorsHandler manages tutor profile and review endpoints.
type TutorsHandler struct {
	service *service.TutorService
}

// NewTutorsHandler constructs handler.
func NewTutorsHandler(tutorService *service.TutorService) *TutorsHandler {
	return &TutorsHandler{service: tutorService}
}

// CreateProfile handles POST /tutors/profile.
func (h *TutorsHandler) CreateProfile(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewAuthenticationError("authentication required")
	}
	var req dto.CreateTutorProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}
	if req.Bio == "" {
		return apperrors.NewValidationError("bio required")
	}
	if req.HourlyRate <= 0 {
		return apperrors.NewValidationError("hourly_rate must be positive")
	}
	if req.YearsExperience < 0 {
		return apperrors.NewValidationError("years_experience must not be negative")
	}

	listing, err := h.service.CreateProfile(c.UserContext(), claims.Subject, service.TutorProfileInput{
		Bio:             req.Bio,
		Specializations: req.Specializations,
		HourlyRate:      req.HourlyRate,
		YearsExperience: req.YearsExperience,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewTutorResponse(listing))
}

// UpdateProfile handles PUT /tutors/profile.
func (h *TutorsHandler) UpdateProfile(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewAuthenticationError("authentication required")
	}
	var req dto.UpdateTutorProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	listing, err := h.service.UpdateProfile(c.UserContext(), claims.Subject, req.Patch())
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTutorResponse(listing))
}

// ListTutors handles GET /tutors with an optional specialization filter.
func (h *TutorsHandler) ListTutors(c *fiber.Ctx) error {
	listings, err := h.service.SearchTutors(c.UserContext(), c.Query("specialization"))
	if err != nil {
		return err
	}
	items := make([]dto.TutorResponse, 0, len(listings))
	for i := range listings {
		items = append(items, dto.NewTutorResponse(&listings[i]))
	}
	return c.JSON(items)
}

// GetTutor handles GET /tutors/:id.
func (h *TutorsHandler) GetTutor(c *fiber.Ctx) error {
	tutorID, err := parseResourceID(c.Params("id"), "tutor")
	if err != nil {
		return err
	}
	listing, err := h.service.GetTutor(c.UserContext(), tutorID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewTutorResponse(listing))
}

// CreateReview handles POST /tutors/:id/reviews.
func (h *TutorsHandler) CreateReview(c *fiber.Ctx) error {
	claims, ok := auth.ClaimsFromContext(c)
	if !ok {
		return apperrors.NewAuthenticationError("authentication required")
	}
	tutorID, err := parseResourceID(c.Params("id"), "tutor")
	if err != nil {
		return err
	}
	var req dto.CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload")
	}

	review, err := h.service.CreateReview(c.UserContext(), claims.Subject, claims.Role, tutorID, service.ReviewInput{
		Rating:  req.Rating,
		Comment: req.Comment,
	})
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.NewReviewResponse(review))
}

// ListReviews handles GET /tutors/:id/reviews.
func (h *TutorsHandler) ListReviews(c *fiber.Ctx) error {
	tutorID, err := parseResourceID(c.Params("id"), "tutor")
	if err != nil {
		return err
	}
	listings, err := h.service.ListReviews(c.UserContext(), tutorID)
	if err != nil {
		return err
	}
	items := make([]dto.ReviewResponse, 0, len(listings))
	for i := range listings {
		items = append(items, dto.NewReviewResponse(&listings[i]))
	}
	return c.JSON(items)
}

// parseResourceID validates a path id. An unparseable id behaves exactly
// like a nonexistent resource.
func parseResourceID(raw, resource string) (string, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return "", apperrors.NewNotFound(resource)
	}
	return id.String(), nil
}
