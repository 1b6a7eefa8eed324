package dto

import (
	"time"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
)

// CreateCourseRequest payload for new courses.
type CreateCourseRequest struct {
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	Price           int32                  `json:"price"`
	DurationMinutes int32                  `json:"duration_minutes"`
	Category        string                 `json:"category"`
	Difficulty      domain.DifficultyLevel `json:"difficulty_level"`
}

// UpdateCourseRequest is a sparse update; absent fields stay unchanged.
type UpdateCourseRequest struct {
	Title           *string                 `json:"title"`
	Description     *string                 `json:"description"`
	Price           *int32                  `json:"price"`
	DurationMinutes *int32                  `json:"duration_minutes"`
	Category        *string                 `json:"category"`
	Difficulty      *domain.DifficultyLevel `json:"difficulty_level"`
	IsActive        *bool                   `json:"is_active"`
}

// Patch converts the request into a domain patch.
func (r UpdateCourseRequest) Patch() domain.CoursePatch {
	return domain.CoursePatch{
		Title:           r.Title,
		Description:     r.Description,
		Price:           r.Price,
		DurationMinutes: r.DurationMinutes,
		Category:        r.Category,
		Difficulty:      r.Difficulty,
		IsActive:        r.IsActive,
	}
}

// CourseResponse is the public course representation.
type CourseResponse struct {
	ID              string                 `json:"id"`
	TutorID         string                 `json:"tutor_id"`
	Title           string                 `json:"title"`
	Description     string                 `json:"description"`
	Price           int32                  `json:"price"`
	DurationMinutes int32                  `json:"duration_minutes"`
	Category        string                 `json:"category"`
	Difficulty      domain.DifficultyLevel `json:"difficulty_level"`
	IsActive        bool                   `json:"is_active"`
	CreatedAt       time.Time              `json:"created_at"`
	UpdatedAt       time.Time              `json:"updated_at"`
}

// NewCourseResponse maps a domain course to its public representation.
func NewCourseResponse(course *domain.Course) CourseResponse {
	return CourseResponse{
		ID:              course.ID,
		TutorID:         course.TutorID,
		Title:           course.Title,
		Description:     course.Description,
		Price:           course.Price,
		DurationMinutes: course.DurationMinutes,
		Category:        course.Category,
		Difficulty:      course.Difficulty,
		IsActive:        course.IsActive,
		CreatedAt:       course.CreatedAt,
		UpdatedAt:       course.UpdatedAt,
	}
}
