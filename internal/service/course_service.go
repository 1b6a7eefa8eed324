package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
	"github.com/spec-kit/tutor-marketplace/internal/events"
	"github.com/spec-kit/tutor-marketplace/internal/repository"
	apperrors "github.com/spec-kit/tutor-marketplace/pkg/util"
)

// CourseService coordinates course workflows. Ownership of a course is
// checked inside the persistence queries; a non-owned target is reported as
// not found, never as an authorization failure.
type CourseService struct {
	tutors     repository.TutorRepository
	courses    repository.CourseRepository
	dispatcher events.Dispatcher
}

// NewCourseService constructs the service.
func NewCourseService(tutors repository.TutorRepository, courses repository.CourseRepository, dispatcher events.Dispatcher) *CourseService {
	return &CourseService{tutors: tutors, courses: courses, dispatcher: dispatcher}
}

// CourseInput describes course creation payload.
type CourseInput struct {
	Title           string
	Description     string
	Price           int32
	DurationMinutes int32
	Category        string
	Difficulty      domain.DifficultyLevel
}

// Create adds a course under the caller's tutor profile.
func (s *CourseService) Create(ctx context.Context, userID string, input CourseInput) (*domain.Course, error) {
	if !input.Difficulty.Valid() {
		return nil, apperrors.NewValidationError("difficulty must be beginner, intermediate or advanced")
	}

	profile, err := s.tutors.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("tutor profile")
		}
		return nil, err
	}

	course := &domain.Course{
		TutorID:         profile.ID,
		Title:           input.Title,
		Description:     input.Description,
		Price:           input.Price,
		DurationMinutes: input.DurationMinutes,
		Category:        input.Category,
		Difficulty:      input.Difficulty,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, err
	}

	if s.dispatcher != nil {
		s.dispatcher.Publish(ctx, events.Event{
			Type:      events.EventCourseCreated,
			ActorID:   userID,
			Timestamp: time.Now(),
			Payload: events.CourseCreatedPayload{
				CourseID: course.ID,
				TutorID:  course.TutorID,
				Title:    course.Title,
				Level:    course.Difficulty,
			},
		})
	}
	return course, nil
}

// Update applies a sparse patch to a course owned by the caller and returns
// the persisted record.
func (s *CourseService) Update(ctx context.Context, courseID, userID string, patch domain.CoursePatch) (*domain.Course, error) {
	if patch.Empty() {
		return nil, apperrors.NewBadRequest("no fields to update")
	}
	if patch.Difficulty != nil && !patch.Difficulty.Valid() {
		return nil, apperrors.NewValidationError("difficulty must be beginner, intermediate or advanced")
	}

	course, err := s.courses.UpdatePartial(ctx, courseID, userID, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("course")
		}
		return nil, err
	}
	return course, nil
}

// Delete removes a course owned by the caller.
func (s *CourseService) Delete(ctx context.Context, courseID, userID string) error {
	if err := s.courses.Delete(ctx, courseID, userID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("course")
		}
		return err
	}
	return nil
}

// Get returns one course.
func (s *CourseService) Get(ctx context.Context, courseID string) (*domain.Course, error) {
	course, err := s.courses.GetByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("course")
		}
		return nil, err
	}
	return course, nil
}

// ListActive returns all active courses, newest first.
func (s *CourseService) ListActive(ctx context.Context) ([]domain.Course, error) {
	return s.courses.ListActive(ctx)
}

// ListMine returns the caller's courses regardless of active flag.
func (s *CourseService) ListMine(ctx context.Context, userID string) ([]domain.Course, error) {
	return s.courses.ListByOwner(ctx, userID)
}
