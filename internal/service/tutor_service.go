package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/spec-kit/tutor-marketplace/internal/auth"
	"github.com/spec-kit/tutor-marketplace/internal/domain"
	"github.com/spec-kit/tutor-marketplace/internal/events"
	"github.com/spec-kit/tutor-marketplace/internal/repository"
	apperrors "github.com/spec-kit/tutor-marketplace/pkg/util"
)

const (
	cacheKeyTutorList   = "tutors:all"
	cacheKeyTutorPrefix = "tutor:"
)

// Cache is the read-through cache used for public tutor listings.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// TutorService coordinates tutor profile and review workflows.
type TutorService struct {
	users      repository.UserRepository
	tutors     repository.TutorRepository
	reviews    repository.ReviewRepository
	cache      Cache
	cacheTTL   time.Duration
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// TutorDependencies bundles requirements for the tutor service.
type TutorDependencies struct {
	UserRepo   repository.UserRepository
	TutorRepo  repository.TutorRepository
	ReviewRepo repository.ReviewRepository
	Cache      Cache
	CacheTTL   time.Duration
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// NewTutorService constructs the service.
func NewTutorService(deps TutorDependencies) *TutorService {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TutorService{
		users:      deps.UserRepo,
		tutors:     deps.TutorRepo,
		reviews:    deps.ReviewRepo,
		cache:      deps.Cache,
		cacheTTL:   deps.CacheTTL,
		dispatcher: deps.Dispatcher,
		logger:     logger,
	}
}

// TutorProfileInput describes profile creation payload.
type TutorProfileInput struct {
	Bio             string
	Specializations []string
	HourlyRate      int32
	YearsExperience int32
}

// CreateProfile creates the caller's tutor profile. One profile per account;
// only tutors (or admins) may create one.
func (s *TutorService) CreateProfile(ctx context.Context, userID string, input TutorProfileInput) (*domain.TutorListing, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user")
		}
		return nil, err
	}
	if err := auth.Authorize(user.Role, domain.RoleTutor); err != nil {
		return nil, err
	}

	if _, err := s.tutors.GetByUserID(ctx, userID); err == nil {
		return nil, apperrors.NewBadRequest("tutor profile already exists")
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	profile := &domain.TutorProfile{
		UserID:          userID,
		Bio:             input.Bio,
		Specializations: input.Specializations,
		HourlyRate:      input.HourlyRate,
		YearsExperience: input.YearsExperience,
	}
	if err := s.tutors.Create(ctx, profile); err != nil {
		if apperrors.IsUniqueViolation(err, "tutors_user_id_key") {
			return nil, apperrors.NewBadRequest("tutor profile already exists")
		}
		return nil, err
	}

	s.invalidate(ctx, cacheKeyTutorList)
	return &domain.TutorListing{
		TutorProfile: *profile,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		Email:        user.Email,
	}, nil
}

// UpdateProfile applies a sparse patch to the caller's profile and returns
// the persisted record.
func (s *TutorService) UpdateProfile(ctx context.Context, userID string, patch domain.TutorProfilePatch) (*domain.TutorListing, error) {
	if patch.Empty() {
		return nil, apperrors.NewBadRequest("no fields to update")
	}

	listing, err := s.tutors.UpdatePartial(ctx, userID, patch)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("tutor profile")
		}
		return nil, err
	}

	s.invalidate(ctx, cacheKeyTutorList, cacheKeyTutorPrefix+listing.ID)
	s.publish(ctx, events.Event{
		Type:      events.EventProfileUpdated,
		ActorID:   userID,
		Timestamp: time.Now(),
		Payload:   events.ProfileUpdatedPayload{TutorID: listing.ID},
	})
	return listing, nil
}

// GetTutor returns one tutor listing, served from cache when possible.
func (s *TutorService) GetTutor(ctx context.Context, tutorID string) (*domain.TutorListing, error) {
	key := cacheKeyTutorPrefix + tutorID
	if s.cache != nil {
		if payload, err := s.cache.Get(ctx, key); err == nil {
			var listing domain.TutorListing
			if err := json.Unmarshal(payload, &listing); err == nil {
				return &listing, nil
			}
		}
	}

	listing, err := s.tutors.GetByID(ctx, tutorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("tutor")
		}
		return nil, err
	}

	s.cacheSet(ctx, key, listing)
	return listing, nil
}

// ListTutors returns all available tutors, best rated first.
func (s *TutorService) ListTutors(ctx context.Context) ([]domain.TutorListing, error) {
	if s.cache != nil {
		if payload, err := s.cache.Get(ctx, cacheKeyTutorList); err == nil {
			var listings []domain.TutorListing
			if err := json.Unmarshal(payload, &listings); err == nil {
				return listings, nil
			}
		}
	}

	listings, err := s.tutors.List(ctx)
	if err != nil {
		return nil, err
	}

	s.cacheSet(ctx, cacheKeyTutorList, listings)
	return listings, nil
}

// SearchTutors filters available tutors by specialization tag.
func (s *TutorService) SearchTutors(ctx context.Context, specialization string) ([]domain.TutorListing, error) {
	if specialization == "" {
		return s.ListTutors(ctx)
	}
	return s.tutors.SearchBySpecialization(ctx, specialization)
}

// ReviewInput describes review creation payload.
type ReviewInput struct {
	Rating  int32
	Comment *string
}

// CreateReview records a student's review and refreshes the tutor's derived
// rating. The duplicate pre-check is advisory; the store constraint closes
// the race between check and insert.
func (s *TutorService) CreateReview(ctx context.Context, studentID string, role domain.UserRole, tutorID string, input ReviewInput) (*domain.ReviewListing, error) {
	if err := auth.Authorize(role, domain.RoleStudent); err != nil {
		return nil, err
	}
	if input.Rating < 1 || input.Rating > 5 {
		return nil, apperrors.NewValidationError("rating must be between 1 and 5")
	}

	if _, err := s.tutors.GetByID(ctx, tutorID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("tutor")
		}
		return nil, err
	}

	exists, err := s.reviews.ExistsForStudent(ctx, tutorID, studentID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.NewBadRequest("review already exists for this tutor")
	}

	review := &domain.Review{
		TutorID:   tutorID,
		StudentID: studentID,
		Rating:    input.Rating,
		Comment:   input.Comment,
	}
	if err := s.reviews.Create(ctx, review); err != nil {
		if apperrors.IsUniqueViolation(err, "tutor_reviews_tutor_student_key") {
			return nil, apperrors.NewBadRequest("review already exists for this tutor")
		}
		return nil, err
	}

	s.invalidate(ctx, cacheKeyTutorList, cacheKeyTutorPrefix+tutorID)
	s.publish(ctx, events.Event{
		Type:      events.EventReviewCreated,
		ActorID:   studentID,
		Timestamp: time.Now(),
		Payload: events.ReviewCreatedPayload{
			ReviewID: review.ID,
			TutorID:  tutorID,
			Rating:   review.Rating,
		},
	})

	student, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	return &domain.ReviewListing{
		Review:      *review,
		StudentName: student.FullName(),
	}, nil
}

// ListReviews returns reviews for a tutor, newest first.
func (s *TutorService) ListReviews(ctx context.Context, tutorID string) ([]domain.ReviewListing, error) {
	return s.reviews.ListByTutor(ctx, tutorID)
}

func (s *TutorService) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, payload, s.cacheTTL); err != nil {
		s.logger.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *TutorService) invalidate(ctx context.Context, keys ...string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		s.logger.Warn("cache invalidation failed", zap.Error(err))
	}
}

func (s *TutorService) publish(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Publish(ctx, event)
}
