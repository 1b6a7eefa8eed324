package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
)

// In-memory fakes standing in for the Postgres repositories. They mirror the
// store's behavior at the boundary the services observe: pgx.ErrNoRows for
// misses and pgconn.PgError 23505 for unique constraint violations.

func uniqueViolation(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

type fakeUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*domain.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if strings.EqualFold(existing.Email, user.Email) {
			return uniqueViolation("users_email_lower_key")
		}
	}
	r.seq++
	user.ID = fmt.Sprintf("user-%d", r.seq)
	user.IsActive = true
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *user
	return &clone, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) deactivate(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		user.IsActive = false
	}
}

type fakeTutorRepo struct {
	mu       sync.Mutex
	profiles map[string]*domain.TutorListing
	byUser   map[string]string
	seq      int
}

func newFakeTutorRepo() *fakeTutorRepo {
	return &fakeTutorRepo{
		profiles: make(map[string]*domain.TutorListing),
		byUser:   make(map[string]string),
	}
}

func (r *fakeTutorRepo) Create(_ context.Context, profile *domain.TutorProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byUser[profile.UserID]; ok {
		return uniqueViolation("tutors_user_id_key")
	}
	r.seq++
	profile.ID = fmt.Sprintf("tutor-%d", r.seq)
	profile.IsAvailable = true
	profile.CreatedAt = time.Now()
	profile.UpdatedAt = profile.CreatedAt
	r.profiles[profile.ID] = &domain.TutorListing{TutorProfile: *profile}
	r.byUser[profile.UserID] = profile.ID
	return nil
}

func (r *fakeTutorRepo) GetByID(_ context.Context, id string) (*domain.TutorListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	listing, ok := r.profiles[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *listing
	return &clone, nil
}

func (r *fakeTutorRepo) GetByUserID(_ context.Context, userID string) (*domain.TutorListing, error) {
	r.mu.Lock()
	tutorID, ok := r.byUser[userID]
	r.mu.Unlock()
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return r.GetByID(context.Background(), tutorID)
}

func (r *fakeTutorRepo) List(_ context.Context) ([]domain.TutorListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.TutorListing, 0, len(r.profiles))
	for _, listing := range r.profiles {
		out = append(out, *listing)
	}
	return out, nil
}

func (r *fakeTutorRepo) SearchBySpecialization(_ context.Context, specialization string) ([]domain.TutorListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.TutorListing
	for _, listing := range r.profiles {
		for _, s := range listing.Specializations {
			if strings.EqualFold(s, specialization) {
				out = append(out, *listing)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeTutorRepo) UpdatePartial(_ context.Context, userID string, patch domain.TutorProfilePatch) (*domain.TutorListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tutorID, ok := r.byUser[userID]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	listing := r.profiles[tutorID]
	if patch.Bio != nil {
		listing.Bio = *patch.Bio
	}
	if patch.Specializations != nil {
		listing.Specializations = *patch.Specializations
	}
	if patch.HourlyRate != nil {
		listing.HourlyRate = *patch.HourlyRate
	}
	if patch.YearsExperience != nil {
		listing.YearsExperience = *patch.YearsExperience
	}
	if patch.IsAvailable != nil {
		listing.IsAvailable = *patch.IsAvailable
	}
	listing.UpdatedAt = time.Now()
	clone := *listing
	return &clone, nil
}

type fakeReviewRepo struct {
	mu      sync.Mutex
	tutors  *fakeTutorRepo
	reviews []domain.Review
	seq     int
}

func newFakeReviewRepo(tutors *fakeTutorRepo) *fakeReviewRepo {
	return &fakeReviewRepo{tutors: tutors}
}

// Create inserts the review and recomputes the tutor's aggregate the way the
// transactional store path does.
func (r *fakeReviewRepo) Create(_ context.Context, review *domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reviews {
		if existing.TutorID == review.TutorID && existing.StudentID == review.StudentID {
			return uniqueViolation("tutor_reviews_tutor_student_key")
		}
	}
	r.seq++
	review.ID = fmt.Sprintf("review-%d", r.seq)
	review.CreatedAt = time.Now()
	r.reviews = append(r.reviews, *review)

	var sum, count int32
	for _, existing := range r.reviews {
		if existing.TutorID == review.TutorID {
			sum += existing.Rating
			count++
		}
	}
	r.tutors.mu.Lock()
	if listing, ok := r.tutors.profiles[review.TutorID]; ok {
		avg := float32(sum) / float32(count)
		listing.Rating = &avg
		listing.TotalReviews = count
	}
	r.tutors.mu.Unlock()
	return nil
}

func (r *fakeReviewRepo) ExistsForStudent(_ context.Context, tutorID, studentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.reviews {
		if existing.TutorID == tutorID && existing.StudentID == studentID {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReviewRepo) ListByTutor(_ context.Context, tutorID string) ([]domain.ReviewListing, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.ReviewListing
	for i := len(r.reviews) - 1; i >= 0; i-- {
		if r.reviews[i].TutorID == tutorID {
			out = append(out, domain.ReviewListing{Review: r.reviews[i]})
		}
	}
	return out, nil
}

type fakeCourseRepo struct {
	mu      sync.Mutex
	tutors  *fakeTutorRepo
	courses map[string]*domain.Course
	seq     int
}

func newFakeCourseRepo(tutors *fakeTutorRepo) *fakeCourseRepo {
	return &fakeCourseRepo{tutors: tutors, courses: make(map[string]*domain.Course)}
}

func (r *fakeCourseRepo) Create(_ context.Context, course *domain.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	course.ID = fmt.Sprintf("course-%d", r.seq)
	course.IsActive = true
	course.CreatedAt = time.Now()
	course.UpdatedAt = course.CreatedAt
	clone := *course
	r.courses[course.ID] = &clone
	return nil
}

func (r *fakeCourseRepo) GetByID(_ context.Context, id string) (*domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	course, ok := r.courses[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	clone := *course
	return &clone, nil
}

func (r *fakeCourseRepo) ListActive(_ context.Context) ([]domain.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Course
	for _, course := range r.courses {
		if course.IsActive {
			out = append(out, *course)
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) ListByOwner(_ context.Context, userID string) ([]domain.Course, error) {
	tutorID := r.ownerTutorID(userID)
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Course
	for _, course := range r.courses {
		if course.TutorID == tutorID {
			out = append(out, *course)
		}
	}
	return out, nil
}

func (r *fakeCourseRepo) UpdatePartial(_ context.Context, courseID, ownerUserID string, patch domain.CoursePatch) (*domain.Course, error) {
	tutorID := r.ownerTutorID(ownerUserID)
	r.mu.Lock()
	defer r.mu.Unlock()
	course, ok := r.courses[courseID]
	if !ok || course.TutorID != tutorID {
		return nil, pgx.ErrNoRows
	}
	if patch.Title != nil {
		course.Title = *patch.Title
	}
	if patch.Description != nil {
		course.Description = *patch.Description
	}
	if patch.Price != nil {
		course.Price = *patch.Price
	}
	if patch.DurationMinutes != nil {
		course.DurationMinutes = *patch.DurationMinutes
	}
	if patch.Category != nil {
		course.Category = *patch.Category
	}
	if patch.Difficulty != nil {
		course.Difficulty = *patch.Difficulty
	}
	if patch.IsActive != nil {
		course.IsActive = *patch.IsActive
	}
	course.UpdatedAt = time.Now()
	clone := *course
	return &clone, nil
}

func (r *fakeCourseRepo) Delete(_ context.Context, courseID, ownerUserID string) error {
	tutorID := r.ownerTutorID(ownerUserID)
	r.mu.Lock()
	defer r.mu.Unlock()
	course, ok := r.courses[courseID]
	if !ok || course.TutorID != tutorID {
		return pgx.ErrNoRows
	}
	delete(r.courses, courseID)
	return nil
}

func (r *fakeCourseRepo) ownerTutorID(userID string) string {
	r.tutors.mu.Lock()
	defer r.tutors.mu.Unlock()
	return r.tutors.byUser[userID]
}

var errCacheMiss = errors.New("cache miss")

type fakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
	hits int
	sets int
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.data[key]
	if !ok {
		return nil, errCacheMiss
	}
	c.hits++
	return payload, nil
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = value
	c.sets++
	return nil
}

func (c *fakeCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, key := range keys {
		delete(c.data, key)
	}
	return nil
}
