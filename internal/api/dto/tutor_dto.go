package dto

import (
	"time"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
)

// CreateTutorProfileRequest payload for new tutor profiles.
type CreateTutorProfileRequest struct {
	Bio             string   `json:"bio"`
	Specializations []string `json:"specializations"`
	HourlyRate      int32    `json:"hourly_rate"`
	YearsExperience int32    `json:"years_experience"`
}

// UpdateTutorProfileRequest is a sparse update; absent fields stay unchanged.
type UpdateTutorProfileRequest struct {
	Bio             *string   `json:"bio"`
	Specializations *[]string `json:"specializations"`
	HourlyRate      *int32    `json:"hourly_rate"`
	YearsExperience *int32    `json:"years_experience"`
	IsAvailable     *bool     `json:"is_available"`
}

// Patch converts the request into a domain patch.
func (r UpdateTutorProfileRequest) Patch() domain.TutorProfilePatch {
	return domain.TutorProfilePatch{
		Bio:             r.Bio,
		Specializations: r.Specializations,
		HourlyRate:      r.HourlyRate,
		YearsExperience: r.YearsExperience,
		IsAvailable:     r.IsAvailable,
	}
}

// TutorResponse is the public tutor profile representation.
type TutorResponse struct {
	ID              string    `json:"id"`
	UserID          string    `json:"user_id"`
	FirstName       string    `json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `json:"email"`
	Bio             string    `json:"bio"`
	Specializations []string  `json:"specializations"`
	HourlyRate      int32     `json:"hourly_rate"`
	YearsExperience int32     `json:"years_experience"`
	Rating          *float32  `json:"rating"`
	TotalReviews    int32     `json:"total_reviews"`
	IsVerified      bool      `json:"is_verified"`
	IsAvailable     bool      `json:"is_available"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NewTutorResponse maps a tutor listing to its public representation.
func NewTutorResponse(listing *domain.TutorListing) TutorResponse {
	return TutorResponse{
		ID:              listing.ID,
		UserID:          listing.UserID,
		FirstName:       listing.FirstName,
		LastName:        listing.LastName,
		Email:           listing.Email,
		Bio:             listing.Bio,
		Specializations: listing.Specializations,
		HourlyRate:      listing.HourlyRate,
		YearsExperience: listing.YearsExperience,
		Rating:          listing.Rating,
		TotalReviews:    listing.TotalReviews,
		IsVerified:      listing.IsVerified,
		IsAvailable:     listing.IsAvailable,
		CreatedAt:       listing.CreatedAt,
		UpdatedAt:       listing.UpdatedAt,
	}
}

// CreateReviewRequest payload for new reviews.
type CreateReviewRequest struct {
	Rating  int32   `json:"rating"`
	Comment *string `json:"comment"`
}

// ReviewResponse is the public review representation.
type ReviewResponse struct {
	ID          string    `json:"id"`
	TutorID     string    `json:"tutor_id"`
	StudentName string    `json:"student_name"`
	Rating      int32     `json:"rating"`
	Comment     *string   `json:"comment"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewReviewResponse maps a review listing to its public representation.
func NewReviewResponse(listing *domain.ReviewListing) ReviewResponse {
	return ReviewResponse{
		ID:          listing.ID,
		TutorID:     listing.TutorID,
		StudentName: listing.StudentName,
		Rating:      listing.Rating,
		Comment:     listing.Comment,
		CreatedAt:   listing.CreatedAt,
	}
}
