package domain

import "time"

// TutorProfile models the public teaching profile owned by a tutor account.
// Rating and TotalReviews are derived from reviews and only written by the
// review persistence path.
type TutorProfile struct {
	ID              string
	UserID          string
	Bio             string
	Specializations []string
	HourlyRate      int32
	YearsExperience int32
	Rating          *float32
	TotalReviews    int32
	IsVerified      bool
	IsAvailable     bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TutorListing joins a profile with the owning account's public fields.
type TutorListing struct {
	TutorProfile
	FirstName string
	LastName  string
	Email     string
}

// TutorProfilePatch is a sparse update: nil fields are left unchanged.
type TutorProfilePatch struct {
	Bio             *string
	Specializations *[]string
	HourlyRate      *int32
	YearsExperience *int32
	IsAvailable     *bool
}

// Empty reports whether no field is present.
func (p TutorProfilePatch) Empty() bool {
	return p.Bio == nil && p.Specializations == nil && p.HourlyRate == nil &&
		p.YearsExperience == nil && p.IsAvailable == nil
}
