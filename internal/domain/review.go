package domain

import "time"

// Review is a student's rating of a tutor. At most one review exists per
// (tutor, student) pair, enforced by a store-level unique constraint.
type Review struct {
	ID        string
	TutorID   string
	StudentID string
	Rating    int32
	Comment   *string
	CreatedAt time.Time
}

// ReviewListing joins a review with the reviewing student's display name.
type ReviewListing struct {
	Review
	StudentName string
}
