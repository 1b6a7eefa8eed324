package events

import (
	"time"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventReviewCreated  EventType = "review_created"
	EventCourseCreated  EventType = "course_created"
	EventProfileUpdated EventType = "profile_updated"
)

// Event represents a domain event emitted by services.
type Event struct {
	Type      EventType   `json:"type"`
	ActorID   string      `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ReviewCreatedPayload payload.
type ReviewCreatedPayload struct {
	ReviewID string `json:"review_id"`
	TutorID  string `json:"tutor_id"`
	Rating   int32  `json:"rating"`
}

// CourseCreatedPayload payload.
type CourseCreatedPayload struct {
	CourseID string                 `json:"course_id"`
	TutorID  string                 `json:"tutor_id"`
	Title    string                 `json:"title"`
	Level    domain.DifficultyLevel `json:"level"`
}

// ProfileUpdatedPayload payload.
type ProfileUpdatedPayload struct {
	TutorID string `json:"tutor_id"`
}
