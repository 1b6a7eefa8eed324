package domain

import "time"

// DifficultyLevel enumerates course difficulty.
type DifficultyLevel string

const (
	DifficultyBeginner     DifficultyLevel = "beginner"
	DifficultyIntermediate DifficultyLevel = "intermediate"
	DifficultyAdvanced     DifficultyLevel = "advanced"
)

// Valid reports whether the level is one of the known values.
func (d DifficultyLevel) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Course is offered by a tutor profile. Price is in minor currency units.
type Course struct {
	ID              string
	TutorID         string
	Title           string
	Description     string
	Price           int32
	DurationMinutes int32
	Category        string
	Difficulty      DifficultyLevel
	IsActive        bool
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// CoursePatch is a sparse update: nil fields are left unchanged.
type CoursePatch struct {
	Title           *string
	Description     *string
	Price           *int32
	DurationMinutes *int32
	Category        *string
	Difficulty      *DifficultyLevel
	IsActive        *bool
}

// Empty reports whether no field is present.
func (p CoursePatch) Empty() bool {
	return p.Title == nil && p.Description == nil && p.Price == nil &&
		p.DurationMinutes == nil && p.Category == nil && p.Difficulty == nil &&
		p.IsActive == nil
}
