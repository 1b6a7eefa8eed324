package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
)

// CourseRepository encapsulates course persistence. Mutations are scoped to
// the owning tutor's account in SQL, so a non-owned target behaves exactly
// like a missing one.
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) error
	GetByID(ctx context.Context, id string) (*domain.Course, error)
	ListActive(ctx context.Context) ([]domain.Course, error)
	ListByOwner(ctx context.Context, userID string) ([]domain.Course, error)
	UpdatePartial(ctx context.Context, courseID, ownerUserID string, patch domain.CoursePatch) (*domain.Course, error)
	Delete(ctx context.Context, courseID, ownerUserID string) error
}

type courseRepository struct {
	pool *pgxpool.Pool
}

// NewCourseRepository instantiates repository.
func NewCourseRepository(pool *pgxpool.Pool) CourseRepository {
	return &courseRepository{pool: pool}
}

func (r *courseRepository) Create(ctx context.Context, course *domain.Course) error {
	const query = `
        INSERT INTO courses (tutor_id, title, description, price, duration_minutes, category, difficulty_level)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id, is_active, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		course.TutorID,
		course.Title,
		course.Description,
		course.Price,
		course.DurationMinutes,
		course.Category,
		course.Difficulty,
	).Scan(&course.ID, &course.IsActive, &course.CreatedAt, &course.UpdatedAt)
}

const courseColumns = `
        id, tutor_id, title, description, price, duration_minutes, category,
        difficulty_level, is_active, created_at, updated_at`

func (r *courseRepository) GetByID(ctx context.Context, id string) (*domain.Course, error) {
	query := `SELECT` + courseColumns + ` FROM courses WHERE id=$1`
	var course domain.Course
	if err := scanCourse(r.pool.QueryRow(ctx, query, id), &course); err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *courseRepository) ListActive(ctx context.Context) ([]domain.Course, error) {
	query := `SELECT` + courseColumns + `
        FROM courses WHERE is_active = true ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCourses(rows)
}

func (r *courseRepository) ListByOwner(ctx context.Context, userID string) ([]domain.Course, error) {
	query := `SELECT` + courseColumns + `
        FROM courses
        WHERE tutor_id = (SELECT id FROM tutors WHERE user_id=$1)
        ORDER BY created_at DESC`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanCourses(rows)
}

// UpdatePartial applies only present fields, scoped to the owner, and
// re-reads the persisted row. Zero affected rows means the course does not
// exist or is not owned by the caller; both surface as pgx.ErrNoRows.
func (r *courseRepository) UpdatePartial(ctx context.Context, courseID, ownerUserID string, patch domain.CoursePatch) (*domain.Course, error) {
	builder := NewUpdateBuilder("courses")
	if patch.Title != nil {
		builder.Set("title", *patch.Title)
	}
	if patch.Description != nil {
		builder.Set("description", *patch.Description)
	}
	if patch.Price != nil {
		builder.Set("price", *patch.Price)
	}
	if patch.DurationMinutes != nil {
		builder.Set("duration_minutes", *patch.DurationMinutes)
	}
	if patch.Category != nil {
		builder.Set("category", *patch.Category)
	}
	if patch.Difficulty != nil {
		builder.Set("difficulty_level", *patch.Difficulty)
	}
	if patch.IsActive != nil {
		builder.Set("is_active", *patch.IsActive)
	}
	builder.Where("id", courseID)
	builder.WhereExpr("tutor_id = (SELECT id FROM tutors WHERE user_id=$%d)", ownerUserID)

	query, args := builder.Build()
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}
	return r.GetByID(ctx, courseID)
}

func (r *courseRepository) Delete(ctx context.Context, courseID, ownerUserID string) error {
	const query = `
        DELETE FROM courses
        WHERE id=$1 AND tutor_id = (SELECT id FROM tutors WHERE user_id=$2)`
	cmd, err := r.pool.Exec(ctx, query, courseID, ownerUserID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanCourse(row pgx.Row, course *domain.Course) error {
	return row.Scan(
		&course.ID,
		&course.TutorID,
		&course.Title,
		&course.Description,
		&course.Price,
		&course.DurationMinutes,
		&course.Category,
		&course.Difficulty,
		&course.IsActive,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
}

func scanCourses(rows pgx.Rows) ([]domain.Course, error) {
	var result []domain.Course
	for rows.Next() {
		var course domain.Course
		if err := scanCourse(rows, &course); err != nil {
			return nil, err
		}
		result = append(result, course)
	}
	return result, rows.Err()
}
