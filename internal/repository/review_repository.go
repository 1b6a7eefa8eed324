package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
)

// ReviewRepository encapsulates review persistence and the derived tutor
// rating. Create runs the insert and the aggregate recompute in a single
// transaction; the unique constraint on (tutor_id, student_id) is the
// authoritative duplicate guard.
type ReviewRepository interface {
	Create(ctx context.Context, review *domain.Review) error
	ExistsForStudent(ctx context.Context, tutorID, studentID string) (bool, error)
	ListByTutor(ctx context.Context, tutorID string) ([]domain.ReviewListing, error)
}

type reviewRepository struct {
	pool *pgxpool.Pool
}

// NewReviewRepository instantiates repository.
func NewReviewRepository(pool *pgxpool.Pool) ReviewRepository {
	return &reviewRepository{pool: pool}
}

func (r *reviewRepository) Create(ctx context.Context, review *domain.Review) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		const insertQuery = `
            INSERT INTO tutor_reviews (tutor_id, student_id, rating, comment)
            VALUES ($1, $2, $3, $4)
            RETURNING id, created_at`
		if err := tx.QueryRow(ctx, insertQuery,
			review.TutorID,
			review.StudentID,
			review.Rating,
			review.Comment,
		).Scan(&review.ID, &review.CreatedAt); err != nil {
			return err
		}

		// Full recompute from source rows rather than an incremental bump:
		// the aggregate always equals the mean of currently stored reviews.
		const recomputeQuery = `
            UPDATE tutors SET
                rating = (SELECT AVG(rating)::real FROM tutor_reviews WHERE tutor_id=$1),
                total_reviews = (SELECT COUNT(*) FROM tutor_reviews WHERE tutor_id=$1),
                updated_at = NOW()
            WHERE id=$1`
		_, err := tx.Exec(ctx, recomputeQuery, review.TutorID)
		return err
	})
}

// ExistsForStudent is a cheap fast-path check; the unique constraint still
// guards the race between check and insert.
func (r *reviewRepository) ExistsForStudent(ctx context.Context, tutorID, studentID string) (bool, error) {
	const query = `SELECT EXISTS (
        SELECT 1 FROM tutor_reviews WHERE tutor_id=$1 AND student_id=$2)`
	var exists bool
	if err := r.pool.QueryRow(ctx, query, tutorID, studentID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *reviewRepository) ListByTutor(ctx context.Context, tutorID string) ([]domain.ReviewListing, error) {
	const query = `
        SELECT r.id, r.tutor_id, r.student_id, r.rating, r.comment, r.created_at,
               u.first_name || ' ' || u.last_name
        FROM tutor_reviews r JOIN users u ON r.student_id = u.id
        WHERE r.tutor_id=$1
        ORDER BY r.created_at DESC`
	rows, err := r.pool.Query(ctx, query, tutorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.ReviewListing
	for rows.Next() {
		var listing domain.ReviewListing
		if err := rows.Scan(
			&listing.ID,
			&listing.TutorID,
			&listing.StudentID,
			&listing.Rating,
			&listing.Comment,
			&listing.CreatedAt,
			&listing.StudentName,
		); err != nil {
			return nil, err
		}
		result = append(result, listing)
	}
	return result, rows.Err()
}
