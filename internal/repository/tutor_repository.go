package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/tutor-marketplace/internal/domain"
)

// TutorRepository encapsulates tutor profile persistence. The rating and
// total_reviews columns are written exclusively by the review repository's
// recompute path.
type TutorRepository interface {
	Create(ctx context.Context, profile *domain.TutorProfile) error
	GetByID(ctx context.Context, id string) (*domain.TutorListing, error)
	GetByUserID(ctx context.Context, userID string) (*domain.TutorListing, error)
	List(ctx context.Context) ([]domain.TutorListing, error)
	SearchBySpecialization(ctx context.Context, specialization string) ([]domain.TutorListing, error)
	UpdatePartial(ctx context.Context, userID string, patch domain.TutorProfilePatch) (*domain.TutorListing, error)
}

type tutorRepository struct {
	pool *pgxpool.Pool
}

// NewTutorRepository instantiates repository.
func NewTutorRepository(pool *pgxpool.Pool) TutorRepository {
	return &tutorRepository{pool: pool}
}

func (r *tutorRepository) Create(ctx context.Context, profile *domain.TutorProfile) error {
	const query = `
        INSERT INTO tutors (user_id, bio, specializations, hourly_rate, years_experience)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, rating, total_reviews, is_verified, is_available, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		profile.UserID,
		profile.Bio,
		profile.Specializations,
		profile.HourlyRate,
		profile.YearsExperience,
	).Scan(
		&profile.ID,
		&profile.Rating,
		&profile.TotalReviews,
		&profile.IsVerified,
		&profile.IsAvailable,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
}

const tutorListingColumns = `
        t.id, t.user_id, t.bio, t.specializations, t.hourly_rate, t.years_experience,
        t.rating, t.total_reviews, t.is_verified, t.is_available, t.created_at, t.updated_at,
        u.first_name, u.last_name, u.email`

func (r *tutorRepository) GetByID(ctx context.Context, id string) (*domain.TutorListing, error) {
	query := `SELECT` + tutorListingColumns + `
        FROM tutors t JOIN users u ON t.user_id = u.id
        WHERE t.id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *tutorRepository) GetByUserID(ctx context.Context, userID string) (*domain.TutorListing, error) {
	query := `SELECT` + tutorListingColumns + `
        FROM tutors t JOIN users u ON t.user_id = u.id
        WHERE t.user_id=$1`
	return r.fetchSingle(ctx, query, userID)
}

func (r *tutorRepository) List(ctx context.Context) ([]domain.TutorListing, error) {
	query := `SELECT` + tutorListingColumns + `
        FROM tutors t JOIN users u ON t.user_id = u.id
        WHERE t.is_available = true
        ORDER BY t.rating DESC NULLS LAST, t.created_at DESC`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTutorListings(rows)
}

func (r *tutorRepository) SearchBySpecialization(ctx context.Context, specialization string) ([]domain.TutorListing, error) {
	query := `SELECT` + tutorListingColumns + `
        FROM tutors t JOIN users u ON t.user_id = u.id
        WHERE t.is_available = true AND $1 = ANY(t.specializations)
        ORDER BY t.rating DESC NULLS LAST, t.created_at DESC`
	rows, err := r.pool.Query(ctx, query, specialization)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTutorListings(rows)
}

// UpdatePartial applies only present fields and re-reads the persisted row,
// so the result includes the refreshed updated_at.
func (r *tutorRepository) UpdatePartial(ctx context.Context, userID string, patch domain.TutorProfilePatch) (*domain.TutorListing, error) {
	builder := NewUpdateBuilder("tutors")
	if patch.Bio != nil {
		builder.Set("bio", *patch.Bio)
	}
	if patch.Specializations != nil {
		builder.Set("specializations", *patch.Specializations)
	}
	if patch.HourlyRate != nil {
		builder.Set("hourly_rate", *patch.HourlyRate)
	}
	if patch.YearsExperience != nil {
		builder.Set("years_experience", *patch.YearsExperience)
	}
	if patch.IsAvailable != nil {
		builder.Set("is_available", *patch.IsAvailable)
	}
	builder.Where("user_id", userID)

	query, args := builder.Build()
	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	if cmd.RowsAffected() == 0 {
		return nil, pgx.ErrNoRows
	}
	return r.GetByUserID(ctx, userID)
}

func (r *tutorRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.TutorListing, error) {
	var listing domain.TutorListing
	if err := scanTutorListing(r.pool.QueryRow(ctx, query, arg), &listing); err != nil {
		return nil, err
	}
	return &listing, nil
}

func scanTutorListing(row pgx.Row, listing *domain.TutorListing) error {
	return row.Scan(
		&listing.ID,
		&listing.UserID,
		&listing.Bio,
		&listing.Specializations,
		&listing.HourlyRate,
		&listing.YearsExperience,
		&listing.Rating,
		&listing.TotalReviews,
		&listing.IsVerified,
		&listing.IsAvailable,
		&listing.CreatedAt,
		&listing.UpdatedAt,
		&listing.FirstName,
		&listing.LastName,
		&listing.Email,
	)
}

func scanTutorListings(rows pgx.Rows) ([]domain.TutorListing, error) {
	var result []domain.TutorListing
	for rows.Next() {
		var listing domain.TutorListing
		if err := scanTutorListing(rows, &listing); err != nil {
			return nil, err
		}
		result = append(result, listing)
	}
	return result, rows.Err()
}
