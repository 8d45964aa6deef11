package repository

import (
	"context"
	"errors"
	"time"

	"CareBowAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CaregiverRepository struct {
	DB *pgxpool.Pool
}

func NewCaregiverRepository(db *pgxpool.Pool) *CaregiverRepository {
	return &CaregiverRepository{DB: db}
}

const caregiverCols = `caregiverid, authid, fullname, email, bio, specialty, phone, verification_status, created_at, deleted_at`

func scanCaregiver(row pgx.Row) (*model.Caregiver, error) {
	var cg model.Caregiver
	if err := row.Scan(&cg.CaregiverID, &cg.AuthID, &cg.FullName, &cg.Email, &cg.Bio, &cg.Specialty, &cg.Phone, &cg.VerificationStatus, &cg.CreatedAt, &cg.DeletedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &cg, nil
}

// Create creates a caregiver profile row in pending verification state
// (used only during registration).
func (r *CaregiverRepository) Create(ctx context.Context, authID int64, email, fullname string) (int64, error) {
	var id int64
	query := `
		INSERT INTO caregivers (authid, email, fullname, verification_status, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING caregiverid
	`
	if err := r.DB.QueryRow(ctx, query, authID, email, fullname, model.VerificationPending, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *CaregiverRepository) GetByAuthID(ctx context.Context, authID int64) (*model.Caregiver, error) {
	query := `SELECT ` + caregiverCols + ` FROM caregivers WHERE authid=$1 AND deleted_at IS NULL`
	return scanCaregiver(r.DB.QueryRow(ctx, query, authID))
}

func (r *CaregiverRepository) GetByID(ctx context.Context, caregiverID int64) (*model.Caregiver, error) {
	query := `SELECT ` + caregiverCols + ` FROM caregivers WHERE caregiverid=$1 AND deleted_at IS NULL`
	return scanCaregiver(r.DB.QueryRow(ctx, query, caregiverID))
}

// Update lets a caregiver edit their own profile fields.
func (r *CaregiverRepository) Update(ctx context.Context, caregiverID int64, fullname, bio, specialty, phone *string) error {
	query := `UPDATE caregivers SET
			fullname=COALESCE($1, fullname),
			bio=COALESCE($2, bio),
			specialty=COALESCE($3, specialty),
			phone=COALESCE($4, phone)
		WHERE caregiverid=$5 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, fullname, bio, specialty, phone, caregiverID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListVerified backs the public caregiver search: only verified profiles
// are visible to anonymous callers.
func (r *CaregiverRepository) ListVerified(ctx context.Context) ([]model.Caregiver, error) {
	query := `SELECT ` + caregiverCols + ` FROM caregivers WHERE verification_status=$1 AND deleted_at IS NULL ORDER BY caregiverid`
	return r.list(ctx, query, model.VerificationVerified)
}

// ListAll returns every caregiver regardless of status (admin review queue).
func (r *CaregiverRepository) ListAll(ctx context.Context) ([]model.Caregiver, error) {
	query := `SELECT ` + caregiverCols + ` FROM caregivers WHERE deleted_at IS NULL ORDER BY caregiverid`
	return r.list(ctx, query)
}

func (r *CaregiverRepository) list(ctx context.Context, query string, args ...any) ([]model.Caregiver, error) {
	rows, err := r.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Caregiver
	for rows.Next() {
		var cg model.Caregiver
		if err := rows.Scan(&cg.CaregiverID, &cg.AuthID, &cg.FullName, &cg.Email, &cg.Bio, &cg.Specialty, &cg.Phone, &cg.VerificationStatus, &cg.CreatedAt, &cg.DeletedAt); err != nil {
			return nil, err
		}
		out = append(out, cg)
	}
	return out, nil
}

// ErrAlreadyReviewed marks a verification decision that lost to an earlier
// one; pending is the only state a decision can be applied to.
var ErrAlreadyReviewed = errors.New("caregiver already reviewed")

// UpdateVerificationStatus applies an admin decision as a single guarded
// write. The pending-only predicate makes concurrent decisions on the same
// caregiver resolve to exactly one winner.
func (r *CaregiverRepository) UpdateVerificationStatus(ctx context.Context, caregiverID int64, status string) error {
	query := `UPDATE caregivers SET verification_status=$1 WHERE caregiverid=$2 AND verification_status=$3 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, status, caregiverID, model.VerificationPending)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		// Either no such caregiver or a decision already landed.
		if _, err := r.GetByID(ctx, caregiverID); errors.Is(err, ErrNotFound) {
			return ErrNotFound
		}
		return ErrAlreadyReviewed
	}
	return nil
}
