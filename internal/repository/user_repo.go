package repository

import (
	"context"
	"errors"
	"time"

	"CareBowAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound marks a missing row as opposed to a storage failure.
var ErrNotFound = errors.New("not found")

type UserRepository struct {
	DB *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{DB: db}
}

// Account is the admin-management view of a user row joined with its
// profile id (family or caregiver, whichever the role implies).
type Account struct {
	AuthID    int64     `json:"authid"`
	Email     string    `json:"email"`
	FullName  string    `json:"fullname"`
	Role      string    `json:"role"`
	ProfileID int64     `json:"profileid"`
	CreatedAt time.Time `json:"created_at"`
	Banned    bool      `json:"banned"`
}

// CreateUser inserts a new user and returns the created authid.
// email_verified is forced true for now: email confirmation is skipped
// until the confirmation flow ships.
func (r *UserRepository) CreateUser(ctx context.Context, email, passwordhash, fullname, role string) (int64, error) {
	var id int64
	query := `INSERT INTO userauth (email, passwordhash, fullname, role, created_at, email_verified) VALUES ($1, $2, $3, $4, $5, true) RETURNING authid`
	if err := r.DB.QueryRow(ctx, query, email, passwordhash, fullname, role, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.Auth, error) {
	var u model.Auth
	query := `SELECT authid, email, passwordhash, fullname, role, email_verified, created_at, deleted_at
			FROM userauth
			WHERE email=$1`
	if err := r.DB.QueryRow(ctx, query, email).Scan(&u.AuthID, &u.Email, &u.PasswordHash, &u.FullName, &u.Role, &u.EmailVerified, &u.CreatedAt, &u.DeletedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetUserByID returns (nil, nil) when the user does not exist; a non-nil
// error always means the store itself failed. The session resolver relies
// on that split to fail closed while still logging real failures.
func (r *UserRepository) GetUserByID(ctx context.Context, id int64) (*model.Auth, error) {
	var u model.Auth
	query := `SELECT authid, email, fullname, role, email_verified, created_at, deleted_at FROM userauth WHERE authid=$1`
	if err := r.DB.QueryRow(ctx, query, id).Scan(&u.AuthID, &u.Email, &u.FullName, &u.Role, &u.EmailVerified, &u.CreatedAt, &u.DeletedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &u, nil
}

// HasProfile reports whether the role-specific profile row exists for the
// user. Unknown roles have no profile table and report false.
func (r *UserRepository) HasProfile(ctx context.Context, authID int64, role string) (bool, error) {
	var query string
	switch role {
	case model.RoleFamily:
		query = `SELECT EXISTS (SELECT 1 FROM families WHERE authid=$1 AND deleted_at IS NULL)`
	case model.RoleCaregiver:
		query = `SELECT EXISTS (SELECT 1 FROM caregivers WHERE authid=$1 AND deleted_at IS NULL)`
	default:
		return false, nil
	}
	var exists bool
	if err := r.DB.QueryRow(ctx, query, authID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM userauth WHERE email=$1)`
	if err := r.DB.QueryRow(ctx, query, email).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListAccounts returns all non-admin users with their profile ids.
func (r *UserRepository) ListAccounts(ctx context.Context) ([]Account, error) {
	q := `
        SELECT u.authid, u.email, u.fullname, u.role, u.created_at,
               COALESCE(f.familyid, COALESCE(cg.caregiverid, 0)) AS profileid,
               (u.deleted_at IS NOT NULL) AS banned
        FROM userauth u
        LEFT JOIN families f ON f.authid = u.authid
        LEFT JOIN caregivers cg ON cg.authid = u.authid
        WHERE u.role <> 'admin'
        ORDER BY u.authid;
    `
	rows, err := r.DB.Query(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	list := []Account{}
	for rows.Next() {
		var a Account
		if err := rows.Scan(&a.AuthID, &a.Email, &a.FullName, &a.Role, &a.CreatedAt, &a.ProfileID, &a.Banned); err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, nil
}

func (r *UserRepository) GetAccountByID(ctx context.Context, authID int64) (*Account, error) {
	q := `
        SELECT u.authid, u.email, u.fullname, u.role, u.created_at,
               COALESCE(f.familyid, COALESCE(cg.caregiverid, 0)) AS profileid,
               (u.deleted_at IS NOT NULL) AS banned
        FROM userauth u
        LEFT JOIN families f ON f.authid = u.authid
        LEFT JOIN caregivers cg ON cg.authid = u.authid
        WHERE u.role <> 'admin' AND u.authid = $1;
    `
	var a Account
	err := r.DB.QueryRow(ctx, q, authID).
		Scan(&a.AuthID, &a.Email, &a.FullName, &a.Role, &a.CreatedAt, &a.ProfileID, &a.Banned)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// BanUser soft-deletes a user (sets deleted_at); their sessions stop
// resolving immediately.
func (r *UserRepository) BanUser(ctx context.Context, authID int64) error {
	query := `UPDATE userauth SET deleted_at=$1 WHERE authid=$2 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, time.Now(), authID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("user not found or already banned")
	}
	return nil
}

func (r *UserRepository) UnBanUser(ctx context.Context, authID int64) error {
	query := `UPDATE userauth SET deleted_at=NULL WHERE authid=$1 AND deleted_at IS NOT NULL`
	tag, err := r.DB.Exec(ctx, query, authID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return errors.New("user not found or already unbanned")
	}
	return nil
}

func (r *UserRepository) UpdateFullName(ctx context.Context, authID int64, fullname string) error {
	tag, err := r.DB.Exec(ctx, `UPDATE userauth SET fullname=$1 WHERE authid=$2 AND deleted_at IS NULL`, fullname, authID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
