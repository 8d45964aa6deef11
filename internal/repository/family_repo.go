package repository

import (
	"context"
	"errors"
	"time"

	"CareBowAPI/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FamilyRepository struct {
	DB *pgxpool.Pool
}

func NewFamilyRepository(db *pgxpool.Pool) *FamilyRepository {
	return &FamilyRepository{DB: db}
}

// Create creates a family profile row (used only during registration).
func (r *FamilyRepository) Create(ctx context.Context, authID int64, email, fullname string) (int64, error) {
	var id int64
	query := `
		INSERT INTO families (authid, email, fullname, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING familyid
	`
	if err := r.DB.QueryRow(ctx, query, authID, email, fullname, time.Now()).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

// GetByAuthID returns the family profile owned by the given user.
func (r *FamilyRepository) GetByAuthID(ctx context.Context, authID int64) (*model.Family, error) {
	var f model.Family
	query := `SELECT familyid, authid, fullname, email, address, phone, emergency_contact, created_at, deleted_at FROM families WHERE authid=$1 AND deleted_at IS NULL`
	if err := r.DB.QueryRow(ctx, query, authID).Scan(&f.FamilyID, &f.AuthID, &f.FullName, &f.Email, &f.Address, &f.Phone, &f.EmergencyContact, &f.CreatedAt, &f.DeletedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

// Update lets a family edit their own profile fields.
func (r *FamilyRepository) Update(ctx context.Context, familyID int64, fullname, address, phone, emergencyContact *string) error {
	query := `UPDATE families SET
			fullname=COALESCE($1, fullname),
			address=COALESCE($2, address),
			phone=COALESCE($3, phone),
			emergency_contact=COALESCE($4, emergency_contact)
		WHERE familyid=$5 AND deleted_at IS NULL`
	tag, err := r.DB.Exec(ctx, query, fullname, address, phone, emergencyContact, familyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListAll returns all family profiles (admin use).
func (r *FamilyRepository) ListAll(ctx context.Context) ([]model.Family, error) {
	query := `SELECT familyid, authid, fullname, email, address, phone, emergency_contact, created_at, deleted_at FROM families ORDER BY familyid`
	rows, err := r.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Family
	for rows.Next() {
		var f model.Family
		if err := rows.Scan(&f.FamilyID, &f.AuthID, &f.FullName, &f.Email, &f.Address, &f.Phone, &f.EmergencyContact, &f.CreatedAt, &f.DeletedAt); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, nil
}
