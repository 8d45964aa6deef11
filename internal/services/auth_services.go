package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"

	"CareBowAPI/internal/model"
	"CareBowAPI/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLen = 8
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
)

// UserStore is the account slice of the record store.
type UserStore interface {
	CreateUser(ctx context.Context, email, passwordhash, fullname, role string) (int64, error)
	GetByEmail(ctx context.Context, email string) (*model.Auth, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	BanUser(ctx context.Context, authID int64) error
	UnBanUser(ctx context.Context, authID int64) error
	ListAccounts(ctx context.Context) ([]repository.Account, error)
	GetAccountByID(ctx context.Context, authID int64) (*repository.Account, error)
	UpdateFullName(ctx context.Context, authID int64, fullname string) error
}

// ProfileCreator creates the role-specific profile row at registration.
type ProfileCreator interface {
	Create(ctx context.Context, authID int64, email, fullname string) (int64, error)
}

type AuthService struct {
	Users      UserStore
	Families   ProfileCreator
	Caregivers ProfileCreator
	Validator  EmailValidator
}

func NewAuthService(u UserStore, fam, cg ProfileCreator, v EmailValidator) *AuthService {
	return &AuthService{Users: u, Families: fam, Caregivers: cg, Validator: v}
}

func (s *AuthService) validateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}
	if !emailRegex.MatchString(email) {
		return errors.New("invalid email format")
	}
	return nil
}

func (s *AuthService) validatePassword(pw string) error {
	if len(pw) < MinPasswordLen {
		return fmt.Errorf("password too short: must be at least %d characters", MinPasswordLen)
	}
	return nil
}

// Register creates a family or caregiver account together with its
// profile row. Caregiver profiles start in pending verification state.
func (s *AuthService) Register(ctx context.Context, email, password, fullname, role string) (int64, error) {
	if role != model.RoleFamily && role != model.RoleCaregiver {
		return 0, errors.New("role must be family or caregiver")
	}
	if err := s.validateEmail(email); err != nil {
		return 0, err
	}
	if err := s.validatePassword(password); err != nil {
		return 0, err
	}
	if fullname == "" {
		return 0, errors.New("full name is required")
	}
	if s.Validator != nil {
		if err := s.Validator.Validate(ctx, email); err != nil {
			return 0, err
		}
	}
	exists, err := s.Users.EmailExists(ctx, email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	authID, err := s.Users.CreateUser(ctx, email, string(hash), fullname, role)
	if err != nil {
		return 0, err
	}
	creator := s.Families
	if role == model.RoleCaregiver {
		creator = s.Caregivers
	}
	if _, err := creator.Create(ctx, authID, email, fullname); err != nil {
		// The account row exists without a profile; surface the error so
		// the caller can retry or clean up.
		return authID, err
	}
	return authID, nil
}

// RegisterAdmin creates an admin account; only reachable through the
// admin-gated endpoint.
func (s *AuthService) RegisterAdmin(ctx context.Context, email, password, fullname string) (int64, error) {
	if err := s.validateEmail(email); err != nil {
		return 0, err
	}
	if err := s.validatePassword(password); err != nil {
		return 0, err
	}
	exists, err := s.Users.EmailExists(ctx, email)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrEmailTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	return s.Users.CreateUser(ctx, email, string(hash), fullname, model.RoleAdmin)
}

// Login authenticates by email + password and returns the user without the
// password hash. Missing user, bad password, and a failing store are
// indistinguishable to the caller; store failures go to the server log.
func (s *AuthService) Login(ctx context.Context, email, password string) (*model.Auth, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.Printf("login: user lookup failed for %s: %v", email, err)
		}
		return nil, ErrInvalidCredentials
	}
	if u.DeletedAt != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	u.PasswordHash = ""
	return u, nil
}

func (s *AuthService) UpdateDisplayName(ctx context.Context, authID int64, fullname string) error {
	if fullname == "" {
		return errors.New("full name is required")
	}
	return s.Users.UpdateFullName(ctx, authID, fullname)
}

func (s *AuthService) ListAccounts(ctx context.Context) ([]repository.Account, error) {
	return s.Users.ListAccounts(ctx)
}

func (s *AuthService) GetAccount(ctx context.Context, authID int64) (*repository.Account, error) {
	return s.Users.GetAccountByID(ctx, authID)
}

func (s *AuthService) BanUser(ctx context.Context, authID int64) error {
	return s.Users.BanUser(ctx, authID)
}

func (s *AuthService) UnBanUser(ctx context.Context, authID int64) error {
	return s.Users.UnBanUser(ctx, authID)
}
