package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	pkghash "github.com/rewardlab/event-platform/pkg/hash"
	"github.com/rewardlab/event-platform/pkg/logging"
	"github.com/rewardlab/event-platform/pkg/permissions"
	"github.com/rewardlab/event-platform/pkg/tokens"
	"github.com/rewardlab/event-platform/services/auth/internal/models"
	"github.com/rewardlab/event-platform/services/auth/internal/repo"
)

var (
	ErrValidation         = errors.New("validation failed")
	ErrConflict           = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("not found")
)

type AuthService struct {
	Repo      *repo.GormRepo
	JWTSecret []byte
}

// RegisterUser creates a user credential record and signs the new
// principal in by issuing a token right away.
func (s *AuthService) RegisterUser(ctx context.Context, username, password string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register_user")

	if username == "" || password == "" {
		return "", ErrValidation
	}

	pwHash, err := pkghash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return "", err
	}

	user := models.User{
		Username:     username,
		PasswordHash: pwHash,
		IsActive:     true,
	}
	if err := s.Repo.CreateUserIfNotExists(ctx, &user); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			l.Warn("register_error", "status", 400, "reason", "username taken")
			return "", ErrConflict
		}
		l.Error("register_error", "status", 500, "error", err)
		return "", err
	}

	return tokens.Issue(s.JWTSecret, user.ID.String(), user.Username, "", tokens.UserTypeUser)
}

func (s *AuthService) LoginUser(ctx context.Context, username, password string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login_user", "username", username)

	if username == "" || password == "" {
		return "", ErrValidation
	}

	user, err := s.Repo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("login_failed", "status", 401, "reason", "unknown username")
			return "", ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "error", err)
		return "", err
	}
	if !pkghash.CheckPassword(user.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "bad password")
		return "", ErrInvalidCredentials
	}

	return tokens.Issue(s.JWTSecret, user.ID.String(), user.Username, "", tokens.UserTypeUser)
}

func (s *AuthService) RegisterStaff(ctx context.Context, username, password, role string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register_staff")

	role = strings.ToLower(role)
	if username == "" || password == "" || !permissions.IsStaffRole(role) {
		return "", ErrValidation
	}

	pwHash, err := pkghash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "status", 500, "reason", "cannot hash the password", "error", err)
		return "", err
	}

	staff := models.Staff{
		Username:     username,
		PasswordHash: pwHash,
		Role:         role,
		IsActive:     true,
	}
	if err := s.Repo.CreateStaffIfNotExists(ctx, &staff); err != nil {
		if errors.Is(err, repo.ErrAlreadyExists) {
			l.Warn("register_error", "status", 400, "reason", "username taken")
			return "", ErrConflict
		}
		l.Error("register_error", "status", 500, "error", err)
		return "", err
	}

	return tokens.Issue(s.JWTSecret, staff.ID.String(), staff.Username, staff.Role, tokens.UserTypeStaff)
}

func (s *AuthService) LoginStaff(ctx context.Context, username, password string) (string, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login_staff", "username", username)

	if username == "" || password == "" {
		return "", ErrValidation
	}

	staff, err := s.Repo.FindStaffByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			l.Warn("login_failed", "status", 401, "reason", "unknown username")
			return "", ErrInvalidCredentials
		}
		l.Error("login_failed", "status", 500, "error", err)
		return "", err
	}
	if !pkghash.CheckPassword(staff.PasswordHash, password) {
		l.Warn("login_failed", "status", 401, "reason", "bad password")
		return "", ErrInvalidCredentials
	}

	return tokens.Issue(s.JWTSecret, staff.ID.String(), staff.Username, staff.Role, tokens.UserTypeStaff)
}

// VerifyActive answers the gateway's liveness check. Unknown ids report
// inactive rather than erroring: the caller only needs a yes/no.
func (s *AuthService) VerifyActive(ctx context.Context, userType, id string) (bool, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return false, nil
	}

	if strings.EqualFold(userType, tokens.UserTypeStaff) {
		staff, err := s.Repo.FindStaffByID(ctx, uid)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return false, nil
			}
			return false, err
		}
		return staff.IsActive, nil
	}

	user, err := s.Repo.FindUserByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return user.IsActive, nil
}

func (s *AuthService) Deactivate(ctx context.Context, userType, id string) error {
	uid, err := uuid.Parse(id)
	if err != nil {
		return ErrValidation
	}

	if strings.EqualFold(userType, tokens.UserTypeStaff) {
		err = s.Repo.DeactivateStaff(ctx, uid)
	} else {
		err = s.Repo.DeactivateUser(ctx, uid)
	}
	if errors.Is(err, repo.ErrNotFound) {
		return ErrNotFound
	}
	return err
}
