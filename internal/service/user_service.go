package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/anshk25/formbot/internal/domain"
	"github.com/anshk25/formbot/internal/repository"
)

var ErrNotSelf = errors.New("can only update your own account")

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type UpdateUserInput struct {
	OldUsername string `json:"oldUsername"`
	OldEmail    string `json:"oldEmail"`
	NewUsername string `json:"newUsername"`
	NewEmail    string `json:"newEmail"`
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// Update renames/re-emails/re-passwords the caller's account. A username
// change renames the personal workspace in the same transaction; grants and
// formbots follow by foreign key, so nothing else is rewritten.
func (s *UserService) Update(ctx context.Context, callerID uuid.UUID, input UpdateUserInput) (*domain.User, error) {
	user, err := s.locate(ctx, input.OldUsername, input.OldEmail)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if user.ID != callerID {
		return nil, ErrNotSelf
	}

	oldWorkspaceName := domain.PersonalWorkspaceName(user.Username)
	newWorkspaceName := oldWorkspaceName

	if input.NewUsername != "" && input.NewUsername != user.Username {
		existing, err := s.userRepo.GetByUsername(ctx, input.NewUsername)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrUsernameTaken
		}
		user.Username = input.NewUsername
		newWorkspaceName = domain.PersonalWorkspaceName(input.NewUsername)
	}

	if input.NewEmail != "" && input.NewEmail != user.Email {
		existing, err := s.userRepo.GetByEmail(ctx, input.NewEmail)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, ErrEmailTaken
		}
		user.Email = input.NewEmail
	}

	if input.OldPassword != "" && input.NewPassword != "" {
		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.OldPassword)) != nil {
			return nil, ErrInvalidCreds
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hashing password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	user.UpdatedAt = time.Now()
	if err := s.userRepo.Update(ctx, user, oldWorkspaceName, newWorkspaceName); err != nil {
		return nil, fmt.Errorf("updating user: %w", err)
	}

	return user, nil
}

// Lookup resolves a user by username and/or email for /alluserdetails.
func (s *UserService) Lookup(ctx context.Context, username, email string) (*domain.User, error) {
	user, err := s.userRepo.Find(ctx, username, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// GetByID returns the caller's own record (used to resolve the token subject).
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

func (s *UserService) locate(ctx context.Context, username, email string) (*domain.User, error) {
	if username != "" {
		user, err := s.userRepo.GetByUsername(ctx, username)
		if err != nil || user != nil {
			return user, err
		}
	}
	if email != "" {
		return s.userRepo.GetByEmail(ctx, email)
	}
	return nil, nil
}
