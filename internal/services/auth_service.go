package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/terraincognita07/kcal/internal/models"
)

var (
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrUserNotFound         = errors.New("user not found")
)

type UserRepository interface {
	FindByID(ctx context.Context, userID string) (models.User, bool, error)
	FindByExternalID(ctx context.Context, externalID string) (models.User, bool, error)
	Create(ctx context.Context, user *models.User) error
	Save(ctx context.Context, user *models.User) error
}

// Profile is the subset of the identity provider's profile kept on a user.
type Profile struct {
	ExternalID  string
	DisplayName string
}

type AuthService struct {
	users         UserRepository
	defaultTarget int
}

func NewAuthService(users UserRepository, defaultTarget int) *AuthService {
	if defaultTarget <= 0 {
		defaultTarget = models.DefaultCalorieTarget
	}
	return &AuthService{users: users, defaultTarget: defaultTarget}
}

// FindOrCreateByExternalID returns the stored record for the profile's
// identity, creating it with default targets and an empty track on first login.
func (service *AuthService) FindOrCreateByExternalID(ctx context.Context, profile Profile, now time.Time) (models.User, bool, error) {
	externalID := strings.TrimSpace(profile.ExternalID)
	if externalID == "" {
		return models.User{}, false, ErrAuthenticationFailed
	}

	existing, found, err := service.users.FindByExternalID(ctx, externalID)
	if err != nil {
		return models.User{}, false, fmt.Errorf("find user by external id: %w", err)
	}
	if found {
		return existing, false, nil
	}

	user := models.User{
		ID:          uuid.NewString(),
		FullName:    strings.TrimSpace(profile.DisplayName),
		ExternalID:  externalID,
		CurrentDate: now,
		Targets:     models.DefaultTargets(service.defaultTarget),
		Track:       models.EmptyTrack(),
	}
	if err := service.users.Create(ctx, &user); err != nil {
		return models.User{}, false, fmt.Errorf("create user: %w", err)
	}
	return user, true, nil
}

func (service *AuthService) FindByID(ctx context.Context, userID string) (models.User, error) {
	user, found, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}
