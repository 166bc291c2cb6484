package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/terraincognita07/kcal/internal/models"
)

var (
	ErrInvalidTargets    = errors.New("invalid targets")
	ErrTargetsSaveFailed = errors.New("save targets failed")
)

type TargetService struct {
	users UserRepository
}

func NewTargetService(users UserRepository) *TargetService {
	return &TargetService{users: users}
}

// ParseTargets turns seven raw values, Sunday first, into weekday targets.
// Every value must be a whole number between zero and the daily maximum.
func ParseTargets(values [models.DaysPerWeek]string) ([models.DaysPerWeek]models.Target, error) {
	var targets [models.DaysPerWeek]models.Target
	for index, raw := range values {
		calories, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return targets, fmt.Errorf("%w: %s is not a whole number", ErrInvalidTargets, models.WeekdayKeys[index])
		}
		if calories < 0 || calories > models.MaxDailyCalorieTarget {
			return targets, fmt.Errorf("%w: %s must be between 0 and %d", ErrInvalidTargets, models.WeekdayKeys[index], models.MaxDailyCalorieTarget)
		}
		targets[index] = models.Target{Day: models.WeekdayKeys[index], Calories: calories}
	}
	return targets, nil
}

func (service *TargetService) ReplaceTargets(ctx context.Context, userID string, values [models.DaysPerWeek]string) (models.User, error) {
	targets, err := ParseTargets(values)
	if err != nil {
		return models.User{}, err
	}
	return service.SetTargets(ctx, userID, targets)
}

func (service *TargetService) SetTargets(ctx context.Context, userID string, targets [models.DaysPerWeek]models.Target) (models.User, error) {
	user, found, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrTargetsSaveFailed, err)
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}

	user.Targets = targets
	if err := service.users.Save(ctx, &user); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrTargetsSaveFailed, err)
	}
	return user, nil
}
