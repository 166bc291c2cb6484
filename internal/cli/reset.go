package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/terraincognita07/kcal/internal/models"
	"github.com/terraincognita07/kcal/internal/services"
)

// RunResetTargetsCommand sets every weekday target of the user with the given
// external identity back to calories.
func RunResetTargetsCommand(ctx context.Context, users services.UserRepository, externalID string, calories int, out io.Writer) error {
	externalID = strings.TrimSpace(externalID)
	if externalID == "" {
		return errors.New("external id is required")
	}
	if calories < 0 || calories > models.MaxDailyCalorieTarget {
		return fmt.Errorf("calories must be between 0 and %d", models.MaxDailyCalorieTarget)
	}

	user, found, err := users.FindByExternalID(ctx, externalID)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if !found {
		return fmt.Errorf("user %s not found", externalID)
	}

	if _, err := services.NewTargetService(users).SetTargets(ctx, user.ID, models.DefaultTargets(calories)); err != nil {
		return fmt.Errorf("reset targets: %w", err)
	}

	fmt.Fprintln(out, "✅ Targets reset")
	fmt.Fprintf(out, "%s now has %d kcal for every weekday.\n", externalID, calories)
	return nil
}

// ParseResetTargetsArgs reads "<external-id> [calories]".
func ParseResetTargetsArgs(args []string, defaultCalories int) (string, int, error) {
	if len(args) == 0 || len(args) > 2 {
		return "", 0, errors.New("usage: kcal reset-targets <external-id> [calories]")
	}
	if len(args) == 1 {
		return args[0], defaultCalories, nil
	}
	calories, err := strconv.Atoi(strings.TrimSpace(args[1]))
	if err != nil {
		return "", 0, fmt.Errorf("invalid calories %q", args[1])
	}
	return args[0], calories, nil
}
