package cli

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/kcal/internal/db"
	"github.com/terraincognita07/kcal/internal/models"
)

func newResetTestRepository(t *testing.T) *db.UserRepository {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "kcal-cli.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db.NewUserRepository(database)
}

func TestRunResetTargetsCommand(t *testing.T) {
	repo := newResetTestRepository(t)
	ctx := context.Background()

	user := models.User{
		ID:          "user-1",
		FullName:    "Jane",
		ExternalID:  "abc123",
		CurrentDate: time.Date(2026, time.March, 11, 9, 0, 0, 0, time.UTC),
		Targets:     models.DefaultTargets(1200),
		Track:       models.EmptyTrack(),
	}
	user.Targets[2].Calories = 3100
	if err := repo.Create(ctx, &user); err != nil {
		t.Fatalf("create user: %v", err)
	}

	var out bytes.Buffer
	if err := RunResetTargetsCommand(ctx, repo, " abc123 ", 2500, &out); err != nil {
		t.Fatalf("reset targets: %v", err)
	}
	if !strings.Contains(out.String(), "abc123 now has 2500 kcal") {
		t.Fatalf("unexpected output %q", out.String())
	}

	stored, found, err := repo.FindByExternalID(ctx, "abc123")
	if err != nil || !found {
		t.Fatalf("reload user: found=%t err=%v", found, err)
	}
	if stored.Targets != models.DefaultTargets(2500) {
		t.Fatalf("expected default targets, got %+v", stored.Targets)
	}
}

func TestRunResetTargetsCommandErrors(t *testing.T) {
	repo := newResetTestRepository(t)
	ctx := context.Background()
	var out bytes.Buffer

	if err := RunResetTargetsCommand(ctx, repo, "", 2500, &out); err == nil {
		t.Fatal("expected error for empty external id")
	}
	if err := RunResetTargetsCommand(ctx, repo, "abc123", -1, &out); err == nil {
		t.Fatal("expected error for negative calories")
	}
	if err := RunResetTargetsCommand(ctx, repo, "missing", 2500, &out); err == nil || !strings.Contains(err.Error(), "not found") {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestParseResetTargetsArgs(t *testing.T) {
	t.Parallel()

	externalID, calories, err := ParseResetTargetsArgs([]string{"abc123"}, 2500)
	if err != nil || externalID != "abc123" || calories != 2500 {
		t.Fatalf("unexpected default parse: %q %d %v", externalID, calories, err)
	}

	externalID, calories, err = ParseResetTargetsArgs([]string{"abc123", "1800"}, 2500)
	if err != nil || externalID != "abc123" || calories != 1800 {
		t.Fatalf("unexpected explicit parse: %q %d %v", externalID, calories, err)
	}

	for _, args := range [][]string{nil, {"a", "b", "c"}, {"abc123", "lots"}} {
		if _, _, err := ParseResetTargetsArgs(args, 2500); err == nil {
			t.Fatalf("expected error for args %v", args)
		}
	}
}
