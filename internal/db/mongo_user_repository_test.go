package db

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/terraincognita07/kcal/internal/models"
	"go.mongodb.org/mongo-driver/bson"
)

func TestUserDocumentRoundTripsThroughBSON(t *testing.T) {
	currentDate := time.Date(2026, time.February, 14, 19, 45, 0, 0, time.UTC)
	user := models.User{
		ID:          "6c0d4a8e-0f5b-4a1e-9b7e-3f2d1c0b9a87",
		FullName:    "Jane",
		ExternalID:  "abc123",
		CurrentDate: currentDate,
		Targets:     models.DefaultTargets(2200),
		Track: models.Track{
			Totals:  models.Macros{Calories: 780, Protein: 41, Carbs: 90, Fat: 25, Fiber: 9},
			Entries: []models.FoodEntry{{Name: "lentil soup", Calories: 780, LoggedAt: currentDate}},
		},
		CreatedAt: currentDate.AddDate(0, -1, 0),
		UpdatedAt: currentDate,
	}

	raw, err := bson.Marshal(toUserDocument(user))
	if err != nil {
		t.Fatalf("marshal user document: %v", err)
	}

	var keys bson.M
	if err := bson.Unmarshal(raw, &keys); err != nil {
		t.Fatalf("unmarshal raw document: %v", err)
	}
	for _, key := range []string{"_id", "fullName", "externalId", "currentDate", "targets", "track"} {
		if _, ok := keys[key]; !ok {
			t.Fatalf("expected %q key in document, got %v", key, keys)
		}
	}
	if targets, ok := keys["targets"].(bson.A); !ok || len(targets) != models.DaysPerWeek {
		t.Fatalf("expected seven stored targets, got %#v", keys["targets"])
	}

	var decoded userDocument
	if err := bson.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("unmarshal user document: %v", err)
	}
	restored := fromUserDocument(decoded)

	if restored.ID != user.ID || restored.ExternalID != user.ExternalID || restored.FullName != user.FullName {
		t.Fatalf("identity mismatch: %+v", restored)
	}
	if !restored.CurrentDate.Equal(currentDate) {
		t.Fatalf("current date = %s, want %s", restored.CurrentDate, currentDate)
	}
	if restored.Targets != user.Targets {
		t.Fatalf("targets = %+v, want %+v", restored.Targets, user.Targets)
	}
	if restored.Track.Totals != user.Track.Totals {
		t.Fatalf("totals = %+v, want %+v", restored.Track.Totals, user.Track.Totals)
	}
	if len(restored.Track.Entries) != 1 || restored.Track.Entries[0].Name != "lentil soup" {
		t.Fatalf("unexpected entries %+v", restored.Track.Entries)
	}
}

func TestUserDocumentNormalizesNilEntries(t *testing.T) {
	document := toUserDocument(models.User{ID: "user-1"})
	if document.Track.Entries == nil {
		t.Fatal("expected stored entries to be an empty array")
	}

	restored := fromUserDocument(userDocument{ID: "user-1"})
	if !reflect.DeepEqual(restored.Track.Entries, []models.FoodEntry{}) {
		t.Fatalf("expected empty entries, got %#v", restored.Track.Entries)
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(context.Background(), StoreConfig{Driver: "cassandra"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}

func TestOpenMongoRequiresConnectionSettings(t *testing.T) {
	if _, _, err := OpenMongo(context.Background(), "", "kcal"); err == nil {
		t.Fatal("expected error for empty mongo uri")
	}
	if _, _, err := OpenMongo(context.Background(), "mongodb://localhost:27017", " "); err == nil {
		t.Fatal("expected error for empty database name")
	}
}

func TestOpenPostgresRequiresDSN(t *testing.T) {
	if _, err := OpenPostgres("  "); err == nil {
		t.Fatal("expected error for empty dsn")
	}
}
