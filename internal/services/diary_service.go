package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/terraincognita07/kcal/internal/models"
	"github.com/terraincognita07/kcal/internal/nutrition"
)

var (
	ErrNutritionUnavailable = errors.New("nutrition service unavailable")
	ErrFoodNotRecognized    = errors.New("food not recognized")
	ErrInvalidFoodQuery     = errors.New("invalid food query")
	ErrDiaryLoadFailed      = errors.New("load diary failed")
	ErrDiarySaveFailed      = errors.New("save diary failed")
)

const maxFoodQueryLength = 200

type DiaryService struct {
	users    UserRepository
	foods    nutrition.Lookup
	location *time.Location
}

func NewDiaryService(users UserRepository, foods nutrition.Lookup, location *time.Location) *DiaryService {
	if location == nil {
		location = time.UTC
	}
	return &DiaryService{users: users, foods: foods, location: location}
}

// LoadDiary applies the day rollover, persisting the record only when it
// changed, and composes the diary view.
func (service *DiaryService) LoadDiary(ctx context.Context, userID string, now time.Time) (DiaryView, error) {
	user, err := service.loadUser(ctx, userID)
	if err != nil {
		return DiaryView{}, err
	}

	if ApplyRollover(&user, now, service.location) {
		if err := service.users.Save(ctx, &user); err != nil {
			return DiaryView{}, fmt.Errorf("%w: %v", ErrDiarySaveFailed, err)
		}
	}
	return ComposeDiary(user, now, service.location), nil
}

// LogFood looks the query up, then appends one entry and adds the rounded
// macros to the running totals.
func (service *DiaryService) LogFood(ctx context.Context, userID string, rawQuery string, now time.Time) (models.FoodEntry, error) {
	query, err := NormalizeFoodQuery(rawQuery)
	if err != nil {
		return models.FoodEntry{}, err
	}

	user, err := service.loadUser(ctx, userID)
	if err != nil {
		return models.FoodEntry{}, err
	}

	facts, err := service.foods.Lookup(ctx, query)
	if err != nil {
		if errors.Is(err, nutrition.ErrNoMatch) {
			return models.FoodEntry{}, ErrFoodNotRecognized
		}
		return models.FoodEntry{}, fmt.Errorf("%w: %v", ErrNutritionUnavailable, err)
	}
	if facts.Items == 0 {
		return models.FoodEntry{}, ErrFoodNotRecognized
	}

	ApplyRollover(&user, now, service.location)
	entry := AccumulateFood(&user, query, facts, now)
	if err := service.users.Save(ctx, &user); err != nil {
		return models.FoodEntry{}, fmt.Errorf("%w: %v", ErrDiarySaveFailed, err)
	}
	return entry, nil
}

// NormalizeFoodQuery collapses whitespace and checks the query is non-empty and
// at most maxFoodQueryLength characters long.
func NormalizeFoodQuery(raw string) (string, error) {
	query := strings.Join(strings.Fields(raw), " ")
	if query == "" || utf8.RuneCountInString(query) > maxFoodQueryLength {
		return "", ErrInvalidFoodQuery
	}
	return query, nil
}

func AccumulateFood(user *models.User, name string, facts nutrition.Facts, now time.Time) models.FoodEntry {
	macros := RoundFacts(facts)
	entry := models.FoodEntry{
		Name:     name,
		Calories: macros.Calories,
		LoggedAt: now,
	}
	user.Track.Totals = user.Track.Totals.Add(macros)
	user.Track.Entries = append(user.Track.Entries, entry)
	return entry
}

func RoundFacts(facts nutrition.Facts) models.Macros {
	return models.Macros{
		Calories: roundToInt(facts.Calories),
		Protein:  roundToInt(facts.Protein),
		Carbs:    roundToInt(facts.Carbs),
		Fat:      roundToInt(facts.Fat),
		Fiber:    roundToInt(facts.Fiber),
	}
}

func roundToInt(value float64) int {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0
	}
	return int(math.Round(value))
}

func (service *DiaryService) loadUser(ctx context.Context, userID string) (models.User, error) {
	user, found, err := service.users.FindByID(ctx, userID)
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrDiaryLoadFailed, err)
	}
	if !found {
		return models.User{}, ErrUserNotFound
	}
	return user, nil
}
