package api

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/kcal/internal/models"
	"github.com/terraincognita07/kcal/internal/services"
)

type weekdayTargetView struct {
	Key      string
	LabelKey string
	Calories int
	IsToday  bool
}

func (handler *Handler) ShowDiary(c *fiber.Ctx) error {
	user, handled, err := handler.currentUserOrRedirect(c)
	if handled || err != nil {
		return err
	}

	now := handler.now()
	view, err := handler.diaryService.LoadDiary(c.UserContext(), user.ID, now)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			handler.clearAuthCookie(c)
			return c.Redirect("/", fiber.StatusSeeOther)
		}
		return handler.internalError(c, "failed to load diary", err)
	}

	if acceptsJSON(c) {
		return c.JSON(fiber.Map{
			"user":    view.User,
			"target":  view.Target,
			"totals":  view.Totals,
			"message": view.Message,
		})
	}

	messages := handler.messagesFor(c)
	amount := view.Remaining
	if view.IsOver {
		amount = view.Over
	}
	flash := handler.popFlashCookie(c)
	return handler.render(c, "diary", fiber.Map{
		"Title":          localizedPageTitle(messages, "meta.title.diary", "kcal | Diary"),
		"Diary":          view,
		"CalorieMessage": localizedCalorieMessage(messages, view.MessageKey, amount, view.Message),
		"WeekdayKey":     weekdayTranslationKey(view.Today.Weekday()),
		"SuccessKey":     flash.Success,
		"ErrorKey":       flash.Error,
	})
}

func (handler *Handler) ShowUser(c *fiber.Ctx) error {
	user, handled, err := handler.currentUserOrRedirect(c)
	if handled || err != nil {
		return err
	}

	if acceptsJSON(c) {
		return c.JSON(user)
	}

	record, err := json.MarshalIndent(user, "", "  ")
	if err != nil {
		return handler.internalError(c, "failed to encode user", err)
	}

	messages := handler.messagesFor(c)
	flash := handler.popFlashCookie(c)
	return handler.render(c, "user", fiber.Map{
		"Title":      localizedPageTitle(messages, "meta.title.user", "kcal | Profile"),
		"User":       user,
		"Targets":    buildWeekdayTargetViews(user, handler.now().In(handler.location)),
		"Record":     string(record),
		"ErrorKey":   flash.Error,
		"SuccessKey": flash.Success,
	})
}

func (handler *Handler) ShowAddFood(c *fiber.Ctx) error {
	if _, handled, err := handler.currentUserOrRedirect(c); handled || err != nil {
		return err
	}

	messages := handler.messagesFor(c)
	flash := handler.popFlashCookie(c)
	return handler.render(c, "add", fiber.Map{
		"Title":     localizedPageTitle(messages, "meta.title.add", "kcal | Add food"),
		"ErrorKey":  flash.Error,
		"FoodQuery": flash.FoodQuery,
	})
}

func (handler *Handler) currentUserOrRedirect(c *fiber.Ctx) (*models.User, bool, error) {
	user, ok := currentUser(c)
	if !ok {
		if redirectErr := c.Redirect("/", fiber.StatusSeeOther); redirectErr != nil {
			return nil, false, redirectErr
		}
		return nil, true, nil
	}
	return user, false, nil
}

func buildWeekdayTargetViews(user *models.User, today time.Time) []weekdayTargetView {
	views := make([]weekdayTargetView, 0, models.DaysPerWeek)
	for index, target := range user.Targets {
		weekday := time.Weekday(index)
		views = append(views, weekdayTargetView{
			Key:      models.WeekdayKeys[index],
			LabelKey: weekdayTranslationKey(weekday),
			Calories: target.Calories,
			IsToday:  today.Weekday() == weekday,
		})
	}
	return views
}

func localizedCalorieMessage(messages map[string]string, key string, amount int, fallback string) string {
	message := translateMessagef(messages, key, amount)
	if message == key {
		return fallback
	}
	return message
}
