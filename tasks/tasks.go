package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"wardrobeapi/models"
	"wardrobeapi/outfits"
	"wardrobeapi/services"

	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
)

const (
	TypeDailyOutfitFanout = "outfits:daily_fanout"
	TypeDailyOutfit       = "outfits:daily"

	QueueOutfits = "outfits"

	// 07:00 every day, worker local time
	DailyOutfitCron = "0 7 * * *"

	// Completed daily tasks keep their id this long, so a late fanout retry
	// still conflicts instead of queueing the user again.
	dailyTaskRetention = 26 * time.Hour
)

type DailyOutfitPayload struct {
	UserID uint `json:"user_id"`
}

// Enqueuer is the part of *asynq.Client the fanout needs.
type Enqueuer interface {
	Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

func NewDailyOutfitFanoutTask() *asynq.Task {
	return asynq.NewTask(TypeDailyOutfitFanout, []byte{})
}

func NewDailyOutfitTask(userID uint) (*asynq.Task, error) {
	payload, err := json.Marshal(DailyOutfitPayload{UserID: userID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeDailyOutfit, payload), nil
}

type DailyOutfitHandler struct {
	Store     services.WardrobeStoreProvider
	Weather   services.WeatherServiceProvider
	Generator *outfits.Generator
	Metrics   *services.OutfitMetrics
	Enqueuer  Enqueuer
	Now       func() time.Time
}

func (h *DailyOutfitHandler) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

// HandleFanout enqueues one daily outfit task per opted-in user. Task ids carry
// the date and are retained after completion, so a retried fanout does not
// queue a user twice on the same day.
func (h *DailyOutfitHandler) HandleFanout(ctx context.Context, t *asynq.Task) error {
	users, err := h.Store.ListDailyOutfitUsers(ctx)
	if err != nil {
		sentry.CaptureException(fmt.Errorf("[Daily Outfit] Error fetching users: %v", err))
		return err
	}
	fmt.Printf("[Daily Outfit] Found %d users for daily outfits\n", len(users))

	day := h.now().Format(time.DateOnly)
	var failed int
	for _, user := range users {
		task, err := NewDailyOutfitTask(user.ID)
		if err != nil {
			return err
		}
		info, err := h.Enqueuer.Enqueue(task,
			asynq.Queue(QueueOutfits),
			asynq.MaxRetry(3),
			asynq.TaskID(dailyTaskID(user.ID, day)),
			asynq.Retention(dailyTaskRetention),
		)
		if errors.Is(err, asynq.ErrTaskIDConflict) {
			continue
		}
		if err != nil {
			failed++
			fmt.Printf("[Daily Outfit] Failed to enqueue for user %d: %v\n", user.ID, err)
			sentry.CaptureException(fmt.Errorf("[Daily Outfit] Failed to enqueue for user %d: %v", user.ID, err))
			continue
		}
		fmt.Println("[Queue] Daily outfit task submitted, User ID: ", user.ID, " Task ID: ", info.ID)
	}
	if failed > 0 {
		return fmt.Errorf("daily outfit fanout: %d of %d users not enqueued", failed, len(users))
	}
	return nil
}

func dailyTaskID(userID uint, day string) string {
	return fmt.Sprintf("daily:%d:%s", userID, day)
}

// generatedToday reports whether the user already has a daily outfit dated
// today in the handler's clock.
func (h *DailyOutfitHandler) generatedToday(ctx context.Context, userID uint) (bool, error) {
	latest, err := h.Store.LatestOutfitGeneration(ctx, userID, models.OutfitKindDaily)
	if errors.Is(err, services.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	now := h.now()
	return latest.CreatedAt.In(now.Location()).Format(time.DateOnly) == now.Format(time.DateOnly), nil
}

func (h *DailyOutfitHandler) HandleDailyOutfit(ctx context.Context, t *asynq.Task) error {
	var payload DailyOutfitPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("daily outfit payload: %v: %w", err, asynq.SkipRetry)
	}

	user, err := h.Store.GetUser(ctx, payload.UserID)
	if errors.Is(err, services.ErrNotFound) {
		fmt.Printf("[User %v] Gone before daily outfit, skipping\n", payload.UserID)
		return nil
	}
	if err != nil {
		sentry.CaptureException(err)
		return err
	}
	if user.Banned || !user.ReceiveDailyOutfit {
		return nil
	}
	done, err := h.generatedToday(ctx, user.ID)
	if err != nil {
		sentry.CaptureException(fmt.Errorf("[User %v] Error checking today's daily outfit: %v", user.ID, err))
		return err
	}
	if done {
		fmt.Printf("[User %v] Daily outfit already generated today, skipping\n", user.ID)
		return nil
	}

	clothes, err := h.Store.ListClothes(ctx, user.ID)
	if err != nil {
		sentry.CaptureException(fmt.Errorf("[User %v] Error fetching clothes for daily outfit: %v", user.ID, err))
		return err
	}
	if len(clothes) == 0 {
		fmt.Printf("[User %v] Empty wardrobe, no daily outfit\n", user.ID)
		h.Metrics.Observe(models.OutfitKindDaily)
		return nil
	}

	opts := outfits.GenerateOptions{
		Wardrobe: models.OutfitItems(clothes),
		Count:    1,
	}
	if user.PreferredStyle != nil {
		opts.PreferredStyle = *user.PreferredStyle
	}
	if user.HasLocation() && h.Weather != nil {
		weather, err := h.Weather.CurrentWeather(ctx, *user.Latitude, *user.Longitude)
		if err != nil {
			fmt.Printf("[User %v] Weather unavailable, generating without it: %v\n", user.ID, err)
			sentry.CaptureException(err)
		} else {
			opts.Weather = weather
		}
	}

	suggestions := h.Generator.GenerateSuggestions(opts)
	h.Metrics.Observe(models.OutfitKindDaily, suggestions...)
	if len(suggestions) == 0 {
		fmt.Printf("[User %v] No complete outfit in season, no daily outfit\n", user.ID)
		return nil
	}

	generation := models.NewOutfitGeneration(user.ID, models.OutfitKindDaily, suggestions[0])
	if err := h.Store.SaveOutfitGeneration(ctx, &generation); err != nil {
		sentry.CaptureException(fmt.Errorf("[User %v] Error saving daily outfit: %v", user.ID, err))
		return err
	}
	fmt.Printf("[User %v] Daily outfit %s saved, score %.1f\n", user.ID, generation.OutfitKey, generation.Score)
	return nil
}
