// Package telegram is a thin chat front-end over the generation
// workflow: it drives the session controller through its transitions
// and saves confirmed plans through the plan store.
package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"weekplanner/internal/config"
	"weekplanner/internal/generation"
	"weekplanner/internal/plan"
	"weekplanner/internal/schedule"
	"weekplanner/internal/store"
	"weekplanner/internal/weekkey"
)

// Bot wraps the Telegram API and the planning workflow.
type Bot struct {
	api        *tgbotapi.BotAPI
	controller *generation.Controller
	planStore  *store.PlanStore
	cfg        *config.Config

	// state used for the most recent generation, saved alongside the
	// confirmed plan
	lastState schedule.AppState
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, planner *generation.Planner, planStore *store.PlanStore) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", api.Self.UserName)

	wh, _ := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	resp, err := api.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:        api,
		controller: generation.NewController(planner),
		planStore:  planStore,
		cfg:        cfg,
		lastState:  schedule.DefaultAppState(),
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.CallbackQuery != nil {
		if b.isAllowed(update.CallbackQuery.From.ID) {
			go b.handleCallbackQuery(update.CallbackQuery)
		}
		return
	}

	if update.Message == nil {
		return
	}

	if !b.isAllowed(update.Message.From.ID) {
		log.Printf("Unauthorized access attempt from UserID: %d (@%s)", update.Message.From.ID, update.Message.From.UserName)
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) isAllowed(userID int64) bool {
	for _, id := range b.cfg.TelegramAllowedUserIDs {
		if userID == id {
			return true
		}
	}
	return false
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	switch {
	case strings.HasPrefix(msg.Text, "/plan"):
		conditions := strings.TrimSpace(strings.TrimPrefix(msg.Text, "/plan"))
		b.handlePlanRequest(msg.Chat.ID, conditions)
	case msg.Text == "/weeks":
		b.handleWeeksRequest(msg.Chat.ID)
	case msg.Text == "/reset":
		b.controller.Reset()
		b.send(msg.Chat.ID, "Начинаем заново. Отправь /plan чтобы сгенерировать план.")
	default:
		b.send(msg.Chat.ID, "Команды:\n/plan [особые условия] — сгенерировать план на неделю\n/weeks — сохранённые недели\n/reset — сбросить текущую сессию")
	}
}

func (b *Bot) handlePlanRequest(chatID int64, conditions string) {
	b.send(chatID, "🧑‍🍳 Генерирую план питания...")

	state := schedule.DefaultAppState()
	state.SpecialConditions = conditions
	b.lastState = state

	previousMeals := b.previousWeekMeals(chatID)

	if err := b.controller.GeneratePlan(context.Background(), state, previousMeals); err != nil {
		b.send(chatID, fmt.Sprintf("❌ Не получилось сгенерировать план: %v", err))
		return
	}

	snap := b.controller.Snapshot()
	b.sendPlanPreview(chatID, snap.WeekPlan)
}

func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	// Acknowledge the button press first so the client stops spinning.
	b.api.Request(tgbotapi.NewCallback(query.ID, ""))
	chatID := query.Message.Chat.ID

	switch query.Data {
	case "confirm":
		b.handleConfirm(chatID)
	case "regen":
		b.send(chatID, "🔄 Генерирую новый план...")
		if err := b.controller.RegeneratePlan(context.Background(), b.lastState, b.previousWeekMeals(chatID)); err != nil {
			b.send(chatID, fmt.Sprintf("❌ Не получилось перегенерировать: %v", err))
			return
		}
		b.sendPlanPreview(chatID, b.controller.Snapshot().WeekPlan)
	default:
		log.Printf("Unknown callback data: %q", query.Data)
	}
}

func (b *Bot) handleConfirm(chatID int64) {
	b.send(chatID, "🛒 Составляю список покупок...")

	if err := b.controller.ConfirmPlan(context.Background()); err != nil {
		b.send(chatID, fmt.Sprintf("❌ Не получилось составить список: %v", err))
		return
	}

	snap := b.controller.Snapshot()
	b.send(chatID, formatShoppingTrips(snap.ShoppingTrips))

	// Save under next week's key: the plan is made ahead of time.
	wk := weekkey.FromTime(time.Now())
	if next, err := weekkey.Next(wk); err == nil {
		wk = next
	}
	persisted := plan.PersistedPlan{
		WeekKey:    wk,
		CreatedAt:  time.Now().UTC(),
		InputState: b.lastState,
		Result: plan.Result{
			WeekPlan:      snap.WeekPlan,
			ShoppingTrips: snap.ShoppingTrips,
		},
	}
	userID := fmt.Sprintf("%d", chatID)
	if err := b.planStore.Save(context.Background(), userID, persisted); err != nil {
		log.Printf("Failed to save plan for week %s: %v", wk, err)
		b.send(chatID, "⚠️ План готов, но сохранить его не удалось.")
		return
	}
	b.send(chatID, fmt.Sprintf("✅ План на неделю %s сохранён.", wk))
}

func (b *Bot) handleWeeksRequest(chatID int64) {
	userID := fmt.Sprintf("%d", chatID)
	keys, err := b.planStore.ListIndex(context.Background(), userID)
	if err != nil {
		b.send(chatID, fmt.Sprintf("❌ Не получилось загрузить список: %v", err))
		return
	}
	if len(keys) == 0 {
		b.send(chatID, "Сохранённых планов пока нет.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Сохранённые недели:\n")
	for _, key := range keys {
		if info, err := weekkey.InfoFor(key); err == nil {
			fmt.Fprintf(&sb, "• %s — неделя %d, %s\n", key, info.WeekNumber, info.DateRange)
		}
	}
	b.send(chatID, sb.String())
}

func (b *Bot) previousWeekMeals(chatID int64) []string {
	userID := fmt.Sprintf("%d", chatID)
	wk := weekkey.FromTime(time.Now())
	prev, err := b.planStore.Get(context.Background(), userID, wk)
	if err != nil {
		return nil
	}
	return plan.MealNames(prev.Result.WeekPlan)
}

func (b *Bot) sendPlanPreview(chatID int64, weekPlan []plan.DayPlan) {
	msg := tgbotapi.NewMessage(chatID, formatWeekPlan(weekPlan))
	msg.ReplyMarkup = tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Подтвердить", "confirm"),
			tgbotapi.NewInlineKeyboardButtonData("🔄 Перегенерировать", "regen"),
		),
	)
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send plan preview: %v", err)
	}
}

func (b *Bot) send(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Printf("Failed to send message: %v", err)
	}
}
