package bot

import (
	"context"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/robfig/cron"
	"go.uber.org/zap"

	"mealbot/internal/config"
	"mealbot/internal/generator"
	"mealbot/internal/generator/formatter"
	"mealbot/internal/models"
)

const updateTimeout = 30 * time.Second

// Sender отправляет сообщения в Telegram (реализуется *tgbotapi.BotAPI)
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// RecipeSource возвращает каталог рецептов, доступный пользователю
type RecipeSource interface {
	ListForOwner(ctx context.Context, ownerID int64) ([]models.Recipe, error)
}

// PlanStore хранит сгенерированные планы
type PlanStore interface {
	Create(ctx context.Context, chatID int64, plan *models.MealPlan) error
	GetLatestByChatID(ctx context.Context, chatID int64) (*models.MealPlan, error)
	ListRecentByChatID(ctx context.Context, chatID int64, limit int) ([]models.MealPlan, error)
	UpdateStatus(ctx context.Context, id string, status models.MealPlanStatus) error
}

// SubscriptionStore хранит подписки на еженедельные планы
type SubscriptionStore interface {
	Upsert(ctx context.Context, sub models.Subscription) error
	Delete(ctx context.Context, chatID int64) error
	ListAll(ctx context.Context) ([]models.Subscription, error)
}

// Bot представляет Telegram бота
type Bot struct {
	api       Sender
	recipes   RecipeSource
	plans     PlanStore
	subs      SubscriptionStore
	generator *generator.Generator
	formatter *formatter.TelegramFormatter
	targets   *targetStore
	config    *config.Config
	logger    *zap.Logger
	cron      *cron.Cron
}

// New создаёт новый экземпляр бота
func New(api Sender, recipes RecipeSource, plans PlanStore, subs SubscriptionStore, cfg *config.Config, logger *zap.Logger) *Bot {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bot{
		api:       api,
		recipes:   recipes,
		plans:     plans,
		subs:      subs,
		generator: generator.New(logger.Named("generator")),
		formatter: formatter.NewTelegramFormatter(),
		targets:   newTargetStore(cfg.DefaultTargets),
		config:    cfg,
		logger:    logger,
	}
}

// Start обрабатывает обновления до закрытия канала или отмены контекста
func (b *Bot) Start(ctx context.Context, updates tgbotapi.UpdatesChannel) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	if update.Message == nil {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, updateTimeout)
	defer cancel()

	if update.Message.IsCommand() {
		b.handleCommand(ctx, update.Message)
		return
	}
	b.handleMessage(update.Message)
}
