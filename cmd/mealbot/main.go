package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"mealbot/internal/bot"
	"mealbot/internal/catalog"
	"mealbot/internal/config"
	"mealbot/internal/database"
	"mealbot/internal/logger"
	"mealbot/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if err := cfg.RequireBotToken(); err != nil {
		log.Fatal("конфигурация", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.DSN(), log)
	if err != nil {
		log.Fatal("база данных", zap.Error(err))
	}
	defer db.Close()

	repo := repository.New(db)

	// Каталог из файла импортируется как системные рецепты
	if cfg.CatalogPath != "" {
		recipes, err := catalog.LoadFile(cfg.CatalogPath, log)
		if err != nil {
			log.Fatal("каталог рецептов", zap.Error(err))
		}
		for _, r := range recipes {
			if err := repo.Recipe.Create(ctx, r); err != nil {
				log.Fatal("импорт рецептов", zap.Error(err))
			}
		}
		log.Info("каталог импортирован", zap.Int("recipes", len(recipes)))
	}

	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		log.Fatal("telegram", zap.Error(err))
	}
	log.Info("бот авторизован", zap.String("username", api.Self.UserName))

	b := bot.New(api, repo.Recipe, repo.MealPlan, repo.Subscription, cfg, log)
	if err := b.StartWeeklyPlans(cfg.WeeklyPlanCron); err != nil {
		log.Fatal("расписание", zap.Error(err))
	}
	defer b.StopWeeklyPlans()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updates := api.GetUpdatesChan(u)

	go func() {
		<-ctx.Done()
		api.StopReceivingUpdates()
	}()

	if err := b.Start(ctx, updates); err != nil && ctx.Err() == nil {
		log.Error("бот остановлен с ошибкой", zap.Error(err))
	}
	log.Info("бот остановлен")
}
