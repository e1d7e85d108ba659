package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"mealbot/internal/catalog"
	"mealbot/internal/config"
	"mealbot/internal/database"
	"mealbot/internal/generator"
	"mealbot/internal/generator/formatter"
	"mealbot/internal/logger"
	"mealbot/internal/models"
	"mealbot/internal/repository"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("❌ Ошибка конфигурации: %v\n", err)
		os.Exit(1)
	}

	// Флаги
	catalogPath := flag.String("catalog", cfg.CatalogPath, "Файл каталога рецептов (JSON или YAML)")
	days := flag.Int("days", cfg.DefaultDays, "Количество дней (1-90)")
	kcal := flag.Float64("kcal", cfg.DefaultTargets.Calories, "Калории в день")
	protein := flag.Float64("protein", cfg.DefaultTargets.Protein, "Белки в день, г")
	fat := flag.Float64("fat", cfg.DefaultTargets.Fat, "Жиры в день, г")
	carbs := flag.Float64("carbs", cfg.DefaultTargets.Carbs, "Углеводы в день, г")
	asJSON := flag.Bool("json", false, "Вывести план в JSON")
	importOnly := flag.Bool("import", false, "Импортировать каталог в базу данных и выйти")
	save := flag.Bool("save", false, "Сохранить план в базу данных")
	chatID := flag.Int64("chat", 0, "Чат (владелец) для сохранения плана")
	verbose := flag.Bool("v", false, "Подробный лог генерации")

	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	log, err := logger.New(level)
	if err != nil {
		fmt.Printf("❌ Ошибка логгера: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if *catalogPath == "" {
		fmt.Println("❌ Укажите каталог рецептов: -catalog recipes.yaml")
		os.Exit(1)
	}

	recipes, err := catalog.LoadFile(*catalogPath, log)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()

	if *importOnly {
		repo := openRepository(ctx, cfg, log)
		for _, r := range recipes {
			if err := repo.Recipe.Create(ctx, r); err != nil {
				fmt.Printf("❌ %v\n", err)
				os.Exit(1)
			}
		}
		fmt.Printf("✅ Импортировано рецептов: %d\n", len(recipes))
		return
	}

	plan, err := generator.New(log).Generate(generator.Request{
		DaysCount: *days,
		Target:    models.Nutrients{Calories: *kcal, Protein: *protein, Fat: *fat, Carbs: *carbs},
		Recipes:   recipes,
	})
	if err != nil {
		fmt.Printf("❌ Ошибка генерации: %v\n", err)
		os.Exit(1)
	}

	if *save {
		repo := openRepository(ctx, cfg, log)
		if err := repo.MealPlan.Create(ctx, *chatID, plan); err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "✅ План сохранён: %s\n", plan.ID)
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(plan); err != nil {
			fmt.Printf("❌ %v\n", err)
			os.Exit(1)
		}
		return
	}

	fmt.Print(formatter.NewTelegramFormatter().FormatPlan(plan))
}

func openRepository(ctx context.Context, cfg *config.Config, log *zap.Logger) *repository.Repository {
	db, err := database.Open(ctx, cfg.DSN(), log)
	if err != nil {
		fmt.Printf("❌ %v\n", err)
		os.Exit(1)
	}
	return repository.New(db)
}
