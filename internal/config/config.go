package config

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"mealbot/internal/models"
)

// Config содержит конфигурацию приложения
type Config struct {
	BotToken   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// HTTP API
	HTTPAddr string

	LogLevel string

	// Файл каталога рецептов (JSON или YAML), если база недоступна
	CatalogPath string

	// Параметры плана по умолчанию
	DefaultDays    int
	DefaultTargets models.Nutrients

	// Расписание еженедельной рассылки (формат robfig/cron, с секундами)
	WeeklyPlanCron string
}

// Load загружает конфигурацию из переменных окружения или .env файла
func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom загружает конфигурацию, используя указанный .env файл.
// Переменные окружения имеют приоритет над файлом.
func LoadFrom(envPath string) (*Config, error) {
	env, err := loadEnvFile(envPath)
	if err != nil {
		env = make(map[string]string)
	}

	getEnv := func(key, defaultValue string) string {
		if value := os.Getenv(key); value != "" {
			return value
		}
		if value, ok := env[key]; ok && value != "" {
			return value
		}
		return defaultValue
	}

	cfg := &Config{
		BotToken:   getEnv("BOT_TOKEN", ""),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "postgres"),

		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CatalogPath: getEnv("CATALOG_PATH", ""),

		WeeklyPlanCron: getEnv("WEEKLY_PLAN_CRON", "0 0 9 * * 0"),
	}

	if cfg.DefaultDays, err = strconv.Atoi(getEnv("DEFAULT_DAYS", "7")); err != nil {
		return nil, fmt.Errorf("DEFAULT_DAYS: %w", err)
	}
	if cfg.DefaultDays < 1 {
		return nil, fmt.Errorf("DEFAULT_DAYS должен быть положительным: %d", cfg.DefaultDays)
	}

	targets := []struct {
		key   string
		def   string
		field *float64
	}{
		{"DEFAULT_CALORIES", "2000", &cfg.DefaultTargets.Calories},
		{"DEFAULT_PROTEIN", "120", &cfg.DefaultTargets.Protein},
		{"DEFAULT_FAT", "70", &cfg.DefaultTargets.Fat},
		{"DEFAULT_CARBS", "220", &cfg.DefaultTargets.Carbs},
	}
	for _, t := range targets {
		v, err := strconv.ParseFloat(getEnv(t.key, t.def), 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", t.key, err)
		}
		if v < 0 {
			return nil, fmt.Errorf("%s не может быть отрицательным: %v", t.key, v)
		}
		*t.field = v
	}

	return cfg, nil
}

// RequireBotToken проверяет, что токен бота задан
func (c *Config) RequireBotToken() error {
	if c.BotToken == "" {
		return fmt.Errorf("BOT_TOKEN не задан")
	}
	return nil
}

// DSN возвращает строку подключения к базе данных
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}

// loadEnvFile читает .env файл
func loadEnvFile(filename string) (map[string]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	env := make(map[string]string)
	scanner := bufio.NewScanner(file)

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])
		value = strings.Trim(value, `"'`)

		env[key] = value
	}

	return env, scanner.Err()
}
