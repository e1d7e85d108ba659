package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"mealbot/internal/models"
)

// Format - формат файла каталога
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// File - содержимое файла каталога рецептов
type File struct {
	Version string          `json:"version" yaml:"version"`
	Recipes []models.Recipe `json:"recipes" yaml:"recipes"`
}

// FormatFromPath определяет формат по расширению файла
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("неизвестный формат каталога: %s", path)
	}
}

// LoadFile читает каталог рецептов из JSON или YAML файла
func LoadFile(path string, logger *zap.Logger) ([]models.Recipe, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать каталог: %w", err)
	}

	return Parse(data, format, logger)
}

// Parse разбирает каталог и отбрасывает некорректные рецепты
func Parse(data []byte, format Format, logger *zap.Logger) ([]models.Recipe, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	var file File
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("ошибка парсинга каталога: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("ошибка парсинга каталога: %w", err)
		}
	default:
		return nil, fmt.Errorf("неизвестный формат каталога: %q", format)
	}

	return Validate(file.Recipes, logger), nil
}

// recipeNamespace - пространство имён для ID рецептов без явного ID
var recipeNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("mealbot/recipes"))

// recipeID выводит ID из владельца, типа и названия: повторный импорт
// того же файла даёт те же ID
func recipeID(r models.Recipe) string {
	key := string(r.Type) + "/" + strings.ToLower(r.Name)
	if r.OwnerID != nil {
		key = fmt.Sprintf("%d/%s", *r.OwnerID, key)
	}
	return uuid.NewSHA1(recipeNamespace, []byte(key)).String()
}

// Validate оставляет только пригодные для генерации рецепты.
// Рецепты без ID получают UUID, выведенный из типа и названия.
func Validate(recipes []models.Recipe, logger *zap.Logger) []models.Recipe {
	if logger == nil {
		logger = zap.NewNop()
	}

	valid := make([]models.Recipe, 0, len(recipes))
	seen := make(map[string]bool, len(recipes))

	for i, r := range recipes {
		if err := checkRecipe(r); err != nil {
			logger.Warn("рецепт пропущен",
				zap.Int("index", i),
				zap.String("name", r.Name),
				zap.Error(err),
			)
			continue
		}

		r.Name = strings.TrimSpace(r.Name)
		r.Type = models.RecipeType(strings.ToLower(strings.TrimSpace(string(r.Type))))
		if r.ID == "" {
			r.ID = recipeID(r)
		}
		if seen[r.ID] {
			logger.Warn("повторяющийся ID рецепта", zap.String("id", r.ID), zap.String("name", r.Name))
			continue
		}
		seen[r.ID] = true

		valid = append(valid, r)
	}

	return valid
}

func checkRecipe(r models.Recipe) error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("пустое название")
	}
	if t := models.RecipeType(strings.ToLower(strings.TrimSpace(string(r.Type)))); !t.Valid() {
		return fmt.Errorf("неизвестный тип %q", r.Type)
	}
	if !r.PerPortion().IsFinite() {
		return fmt.Errorf("КБЖУ не является числом")
	}
	if r.PerPortion().IsNegative() {
		return fmt.Errorf("отрицательное КБЖУ")
	}
	if r.Calories == 0 {
		return fmt.Errorf("нулевая калорийность")
	}
	return nil
}
