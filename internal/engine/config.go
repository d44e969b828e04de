package engine

import (
	"fmt"
	"time"

	"advanced-melee/internal/execution"

	"github.com/caarlos0/env/v11"
)

// Config хранит параметры запуска движка
type Config struct {
	// Seed - зерно выбора анимаций. 0 - случайное.
	Seed int64 `env:"ENGINE_SEED"`

	// TickInterval - реальное время одного игрового тика
	TickInterval time.Duration `env:"ENGINE_TICK_INTERVAL" envDefault:"50ms"`

	// AutoActInterval - как часто (в тиках) пешки ищут цель для авто-казни
	AutoActInterval int `env:"ENGINE_AUTO_ACT_INTERVAL" envDefault:"30"`

	// ScenarioPath - YAML со стартовой картой. Пусто - встроенная арена.
	ScenarioPath string `env:"ENGINE_SCENARIO"`

	// CatalogPath - YAML с анимациями. Пусто - встроенный каталог.
	CatalogPath string `env:"MELEE_CATALOG"`

	// DBPath - файл SQLite с данными ближнего боя и отчетами о модах
	DBPath string `env:"MELEE_DB" envDefault:"data/melee.db"`

	// Port - порт HTTP/WebSocket сервера
	Port string `env:"MELEE_PORT" envDefault:"8080"`

	Melee execution.Settings
}

// NewConfig создает конфиг по умолчанию (случайный сид)
func NewConfig() Config {
	return Config{
		Seed:            time.Now().UnixNano(),
		TickInterval:    50 * time.Millisecond,
		AutoActInterval: 30,
		DBPath:          "data/melee.db",
		Port:            "8080",
		Melee:           execution.DefaultSettings(),
	}
}

// LoadConfig читает конфиг из окружения поверх значений по умолчанию
func LoadConfig() (Config, error) {
	cfg := NewConfig()
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse engine config: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.TickInterval <= 0 {
		return Config{}, fmt.Errorf("tick interval must be positive, got %s", cfg.TickInterval)
	}
	return cfg, nil
}
