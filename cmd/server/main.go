package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"advanced-melee/internal/catalog"
	"advanced-melee/internal/engine"
	"advanced-melee/internal/execution"
	"advanced-melee/internal/server"
	"advanced-melee/internal/storage"
	"advanced-melee/internal/version"
	"advanced-melee/pkg/logger"
	"advanced-melee/pkg/utils"
)

func init() {
	logger.Init()
}

func main() {
	// 1. Парсинг конфигурации: окружение, затем флаги поверх него
	cfg, err := engine.LoadConfig()
	if err != nil {
		logger.Log.WithError(err).Fatal("Invalid configuration")
	}

	var seed string
	// -seed принимает число или произвольную фразу
	flag.StringVar(&seed, "seed", "", "Selection seed: number or phrase (empty for env/random)")
	flag.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to SQLite database")
	flag.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "Animation catalog YAML (empty for embedded)")
	flag.StringVar(&cfg.ScenarioPath, "scenario", cfg.ScenarioPath, "Scenario YAML (empty for embedded arena)")
	flag.StringVar(&cfg.Port, "port", cfg.Port, "HTTP port")
	flag.Parse()

	logger.Log.Info("Starting Advanced Melee...")
	logger.Log.Info(version.String())

	if seed != "" {
		if n, err := strconv.ParseInt(seed, 10, 64); err == nil {
			cfg.Seed = n
		} else {
			cfg.Seed = utils.StringToSeed(seed)
		}
		logger.Log.Infof("Using explicit seed: %d", cfg.Seed)
	} else {
		logger.Log.Infof("Using seed: %d", cfg.Seed)
	}

	// 2. Данные: каталог анимаций, сценарий, хранилище
	var cat *catalog.Catalog
	if cfg.CatalogPath != "" {
		cat, err = catalog.LoadFile(cfg.CatalogPath)
	} else {
		cat, err = catalog.Default()
	}
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load animation catalog")
	}

	scenario, err := engine.LoadScenario(cfg.ScenarioPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load scenario")
	}

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to open storage")
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Log.WithError(err).Warn("Failed to close storage")
		}
	}()

	registry := execution.NewRegistry(cfg.Melee)
	saved, err := store.LoadMeleeData(context.Background())
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to load melee data")
	}
	logger.Log.Infof("Restored melee data for %d actors", registry.Restore(saved))

	// 3. Ядро
	gameService, err := engine.NewService(cfg, scenario, cat, registry)
	if err != nil {
		logger.Log.WithError(err).Fatal("Failed to build game")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 4. Сервер
	srv := server.New(gameService, store, cfg.Port)
	go func() {
		if err := srv.Run(ctx); err != nil {
			logger.Log.WithError(err).Error("Server error")
			stop()
		}
	}()

	// Игровой цикл владеет реестром, сохраняем только после его остановки
	gameService.Run(ctx)
	logger.Log.Info("Shutting down...")

	saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	list := registry.Saveable()
	if err := store.SaveMeleeData(saveCtx, list); err != nil {
		logger.Log.WithError(err).Error("Failed to save melee data")
	} else {
		logger.Log.Infof("Saved melee data for %d actors", len(list))
	}

	logger.Log.Info("Done.")
}
