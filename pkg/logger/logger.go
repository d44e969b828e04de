package logger

import (
	"io"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
)

// Log является глобальным экземпляром логгера для всего приложения.
// До вызова Init пишет в stderr с настройками logrus по умолчанию.
var Log = logrus.New()

// Options - параметры логгера из окружения.
type Options struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"text"`
}

// Init инициализирует глобальный логгер.
// Эта функция должна быть вызвана один раз при старте приложения в main.go.
func Init() {
	var opts Options
	if err := env.Parse(&opts); err != nil {
		opts = Options{Level: "info", Format: "text"}
	}
	Configure(opts, os.Stdout)
}

// Configure применяет параметры к глобальному логгеру.
func Configure(opts Options, out io.Writer) {
	l := logrus.New()

	// 1. Уровень логирования. Для отладки можно выставить "debug".
	level, err := logrus.ParseLevel(opts.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	l.SetLevel(level)

	// 2. Форматтер.
	// "json" - для продакшена и сбора логов.
	// "text" - для удобной разработки.
	if strings.ToLower(opts.Format) == "json" {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
			ForceColors:   true,
		})
	}

	l.SetOutput(out)
	Log = l
}

// Component возвращает логгер с полем component.
func Component(name string) *logrus.Entry {
	return Log.WithField("component", name)
}
