package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Значения параметров анализа по умолчанию.
const (
	DefaultBlurSize  = 201
	DefaultThreshold = 17
)

type Config struct {
	TelegramToken string
	HTTPAddr      string // адрес HTTP API; пустая строка — API выключен
	BlurSize      int    // размер ядра размытия по умолчанию
	Threshold     int    // порог детекции по умолчанию
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg := &Config{
		TelegramToken: os.Getenv("TELEGRAM_TOKEN"),
		HTTPAddr:      os.Getenv("HTTP_ADDR"),
		BlurSize:      envInt("LENS_BLUR_SIZE", DefaultBlurSize),
		Threshold:     envInt("LENS_THRESHOLD", DefaultThreshold),
	}

	return cfg, nil
}

// envInt читает целочисленную переменную окружения с запасным значением.
func envInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
