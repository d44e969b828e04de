package utils

import (
	"hash/fnv"

	"github.com/google/uuid"
)

// GenerateID создает уникальный ID для запросов и записей лога
func GenerateID() string {
	return uuid.NewString()
}

// StringToSeed превращает строку (ID актора) в стабильный сид для rand.
// Один и тот же актор получает один и тот же поток случайных чисел.
func StringToSeed(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64() & 0x7FFFFFFFFFFFFFFF)
}
