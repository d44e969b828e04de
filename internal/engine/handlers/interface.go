package handlers

import (
	"encoding/json"

	"advanced-melee/internal/domain"
	"advanced-melee/internal/execution"
)

// EntityFinder описывает любую структуру, которая может находить сущность по ID.
type EntityFinder interface {
	GetEntity(id string) *domain.Entity
}

// JobCanceller - отмена текущего действия актора
type JobCanceller interface {
	Cancel(actorID string) bool
}

// Context передает хендлеру состояние мира.
// Мы передаем ссылки, чтобы хендлер мог менять состояние (мутировать данные).
type Context struct {
	Finder   EntityFinder
	World    *domain.GameWorld
	Entities []*domain.Entity
	Actor    *domain.Entity // Тот, кто выполняет команду

	Melee *execution.Controller
	Jobs  JobCanceller
}

// Result - возвращает результат выполнения команды.
// Хендлер НЕ пишет в логи сервиса напрямую, он возвращает данные.
type Result struct {
	Msg     string // Текст лога
	MsgType string // Тип лога (INFO, COMBAT, REJECT)
}

// HandlerFunc - это контракт для любой команды (EXECUTE, GRAPPLE, etc).
type HandlerFunc func(ctx Context, payload json.RawMessage) (Result, error)

// EmptyResult - вспомогательная функция для пустого успешного ответа
func EmptyResult() Result {
	return Result{}
}
