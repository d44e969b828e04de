package handlers

import (
	"encoding/json"
	"fmt"

	"advanced-melee/internal/domain"
	"advanced-melee/pkg/api"
)

// TypedHandlerFunc - хендлер, которому payload уже распакован в T
type TypedHandlerFunc[T any] func(ctx Context, payload T) (Result, error)

// EmptyHandlerFunc - хендлер без данных (INIT, WAIT)
type EmptyHandlerFunc func(ctx Context) (Result, error)

// WithPayload распаковывает и проверяет payload перед вызовом handler.
// Пустой или null payload дает нулевое T, дальше решает Validate.
// Испорченная команда отклоняется личным сообщением актору.
func WithPayload[T any](handler TypedHandlerFunc[T]) HandlerFunc {
	return func(ctx Context, raw json.RawMessage) (Result, error) {
		var payload T

		if len(raw) == 0 || string(raw) == "null" {
			raw = []byte("{}")
		}
		if err := json.Unmarshal(raw, &payload); err != nil {
			return rejected(ctx, "не удалось разобрать команду"), fmt.Errorf("invalid payload format: %w", err)
		}

		if v, ok := any(payload).(api.Validator); ok {
			if err := v.Validate(); err != nil {
				return rejected(ctx, err.Error()), fmt.Errorf("validation failed: %w", err)
			}
		}

		return handler(ctx, payload)
	}
}

// WithEmptyPayload игнорирует входящий JSON
func WithEmptyPayload(handler EmptyHandlerFunc) HandlerFunc {
	return func(ctx Context, _ json.RawMessage) (Result, error) {
		return handler(ctx)
	}
}

func rejected(ctx Context, reason string) Result {
	name := "?"
	if ctx.Actor != nil {
		name = ctx.Actor.ShortName()
	}
	return Result{
		Msg:     fmt.Sprintf("%s: команда отклонена (%s).", name, reason),
		MsgType: domain.LogReject,
	}
}
