package actions

import (
	"fmt"

	"advanced-melee/internal/domain"
	"advanced-melee/internal/engine/handlers"
)

// HandleWait останавливает текущее действие актора
func HandleWait(ctx handlers.Context) (handlers.Result, error) {
	if !ctx.Jobs.Cancel(ctx.Actor.ID) {
		return handlers.EmptyResult(), nil
	}
	return handlers.Result{
		Msg:     fmt.Sprintf("%s прерывает действие.", ctx.Actor.ShortName()),
		MsgType: domain.LogInfo,
	}, nil
}
