package actions

import (
	"fmt"

	"advanced-melee/internal/domain"
	"advanced-melee/internal/engine/handlers"
)

// HandleInit - первое сообщение после входа: только приветствие,
// состояние мира уйдет со следующей рассылкой.
func HandleInit(ctx handlers.Context) (handlers.Result, error) {
	return handlers.Result{
		Msg:     fmt.Sprintf("%s готов к бою.", ctx.Actor.ShortName()),
		MsgType: domain.LogInfo,
	}, nil
}
