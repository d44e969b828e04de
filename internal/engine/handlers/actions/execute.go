package actions

import (
	"fmt"

	"advanced-melee/internal/domain"
	"advanced-melee/internal/engine/handlers"
	"advanced-melee/internal/execution"
	"advanced-melee/pkg/api"
)

// HandleExecute - игрок выбрал цель казни.
// Отказ уже сообщен игроку через Messenger, здесь он только возвращается.
func HandleExecute(ctx handlers.Context, p api.ExecutePayload) (handlers.Result, error) {
	target := ctx.Finder.GetEntity(p.TargetID)

	_, err := ctx.Melee.RequestExecution(ctx.Actor, target, execution.ExecuteOptions{
		ForceNoLasso:  p.ForceNoLasso,
		AllowFriendly: p.AllowFriendly,
	})
	if err != nil {
		return handlers.EmptyResult(), err
	}

	return handlers.Result{
		Msg:     fmt.Sprintf("%s идет казнить %s.", ctx.Actor.ShortName(), target.ShortName()),
		MsgType: domain.LogInfo,
	}, nil
}
