package actions

import (
	"errors"
	"fmt"

	"advanced-melee/internal/domain"
	"advanced-melee/internal/engine/handlers"
	"advanced-melee/internal/execution"
	"advanced-melee/pkg/api"
)

// HandleGrapple - игрок выбрал цель лассо
func HandleGrapple(ctx handlers.Context, p api.EntityPayload) (handlers.Result, error) {
	target := ctx.Finder.GetEntity(p.TargetID)

	_, err := ctx.Melee.RequestGrapple(ctx.Actor, target)
	if errors.Is(err, execution.ErrNothingToDo) {
		return handlers.EmptyResult(), nil
	}
	if err != nil {
		return handlers.EmptyResult(), err
	}

	return handlers.Result{
		Msg:     fmt.Sprintf("%s бросает лассо в %s.", ctx.Actor.ShortName(), target.ShortName()),
		MsgType: domain.LogInfo,
	}, nil
}
