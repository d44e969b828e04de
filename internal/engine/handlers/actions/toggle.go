package actions

import (
	"fmt"

	"advanced-melee/internal/domain"
	"advanced-melee/internal/engine/handlers"
	"advanced-melee/pkg/api"
)

// HandleToggleAutoExecute переключает авто-казнь выбранных пешек
func HandleToggleAutoExecute(ctx handlers.Context, p api.TogglePayload) (handlers.Result, error) {
	ids, err := toggleGroup(ctx, p)
	if err != nil {
		return handlers.EmptyResult(), err
	}
	mode := ctx.Melee.ToggleAutoExecute(ids)
	return handlers.Result{
		Msg:     fmt.Sprintf("Авто-казнь: %s.", mode),
		MsgType: domain.LogInfo,
	}, nil
}

// HandleToggleAutoGrapple переключает авто-лассо выбранных пешек
func HandleToggleAutoGrapple(ctx handlers.Context, p api.TogglePayload) (handlers.Result, error) {
	ids, err := toggleGroup(ctx, p)
	if err != nil {
		return handlers.EmptyResult(), err
	}
	mode := ctx.Melee.ToggleAutoGrapple(ids)
	return handlers.Result{
		Msg:     fmt.Sprintf("Авто-лассо: %s.", mode),
		MsgType: domain.LogInfo,
	}, nil
}

// toggleGroup - без списка переключается только сам актор.
// Чужих пешек и врагов переключать нельзя.
func toggleGroup(ctx handlers.Context, p api.TogglePayload) ([]string, error) {
	if len(p.ActorIDs) == 0 {
		return []string{ctx.Actor.ID}, nil
	}
	for _, id := range p.ActorIDs {
		e := ctx.Finder.GetEntity(id)
		if e == nil || e.Type != domain.EntityTypePawn || e.IsHostile {
			return nil, fmt.Errorf("actor %q cannot be toggled", id)
		}
	}
	return p.ActorIDs, nil
}
