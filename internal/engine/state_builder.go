package engine

import (
	"advanced-melee/internal/domain"
	"advanced-melee/pkg/api"
)

// BuildStateFor создает персональный "снимок" мира для конкретной сущности-наблюдателя.
// Тумана войны нет: видно всю карту.
func (g *Game) BuildStateFor(observer *domain.Entity) *api.ServerResponse {
	var mapDTO []api.TileView
	for y := 0; y < g.World.Height; y++ {
		for x := 0; x < g.World.Width; x++ {
			if g.World.Map[y][x].IsWall {
				mapDTO = append(mapDTO, api.TileView{X: x, Y: y, IsWall: true})
			}
		}
	}

	viewEntities := make([]api.EntityView, 0, len(g.Entities))
	for _, e := range g.Entities {
		if !e.Spawned {
			continue
		}
		viewEntities = append(viewEntities, g.toEntityView(e))
	}

	// Копия логов, чтобы не было гонки данных. Чужие личные записи не попадают.
	logsCopy := make([]api.LogEntry, 0, len(g.Logs))
	for _, l := range g.Logs {
		if l.Recipient == "" || l.Recipient == observer.ID {
			logsCopy = append(logsCopy, l)
		}
	}

	resp := &api.ServerResponse{
		Type:       "UPDATE",
		Tick:       g.World.GlobalTick,
		MyEntityID: observer.ID,
		Grid:       &api.GridMeta{Width: g.World.Width, Height: g.World.Height},
		Map:        mapDTO,
		Entities:   viewEntities,
		Logs:       logsCopy,
	}

	if observer.Type == domain.EntityTypePawn {
		st := g.Melee.Status(observer.ID)
		resp.Melee = &api.MeleeStatusView{
			AutoExecute:         st.AutoExecuteMode,
			AutoGrapple:         st.AutoGrappleMode,
			AutoExecuteResolved: st.AutoExecuteResolved,
			AutoGrappleResolved: st.AutoGrappleResolved,
			ExecuteCooldownPct:  st.ExecuteCooldownPct,
			GrappleCooldownPct:  st.GrappleCooldownPct,
		}
	}
	return resp
}

// toEntityView конвертирует доменную сущность в DTO
func (g *Game) toEntityView(e *domain.Entity) api.EntityView {
	view := api.EntityView{
		ID:        e.ID,
		Type:      e.Type,
		Name:      e.Name,
		IsDead:    e.IsDead,
		IsDowned:  e.IsDowned,
		IsHostile: e.IsHostile,
		HasLasso:  e.Lasso != nil,
	}
	view.Pos.X = e.Pos.X
	view.Pos.Y = e.Pos.Y

	if w := e.MeleeWeapon(); w != nil {
		view.Weapon = w.DefID
	}
	if job := g.Jobs.Current(e.ID); job != nil {
		view.Job = job.Request.Kind.String()
	}
	return view
}
