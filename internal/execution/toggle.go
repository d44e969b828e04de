package execution

import (
	"advanced-melee/internal/domain"
)

// Status - состояние ближнего боя актора для клиента
type Status struct {
	ActorID             string  `json:"actorId"`
	AutoExecuteMode     string  `json:"autoExecute"`
	AutoGrappleMode     string  `json:"autoGrapple"`
	AutoExecuteResolved bool    `json:"autoExecuteResolved"`
	AutoGrappleResolved bool    `json:"autoGrappleResolved"`
	ExecuteCooldownPct  float64 `json:"executeCooldownPct"`
	GrappleCooldownPct  float64 `json:"grappleCooldownPct"`
}

// Status собирает данные актора с учетом общих настроек
func (c *Controller) Status(actorID string) Status {
	d := c.registry.GetOrCreate(actorID)
	return Status{
		ActorID:             actorID,
		AutoExecuteMode:     d.AutoExecute.String(),
		AutoGrappleMode:     d.AutoGrapple.String(),
		AutoExecuteResolved: d.AutoExecute.Resolve(c.settings.AutoExecute),
		AutoGrappleResolved: d.AutoGrapple.Resolve(c.settings.AutoGrapple),
		ExecuteCooldownPct:  d.ExecuteCooldownPct(c.settings.ExecuteCooldownTicks),
		GrappleCooldownPct:  d.GrappleCooldownPct(c.settings.GrappleCooldownTicks),
	}
}

// ToggleAutoExecute переключает авто-казнь группы акторов.
// Первый актор главный: если режимы разные, всем ставится его режим,
// иначе все переходят к следующему.
func (c *Controller) ToggleAutoExecute(actorIDs []string) domain.AutoOption {
	return c.toggle(actorIDs, func(d *domain.MeleeData) *domain.AutoOption { return &d.AutoExecute })
}

// ToggleAutoGrapple - то же для авто-лассо
func (c *Controller) ToggleAutoGrapple(actorIDs []string) domain.AutoOption {
	return c.toggle(actorIDs, func(d *domain.MeleeData) *domain.AutoOption { return &d.AutoGrapple })
}

func (c *Controller) toggle(actorIDs []string, field func(*domain.MeleeData) *domain.AutoOption) domain.AutoOption {
	var group []*domain.MeleeData
	for _, id := range actorIDs {
		if d := c.registry.GetOrCreate(id); d != nil {
			group = append(group, d)
		}
	}
	if len(group) == 0 {
		return domain.AutoDefault
	}

	mode := *field(group[0])
	mixed := false
	for _, d := range group[1:] {
		if *field(d) != mode {
			mixed = true
			break
		}
	}
	if !mixed {
		mode = mode.Next()
	}
	for _, d := range group {
		*field(d) = mode
	}
	return mode
}
