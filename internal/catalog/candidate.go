package catalog

import (
	"advanced-melee/internal/domain"
	"advanced-melee/internal/occupancy"
)

// Kind - назначение анимации
type Kind string

const (
	KindExecution Kind = "execution"
	KindDuel      Kind = "duel"
)

// Outcome - чем заканчивается казнь для цели
type Outcome string

const (
	OutcomeKill   Outcome = "kill"
	OutcomeDown   Outcome = "down"
	OutcomeIgnore Outcome = "ignore"
)

// Candidate - один вариант действия (анимация) с требованием к месту и весом.
// Только для чтения после загрузки каталога.
type Candidate struct {
	ID     string
	Kind   Kind
	Weight float64

	// ClearMask - клетки, которые должны быть свободны.
	// FlipClearMask - то же для зеркального варианта (цель слева).
	ClearMask     occupancy.Mask
	FlipClearMask occupancy.Mask

	Weapons []string // пусто - подходит любое оружие ближнего боя
	Outcome Outcome

	DurationTicks int
}

// RequiredMask возвращает маску для нужной стороны
func (c *Candidate) RequiredMask(mirrored bool) occupancy.Mask {
	if mirrored {
		return c.FlipClearMask
	}
	return c.ClearMask
}

// SupportsWeapon - подходит ли анимация к оружию
func (c *Candidate) SupportsWeapon(weapon string) bool {
	if len(c.Weapons) == 0 {
		return true
	}
	for _, w := range c.Weapons {
		if w == weapon {
			return true
		}
	}
	return false
}

// Pool - упорядоченный набор кандидатов на одну попытку
type Pool []*Candidate

// Provider выдает подходящие анимации для пары актор + оружие
type Provider interface {
	GetCandidates(actor *domain.Entity, weapon string) Pool
}
