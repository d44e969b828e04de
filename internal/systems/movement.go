package systems

import (
	"advanced-melee/internal/domain"
)

// ApproachCell выбирает клетку слева или справа от цели, куда идти для казни.
// Ближайшая к актору свободная клетка; актор, уже стоящий там, тоже подходит.
func ApproachCell(w *domain.GameWorld, actor, target *domain.Entity) (domain.Position, bool) {
	left := target.Pos.Shift(-1, 0)
	right := target.Pos.Shift(1, 0)

	first, second := left, right
	if actor.Pos.DistanceSquaredTo(right) < actor.Pos.DistanceSquaredTo(left) {
		first, second = right, left
	}

	for _, c := range []domain.Position{first, second} {
		if c == actor.Pos || w.IsStandable(c) {
			return c, true
		}
	}
	return domain.Position{}, false
}

// StepTowards вычисляет следующий шаг к goal. Не меняет состояние мира!
// Пробует диагональ, затем каждую ось отдельно.
func StepTowards(w *domain.GameWorld, actor *domain.Entity, goal domain.Position) (domain.Position, bool) {
	if actor.Pos == goal {
		return actor.Pos, false
	}

	dx, dy := actor.Pos.DirectionTo(goal)
	steps := []domain.Position{actor.Pos.Shift(dx, dy)}
	if dx != 0 && dy != 0 {
		steps = append(steps, actor.Pos.Shift(dx, 0), actor.Pos.Shift(0, dy))
	}

	for _, next := range steps {
		if w.IsStandable(next) {
			return next, true
		}
	}
	return actor.Pos, false
}
