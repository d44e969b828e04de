package systems

import (
	"fmt"
	"sort"

	"advanced-melee/internal/domain"
)

// GrappleRadius - дальность лассо актора
func GrappleRadius(actor *domain.Entity) float64 {
	if actor.GrappleRadius > 0 {
		return actor.GrappleRadius
	}
	return domain.DefaultGrappleRadius
}

// CanStartGrapple - общая проверка, может ли актор вообще бросить лассо.
func CanStartGrapple(actor *domain.Entity, offCooldown bool) (bool, string) {
	if actor.IsDead || actor.IsDowned {
		return false, fmt.Sprintf("%s не может действовать", actor.ShortName())
	}
	if actor.Lasso == nil {
		return false, fmt.Sprintf("у %s нет лассо", actor.ShortName())
	}
	if !offCooldown {
		return false, "лассо ещё на перезарядке"
	}
	return true, ""
}

// CanStartGrappleAt проверяет конкретный бросок: цель в радиусе, видна,
// и её можно поставить в клетку cell.
func CanStartGrappleAt(w *domain.GameWorld, actor, target *domain.Entity, cell domain.Position) (bool, string) {
	if target.IsDead || !target.Spawned {
		return false, fmt.Sprintf("%s недоступен", target.ShortName())
	}

	radius := GrappleRadius(actor)
	if float64(actor.Pos.DistanceSquaredTo(target.Pos)) > radius*radius {
		return false, fmt.Sprintf("%s слишком далеко", target.ShortName())
	}

	if !HasRopePath(w, actor.Pos, target.Pos) {
		return false, fmt.Sprintf("%s не видит %s", actor.ShortName(), target.ShortName())
	}

	if cell == target.Pos {
		return true, ""
	}
	if !w.IsStandable(cell) {
		return false, "клетка для притягивания занята"
	}
	if !HasRopePath(w, target.Pos, cell) {
		return false, fmt.Sprintf("%s не протащить к клетке", target.ShortName())
	}
	return true, ""
}

// IdealGrappleSpots перечисляет клетки вокруг актора, куда можно притянуть цель,
// начиная с ближайших к цели (меньше тащить).
// onlyLeftRight - только клетки слева и справа, откуда казнь начинается сразу.
// Клетка, где уже стоит цель, тоже годится.
func IdealGrappleSpots(w *domain.GameWorld, actor, target *domain.Entity, onlyLeftRight bool) []domain.Position {
	var cells []domain.Position
	if onlyLeftRight {
		cells = []domain.Position{actor.Pos.Shift(-1, 0), actor.Pos.Shift(1, 0)}
	} else {
		r := domain.GrappleSpotRadius
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				cells = append(cells, actor.Pos.Shift(dx, dy))
			}
		}
	}

	spots := cells[:0]
	for _, c := range cells {
		if c == target.Pos || w.IsStandable(c) {
			spots = append(spots, c)
		}
	}

	sort.SliceStable(spots, func(i, j int) bool {
		return spots[i].DistanceSquaredTo(target.Pos) < spots[j].DistanceSquaredTo(target.Pos)
	})
	return spots
}
