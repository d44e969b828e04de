package systems

import (
	"advanced-melee/internal/domain"
	"advanced-melee/pkg/logger"

	"github.com/sirupsen/logrus"
)

// LineCells - клетки отрезка from..to по Брезенхэму, концы включены
func LineCells(from, to domain.Position) []domain.Position {
	dx, dy := to.X-from.X, to.Y-from.Y
	if dx < 0 {
		dx = -dx
	}
	if dy < 0 {
		dy = -dy
	}
	sx, sy := from.DirectionTo(to)

	cells := make([]domain.Position, 0, max(dx, dy)+1)
	cur, err := from, dx-dy
	for {
		cells = append(cells, cur)
		if cur == to {
			return cells
		}
		e2 := err * 2
		if e2 > -dy {
			err -= dy
			cur.X += sx
		}
		if e2 < dx {
			err += dx
			cur.Y += sy
		}
	}
}

// RopeObstacle ищет первую клетку между from и to, через которую не пройдет
// лассо или протаскиваемое тело. Концы отрезка не проверяются.
// Стены и край карты мешают, мебель нет: через стол аркан бросить можно.
func RopeObstacle(w *domain.GameWorld, from, to domain.Position) (domain.Position, bool) {
	cells := LineCells(from, to)
	if len(cells) <= 2 {
		return domain.Position{}, false
	}
	for _, c := range cells[1 : len(cells)-1] {
		if w.IsWall(c) {
			logger.Component("physics_system").WithFields(logrus.Fields{
				"from":    from,
				"to":      to,
				"blocked": c,
			}).Debug("Rope path blocked")
			return c, true
		}
	}
	return domain.Position{}, false
}

// HasRopePath - лассо или тело проходит от from до to
func HasRopePath(w *domain.GameWorld, from, to domain.Position) bool {
	_, blocked := RopeObstacle(w, from, to)
	return !blocked
}
