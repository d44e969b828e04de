package systems

import (
	"testing"

	"advanced-melee/internal/domain"
)

func TestApproachCell(t *testing.T) {
	tests := []struct {
		name   string
		actor  domain.Position
		block  *domain.Position
		want   domain.Position
		wantOk bool
	}{
		{"closer to left", domain.Position{X: 1, Y: 5}, nil, domain.Position{X: 4, Y: 5}, true},
		{"closer to right", domain.Position{X: 9, Y: 5}, nil, domain.Position{X: 6, Y: 5}, true},
		{"left blocked", domain.Position{X: 1, Y: 5}, &domain.Position{X: 4, Y: 5}, domain.Position{X: 6, Y: 5}, true},
		{"already in place", domain.Position{X: 4, Y: 5}, nil, domain.Position{X: 4, Y: 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := domain.NewGameWorld(10, 10)
			actor := spawnPawn(t, w, "hero", tt.actor.X, tt.actor.Y)
			target := spawnPawn(t, w, "victim", 5, 5)
			if tt.block != nil {
				w.SetWall(*tt.block, true)
			}

			got, ok := ApproachCell(w, actor, target)
			if ok != tt.wantOk || got != tt.want {
				t.Errorf("ApproachCell() = %v %v, want %v %v", got, ok, tt.want, tt.wantOk)
			}
		})
	}
}

func TestApproachCell_BothSidesBlocked(t *testing.T) {
	w := domain.NewGameWorld(10, 10)
	actor := spawnPawn(t, w, "hero", 5, 8)
	target := spawnPawn(t, w, "victim", 5, 5)
	w.SetWall(domain.Position{X: 4, Y: 5}, true)
	spawnPawn(t, w, "guard", 6, 5)

	if _, ok := ApproachCell(w, actor, target); ok {
		t.Error("Expected no approach cell")
	}
}

func TestStepTowards(t *testing.T) {
	w := domain.NewGameWorld(10, 10)
	actor := spawnPawn(t, w, "hero", 2, 2)

	next, ok := StepTowards(w, actor, domain.Position{X: 5, Y: 5})
	if !ok || next != (domain.Position{X: 3, Y: 3}) {
		t.Errorf("Diagonal step = %v %v", next, ok)
	}

	// Диагональ закрыта, шаг по оси X
	w.SetWall(domain.Position{X: 3, Y: 3}, true)
	next, ok = StepTowards(w, actor, domain.Position{X: 5, Y: 5})
	if !ok || next != (domain.Position{X: 3, Y: 2}) {
		t.Errorf("Axis step = %v %v", next, ok)
	}

	// Все пути закрыты
	w.SetWall(domain.Position{X: 3, Y: 2}, true)
	w.SetWall(domain.Position{X: 2, Y: 3}, true)
	if _, ok := StepTowards(w, actor, domain.Position{X: 5, Y: 5}); ok {
		t.Error("Expected blocked step")
	}

	if _, ok := StepTowards(w, actor, actor.Pos); ok {
		t.Error("No step when already at goal")
	}
}
