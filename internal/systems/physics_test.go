package systems

import (
	"testing"

	"advanced-melee/internal/domain"
)

func TestLineCells(t *testing.T) {
	cells := LineCells(domain.Position{X: 0, Y: 0}, domain.Position{X: 4, Y: 2})
	if len(cells) != 5 {
		t.Fatalf("Expected 5 cells, got %v", cells)
	}
	if cells[0] != (domain.Position{X: 0, Y: 0}) || cells[4] != (domain.Position{X: 4, Y: 2}) {
		t.Errorf("Line must include both ends, got %v", cells)
	}

	if one := LineCells(domain.Position{X: 3, Y: 3}, domain.Position{X: 3, Y: 3}); len(one) != 1 {
		t.Errorf("Degenerate line = %v", one)
	}
}

func TestRopePath(t *testing.T) {
	// Карта 5x5
	// . . . . .
	// . . # . .  (2,1) - стена
	// . # # # .  (1,2), (2,2), (3,2) - стена
	// . . # . .  (2,3) - стена
	// . . . . T  (4,4) - стол
	w := domain.NewGameWorld(5, 5)
	for _, p := range []domain.Position{{X: 2, Y: 1}, {X: 1, Y: 2}, {X: 2, Y: 2}, {X: 3, Y: 2}, {X: 2, Y: 3}} {
		w.SetWall(p, true)
	}
	table := &domain.Entity{ID: "table", Type: domain.EntityTypeFurniture, BlocksSpace: true, Pos: domain.Position{X: 3, Y: 4}}
	if err := w.Spawn(table); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name        string
		from, to    domain.Position
		want        bool
		wantBlocked domain.Position
	}{
		{"Clear horizontal", domain.Position{X: 0, Y: 0}, domain.Position{X: 4, Y: 0}, true, domain.Position{}},
		{"Blocked horizontal", domain.Position{X: 0, Y: 2}, domain.Position{X: 4, Y: 2}, false, domain.Position{X: 1, Y: 2}},
		{"Blocked diagonal", domain.Position{X: 0, Y: 0}, domain.Position{X: 4, Y: 4}, false, domain.Position{X: 2, Y: 2}},
		{"Adjacent wall", domain.Position{X: 2, Y: 1}, domain.Position{X: 2, Y: 2}, true, domain.Position{}},
		{"Over furniture", domain.Position{X: 0, Y: 4}, domain.Position{X: 4, Y: 4}, true, domain.Position{}},
		{"Same cell", domain.Position{X: 1, Y: 1}, domain.Position{X: 1, Y: 1}, true, domain.Position{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HasRopePath(w, tt.from, tt.to); got != tt.want {
				t.Errorf("HasRopePath(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
			if c, blocked := RopeObstacle(w, tt.from, tt.to); blocked && c != tt.wantBlocked {
				t.Errorf("Blocked at %v, want %v", c, tt.wantBlocked)
			}
		})
	}
}
