package engine

import (
	_ "embed"
	"fmt"
	"os"

	"advanced-melee/internal/domain"

	"gopkg.in/yaml.v3"
)

//go:embed data/arena.yaml
var defaultScenario []byte

// Scenario - стартовая карта и сущности
type Scenario struct {
	Name     string           `yaml:"name"`
	Map      []string         `yaml:"map"`
	Entities []scenarioEntity `yaml:"entities"`
}

type scenarioEntity struct {
	ID      string  `yaml:"id"`
	Name    string  `yaml:"name"`
	Type    string  `yaml:"type"`
	X       int     `yaml:"x"`
	Y       int     `yaml:"y"`
	Hostile bool    `yaml:"hostile"`
	Downed  bool    `yaml:"downed"`
	Lasso   string  `yaml:"lasso"`
	Radius  float64 `yaml:"grapple_radius"`
	Weapon  *struct {
		DefID string `yaml:"def_id"`
		Label string `yaml:"label"`
	} `yaml:"weapon"`
}

// LoadScenario читает сценарий из файла, пустой путь - встроенная арена
func LoadScenario(path string) (*Scenario, error) {
	raw := defaultScenario
	if path != "" {
		var err error
		if raw, err = os.ReadFile(path); err != nil {
			return nil, fmt.Errorf("read scenario: %w", err)
		}
	}
	return ParseScenario(raw)
}

func ParseScenario(raw []byte) (*Scenario, error) {
	var sc Scenario
	if err := yaml.Unmarshal(raw, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if len(sc.Map) == 0 {
		return nil, fmt.Errorf("scenario %q: empty map", sc.Name)
	}
	width := len(sc.Map[0])
	for y, row := range sc.Map {
		if len(row) != width {
			return nil, fmt.Errorf("scenario %q: row %d has width %d, want %d", sc.Name, y, len(row), width)
		}
	}
	return &sc, nil
}

// Build создает мир и размещает сущности
func (sc *Scenario) Build() (*domain.GameWorld, []*domain.Entity, error) {
	world := domain.NewGameWorld(len(sc.Map[0]), len(sc.Map))
	for y, row := range sc.Map {
		for x, ch := range row {
			if ch == '#' {
				world.SetWall(domain.Position{X: x, Y: y}, true)
			}
		}
	}

	entities := make([]*domain.Entity, 0, len(sc.Entities))
	for _, se := range sc.Entities {
		e := &domain.Entity{
			ID:            se.ID,
			Name:          se.Name,
			Type:          se.Type,
			Pos:           domain.Position{X: se.X, Y: se.Y},
			IsHostile:     se.Hostile,
			IsDowned:      se.Downed,
			IsAnimal:      se.Type == domain.EntityTypeAnimal,
			BlocksSpace:   se.Type == domain.EntityTypeFurniture,
			GrappleRadius: se.Radius,
		}
		if se.Weapon != nil {
			e.Weapon = &domain.Weapon{DefID: se.Weapon.DefID, Label: se.Weapon.Label, IsMelee: true}
		}
		if se.Lasso != "" {
			e.Lasso = &domain.Lasso{Label: se.Lasso}
		}
		if world.IsWall(e.Pos) {
			return nil, nil, fmt.Errorf("scenario %q: %s placed in a wall at %v", sc.Name, e.ID, e.Pos)
		}
		if err := world.Spawn(e); err != nil {
			return nil, nil, fmt.Errorf("scenario %q: spawn %s: %w", sc.Name, e.ID, err)
		}
		entities = append(entities, e)
	}
	return world, entities, nil
}
