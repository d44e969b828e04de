// Package catalog загружает таблицу анимаций казни и выдает пулы кандидатов.
package catalog

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"advanced-melee/internal/domain"
	"advanced-melee/internal/occupancy"
	"advanced-melee/pkg/logger"
)

//go:embed data/schema.json
var schemaJSON string

//go:embed data/animations.yaml
var defaultCatalog []byte

const schemaURL = "advanced-melee://catalog.schema.json"

const defaultDurationTicks = domain.TicksExecution

type fileDoc struct {
	Version    int         `yaml:"version"`
	Animations []animEntry `yaml:"animations"`
}

type animEntry struct {
	ID            string   `yaml:"id"`
	Kind          string   `yaml:"kind"`
	Weight        float64  `yaml:"weight"`
	Weapons       []string `yaml:"weapons"`
	Outcome       string   `yaml:"outcome"`
	DurationTicks int      `yaml:"duration_ticks"`
	Clearance     []string `yaml:"clearance"`
	FlipClearance []string `yaml:"flip_clearance"`
}

// Catalog - загруженная таблица анимаций
type Catalog struct {
	all  []*Candidate
	byID map[string]*Candidate
}

// Default возвращает встроенный каталог
func Default() (*Catalog, error) {
	return Parse(defaultCatalog)
}

// LoadFile читает каталог с диска
func LoadFile(path string) (*Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	c, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Parse проверяет YAML по схеме и строит кандидатов
func Parse(raw []byte) (*Catalog, error) {
	if err := validate(raw); err != nil {
		return nil, err
	}

	var doc fileDoc
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	c := &Catalog{byID: make(map[string]*Candidate, len(doc.Animations))}
	for _, e := range doc.Animations {
		cand, err := e.build()
		if err != nil {
			return nil, fmt.Errorf("animation %q: %w", e.ID, err)
		}
		if _, dup := c.byID[cand.ID]; dup {
			return nil, fmt.Errorf("animation %q: duplicate id", cand.ID)
		}
		c.all = append(c.all, cand)
		c.byID[cand.ID] = cand
	}

	logger.Component("catalog").WithField("animations", len(c.all)).Debug("Catalog loaded")
	return c, nil
}

func (e animEntry) build() (*Candidate, error) {
	clearMask, err := occupancy.ParseGrid(e.Clearance)
	if err != nil {
		return nil, err
	}

	flip := occupancy.Flip(clearMask)
	if len(e.FlipClearance) > 0 {
		if flip, err = occupancy.ParseGrid(e.FlipClearance); err != nil {
			return nil, fmt.Errorf("flip_clearance: %w", err)
		}
	}

	c := &Candidate{
		ID:            e.ID,
		Kind:          Kind(e.Kind),
		Weight:        e.Weight,
		ClearMask:     clearMask,
		FlipClearMask: flip,
		Weapons:       e.Weapons,
		Outcome:       Outcome(e.Outcome),
		DurationTicks: e.DurationTicks,
	}
	if c.Kind == "" {
		c.Kind = KindExecution
	}
	if c.Outcome == "" {
		c.Outcome = OutcomeKill
	}
	if c.DurationTicks == 0 {
		c.DurationTicks = defaultDurationTicks
	}
	return c, nil
}

func validate(raw []byte) error {
	schema, err := jsonschema.CompileString(schemaURL, schemaJSON)
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode catalog: %w", err)
	}

	// Схема проверяет JSON-значения, поэтому гоняем YAML через json с UseNumber.
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("catalog to json: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("catalog to json: %w", err)
	}

	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("catalog schema: %w", err)
	}
	return nil
}

// GetCandidates возвращает анимации казни для актора с оружием в порядке каталога.
// Животные не держат оружие и не казнят.
func (c *Catalog) GetCandidates(actor *domain.Entity, weapon string) Pool {
	if actor == nil || actor.IsAnimal || weapon == "" {
		return nil
	}

	var pool Pool
	for _, cand := range c.all {
		if cand.Kind != KindExecution {
			continue
		}
		if !cand.SupportsWeapon(weapon) {
			continue
		}
		pool = append(pool, cand)
	}
	return pool
}

// Get ищет анимацию по ID
func (c *Catalog) Get(id string) *Candidate {
	return c.byID[id]
}

// Len - число анимаций в каталоге
func (c *Catalog) Len() int {
	return len(c.all)
}
