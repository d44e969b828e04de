package domain

import "errors"

type Tile struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	IsWall bool   `json:"isWall"`
	Env    string `json:"env"` // floor, stone, grass
}

type GameWorld struct {
	Map        [][]Tile `json:"map"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	GlobalTick int      `json:"globalTick"`

	// SpatialHash: Индекс позиции -> Список сущностей
	// Ключ: Y * Width + X
	SpatialHash    map[int][]*Entity  `json:"-"`
	EntityRegistry map[string]*Entity `json:"-"`
}

// NewGameWorld создает пустую карту без стен
func NewGameWorld(width, height int) *GameWorld {
	m := make([][]Tile, height)
	for y := range m {
		m[y] = make([]Tile, width)
		for x := range m[y] {
			m[y][x] = Tile{X: x, Y: y, Env: "floor"}
		}
	}
	return &GameWorld{
		Map:            m,
		Width:          width,
		Height:         height,
		SpatialHash:    make(map[int][]*Entity),
		EntityRegistry: make(map[string]*Entity),
	}
}

func (w *GameWorld) GetIndex(x, y int) int {
	return y*w.Width + x
}

func (w *GameWorld) InBounds(p Position) bool {
	return p.X >= 0 && p.X < w.Width && p.Y >= 0 && p.Y < w.Height
}

// SetWall ставит или убирает стену
func (w *GameWorld) SetWall(p Position, wall bool) {
	if w.InBounds(p) {
		w.Map[p.Y][p.X].IsWall = wall
	}
}

func (w *GameWorld) IsWall(p Position) bool {
	return !w.InBounds(p) || w.Map[p.Y][p.X].IsWall
}

// IsOccupied - клетка не годится для анимации: за картой, стена или мебель.
// Живые существа клетку не занимают, их можно растолкать.
func (w *GameWorld) IsOccupied(p Position) bool {
	if w.IsWall(p) {
		return true
	}
	for _, e := range w.GetEntitiesAt(p.X, p.Y) {
		if e.BlocksSpace {
			return true
		}
	}
	return false
}

// IsStandable - на клетку можно поставить живое существо
func (w *GameWorld) IsStandable(p Position) bool {
	if w.IsOccupied(p) {
		return false
	}
	for _, e := range w.GetEntitiesAt(p.X, p.Y) {
		if e.IsPawn() && !e.IsDead {
			return false
		}
	}
	return true
}

// GetEntitiesAt возвращает список сущностей в конкретной клетке (быстро!)
func (w *GameWorld) GetEntitiesAt(x, y int) []*Entity {
	if x < 0 || x >= w.Width || y < 0 || y >= w.Height {
		return nil
	}
	return w.SpatialHash[w.GetIndex(x, y)]
}

// GetEntity ищет сущность по ID
func (w *GameWorld) GetEntity(id string) *Entity {
	if w.EntityRegistry == nil {
		return nil
	}
	return w.EntityRegistry[id]
}

// Spawn регистрирует сущность и кладет её в индекс
func (w *GameWorld) Spawn(e *Entity) error {
	if !w.InBounds(e.Pos) {
		return errors.New("out of bounds")
	}
	if _, exists := w.EntityRegistry[e.ID]; exists {
		return errors.New("entity already spawned")
	}
	e.Spawned = true
	w.RegisterEntity(e)
	w.AddEntity(e)
	return nil
}

// Despawn убирает сущность из мира
func (w *GameWorld) Despawn(e *Entity) {
	w.RemoveEntity(e)
	w.UnregisterEntity(e.ID)
	e.Spawned = false
}

// RegisterEntity добавляет сущность в реестр
func (w *GameWorld) RegisterEntity(e *Entity) {
	if w.EntityRegistry == nil {
		w.EntityRegistry = make(map[string]*Entity)
	}
	w.EntityRegistry[e.ID] = e
}

// UnregisterEntity удаляет сущность из реестра
func (w *GameWorld) UnregisterEntity(id string) {
	if w.EntityRegistry != nil {
		delete(w.EntityRegistry, id)
	}
}

// AddEntity добавляет сущность в индекс
func (w *GameWorld) AddEntity(e *Entity) {
	if w.SpatialHash == nil {
		w.SpatialHash = make(map[int][]*Entity)
	}
	idx := w.GetIndex(e.Pos.X, e.Pos.Y)
	w.SpatialHash[idx] = append(w.SpatialHash[idx], e)
}

// RemoveEntity удаляет сущность из индекса
func (w *GameWorld) RemoveEntity(e *Entity) {
	idx := w.GetIndex(e.Pos.X, e.Pos.Y)
	entities := w.SpatialHash[idx]

	for i, other := range entities {
		if other.ID == e.ID {
			// Swap with last, порядок не важен
			lastIdx := len(entities) - 1
			entities[i] = entities[lastIdx]
			entities[lastIdx] = nil
			w.SpatialHash[idx] = entities[:lastIdx]
			return
		}
	}
}

// UpdateEntityPos перемещает сущность в индексе
func (w *GameWorld) UpdateEntityPos(e *Entity, newPos Position) error {
	if !w.InBounds(newPos) {
		return errors.New("out of bounds")
	}

	w.RemoveEntity(e)
	e.Pos = newPos
	w.AddEntity(e)
	return nil
}
