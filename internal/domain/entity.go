package domain

// Weapon - экипированное оружие
type Weapon struct {
	DefID   string `json:"defId"` // Ключ для таблицы анимаций (knife, longsword)
	Label   string `json:"label"`
	IsMelee bool   `json:"isMelee"`
}

// Lasso - снаряжение для притягивания цели
type Lasso struct {
	Label string `json:"label"`
}

// Entity - актор симуляции (пешка, животное) или препятствие (мебель)
type Entity struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Name string `json:"name"`

	// ControllerID - ID сессии, которая управляет этой сущностью.
	// Если пусто - никем не управляется.
	ControllerID string `json:"controllerId,omitempty"`

	Pos Position `json:"pos"`

	IsDead    bool `json:"isDead"`
	IsDowned  bool `json:"isDowned"`
	IsAnimal  bool `json:"isAnimal,omitempty"`
	IsHostile bool `json:"isHostile"` // Враждебен фракции игрока
	Spawned   bool `json:"spawned"`

	// BlocksSpace - сущность занимает клетку (мебель, стена-постройка)
	BlocksSpace bool `json:"blocksSpace,omitempty"`

	Weapon *Weapon `json:"weapon,omitempty"`
	Lasso  *Lasso  `json:"lasso,omitempty"`

	// GrappleRadius - дальность лассо в клетках
	GrappleRadius float64 `json:"grappleRadius,omitempty"`
}

// IsPawn - живое существо, а не предмет или постройка
func (e *Entity) IsPawn() bool {
	return e.Type == EntityTypePawn || e.Type == EntityTypeAnimal
}

// MeleeWeapon возвращает первое оружие ближнего боя или nil
func (e *Entity) MeleeWeapon() *Weapon {
	if e.Weapon != nil && e.Weapon.IsMelee {
		return e.Weapon
	}
	return nil
}

// ShortName для сообщений игроку
func (e *Entity) ShortName() string {
	if e.Name == "" {
		return e.ID
	}
	return e.Name
}
