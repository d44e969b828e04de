package api

import (
	"encoding/json"
)

// --- СЕРВЕР -> КЛИЕНТ ---

// ServerResponse это корневой объект, который сервер отправляет клиенту.
// Снимок мира для конкретного клиента плюс состояние ближнего боя его актора.
type ServerResponse struct {
	// Type тип сообщения: "UPDATE" или "ERROR".
	Type string `json:"type"`

	// Tick текущее глобальное время в игре.
	Tick int `json:"tick"`

	// MyEntityID ID сущности, которой управляет данный клиент.
	MyEntityID string `json:"myEntityId,omitempty"`

	// Grid метаданные о размере всей карты.
	Grid *GridMeta `json:"grid,omitempty"`

	// Map только стены: остальная карта проходима.
	Map []TileView `json:"map,omitempty"`

	// Entities срез всех сущностей на карте.
	Entities []EntityView `json:"entities,omitempty"`

	// Melee состояние кулдаунов и авто-режимов актора клиента.
	Melee *MeleeStatusView `json:"melee,omitempty"`

	// Logs срез новых сообщений с прошлого обновления.
	Logs []LogEntry `json:"logs,omitempty"`
}

// GridMeta содержит общие размеры карты.
type GridMeta struct {
	Width  int `json:"w"`
	Height int `json:"h"`
}

// TileView DTO для одного тайла карты.
type TileView struct {
	X      int  `json:"x"`
	Y      int  `json:"y"`
	IsWall bool `json:"isWall"`
}

// EntityView это DTO для игровой сущности.
type EntityView struct {
	ID   string `json:"id"`
	Type string `json:"type"` // PAWN, ANIMAL, FURNITURE
	Name string `json:"name"`

	Pos struct {
		X int `json:"x"`
		Y int `json:"y"`
	} `json:"pos"`

	IsDead    bool `json:"isDead,omitempty"`
	IsDowned  bool `json:"isDowned,omitempty"`
	IsHostile bool `json:"isHostile,omitempty"`

	// Weapon DefID оружия ближнего боя, пусто если его нет
	Weapon   string `json:"weapon,omitempty"`
	HasLasso bool   `json:"hasLasso,omitempty"`

	// Job текущее действие сущности (grapple, instant_execution...)
	Job string `json:"job,omitempty"`
}

// MeleeStatusView - авто-режимы и кулдауны, как их показывает кнопка в интерфейсе.
type MeleeStatusView struct {
	AutoExecute         string  `json:"autoExecute"` // Default, Enabled, Disabled
	AutoGrapple         string  `json:"autoGrapple"`
	AutoExecuteResolved bool    `json:"autoExecuteResolved"`
	AutoGrappleResolved bool    `json:"autoGrappleResolved"`
	ExecuteCooldownPct  float64 `json:"executeCooldownPct"` // 1 - готово
	GrappleCooldownPct  float64 `json:"grappleCooldownPct"`
}

// LogEntry представляет одну запись в игровом логе (чате).
type LogEntry struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Type      string `json:"type"`      // INFO, COMBAT, REJECT, ERROR
	Timestamp int64  `json:"timestamp"` // Unix milliseconds

	// Recipient - ID сущности, которой адресована запись. Пусто - всем.
	Recipient string `json:"recipient,omitempty"`
}

// --- КЛИЕНТ -> СЕРВЕР ---

// ClientCommand это корневой объект для всех сообщений от клиента к серверу.
type ClientCommand struct {
	// Token ID сущности, от имени которой выполняется действие.
	// Обязателен только для первого сообщения "LOGIN".
	Token string `json:"token,omitempty"`

	// Action название действия, которое нужно выполнить.
	Action string `json:"action"`

	// Payload JSON-объект с данными для действия. Его структура зависит от Action.
	Payload json.RawMessage `json:"payload"`
}

// --- Payloads ---

// EntityPayload используется для действий, нацеленных на другую сущность (GRAPPLE).
type EntityPayload struct {
	TargetID string `json:"targetId"`
}

// ExecutePayload - выбор цели казни.
type ExecutePayload struct {
	TargetID string `json:"targetId"`

	// ForceNoLasso - не притягивать цель, идти пешком
	ForceNoLasso bool `json:"forceNoLasso,omitempty"`

	// AllowFriendly - подтверждение казни не враждебной цели
	AllowFriendly bool `json:"allowFriendly,omitempty"`
}

// TogglePayload - переключение авто-режима для группы выбранных акторов.
// Первый в списке главный. Пусто - только актор клиента.
type TogglePayload struct {
	ActorIDs []string `json:"actorIds,omitempty"`
}

// --- HTTP ---

// MissingModRequest - мод с оружием, для которого нет анимаций казни.
type MissingModRequest struct {
	ModID      string   `json:"modId"`
	ModName    string   `json:"modName"`
	WeaponDefs []string `json:"weaponDefs,omitempty"`
}
