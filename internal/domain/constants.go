package domain

// Типы сущностей
const (
	EntityTypePawn      = "PAWN"
	EntityTypeAnimal    = "ANIMAL"
	EntityTypeFurniture = "FURNITURE"
)

// Длительности задач в тиках
const (
	TicksExecution = 120
	TicksGrapple   = 40
	TicksWalkStep  = 10
)

// Значения по умолчанию
const (
	DefaultGrappleRadius = 8.0
	// Радиус поиска свободных клеток для притягивания (кольцо 3x3)
	GrappleSpotRadius = 1
)

// Типы записей лога
const (
	LogInfo   = "INFO"
	LogCombat = "COMBAT"
	LogReject = "REJECT"
	LogError  = "ERROR"
)
