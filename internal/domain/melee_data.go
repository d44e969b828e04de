package domain

import "fmt"

// AutoOption - настройка автоматического поведения для одного актора.
// Default означает "как в общих настройках".
type AutoOption uint8

const (
	AutoDefault AutoOption = iota
	AutoEnabled
	AutoDisabled

	autoOptionCount
)

var autoOptionNames = [...]string{"Default", "Enabled", "Disabled"}

func (o AutoOption) String() string {
	if int(o) < len(autoOptionNames) {
		return autoOptionNames[o]
	}
	return fmt.Sprintf("AutoOption(%d)", uint8(o))
}

// Next циклически переключает Default -> Enabled -> Disabled -> Default
func (o AutoOption) Next() AutoOption {
	return (o + 1) % autoOptionCount
}

// Resolve подставляет значение из общих настроек для Default
func (o AutoOption) Resolve(fallback bool) bool {
	switch o {
	case AutoEnabled:
		return true
	case AutoDisabled:
		return false
	default:
		return fallback
	}
}

// MeleeData - сохраняемое состояние ближнего боя одного актора
type MeleeData struct {
	ActorID string `json:"actorId"`

	AutoExecute AutoOption `json:"autoExecute"`
	AutoGrapple AutoOption `json:"autoGrapple"`

	// Тики с последней казни / притягивания
	TimeSinceExecuted int `json:"timeSinceExecuted"`
	TimeSinceGrappled int `json:"timeSinceGrappled"`
}

// NewMeleeData создает данные без активных кулдаунов
func NewMeleeData(actorID string, executeCooldown, grappleCooldown int) *MeleeData {
	return &MeleeData{
		ActorID:           actorID,
		TimeSinceExecuted: executeCooldown,
		TimeSinceGrappled: grappleCooldown,
	}
}

// Tick продвигает таймеры на один тик
func (d *MeleeData) Tick() {
	d.TimeSinceExecuted++
	d.TimeSinceGrappled++
}

func (d *MeleeData) IsExecutionOffCooldown(cooldown int) bool {
	return d.TimeSinceExecuted >= cooldown
}

func (d *MeleeData) IsGrappleOffCooldown(cooldown int) bool {
	return d.TimeSinceGrappled >= cooldown
}

// ExecuteCooldownPct - доля прошедшего кулдауна в [0, 1]
func (d *MeleeData) ExecuteCooldownPct(cooldown int) float64 {
	return cooldownPct(d.TimeSinceExecuted, cooldown)
}

func (d *MeleeData) GrappleCooldownPct(cooldown int) float64 {
	return cooldownPct(d.TimeSinceGrappled, cooldown)
}

// ShouldSave - есть ли смысл писать запись в сохранение.
// Данные по умолчанию без активных кулдаунов не сохраняются.
func (d *MeleeData) ShouldSave(executeCooldown, grappleCooldown int) bool {
	if d.ActorID == "" {
		return false
	}
	return d.AutoExecute != AutoDefault ||
		d.AutoGrapple != AutoDefault ||
		!d.IsExecutionOffCooldown(executeCooldown) ||
		!d.IsGrappleOffCooldown(grappleCooldown)
}

func cooldownPct(elapsed, cooldown int) float64 {
	if cooldown <= 0 || elapsed >= cooldown {
		return 1
	}
	if elapsed <= 0 {
		return 0
	}
	return float64(elapsed) / float64(cooldown)
}
