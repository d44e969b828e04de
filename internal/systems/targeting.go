package systems

import (
	"fmt"

	"advanced-melee/internal/domain"
)

// ValidationResult - результат проверки цели
type ValidationResult struct {
	Target  *domain.Entity
	Valid   bool
	Message string // Сообщение об ошибке, если Valid == false
}

// ValidateMeleeTarget проверяет, может ли actor казнить или притянуть target.
// Цель - живая пешка на карте, не сам актор. Животные - только если разрешено.
func ValidateMeleeTarget(actor, target *domain.Entity, animalsAllowed bool) ValidationResult {
	if target == nil || !target.IsPawn() {
		return ValidationResult{Valid: false, Message: "Цель не найдена."}
	}
	if target.ID == actor.ID {
		return ValidationResult{Valid: false, Message: "Нельзя выбрать себя целью."}
	}
	if target.IsDead || !target.Spawned {
		return ValidationResult{Valid: false, Message: fmt.Sprintf("%s уже мертв.", target.ShortName())}
	}
	if target.IsAnimal && !animalsAllowed {
		return ValidationResult{Valid: false, Message: "Казнь животных отключена в настройках."}
	}
	return ValidationResult{Target: target, Valid: true}
}
