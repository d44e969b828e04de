package systems

import (
	"fmt"

	"advanced-melee/internal/catalog"
	"advanced-melee/internal/domain"
	"advanced-melee/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ApplyExecutionOutcome применяет итог анимации казни к цели и возвращает текст для лога.
func ApplyExecutionOutcome(attacker, target *domain.Entity, outcome catalog.Outcome, animation string) string {
	combatLogger := logger.Log.WithFields(logrus.Fields{
		"component":     "combat_system",
		"attacker_id":   attacker.ID,
		"attacker_name": attacker.Name,
		"target_id":     target.ID,
		"target_name":   target.Name,
		"animation":     animation,
		"outcome":       outcome,
	})

	// --- Проверка граничных условий ---

	if target.IsDead {
		combatLogger.Info("Execution ineffective: target is already dead.")
		return fmt.Sprintf("%s казнит труп %s.", attacker.ShortName(), target.ShortName())
	}

	var logMsg string
	switch outcome {
	case catalog.OutcomeKill:
		target.IsDead = true
		target.IsDowned = false
		logMsg = fmt.Sprintf("%s казнит %s.", attacker.ShortName(), target.ShortName())
	case catalog.OutcomeDown:
		target.IsDowned = true
		logMsg = fmt.Sprintf("%s сбивает %s с ног.", attacker.ShortName(), target.ShortName())
	default:
		logMsg = fmt.Sprintf("%s щадит %s.", attacker.ShortName(), target.ShortName())
	}

	// Мертвые больше не враждебны. Сбитый с ног враг остается врагом.
	if target.IsDead {
		target.IsHostile = false
	}

	combatLogger.WithFields(logrus.Fields{
		"target_died":   target.IsDead,
		"target_downed": target.IsDowned,
	}).Info("Execution resolved.")

	return logMsg
}
