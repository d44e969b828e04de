package domain

import "strings"

// ActionType - Внутренний числовой идентификатор действия
type ActionType uint8

const (
	ActionUnknown ActionType = iota
	ActionInit
	ActionExecute
	ActionGrapple
	ActionToggleAutoExecute
	ActionToggleAutoGrapple
	ActionWait
)

// Маппинг для конвертации JSON -> Domain
var actionStringToCmd = map[string]ActionType{
	"INIT":                ActionInit,
	"EXECUTE":             ActionExecute,
	"GRAPPLE":             ActionGrapple,
	"TOGGLE_AUTO_EXECUTE": ActionToggleAutoExecute,
	"TOGGLE_AUTO_GRAPPLE": ActionToggleAutoGrapple,
	"WAIT":                ActionWait,
}

// Маппинг для логов Domain -> String
var actionCmdToString = map[ActionType]string{
	ActionInit:              "INIT",
	ActionExecute:           "EXECUTE",
	ActionGrapple:           "GRAPPLE",
	ActionToggleAutoExecute: "TOGGLE_AUTO_EXECUTE",
	ActionToggleAutoGrapple: "TOGGLE_AUTO_GRAPPLE",
	ActionWait:              "WAIT",
}

// ParseAction конвертирует строку из JSON в ActionType
func ParseAction(s string) ActionType {
	// Делаем нечувствительным к регистру для надежности
	upper := strings.ToUpper(s)
	if val, ok := actionStringToCmd[upper]; ok {
		return val
	}
	return ActionUnknown
}

// String реализует интерфейс Stringer (для fmt.Printf)
func (a ActionType) String() string {
	if val, ok := actionCmdToString[a]; ok {
		return val
	}
	return "UNKNOWN"
}
