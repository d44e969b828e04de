package execution

// Settings - общие настройки ближнего боя.
// Передаются явно, глобальных переключателей нет.
type Settings struct {
	AutoExecute             bool `env:"MELEE_AUTO_EXECUTE" envDefault:"true"`
	AutoGrapple             bool `env:"MELEE_AUTO_GRAPPLE" envDefault:"true"`
	AnimalsCanBeExecuted    bool `env:"MELEE_ANIMALS_CAN_BE_EXECUTED" envDefault:"false"`
	WarnOfFriendlyExecution bool `env:"MELEE_WARN_FRIENDLY_EXECUTION" envDefault:"true"`

	// Кулдауны в тиках
	ExecuteCooldownTicks int `env:"MELEE_EXECUTE_COOLDOWN_TICKS" envDefault:"600"`
	GrappleCooldownTicks int `env:"MELEE_GRAPPLE_COOLDOWN_TICKS" envDefault:"300"`

	// DistinctNoFit - различать "нет анимаций" и "нет места" уже в селекторе
	DistinctNoFit bool `env:"MELEE_DISTINCT_NO_FIT" envDefault:"true"`
}

// DefaultSettings совпадает с envDefault
func DefaultSettings() Settings {
	return Settings{
		AutoExecute:             true,
		AutoGrapple:             true,
		AnimalsCanBeExecuted:    false,
		WarnOfFriendlyExecution: true,
		ExecuteCooldownTicks:    600,
		GrappleCooldownTicks:    300,
		DistinctNoFit:           true,
	}
}
