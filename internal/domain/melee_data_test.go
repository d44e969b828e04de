package domain

import "testing"

func TestAutoOption_Cycle(t *testing.T) {
	o := AutoDefault
	seq := []AutoOption{AutoEnabled, AutoDisabled, AutoDefault}
	for _, want := range seq {
		o = o.Next()
		if o != want {
			t.Fatalf("Next() = %v, want %v", o, want)
		}
	}
}

func TestAutoOption_Resolve(t *testing.T) {
	tests := []struct {
		option   AutoOption
		fallback bool
		expected bool
	}{
		{AutoDefault, true, true},
		{AutoDefault, false, false},
		{AutoEnabled, false, true},
		{AutoDisabled, true, false},
	}
	for _, tt := range tests {
		if got := tt.option.Resolve(tt.fallback); got != tt.expected {
			t.Errorf("%v.Resolve(%v) = %v, want %v", tt.option, tt.fallback, got, tt.expected)
		}
	}
}

func TestMeleeData_Cooldowns(t *testing.T) {
	d := NewMeleeData("hero", 10, 4)
	if !d.IsExecutionOffCooldown(10) || !d.IsGrappleOffCooldown(4) {
		t.Fatal("Fresh data should be off cooldown")
	}
	if d.ShouldSave(10, 4) {
		t.Error("Default data should not be saved")
	}

	d.TimeSinceExecuted = 0
	if d.IsExecutionOffCooldown(10) {
		t.Error("Expected execution on cooldown")
	}
	if !d.ShouldSave(10, 4) {
		t.Error("Data with active cooldown should be saved")
	}

	for i := 0; i < 5; i++ {
		d.Tick()
	}
	if pct := d.ExecuteCooldownPct(10); pct != 0.5 {
		t.Errorf("ExecuteCooldownPct = %v, want 0.5", pct)
	}

	for i := 0; i < 5; i++ {
		d.Tick()
	}
	if !d.IsExecutionOffCooldown(10) {
		t.Error("Expected execution off cooldown after 10 ticks")
	}
	if pct := d.ExecuteCooldownPct(10); pct != 1 {
		t.Errorf("ExecuteCooldownPct = %v, want 1", pct)
	}
}

func TestMeleeData_ShouldSaveOptions(t *testing.T) {
	d := NewMeleeData("hero", 10, 10)
	d.AutoGrapple = AutoDisabled
	if !d.ShouldSave(10, 10) {
		t.Error("Non-default option should be saved")
	}
	d.ActorID = ""
	if d.ShouldSave(10, 10) {
		t.Error("Data without actor should never be saved")
	}
}
