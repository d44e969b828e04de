package utils

import "testing"

func TestStringToSeed(t *testing.T) {
	a := StringToSeed("hero_1")
	b := StringToSeed("hero_1")
	c := StringToSeed("hero_2")

	if a != b {
		t.Errorf("Expected stable seed, got %d and %d", a, b)
	}
	if a == c {
		t.Errorf("Expected different seeds for different ids, both %d", a)
	}
	if a < 0 {
		t.Errorf("Expected non-negative seed, got %d", a)
	}
}

func TestGenerateID(t *testing.T) {
	if GenerateID() == GenerateID() {
		t.Error("Expected unique ids")
	}
}
