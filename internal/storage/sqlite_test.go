package storage

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"advanced-melee/internal/domain"
	"advanced-melee/pkg/api"
	"advanced-melee/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "melee.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestMeleeData_SaveLoad(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := []*domain.MeleeData{
		{ActorID: "hero", AutoExecute: domain.AutoDisabled, TimeSinceExecuted: 12, TimeSinceGrappled: 300},
		{ActorID: "archer", AutoGrapple: domain.AutoEnabled, TimeSinceExecuted: 600, TimeSinceGrappled: 40},
	}
	if err := s.SaveMeleeData(ctx, first); err != nil {
		t.Fatalf("SaveMeleeData: %v", err)
	}

	got, err := s.LoadMeleeData(ctx)
	if err != nil {
		t.Fatalf("LoadMeleeData: %v", err)
	}
	if len(got) != 2 || got[0].ActorID != "archer" || !reflect.DeepEqual(*got[1], *first[0]) {
		t.Fatalf("Unexpected data: %+v %+v", got[0], got[1])
	}

	// Повторное сохранение заменяет старые записи
	if err := s.SaveMeleeData(ctx, first[:1]); err != nil {
		t.Fatal(err)
	}
	got, _ = s.LoadMeleeData(ctx)
	if len(got) != 1 || got[0].ActorID != "hero" {
		t.Errorf("Expected only hero after resave, got %d entries", len(got))
	}
}

func TestMissingMods_Aggregate(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	clock := time.UnixMilli(1_700_000_000_000)
	s.now = func() time.Time { return clock }

	err := s.SaveMissingMods(ctx, []api.MissingModRequest{
		{ModID: "swords.expanded", ModName: "Swords", WeaponDefs: []string{"katana"}},
		{ModID: "axes", ModName: "Axes"},
	})
	if err != nil {
		t.Fatalf("SaveMissingMods: %v", err)
	}

	clock = clock.Add(time.Minute)
	err = s.SaveMissingMods(ctx, []api.MissingModRequest{
		{ModID: "swords.expanded", ModName: "Swords Expanded", WeaponDefs: []string{"katana", "wakizashi"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	reports, err := s.MissingMods(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 2 {
		t.Fatalf("Expected 2 reports, got %d", len(reports))
	}

	top := reports[0]
	if top.ModID != "swords.expanded" || top.Count != 2 || top.ModName != "Swords Expanded" {
		t.Errorf("Unexpected top report: %+v", top)
	}
	if !reflect.DeepEqual(top.WeaponDefs, []string{"katana", "wakizashi"}) {
		t.Errorf("WeaponDefs = %v", top.WeaponDefs)
	}
	if !top.LastReported.After(top.FirstSeen) {
		t.Error("LastReported must move forward")
	}
	if reports[1].WeaponDefs != nil {
		t.Errorf("Expected no weapon defs, got %v", reports[1].WeaponDefs)
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Error("Expected error for empty path")
	}
}

func TestMissingMods_WeaponDefsRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	defs := []string{"Sword,Great", `Axe "Heavy"`, "Копье"}
	if err := s.SaveMissingMods(ctx, []api.MissingModRequest{{ModID: "odd", WeaponDefs: defs}}); err != nil {
		t.Fatal(err)
	}
	// Повтор с теми же defName не плодит дубликаты
	if err := s.SaveMissingMods(ctx, []api.MissingModRequest{{ModID: "odd", WeaponDefs: []string{"Sword,Great"}}}); err != nil {
		t.Fatal(err)
	}

	reports, err := s.MissingMods(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(reports) != 1 || reports[0].Count != 2 {
		t.Fatalf("Unexpected reports: %+v", reports)
	}
	if !reflect.DeepEqual(reports[0].WeaponDefs, defs) {
		t.Errorf("WeaponDefs = %q, want %q", reports[0].WeaponDefs, defs)
	}
}
