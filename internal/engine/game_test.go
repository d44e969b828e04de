package engine

import (
	"testing"

	"advanced-melee/internal/dispatch"
	"advanced-melee/internal/domain"
	"advanced-melee/internal/execution"
)

func TestGame_InstantExecution(t *testing.T) {
	g, hero, ork := setupGame(t, testConfig(), domain.Position{X: 5, Y: 5}, domain.Position{X: 6, Y: 5})

	if _, err := g.Melee.RequestExecution(hero, ork, execution.ExecuteOptions{}); err != nil {
		t.Fatalf("RequestExecution: %v", err)
	}
	if job := g.Jobs.Current("hero"); job == nil || job.Request.Kind != dispatch.KindInstantExecution {
		t.Fatalf("Expected instant execution job, got %+v", job)
	}

	tickN(g, 4)
	if ork.IsDead {
		t.Fatal("Execution finished too early")
	}

	g.Tick()
	if !ork.IsDead {
		t.Fatal("Ork should be dead after the animation")
	}
	if !hasLog(logTypes(g), domain.LogCombat) {
		t.Errorf("Expected COMBAT log, got %v", logTypes(g))
	}
	if g.Jobs.Len() != 0 {
		t.Errorf("Board must be empty, got %d jobs", g.Jobs.Len())
	}
}

func TestGame_GrappleExecution(t *testing.T) {
	g, hero, ork := setupGame(t, testConfig(), domain.Position{X: 5, Y: 5}, domain.Position{X: 9, Y: 5})
	hero.Lasso = &domain.Lasso{Label: "аркан"}

	if _, err := g.Melee.RequestExecution(hero, ork, execution.ExecuteOptions{}); err != nil {
		t.Fatalf("RequestExecution: %v", err)
	}

	tickN(g, domain.TicksGrapple)
	if ork.Pos != (domain.Position{X: 6, Y: 5}) {
		t.Fatalf("Ork should be pulled to 6,5, got %v", ork.Pos)
	}
	job := g.Jobs.Current("hero")
	if job == nil || job.Stage != 1 {
		t.Fatalf("Expected execution stage, got %+v", job)
	}
	if g.Melee.Registry().GetOrCreate("hero").TimeSinceExecuted != 0 {
		t.Error("Execution cooldown must start with the animation")
	}

	tickN(g, 5)
	if !ork.IsDead {
		t.Error("Ork should be executed after the pull")
	}
}

func TestGame_WalkToExecution(t *testing.T) {
	g, hero, ork := setupGame(t, testConfig(), domain.Position{X: 2, Y: 5}, domain.Position{X: 8, Y: 5})

	if _, err := g.Melee.RequestExecution(hero, ork, execution.ExecuteOptions{}); err != nil {
		t.Fatalf("RequestExecution: %v", err)
	}
	if job := g.Jobs.Current("hero"); job == nil || job.Request.Kind != dispatch.KindWalkToExecution {
		t.Fatalf("Expected walk job, got %+v", job)
	}

	tickN(g, domain.TicksWalkStep)
	if hero.Pos != (domain.Position{X: 3, Y: 5}) {
		t.Fatalf("Hero should make one step, got %v", hero.Pos)
	}

	tickN(g, 10*domain.TicksWalkStep)
	if hero.Pos != (domain.Position{X: 7, Y: 5}) {
		t.Errorf("Hero should stop beside the ork, got %v", hero.Pos)
	}
	if !ork.IsDead {
		t.Error("Walk should end with an execution")
	}
}

func TestGame_WalkBlocked(t *testing.T) {
	g, hero, ork := setupGame(t, testConfig(), domain.Position{X: 2, Y: 5}, domain.Position{X: 8, Y: 5})
	// Стена вокруг орка: подойти некуда
	for _, p := range []domain.Position{{X: 7, Y: 5}, {X: 9, Y: 5}} {
		g.World.SetWall(p, true)
	}

	if _, err := g.Melee.RequestExecution(hero, ork, execution.ExecuteOptions{}); err != nil {
		t.Fatalf("RequestExecution: %v", err)
	}
	tickN(g, domain.TicksWalkStep)

	if g.Jobs.Current("hero") != nil {
		t.Error("Walk must be dropped when there is no approach cell")
	}
	if !hasLog(logTypes(g), domain.LogReject) {
		t.Errorf("Expected REJECT log, got %v", logTypes(g))
	}
}

func TestGame_TargetLost(t *testing.T) {
	g, hero, ork := setupGame(t, testConfig(), domain.Position{X: 5, Y: 5}, domain.Position{X: 6, Y: 5})

	if _, err := g.Melee.RequestExecution(hero, ork, execution.ExecuteOptions{}); err != nil {
		t.Fatal(err)
	}
	g.World.Despawn(ork)
	tickN(g, 5)

	if ork.IsDead {
		t.Error("Despawned target must not be executed")
	}
	if !hasLog(logTypes(g), domain.LogInfo) {
		t.Errorf("Expected INFO log about lost target, got %v", logTypes(g))
	}
}

func TestGame_AutoAct(t *testing.T) {
	cfg := testConfig()
	cfg.AutoActInterval = 1
	g, _, ork := setupGame(t, cfg, domain.Position{X: 5, Y: 5}, domain.Position{X: 6, Y: 5})

	g.Tick()
	if job := g.Jobs.Current("hero"); job == nil || job.Request.Kind != dispatch.KindInstantExecution {
		t.Fatalf("Expected auto execution, got %+v", job)
	}

	tickN(g, 5)
	if !ork.IsDead {
		t.Error("Auto execution should kill the ork")
	}
}

func TestGame_ReportFailureLogs(t *testing.T) {
	g, hero, ork := setupGame(t, testConfig(), domain.Position{X: 5, Y: 5}, domain.Position{X: 6, Y: 5})
	hero.Weapon = nil

	if _, err := g.Melee.RequestExecution(hero, ork, execution.ExecuteOptions{}); err == nil {
		t.Fatal("Expected rejection without weapon")
	}
	if len(g.Logs) != 1 || g.Logs[0].Type != domain.LogReject || g.Logs[0].ID == "" {
		t.Errorf("Expected one REJECT log, got %+v", g.Logs)
	}
}

func TestGame_RejectVisibleOnlyToActor(t *testing.T) {
	g, hero, ork := setupGame(t, testConfig(), domain.Position{X: 5, Y: 5}, domain.Position{X: 6, Y: 5})
	ally := &domain.Entity{ID: "ally", Name: "Союзник", Type: domain.EntityTypePawn, Pos: domain.Position{X: 10, Y: 5}}
	if err := g.World.Spawn(ally); err != nil {
		t.Fatal(err)
	}
	g.Entities = append(g.Entities, ally)

	g.ReportFailure(hero.ID, "hero private reject")
	g.AddLog("общая запись", domain.LogCombat)

	heroLogs := g.BuildStateFor(hero).Logs
	if len(heroLogs) != 2 {
		t.Errorf("Hero must see both entries, got %+v", heroLogs)
	}

	allyLogs := g.BuildStateFor(ally).Logs
	if len(allyLogs) != 1 || allyLogs[0].Text != "общая запись" {
		t.Errorf("Ally must see only the shared entry, got %+v", allyLogs)
	}

	if logs := g.BuildStateFor(ork).Logs; len(logs) != 1 {
		t.Errorf("Other observers must not see the reject, got %+v", logs)
	}
}

func TestGame_DeadTargetDataNotSaved(t *testing.T) {
	g, hero, ork := setupGame(t, testConfig(), domain.Position{X: 5, Y: 5}, domain.Position{X: 6, Y: 5})
	g.Melee.Registry().GetOrCreate(ork.ID).AutoExecute = domain.AutoDisabled

	if _, err := g.Melee.RequestExecution(hero, ork, execution.ExecuteOptions{}); err != nil {
		t.Fatalf("RequestExecution: %v", err)
	}
	tickN(g, 5)
	if !ork.IsDead {
		t.Fatal("Ork should be dead")
	}

	if _, ok := g.Melee.Registry().Lookup(ork.ID); ok {
		t.Error("Dead target's melee data must be dropped")
	}
	saved := g.Melee.Registry().Saveable()
	if len(saved) != 1 || saved[0].ActorID != hero.ID {
		t.Errorf("Only the hero (on cooldown) should be saved, got %+v", saved)
	}
}
