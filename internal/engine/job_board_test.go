package engine

import (
	"container/heap"
	"testing"

	"advanced-melee/internal/dispatch"
	"advanced-melee/internal/domain"
)

func TestJobQueue(t *testing.T) {
	q := make(JobQueue, 0)
	heap.Init(&q)

	j1 := &Job{Request: dispatch.ActionRequest{ActorID: "e1"}, Due: 10, seq: 1}
	j2 := &Job{Request: dispatch.ActionRequest{ActorID: "e2"}, Due: 5, seq: 2}
	j3 := &Job{Request: dispatch.ActionRequest{ActorID: "e3"}, Due: 10, seq: 3}

	heap.Push(&q, j1)
	heap.Push(&q, j2)
	heap.Push(&q, j3)

	if q.Len() != 3 {
		t.Errorf("Expected length 3, got %d", q.Len())
	}

	// Первым - самый ранний срок
	if first := heap.Pop(&q).(*Job); first.Request.ActorID != "e2" {
		t.Errorf("Expected e2, got %s", first.Request.ActorID)
	}
	// Равные сроки - в порядке постановки
	if second := heap.Pop(&q).(*Job); second.Request.ActorID != "e1" {
		t.Errorf("Expected e1, got %s", second.Request.ActorID)
	}
	if third := heap.Pop(&q).(*Job); third.Request.ActorID != "e3" || third.index != -1 {
		t.Errorf("Expected e3 with index -1, got %s (%d)", third.Request.ActorID, third.index)
	}
}

func TestJobBoard_Schedule(t *testing.T) {
	now := 100
	b := NewJobBoard(func() int { return now })

	grapple := dispatch.ActionRequest{ID: "a1", Kind: dispatch.KindGrapple, ActorID: "hero", TargetID: "ork"}
	if !b.Schedule(grapple) {
		t.Fatal("First job must be accepted")
	}
	if job := b.Current("hero"); job == nil || job.Due != now+domain.TicksGrapple {
		t.Fatalf("Unexpected job: %+v", job)
	}

	// Один актор - одно действие
	if b.Schedule(dispatch.ActionRequest{ID: "a2", Kind: dispatch.KindWalkToExecution, ActorID: "hero", TargetID: "goblin"}) {
		t.Error("Busy actor must be rejected")
	}
	// Одна цель - один исполнитель
	if b.Schedule(dispatch.ActionRequest{ID: "a3", Kind: dispatch.KindGrapple, ActorID: "archer", TargetID: "ork"}) {
		t.Error("Taken target must be rejected")
	}
	if b.Schedule(dispatch.ActionRequest{ID: "a4", Kind: dispatch.KindGrapple}) {
		t.Error("Job without actor must be rejected")
	}

	if b.PopDue(now) != nil {
		t.Error("Job is not due yet")
	}
	now += domain.TicksGrapple
	job := b.PopDue(now)
	if job == nil || job.Request.ID != "a1" {
		t.Fatalf("Expected a1, got %+v", job)
	}
	if b.Current("hero") != nil || b.Len() != 0 {
		t.Error("Popped job must leave the board")
	}

	// Снятое действие можно вернуть
	if !b.Requeue(job, now+5) || b.Current("hero") == nil {
		t.Error("Requeue failed")
	}
}

func TestJobBoard_Cancel(t *testing.T) {
	b := NewJobBoard(func() int { return 0 })
	b.Schedule(dispatch.ActionRequest{ID: "a1", Kind: dispatch.KindGrapple, ActorID: "hero", TargetID: "ork"})
	b.Schedule(dispatch.ActionRequest{ID: "a2", Kind: dispatch.KindWalkToExecution, ActorID: "archer", TargetID: "goblin"})

	if b.Cancel("nobody") {
		t.Error("Nothing to cancel")
	}

	// Цель погибла: действие на нее отменяется
	if n := b.CancelInvolving("ork"); n != 1 {
		t.Errorf("CancelInvolving = %d, want 1", n)
	}
	if b.Current("hero") != nil {
		t.Error("Hero job must be cancelled")
	}

	// Цель освободилась
	if !b.Schedule(dispatch.ActionRequest{ID: "a3", Kind: dispatch.KindGrapple, ActorID: "knight", TargetID: "ork"}) {
		t.Error("Freed target must be available")
	}
	if b.Len() != 2 || len(b.Jobs()) != 2 {
		t.Errorf("Expected 2 jobs, got %d", b.Len())
	}
}
