package engine

import (
	"container/heap"

	"advanced-melee/internal/dispatch"
	"advanced-melee/internal/domain"
	"advanced-melee/pkg/logger"

	"github.com/sirupsen/logrus"
)

// JobBoard - планировщик действий. Один актор - одно действие,
// одна цель - один исполнитель.
type JobBoard struct {
	clock func() int

	queue    JobQueue
	byActor  map[string]*Job
	byTarget map[string]string // targetID -> actorID
	seq      uint64
}

func NewJobBoard(clock func() int) *JobBoard {
	return &JobBoard{
		clock:    clock,
		queue:    make(JobQueue, 0),
		byActor:  make(map[string]*Job),
		byTarget: make(map[string]string),
	}
}

// Schedule принимает заявку, если актор свободен и цель никем не занята
func (b *JobBoard) Schedule(req dispatch.ActionRequest) bool {
	log := logger.Component("job_board").WithFields(logrus.Fields{
		"action_id": req.ID,
		"kind":      req.Kind.String(),
		"actor_id":  req.ActorID,
		"target_id": req.TargetID,
	})

	if req.ActorID == "" {
		log.Warn("Job without actor rejected")
		return false
	}
	if _, busy := b.byActor[req.ActorID]; busy {
		log.Info("Actor already busy")
		return false
	}
	if owner, taken := b.byTarget[req.TargetID]; taken && req.TargetID != "" && owner != req.ActorID {
		log.WithField("owner_id", owner).Info("Target already taken")
		return false
	}

	job := &Job{Request: req, Due: b.clock() + initialDuration(req)}
	b.push(job)
	log.WithField("due", job.Due).Debug("Job scheduled")
	return true
}

func initialDuration(req dispatch.ActionRequest) int {
	switch req.Kind {
	case dispatch.KindInstantExecution:
		return executionDuration(req)
	case dispatch.KindGrapple, dispatch.KindGrappleExecution:
		return domain.TicksGrapple
	case dispatch.KindWalkToExecution:
		return domain.TicksWalkStep
	}
	return 1
}

func executionDuration(req dispatch.ActionRequest) int {
	if req.Candidate != nil && req.Candidate.DurationTicks > 0 {
		return req.Candidate.DurationTicks
	}
	return domain.TicksExecution
}

func (b *JobBoard) push(job *Job) {
	b.seq++
	job.seq = b.seq
	heap.Push(&b.queue, job)
	b.byActor[job.Request.ActorID] = job
	if job.Request.TargetID != "" {
		b.byTarget[job.Request.TargetID] = job.Request.ActorID
	}
}

func (b *JobBoard) forget(job *Job) {
	delete(b.byActor, job.Request.ActorID)
	if owner, ok := b.byTarget[job.Request.TargetID]; ok && owner == job.Request.ActorID {
		delete(b.byTarget, job.Request.TargetID)
	}
}

// PopDue снимает с доски одно действие, срок которого наступил, или nil
func (b *JobBoard) PopDue(now int) *Job {
	if len(b.queue) == 0 || b.queue[0].Due > now {
		return nil
	}
	job := heap.Pop(&b.queue).(*Job)
	b.forget(job)
	return job
}

// Requeue возвращает снятое действие на доску с новым сроком
func (b *JobBoard) Requeue(job *Job, due int) bool {
	if _, busy := b.byActor[job.Request.ActorID]; busy {
		return false
	}
	job.Due = due
	b.push(job)
	return true
}

// Current - текущее действие актора или nil
func (b *JobBoard) Current(actorID string) *Job {
	return b.byActor[actorID]
}

// Cancel отменяет действие актора
func (b *JobBoard) Cancel(actorID string) bool {
	job, ok := b.byActor[actorID]
	if !ok {
		return false
	}
	heap.Remove(&b.queue, job.index)
	b.forget(job)
	logger.Component("job_board").WithFields(logrus.Fields{
		"action_id": job.Request.ID,
		"actor_id":  actorID,
	}).Info("Job cancelled")
	return true
}

// CancelInvolving отменяет действия, где сущность актор или цель
func (b *JobBoard) CancelInvolving(entityID string) int {
	n := 0
	if b.Cancel(entityID) {
		n++
	}
	if owner, ok := b.byTarget[entityID]; ok && b.Cancel(owner) {
		n++
	}
	return n
}

func (b *JobBoard) Len() int {
	return len(b.queue)
}

// Jobs - копия очереди для отладки, в порядке кучи
func (b *JobBoard) Jobs() []Job {
	out := make([]Job, 0, len(b.queue))
	for _, j := range b.queue {
		out = append(out, *j)
	}
	return out
}
