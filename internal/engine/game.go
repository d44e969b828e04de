package engine

import (
	"fmt"
	"math/rand"
	"time"

	"advanced-melee/internal/catalog"
	"advanced-melee/internal/dispatch"
	"advanced-melee/internal/domain"
	"advanced-melee/internal/execution"
	"advanced-melee/internal/systems"
	"advanced-melee/pkg/api"
	"advanced-melee/pkg/logger"
	"advanced-melee/pkg/utils"

	"github.com/sirupsen/logrus"
)

// maxWalkSteps - после стольких шагов поход к цели бросается
const maxWalkSteps = 200

// Game - состояние симуляции. Все методы вызываются из одной горутины.
type Game struct {
	World    *domain.GameWorld
	Entities []*domain.Entity
	Jobs     *JobBoard
	Melee    *execution.Controller

	Logs []api.LogEntry

	cfg Config
	log *logrus.Entry
}

func NewGame(cfg Config, world *domain.GameWorld, entities []*domain.Entity, provider catalog.Provider, registry *execution.Registry) *Game {
	g := &Game{
		World:    world,
		Entities: entities,
		Logs:     []api.LogEntry{},
		cfg:      cfg,
		log:      logger.Component("game"),
	}
	g.Jobs = NewJobBoard(func() int { return g.World.GlobalTick })

	rng := rand.New(rand.NewSource(cfg.Seed))
	g.Melee = execution.NewController(world, provider, rng, g.Jobs, g, registry, cfg.Melee)
	return g
}

// GetEntity ищет сущность по ID
func (g *Game) GetEntity(id string) *domain.Entity {
	return g.World.GetEntity(id)
}

// ReportFailure - сообщение об отказе. Видит только сам актор.
func (g *Game) ReportFailure(actorID, text string) {
	g.addLog(actorID, text, domain.LogReject)
}

// AddLog добавляет общую запись в лог до следующей рассылки
func (g *Game) AddLog(text, logType string) {
	g.addLog("", text, logType)
}

func (g *Game) addLog(recipient, text, logType string) {
	g.Logs = append(g.Logs, api.LogEntry{
		ID:        utils.GenerateID(),
		Text:      text,
		Type:      logType,
		Timestamp: time.Now().UnixMilli(),
		Recipient: recipient,
	})
	g.log.WithFields(logrus.Fields{
		"component": "game_log",
		"log_type":  logType,
		"recipient": recipient,
		"tick":      g.World.GlobalTick,
	}).Info(text)
}

// Tick продвигает время на один тик: кулдауны, завершенные действия, авто-казни
func (g *Game) Tick() {
	g.World.GlobalTick++
	g.Melee.Registry().Tick()

	for job := g.Jobs.PopDue(g.World.GlobalTick); job != nil; job = g.Jobs.PopDue(g.World.GlobalTick) {
		g.resolve(job)
	}

	if g.cfg.AutoActInterval > 0 && g.World.GlobalTick%g.cfg.AutoActInterval == 0 {
		g.autoAct()
	}
}

// autoAct - свободные пешки игрока сами казнят и притягивают врагов
func (g *Game) autoAct() {
	for _, e := range g.Entities {
		if e.Type != domain.EntityTypePawn || e.IsHostile || e.IsDead || e.IsDowned || !e.Spawned {
			continue
		}
		if g.Jobs.Current(e.ID) != nil {
			continue
		}
		g.Melee.AutoAct(e, g.Entities)
	}
}

// resolve завершает действие, срок которого наступил
func (g *Game) resolve(job *Job) {
	req := job.Request
	log := g.log.WithFields(logrus.Fields{
		"action_id": req.ID,
		"kind":      req.Kind.String(),
		"actor_id":  req.ActorID,
		"target_id": req.TargetID,
		"stage":     job.Stage,
	})

	actor := g.GetEntity(req.ActorID)
	if actor == nil || actor.IsDead || actor.IsDowned {
		log.Info("Actor can no longer act, job dropped")
		return
	}
	target := g.GetEntity(req.TargetID)
	if target == nil || target.IsDead || !target.Spawned {
		g.AddLog(fmt.Sprintf("%s: цель потеряна.", actor.ShortName()), domain.LogInfo)
		return
	}

	switch req.Kind {
	case dispatch.KindInstantExecution:
		g.finishExecution(actor, target, req)

	case dispatch.KindGrapple:
		g.pullTarget(actor, target, req.Cell)

	case dispatch.KindGrappleExecution:
		if job.Stage == 0 {
			if !g.pullTarget(actor, target, req.Cell) {
				return
			}
			// Цель у ног, начинается казнь
			g.Melee.Registry().GetOrCreate(actor.ID).TimeSinceExecuted = 0
			job.Stage = 1
			g.Jobs.Requeue(job, g.World.GlobalTick+executionDuration(req))
			return
		}
		g.finishExecution(actor, target, req)

	case dispatch.KindWalkToExecution:
		g.walkStep(job, actor, target)

	default:
		log.Warn("Unknown job kind")
	}
}

func (g *Game) finishExecution(actor, target *domain.Entity, req dispatch.ActionRequest) {
	if !actor.Pos.IsBeside(target.Pos) {
		g.AddLog(fmt.Sprintf("%s ушел от казни.", target.ShortName()), domain.LogInfo)
		return
	}

	animation := ""
	if req.Candidate != nil {
		animation = req.Candidate.ID
	}
	msg := systems.ApplyExecutionOutcome(actor, target, req.Outcome, animation)
	g.AddLog(msg, domain.LogCombat)

	if target.IsDead {
		g.Jobs.CancelInvolving(target.ID)
		// Данные мертвых не сохраняются
		g.Melee.Registry().Forget(target.ID)
	}
}

// pullTarget тащит цель в клетку cell
func (g *Game) pullTarget(actor, target *domain.Entity, cell domain.Position) bool {
	if target.Pos == cell {
		return true
	}
	if !g.World.IsStandable(cell) {
		g.ReportFailure(actor.ID, fmt.Sprintf("%s: клетка для притягивания занята.", actor.ShortName()))
		return false
	}
	if err := g.World.UpdateEntityPos(target, cell); err != nil {
		g.log.WithError(err).WithField("target_id", target.ID).Error("Failed to move grappled target")
		return false
	}
	g.AddLog(fmt.Sprintf("%s притягивает %s.", actor.ShortName(), target.ShortName()), domain.LogCombat)
	return true
}

// walkStep - один шаг к цели. Рядом с целью поход превращается в казнь.
func (g *Game) walkStep(job *Job, actor, target *domain.Entity) {
	if actor.Pos.IsBeside(target.Pos) {
		// Союзника игрок уже подтвердил, когда отправлял в поход
		_, _ = g.Melee.RequestExecution(actor, target, execution.ExecuteOptions{ForceNoLasso: true, AllowFriendly: true})
		return
	}

	job.Stage++
	if job.Stage > maxWalkSteps {
		g.ReportFailure(actor.ID, fmt.Sprintf("%s не может дойти до %s.", actor.ShortName(), target.ShortName()))
		return
	}

	goal, ok := systems.ApproachCell(g.World, actor, target)
	if !ok {
		g.ReportFailure(actor.ID, fmt.Sprintf("Рядом с %s нет места для казни.", target.ShortName()))
		return
	}
	next, moved := systems.StepTowards(g.World, actor, goal)
	if !moved {
		g.ReportFailure(actor.ID, fmt.Sprintf("%s: путь к %s перекрыт.", actor.ShortName(), target.ShortName()))
		return
	}
	if err := g.World.UpdateEntityPos(actor, next); err != nil {
		g.log.WithError(err).WithField("actor_id", actor.ID).Error("Failed to move actor")
		return
	}
	g.Jobs.Requeue(job, g.World.GlobalTick+domain.TicksWalkStep)
}
