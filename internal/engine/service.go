package engine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"advanced-melee/internal/catalog"
	"advanced-melee/internal/domain"
	"advanced-melee/internal/engine/handlers"
	"advanced-melee/internal/engine/handlers/actions"
	"advanced-melee/internal/execution"
	"advanced-melee/internal/network"
	"advanced-melee/pkg/api"
	"advanced-melee/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ErrNotRunning - игровой цикл остановлен или не отвечает
var ErrNotRunning = errors.New("game loop is not running")

// call - функция, которую нужно выполнить внутри игрового цикла
type call struct {
	fn   func(g *Game)
	done chan struct{}
}

// GameService владеет игрой и единственной горутиной, которая ее меняет.
// Команды, тики и внешние запросы к состоянию идут через каналы.
type GameService struct {
	Game *Game
	Hub  *network.Broadcaster

	CommandChan chan domain.InternalCommand
	calls       chan call

	cfg      Config
	handlers map[domain.ActionType]handlers.HandlerFunc
	log      *logrus.Entry
}

func NewService(cfg Config, scenario *Scenario, provider catalog.Provider, registry *execution.Registry) (*GameService, error) {
	world, entities, err := scenario.Build()
	if err != nil {
		return nil, err
	}

	s := &GameService{
		Game:        NewGame(cfg, world, entities, provider, registry),
		Hub:         network.NewBroadcaster(),
		CommandChan: make(chan domain.InternalCommand, 100),
		calls:       make(chan call),
		cfg:         cfg,
		handlers:    make(map[domain.ActionType]handlers.HandlerFunc),
		log:         logger.Component("game_service"),
	}
	s.registerHandlers()

	s.log.WithFields(logrus.Fields{
		"scenario": scenario.Name,
		"entities": len(entities),
		"seed":     cfg.Seed,
	}).Info("Game service created")
	return s, nil
}

func (s *GameService) registerHandlers() {
	s.handlers[domain.ActionInit] = handlers.WithEmptyPayload(actions.HandleInit)
	s.handlers[domain.ActionWait] = handlers.WithEmptyPayload(actions.HandleWait)
	s.handlers[domain.ActionExecute] = handlers.WithPayload(actions.HandleExecute)
	s.handlers[domain.ActionGrapple] = handlers.WithPayload(actions.HandleGrapple)
	s.handlers[domain.ActionToggleAutoExecute] = handlers.WithPayload(actions.HandleToggleAutoExecute)
	s.handlers[domain.ActionToggleAutoGrapple] = handlers.WithPayload(actions.HandleToggleAutoGrapple)
}

// ProcessCommand принимает команду от внешнего мира (WebSocket).
// Token уже проверен клиентом: это ID сущности, под которой он вошел.
func (s *GameService) ProcessCommand(externalCmd api.ClientCommand) {
	actionType := domain.ParseAction(externalCmd.Action)
	if actionType == domain.ActionUnknown {
		s.log.WithField("action", externalCmd.Action).Warn("Unknown action")
		return
	}

	select {
	case s.CommandChan <- domain.InternalCommand{
		Action:  actionType,
		Token:   externalCmd.Token,
		Payload: externalCmd.Payload,
	}:
	default:
		s.log.WithField("token", externalCmd.Token).Warn("Command queue full, command dropped")
	}
}

// Run - игровой цикл. Возвращается после отмены ctx.
func (s *GameService) Run(ctx context.Context) {
	ticker := time.NewTicker(s.cfg.TickInterval)
	defer ticker.Stop()

	s.log.WithField("tick_interval", s.cfg.TickInterval).Info("Game loop started")
	defer s.log.Info("Game loop stopped")

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-s.calls:
			c.fn(s.Game)
			close(c.done)

		case cmd := <-s.CommandChan:
			s.executeCommand(cmd)
			s.publishUpdate()

		case <-ticker.C:
			s.Game.Tick()
			s.publishUpdate()
		}
	}
}

// Do выполняет fn внутри игрового цикла и ждет завершения
func (s *GameService) Do(ctx context.Context, fn func(g *Game)) error {
	c := call{fn: fn, done: make(chan struct{})}
	select {
	case s.calls <- c:
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrNotRunning, ctx.Err())
	}
	select {
	case <-c.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrNotRunning, ctx.Err())
	}
}

// Join привязывает сессию к пешке игрока
func (s *GameService) Join(ctx context.Context, entityID string) error {
	var joinErr error
	err := s.Do(ctx, func(g *Game) {
		e := g.GetEntity(entityID)
		switch {
		case e == nil:
			joinErr = fmt.Errorf("entity %q not found", entityID)
		case e.Type != domain.EntityTypePawn || e.IsHostile:
			joinErr = fmt.Errorf("entity %q is not a controllable pawn", entityID)
		default:
			e.ControllerID = "session_" + entityID
		}
	})
	if err != nil {
		return err
	}
	return joinErr
}

// Leave освобождает пешку после отключения
func (s *GameService) Leave(ctx context.Context, entityID string) error {
	return s.Do(ctx, func(g *Game) {
		if e := g.GetEntity(entityID); e != nil {
			e.ControllerID = ""
		}
	})
}

// executeCommand выполняет хендлер и пишет логи
func (s *GameService) executeCommand(cmd domain.InternalCommand) {
	log := s.log.WithFields(logrus.Fields{
		"action": cmd.Action.String(),
		"token":  cmd.Token,
	})

	actor := s.Game.GetEntity(cmd.Token)
	if actor == nil || actor.ControllerID == "" {
		log.Warn("Command from unknown or detached actor")
		return
	}

	handler, ok := s.handlers[cmd.Action]
	if !ok {
		log.Warn("No handler for action")
		return
	}

	ctx := handlers.Context{
		Finder:   s.Game,
		World:    s.Game.World,
		Entities: s.Game.Entities,
		Actor:    actor,
		Melee:    s.Game.Melee,
		Jobs:     s.Game.Jobs,
	}

	result, err := handler(ctx, cmd.Payload)
	if err != nil {
		log.WithError(err).Info("Command rejected")
	}

	switch {
	case result.Msg == "":
	case result.MsgType == domain.LogReject:
		s.Game.ReportFailure(actor.ID, result.Msg)
	case result.MsgType == "":
		s.Game.AddLog(result.Msg, domain.LogInfo)
	default:
		s.Game.AddLog(result.Msg, result.MsgType)
	}
}

// publishUpdate рассылает состояние всем подключенным пешкам и очищает логи
func (s *GameService) publishUpdate() {
	for _, id := range s.Hub.Subscribers() {
		e := s.Game.GetEntity(id)
		if e == nil {
			continue
		}
		s.Hub.SendTo(id, *s.Game.BuildStateFor(e))
	}
	s.Game.Logs = []api.LogEntry{}
}
