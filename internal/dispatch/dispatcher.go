// Package dispatch превращает выбранную анимацию в заявку планировщику
// и доводит запрос игрока до Dispatched или Rejected.
package dispatch

import (
	"errors"
	"fmt"

	"advanced-melee/internal/domain"
	"advanced-melee/internal/selector"
	"advanced-melee/pkg/logger"
	"advanced-melee/pkg/utils"

	"github.com/sirupsen/logrus"
)

// Ошибки отказа. Все восстанавливаются сообщением игроку, повторов нет.
var (
	ErrPoolEmpty        = errors.New("no eligible candidates")
	ErrNoSpace          = errors.New("no space for any candidate")
	ErrSchedulingFailed = errors.New("scheduler rejected the action")
	ErrValidationFailed = errors.New("validation failed")
)

// Scheduler - исполнитель действий. Повторный вызов может запланировать
// действие дважды, поэтому Dispatcher вызывает его ровно один раз.
type Scheduler interface {
	Schedule(req ActionRequest) bool
}

// Messenger - канал сообщений игроку
type Messenger interface {
	ReportFailure(actorID, text string)
}

// Dispatcher
type Dispatcher struct {
	scheduler Scheduler
	messenger Messenger
}

func New(scheduler Scheduler, messenger Messenger) *Dispatcher {
	return &Dispatcher{scheduler: scheduler, messenger: messenger}
}

// DispatchSelected планирует выбранную анимацию.
// res должен быть успешным, иначе запрос отклоняется с ErrValidationFailed.
func (d *Dispatcher) DispatchSelected(r *Request, res selector.Result, kind Kind, cell domain.Position) (ActionRequest, error) {
	if !res.OK() || res.Candidate == nil {
		err := fmt.Errorf("%w: dispatch without a selected candidate (%s)", ErrValidationFailed, res.Outcome)
		return ActionRequest{}, d.Reject(r, err, "Не удалось выбрать анимацию.")
	}

	req := ActionRequest{
		ID:        utils.GenerateID(),
		Kind:      kind,
		ActorID:   r.ActorID,
		TargetID:  r.TargetID,
		Candidate: res.Candidate,
		Mirrored:  res.Mirrored,
		Outcome:   res.Candidate.Outcome,
		Cell:      cell,
	}
	return req, d.schedule(r, req)
}

// DispatchDirect планирует действие без выбора анимации (лассо, поход к цели)
func (d *Dispatcher) DispatchDirect(r *Request, kind Kind, cell domain.Position) (ActionRequest, error) {
	req := ActionRequest{
		ID:       utils.GenerateID(),
		Kind:     kind,
		ActorID:  r.ActorID,
		TargetID: r.TargetID,
		Cell:     cell,
	}
	return req, d.schedule(r, req)
}

func (d *Dispatcher) schedule(r *Request, req ActionRequest) error {
	log := logger.Component("dispatcher").WithFields(logrus.Fields{
		"request_id": r.ID,
		"action_id":  req.ID,
		"kind":       req.Kind.String(),
		"actor_id":   req.ActorID,
		"target_id":  req.TargetID,
		"mirrored":   req.Mirrored,
	})
	if req.Candidate != nil {
		log = log.WithField("animation", req.Candidate.ID)
	}

	if r.State().Terminal() {
		return fmt.Errorf("request %s already %s", r.ID, r.State())
	}

	if !d.scheduler.Schedule(req) {
		log.Error("Scheduler rejected the action")
		return d.Reject(r, ErrSchedulingFailed, "Не удалось начать действие.")
	}

	if err := r.transition(StateDispatched); err != nil {
		return err
	}
	log.Info("Action dispatched")
	return nil
}

// Reject переводит запрос в Rejected и сообщает игроку text.
// Возвращает err, чтобы вызывающий мог вернуть его дальше.
func (d *Dispatcher) Reject(r *Request, err error, text string) error {
	if r.State().Terminal() {
		return err
	}
	if terr := r.transition(StateRejected); terr != nil {
		return errors.Join(err, terr)
	}
	r.Err = err

	logger.Component("dispatcher").WithFields(logrus.Fields{
		"request_id": r.ID,
		"actor_id":   r.ActorID,
		"target_id":  r.TargetID,
		"reason":     err.Error(),
	}).Info("Request rejected")

	if d.messenger != nil && text != "" {
		d.messenger.ReportFailure(r.ActorID, text)
	}
	return err
}
