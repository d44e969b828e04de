// Package execution - решения по клику игрока: казнить цель сразу,
// притянуть лассо и казнить, дойти пешком или отказать с понятной причиной.
package execution

import (
	"errors"
	"fmt"

	"advanced-melee/internal/catalog"
	"advanced-melee/internal/dispatch"
	"advanced-melee/internal/domain"
	"advanced-melee/internal/selector"
	"advanced-melee/internal/systems"
	"advanced-melee/pkg/logger"

	"github.com/sirupsen/logrus"
)

// ErrNothingToDo - цель уже стоит там, куда ее притянули бы
var ErrNothingToDo = errors.New("target already in place")

// ExecuteOptions - модификаторы клика
type ExecuteOptions struct {
	// ForceNoLasso - не использовать лассо, даже если оно есть
	ForceNoLasso bool
	// AllowFriendly - игрок подтвердил казнь не враждебной цели
	AllowFriendly bool
}

// Controller связывает мир, каталог анимаций, селектор и диспетчер.
// Не потокобезопасен: вызывается только из игрового цикла.
type Controller struct {
	world    *domain.GameWorld
	provider catalog.Provider
	selector *selector.Selector
	registry *Registry
	settings Settings

	dispatcher *dispatch.Dispatcher
	// quiet - для авто-действий: отказы не показываются игроку
	quiet *dispatch.Dispatcher
}

func NewController(
	world *domain.GameWorld,
	provider catalog.Provider,
	rng selector.Rand,
	scheduler dispatch.Scheduler,
	messenger dispatch.Messenger,
	registry *Registry,
	settings Settings,
) *Controller {
	return &Controller{
		world:      world,
		provider:   provider,
		selector:   selector.New(rng, selector.Options{DistinctNoFit: settings.DistinctNoFit}),
		registry:   registry,
		settings:   settings,
		dispatcher: dispatch.New(scheduler, messenger),
		quiet:      dispatch.New(scheduler, nil),
	}
}

func (c *Controller) Settings() Settings {
	return c.settings
}

func (c *Controller) Registry() *Registry {
	return c.registry
}

// RequestExecution обрабатывает выбор цели казни.
// Порядок: проверки, цель уже слева/справа, поход пешком без лассо,
// перебор клеток притягивания.
func (c *Controller) RequestExecution(actor, target *domain.Entity, opts ExecuteOptions) (*dispatch.Request, error) {
	return c.requestExecution(c.dispatcher, actor, target, opts)
}

func (c *Controller) requestExecution(d *dispatch.Dispatcher, actor, target *domain.Entity, opts ExecuteOptions) (*dispatch.Request, error) {
	r := dispatch.NewRequest(actor.ID, entityID(target))
	log := logger.Component("execution").WithFields(logrus.Fields{
		"request_id": r.ID,
		"actor_id":   actor.ID,
		"target_id":  r.TargetID,
	})

	vr := systems.ValidateMeleeTarget(actor, target, c.settings.AnimalsCanBeExecuted)
	if !vr.Valid {
		return r, d.Reject(r, fmt.Errorf("%w: %s", dispatch.ErrValidationFailed, vr.Message), vr.Message)
	}

	data := c.registry.GetOrCreate(actor.ID)
	if !data.IsExecutionOffCooldown(c.settings.ExecuteCooldownTicks) {
		return r, d.Reject(r,
			fmt.Errorf("%w: execution on cooldown", dispatch.ErrValidationFailed),
			fmt.Sprintf("%s: казнь еще на перезарядке.", actor.ShortName()))
	}

	weapon := actor.MeleeWeapon()
	if weapon == nil {
		return r, d.Reject(r,
			fmt.Errorf("%w: no melee weapon", dispatch.ErrValidationFailed),
			fmt.Sprintf("%s не может казнить без оружия ближнего боя.", actor.ShortName()))
	}

	if c.settings.WarnOfFriendlyExecution && !opts.AllowFriendly && !target.IsHostile && !target.IsAnimal {
		return r, d.Reject(r,
			fmt.Errorf("%w: friendly target not confirmed", dispatch.ErrValidationFailed),
			fmt.Sprintf("%s не враждебен. Подтвердите казнь союзника.", target.ShortName()))
	}

	canGrapple := false
	if !opts.ForceNoLasso {
		canGrapple, _ = systems.CanStartGrapple(actor, data.IsGrappleOffCooldown(c.settings.GrappleCooldownTicks))
	}

	if canGrapple {
		radius := systems.GrappleRadius(actor)
		if float64(actor.Pos.DistanceSquaredTo(target.Pos)) > radius*radius {
			return r, d.Reject(r,
				fmt.Errorf("%w: target out of lasso range", dispatch.ErrValidationFailed),
				fmt.Sprintf("%s вне досягаемости лассо.", target.ShortName()))
		}
	}

	pool := c.provider.GetCandidates(actor, weapon.DefID)
	if err := r.ComputeOccupancy(c.world, actor.Pos); err != nil {
		return r, err
	}
	if len(pool) == 0 {
		return r, d.Reject(r, dispatch.ErrPoolEmpty,
			fmt.Sprintf("Нет анимаций казни для %s (%s).", weapon.Label, actor.ShortName()))
	}

	// 1. Цель уже слева или справа
	if actor.Pos.IsBeside(target.Pos) {
		mirrored := target.Pos.X < actor.Pos.X
		res, err := r.Select(c.selector, pool, mirrored)
		if err != nil {
			return r, err
		}
		if !res.OK() {
			return r, c.rejectSelection(d, r, res)
		}
		if _, err := d.DispatchSelected(r, res, dispatch.KindInstantExecution, target.Pos); err != nil {
			return r, err
		}
		data.TimeSinceExecuted = 0
		log.WithField("animation", res.Candidate.ID).Info("Instant execution started")
		return r, nil
	}

	// 2. Лассо нет или нельзя: идем пешком
	if !canGrapple {
		if _, err := d.DispatchDirect(r, dispatch.KindWalkToExecution, target.Pos); err != nil {
			return r, err
		}
		log.Info("Walking to execution")
		return r, nil
	}

	// 3. Перебираем клетки, куда притянуть цель
	var last selector.Result
	lastReason := ""
	for _, cell := range systems.IdealGrappleSpots(c.world, actor, target, true) {
		if ok, reason := systems.CanStartGrappleAt(c.world, actor, target, cell); !ok {
			lastReason = reason
			continue
		}

		mirrored := cell.X < actor.Pos.X
		res, err := r.Select(c.selector, pool, mirrored)
		if err != nil {
			return r, err
		}
		if !res.OK() {
			last = res
			continue
		}

		if _, err := d.DispatchSelected(r, res, dispatch.KindGrappleExecution, cell); err != nil {
			return r, err
		}
		data.TimeSinceGrappled = 0
		log.WithFields(logrus.Fields{
			"animation": res.Candidate.ID,
			"cell":      cell,
		}).Info("Grapple execution started")
		return r, nil
	}

	if r.State() == dispatch.StateCandidateSelecting {
		return r, c.rejectSelection(d, r, last)
	}
	if lastReason != "" {
		return r, d.Reject(r,
			fmt.Errorf("%w: %s", dispatch.ErrValidationFailed, lastReason),
			fmt.Sprintf("Не удалось притянуть %s: %s.", target.ShortName(), lastReason))
	}
	return r, d.Reject(r, dispatch.ErrNoSpace,
		fmt.Sprintf("Рядом с %s нет места, чтобы притянуть цель.", actor.ShortName()))
}

// rejectSelection различает "все веса нулевые" и "ничего не влезло"
func (c *Controller) rejectSelection(d *dispatch.Dispatcher, r *dispatch.Request, res selector.Result) error {
	if res.Outcome == selector.OutcomePoolEmpty && res.Draws() == 0 {
		return d.Reject(r, dispatch.ErrPoolEmpty, "Нет подходящих анимаций казни.")
	}
	return d.Reject(r, dispatch.ErrNoSpace, "Недостаточно места для казни.")
}

// RequestGrapple обрабатывает выбор цели лассо: притянуть в ближайшую
// к цели свободную клетку вокруг актора.
func (c *Controller) RequestGrapple(actor, target *domain.Entity) (*dispatch.Request, error) {
	return c.requestGrapple(c.dispatcher, actor, target)
}

func (c *Controller) requestGrapple(d *dispatch.Dispatcher, actor, target *domain.Entity) (*dispatch.Request, error) {
	r := dispatch.NewRequest(actor.ID, entityID(target))

	vr := systems.ValidateMeleeTarget(actor, target, c.settings.AnimalsCanBeExecuted)
	if !vr.Valid {
		return r, d.Reject(r, fmt.Errorf("%w: %s", dispatch.ErrValidationFailed, vr.Message), vr.Message)
	}

	data := c.registry.GetOrCreate(actor.ID)
	if ok, reason := systems.CanStartGrapple(actor, data.IsGrappleOffCooldown(c.settings.GrappleCooldownTicks)); !ok {
		return r, d.Reject(r,
			fmt.Errorf("%w: %s", dispatch.ErrValidationFailed, reason),
			fmt.Sprintf("%s не может притянуть %s: %s.", actor.ShortName(), target.ShortName(), reason))
	}

	lastReason := ""
	for _, cell := range systems.IdealGrappleSpots(c.world, actor, target, false) {
		if cell == target.Pos {
			return r, d.Reject(r, ErrNothingToDo, "")
		}
		if ok, reason := systems.CanStartGrappleAt(c.world, actor, target, cell); !ok {
			lastReason = reason
			continue
		}

		if _, err := d.DispatchDirect(r, dispatch.KindGrapple, cell); err != nil {
			return r, err
		}
		data.TimeSinceGrappled = 0
		logger.Component("execution").WithFields(logrus.Fields{
			"request_id": r.ID,
			"actor_id":   actor.ID,
			"target_id":  target.ID,
			"cell":       cell,
		}).Info("Grapple started")
		return r, nil
	}

	if lastReason == "" {
		lastReason = "вокруг нет свободных клеток"
	}
	return r, d.Reject(r,
		fmt.Errorf("%w: %s", dispatch.ErrNoSpace, lastReason),
		fmt.Sprintf("%s не может притянуть %s: %s.", actor.ShortName(), target.ShortName(), lastReason))
}

// AutoAct - авто-казнь и авто-лассо для свободного актора.
// Выбирает ближайшую враждебную цель. Отказы молчаливые.
func (c *Controller) AutoAct(actor *domain.Entity, candidates []*domain.Entity) bool {
	if actor.IsDead || actor.IsDowned || actor.MeleeWeapon() == nil {
		return false
	}
	data := c.registry.GetOrCreate(actor.ID)
	autoExecute := data.AutoExecute.Resolve(c.settings.AutoExecute)
	autoGrapple := data.AutoGrapple.Resolve(c.settings.AutoGrapple)
	if !autoExecute && !autoGrapple {
		return false
	}

	target := nearestHostile(actor, candidates, c.settings.AnimalsCanBeExecuted)
	if target == nil {
		return false
	}

	if autoExecute && actor.Pos.IsBeside(target.Pos) {
		r, err := c.requestExecution(c.quiet, actor, target, ExecuteOptions{ForceNoLasso: true})
		return err == nil && r.State() == dispatch.StateDispatched
	}
	if autoExecute && autoGrapple && actor.Lasso != nil && data.IsGrappleOffCooldown(c.settings.GrappleCooldownTicks) {
		r, err := c.requestExecution(c.quiet, actor, target, ExecuteOptions{})
		if err == nil && r.State() == dispatch.StateDispatched {
			return true
		}
	}
	if autoGrapple && !actor.Pos.IsAdjacent(target.Pos) {
		r, err := c.requestGrapple(c.quiet, actor, target)
		return err == nil && r.State() == dispatch.StateDispatched
	}
	return false
}

func nearestHostile(actor *domain.Entity, candidates []*domain.Entity, animalsAllowed bool) *domain.Entity {
	var best *domain.Entity
	bestDist := 0
	for _, e := range candidates {
		if !e.IsHostile || !systems.ValidateMeleeTarget(actor, e, animalsAllowed).Valid {
			continue
		}
		d := actor.Pos.DistanceSquaredTo(e.Pos)
		if best == nil || d < bestDist {
			best, bestDist = e, d
		}
	}
	return best
}

func entityID(e *domain.Entity) string {
	if e == nil {
		return ""
	}
	return e.ID
}
