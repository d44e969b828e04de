package dispatch

import (
	"fmt"

	"advanced-melee/internal/catalog"
	"advanced-melee/internal/domain"
	"advanced-melee/internal/occupancy"
	"advanced-melee/internal/selector"
	"advanced-melee/pkg/utils"
)

// Kind - что именно просим запланировать
type Kind uint8

const (
	KindInstantExecution Kind = iota + 1 // цель уже слева/справа
	KindGrappleExecution                 // притянуть лассо и сразу казнить
	KindGrapple                          // только притянуть
	KindWalkToExecution                  // дойти до цели и казнить
)

var kindNames = map[Kind]string{
	KindInstantExecution: "instant_execution",
	KindGrappleExecution: "grapple_execution",
	KindGrapple:          "grapple",
	KindWalkToExecution:  "walk_to_execution",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ActionRequest - готовая заявка для планировщика
type ActionRequest struct {
	ID       string
	Kind     Kind
	ActorID  string
	TargetID string

	Candidate *catalog.Candidate // nil для KindGrapple и KindWalkToExecution
	Mirrored  bool
	Outcome   catalog.Outcome

	// Cell - куда притянуть цель (KindGrapple*) или куда идти (KindWalkToExecution)
	Cell domain.Position
}

// State - шаг обработки одного запроса игрока
type State uint8

const (
	StateIdle State = iota
	StateOccupancyComputed
	StateCandidateSelecting
	StateDispatched
	StateRejected
)

var stateNames = [...]string{"Idle", "OccupancyComputed", "CandidateSelecting", "Dispatched", "Rejected"}

func (s State) String() string {
	if int(s) < len(stateNames) {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Terminal - Dispatched и Rejected
func (s State) Terminal() bool {
	return s == StateDispatched || s == StateRejected
}

// Разрешенные переходы. Idle -> Dispatched - для лассо и похода, где выбирать нечего.
var transitions = map[State][]State{
	StateIdle:               {StateOccupancyComputed, StateDispatched, StateRejected},
	StateOccupancyComputed:  {StateCandidateSelecting, StateDispatched, StateRejected},
	StateCandidateSelecting: {StateCandidateSelecting, StateDispatched, StateRejected},
}

// Request - один запрос игрока от клика до Dispatched/Rejected.
// Живет только на время обработки, не сохраняется.
type Request struct {
	ID       string
	ActorID  string
	TargetID string

	Occupied occupancy.Mask
	Selected selector.Result

	// Err - причина отказа в состоянии Rejected
	Err error

	state   State
	history []State
}

func NewRequest(actorID, targetID string) *Request {
	return &Request{
		ID:       utils.GenerateID(),
		ActorID:  actorID,
		TargetID: targetID,
		state:    StateIdle,
		history:  []State{StateIdle},
	}
}

func (r *Request) State() State {
	return r.state
}

// History - все пройденные состояния по порядку
func (r *Request) History() []State {
	out := make([]State, len(r.history))
	copy(out, r.history)
	return out
}

func (r *Request) transition(to State) error {
	for _, allowed := range transitions[r.state] {
		if allowed == to {
			r.state = to
			r.history = append(r.history, to)
			return nil
		}
	}
	return fmt.Errorf("request %s: illegal transition %s -> %s", r.ID, r.state, to)
}

// ComputeOccupancy строит маску занятости вокруг origin
func (r *Request) ComputeOccupancy(q occupancy.WorldQuery, origin domain.Position) error {
	if err := r.transition(StateOccupancyComputed); err != nil {
		return err
	}
	r.Occupied, _ = occupancy.Build(q, origin)
	return nil
}

// Select выбирает кандидата по маске запроса. Можно вызывать повторно
// (например, для каждой клетки притягивания); каждый вызов - новое множество исключений.
func (r *Request) Select(sel *selector.Selector, pool catalog.Pool, mirrored bool) (selector.Result, error) {
	if err := r.transition(StateCandidateSelecting); err != nil {
		return selector.Result{}, err
	}
	r.Selected = sel.Select(pool, r.Occupied, mirrored)
	return r.Selected, nil
}
