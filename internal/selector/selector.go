// Package selector выбирает анимацию, для которой вокруг актора хватает места.
package selector

import (
	"advanced-melee/internal/catalog"
	"advanced-melee/internal/occupancy"
	"advanced-melee/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Outcome - итог одной попытки выбора
type Outcome uint8

const (
	OutcomePoolEmpty Outcome = iota
	OutcomeSuccess
	OutcomeNoFit
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "Success"
	case OutcomeNoFit:
		return "NoFit"
	default:
		return "PoolEmpty"
	}
}

// Rand - источник случайности. *rand.Rand подходит.
type Rand interface {
	Float64() float64
}

// Result - результат SelectFittingCandidate
type Result struct {
	Outcome   Outcome
	Candidate *catalog.Candidate // только для OutcomeSuccess
	Mirrored  bool

	// Excluded - кандидаты, вытянутые за попытку, в порядке вытягивания.
	// Последний в списке - выбранный при успехе.
	Excluded []*catalog.Candidate
}

// Draws - сколько раз тянули кандидата
func (r Result) Draws() int {
	return len(r.Excluded)
}

func (r Result) OK() bool {
	return r.Outcome == OutcomeSuccess
}

// Options - настройки селектора
type Options struct {
	// DistinctNoFit: если кандидаты были, но ни один не влез, вернуть NoFit
	// вместо PoolEmpty.
	DistinctNoFit bool
}

// Selector хранит источник случайности и настройки
type Selector struct {
	rng  Rand
	opts Options
}

func New(rng Rand, opts Options) *Selector {
	return &Selector{rng: rng, opts: opts}
}

// Select - см. SelectFittingCandidate; учитывает Options.
func (s *Selector) Select(pool catalog.Pool, occupied occupancy.Mask, mirrored bool) Result {
	res := SelectFittingCandidate(s.rng, pool, occupied, mirrored)
	if s.opts.DistinctNoFit && res.Outcome == OutcomePoolEmpty && res.Draws() > 0 {
		res.Outcome = OutcomeNoFit
	}
	return res
}

// SelectFittingCandidate тянет кандидатов по весу без возвращения, пока
// требование к месту не перестанет пересекаться с занятыми клетками.
// Пул пуст, все веса нулевые или ни один кандидат не влез - OutcomePoolEmpty.
// Не больше len(pool) вытягиваний.
func SelectFittingCandidate(rng Rand, pool catalog.Pool, occupied occupancy.Mask, mirrored bool) Result {
	res := Result{Outcome: OutcomePoolEmpty, Mirrored: mirrored}
	if len(pool) == 0 {
		return res
	}

	log := logger.Component("slot_selector").WithFields(logrus.Fields{
		"pool_size": len(pool),
		"occupied":  occupied.String(),
		"mirrored":  mirrored,
	})

	except := make(map[*catalog.Candidate]struct{}, len(pool))
	for len(except) < len(pool) {
		cand := drawWeighted(rng, pool, except)
		if cand == nil {
			break
		}

		except[cand] = struct{}{}
		res.Excluded = append(res.Excluded, cand)

		required := cand.RequiredMask(mirrored)
		if !required.Overlaps(occupied) {
			res.Outcome = OutcomeSuccess
			res.Candidate = cand
			log.WithFields(logrus.Fields{
				"candidate": cand.ID,
				"draws":     len(res.Excluded),
			}).Debug("Candidate fits")
			return res
		}

		log.WithField("candidate", cand.ID).Debugf("Candidate blocked:\n%s", occupancy.Conflicts(required, occupied))
	}

	log.WithField("draws", len(res.Excluded)).Debug("No candidate fits")
	return res
}

// drawWeighted выбирает одного из не исключенных кандидатов пропорционально весу.
// Кандидаты с нулевым весом не выбираются никогда.
func drawWeighted(rng Rand, pool catalog.Pool, except map[*catalog.Candidate]struct{}) *catalog.Candidate {
	total := 0.0
	for _, c := range pool {
		if _, skip := except[c]; skip || c.Weight <= 0 {
			continue
		}
		total += c.Weight
	}
	if total <= 0 {
		return nil
	}

	roll := rng.Float64() * total
	var last *catalog.Candidate
	for _, c := range pool {
		if _, skip := except[c]; skip || c.Weight <= 0 {
			continue
		}
		if roll < c.Weight {
			return c
		}
		roll -= c.Weight
		last = c
	}
	// Погрешность float: roll мог остаться чуть больше нуля
	return last
}
