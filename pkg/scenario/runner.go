package scenario

import (
	"context"
	"fmt"
	"slices"

	"github.com/Knetic/govaluate"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/pmkol/dlist/pkg/list"
)

// Report is the outcome of a successful run.
type Report struct {
	Name  string           `yaml:"name"`
	Steps int              `yaml:"steps"`
	Final []int            `yaml:"final"`
	Index *int             `yaml:"index,omitempty"`
	Slots map[string][]int `yaml:"slots,omitempty"`
}

type Runner struct {
	logger *zap.Logger
	m      *metrics
}

// NewRunner creates a Runner. reg may be nil.
func NewRunner(lg *zap.Logger, reg prometheus.Registerer) (*Runner, error) {
	if lg == nil {
		lg = zap.NewNop()
	}
	m, err := newMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics, %w", err)
	}
	return &Runner{logger: lg, m: m}, nil
}

// state is the working set of one run. Ops that change the list directly
// invalidate the cursor, so they replace it with a fresh one at the ghost.
type state struct {
	l     *list.List[int]
	cur   *list.CursorMut[int]
	slots map[string]*list.List[int]
}

type stepResult struct {
	v     int
	found bool
}

func (r *Runner) Run(ctx context.Context, cfg *Config) (*Report, error) {
	steps, err := compile(cfg)
	if err != nil {
		return nil, err
	}
	r.m.runs.Inc()

	l := list.From(cfg.Init...)
	s := &state{l: l, cur: l.CursorMut(), slots: make(map[string]*list.List[int])}
	lg := r.logger.With(zap.String("scenario", cfg.Name))

	for i, step := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		res := s.exec(&step)
		r.m.steps.WithLabelValues(step.Op).Inc()
		lg.Debug("step",
			zap.Int("n", i),
			zap.String("op", step.Op),
			zap.Int("result", res.v),
			zap.Bool("found", res.found),
			zap.Array("list", s.l),
		)

		if err := s.check(&step, res); err != nil {
			r.m.failures.Inc()
			return nil, fmt.Errorf("step #%d (%s): %w", i, step.Op, err)
		}
	}

	rp := &Report{
		Name:  cfg.Name,
		Steps: len(steps),
		Final: s.l.ToSlice(),
	}
	if idx, ok := s.cur.Index(); ok {
		rp.Index = &idx
	}
	for name, sl := range s.slots {
		if rp.Slots == nil {
			rp.Slots = make(map[string][]int)
		}
		rp.Slots[name] = sl.ToSlice()
	}
	lg.Info("scenario finished", zap.Int("steps", rp.Steps), zap.Array("final", s.l))
	return rp, nil
}

func (s *state) resetCursor() {
	s.cur = s.l.CursorMut()
}

func valueOf(p *int) stepResult {
	if p == nil {
		return stepResult{}
	}
	return stepResult{v: *p, found: true}
}

func (s *state) exec(step *compiledStep) stepResult {
	switch step.Op {
	case OpPushFront:
		s.l.PushFront(step.Value)
		s.resetCursor()
	case OpPushBack:
		s.l.PushBack(step.Value)
		s.resetCursor()
	case OpPopFront:
		v, ok := s.l.PopFront()
		s.resetCursor()
		return stepResult{v: v, found: ok}
	case OpPopBack:
		v, ok := s.l.PopBack()
		s.resetCursor()
		return stepResult{v: v, found: ok}
	case OpFront:
		v, ok := s.l.Front()
		return stepResult{v: v, found: ok}
	case OpBack:
		v, ok := s.l.Back()
		return stepResult{v: v, found: ok}
	case OpClear:
		s.l.Clear()
		s.resetCursor()
	case OpAppend:
		s.l.Append(step.Values...)
		s.resetCursor()
	case OpResetCursor:
		s.resetCursor()
	case OpMoveNext:
		s.cur.MoveNext()
		return valueOf(s.cur.Current())
	case OpMovePrev:
		s.cur.MovePrev()
		return valueOf(s.cur.Current())
	case OpCurrent:
		return valueOf(s.cur.Current())
	case OpSetCurrent:
		p := s.cur.Current()
		if p == nil {
			return stepResult{}
		}
		*p = step.Value
		return stepResult{v: *p, found: true}
	case OpPeekNext:
		return valueOf(s.cur.PeekNext())
	case OpPeekPrev:
		return valueOf(s.cur.PeekPrev())
	case OpSplitBefore:
		out := s.cur.SplitBefore()
		s.slots[step.Slot] = out
		return stepResult{v: out.Len(), found: true}
	case OpSplitAfter:
		out := s.cur.SplitAfter()
		s.slots[step.Slot] = out
		return stepResult{v: out.Len(), found: true}
	case OpSpliceBefore, OpSpliceAfter:
		in, found := s.slots[step.Slot]
		if !found {
			return stepResult{}
		}
		delete(s.slots, step.Slot)
		n := in.Len()
		if step.Op == OpSpliceBefore {
			s.cur.SpliceBefore(in)
		} else {
			s.cur.SpliceAfter(in)
		}
		return stepResult{v: n, found: true}
	}
	return stepResult{}
}

func (s *state) check(step *compiledStep, res stepResult) error {
	if step.Want != nil {
		if got := s.l.ToSlice(); !slices.Equal(got, step.Want) {
			return fmt.Errorf("%w: want %v, got %v", ErrExpectation, step.Want, got)
		}
	}
	if step.expr == nil {
		return nil
	}

	ok, err := step.expr.Eval(s.params(step, res))
	if err != nil {
		return fmt.Errorf("failed to evaluate %q, %w", step.Expect, err)
	}
	b, isBool := ok.(bool)
	if !isBool {
		return fmt.Errorf("expression %q returned non-bool value %v", step.Expect, ok)
	}
	if !b {
		return fmt.Errorf("%w: %s (list %v)", ErrExpectation, step.Expect, s.l)
	}
	return nil
}

// params exposes the observable state to an expect expression. govaluate
// works on float64 numbers.
func (s *state) params(step *compiledStep, res stepResult) govaluate.MapParameters {
	p := govaluate.MapParameters{
		"len":      float64(s.l.Len()),
		"is_empty": s.l.IsEmpty(),
		"front":    0.0,
		"back":     0.0,
		"index":    -1.0,
		"ghost":    true,
		"current":  0.0,
		"result":   float64(res.v),
		"found":    res.found,
		"slot_len": 0.0,
	}
	if v, ok := s.l.Front(); ok {
		p["front"] = float64(v)
	}
	if v, ok := s.l.Back(); ok {
		p["back"] = float64(v)
	}
	if idx, ok := s.cur.Index(); ok {
		p["index"] = float64(idx)
		p["ghost"] = false
		p["current"] = float64(*s.cur.Current())
	}
	if sl := s.slots[step.Slot]; sl != nil {
		p["slot_len"] = float64(sl.Len())
	}
	return p
}
