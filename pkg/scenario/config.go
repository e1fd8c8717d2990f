package scenario

import (
	"errors"
	"fmt"

	"github.com/Knetic/govaluate"
)

var (
	ErrUnknownOp   = errors.New("unknown op")
	ErrExpectation = errors.New("expectation failed")
)

// Config describes one scenario: an initial list and the steps applied to it.
type Config struct {
	Name  string `yaml:"name"`
	Init  []int  `yaml:"init"`
	Steps []Step `yaml:"steps"`
}

type Step struct {
	Op     string `yaml:"op"`
	Value  int    `yaml:"value"`
	Values []int  `yaml:"values"`

	// Slot names where split_* stores the detached list and where
	// splice_* takes its input from. Defaults to "default".
	Slot string `yaml:"slot"`

	// Expect is a boolean expression checked after the step.
	// See exprVars for the available parameters.
	Expect string `yaml:"expect"`

	// Want is the exact content of the list after the step.
	// A nil Want is not checked.
	Want []int `yaml:"want"`
}

const defaultSlot = "default"

const (
	OpPushFront    = "push_front"
	OpPushBack     = "push_back"
	OpPopFront     = "pop_front"
	OpPopBack      = "pop_back"
	OpFront        = "front"
	OpBack         = "back"
	OpClear        = "clear"
	OpAppend       = "append"
	OpMoveNext     = "move_next"
	OpMovePrev     = "move_prev"
	OpCurrent      = "current"
	OpSetCurrent   = "set_current"
	OpPeekNext     = "peek_next"
	OpPeekPrev     = "peek_prev"
	OpSplitBefore  = "split_before"
	OpSplitAfter   = "split_after"
	OpSpliceBefore = "splice_before"
	OpSpliceAfter  = "splice_after"
	OpResetCursor  = "reset_cursor"
)

var knownOps = map[string]struct{}{
	OpPushFront: {}, OpPushBack: {}, OpPopFront: {}, OpPopBack: {},
	OpFront: {}, OpBack: {}, OpClear: {}, OpAppend: {},
	OpMoveNext: {}, OpMovePrev: {}, OpCurrent: {}, OpSetCurrent: {},
	OpPeekNext: {}, OpPeekPrev: {},
	OpSplitBefore: {}, OpSplitAfter: {}, OpSpliceBefore: {}, OpSpliceAfter: {},
	OpResetCursor: {},
}

// exprVars are the parameters an Expect expression can refer to.
// Absent values (empty list, ghost cursor) read as 0.
var exprVars = map[string]struct{}{
	"len":      {},
	"is_empty": {},
	"front":    {},
	"back":     {},
	"index":    {}, // -1 at the ghost
	"ghost":    {},
	"current":  {},
	"result":   {},
	"found":    {},
	"slot_len": {},
}

type compiledStep struct {
	Step
	expr *govaluate.EvaluableExpression
}

// compile validates the ops of cfg and parses its expressions.
func compile(cfg *Config) ([]compiledStep, error) {
	steps := make([]compiledStep, 0, len(cfg.Steps))
	for i, s := range cfg.Steps {
		if _, ok := knownOps[s.Op]; !ok {
			return nil, fmt.Errorf("step #%d: %w %q", i, ErrUnknownOp, s.Op)
		}
		if len(s.Slot) == 0 {
			s.Slot = defaultSlot
		}
		cs := compiledStep{Step: s}
		if len(s.Expect) > 0 {
			expr, err := govaluate.NewEvaluableExpression(s.Expect)
			if err != nil {
				return nil, fmt.Errorf("step #%d: invalid expect expression, %w", i, err)
			}
			for _, v := range expr.Vars() {
				if _, ok := exprVars[v]; !ok {
					return nil, fmt.Errorf("step #%d: unknown parameter %s in expect expression", i, v)
				}
			}
			cs.expr = expr
		}
		steps = append(steps, cs)
	}
	return steps, nil
}
