package flow

import (
	"github.com/shopspring/decimal"
	"max.ks1230/expense-bot/internal/entity/expense"
	"max.ks1230/expense-bot/internal/utils"
)

type Stage int

const (
	StageCategory Stage = iota + 1
	StageAmount
	StageComment
)

func (s Stage) String() string {
	switch s {
	case StageCategory:
		return "awaiting-category"
	case StageAmount:
		return "awaiting-amount"
	case StageComment:
		return "awaiting-comment"
	}
	return "unknown"
}

// State is one of AwaitingCategory, AwaitingAmount or AwaitingComment.
// Each holds only the data collected so far.
type State interface {
	Stage() Stage
}

type AwaitingCategory struct{}

type AwaitingAmount struct {
	Category string
}

type AwaitingComment struct {
	Category string
	Amount   decimal.Decimal
}

func (AwaitingCategory) Stage() Stage { return StageCategory }
func (AwaitingAmount) Stage() Stage   { return StageAmount }
func (AwaitingComment) Stage() Stage  { return StageComment }

type Event interface {
	isEvent()
}

type CategorySelected struct {
	Category string
}

type AmountSubmitted struct {
	Text string
}

type CommentSubmitted struct {
	Text string
}

type CommentSkipped struct{}

type Cancelled struct{}

func (CategorySelected) isEvent() {}
func (AmountSubmitted) isEvent()  {}
func (CommentSubmitted) isEvent() {}
func (CommentSkipped) isEvent()   {}
func (Cancelled) isEvent()        {}

type EffectKind int

const (
	PromptCategory EffectKind = iota + 1
	PromptAmount
	PromptComment
	Commit
	Cancel
)

// Effect tells the caller what to do after a step. Err is set when the
// input was rejected and the same prompt has to be shown again.
type Effect struct {
	Kind  EffectKind
	Err   error
	Draft expense.Draft
}

type Machine struct {
	categories []string
}

func NewMachine(categories []string) *Machine {
	return &Machine{categories: append([]string(nil), categories...)}
}

func (m *Machine) Categories() []string {
	return append([]string(nil), m.categories...)
}

func (m *Machine) Start() (State, Effect) {
	return AwaitingCategory{}, Effect{Kind: PromptCategory}
}

// Step is pure: a nil State means the flow reached Committed or Cancelled.
func (m *Machine) Step(state State, ev Event) (State, Effect) {
	if _, ok := ev.(Cancelled); ok {
		return nil, Effect{Kind: Cancel}
	}

	switch st := state.(type) {
	case AwaitingCategory:
		sel, ok := ev.(CategorySelected)
		if !ok || !utils.Contains(m.categories, sel.Category) {
			return st, Effect{Kind: PromptCategory}
		}
		return AwaitingAmount{Category: sel.Category}, Effect{Kind: PromptAmount}

	case AwaitingAmount:
		sub, ok := ev.(AmountSubmitted)
		if !ok {
			return st, Effect{Kind: PromptAmount}
		}
		amount, err := ParseAmount(sub.Text)
		if err != nil {
			return st, Effect{Kind: PromptAmount, Err: err}
		}
		return AwaitingComment{Category: st.Category, Amount: amount}, Effect{Kind: PromptComment}

	case AwaitingComment:
		var comment string
		switch e := ev.(type) {
		case CommentSubmitted:
			comment = e.Text
		case CommentSkipped:
		default:
			return st, Effect{Kind: PromptComment}
		}
		return nil, Effect{
			Kind: Commit,
			Draft: expense.Draft{
				Category: st.Category,
				Amount:   st.Amount,
				Comment:  comment,
			},
		}
	}

	return m.Start()
}
