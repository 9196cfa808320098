package expense

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func Test_OnAddDays_ShouldCrossMonthBoundary(t *testing.T) {
	assert.Equal(t, Day("2026-10-01"), Day("2026-10-07").AddDays(-6))
	assert.Equal(t, Day("2026-09-30"), Day("2026-10-01").AddDays(-1))
	assert.Equal(t, Day("2027-01-01"), Day("2026-12-31").AddDays(1))
}

func Test_OnWithin_ShouldIncludeBothEnds(t *testing.T) {
	assert.True(t, Day("2026-10-13").Within("2026-10-13", "2026-10-19"))
	assert.True(t, Day("2026-10-19").Within("2026-10-13", "2026-10-19"))
	assert.False(t, Day("2026-10-12").Within("2026-10-13", "2026-10-19"))
}

func Test_OnClone_ShouldNotShareBuckets(t *testing.T) {
	s := NewState()
	s[1] = Days{"2026-10-19": NewBucket(decimal.NewFromInt(60))}

	cp := s.Clone()
	cp[1]["2026-10-19"].Expenses = append(cp[1]["2026-10-19"].Expenses, Expense{Amount: decimal.NewFromInt(5)})
	cp[1]["2026-10-19"].Balance = decimal.NewFromInt(55)

	assert.Empty(t, s[1]["2026-10-19"].Expenses)
	assert.True(t, s[1]["2026-10-19"].Balance.Equal(decimal.NewFromInt(60)))
}
