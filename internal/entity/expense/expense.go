package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

type Draft struct {
	Category string
	Amount   decimal.Decimal
	Comment  string
	Author   string
}

type Expense struct {
	ID        string          `json:"id"`
	UserID    int64           `json:"user_id"`
	Author    string          `json:"user"`
	Date      Day             `json:"date"`
	Category  string          `json:"category"`
	Amount    decimal.Decimal `json:"amount"`
	Comment   string          `json:"comment"`
	CreatedAt time.Time       `json:"created_at"`
}

// Bucket holds one user's allowance for one day. Balance always equals
// the daily limit minus the sum of Expenses amounts.
type Bucket struct {
	Balance  decimal.Decimal `json:"balance"`
	Expenses []Expense       `json:"expenses"`
}

func NewBucket(limit decimal.Decimal) *Bucket {
	return &Bucket{
		Balance:  limit,
		Expenses: []Expense{},
	}
}

func (b *Bucket) Spent() decimal.Decimal {
	total := decimal.Zero
	for _, exp := range b.Expenses {
		total = total.Add(exp.Amount)
	}
	return total
}

func (b *Bucket) clone() *Bucket {
	exps := make([]Expense, len(b.Expenses))
	copy(exps, b.Expenses)
	return &Bucket{Balance: b.Balance, Expenses: exps}
}

// Days maps a calendar day to the user's bucket for it.
type Days map[Day]*Bucket

// State is the whole persisted document: user id -> day -> bucket.
type State map[int64]Days

func NewState() State {
	return make(State)
}

func (s State) Clone() State {
	res := make(State, len(s))
	for userID, days := range s {
		cp := make(Days, len(days))
		for day, bucket := range days {
			if bucket != nil {
				cp[day] = bucket.clone()
			}
		}
		res[userID] = cp
	}
	return res
}
