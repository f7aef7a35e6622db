package models

import "time"

type FinancialGoal struct {
	ID            int       `json:"id" db:"id"`
	UserID        int       `json:"user_id" db:"user_id"`
	Name          string    `json:"name" db:"name"`
	Month         time.Time `json:"month" db:"month"`
	TargetAmount  float64   `json:"target_amount" db:"target_amount"`
	CurrentAmount float64   `json:"current_amount" db:"current_amount"`
	Achieved      bool      `json:"achieved" db:"achieved"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`

	// Porcentaje alcanzado, derivado de current_amount / target_amount.
	Progress float64 `json:"progress" db:"-"`
}

func (g *FinancialGoal) RemainingAmount() float64 {
	if g.CurrentAmount >= g.TargetAmount {
		return 0
	}
	return g.TargetAmount - g.CurrentAmount
}
