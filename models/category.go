package models

import "time"

const (
	CategoryIncome  = "income"
	CategoryExpense = "expense"
)

type Category struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id"`
	Name      string    `json:"name" db:"name"`
	Type      string    `json:"type" db:"type"` // Valores posibles: "income", "expense"
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

func (c *Category) IsIncome() bool {
	return c.Type == CategoryIncome
}

func (c *Category) IsExpense() bool {
	return c.Type == CategoryExpense
}
