package domain

import "time"

// Salary bounds accepted for an employee record.
const (
	MinSalary = 0
	MaxSalary = 999_999_999
)

// Employee is the record managed through the employee endpoints.
type Employee struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Position   string    `json:"position"`
	Department string    `json:"department"`
	Salary     float64   `json:"salary"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// SalaryInRange reports whether s lies within [MinSalary, MaxSalary].
func SalaryInRange(s float64) bool {
	return s >= MinSalary && s <= MaxSalary
}
