package handler

import "time"

// employeeRequest is the body of create and update. Salary is a pointer so an
// explicit 0 is distinguishable from a missing value.
type employeeRequest struct {
	Name       string   `json:"name"       validate:"required"`
	Email      string   `json:"email"      validate:"required"`
	Position   string   `json:"position"   validate:"required"`
	Department string   `json:"department" validate:"required"`
	Salary     *float64 `json:"salary"     validate:"required"`
}

func (employeeRequest) requiredMessage() string {
	return "all fields are required"
}

type employeeResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Position   string    `json:"position"`
	Department string    `json:"department"`
	Salary     float64   `json:"salary"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

type messageResponse struct {
	Message string `json:"message"`
}
