package domain

// Employee models a staff member who can sign in. EmpID is assigned by an
// administrator and is the token subject.
type Employee struct {
	ID           string `json:"id"`
	EmpID        string `json:"empID"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Team         string `json:"team,omitempty"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `json:"is_admin"`
}

// EmployeePatch is a partial edit of an employee. Password is plain text and
// is hashed by the service before it reaches the store.
type EmployeePatch struct {
	EmpID    *string
	Name     *string
	Role     *string
	Team     *string
	Email    *string
	IsAdmin  *bool
	Password *string
}
