package handler

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type employeeResponse struct {
	ID      string  `json:"id"`
	EmpID   string  `json:"empID"`
	Name    string  `json:"name"`
	Role    string  `json:"role"`
	Team    *string `json:"team"`
	Email   string  `json:"email"`
	IsAdmin bool    `json:"is_admin"`
}

type createEmployeeRequest struct {
	EmpID    string `json:"empID"    validate:"required"`
	Name     string `json:"name"     validate:"required"`
	Role     string `json:"role"     validate:"required"`
	Team     string `json:"team"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	IsAdmin  bool   `json:"is_admin"`
}

type updateEmployeeRequest struct {
	EmpID    *string `json:"empID"    validate:"omitempty,min=1"`
	Name     *string `json:"name"`
	Role     *string `json:"role"`
	Team     *string `json:"team"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	IsAdmin  *bool   `json:"is_admin"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}
