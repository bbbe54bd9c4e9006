package handler

type createTaskRequest struct {
	Team             string         `json:"team"         validate:"required"`
	ClientID         string         `json:"clientID"     validate:"required"`
	Client           string         `json:"client"`
	ActivityCode     string         `json:"activityCode"`
	DeliveryDate     string         `json:"deliveryDate"`
	Count            map[string]int `json:"count"`
	Minutes          map[string]int `json:"minutes"`
	Amount           map[string]int `json:"amount"`
	Description      string         `json:"description"`
	CallsDescription string         `json:"callsDescription"`
}

type updateTaskRequest struct {
	AssignedTo     *string `json:"assignedTo"`
	Status         *string `json:"status"`
	Remarks        *string `json:"remarks"`
	SubmissionLink *string `json:"submissionLink"`
}

type taskResponse struct {
	ID               string         `json:"id"`
	Team             string         `json:"team"`
	ClientID         string         `json:"clientID"`
	Client           string         `json:"client"`
	ActivityCode     string         `json:"activityCode"`
	DeliveryDate     string         `json:"deliveryDate"`
	AssignedTo       *string        `json:"assignedTo"`
	Status           string         `json:"status"`
	Remarks          string         `json:"remarks"`
	SubmissionLink   string         `json:"submissionLink"`
	Count            map[string]int `json:"count,omitempty"`
	Minutes          map[string]int `json:"minutes,omitempty"`
	Amount           map[string]int `json:"amount,omitempty"`
	Description      string         `json:"description"`
	CallsDescription string         `json:"callsDescription"`
}

// teamEfficiencyResponse is one row of the team efficiency report.
type teamEfficiencyResponse struct {
	Department       string `json:"department"`
	Total            int    `json:"total"`
	Completed        int    `json:"completed"`
	TotalMinutes     int    `json:"totalMinutes"`
	CompletedMinutes int    `json:"completedMinutes"`
	Efficiency       int    `json:"efficiency"`
}
