package handler

import (
	"github.com/reachskyline/crm-api/internal/core/domain"
	"github.com/reachskyline/crm-api/internal/core/ports"
)

func toCreateTaskInput(req createTaskRequest) ports.CreateTaskInput {
	return ports.CreateTaskInput{
		Team:             req.Team,
		ClientID:         req.ClientID,
		Client:           req.Client,
		ActivityCode:     req.ActivityCode,
		DeliveryDate:     req.DeliveryDate,
		Count:            req.Count,
		Minutes:          req.Minutes,
		Amount:           req.Amount,
		Description:      req.Description,
		CallsDescription: req.CallsDescription,
	}
}

func toTaskPatch(req updateTaskRequest) domain.TaskPatch {
	return domain.TaskPatch{
		AssignedTo:     req.AssignedTo,
		Status:         req.Status,
		Remarks:        req.Remarks,
		SubmissionLink: req.SubmissionLink,
	}
}

func toTaskResponse(t *domain.Task) taskResponse {
	resp := taskResponse{
		ID:               t.ID,
		Team:             t.Team,
		ClientID:         t.ClientID,
		Client:           t.Client,
		ActivityCode:     t.ActivityCode,
		DeliveryDate:     t.DeliveryDate,
		Status:           t.Status,
		Remarks:          t.Remarks,
		SubmissionLink:   t.SubmissionLink,
		Count:            t.Count,
		Minutes:          t.Minutes,
		Amount:           t.Amount,
		Description:      t.Description,
		CallsDescription: t.CallsDescription,
	}
	if t.AssignedTo != "" {
		assigned := t.AssignedTo
		resp.AssignedTo = &assigned
	}
	return resp
}

func toTaskListResponse(tasks []*domain.Task) []taskResponse {
	out := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = toTaskResponse(t)
	}
	return out
}

func toEfficiencyResponse(totals []domain.TeamTotals) []teamEfficiencyResponse {
	out := make([]teamEfficiencyResponse, len(totals))
	for i, t := range totals {
		out[i] = teamEfficiencyResponse{
			Department:       t.Label(),
			Total:            t.TotalTasks,
			Completed:        t.CompletedTasks,
			TotalMinutes:     t.TotalMinutes,
			CompletedMinutes: t.CompletedMinutes,
			Efficiency:       t.Efficiency(),
		}
	}
	return out
}
