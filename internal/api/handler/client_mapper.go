package handler

import (
	"github.com/reachskyline/crm-api/internal/core/domain"
	"github.com/reachskyline/crm-api/internal/core/ports"
)

// --- Request → Service input ---

func toSlotSubmissions(slots map[string]slotRequest) map[string]domain.SlotSubmission {
	out := make(map[string]domain.SlotSubmission, len(slots))
	for name, s := range slots {
		sub := domain.SlotSubmission{
			Count:         s.Count,
			AmountMissing: s.Amount == nil,
			Min:           s.Min,
			Description:   s.Description,
		}
		if s.Amount != nil {
			sub.Amount = *s.Amount
		}
		if s.Amo != nil {
			sub.Amo = *s.Amo
		}
		out[name] = sub
	}
	return out
}

func toClientSubmission(req createClientRequest, actor string) ports.ClientSubmission {
	return ports.ClientSubmission{
		ClientName:   req.ClientName,
		Industry:     req.Industry,
		DeliveryDate: req.DeliveryDate,
		Phone:        req.Phone,
		Email:        req.Email,
		Services:     toSlotSubmissions(req.Services),
		Actor:        actor,
	}
}

func toClientPatch(req updateClientRequest) domain.ClientPatch {
	patch := domain.ClientPatch{
		ClientName:   req.ClientName,
		Industry:     req.Industry,
		DeliveryDate: req.DeliveryDate,
		Phone:        req.Phone,
		Email:        req.Email,
		IsArchived:   req.IsArchived,
	}
	if len(req.Services) > 0 {
		patch.Services = toSlotSubmissions(req.Services)
	}
	return patch
}

// --- Service result → HTTP response ---

func toClientResponse(c *domain.Client) clientResponse {
	resp := clientResponse{
		ID:            c.ID,
		ClientID:      c.ClientID,
		ClientName:    c.ClientName,
		Industry:      c.Industry,
		DeliveryDate:  c.DeliveryDate,
		Phone:         c.Phone,
		Email:         c.Email,
		TotalAmount:   c.TotalAmount,
		IsArchived:    c.IsArchived,
		ActivityCodes: c.ActivityCodes,
	}
	for _, def := range domain.Services {
		s, ok := c.Slot(def.Name)
		if !ok {
			continue
		}
		if resp.Services == nil {
			resp.Services = make(map[string]slotResponse, len(c.Services))
		}
		resp.Services[def.Name] = slotResponse{
			Count:       s.Count,
			Amount:      s.Amount,
			Min:         s.Min,
			Description: s.Description,
		}
	}
	return resp
}

func toClientListResponse(clients []*domain.Client) []clientResponse {
	out := make([]clientResponse, len(clients))
	for i, c := range clients {
		out[i] = toClientResponse(c)
	}
	return out
}

func toDeleteTaskResponse(r *ports.DeleteTaskResult) deleteTaskResponse {
	return deleteTaskResponse{
		Message: "Task deleted",
		Reconciliation: reconciliationResponse{
			Outcome:     string(r.Outcome),
			ClientID:    r.ClientID,
			Amount:      r.Amount,
			TotalAmount: r.TotalAmount,
		},
	}
}
