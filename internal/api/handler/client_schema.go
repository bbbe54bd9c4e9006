package handler

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/reachskyline/crm-api/internal/core/domain"
)

// slotRequest is one service slot as sent by the dashboard. Older clients
// send the amount under "amo".
type slotRequest struct {
	Count       int     `json:"count"`
	Amount      *int    `json:"amount"`
	Amo         *int    `json:"amo"`
	Min         int     `json:"min"`
	Description *string `json:"description"`
}

// decodeSlots picks the catalogue slots out of a JSON object. Slots are
// top-level keys named after the catalogue entry; null means not sent.
func decodeSlots(data []byte) (map[string]slotRequest, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}

	slots := make(map[string]slotRequest)
	for _, def := range domain.Services {
		msg, ok := raw[def.Name]
		if !ok || bytes.Equal(bytes.TrimSpace(msg), []byte("null")) {
			continue
		}
		var s slotRequest
		if err := json.Unmarshal(msg, &s); err != nil {
			return nil, fmt.Errorf("slot %s: %w", def.Name, err)
		}
		slots[def.Name] = s
	}
	return slots, nil
}

type createClientRequest struct {
	ClientName   string `json:"clientName"   validate:"required"`
	Industry     string `json:"industry"`
	DeliveryDate string `json:"deliveryDate"`
	Phone        string `json:"phone"        validate:"required"`
	Email        string `json:"email"        validate:"omitempty,email"`

	Services map[string]slotRequest `json:"-"`
}

func (r *createClientRequest) UnmarshalJSON(data []byte) error {
	type plain createClientRequest
	if err := json.Unmarshal(data, (*plain)(r)); err != nil {
		return err
	}
	slots, err := decodeSlots(data)
	if err != nil {
		return err
	}
	r.Services = slots
	return nil
}

type updateClientRequest struct {
	ClientName   *string `json:"clientName"   validate:"omitempty,min=1"`
	Industry     *string `json:"industry"`
	DeliveryDate *string `json:"deliveryDate"`
	Phone        *string `json:"phone"        validate:"omitempty,min=1"`
	Email        *string `json:"email"        validate:"omitempty,email"`
	IsArchived   *bool   `json:"isArchived"`

	Services map[string]slotRequest `json:"-"`
}

func (r *updateClientRequest) UnmarshalJSON(data []byte) error {
	type plain updateClientRequest
	if err := json.Unmarshal(data, (*plain)(r)); err != nil {
		return err
	}
	slots, err := decodeSlots(data)
	if err != nil {
		return err
	}
	r.Services = slots
	return nil
}

type slotResponse struct {
	Count       int    `json:"count"`
	Amount      int    `json:"amount"`
	Min         int    `json:"min"`
	Description string `json:"description"`
}

// clientResponse renders slots back as top-level keys next to the scalar
// fields.
type clientResponse struct {
	ID            string            `json:"id"`
	ClientID      string            `json:"clientID"`
	ClientName    string            `json:"clientName"`
	Industry      string            `json:"industry"`
	DeliveryDate  string            `json:"deliveryDate"`
	Phone         string            `json:"phone"`
	Email         string            `json:"email"`
	TotalAmount   int               `json:"totalAmount"`
	IsArchived    bool              `json:"isArchived"`
	ActivityCodes map[string]string `json:"activityCodes,omitempty"`

	Services map[string]slotResponse `json:"-"`
}

func (r clientResponse) MarshalJSON() ([]byte, error) {
	type plain clientResponse
	base, err := json.Marshal(plain(r))
	if err != nil || len(r.Services) == 0 {
		return base, err
	}
	slots, err := json.Marshal(r.Services)
	if err != nil {
		return nil, err
	}

	out := make([]byte, 0, len(base)+len(slots))
	out = append(out, base[:len(base)-1]...)
	out = append(out, ',')
	out = append(out, slots[1:]...)
	return out, nil
}

type reconciliationResponse struct {
	Outcome     string `json:"outcome"`
	ClientID    string `json:"clientID,omitempty"`
	Amount      int    `json:"amount"`
	TotalAmount int    `json:"totalAmount"`
}

type deleteTaskResponse struct {
	Message        string                 `json:"message"`
	Reconciliation reconciliationResponse `json:"reconciliation"`
}
