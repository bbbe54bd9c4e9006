package domain

// Client is a customer of the agency together with the deliverables ordered
// for it. TotalAmount is derived from Services; change it through
// RecomputeTotal, except for the task-deletion reconciliation which adjusts
// it directly.
type Client struct {
	ID            string
	ClientID      string
	ClientName    string
	Industry      string
	DeliveryDate  string
	Phone         string
	Email         string
	TotalAmount   int
	IsArchived    bool
	Services      map[string]ServiceSlot
	ActivityCodes map[string]string
}

// Slot returns the populated slot with the given name.
func (c *Client) Slot(name string) (ServiceSlot, bool) {
	s, ok := c.Services[name]
	return s, ok
}

// SetSlot stores a slot value, allocating the map on first use.
func (c *Client) SetSlot(name string, s ServiceSlot) {
	if c.Services == nil {
		c.Services = make(map[string]ServiceSlot, len(Services))
	}
	c.Services[name] = s
}

// RemoveSlot clears a slot.
func (c *Client) RemoveSlot(name string) {
	delete(c.Services, name)
}

// RecomputeTotal sets TotalAmount to the sum of amounts over every populated
// slot and returns it.
func (c *Client) RecomputeTotal() int {
	total := 0
	for _, def := range Services {
		if s, ok := c.Services[def.Name]; ok {
			total += s.Amount
		}
	}
	c.TotalAmount = total
	return total
}

// ClientPatch is a partial edit of a client. Nil fields are left untouched.
// Services replaces the named slots; a replacement with Count <= 0 clears it.
type ClientPatch struct {
	ClientName   *string
	Industry     *string
	DeliveryDate *string
	Phone        *string
	Email        *string
	IsArchived   *bool
	Services     map[string]SlotSubmission
}

// Apply edits c in place and reports whether any slot changed.
func (p ClientPatch) Apply(c *Client) bool {
	if p.ClientName != nil {
		c.ClientName = *p.ClientName
	}
	if p.Industry != nil {
		c.Industry = *p.Industry
	}
	if p.DeliveryDate != nil {
		c.DeliveryDate = *p.DeliveryDate
	}
	if p.Phone != nil {
		c.Phone = *p.Phone
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.IsArchived != nil {
		c.IsArchived = *p.IsArchived
	}

	changed := false
	for _, def := range Services {
		sub, ok := p.Services[def.Name]
		if !ok {
			continue
		}
		changed = true
		if !sub.Selected() {
			c.RemoveSlot(def.Name)
			continue
		}
		slot := ServiceSlot{Count: sub.Count, Amount: sub.NewAmount(), Min: sub.Min}
		if sub.Description != nil {
			slot.Description = *sub.Description
		}
		c.SetSlot(def.Name, slot)
	}
	if changed {
		c.RecomputeTotal()
	}
	return changed
}
