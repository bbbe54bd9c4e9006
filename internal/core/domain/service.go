package domain

// Service slot names as they appear on client records and submissions.
const (
	ServiceWeb      = "Web"
	ServiceSEO      = "SEO"
	ServiceCampaign = "Campaign"
	ServiceCalls    = "Calls"
	ServicePosters  = "Posters"
	ServiceReels    = "Reels"
	ServiceShorts   = "Shorts"
	ServiceLongform = "Longform"
	ServiceCarousel = "Carousel"
	ServiceEventDay = "EventDay"
	ServiceBlog     = "Blog"
)

// GenericTypeCode is used in activity codes for names outside the catalogue.
const GenericTypeCode = "GEN"

// ServiceDef describes one deliverable category a client can order.
type ServiceDef struct {
	Name string
	// TypeCode is embedded in activity codes. SEO and Shorts share "S";
	// existing records depend on it, so the collision stays.
	TypeCode string
}

// Services is the authoritative, ordered slot catalogue. Merge, total
// recomputation, activity-code generation and the wire/storage codecs all
// iterate this list instead of naming slots individually.
var Services = []ServiceDef{
	{Name: ServiceWeb, TypeCode: "W"},
	{Name: ServiceSEO, TypeCode: "S"},
	{Name: ServiceCampaign, TypeCode: "CA"},
	{Name: ServiceCalls, TypeCode: "CL"},
	{Name: ServicePosters, TypeCode: "P"},
	{Name: ServiceReels, TypeCode: "R"},
	{Name: ServiceShorts, TypeCode: "S"},
	{Name: ServiceLongform, TypeCode: "L"},
	{Name: ServiceCarousel, TypeCode: "C"},
	{Name: ServiceEventDay, TypeCode: "ED"},
	{Name: ServiceBlog, TypeCode: "B"},
}

// LookupService returns the catalogue entry for name.
func LookupService(name string) (ServiceDef, bool) {
	for _, s := range Services {
		if s.Name == name {
			return s, true
		}
	}
	return ServiceDef{}, false
}

// TypeCode returns the activity-code type for a slot name, GenericTypeCode
// when the name is not in the catalogue.
func TypeCode(name string) string {
	if s, ok := LookupService(name); ok {
		return s.TypeCode
	}
	return GenericTypeCode
}

// ServiceSlot is the ordered quantity of one deliverable on a client.
type ServiceSlot struct {
	Count       int    `json:"count"`
	Amount      int    `json:"amount"`
	Min         int    `json:"min"`
	Description string `json:"description"`
}

// SlotSubmission is one service slot as submitted by a caller. Amo carries
// the legacy "amo" field and AmountMissing is set when "amount" was not sent
// at all; Description is nil when the caller did not send one.
type SlotSubmission struct {
	Count         int
	Amount        int
	Amo           int
	AmountMissing bool
	Min           int
	Description   *string
}

// NewAmount is the amount of a slot being created: "amo" is only read when
// "amount" was not sent.
func (s SlotSubmission) NewAmount() int {
	if s.AmountMissing {
		return s.Amo
	}
	return s.Amount
}

// AddedAmount is the amount merged into an existing slot: "amo" is read when
// "amount" is absent or zero.
func (s SlotSubmission) AddedAmount() int {
	if s.Amount != 0 {
		return s.Amount
	}
	return s.Amo
}

// Selected reports whether the submission orders anything.
func (s SlotSubmission) Selected() bool {
	return s.Count > 0
}
