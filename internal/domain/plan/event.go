package plan

import "time"

type EventType string

const (
	EventPlanCreated EventType = "plan.created"
	EventPlanUpdated EventType = "plan.updated"
	EventPlanRetired EventType = "plan.retired"
)

// Event announces a committed change to a plan. TagsAdded and TagsRemoved
// are set only when the change touched the plan's tags.
type Event struct {
	Type        EventType `json:"type"`
	PlanID      string    `json:"planId"`
	MerchantID  string    `json:"merchantId"`
	ActorID     string    `json:"actorId"`
	TagsAdded   []string  `json:"tagsAdded,omitempty"`
	TagsRemoved []string  `json:"tagsRemoved,omitempty"`
	OccurredAt  time.Time `json:"occurredAt"`
}

func NewEvent(t EventType, p *RentalPlan, actorID string) Event {
	return Event{
		Type:       t,
		PlanID:     p.ID(),
		MerchantID: p.MerchantID(),
		ActorID:    actorID,
		OccurredAt: time.Now(),
	}
}
