package deal

import "context"

// Event kinds published after successful lifecycle milestones.
const (
	EventDealHired       = "deal.hired"
	EventDealDeclined    = "deal.declined"
	EventContentApproved = "content.approved"
)

// Event is an outbound notification about a deal milestone. Delivery is
// best-effort: publish failures never roll back the completed operation.
type Event struct {
	Kind              string `json:"kind"`
	ApplicationID     string `json:"application_id"`
	CampaignID        string `json:"campaign_id"`
	CreatorID         string `json:"creator_id"`
	OccurredUnixMilli int64  `json:"occurred_unix_milli"`
}

// EventPublisher delivers deal events to interested consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

func (service *Service) publishEvent(ctx context.Context, kind string, application Application) {
	if service.publisher == nil {
		return
	}
	_ = service.publisher.Publish(ctx, Event{
		Kind:              kind,
		ApplicationID:     application.ApplicationID,
		CampaignID:        application.CampaignID,
		CreatorID:         application.CreatorID,
		OccurredUnixMilli: service.nowFn(),
	})
}
