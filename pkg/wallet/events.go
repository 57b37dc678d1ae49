package wallet

import "context"

// EventEscrowReleased is published after a release records a new payout.
// Idempotent replays of an already-recorded reference stay silent.
const EventEscrowReleased = "escrow.released"

// Event is an outbound notification about a wallet movement. Delivery is
// best-effort: publish failures never roll back the recorded transaction.
type Event struct {
	Kind            string `json:"kind"`
	BrandID         string `json:"brand_id"`
	CampaignID      string `json:"campaign_id"`
	TransactionID   string `json:"transaction_id"`
	AmountCents     int64  `json:"amount_cents"`
	Currency        string `json:"currency"`
	Reference       string `json:"reference"`
	OccurredUnixUTC int64  `json:"occurred_unix_utc"`
}

// EventPublisher delivers wallet events to interested consumers.
type EventPublisher interface {
	Publish(ctx context.Context, event Event) error
}

// WithEventPublisher wires a publisher notified after wallet milestones.
func WithEventPublisher(publisher EventPublisher) ServiceOption {
	return func(service *Service) {
		service.publisher = publisher
	}
}

func (service *Service) publishEvent(ctx context.Context, event Event) {
	if service.publisher == nil {
		return
	}
	event.OccurredUnixUTC = service.nowFn()
	_ = service.publisher.Publish(ctx, event)
}
