package deal

import "fmt"

// Status is the lifecycle state of an application.
type Status string

const (
	StatusPendingCreator Status = "pending_creator"
	StatusApplicant      Status = "applicant"
	StatusShortlisted    Status = "shortlisted"
	StatusNegotiating    Status = "negotiating"
	StatusHired          Status = "hired"
	StatusCompleted      Status = "completed"
	StatusDeclined       Status = "declined"
)

// ParseStatus validates a raw status value.
func ParseStatus(raw string) (Status, error) {
	switch Status(raw) {
	case StatusPendingCreator, StatusApplicant, StatusShortlisted, StatusNegotiating, StatusHired, StatusCompleted, StatusDeclined:
		return Status(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, raw)
}

// String returns the raw status value.
func (status Status) String() string {
	return string(status)
}

// pipelineStatuses are the stages a brand may move a candidate between at
// will, forward or backward. pending_creator and declined are entered only
// through their dedicated transitions.
var pipelineStatuses = map[Status]bool{
	StatusApplicant:   true,
	StatusShortlisted: true,
	StatusNegotiating: true,
	StatusHired:       true,
	StatusCompleted:   true,
}

// InPipeline reports whether the status is a brand-managed pipeline stage.
func (status Status) InPipeline() bool {
	return pipelineStatuses[status]
}

// AcceptsDraft reports whether a content draft may be submitted while the
// deal is in this status.
func (status Status) AcceptsDraft() bool {
	return status == StatusHired || status == StatusCompleted
}

// offerTransitions are the creator responses to a brand-initiated offer.
// A creator reply while pending follows the accept edge implicitly.
var offerTransitions = map[Status]map[Status]bool{
	StatusPendingCreator: {
		StatusNegotiating: true,
		StatusDeclined:    true,
	},
}

// CanRespondToOffer reports whether the offer transition from->to is defined.
func CanRespondToOffer(from Status, to Status) bool {
	return offerTransitions[from][to]
}

// CanUpdateStatus reports whether the brand-driven pipeline transition
// from->to is permitted.
func CanUpdateStatus(from Status, to Status) bool {
	return from.InPipeline() && to.InPipeline()
}
