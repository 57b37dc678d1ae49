package deal

import (
	"context"
	"fmt"
	"strings"
)

// ApplicationID identifies one brand/creator engagement.
type ApplicationID struct {
	value string
}

// NewApplicationID validates and normalizes an application id.
func NewApplicationID(raw string) (ApplicationID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ApplicationID{}, fmt.Errorf("%w: empty value", ErrInvalidApplicationID)
	}
	return ApplicationID{value: trimmed}, nil
}

// String returns the normalized identifier.
func (id ApplicationID) String() string {
	return id.value
}

// CampaignID identifies the campaign an application targets.
type CampaignID struct {
	value string
}

// NewCampaignID validates and normalizes a campaign id.
func NewCampaignID(raw string) (CampaignID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return CampaignID{}, fmt.Errorf("%w: empty value", ErrInvalidCampaignID)
	}
	return CampaignID{value: trimmed}, nil
}

// String returns the normalized identifier.
func (id CampaignID) String() string {
	return id.value
}

// CreatorID identifies a creator.
type CreatorID struct {
	value string
}

// NewCreatorID validates and normalizes a creator id.
func NewCreatorID(raw string) (CreatorID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return CreatorID{}, fmt.Errorf("%w: empty value", ErrInvalidCreatorID)
	}
	return CreatorID{value: trimmed}, nil
}

// String returns the normalized identifier.
func (id CreatorID) String() string {
	return id.value
}

// BrandID identifies a brand.
type BrandID struct {
	value string
}

// NewBrandID validates and normalizes a brand id.
func NewBrandID(raw string) (BrandID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return BrandID{}, fmt.Errorf("%w: empty value", ErrInvalidBrandID)
	}
	return BrandID{value: trimmed}, nil
}

// String returns the normalized identifier.
func (id BrandID) String() string {
	return id.value
}

// PartyType distinguishes the two sides of a deal.
type PartyType string

const (
	PartyBrand   PartyType = "brand"
	PartyCreator PartyType = "creator"
)

// ParsePartyType validates a raw party type.
func ParsePartyType(raw string) (PartyType, error) {
	switch PartyType(raw) {
	case PartyBrand, PartyCreator:
		return PartyType(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidPartyType, raw)
}

// String returns the raw party value.
func (party PartyType) String() string {
	return string(party)
}

// Other returns the opposite side of the deal.
func (party PartyType) Other() PartyType {
	if party == PartyBrand {
		return PartyCreator
	}
	return PartyBrand
}

// ContentStatus is the approval sub-state of a submitted draft.
type ContentStatus string

const (
	ContentNone              ContentStatus = ""
	ContentPending           ContentStatus = "pending"
	ContentApproved          ContentStatus = "approved"
	ContentRevisionRequested ContentStatus = "revision_requested"
)

// ParseContentStatus validates a raw content status; empty means no draft.
func ParseContentStatus(raw string) (ContentStatus, error) {
	switch ContentStatus(raw) {
	case ContentNone, ContentPending, ContentApproved, ContentRevisionRequested:
		return ContentStatus(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidContentStatus, raw)
}

// String returns the raw status value.
func (status ContentStatus) String() string {
	return string(status)
}

// ContentDecision is a brand's verdict on a submitted draft.
type ContentDecision string

const (
	DecisionApproved          ContentDecision = "approved"
	DecisionRevisionRequested ContentDecision = "revision_requested"
)

// ParseContentDecision validates a raw decision.
func ParseContentDecision(raw string) (ContentDecision, error) {
	switch ContentDecision(raw) {
	case DecisionApproved, DecisionRevisionRequested:
		return ContentDecision(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDecision, raw)
}

// ToContentStatus converts the decision into the resulting sub-state.
func (decision ContentDecision) ToContentStatus() ContentStatus {
	return ContentStatus(decision)
}

// MatchScore is a 0-100 fit score between creator and campaign.
type MatchScore int

// NewMatchScore validates a raw score.
func NewMatchScore(raw int) (MatchScore, error) {
	if raw < 0 || raw > 100 {
		return 0, fmt.Errorf("%w: must be between 0 and 100", ErrInvalidMatchScore)
	}
	return MatchScore(raw), nil
}

// Int returns the raw score.
func (score MatchScore) Int() int {
	return int(score)
}

// MessageBody is a validated, non-empty message text.
type MessageBody struct {
	value string
}

// NewMessageBody validates a message body.
func NewMessageBody(raw string) (MessageBody, error) {
	if strings.TrimSpace(raw) == "" {
		return MessageBody{}, fmt.Errorf("%w: empty content", ErrInvalidMessageBody)
	}
	return MessageBody{value: raw}, nil
}

// String returns the message text.
func (body MessageBody) String() string {
	return body.value
}

// DraftURL is a validated content draft location.
type DraftURL struct {
	value string
}

// NewDraftURL validates a draft url.
func NewDraftURL(raw string) (DraftURL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return DraftURL{}, fmt.Errorf("%w: empty value", ErrInvalidDraftURL)
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		return DraftURL{}, fmt.Errorf("%w: must be an http(s) url", ErrInvalidDraftURL)
	}
	return DraftURL{value: trimmed}, nil
}

// String returns the normalized url.
func (url DraftURL) String() string {
	return url.value
}

// OfferAmountCents is a strictly positive offer in minor units.
type OfferAmountCents int64

// NewOfferAmountCents validates an offer amount.
func NewOfferAmountCents(raw int64) (OfferAmountCents, error) {
	if raw <= 0 {
		return 0, fmt.Errorf("%w: must be greater than zero", ErrInvalidAmountCents)
	}
	return OfferAmountCents(raw), nil
}

// Int64 returns the raw amount.
func (amount OfferAmountCents) Int64() int64 {
	return int64(amount)
}

// Application is one deal between a brand's campaign and a creator. Money is
// held in integer minor units throughout; decimal rendering is a display
// concern only.
type Application struct {
	ApplicationID      string
	CampaignID         string
	CreatorID          string
	Status             Status
	InitiatedBy        PartyType
	MatchScore         int
	BidAmountCents     int64
	BidCurrency        string
	OfferedAmountCents int64
	OfferedCurrency    string
	ContentDraftURL    string
	ContentStatus      ContentStatus
	Notes              string
	CreatedUnixMilli   int64
}

// Message is a single line in a deal's thread. Immutable except IsRead.
type Message struct {
	MessageID        string
	ApplicationID    string
	SenderID         string
	SenderType       PartyType
	Content          string
	IsRead           bool
	CreatedUnixMilli int64
}

// CampaignRef carries the campaign fields the deal service needs.
type CampaignRef struct {
	CampaignID string
	BrandID    string
}

// ApplicationInput carries the fields needed to insert an application.
type ApplicationInput struct {
	CampaignID         CampaignID
	CreatorID          CreatorID
	Status             Status
	InitiatedBy        PartyType
	MatchScore         MatchScore
	BidAmountCents     int64
	BidCurrency        string
	OfferedAmountCents int64
	OfferedCurrency    string
	CreatedUnixMilli   int64
}

// MessageInput carries the fields needed to insert a message.
type MessageInput struct {
	ApplicationID    ApplicationID
	SenderID         string
	SenderType       PartyType
	Content          MessageBody
	CreatedUnixMilli int64
}

// Store is the persistence contract used by Service. InsertApplication must
// enforce uniqueness of (campaign, creator) and surface violations as
// ErrDuplicateOffer; GetApplicationForUpdate must hold the row against
// concurrent writers for the duration of the surrounding transaction.
type Store interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, txStore Store) error) error
	GetCampaign(ctx context.Context, campaignID CampaignID) (CampaignRef, error)
	CreatorExists(ctx context.Context, creatorID CreatorID) error
	InsertApplication(ctx context.Context, input ApplicationInput) (string, error)
	GetApplication(ctx context.Context, applicationID ApplicationID) (Application, error)
	GetApplicationForUpdate(ctx context.Context, applicationID ApplicationID) (Application, error)
	FindApplication(ctx context.Context, campaignID CampaignID, creatorID CreatorID) (Application, bool, error)
	UpdateApplicationStatus(ctx context.Context, applicationID ApplicationID, from Status, to Status) error
	UpdateApplication(ctx context.Context, application Application) error
	DeleteApplication(ctx context.Context, applicationID ApplicationID) error
	ListApplicationsByCampaign(ctx context.Context, campaignID CampaignID) ([]Application, error)
	ListApplicationsByCreator(ctx context.Context, creatorID CreatorID) ([]Application, error)
	ListApplicationsByStatus(ctx context.Context, status Status) ([]Application, error)
	InsertMessage(ctx context.Context, input MessageInput) (string, error)
	ListMessagesByApplication(ctx context.Context, applicationID ApplicationID) ([]Message, error)
	MarkMessagesRead(ctx context.Context, applicationID ApplicationID, senderType PartyType) error
	DeleteMessagesByApplication(ctx context.Context, applicationID ApplicationID) error
	CountUnreadForBrand(ctx context.Context, brandID BrandID) (int, error)
}
