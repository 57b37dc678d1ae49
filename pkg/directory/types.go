package directory

import (
	"context"
	"fmt"
	"strings"
)

// Brand is an advertiser account. Wallet fields are owned by the wallet
// ledger and only read here.
type Brand struct {
	BrandID            string
	Name               string
	Logo               string
	Industry           string
	Verified           bool
	WalletBalanceCents int64
	WalletCurrency     string
}

// Creator is an influencer profile.
type Creator struct {
	CreatorID          string
	Name               string
	Initials           string
	Verified           bool
	Bio                string
	Category           string
	Platform           string
	StartingPriceCents int64
	Currency           string
	AvailableSlots     int
	TrustScore         string
}

// Audience describes the viewers a campaign targets.
type Audience struct {
	Location string `json:"location"`
	Age      string `json:"age"`
	Gender   string `json:"gender"`
}

// Campaign is a brand's posted brief.
type Campaign struct {
	CampaignID   string
	BrandID      string
	Title        string
	BudgetCents  int64
	Currency     string
	Platform     string
	CampaignType string
	MinFollowers string
	Spots        int
	Deadline     string
	Description  string
	Requirements []string
	Audience     Audience
	TrustScore   string
}

// BrandProfileUpdate carries the editable brand profile fields; nil means
// leave unchanged.
type BrandProfileUpdate struct {
	Name     *string
	Logo     *string
	Industry *string
}

// ID wraps a validated directory identifier.
type ID struct {
	value string
}

// NewID validates and normalizes an identifier.
func NewID(raw string) (ID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ID{}, fmt.Errorf("%w: empty value", ErrInvalidID)
	}
	return ID{value: trimmed}, nil
}

// String returns the normalized identifier.
func (id ID) String() string {
	return id.value
}

// Store is the persistence contract used by Service. DeleteCampaignCascade
// must remove the campaign, its applications, and their messages in one
// transaction.
type Store interface {
	InsertBrand(ctx context.Context, brand Brand) (string, error)
	GetBrand(ctx context.Context, brandID ID) (Brand, error)
	ListBrands(ctx context.Context) ([]Brand, error)
	UpdateBrandProfile(ctx context.Context, brandID ID, update BrandProfileUpdate) (Brand, error)
	InsertCreator(ctx context.Context, creator Creator) (string, error)
	GetCreator(ctx context.Context, creatorID ID) (Creator, error)
	ListCreators(ctx context.Context) ([]Creator, error)
	InsertCampaign(ctx context.Context, campaign Campaign) (string, error)
	GetCampaign(ctx context.Context, campaignID ID) (Campaign, error)
	ListCampaigns(ctx context.Context) ([]Campaign, error)
	ListCampaignsByBrand(ctx context.Context, brandID ID) ([]Campaign, error)
	DeleteCampaignCascade(ctx context.Context, campaignID ID) (CascadeResult, error)
}

// CascadeResult reports what a cascading delete removed.
type CascadeResult struct {
	ApplicationsDeleted int
	MessagesDeleted     int
}
