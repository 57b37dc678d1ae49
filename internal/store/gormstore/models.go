package gormstore

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Brand represents the brands table. Wallet columns are the cached balance
// maintained by the wallet ledger.
type Brand struct {
	BrandID            string    `gorm:"type:uuid;primaryKey"`
	Name               string    `gorm:"not null;index:idx_brands_name"`
	Logo               string    `gorm:""`
	Industry           string    `gorm:""`
	Verified           bool      `gorm:"not null;default:false"`
	WalletBalanceCents int64     `gorm:"not null;default:0"`
	WalletCurrency     string    `gorm:""`
	CreatedAt          time.Time `gorm:"not null"`
}

func (Brand) TableName() string { return "brands" }

func (brand *Brand) BeforeCreate(tx *gorm.DB) error {
	if brand.BrandID == "" {
		brand.BrandID = uuid.NewString()
	}
	return nil
}

// Creator represents the creators table.
type Creator struct {
	CreatorID          string    `gorm:"type:uuid;primaryKey"`
	Name               string    `gorm:"not null"`
	Initials           string    `gorm:""`
	Verified           bool      `gorm:"not null;default:false"`
	Bio                string    `gorm:""`
	Category           string    `gorm:""`
	Platform           string    `gorm:"index:idx_creators_platform"`
	StartingPriceCents int64     `gorm:"not null;default:0"`
	Currency           string    `gorm:""`
	AvailableSlots     int       `gorm:"not null;default:0"`
	TrustScore         string    `gorm:""`
	CreatedAt          time.Time `gorm:"not null"`
}

func (Creator) TableName() string { return "creators" }

func (creator *Creator) BeforeCreate(tx *gorm.DB) error {
	if creator.CreatorID == "" {
		creator.CreatorID = uuid.NewString()
	}
	return nil
}

// Campaign represents the campaigns table.
type Campaign struct {
	CampaignID   string         `gorm:"type:uuid;primaryKey"`
	BrandID      string         `gorm:"type:uuid;not null;index:idx_campaigns_brand"`
	Title        string         `gorm:"not null"`
	BudgetCents  int64          `gorm:"not null;default:0"`
	Currency     string         `gorm:""`
	Platform     string         `gorm:"index:idx_campaigns_platform"`
	CampaignType string         `gorm:""`
	MinFollowers string         `gorm:""`
	Spots        int            `gorm:"not null;default:0"`
	Deadline     string         `gorm:""`
	Description  string         `gorm:""`
	Requirements datatypes.JSON `gorm:""`
	Audience     datatypes.JSON `gorm:""`
	TrustScore   string         `gorm:""`
	CreatedAt    time.Time      `gorm:"not null"`
}

func (Campaign) TableName() string { return "campaigns" }

func (campaign *Campaign) BeforeCreate(tx *gorm.DB) error {
	if campaign.CampaignID == "" {
		campaign.CampaignID = uuid.NewString()
	}
	return nil
}

// Application represents the applications table. The unique index on
// (campaign_id, creator_id) backs the duplicate-offer check.
type Application struct {
	ApplicationID      string    `gorm:"type:uuid;primaryKey"`
	CampaignID         string    `gorm:"type:uuid;not null;index:idx_applications_campaign_creator,unique,priority:1;index:idx_applications_campaign"`
	CreatorID          string    `gorm:"type:uuid;not null;index:idx_applications_campaign_creator,unique,priority:2;index:idx_applications_creator"`
	Status             string    `gorm:"not null;index:idx_applications_status"`
	InitiatedBy        string    `gorm:"not null"`
	MatchScore         int       `gorm:"not null;default:0"`
	BidAmountCents     int64     `gorm:"not null;default:0"`
	BidCurrency        string    `gorm:""`
	OfferedAmountCents int64     `gorm:"not null;default:0"`
	OfferedCurrency    string    `gorm:""`
	ContentDraftURL    string    `gorm:""`
	ContentStatus      string    `gorm:""`
	Notes              string    `gorm:""`
	CreatedAt          time.Time `gorm:"not null"`
}

func (Application) TableName() string { return "applications" }

func (application *Application) BeforeCreate(tx *gorm.DB) error {
	if application.ApplicationID == "" {
		application.ApplicationID = uuid.NewString()
	}
	return nil
}

// Message represents the messages table.
type Message struct {
	MessageID     string    `gorm:"type:uuid;primaryKey"`
	ApplicationID string    `gorm:"type:uuid;not null;index:idx_messages_application_created,priority:1"`
	SenderID      string    `gorm:"not null"`
	SenderType    string    `gorm:"not null"`
	Content       string    `gorm:"not null"`
	IsRead        bool      `gorm:"not null;default:false"`
	CreatedAt     time.Time `gorm:"not null;index:idx_messages_application_created,priority:2"`
}

func (Message) TableName() string { return "messages" }

func (message *Message) BeforeCreate(tx *gorm.DB) error {
	if message.MessageID == "" {
		message.MessageID = uuid.NewString()
	}
	return nil
}

// WalletTransaction represents the wallet_transactions table. Append-only.
type WalletTransaction struct {
	TransactionID string    `gorm:"type:uuid;primaryKey"`
	BrandID       string    `gorm:"type:uuid;not null;index:idx_wallet_tx_brand_created,priority:1"`
	Type          string    `gorm:"not null;index:idx_wallet_tx_type"`
	AmountCents   int64     `gorm:"not null"`
	Currency      string    `gorm:"not null"`
	Description   string    `gorm:""`
	Reference     string    `gorm:""`
	CampaignID    string    `gorm:""`
	CreatedAt     time.Time `gorm:"not null;index:idx_wallet_tx_brand_created,priority:2"`
}

func (WalletTransaction) TableName() string { return "wallet_transactions" }

func (transaction *WalletTransaction) BeforeCreate(tx *gorm.DB) error {
	if transaction.TransactionID == "" {
		transaction.TransactionID = uuid.NewString()
	}
	return nil
}

// AllModels lists every table for migration.
func AllModels() []any {
	return []any{&Brand{}, &Creator{}, &Campaign{}, &Application{}, &Message{}, &WalletTransaction{}}
}
