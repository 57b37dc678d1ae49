package gormstore

import (
	"context"
	"errors"
	"time"

	"github.com/dealdeskhq/dealdesk/pkg/deal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DealStore implements deal.Store using GORM.
type DealStore struct {
	db *gorm.DB
}

// NewDealStore returns a DealStore backed by gorm.DB.
func NewDealStore(db *gorm.DB) *DealStore {
	return &DealStore{db: db}
}

// WithTx executes fn within a transaction.
func (store *DealStore) WithTx(ctx context.Context, fn func(ctx context.Context, txStore deal.Store) error) error {
	return store.db.WithContext(ctx).Transaction(func(transaction *gorm.DB) error {
		return fn(ctx, &DealStore{db: transaction})
	})
}

// locked applies a row lock on engines that support it. SQLite serializes
// writers on its own.
func (store *DealStore) locked(db *gorm.DB) *gorm.DB {
	if store.db.Dialector.Name() == "postgres" {
		return db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return db
}

func (store *DealStore) GetCampaign(ctx context.Context, campaignID deal.CampaignID) (deal.CampaignRef, error) {
	var model Campaign
	err := store.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID.String()).
		Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return deal.CampaignRef{}, wrapDealError(errorSubjectCampaign, errorCodeGet, deal.ErrCampaignNotFound)
		}
		return deal.CampaignRef{}, wrapDealError(errorSubjectCampaign, errorCodeGet, err)
	}
	return deal.CampaignRef{CampaignID: model.CampaignID, BrandID: model.BrandID}, nil
}

func (store *DealStore) CreatorExists(ctx context.Context, creatorID deal.CreatorID) error {
	var count int64
	err := store.db.WithContext(ctx).
		Model(&Creator{}).
		Where("creator_id = ?", creatorID.String()).
		Count(&count).Error
	if err != nil {
		return wrapDealError(errorSubjectCreator, errorCodeGet, err)
	}
	if count == 0 {
		return wrapDealError(errorSubjectCreator, errorCodeGet, deal.ErrCreatorNotFound)
	}
	return nil
}

func (store *DealStore) InsertApplication(ctx context.Context, input deal.ApplicationInput) (string, error) {
	model := Application{
		CampaignID:         input.CampaignID.String(),
		CreatorID:          input.CreatorID.String(),
		Status:             input.Status.String(),
		InitiatedBy:        input.InitiatedBy.String(),
		MatchScore:         input.MatchScore.Int(),
		BidAmountCents:     input.BidAmountCents,
		BidCurrency:        input.BidCurrency,
		OfferedAmountCents: input.OfferedAmountCents,
		OfferedCurrency:    input.OfferedCurrency,
		CreatedAt:          time.UnixMilli(input.CreatedUnixMilli).UTC(),
	}
	if model.CreatedAt.IsZero() {
		model.CreatedAt = time.Now().UTC()
	}
	err := store.db.WithContext(ctx).Create(&model).Error
	if isUniqueViolation(err, constraintApplicationPair) {
		return "", wrapDealError(errorSubjectApplication, errorCodeDuplicate, deal.ErrDuplicateOffer)
	}
	if err != nil {
		return "", wrapDealError(errorSubjectApplication, errorCodeInsert, err)
	}
	return model.ApplicationID, nil
}

func (store *DealStore) GetApplication(ctx context.Context, applicationID deal.ApplicationID) (deal.Application, error) {
	return store.getApplication(ctx, applicationID, false)
}

func (store *DealStore) GetApplicationForUpdate(ctx context.Context, applicationID deal.ApplicationID) (deal.Application, error) {
	return store.getApplication(ctx, applicationID, true)
}

func (store *DealStore) getApplication(ctx context.Context, applicationID deal.ApplicationID, forUpdate bool) (deal.Application, error) {
	var model Application
	query := store.db.WithContext(ctx).Where("application_id = ?", applicationID.String())
	if forUpdate {
		query = store.locked(query)
	}
	if err := query.Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return deal.Application{}, wrapDealError(errorSubjectApplication, errorCodeGet, deal.ErrApplicationNotFound)
		}
		return deal.Application{}, wrapDealError(errorSubjectApplication, errorCodeGet, err)
	}
	return mapApplication(model)
}

func (store *DealStore) FindApplication(ctx context.Context, campaignID deal.CampaignID, creatorID deal.CreatorID) (deal.Application, bool, error) {
	var model Application
	err := store.db.WithContext(ctx).
		Where("campaign_id = ? AND creator_id = ?", campaignID.String(), creatorID.String()).
		Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return deal.Application{}, false, nil
	}
	if err != nil {
		return deal.Application{}, false, wrapDealError(errorSubjectApplication, errorCodeGet, err)
	}
	application, err := mapApplication(model)
	if err != nil {
		return deal.Application{}, false, err
	}
	return application, true, nil
}

func (store *DealStore) UpdateApplicationStatus(ctx context.Context, applicationID deal.ApplicationID, from deal.Status, to deal.Status) error {
	result := store.db.WithContext(ctx).
		Model(&Application{}).
		Where("application_id = ? AND status = ?", applicationID.String(), from.String()).
		Update("status", to.String())
	if result.Error != nil {
		return wrapDealError(errorSubjectApplication, errorCodeUpdate, result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapDealError(errorSubjectApplication, errorCodeUpdate, deal.ErrInvalidState)
	}
	return nil
}

func (store *DealStore) UpdateApplication(ctx context.Context, application deal.Application) error {
	result := store.db.WithContext(ctx).
		Model(&Application{}).
		Where("application_id = ?", application.ApplicationID).
		Updates(map[string]interface{}{
			"status":               application.Status.String(),
			"match_score":          application.MatchScore,
			"bid_amount_cents":     application.BidAmountCents,
			"bid_currency":         application.BidCurrency,
			"offered_amount_cents": application.OfferedAmountCents,
			"offered_currency":     application.OfferedCurrency,
			"content_draft_url":    application.ContentDraftURL,
			"content_status":       application.ContentStatus.String(),
			"notes":                application.Notes,
		})
	if result.Error != nil {
		return wrapDealError(errorSubjectApplication, errorCodeUpdate, result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapDealError(errorSubjectApplication, errorCodeUpdate, deal.ErrApplicationNotFound)
	}
	return nil
}

func (store *DealStore) DeleteApplication(ctx context.Context, applicationID deal.ApplicationID) error {
	result := store.db.WithContext(ctx).
		Where("application_id = ?", applicationID.String()).
		Delete(&Application{})
	if result.Error != nil {
		return wrapDealError(errorSubjectApplication, errorCodeDelete, result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapDealError(errorSubjectApplication, errorCodeDelete, deal.ErrApplicationNotFound)
	}
	return nil
}

func (store *DealStore) ListApplicationsByCampaign(ctx context.Context, campaignID deal.CampaignID) ([]deal.Application, error) {
	return store.listApplications(ctx, "campaign_id = ?", campaignID.String())
}

func (store *DealStore) ListApplicationsByCreator(ctx context.Context, creatorID deal.CreatorID) ([]deal.Application, error) {
	return store.listApplications(ctx, "creator_id = ?", creatorID.String())
}

func (store *DealStore) ListApplicationsByStatus(ctx context.Context, status deal.Status) ([]deal.Application, error) {
	return store.listApplications(ctx, "status = ?", status.String())
}

func (store *DealStore) listApplications(ctx context.Context, condition string, value string) ([]deal.Application, error) {
	var rows []Application
	err := store.db.WithContext(ctx).
		Where(condition, value).
		Order("created_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, wrapDealError(errorSubjectApplication, errorCodeList, err)
	}
	applications := make([]deal.Application, 0, len(rows))
	for _, row := range rows {
		application, err := mapApplication(row)
		if err != nil {
			return nil, err
		}
		applications = append(applications, application)
	}
	return applications, nil
}

func (store *DealStore) InsertMessage(ctx context.Context, input deal.MessageInput) (string, error) {
	model := Message{
		ApplicationID: input.ApplicationID.String(),
		SenderID:      input.SenderID,
		SenderType:    input.SenderType.String(),
		Content:       input.Content.String(),
		CreatedAt:     time.UnixMilli(input.CreatedUnixMilli).UTC(),
	}
	if model.CreatedAt.IsZero() {
		model.CreatedAt = time.Now().UTC()
	}
	if err := store.db.WithContext(ctx).Create(&model).Error; err != nil {
		return "", wrapDealError(errorSubjectMessage, errorCodeInsert, err)
	}
	return model.MessageID, nil
}

func (store *DealStore) ListMessagesByApplication(ctx context.Context, applicationID deal.ApplicationID) ([]deal.Message, error) {
	var rows []Message
	err := store.db.WithContext(ctx).
		Where("application_id = ?", applicationID.String()).
		Order("created_at ASC, message_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, wrapDealError(errorSubjectMessage, errorCodeList, err)
	}
	messages := make([]deal.Message, 0, len(rows))
	for _, row := range rows {
		message, err := mapMessage(row)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}
	return messages, nil
}

func (store *DealStore) MarkMessagesRead(ctx context.Context, applicationID deal.ApplicationID, senderType deal.PartyType) error {
	err := store.db.WithContext(ctx).
		Model(&Message{}).
		Where("application_id = ? AND sender_type = ? AND is_read = ?", applicationID.String(), senderType.String(), false).
		Update("is_read", true).Error
	if err != nil {
		return wrapDealError(errorSubjectMessage, errorCodeUpdate, err)
	}
	return nil
}

func (store *DealStore) DeleteMessagesByApplication(ctx context.Context, applicationID deal.ApplicationID) error {
	err := store.db.WithContext(ctx).
		Where("application_id = ?", applicationID.String()).
		Delete(&Message{}).Error
	if err != nil {
		return wrapDealError(errorSubjectMessage, errorCodeDelete, err)
	}
	return nil
}

func (store *DealStore) CountUnreadForBrand(ctx context.Context, brandID deal.BrandID) (int, error) {
	var count int64
	err := store.db.WithContext(ctx).
		Model(&Message{}).
		Joins("JOIN applications ON applications.application_id = messages.application_id").
		Joins("JOIN campaigns ON campaigns.campaign_id = applications.campaign_id").
		Where("campaigns.brand_id = ? AND messages.sender_type = ? AND messages.is_read = ?", brandID.String(), deal.PartyCreator.String(), false).
		Count(&count).Error
	if err != nil {
		return 0, wrapDealError(errorSubjectMessage, errorCodeCount, err)
	}
	return int(count), nil
}

func wrapDealError(subject string, code string, err error) error {
	return deal.WrapError(errorOperationStore, subject, code, err)
}

func mapApplication(row Application) (deal.Application, error) {
	status, err := deal.ParseStatus(row.Status)
	if err != nil {
		return deal.Application{}, wrapDealError(errorSubjectApplication, errorCodeInvalid, err)
	}
	initiatedBy, err := deal.ParsePartyType(row.InitiatedBy)
	if err != nil {
		return deal.Application{}, wrapDealError(errorSubjectApplication, errorCodeInvalid, err)
	}
	contentStatus, err := deal.ParseContentStatus(row.ContentStatus)
	if err != nil {
		return deal.Application{}, wrapDealError(errorSubjectApplication, errorCodeInvalid, err)
	}
	return deal.Application{
		ApplicationID:      row.ApplicationID,
		CampaignID:         row.CampaignID,
		CreatorID:          row.CreatorID,
		Status:             status,
		InitiatedBy:        initiatedBy,
		MatchScore:         row.MatchScore,
		BidAmountCents:     row.BidAmountCents,
		BidCurrency:        row.BidCurrency,
		OfferedAmountCents: row.OfferedAmountCents,
		OfferedCurrency:    row.OfferedCurrency,
		ContentDraftURL:    row.ContentDraftURL,
		ContentStatus:      contentStatus,
		Notes:              row.Notes,
		CreatedUnixMilli:   row.CreatedAt.UnixMilli(),
	}, nil
}

func mapMessage(row Message) (deal.Message, error) {
	senderType, err := deal.ParsePartyType(row.SenderType)
	if err != nil {
		return deal.Message{}, wrapDealError(errorSubjectMessage, errorCodeInvalid, err)
	}
	return deal.Message{
		MessageID:        row.MessageID,
		ApplicationID:    row.ApplicationID,
		SenderID:         row.SenderID,
		SenderType:       senderType,
		Content:          row.Content,
		IsRead:           row.IsRead,
		CreatedUnixMilli: row.CreatedAt.UnixMilli(),
	}, nil
}
