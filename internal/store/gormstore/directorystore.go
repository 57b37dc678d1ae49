package gormstore

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/dealdeskhq/dealdesk/pkg/directory"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// DirectoryStore implements directory.Store for brand, creator, and campaign
// records.
type DirectoryStore struct {
	db *gorm.DB
}

// NewDirectoryStore returns a DirectoryStore backed by gorm.DB.
func NewDirectoryStore(db *gorm.DB) *DirectoryStore {
	return &DirectoryStore{db: db}
}

func (store *DirectoryStore) InsertBrand(ctx context.Context, brand directory.Brand) (string, error) {
	model := Brand{
		BrandID:            brand.BrandID,
		Name:               brand.Name,
		Logo:               brand.Logo,
		Industry:           brand.Industry,
		Verified:           brand.Verified,
		WalletBalanceCents: brand.WalletBalanceCents,
		WalletCurrency:     brand.WalletCurrency,
		CreatedAt:          time.Now().UTC(),
	}
	if err := store.db.WithContext(ctx).Create(&model).Error; err != nil {
		return "", wrapDirectoryError(errorSubjectBrand, errorCodeInsert, err)
	}
	return model.BrandID, nil
}

func (store *DirectoryStore) GetBrand(ctx context.Context, brandID directory.ID) (directory.Brand, error) {
	var model Brand
	err := store.db.WithContext(ctx).
		Where("brand_id = ?", brandID.String()).
		Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return directory.Brand{}, wrapDirectoryError(errorSubjectBrand, errorCodeGet, directory.ErrBrandNotFound)
		}
		return directory.Brand{}, wrapDirectoryError(errorSubjectBrand, errorCodeGet, err)
	}
	return mapBrand(model), nil
}

func (store *DirectoryStore) ListBrands(ctx context.Context) ([]directory.Brand, error) {
	var rows []Brand
	err := store.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error
	if err != nil {
		return nil, wrapDirectoryError(errorSubjectBrand, errorCodeList, err)
	}
	brands := make([]directory.Brand, 0, len(rows))
	for _, row := range rows {
		brands = append(brands, mapBrand(row))
	}
	return brands, nil
}

func (store *DirectoryStore) UpdateBrandProfile(ctx context.Context, brandID directory.ID, update directory.BrandProfileUpdate) (directory.Brand, error) {
	fields := map[string]interface{}{}
	if update.Name != nil {
		fields["name"] = *update.Name
	}
	if update.Logo != nil {
		fields["logo"] = *update.Logo
	}
	if update.Industry != nil {
		fields["industry"] = *update.Industry
	}
	if len(fields) > 0 {
		result := store.db.WithContext(ctx).
			Model(&Brand{}).
			Where("brand_id = ?", brandID.String()).
			Updates(fields)
		if result.Error != nil {
			return directory.Brand{}, wrapDirectoryError(errorSubjectBrand, errorCodeUpdate, result.Error)
		}
		if result.RowsAffected == 0 {
			return directory.Brand{}, wrapDirectoryError(errorSubjectBrand, errorCodeUpdate, directory.ErrBrandNotFound)
		}
	}
	return store.GetBrand(ctx, brandID)
}

func (store *DirectoryStore) InsertCreator(ctx context.Context, creator directory.Creator) (string, error) {
	model := Creator{
		CreatorID:          creator.CreatorID,
		Name:               creator.Name,
		Initials:           creator.Initials,
		Verified:           creator.Verified,
		Bio:                creator.Bio,
		Category:           creator.Category,
		Platform:           creator.Platform,
		StartingPriceCents: creator.StartingPriceCents,
		Currency:           creator.Currency,
		AvailableSlots:     creator.AvailableSlots,
		TrustScore:         creator.TrustScore,
		CreatedAt:          time.Now().UTC(),
	}
	if err := store.db.WithContext(ctx).Create(&model).Error; err != nil {
		return "", wrapDirectoryError(errorSubjectCreator, errorCodeInsert, err)
	}
	return model.CreatorID, nil
}

func (store *DirectoryStore) GetCreator(ctx context.Context, creatorID directory.ID) (directory.Creator, error) {
	var model Creator
	err := store.db.WithContext(ctx).
		Where("creator_id = ?", creatorID.String()).
		Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return directory.Creator{}, wrapDirectoryError(errorSubjectCreator, errorCodeGet, directory.ErrCreatorNotFound)
		}
		return directory.Creator{}, wrapDirectoryError(errorSubjectCreator, errorCodeGet, err)
	}
	return mapCreator(model), nil
}

func (store *DirectoryStore) ListCreators(ctx context.Context) ([]directory.Creator, error) {
	var rows []Creator
	err := store.db.WithContext(ctx).Order("created_at ASC").Find(&rows).Error
	if err != nil {
		return nil, wrapDirectoryError(errorSubjectCreator, errorCodeList, err)
	}
	creators := make([]directory.Creator, 0, len(rows))
	for _, row := range rows {
		creators = append(creators, mapCreator(row))
	}
	return creators, nil
}

func (store *DirectoryStore) InsertCampaign(ctx context.Context, campaign directory.Campaign) (string, error) {
	requirements, err := json.Marshal(campaign.Requirements)
	if err != nil {
		return "", wrapDirectoryError(errorSubjectCampaign, errorCodeInvalid, err)
	}
	audience, err := json.Marshal(campaign.Audience)
	if err != nil {
		return "", wrapDirectoryError(errorSubjectCampaign, errorCodeInvalid, err)
	}
	model := Campaign{
		CampaignID:   campaign.CampaignID,
		BrandID:      campaign.BrandID,
		Title:        campaign.Title,
		BudgetCents:  campaign.BudgetCents,
		Currency:     campaign.Currency,
		Platform:     campaign.Platform,
		CampaignType: campaign.CampaignType,
		MinFollowers: campaign.MinFollowers,
		Spots:        campaign.Spots,
		Deadline:     campaign.Deadline,
		Description:  campaign.Description,
		Requirements: datatypes.JSON(requirements),
		Audience:     datatypes.JSON(audience),
		TrustScore:   campaign.TrustScore,
		CreatedAt:    time.Now().UTC(),
	}
	if err := store.db.WithContext(ctx).Create(&model).Error; err != nil {
		return "", wrapDirectoryError(errorSubjectCampaign, errorCodeInsert, err)
	}
	return model.CampaignID, nil
}

func (store *DirectoryStore) GetCampaign(ctx context.Context, campaignID directory.ID) (directory.Campaign, error) {
	var model Campaign
	err := store.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID.String()).
		Take(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return directory.Campaign{}, wrapDirectoryError(errorSubjectCampaign, errorCodeGet, directory.ErrCampaignNotFound)
		}
		return directory.Campaign{}, wrapDirectoryError(errorSubjectCampaign, errorCodeGet, err)
	}
	return mapCampaign(model)
}

func (store *DirectoryStore) ListCampaigns(ctx context.Context) ([]directory.Campaign, error) {
	return store.listCampaigns(ctx, "", "")
}

func (store *DirectoryStore) ListCampaignsByBrand(ctx context.Context, brandID directory.ID) ([]directory.Campaign, error) {
	return store.listCampaigns(ctx, "brand_id = ?", brandID.String())
}

func (store *DirectoryStore) listCampaigns(ctx context.Context, condition string, value string) ([]directory.Campaign, error) {
	var rows []Campaign
	query := store.db.WithContext(ctx).Order("created_at ASC")
	if condition != "" {
		query = query.Where(condition, value)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, wrapDirectoryError(errorSubjectCampaign, errorCodeList, err)
	}
	campaigns := make([]directory.Campaign, 0, len(rows))
	for _, row := range rows {
		campaign, err := mapCampaign(row)
		if err != nil {
			return nil, err
		}
		campaigns = append(campaigns, campaign)
	}
	return campaigns, nil
}

// DeleteCampaignCascade removes a campaign, its applications, and all their
// messages in one transaction.
func (store *DirectoryStore) DeleteCampaignCascade(ctx context.Context, campaignID directory.ID) (directory.CascadeResult, error) {
	var cascade directory.CascadeResult
	err := store.db.WithContext(ctx).Transaction(func(transaction *gorm.DB) error {
		var applicationIDs []string
		err := transaction.Model(&Application{}).
			Where("campaign_id = ?", campaignID.String()).
			Pluck("application_id", &applicationIDs).Error
		if err != nil {
			return wrapDirectoryError(errorSubjectApplication, errorCodeList, err)
		}
		if len(applicationIDs) > 0 {
			messages := transaction.Where("application_id IN ?", applicationIDs).Delete(&Message{})
			if messages.Error != nil {
				return wrapDirectoryError(errorSubjectMessage, errorCodeDelete, messages.Error)
			}
			cascade.MessagesDeleted = int(messages.RowsAffected)
			applications := transaction.Where("campaign_id = ?", campaignID.String()).Delete(&Application{})
			if applications.Error != nil {
				return wrapDirectoryError(errorSubjectApplication, errorCodeDelete, applications.Error)
			}
			cascade.ApplicationsDeleted = int(applications.RowsAffected)
		}
		campaign := transaction.Where("campaign_id = ?", campaignID.String()).Delete(&Campaign{})
		if campaign.Error != nil {
			return wrapDirectoryError(errorSubjectCampaign, errorCodeDelete, campaign.Error)
		}
		if campaign.RowsAffected == 0 {
			return wrapDirectoryError(errorSubjectCampaign, errorCodeDelete, directory.ErrCampaignNotFound)
		}
		return nil
	})
	if err != nil {
		return directory.CascadeResult{}, err
	}
	return cascade, nil
}

func wrapDirectoryError(subject string, code string, err error) error {
	return &directoryStoreError{subject: subject, code: code, err: err}
}

// directoryStoreError mirrors the operation error shape used by the deal and
// wallet packages for consistency in logs.
type directoryStoreError struct {
	subject string
	code    string
	err     error
}

func (storeError *directoryStoreError) Error() string {
	return errorOperationStore + "." + storeError.subject + "." + storeError.code + ": " + storeError.err.Error()
}

func (storeError *directoryStoreError) Unwrap() error {
	return storeError.err
}

func mapBrand(model Brand) directory.Brand {
	return directory.Brand{
		BrandID:            model.BrandID,
		Name:               model.Name,
		Logo:               model.Logo,
		Industry:           model.Industry,
		Verified:           model.Verified,
		WalletBalanceCents: model.WalletBalanceCents,
		WalletCurrency:     model.WalletCurrency,
	}
}

func mapCreator(model Creator) directory.Creator {
	return directory.Creator{
		CreatorID:          model.CreatorID,
		Name:               model.Name,
		Initials:           model.Initials,
		Verified:           model.Verified,
		Bio:                model.Bio,
		Category:           model.Category,
		Platform:           model.Platform,
		StartingPriceCents: model.StartingPriceCents,
		Currency:           model.Currency,
		AvailableSlots:     model.AvailableSlots,
		TrustScore:         model.TrustScore,
	}
}

func mapCampaign(model Campaign) (directory.Campaign, error) {
	campaign := directory.Campaign{
		CampaignID:   model.CampaignID,
		BrandID:      model.BrandID,
		Title:        model.Title,
		BudgetCents:  model.BudgetCents,
		Currency:     model.Currency,
		Platform:     model.Platform,
		CampaignType: model.CampaignType,
		MinFollowers: model.MinFollowers,
		Spots:        model.Spots,
		Deadline:     model.Deadline,
		Description:  model.Description,
		TrustScore:   model.TrustScore,
	}
	if len(model.Requirements) > 0 {
		if err := json.Unmarshal(model.Requirements, &campaign.Requirements); err != nil {
			return directory.Campaign{}, wrapDirectoryError(errorSubjectCampaign, errorCodeInvalid, err)
		}
	}
	if len(model.Audience) > 0 {
		if err := json.Unmarshal(model.Audience, &campaign.Audience); err != nil {
			return directory.Campaign{}, wrapDirectoryError(errorSubjectCampaign, errorCodeInvalid, err)
		}
	}
	return campaign, nil
}
