package directory

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"
)

// Service exposes the listing and maintenance paths around the deal core:
// brand and creator profiles plus campaign lifecycle.
type Service struct {
	store  Store
	logger *zap.Logger
}

// NewService wires a Service.
func NewService(store Store, logger *zap.Logger) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store dependency is nil", ErrInvalidServiceConfig)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger}, nil
}

// CreateBrand registers a brand at signup with an empty wallet.
func (service *Service) CreateBrand(ctx context.Context, brand Brand) (Brand, error) {
	if strings.TrimSpace(brand.Name) == "" {
		return Brand{}, fmt.Errorf("%w: name is required", ErrInvalidBrand)
	}
	brand.WalletBalanceCents = 0
	brandID, err := service.store.InsertBrand(ctx, brand)
	if err != nil {
		return Brand{}, err
	}
	id, err := NewID(brandID)
	if err != nil {
		return Brand{}, err
	}
	return service.store.GetBrand(ctx, id)
}

// GetBrand returns one brand.
func (service *Service) GetBrand(ctx context.Context, brandID ID) (Brand, error) {
	return service.store.GetBrand(ctx, brandID)
}

// ListBrands returns every brand.
func (service *Service) ListBrands(ctx context.Context) ([]Brand, error) {
	return service.store.ListBrands(ctx)
}

// UpdateBrandProfile edits the display fields of a brand. Wallet fields are
// never touched here.
func (service *Service) UpdateBrandProfile(ctx context.Context, brandID ID, update BrandProfileUpdate) (Brand, error) {
	return service.store.UpdateBrandProfile(ctx, brandID, update)
}

// CreateCreator registers a creator profile.
func (service *Service) CreateCreator(ctx context.Context, creator Creator) (Creator, error) {
	if strings.TrimSpace(creator.Name) == "" {
		return Creator{}, fmt.Errorf("%w: name is required", ErrInvalidCreator)
	}
	creatorID, err := service.store.InsertCreator(ctx, creator)
	if err != nil {
		return Creator{}, err
	}
	id, err := NewID(creatorID)
	if err != nil {
		return Creator{}, err
	}
	return service.store.GetCreator(ctx, id)
}

// GetCreator returns one creator.
func (service *Service) GetCreator(ctx context.Context, creatorID ID) (Creator, error) {
	return service.store.GetCreator(ctx, creatorID)
}

// ListCreators returns every creator.
func (service *Service) ListCreators(ctx context.Context) ([]Creator, error) {
	return service.store.ListCreators(ctx)
}

// CreateCampaign posts a campaign for an existing brand.
func (service *Service) CreateCampaign(ctx context.Context, campaign Campaign) (Campaign, error) {
	if strings.TrimSpace(campaign.Title) == "" {
		return Campaign{}, fmt.Errorf("%w: title is required", ErrInvalidCampaign)
	}
	brandID, err := NewID(campaign.BrandID)
	if err != nil {
		return Campaign{}, err
	}
	if _, err := service.store.GetBrand(ctx, brandID); err != nil {
		return Campaign{}, err
	}
	campaignID, err := service.store.InsertCampaign(ctx, campaign)
	if err != nil {
		return Campaign{}, err
	}
	id, err := NewID(campaignID)
	if err != nil {
		return Campaign{}, err
	}
	return service.store.GetCampaign(ctx, id)
}

// GetCampaign returns one campaign.
func (service *Service) GetCampaign(ctx context.Context, campaignID ID) (Campaign, error) {
	return service.store.GetCampaign(ctx, campaignID)
}

// ListCampaigns returns every campaign.
func (service *Service) ListCampaigns(ctx context.Context) ([]Campaign, error) {
	return service.store.ListCampaigns(ctx)
}

// ListCampaignsByBrand returns a brand's campaigns.
func (service *Service) ListCampaignsByBrand(ctx context.Context, brandID ID) ([]Campaign, error) {
	return service.store.ListCampaignsByBrand(ctx, brandID)
}

// DeleteCampaign removes a campaign together with its applications and their
// messages, and logs what the cascade removed.
func (service *Service) DeleteCampaign(ctx context.Context, campaignID ID) error {
	result, err := service.store.DeleteCampaignCascade(ctx, campaignID)
	if err != nil {
		return err
	}
	service.logger.Info("campaign deleted",
		zap.String("campaign_id", campaignID.String()),
		zap.Int("applications_deleted", result.ApplicationsDeleted),
		zap.Int("messages_deleted", result.MessagesDeleted),
	)
	return nil
}
