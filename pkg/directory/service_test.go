package directory

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

type stubStore struct {
	brands    map[string]Brand
	creators  map[string]Creator
	campaigns map[string]Campaign
	nextID    int

	insertBrandError    error
	insertCampaignError error
	cascadeError        error
	lastCascadeResult   CascadeResult
}

func newStubStore() *stubStore {
	return &stubStore{
		brands:    map[string]Brand{},
		creators:  map[string]Creator{},
		campaigns: map[string]Campaign{},
	}
}

func (store *stubStore) allocateID(prefix string) string {
	store.nextID++
	return fmt.Sprintf("%s-%d", prefix, store.nextID)
}

func (store *stubStore) InsertBrand(_ context.Context, brand Brand) (string, error) {
	if store.insertBrandError != nil {
		return "", store.insertBrandError
	}
	brand.BrandID = store.allocateID("brand")
	store.brands[brand.BrandID] = brand
	return brand.BrandID, nil
}

func (store *stubStore) GetBrand(_ context.Context, brandID ID) (Brand, error) {
	brand, ok := store.brands[brandID.String()]
	if !ok {
		return Brand{}, ErrBrandNotFound
	}
	return brand, nil
}

func (store *stubStore) ListBrands(_ context.Context) ([]Brand, error) {
	brands := make([]Brand, 0, len(store.brands))
	for _, brand := range store.brands {
		brands = append(brands, brand)
	}
	return brands, nil
}

func (store *stubStore) UpdateBrandProfile(_ context.Context, brandID ID, update BrandProfileUpdate) (Brand, error) {
	brand, ok := store.brands[brandID.String()]
	if !ok {
		return Brand{}, ErrBrandNotFound
	}
	if update.Name != nil {
		brand.Name = *update.Name
	}
	if update.Logo != nil {
		brand.Logo = *update.Logo
	}
	if update.Industry != nil {
		brand.Industry = *update.Industry
	}
	store.brands[brandID.String()] = brand
	return brand, nil
}

func (store *stubStore) InsertCreator(_ context.Context, creator Creator) (string, error) {
	creator.CreatorID = store.allocateID("creator")
	store.creators[creator.CreatorID] = creator
	return creator.CreatorID, nil
}

func (store *stubStore) GetCreator(_ context.Context, creatorID ID) (Creator, error) {
	creator, ok := store.creators[creatorID.String()]
	if !ok {
		return Creator{}, ErrCreatorNotFound
	}
	return creator, nil
}

func (store *stubStore) ListCreators(_ context.Context) ([]Creator, error) {
	creators := make([]Creator, 0, len(store.creators))
	for _, creator := range store.creators {
		creators = append(creators, creator)
	}
	return creators, nil
}

func (store *stubStore) InsertCampaign(_ context.Context, campaign Campaign) (string, error) {
	if store.insertCampaignError != nil {
		return "", store.insertCampaignError
	}
	campaign.CampaignID = store.allocateID("campaign")
	store.campaigns[campaign.CampaignID] = campaign
	return campaign.CampaignID, nil
}

func (store *stubStore) GetCampaign(_ context.Context, campaignID ID) (Campaign, error) {
	campaign, ok := store.campaigns[campaignID.String()]
	if !ok {
		return Campaign{}, ErrCampaignNotFound
	}
	return campaign, nil
}

func (store *stubStore) ListCampaigns(_ context.Context) ([]Campaign, error) {
	campaigns := make([]Campaign, 0, len(store.campaigns))
	for _, campaign := range store.campaigns {
		campaigns = append(campaigns, campaign)
	}
	return campaigns, nil
}

func (store *stubStore) ListCampaignsByBrand(_ context.Context, brandID ID) ([]Campaign, error) {
	campaigns := make([]Campaign, 0)
	for _, campaign := range store.campaigns {
		if campaign.BrandID == brandID.String() {
			campaigns = append(campaigns, campaign)
		}
	}
	return campaigns, nil
}

func (store *stubStore) DeleteCampaignCascade(_ context.Context, campaignID ID) (CascadeResult, error) {
	if store.cascadeError != nil {
		return CascadeResult{}, store.cascadeError
	}
	if _, ok := store.campaigns[campaignID.String()]; !ok {
		return CascadeResult{}, ErrCampaignNotFound
	}
	delete(store.campaigns, campaignID.String())
	return store.lastCascadeResult, nil
}

func mustID(test *testing.T, raw string) ID {
	test.Helper()
	id, err := NewID(raw)
	if err != nil {
		test.Fatalf("new id %q: %v", raw, err)
	}
	return id
}

func TestNewServiceRequiresStore(test *testing.T) {
	test.Parallel()
	if _, err := NewService(nil, nil); !errors.Is(err, ErrInvalidServiceConfig) {
		test.Fatalf("expected %v, got %v", ErrInvalidServiceConfig, err)
	}
}

func TestCreateBrandRequiresName(test *testing.T) {
	test.Parallel()
	service, err := NewService(newStubStore(), nil)
	if err != nil {
		test.Fatalf("new service: %v", err)
	}
	if _, err := service.CreateBrand(context.Background(), Brand{Name: "   "}); !errors.Is(err, ErrInvalidBrand) {
		test.Fatalf("expected %v, got %v", ErrInvalidBrand, err)
	}
}

func TestCreateBrandStartsWithEmptyWallet(test *testing.T) {
	test.Parallel()
	service, err := NewService(newStubStore(), nil)
	if err != nil {
		test.Fatalf("new service: %v", err)
	}
	created, err := service.CreateBrand(context.Background(), Brand{
		Name:               "Acme",
		WalletBalanceCents: 999999,
	})
	if err != nil {
		test.Fatalf("create brand: %v", err)
	}
	if created.WalletBalanceCents != 0 {
		test.Fatalf("signup seeded a wallet balance: %d", created.WalletBalanceCents)
	}
	if created.BrandID == "" {
		test.Fatalf("missing brand id")
	}
}

func TestCreateCampaignRequiresExistingBrand(test *testing.T) {
	test.Parallel()
	service, err := NewService(newStubStore(), nil)
	if err != nil {
		test.Fatalf("new service: %v", err)
	}
	_, err = service.CreateCampaign(context.Background(), Campaign{
		BrandID: "brand-missing",
		Title:   "Launch",
	})
	if !errors.Is(err, ErrBrandNotFound) {
		test.Fatalf("expected %v, got %v", ErrBrandNotFound, err)
	}
}

func TestCreateCampaignRequiresTitle(test *testing.T) {
	test.Parallel()
	service, err := NewService(newStubStore(), nil)
	if err != nil {
		test.Fatalf("new service: %v", err)
	}
	if _, err := service.CreateCampaign(context.Background(), Campaign{BrandID: "brand-1"}); !errors.Is(err, ErrInvalidCampaign) {
		test.Fatalf("expected %v, got %v", ErrInvalidCampaign, err)
	}
}

func TestUpdateBrandProfileLeavesNilFieldsUntouched(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	service, err := NewService(store, nil)
	if err != nil {
		test.Fatalf("new service: %v", err)
	}
	created, err := service.CreateBrand(context.Background(), Brand{Name: "Acme", Industry: "fashion"})
	if err != nil {
		test.Fatalf("create brand: %v", err)
	}

	newName := "Acme Studios"
	updated, err := service.UpdateBrandProfile(context.Background(), mustID(test, created.BrandID), BrandProfileUpdate{Name: &newName})
	if err != nil {
		test.Fatalf("update profile: %v", err)
	}
	if updated.Name != newName {
		test.Fatalf("name not updated: %q", updated.Name)
	}
	if updated.Industry != "fashion" {
		test.Fatalf("nil field was overwritten: %q", updated.Industry)
	}
}

func TestDeleteCampaignPropagatesNotFound(test *testing.T) {
	test.Parallel()
	service, err := NewService(newStubStore(), nil)
	if err != nil {
		test.Fatalf("new service: %v", err)
	}
	if err := service.DeleteCampaign(context.Background(), mustID(test, "campaign-missing")); !errors.Is(err, ErrCampaignNotFound) {
		test.Fatalf("expected %v, got %v", ErrCampaignNotFound, err)
	}
}

func TestDeleteCampaignRemovesCampaign(test *testing.T) {
	test.Parallel()
	store := newStubStore()
	store.lastCascadeResult = CascadeResult{ApplicationsDeleted: 2, MessagesDeleted: 5}
	service, err := NewService(store, nil)
	if err != nil {
		test.Fatalf("new service: %v", err)
	}
	brand, err := service.CreateBrand(context.Background(), Brand{Name: "Acme"})
	if err != nil {
		test.Fatalf("create brand: %v", err)
	}
	campaign, err := service.CreateCampaign(context.Background(), Campaign{BrandID: brand.BrandID, Title: "Launch"})
	if err != nil {
		test.Fatalf("create campaign: %v", err)
	}

	if err := service.DeleteCampaign(context.Background(), mustID(test, campaign.CampaignID)); err != nil {
		test.Fatalf("delete campaign: %v", err)
	}
	if _, err := service.GetCampaign(context.Background(), mustID(test, campaign.CampaignID)); !errors.Is(err, ErrCampaignNotFound) {
		test.Fatalf("campaign survived delete: %v", err)
	}
}
