package httpapi

import (
	"net/http"

	"github.com/dealdeskhq/dealdesk/pkg/directory"
	"github.com/gin-gonic/gin"
)

func (handler *httpHandler) handleCreateBrand(ctx *gin.Context) {
	var request brandRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	created, err := handler.directory.CreateBrand(ctx.Request.Context(), directory.Brand{
		Name:     request.Name,
		Logo:     request.Logo,
		Industry: request.Industry,
		Verified: request.Verified,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"brand": brandPayloadFrom(created)})
}

func (handler *httpHandler) handleListBrands(ctx *gin.Context) {
	brands, err := handler.directory.ListBrands(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	payloads := make([]brandPayload, 0, len(brands))
	for _, brand := range brands {
		payloads = append(payloads, brandPayloadFrom(brand))
	}
	ctx.JSON(http.StatusOK, gin.H{"brands": payloads})
}

func (handler *httpHandler) handleGetBrand(ctx *gin.Context) {
	brandID, err := directory.NewID(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	brand, err := handler.directory.GetBrand(ctx.Request.Context(), brandID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"brand": brandPayloadFrom(brand)})
}

func (handler *httpHandler) handleUpdateBrand(ctx *gin.Context) {
	brandID, err := directory.NewID(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	var request brandUpdateRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	updated, err := handler.directory.UpdateBrandProfile(ctx.Request.Context(), brandID, directory.BrandProfileUpdate{
		Name:     request.Name,
		Logo:     request.Logo,
		Industry: request.Industry,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"brand": brandPayloadFrom(updated)})
}

func (handler *httpHandler) handleListBrandCampaigns(ctx *gin.Context) {
	brandID, err := directory.NewID(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	campaigns, err := handler.directory.ListCampaignsByBrand(ctx.Request.Context(), brandID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"campaigns": campaignPayloadsFrom(campaigns)})
}

func (handler *httpHandler) handleCreateCreator(ctx *gin.Context) {
	var request creatorRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	created, err := handler.directory.CreateCreator(ctx.Request.Context(), directory.Creator{
		Name:               request.Name,
		Initials:           request.Initials,
		Verified:           request.Verified,
		Bio:                request.Bio,
		Category:           request.Category,
		Platform:           request.Platform,
		StartingPriceCents: request.StartingPriceCents,
		Currency:           request.Currency,
		AvailableSlots:     request.AvailableSlots,
		TrustScore:         request.TrustScore,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"creator": creatorPayloadFrom(created)})
}

func (handler *httpHandler) handleListCreators(ctx *gin.Context) {
	creators, err := handler.directory.ListCreators(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	payloads := make([]creatorPayload, 0, len(creators))
	for _, creator := range creators {
		payloads = append(payloads, creatorPayloadFrom(creator))
	}
	ctx.JSON(http.StatusOK, gin.H{"creators": payloads})
}

func (handler *httpHandler) handleGetCreator(ctx *gin.Context) {
	creatorID, err := directory.NewID(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	creator, err := handler.directory.GetCreator(ctx.Request.Context(), creatorID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"creator": creatorPayloadFrom(creator)})
}

func (handler *httpHandler) handleCreateCampaign(ctx *gin.Context) {
	var request campaignRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	created, err := handler.directory.CreateCampaign(ctx.Request.Context(), directory.Campaign{
		BrandID:      request.BrandID,
		Title:        request.Title,
		BudgetCents:  request.BudgetCents,
		Currency:     request.Currency,
		Platform:     request.Platform,
		CampaignType: request.CampaignType,
		MinFollowers: request.MinFollowers,
		Spots:        request.Spots,
		Deadline:     request.Deadline,
		Description:  request.Description,
		Requirements: request.Requirements,
		Audience:     request.Audience,
		TrustScore:   request.TrustScore,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"campaign": campaignPayloadFrom(created)})
}

func (handler *httpHandler) handleListCampaigns(ctx *gin.Context) {
	campaigns, err := handler.directory.ListCampaigns(ctx.Request.Context())
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"campaigns": campaignPayloadsFrom(campaigns)})
}

func (handler *httpHandler) handleGetCampaign(ctx *gin.Context) {
	campaignID, err := directory.NewID(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	campaign, err := handler.directory.GetCampaign(ctx.Request.Context(), campaignID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"campaign": campaignPayloadFrom(campaign)})
}

func (handler *httpHandler) handleDeleteCampaign(ctx *gin.Context) {
	campaignID, err := directory.NewID(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if err := handler.directory.DeleteCampaign(ctx.Request.Context(), campaignID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

type brandRequest struct {
	Name     string `json:"name"`
	Logo     string `json:"logo"`
	Industry string `json:"industry"`
	Verified bool   `json:"verified"`
}

type brandUpdateRequest struct {
	Name     *string `json:"name"`
	Logo     *string `json:"logo"`
	Industry *string `json:"industry"`
}

type brandPayload struct {
	BrandID            string `json:"brand_id"`
	Name               string `json:"name"`
	Logo               string `json:"logo"`
	Industry           string `json:"industry"`
	Verified           bool   `json:"verified"`
	WalletBalanceCents int64  `json:"wallet_balance_cents"`
	WalletCurrency     string `json:"wallet_currency"`
}

func brandPayloadFrom(brand directory.Brand) brandPayload {
	return brandPayload{
		BrandID:            brand.BrandID,
		Name:               brand.Name,
		Logo:               brand.Logo,
		Industry:           brand.Industry,
		Verified:           brand.Verified,
		WalletBalanceCents: brand.WalletBalanceCents,
		WalletCurrency:     brand.WalletCurrency,
	}
}

type creatorRequest struct {
	Name               string `json:"name"`
	Initials           string `json:"initials"`
	Verified           bool   `json:"verified"`
	Bio                string `json:"bio"`
	Category           string `json:"category"`
	Platform           string `json:"platform"`
	StartingPriceCents int64  `json:"starting_price_cents"`
	Currency           string `json:"currency"`
	AvailableSlots     int    `json:"available_slots"`
	TrustScore         string `json:"trust_score"`
}

type creatorPayload struct {
	CreatorID          string `json:"creator_id"`
	Name               string `json:"name"`
	Initials           string `json:"initials"`
	Verified           bool   `json:"verified"`
	Bio                string `json:"bio"`
	Category           string `json:"category"`
	Platform           string `json:"platform"`
	StartingPriceCents int64  `json:"starting_price_cents"`
	Currency           string `json:"currency"`
	AvailableSlots     int    `json:"available_slots"`
	TrustScore         string `json:"trust_score"`
}

func creatorPayloadFrom(creator directory.Creator) creatorPayload {
	return creatorPayload{
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
	}
}

type campaignRequest struct {
	BrandID      string             `json:"brand_id"`
	Title        string             `json:"title"`
	BudgetCents  int64              `json:"budget_cents"`
	Currency     string             `json:"currency"`
	Platform     string             `json:"platform"`
	CampaignType string             `json:"campaign_type"`
	MinFollowers string             `json:"min_followers"`
	Spots        int                `json:"spots"`
	Deadline     string             `json:"deadline"`
	Description  string             `json:"description"`
	Requirements []string           `json:"requirements"`
	Audience     directory.Audience `json:"audience"`
	TrustScore   string             `json:"trust_score"`
}

type campaignPayload struct {
	CampaignID   string             `json:"campaign_id"`
	BrandID      string             `json:"brand_id"`
	Title        string             `json:"title"`
	BudgetCents  int64              `json:"budget_cents"`
	Currency     string             `json:"currency"`
	Platform     string             `json:"platform"`
	CampaignType string             `json:"campaign_type"`
	MinFollowers string             `json:"min_followers"`
	Spots        int                `json:"spots"`
	Deadline     string             `json:"deadline"`
	Description  string             `json:"description"`
	Requirements []string           `json:"requirements"`
	Audience     directory.Audience `json:"audience"`
	TrustScore   string             `json:"trust_score"`
}

func campaignPayloadsFrom(campaigns []directory.Campaign) []campaignPayload {
	payloads := make([]campaignPayload, 0, len(campaigns))
	for _, campaign := range campaigns {
		payloads = append(payloads, campaignPayloadFrom(campaign))
	}
	return payloads
}

func campaignPayloadFrom(campaign directory.Campaign) campaignPayload {
	return campaignPayload{
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
		Requirements: campaign.Requirements,
		Audience:     campaign.Audience,
		TrustScore:   campaign.TrustScore,
	}
}
