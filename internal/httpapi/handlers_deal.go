package httpapi

import (
	"context"
	"net/http"

	"github.com/dealdeskhq/dealdesk/pkg/deal"
	"github.com/gin-gonic/gin"
)

func (handler *httpHandler) handleApply(ctx *gin.Context) {
	var request applyRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	campaignID, err := deal.NewCampaignID(request.CampaignID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	creatorID, err := deal.NewCreatorID(request.CreatorID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	matchScore, err := deal.NewMatchScore(request.MatchScore)
	if err != nil {
		respondError(ctx, err)
		return
	}
	bid, err := deal.NewOfferAmountCents(request.BidAmountCents)
	if err != nil {
		respondError(ctx, err)
		return
	}
	created, err := handler.deals.Apply(ctx.Request.Context(), deal.ApplyInput{
		CampaignID:     campaignID,
		CreatorID:      creatorID,
		MatchScore:     matchScore,
		BidAmountCents: bid,
		BidCurrency:    request.BidCurrency,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"application": applicationPayloadFrom(created)})
}

func (handler *httpHandler) handleCreateOutreach(ctx *gin.Context) {
	var request outreachRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	brandID, err := deal.NewBrandID(request.BrandID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	campaignID, err := deal.NewCampaignID(request.CampaignID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	creatorID, err := deal.NewCreatorID(request.CreatorID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	offer, err := deal.NewOfferAmountCents(request.OfferedAmountCents)
	if err != nil {
		respondError(ctx, err)
		return
	}
	message, err := deal.NewMessageBody(request.InitialMessage)
	if err != nil {
		respondError(ctx, err)
		return
	}
	matchScore, err := deal.NewMatchScore(request.MatchScore)
	if err != nil {
		respondError(ctx, err)
		return
	}
	created, err := handler.deals.CreateOutreach(ctx.Request.Context(), deal.OutreachInput{
		BrandID:            brandID,
		CampaignID:         campaignID,
		CreatorID:          creatorID,
		OfferedAmountCents: offer,
		OfferedCurrency:    request.OfferedCurrency,
		InitialMessage:     message,
		MatchScore:         matchScore,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"application": applicationPayloadFrom(created)})
}

func (handler *httpHandler) handleListApplications(ctx *gin.Context) {
	requestCtx := ctx.Request.Context()
	if creatorParam := ctx.Query("creator_id"); creatorParam != "" {
		creatorID, err := deal.NewCreatorID(creatorParam)
		if err != nil {
			respondError(ctx, err)
			return
		}
		applications, err := handler.deals.ListByCreator(requestCtx, creatorID)
		if err != nil {
			respondError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"applications": applicationPayloadsFrom(applications)})
		return
	}
	if statusParam := ctx.Query("status"); statusParam != "" {
		status, err := deal.ParseStatus(statusParam)
		if err != nil {
			respondError(ctx, err)
			return
		}
		applications, err := handler.deals.ListByStatus(requestCtx, status)
		if err != nil {
			respondError(ctx, err)
			return
		}
		ctx.JSON(http.StatusOK, gin.H{"applications": applicationPayloadsFrom(applications)})
		return
	}
	ctx.JSON(http.StatusBadRequest, errorResponse("invalid_argument", "creator_id or status query is required"))
}

func (handler *httpHandler) handleListCampaignApplications(ctx *gin.Context) {
	campaignID, err := deal.NewCampaignID(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	applications, err := handler.deals.ListByCampaign(ctx.Request.Context(), campaignID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"applications": applicationPayloadsFrom(applications)})
}

func (handler *httpHandler) handleGetApplication(ctx *gin.Context) {
	applicationID, err := deal.NewApplicationID(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	application, err := handler.deals.Get(ctx.Request.Context(), applicationID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"application": applicationPayloadFrom(application)})
}

func (handler *httpHandler) handleAcceptOffer(ctx *gin.Context) {
	handler.respondToOffer(ctx, handler.deals.AcceptOffer)
}

func (handler *httpHandler) handleDeclineOffer(ctx *gin.Context) {
	handler.respondToOffer(ctx, handler.deals.DeclineOffer)
}

func (handler *httpHandler) respondToOffer(ctx *gin.Context, respond func(requestCtx context.Context, applicationID deal.ApplicationID) (deal.Application, error)) {
	applicationID, err := deal.NewApplicationID(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	updated, err := respond(ctx.Request.Context(), applicationID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"application": applicationPayloadFrom(updated)})
}

func (handler *httpHandler) handleUpdateStatus(ctx *gin.Context) {
	applicationID, err := deal.NewApplicationID(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	var request statusRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	to, err := deal.ParseStatus(request.Status)
	if err != nil {
		respondError(ctx, err)
		return
	}
	updated, err := handler.deals.UpdateStatus(ctx.Request.Context(), applicationID, to)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"application": applicationPayloadFrom(updated)})
}

func (handler *httpHandler) handleOverrideStatus(ctx *gin.Context) {
	applicationID, err := deal.NewApplicationID(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	var request overrideRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	to, err := deal.ParseStatus(request.Status)
	if err != nil {
		respondError(ctx, err)
		return
	}
	updated, err := handler.deals.OverrideStatus(ctx.Request.Context(), applicationID, to, request.Reason)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"application": applicationPayloadFrom(updated)})
}

func (handler *httpHandler) handleSubmitDraft(ctx *gin.Context) {
	applicationID, err := deal.NewApplicationID(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	var request draftRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	url, err := deal.NewDraftURL(request.URL)
	if err != nil {
		respondError(ctx, err)
		return
	}
	updated, err := handler.deals.SubmitDraft(ctx.Request.Context(), applicationID, url)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"application": applicationPayloadFrom(updated)})
}

func (handler *httpHandler) handleDecideContent(ctx *gin.Context) {
	applicationID, err := deal.NewApplicationID(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	var request decisionRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	decision, err := deal.ParseContentDecision(request.Decision)
	if err != nil {
		respondError(ctx, err)
		return
	}
	updated, err := handler.deals.DecideContent(ctx.Request.Context(), applicationID, decision, request.Notes)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"application": applicationPayloadFrom(updated)})
}

func (handler *httpHandler) handleRemoveApplication(ctx *gin.Context) {
	applicationID, err := deal.NewApplicationID(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	if err := handler.deals.Remove(ctx.Request.Context(), applicationID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

func (handler *httpHandler) handleSendMessage(ctx *gin.Context) {
	claims := getClaims(ctx)
	applicationID, err := deal.NewApplicationID(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	var request messageRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	senderType, err := deal.ParsePartyType(claims.ActorType)
	if err != nil {
		respondError(ctx, err)
		return
	}
	content, err := deal.NewMessageBody(request.Content)
	if err != nil {
		respondError(ctx, err)
		return
	}
	messageID, err := handler.deals.SendMessage(ctx.Request.Context(), deal.MessageInput{
		ApplicationID: applicationID,
		SenderID:      claims.ActorID,
		SenderType:    senderType,
		Content:       content,
	})
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, gin.H{"message_id": messageID})
}

func (handler *httpHandler) handleListMessages(ctx *gin.Context) {
	applicationID, err := deal.NewApplicationID(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	messages, err := handler.deals.ListMessages(ctx.Request.Context(), applicationID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	payloads := make([]messagePayload, 0, len(messages))
	for _, message := range messages {
		payloads = append(payloads, messagePayloadFrom(message))
	}
	ctx.JSON(http.StatusOK, gin.H{"messages": payloads})
}

func (handler *httpHandler) handleMarkAsRead(ctx *gin.Context) {
	claims := getClaims(ctx)
	applicationID, err := deal.NewApplicationID(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	readerType, err := deal.ParsePartyType(claims.ActorType)
	if err != nil {
		respondError(ctx, err)
		return
	}
	if err := handler.deals.MarkAsRead(ctx.Request.Context(), applicationID, readerType); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (handler *httpHandler) handleUnreadCount(ctx *gin.Context) {
	brandID, err := deal.NewBrandID(ctx.Param("id"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	count, err := handler.deals.UnreadCountForBrand(ctx.Request.Context(), brandID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"unread_count": count})
}

type applyRequest struct {
	CampaignID     string `json:"campaign_id"`
	CreatorID      string `json:"creator_id"`
	MatchScore     int    `json:"match_score"`
	BidAmountCents int64  `json:"bid_amount_cents"`
	BidCurrency    string `json:"bid_currency"`
}

type outreachRequest struct {
	BrandID            string `json:"brand_id"`
	CampaignID         string `json:"campaign_id"`
	CreatorID          string `json:"creator_id"`
	OfferedAmountCents int64  `json:"offered_amount_cents"`
	OfferedCurrency    string `json:"offered_currency"`
	InitialMessage     string `json:"initial_message"`
	MatchScore         int    `json:"match_score"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type overrideRequest struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

type draftRequest struct {
	URL string `json:"url"`
}

type decisionRequest struct {
	Decision string `json:"decision"`
	Notes    string `json:"notes"`
}

type messageRequest struct {
	Content string `json:"content"`
}

type applicationPayload struct {
	ApplicationID      string `json:"application_id"`
	CampaignID         string `json:"campaign_id"`
	CreatorID          string `json:"creator_id"`
	Status             string `json:"status"`
	InitiatedBy        string `json:"initiated_by"`
	MatchScore         int    `json:"match_score"`
	BidAmountCents     int64  `json:"bid_amount_cents"`
	BidCurrency        string `json:"bid_currency"`
	OfferedAmountCents int64  `json:"offered_amount_cents"`
	OfferedCurrency    string `json:"offered_currency"`
	ContentDraftURL    string `json:"content_draft_url"`
	ContentStatus      string `json:"content_status"`
	Notes              string `json:"notes"`
	CreatedUnixMilli   int64  `json:"created_unix_milli"`
}

func applicationPayloadFrom(application deal.Application) applicationPayload {
	return applicationPayload{
		ApplicationID:      application.ApplicationID,
		CampaignID:         application.CampaignID,
		CreatorID:          application.CreatorID,
		Status:             application.Status.String(),
		InitiatedBy:        application.InitiatedBy.String(),
		MatchScore:         application.MatchScore,
		BidAmountCents:     application.BidAmountCents,
		BidCurrency:        application.BidCurrency,
		OfferedAmountCents: application.OfferedAmountCents,
		OfferedCurrency:    application.OfferedCurrency,
		ContentDraftURL:    application.ContentDraftURL,
		ContentStatus:      application.ContentStatus.String(),
		Notes:              application.Notes,
		CreatedUnixMilli:   application.CreatedUnixMilli,
	}
}

func applicationPayloadsFrom(applications []deal.Application) []applicationPayload {
	payloads := make([]applicationPayload, 0, len(applications))
	for _, application := range applications {
		payloads = append(payloads, applicationPayloadFrom(application))
	}
	return payloads
}

type messagePayload struct {
	MessageID        string `json:"message_id"`
	ApplicationID    string `json:"application_id"`
	SenderID         string `json:"sender_id"`
	SenderType       string `json:"sender_type"`
	Content          string `json:"content"`
	IsRead           bool   `json:"is_read"`
	CreatedUnixMilli int64  `json:"created_unix_milli"`
}

func messagePayloadFrom(message deal.Message) messagePayload {
	return messagePayload{
		MessageID:        message.MessageID,
		ApplicationID:    message.ApplicationID,
		SenderID:         message.SenderID,
		SenderType:       message.SenderType.String(),
		Content:          message.Content,
		IsRead:           message.IsRead,
		CreatedUnixMilli: message.CreatedUnixMilli,
	}
}
