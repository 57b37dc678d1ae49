package httpapi

import (
	"net/http"
	"strconv"

	"github.com/dealdeskhq/dealdesk/pkg/wallet"
	"github.com/gin-gonic/gin"
)

const defaultTransactionLimit = 50

// Wallet routes act on the session brand; only the admin-only record route
// names a brand explicitly.
func (handler *httpHandler) sessionBrandID(ctx *gin.Context) (wallet.BrandID, bool) {
	claims := getClaims(ctx)
	brandID, err := wallet.NewBrandID(claims.ActorID)
	if err != nil {
		respondError(ctx, err)
		return wallet.BrandID{}, false
	}
	return brandID, true
}

func (handler *httpHandler) handleWalletBalance(ctx *gin.Context) {
	brandID, ok := handler.sessionBrandID(ctx)
	if !ok {
		return
	}
	brandWallet, err := handler.wallets.Balance(ctx.Request.Context(), brandID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"wallet": walletPayloadFrom(brandWallet)})
}

func (handler *httpHandler) handleWalletTransactions(ctx *gin.Context) {
	brandID, ok := handler.sessionBrandID(ctx)
	if !ok {
		return
	}
	limit := defaultTransactionLimit
	if limitParam := ctx.Query("limit"); limitParam != "" {
		parsed, err := strconv.Atoi(limitParam)
		if err != nil || parsed <= 0 {
			ctx.JSON(http.StatusBadRequest, errorResponse("invalid_argument", "limit must be a positive integer"))
			return
		}
		limit = parsed
	}
	transactions, err := handler.wallets.ListByBrand(ctx.Request.Context(), brandID, limit)
	if err != nil {
		respondError(ctx, err)
		return
	}
	payloads := make([]transactionPayload, 0, len(transactions))
	for _, transaction := range transactions {
		payloads = append(payloads, transactionPayloadFrom(transaction))
	}
	ctx.JSON(http.StatusOK, gin.H{"transactions": payloads})
}

func (handler *httpHandler) handleTopUp(ctx *gin.Context) {
	brandID, ok := handler.sessionBrandID(ctx)
	if !ok {
		return
	}
	var request amountRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	amount, currency, ok := parseAmount(ctx, request)
	if !ok {
		return
	}
	result, err := handler.wallets.TopUp(ctx.Request.Context(), brandID, amount, currency, request.Reference)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"result": resultPayloadFrom(result)})
}

func (handler *httpHandler) handleLockEscrow(ctx *gin.Context) {
	brandID, ok := handler.sessionBrandID(ctx)
	if !ok {
		return
	}
	var request escrowRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	campaignID, amount, currency, ok := parseEscrow(ctx, request)
	if !ok {
		return
	}
	result, err := handler.wallets.LockEscrow(ctx.Request.Context(), brandID, campaignID, amount, currency)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"result": resultPayloadFrom(result)})
}

func (handler *httpHandler) handleReleaseEscrow(ctx *gin.Context) {
	brandID, ok := handler.sessionBrandID(ctx)
	if !ok {
		return
	}
	var request escrowRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	campaignID, amount, currency, ok := parseEscrow(ctx, request)
	if !ok {
		return
	}
	result, err := handler.wallets.ReleaseEscrow(ctx.Request.Context(), brandID, campaignID, amount, currency, request.Reference)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"result": resultPayloadFrom(result)})
}

func (handler *httpHandler) handleWithdraw(ctx *gin.Context) {
	brandID, ok := handler.sessionBrandID(ctx)
	if !ok {
		return
	}
	var request amountRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	amount, currency, ok := parseAmount(ctx, request)
	if !ok {
		return
	}
	result, err := handler.wallets.Withdraw(ctx.Request.Context(), brandID, amount, currency, request.Description)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"result": resultPayloadFrom(result)})
}

func (handler *httpHandler) handleRefund(ctx *gin.Context) {
	brandID, ok := handler.sessionBrandID(ctx)
	if !ok {
		return
	}
	var request escrowRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	campaignID, amount, currency, ok := parseEscrow(ctx, request)
	if !ok {
		return
	}
	result, err := handler.wallets.Refund(ctx.Request.Context(), brandID, campaignID, amount, currency, request.Description)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"result": resultPayloadFrom(result)})
}

func (handler *httpHandler) handleRecordTransaction(ctx *gin.Context) {
	var request recordRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_payload", "expected JSON body"))
		return
	}
	brandID, err := wallet.NewBrandID(request.BrandID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	transactionType, err := wallet.ParseTransactionType(request.Type)
	if err != nil {
		respondError(ctx, err)
		return
	}
	amount, err := wallet.NewPositiveAmountCents(request.AmountCents)
	if err != nil {
		respondError(ctx, err)
		return
	}
	currency, err := wallet.NewCurrency(request.Currency)
	if err != nil {
		respondError(ctx, err)
		return
	}
	result, err := handler.wallets.Record(ctx.Request.Context(), brandID, transactionType, amount, currency, request.Description, request.Reference, request.CampaignID)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"result": resultPayloadFrom(result)})
}

func parseAmount(ctx *gin.Context, request amountRequest) (wallet.PositiveAmountCents, wallet.Currency, bool) {
	amount, err := wallet.NewPositiveAmountCents(request.AmountCents)
	if err != nil {
		respondError(ctx, err)
		return 0, wallet.Currency{}, false
	}
	currency, err := wallet.NewCurrency(request.Currency)
	if err != nil {
		respondError(ctx, err)
		return 0, wallet.Currency{}, false
	}
	return amount, currency, true
}

func parseEscrow(ctx *gin.Context, request escrowRequest) (wallet.CampaignID, wallet.PositiveAmountCents, wallet.Currency, bool) {
	campaignID, err := wallet.NewCampaignID(request.CampaignID)
	if err != nil {
		respondError(ctx, err)
		return wallet.CampaignID{}, 0, wallet.Currency{}, false
	}
	amount, err := wallet.NewPositiveAmountCents(request.AmountCents)
	if err != nil {
		respondError(ctx, err)
		return wallet.CampaignID{}, 0, wallet.Currency{}, false
	}
	currency, err := wallet.NewCurrency(request.Currency)
	if err != nil {
		respondError(ctx, err)
		return wallet.CampaignID{}, 0, wallet.Currency{}, false
	}
	return campaignID, amount, currency, true
}

type amountRequest struct {
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Reference   string `json:"reference"`
	Description string `json:"description"`
}

type escrowRequest struct {
	CampaignID  string `json:"campaign_id"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Reference   string `json:"reference"`
	Description string `json:"description"`
}

type recordRequest struct {
	BrandID     string `json:"brand_id"`
	Type        string `json:"type"`
	AmountCents int64  `json:"amount_cents"`
	Currency    string `json:"currency"`
	Description string `json:"description"`
	Reference   string `json:"reference"`
	CampaignID  string `json:"campaign_id"`
}

type walletPayload struct {
	BrandID      string `json:"brand_id"`
	BalanceCents int64  `json:"balance_cents"`
	Currency     string `json:"currency"`
	Display      string `json:"display"`
}

func walletPayloadFrom(brandWallet wallet.BrandWallet) walletPayload {
	return walletPayload{
		BrandID:      brandWallet.BrandID,
		BalanceCents: brandWallet.BalanceCents,
		Currency:     brandWallet.Currency,
		Display:      wallet.FormatCents(brandWallet.BalanceCents, brandWallet.Currency),
	}
}

type transactionPayload struct {
	TransactionID  string `json:"transaction_id"`
	Type           string `json:"type"`
	AmountCents    int64  `json:"amount_cents"`
	Currency       string `json:"currency"`
	Description    string `json:"description"`
	Reference      string `json:"reference"`
	CampaignID     string `json:"campaign_id"`
	CreatedUnixUTC int64  `json:"created_unix_utc"`
}

func transactionPayloadFrom(transaction wallet.Transaction) transactionPayload {
	return transactionPayload{
		TransactionID:  transaction.TransactionID,
		Type:           transaction.Type.String(),
		AmountCents:    transaction.AmountCents,
		Currency:       transaction.Currency,
		Description:    transaction.Description,
		Reference:      transaction.Reference,
		CampaignID:     transaction.CampaignID,
		CreatedUnixUTC: transaction.CreatedUnixUTC,
	}
}

type resultPayload struct {
	TransactionID   string `json:"transaction_id"`
	NewBalanceCents int64  `json:"new_balance_cents"`
}

func resultPayloadFrom(result wallet.TransactionResult) resultPayload {
	return resultPayload{
		TransactionID:   result.TransactionID,
		NewBalanceCents: result.NewBalanceCents,
	}
}
