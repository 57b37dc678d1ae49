package httpapi

import (
	"errors"
	"net/http"

	"github.com/dealdeskhq/dealdesk/pkg/deal"
	"github.com/dealdeskhq/dealdesk/pkg/directory"
	"github.com/dealdeskhq/dealdesk/pkg/wallet"
	"github.com/gin-gonic/gin"
)

// respondError maps domain errors onto HTTP statuses and a stable error code.
func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, deal.ErrApplicationNotFound),
		errors.Is(err, deal.ErrCampaignNotFound),
		errors.Is(err, deal.ErrCreatorNotFound),
		errors.Is(err, directory.ErrBrandNotFound),
		errors.Is(err, directory.ErrCreatorNotFound),
		errors.Is(err, directory.ErrCampaignNotFound),
		errors.Is(err, wallet.ErrBrandNotFound):
		ctx.JSON(http.StatusNotFound, errorResponse("not_found", err.Error()))
	case errors.Is(err, deal.ErrDuplicateOffer):
		ctx.JSON(http.StatusConflict, errorResponse("duplicate_offer", err.Error()))
	case errors.Is(err, deal.ErrInvalidState):
		ctx.JSON(http.StatusConflict, errorResponse("invalid_state", err.Error()))
	case errors.Is(err, deal.ErrNoDraftSubmitted):
		ctx.JSON(http.StatusConflict, errorResponse("no_draft_submitted", err.Error()))
	case errors.Is(err, wallet.ErrInsufficientFunds):
		ctx.JSON(http.StatusConflict, errorResponse("insufficient_funds", err.Error()))
	case isValidationError(err):
		ctx.JSON(http.StatusBadRequest, errorResponse("invalid_argument", err.Error()))
	default:
		ctx.JSON(http.StatusInternalServerError, errorResponse("internal", "internal error"))
	}
}

func isValidationError(err error) bool {
	validationErrors := []error{
		deal.ErrInvalidApplicationID,
		deal.ErrInvalidCampaignID,
		deal.ErrInvalidCreatorID,
		deal.ErrInvalidBrandID,
		deal.ErrInvalidStatus,
		deal.ErrInvalidPartyType,
		deal.ErrInvalidContentStatus,
		deal.ErrInvalidDecision,
		deal.ErrInvalidMatchScore,
		deal.ErrInvalidMessageBody,
		deal.ErrInvalidDraftURL,
		deal.ErrInvalidAmountCents,
		wallet.ErrInvalidBrandID,
		wallet.ErrInvalidCampaignID,
		wallet.ErrInvalidCurrency,
		wallet.ErrInvalidAmountCents,
		wallet.ErrInvalidTransactionType,
		directory.ErrInvalidID,
		directory.ErrInvalidBrand,
		directory.ErrInvalidCreator,
		directory.ErrInvalidCampaign,
	}
	for _, candidate := range validationErrors {
		if errors.Is(err, candidate) {
			return true
		}
	}
	return false
}

func errorResponse(code string, message string) gin.H {
	return gin.H{
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	}
}
