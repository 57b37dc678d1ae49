// Package logging adapts the domain operation hooks to zap.
package logging

import (
	"context"

	"github.com/dealdeskhq/dealdesk/pkg/deal"
	"github.com/dealdeskhq/dealdesk/pkg/wallet"
	"go.uber.org/zap"
)

// DealLogger forwards deal operation logs to a zap logger.
type DealLogger struct {
	logger *zap.Logger
}

// NewDealLogger wraps a zap logger for the deal service hook.
func NewDealLogger(logger *zap.Logger) *DealLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DealLogger{logger: logger}
}

func (dealLogger *DealLogger) LogOperation(ctx context.Context, entry deal.OperationLog) {
	fields := []zap.Field{
		zap.String("operation", entry.Operation),
		zap.String("status", entry.Status),
	}
	if entry.ApplicationID != "" {
		fields = append(fields, zap.String("application_id", entry.ApplicationID))
	}
	if entry.CampaignID != "" {
		fields = append(fields, zap.String("campaign_id", entry.CampaignID))
	}
	if entry.CreatorID != "" {
		fields = append(fields, zap.String("creator_id", entry.CreatorID))
	}
	if entry.FromStatus != "" {
		fields = append(fields, zap.String("from_status", entry.FromStatus.String()))
	}
	if entry.ToStatus != "" {
		fields = append(fields, zap.String("to_status", entry.ToStatus.String()))
	}
	if entry.Reason != "" {
		fields = append(fields, zap.String("reason", entry.Reason))
	}
	if entry.Error != nil {
		fields = append(fields, zap.Error(entry.Error))
		dealLogger.logger.Warn("deal operation", fields...)
		return
	}
	dealLogger.logger.Info("deal operation", fields...)
}

// WalletLogger forwards wallet operation logs to a zap logger.
type WalletLogger struct {
	logger *zap.Logger
}

// NewWalletLogger wraps a zap logger for the wallet service hook.
func NewWalletLogger(logger *zap.Logger) *WalletLogger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WalletLogger{logger: logger}
}

func (walletLogger *WalletLogger) LogOperation(ctx context.Context, entry wallet.OperationLog) {
	fields := []zap.Field{
		zap.String("operation", entry.Operation),
		zap.String("status", entry.Status),
		zap.String("brand_id", entry.BrandID.String()),
		zap.Int64("amount_cents", int64(entry.Amount)),
		zap.String("currency", entry.Currency),
	}
	if entry.CampaignID != "" {
		fields = append(fields, zap.String("campaign_id", entry.CampaignID))
	}
	if entry.TransactionID != "" {
		fields = append(fields, zap.String("transaction_id", entry.TransactionID))
	}
	if entry.Error != nil {
		fields = append(fields, zap.Error(entry.Error))
		walletLogger.logger.Warn("wallet operation", fields...)
		return
	}
	walletLogger.logger.Info("wallet operation", fields...)
}
