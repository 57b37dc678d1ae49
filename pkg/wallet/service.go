package wallet

import (
	"context"
	"fmt"
)

// Service contains the wallet ledger logic over a Store.
type Service struct {
	store     Store
	nowFn     func() int64
	logger    OperationLogger
	policy    Policy
	publisher EventPublisher
}

// NewService wires a Service.
func NewService(store Store, now func() int64, options ...ServiceOption) (*Service, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: store dependency is nil", ErrInvalidServiceConfig)
	}
	if now == nil {
		return nil, fmt.Errorf("%w: clock dependency is nil", ErrInvalidServiceConfig)
	}
	service := &Service{store: store, nowFn: now}
	for _, option := range options {
		if option != nil {
			option(service)
		}
	}
	return service, nil
}

// Balance returns the cached spendable balance for a brand.
func (service *Service) Balance(ctx context.Context, brandID BrandID) (BrandWallet, error) {
	return service.store.GetWallet(ctx, brandID)
}

// ListByBrand lists a brand's transactions, newest first.
func (service *Service) ListByBrand(ctx context.Context, brandID BrandID, limit int) ([]Transaction, error) {
	if _, err := service.store.GetWallet(ctx, brandID); err != nil {
		return nil, err
	}
	return service.store.ListTransactions(ctx, brandID, limit)
}

// TopUp appends a deposit and increments the cached balance. The supplied
// currency overwrites the wallet currency unless the policy keeps it.
func (service *Service) TopUp(ctx context.Context, brandID BrandID, amount PositiveAmountCents, currency Currency, reference string) (TransactionResult, error) {
	var result TransactionResult
	operationError := service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		brandWallet, err := transactionStore.GetWalletForUpdate(ctx, brandID)
		if err != nil {
			return err
		}
		newBalance := brandWallet.BalanceCents + amount.Int64()
		walletCurrency := currency.String()
		if service.policy.KeepCurrencyOnTopUp && brandWallet.Currency != "" {
			walletCurrency = brandWallet.Currency
		}
		if err := transactionStore.UpdateWallet(ctx, brandID, newBalance, walletCurrency); err != nil {
			return err
		}
		transactionID, err := transactionStore.InsertTransaction(ctx, TransactionInput{
			BrandID:        brandID,
			Type:           TransactionDeposit,
			AmountCents:    amount,
			Currency:       currency,
			Description:    descriptionTopUpPrefix + FormatCents(amount.Int64(), currency.String()),
			Reference:      reference,
			CreatedUnixUTC: service.nowFn(),
		})
		if err != nil {
			return err
		}
		result = TransactionResult{TransactionID: transactionID, NewBalanceCents: newBalance}
		return nil
	})
	service.logOperation(ctx, OperationLog{
		Operation:     operationTopUp,
		BrandID:       brandID,
		TransactionID: result.TransactionID,
		Amount:        amount.ToAmountCents(),
		Currency:      currency.String(),
		Error:         operationError,
	})
	return result, operationError
}

// LockEscrow earmarks funds for a campaign. The balance check and the debit
// run under a row lock so concurrent locks cannot overdraw.
func (service *Service) LockEscrow(ctx context.Context, brandID BrandID, campaignID CampaignID, amount PositiveAmountCents, currency Currency) (TransactionResult, error) {
	var result TransactionResult
	operationError := service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		brandWallet, err := transactionStore.GetWalletForUpdate(ctx, brandID)
		if err != nil {
			return err
		}
		if amount.Int64() > brandWallet.BalanceCents {
			return ErrInsufficientFunds
		}
		newBalance := brandWallet.BalanceCents - amount.Int64()
		if err := transactionStore.UpdateWallet(ctx, brandID, newBalance, brandWallet.Currency); err != nil {
			return err
		}
		transactionID, err := transactionStore.InsertTransaction(ctx, TransactionInput{
			BrandID:        brandID,
			Type:           TransactionEscrowLock,
			AmountCents:    amount,
			Currency:       currency,
			Description:    descriptionEscrowLock,
			CampaignID:     campaignID.String(),
			CreatedUnixUTC: service.nowFn(),
		})
		if err != nil {
			return err
		}
		result = TransactionResult{TransactionID: transactionID, NewBalanceCents: newBalance}
		return nil
	})
	service.logOperation(ctx, OperationLog{
		Operation:     operationLockEscrow,
		BrandID:       brandID,
		CampaignID:    campaignID.String(),
		TransactionID: result.TransactionID,
		Amount:        amount.ToAmountCents(),
		Currency:      currency.String(),
		Error:         operationError,
	})
	return result, operationError
}

// ReleaseEscrow records a payout of locked funds. Under the historical
// policy the spendable balance is not re-credited: the funds left it at lock
// time. A non-empty reference makes the release idempotent, so an approved
// deal's release can be re-attempted after a partial failure.
func (service *Service) ReleaseEscrow(ctx context.Context, brandID BrandID, campaignID CampaignID, amount PositiveAmountCents, currency Currency, reference string) (TransactionResult, error) {
	var result TransactionResult
	var replayed bool
	operationError := service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		brandWallet, err := transactionStore.GetWalletForUpdate(ctx, brandID)
		if err != nil {
			return err
		}
		if reference != "" {
			existing, found, err := transactionStore.FindTransactionByReference(ctx, brandID, TransactionEscrowRelease, reference)
			if err != nil {
				return err
			}
			if found {
				replayed = true
				result = TransactionResult{TransactionID: existing.TransactionID, NewBalanceCents: brandWallet.BalanceCents}
				return nil
			}
		}
		newBalance := brandWallet.BalanceCents
		if service.policy.CreditOnRelease {
			newBalance += amount.Int64()
			if err := transactionStore.UpdateWallet(ctx, brandID, newBalance, brandWallet.Currency); err != nil {
				return err
			}
		}
		transactionID, err := transactionStore.InsertTransaction(ctx, TransactionInput{
			BrandID:        brandID,
			Type:           TransactionEscrowRelease,
			AmountCents:    amount,
			Currency:       currency,
			Description:    descriptionEscrowRelease,
			Reference:      reference,
			CampaignID:     campaignID.String(),
			CreatedUnixUTC: service.nowFn(),
		})
		if err != nil {
			return err
		}
		result = TransactionResult{TransactionID: transactionID, NewBalanceCents: newBalance}
		return nil
	})
	service.logOperation(ctx, OperationLog{
		Operation:     operationReleaseEscrow,
		BrandID:       brandID,
		CampaignID:    campaignID.String(),
		TransactionID: result.TransactionID,
		Amount:        amount.ToAmountCents(),
		Currency:      currency.String(),
		Error:         operationError,
	})
	if operationError == nil && !replayed {
		service.publishEvent(ctx, Event{
			Kind:          EventEscrowReleased,
			BrandID:       brandID.String(),
			CampaignID:    campaignID.String(),
			TransactionID: result.TransactionID,
			AmountCents:   amount.Int64(),
			Currency:      currency.String(),
			Reference:     reference,
		})
	}
	return result, operationError
}

// Withdraw debits the spendable balance and appends a withdrawal.
func (service *Service) Withdraw(ctx context.Context, brandID BrandID, amount PositiveAmountCents, currency Currency, description string) (TransactionResult, error) {
	var result TransactionResult
	operationError := service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		brandWallet, err := transactionStore.GetWalletForUpdate(ctx, brandID)
		if err != nil {
			return err
		}
		if amount.Int64() > brandWallet.BalanceCents {
			return ErrInsufficientFunds
		}
		newBalance := brandWallet.BalanceCents - amount.Int64()
		if err := transactionStore.UpdateWallet(ctx, brandID, newBalance, brandWallet.Currency); err != nil {
			return err
		}
		transactionID, err := transactionStore.InsertTransaction(ctx, TransactionInput{
			BrandID:        brandID,
			Type:           TransactionWithdrawal,
			AmountCents:    amount,
			Currency:       currency,
			Description:    description,
			CreatedUnixUTC: service.nowFn(),
		})
		if err != nil {
			return err
		}
		result = TransactionResult{TransactionID: transactionID, NewBalanceCents: newBalance}
		return nil
	})
	service.logOperation(ctx, OperationLog{
		Operation:     operationWithdraw,
		BrandID:       brandID,
		TransactionID: result.TransactionID,
		Amount:        amount.ToAmountCents(),
		Currency:      currency.String(),
		Error:         operationError,
	})
	return result, operationError
}

// Refund returns escrowed funds to the spendable balance.
func (service *Service) Refund(ctx context.Context, brandID BrandID, campaignID CampaignID, amount PositiveAmountCents, currency Currency, description string) (TransactionResult, error) {
	var result TransactionResult
	operationError := service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		brandWallet, err := transactionStore.GetWalletForUpdate(ctx, brandID)
		if err != nil {
			return err
		}
		newBalance := brandWallet.BalanceCents + amount.Int64()
		if err := transactionStore.UpdateWallet(ctx, brandID, newBalance, brandWallet.Currency); err != nil {
			return err
		}
		transactionID, err := transactionStore.InsertTransaction(ctx, TransactionInput{
			BrandID:        brandID,
			Type:           TransactionRefund,
			AmountCents:    amount,
			Currency:       currency,
			Description:    description,
			CampaignID:     campaignID.String(),
			CreatedUnixUTC: service.nowFn(),
		})
		if err != nil {
			return err
		}
		result = TransactionResult{TransactionID: transactionID, NewBalanceCents: newBalance}
		return nil
	})
	service.logOperation(ctx, OperationLog{
		Operation:     operationRefund,
		BrandID:       brandID,
		CampaignID:    campaignID.String(),
		TransactionID: result.TransactionID,
		Amount:        amount.ToAmountCents(),
		Currency:      currency.String(),
		Error:         operationError,
	})
	return result, operationError
}

// Record appends a raw transaction without touching the cached balance. This
// is the audited escape hatch for externally settled movements; everyday
// mutations go through the typed operations above.
func (service *Service) Record(ctx context.Context, brandID BrandID, transactionType TransactionType, amount PositiveAmountCents, currency Currency, description string, reference string, campaignID string) (TransactionResult, error) {
	var result TransactionResult
	operationError := service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		brandWallet, err := transactionStore.GetWalletForUpdate(ctx, brandID)
		if err != nil {
			return err
		}
		transactionID, err := transactionStore.InsertTransaction(ctx, TransactionInput{
			BrandID:        brandID,
			Type:           transactionType,
			AmountCents:    amount,
			Currency:       currency,
			Description:    description,
			Reference:      reference,
			CampaignID:     campaignID,
			CreatedUnixUTC: service.nowFn(),
		})
		if err != nil {
			return err
		}
		result = TransactionResult{TransactionID: transactionID, NewBalanceCents: brandWallet.BalanceCents}
		return nil
	})
	service.logOperation(ctx, OperationLog{
		Operation:     operationRecord,
		BrandID:       brandID,
		CampaignID:    campaignID,
		TransactionID: result.TransactionID,
		Amount:        amount.ToAmountCents(),
		Currency:      currency.String(),
		Error:         operationError,
	})
	return result, operationError
}

func (service *Service) logOperation(ctx context.Context, entry OperationLog) {
	if service.logger == nil {
		return
	}
	if entry.Status == "" {
		if entry.Error != nil {
			entry.Status = operationStatusError
		} else {
			entry.Status = operationStatusOK
		}
	}
	service.logger.LogOperation(ctx, entry)
}
