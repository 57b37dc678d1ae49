package gormstore

import (
	"context"
	"errors"
	"time"

	"github.com/dealdeskhq/dealdesk/pkg/wallet"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// WalletStore implements wallet.Store against the brands and
// wallet_transactions tables.
type WalletStore struct {
	db *gorm.DB
}

// NewWalletStore returns a WalletStore backed by gorm.DB.
func NewWalletStore(db *gorm.DB) *WalletStore {
	return &WalletStore{db: db}
}

// WithTx executes fn within a transaction.
func (store *WalletStore) WithTx(ctx context.Context, fn func(ctx context.Context, txStore wallet.Store) error) error {
	return store.db.WithContext(ctx).Transaction(func(transaction *gorm.DB) error {
		return fn(ctx, &WalletStore{db: transaction})
	})
}

func (store *WalletStore) GetWallet(ctx context.Context, brandID wallet.BrandID) (wallet.BrandWallet, error) {
	return store.getWallet(ctx, brandID, false)
}

func (store *WalletStore) GetWalletForUpdate(ctx context.Context, brandID wallet.BrandID) (wallet.BrandWallet, error) {
	return store.getWallet(ctx, brandID, true)
}

func (store *WalletStore) getWallet(ctx context.Context, brandID wallet.BrandID, forUpdate bool) (wallet.BrandWallet, error) {
	var model Brand
	query := store.db.WithContext(ctx).Where("brand_id = ?", brandID.String())
	if forUpdate && store.db.Dialector.Name() == "postgres" {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.Take(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return wallet.BrandWallet{}, wrapWalletError(errorSubjectBrand, errorCodeGet, wallet.ErrBrandNotFound)
		}
		return wallet.BrandWallet{}, wrapWalletError(errorSubjectBrand, errorCodeGet, err)
	}
	return wallet.BrandWallet{
		BrandID:      model.BrandID,
		BalanceCents: model.WalletBalanceCents,
		Currency:     model.WalletCurrency,
	}, nil
}

func (store *WalletStore) UpdateWallet(ctx context.Context, brandID wallet.BrandID, balanceCents int64, currency string) error {
	result := store.db.WithContext(ctx).
		Model(&Brand{}).
		Where("brand_id = ?", brandID.String()).
		Updates(map[string]interface{}{
			"wallet_balance_cents": balanceCents,
			"wallet_currency":      currency,
		})
	if result.Error != nil {
		return wrapWalletError(errorSubjectBrand, errorCodeUpdate, result.Error)
	}
	if result.RowsAffected == 0 {
		return wrapWalletError(errorSubjectBrand, errorCodeUpdate, wallet.ErrBrandNotFound)
	}
	return nil
}

func (store *WalletStore) InsertTransaction(ctx context.Context, input wallet.TransactionInput) (string, error) {
	model := WalletTransaction{
		BrandID:     input.BrandID.String(),
		Type:        input.Type.String(),
		AmountCents: input.AmountCents.Int64(),
		Currency:    input.Currency.String(),
		Description: input.Description,
		Reference:   input.Reference,
		CampaignID:  input.CampaignID,
		CreatedAt:   time.Unix(input.CreatedUnixUTC, 0).UTC(),
	}
	if input.CreatedUnixUTC == 0 {
		model.CreatedAt = time.Now().UTC()
	}
	if err := store.db.WithContext(ctx).Create(&model).Error; err != nil {
		return "", wrapWalletError(errorSubjectTransaction, errorCodeInsert, err)
	}
	return model.TransactionID, nil
}

func (store *WalletStore) FindTransactionByReference(ctx context.Context, brandID wallet.BrandID, transactionType wallet.TransactionType, reference string) (wallet.Transaction, bool, error) {
	var model WalletTransaction
	err := store.db.WithContext(ctx).
		Where("brand_id = ? AND type = ? AND reference = ?", brandID.String(), transactionType.String(), reference).
		Take(&model).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return wallet.Transaction{}, false, nil
	}
	if err != nil {
		return wallet.Transaction{}, false, wrapWalletError(errorSubjectTransaction, errorCodeGet, err)
	}
	transaction, err := mapWalletTransaction(model)
	if err != nil {
		return wallet.Transaction{}, false, err
	}
	return transaction, true, nil
}

func (store *WalletStore) ListTransactions(ctx context.Context, brandID wallet.BrandID, limit int) ([]wallet.Transaction, error) {
	var rows []WalletTransaction
	query := store.db.WithContext(ctx).
		Where("brand_id = ?", brandID.String()).
		Order("created_at DESC, transaction_id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, wrapWalletError(errorSubjectTransaction, errorCodeList, err)
	}
	transactions := make([]wallet.Transaction, 0, len(rows))
	for _, row := range rows {
		transaction, err := mapWalletTransaction(row)
		if err != nil {
			return nil, err
		}
		transactions = append(transactions, transaction)
	}
	return transactions, nil
}

func wrapWalletError(subject string, code string, err error) error {
	return wallet.WrapError(errorOperationStore, subject, code, err)
}

func mapWalletTransaction(row WalletTransaction) (wallet.Transaction, error) {
	transactionType, err := wallet.ParseTransactionType(row.Type)
	if err != nil {
		return wallet.Transaction{}, wrapWalletError(errorSubjectTransaction, errorCodeInvalid, err)
	}
	return wallet.Transaction{
		TransactionID:  row.TransactionID,
		BrandID:        row.BrandID,
		Type:           transactionType,
		AmountCents:    row.AmountCents,
		Currency:       row.Currency,
		Description:    row.Description,
		Reference:      row.Reference,
		CampaignID:     row.CampaignID,
		CreatedUnixUTC: row.CreatedAt.Unix(),
	}, nil
}
