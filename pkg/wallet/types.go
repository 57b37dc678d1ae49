package wallet

import (
	"context"
	"fmt"
	"strings"
)

// AmountCents is an integer currency amount in minor units.
type AmountCents int64

// Int64 returns the raw amount.
func (amount AmountCents) Int64() int64 {
	return int64(amount)
}

// PositiveAmountCents is an amount validated to be strictly positive.
type PositiveAmountCents int64

// NewPositiveAmountCents validates an amount and ensures it is strictly positive.
func NewPositiveAmountCents(raw int64) (PositiveAmountCents, error) {
	if raw <= 0 {
		return 0, fmt.Errorf("%w: must be greater than zero", ErrInvalidAmountCents)
	}
	return PositiveAmountCents(raw), nil
}

// ToAmountCents widens to the signed amount type.
func (amount PositiveAmountCents) ToAmountCents() AmountCents {
	return AmountCents(amount)
}

// Int64 returns the raw amount.
func (amount PositiveAmountCents) Int64() int64 {
	return int64(amount)
}

// BrandID identifies a wallet-holding brand.
type BrandID struct {
	value string
}

// NewBrandID validates and normalizes a brand id.
func NewBrandID(raw string) (BrandID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return BrandID{}, fmt.Errorf("%w: empty value", ErrInvalidBrandID)
	}
	return BrandID{value: trimmed}, nil
}

// String returns the normalized identifier.
func (id BrandID) String() string {
	return id.value
}

// CampaignID identifies the campaign an escrow movement belongs to.
type CampaignID struct {
	value string
}

// NewCampaignID validates and normalizes a campaign id.
func NewCampaignID(raw string) (CampaignID, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return CampaignID{}, fmt.Errorf("%w: empty value", ErrInvalidCampaignID)
	}
	return CampaignID{value: trimmed}, nil
}

// String returns the normalized identifier.
func (id CampaignID) String() string {
	return id.value
}

// Currency is an ISO-style alphabetic currency code.
type Currency struct {
	value string
}

// NewCurrency validates and normalizes a currency code.
func NewCurrency(raw string) (Currency, error) {
	normalized := strings.ToUpper(strings.TrimSpace(raw))
	if len(normalized) != 3 {
		return Currency{}, fmt.Errorf("%w: must be a three-letter code", ErrInvalidCurrency)
	}
	for _, letter := range normalized {
		if letter < 'A' || letter > 'Z' {
			return Currency{}, fmt.Errorf("%w: must be alphabetic", ErrInvalidCurrency)
		}
	}
	return Currency{value: normalized}, nil
}

// String returns the normalized code.
func (currency Currency) String() string {
	return currency.value
}

// TransactionType enumerates ledger transaction kinds.
type TransactionType string

const (
	TransactionDeposit       TransactionType = "deposit"
	TransactionWithdrawal    TransactionType = "withdrawal"
	TransactionEscrowLock    TransactionType = "escrow_lock"
	TransactionEscrowRelease TransactionType = "escrow_release"
	TransactionRefund        TransactionType = "refund"
)

// ParseTransactionType validates a raw transaction type.
func ParseTransactionType(raw string) (TransactionType, error) {
	switch TransactionType(raw) {
	case TransactionDeposit, TransactionWithdrawal, TransactionEscrowLock, TransactionEscrowRelease, TransactionRefund:
		return TransactionType(raw), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTransactionType, raw)
}

// String returns the raw type value.
func (transactionType TransactionType) String() string {
	return string(transactionType)
}

// Credits reports whether this transaction type adds to the spendable balance
// under plain signed-sum accounting.
func (transactionType TransactionType) Credits() bool {
	switch transactionType {
	case TransactionDeposit, TransactionRefund, TransactionEscrowRelease:
		return true
	}
	return false
}

// Transaction is a single immutable line in the wallet ledger.
type Transaction struct {
	TransactionID  string
	BrandID        string
	Type           TransactionType
	AmountCents    int64
	Currency       string
	Description    string
	Reference      string
	CampaignID     string
	CreatedUnixUTC int64
}

// BrandWallet is the cached balance view for one brand.
type BrandWallet struct {
	BrandID      string
	BalanceCents int64
	Currency     string
}

// TransactionResult reports a completed ledger mutation.
type TransactionResult struct {
	TransactionID   string
	NewBalanceCents int64
}

// TransactionInput carries the fields needed to append one transaction.
type TransactionInput struct {
	BrandID        BrandID
	Type           TransactionType
	AmountCents    PositiveAmountCents
	Currency       Currency
	Description    string
	Reference      string
	CampaignID     string
	CreatedUnixUTC int64
}

// Store is the persistence contract used by Service. Implementations must
// guarantee that GetWalletForUpdate holds the brand row against concurrent
// writers for the duration of the surrounding transaction.
type Store interface {
	WithTx(ctx context.Context, fn func(ctx context.Context, txStore Store) error) error
	GetWallet(ctx context.Context, brandID BrandID) (BrandWallet, error)
	GetWalletForUpdate(ctx context.Context, brandID BrandID) (BrandWallet, error)
	UpdateWallet(ctx context.Context, brandID BrandID, balanceCents int64, currency string) error
	InsertTransaction(ctx context.Context, input TransactionInput) (string, error)
	FindTransactionByReference(ctx context.Context, brandID BrandID, transactionType TransactionType, reference string) (Transaction, bool, error)
	ListTransactions(ctx context.Context, brandID BrandID, limit int) ([]Transaction, error)
}

// FormatCents renders minor units as a decimal display string, e.g. 500000
// becomes "5000.00". Display only; the ledger never stores decimal strings.
func FormatCents(amountCents int64, currency string) string {
	sign := ""
	if amountCents < 0 {
		sign = "-"
		amountCents = -amountCents
	}
	return fmt.Sprintf("%s%d.%02d %s", sign, amountCents/100, amountCents%100, currency)
}
