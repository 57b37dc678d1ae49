package wallet

import "context"

// ServiceOption configures a Service instance.
type ServiceOption func(*Service)

// OperationLogger records domain-level events emitted by Service operations.
type OperationLogger interface {
	LogOperation(ctx context.Context, entry OperationLog)
}

// OperationLog describes a state-changing wallet operation.
type OperationLog struct {
	Operation     string
	BrandID       BrandID
	CampaignID    string
	TransactionID string
	Amount        AmountCents
	Currency      string
	Status        string
	Error         error
}

// WithOperationLogger wires a logger that receives callbacks for every operation.
func WithOperationLogger(logger OperationLogger) ServiceOption {
	return func(service *Service) {
		service.logger = logger
	}
}

// Policy selects between the documented historical behaviors of the ledger
// and their corrected counterparts. The zero value reproduces the historical
// behavior: a release never re-credits the spendable balance, and the most
// recent top-up currency wins.
type Policy struct {
	CreditOnRelease     bool
	KeepCurrencyOnTopUp bool
}

// WithPolicy overrides the default ledger policy.
func WithPolicy(policy Policy) ServiceOption {
	return func(service *Service) {
		service.policy = policy
	}
}
