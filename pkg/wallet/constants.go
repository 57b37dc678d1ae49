package wallet

const (
	operationTopUp         = "top_up"
	operationLockEscrow    = "lock_escrow"
	operationReleaseEscrow = "release_escrow"
	operationWithdraw      = "withdraw"
	operationRefund        = "refund"
	operationRecord        = "record"

	operationStatusOK    = "ok"
	operationStatusError = "error"

	descriptionTopUpPrefix   = "Wallet top-up of "
	descriptionEscrowLock    = "Funds locked for campaign"
	descriptionEscrowRelease = "Funds released to creator"
)
