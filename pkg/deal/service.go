package deal

import (
	"context"
	"fmt"
)

// Service contains the deal lifecycle logic over a Store.
type Service struct {
	store     Store
	nowFn     func() int64
	logger    OperationLogger
	publisher EventPublisher
}

// NewService wires a Service. The clock returns Unix milliseconds; message
// ordering depends on it being non-decreasing.
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

// ApplyInput describes a creator-initiated application.
type ApplyInput struct {
	CampaignID     CampaignID
	CreatorID      CreatorID
	MatchScore     MatchScore
	BidAmountCents OfferAmountCents
	BidCurrency    string
}

// Apply creates a creator-initiated application in the applicant stage.
func (service *Service) Apply(ctx context.Context, input ApplyInput) (Application, error) {
	var created Application
	operationError := service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		if _, err := transactionStore.GetCampaign(ctx, input.CampaignID); err != nil {
			return err
		}
		if err := transactionStore.CreatorExists(ctx, input.CreatorID); err != nil {
			return err
		}
		applicationID, err := transactionStore.InsertApplication(ctx, ApplicationInput{
			CampaignID:       input.CampaignID,
			CreatorID:        input.CreatorID,
			Status:           StatusApplicant,
			InitiatedBy:      PartyCreator,
			MatchScore:       input.MatchScore,
			BidAmountCents:   input.BidAmountCents.Int64(),
			BidCurrency:      input.BidCurrency,
			CreatedUnixMilli: service.nowFn(),
		})
		if err != nil {
			return err
		}
		parsedID, err := NewApplicationID(applicationID)
		if err != nil {
			return err
		}
		created, err = transactionStore.GetApplication(ctx, parsedID)
		return err
	})
	service.logOperation(ctx, OperationLog{
		Operation:     operationApply,
		ApplicationID: created.ApplicationID,
		CampaignID:    input.CampaignID.String(),
		CreatorID:     input.CreatorID.String(),
		ToStatus:      StatusApplicant,
		Error:         operationError,
	})
	return created, operationError
}

// OutreachInput describes a brand-initiated offer to a creator.
type OutreachInput struct {
	BrandID            BrandID
	CampaignID         CampaignID
	CreatorID          CreatorID
	OfferedAmountCents OfferAmountCents
	OfferedCurrency    string
	InitialMessage     MessageBody
	MatchScore         MatchScore
}

// CreateOutreach creates a brand-initiated application in pending_creator and
// writes the opening message from the brand. At most one application may
// exist per (campaign, creator) pair; the store's uniqueness constraint backs
// the duplicate check against concurrent outreach.
func (service *Service) CreateOutreach(ctx context.Context, input OutreachInput) (Application, error) {
	var created Application
	operationError := service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		campaign, err := transactionStore.GetCampaign(ctx, input.CampaignID)
		if err != nil {
			return err
		}
		if campaign.BrandID != input.BrandID.String() {
			return ErrCampaignNotFound
		}
		if err := transactionStore.CreatorExists(ctx, input.CreatorID); err != nil {
			return err
		}
		if _, exists, err := transactionStore.FindApplication(ctx, input.CampaignID, input.CreatorID); err != nil {
			return err
		} else if exists {
			return ErrDuplicateOffer
		}
		now := service.nowFn()
		applicationID, err := transactionStore.InsertApplication(ctx, ApplicationInput{
			CampaignID:         input.CampaignID,
			CreatorID:          input.CreatorID,
			Status:             StatusPendingCreator,
			InitiatedBy:        PartyBrand,
			MatchScore:         input.MatchScore,
			OfferedAmountCents: input.OfferedAmountCents.Int64(),
			OfferedCurrency:    input.OfferedCurrency,
			CreatedUnixMilli:   now,
		})
		if err != nil {
			return err
		}
		parsedID, err := NewApplicationID(applicationID)
		if err != nil {
			return err
		}
		if _, err := transactionStore.InsertMessage(ctx, MessageInput{
			ApplicationID:    parsedID,
			SenderID:         input.BrandID.String(),
			SenderType:       PartyBrand,
			Content:          input.InitialMessage,
			CreatedUnixMilli: now,
		}); err != nil {
			return err
		}
		created, err = transactionStore.GetApplication(ctx, parsedID)
		return err
	})
	service.logOperation(ctx, OperationLog{
		Operation:     operationCreateOutreach,
		ApplicationID: created.ApplicationID,
		CampaignID:    input.CampaignID.String(),
		CreatorID:     input.CreatorID.String(),
		ToStatus:      StatusPendingCreator,
		Error:         operationError,
	})
	return created, operationError
}

// AcceptOffer moves a pending offer to negotiating. Accepting engages the
// creator in the deal; it does not accept terms.
func (service *Service) AcceptOffer(ctx context.Context, applicationID ApplicationID) (Application, error) {
	updated, operationError := service.respondToOffer(ctx, applicationID, StatusNegotiating)
	service.logOperation(ctx, OperationLog{
		Operation:     operationAcceptOffer,
		ApplicationID: applicationID.String(),
		FromStatus:    StatusPendingCreator,
		ToStatus:      StatusNegotiating,
		Error:         operationError,
	})
	return updated, operationError
}

// DeclineOffer moves a pending offer to declined.
func (service *Service) DeclineOffer(ctx context.Context, applicationID ApplicationID) (Application, error) {
	updated, operationError := service.respondToOffer(ctx, applicationID, StatusDeclined)
	service.logOperation(ctx, OperationLog{
		Operation:     operationDeclineOffer,
		ApplicationID: applicationID.String(),
		FromStatus:    StatusPendingCreator,
		ToStatus:      StatusDeclined,
		Error:         operationError,
	})
	if operationError == nil && updated.Status == StatusDeclined {
		service.publishEvent(ctx, EventDealDeclined, updated)
	}
	return updated, operationError
}

func (service *Service) respondToOffer(ctx context.Context, applicationID ApplicationID, to Status) (Application, error) {
	var updated Application
	operationError := service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		application, err := transactionStore.GetApplicationForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}
		if !CanRespondToOffer(application.Status, to) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidState, application.Status, to)
		}
		if err := transactionStore.UpdateApplicationStatus(ctx, applicationID, application.Status, to); err != nil {
			return err
		}
		application.Status = to
		updated = application
		return nil
	})
	return updated, operationError
}

// UpdateStatus moves an application between pipeline stages. Both the current
// and the target status must be pipeline stages; pending offers and declined
// deals are not reachable through this path.
func (service *Service) UpdateStatus(ctx context.Context, applicationID ApplicationID, to Status) (Application, error) {
	var updated Application
	var from Status
	operationError := service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		application, err := transactionStore.GetApplicationForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}
		from = application.Status
		if !CanUpdateStatus(application.Status, to) {
			return fmt.Errorf("%w: %s -> %s", ErrInvalidState, application.Status, to)
		}
		if err := transactionStore.UpdateApplicationStatus(ctx, applicationID, application.Status, to); err != nil {
			return err
		}
		application.Status = to
		updated = application
		return nil
	})
	service.logOperation(ctx, OperationLog{
		Operation:     operationUpdateStatus,
		ApplicationID: applicationID.String(),
		FromStatus:    from,
		ToStatus:      to,
		Error:         operationError,
	})
	if operationError == nil && to == StatusHired && from != StatusHired {
		service.publishEvent(ctx, EventDealHired, updated)
	}
	return updated, operationError
}

// OverrideStatus rewrites the status unconditionally. This is the audited
// administrative escape hatch, not the everyday transition path; every call
// is logged with its reason.
func (service *Service) OverrideStatus(ctx context.Context, applicationID ApplicationID, to Status, reason string) (Application, error) {
	var updated Application
	var from Status
	operationError := service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		application, err := transactionStore.GetApplicationForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}
		from = application.Status
		if err := transactionStore.UpdateApplicationStatus(ctx, applicationID, application.Status, to); err != nil {
			return err
		}
		application.Status = to
		updated = application
		return nil
	})
	service.logOperation(ctx, OperationLog{
		Operation:     operationOverrideStatus,
		ApplicationID: applicationID.String(),
		FromStatus:    from,
		ToStatus:      to,
		Reason:        reason,
		Error:         operationError,
	})
	return updated, operationError
}

// Get returns one application.
func (service *Service) Get(ctx context.Context, applicationID ApplicationID) (Application, error) {
	return service.store.GetApplication(ctx, applicationID)
}

// ListByCampaign returns all applications targeting a campaign.
func (service *Service) ListByCampaign(ctx context.Context, campaignID CampaignID) ([]Application, error) {
	return service.store.ListApplicationsByCampaign(ctx, campaignID)
}

// ListByCreator returns all applications a creator is engaged in.
func (service *Service) ListByCreator(ctx context.Context, creatorID CreatorID) ([]Application, error) {
	return service.store.ListApplicationsByCreator(ctx, creatorID)
}

// ListByStatus returns all applications in one lifecycle stage.
func (service *Service) ListByStatus(ctx context.Context, status Status) ([]Application, error) {
	return service.store.ListApplicationsByStatus(ctx, status)
}

// Remove deletes an application and the messages it owns in one transaction.
func (service *Service) Remove(ctx context.Context, applicationID ApplicationID) error {
	operationError := service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		if _, err := transactionStore.GetApplicationForUpdate(ctx, applicationID); err != nil {
			return err
		}
		if err := transactionStore.DeleteMessagesByApplication(ctx, applicationID); err != nil {
			return err
		}
		return transactionStore.DeleteApplication(ctx, applicationID)
	})
	service.logOperation(ctx, OperationLog{
		Operation:     operationRemove,
		ApplicationID: applicationID.String(),
		Error:         operationError,
	})
	return operationError
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
