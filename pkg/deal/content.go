package deal

import (
	"context"
	"fmt"
)

// SubmitDraft records a content draft for review. Resubmission after a
// revision request overwrites the url and resets the sub-state to pending.
// The deal must have reached hired before drafts are accepted.
func (service *Service) SubmitDraft(ctx context.Context, applicationID ApplicationID, url DraftURL) (Application, error) {
	var updated Application
	operationError := service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		application, err := transactionStore.GetApplicationForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}
		if !application.Status.AcceptsDraft() {
			return fmt.Errorf("%w: draft submission requires a hired deal, status is %s", ErrInvalidState, application.Status)
		}
		application.ContentDraftURL = url.String()
		application.ContentStatus = ContentPending
		if err := transactionStore.UpdateApplication(ctx, application); err != nil {
			return err
		}
		updated = application
		return nil
	})
	service.logOperation(ctx, OperationLog{
		Operation:     operationSubmitDraft,
		ApplicationID: applicationID.String(),
		Error:         operationError,
	})
	return updated, operationError
}

// DecideContent records the brand's verdict on the pending draft. Approval is
// the cue for the controlling workflow to release escrow; the release is a
// separate, re-attemptable call, not a side effect of this one.
func (service *Service) DecideContent(ctx context.Context, applicationID ApplicationID, decision ContentDecision, notes string) (Application, error) {
	var updated Application
	operationError := service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		application, err := transactionStore.GetApplicationForUpdate(ctx, applicationID)
		if err != nil {
			return err
		}
		if application.ContentStatus == ContentNone {
			return ErrNoDraftSubmitted
		}
		application.ContentStatus = decision.ToContentStatus()
		if notes != "" {
			application.Notes = notes
		}
		if err := transactionStore.UpdateApplication(ctx, application); err != nil {
			return err
		}
		updated = application
		return nil
	})
	service.logOperation(ctx, OperationLog{
		Operation:     operationDecideContent,
		ApplicationID: applicationID.String(),
		Reason:        string(decision),
		Error:         operationError,
	})
	if operationError == nil && decision == DecisionApproved {
		service.publishEvent(ctx, EventContentApproved, updated)
	}
	return updated, operationError
}
