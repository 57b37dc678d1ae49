package deal

import "context"

// SendMessage appends a message to a deal's thread. A creator message on a
// pending offer advances the deal to negotiating within the same
// transaction: a reply is implicit acceptance of engagement, not of terms.
func (service *Service) SendMessage(ctx context.Context, input MessageInput) (string, error) {
	var messageID string
	var fromStatus, toStatus Status
	operationError := service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		application, err := transactionStore.GetApplicationForUpdate(ctx, input.ApplicationID)
		if err != nil {
			return err
		}
		if input.CreatedUnixMilli == 0 {
			input.CreatedUnixMilli = service.nowFn()
		}
		messageID, err = transactionStore.InsertMessage(ctx, input)
		if err != nil {
			return err
		}
		if input.SenderType == PartyCreator && application.Status == StatusPendingCreator {
			if err := transactionStore.UpdateApplicationStatus(ctx, input.ApplicationID, StatusPendingCreator, StatusNegotiating); err != nil {
				return err
			}
			fromStatus, toStatus = StatusPendingCreator, StatusNegotiating
		}
		return nil
	})
	service.logOperation(ctx, OperationLog{
		Operation:     operationSendMessage,
		ApplicationID: input.ApplicationID.String(),
		FromStatus:    fromStatus,
		ToStatus:      toStatus,
		Error:         operationError,
	})
	return messageID, operationError
}

// ListMessages returns a deal's thread in ascending creation order.
func (service *Service) ListMessages(ctx context.Context, applicationID ApplicationID) ([]Message, error) {
	if _, err := service.store.GetApplication(ctx, applicationID); err != nil {
		return nil, err
	}
	return service.store.ListMessagesByApplication(ctx, applicationID)
}

// MarkAsRead flags every message authored by the other party as read.
// Idempotent.
func (service *Service) MarkAsRead(ctx context.Context, applicationID ApplicationID, readerType PartyType) error {
	operationError := service.store.WithTx(ctx, func(ctx context.Context, transactionStore Store) error {
		if _, err := transactionStore.GetApplication(ctx, applicationID); err != nil {
			return err
		}
		return transactionStore.MarkMessagesRead(ctx, applicationID, readerType.Other())
	})
	service.logOperation(ctx, OperationLog{
		Operation:     operationMarkAsRead,
		ApplicationID: applicationID.String(),
		Error:         operationError,
	})
	return operationError
}

// UnreadCountForBrand counts creator-authored unread messages across every
// deal on the brand's campaigns. A fan-out read; acceptable at current scale.
func (service *Service) UnreadCountForBrand(ctx context.Context, brandID BrandID) (int, error) {
	return service.store.CountUnreadForBrand(ctx, brandID)
}
