package deal

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
)

const (
	brandIDValue         = "brand-1"
	campaignIDValue      = "campaign-1"
	creatorIDValue       = "creator-1"
	messageTextValue     = "We would love to work with you"
	errorMismatchMessage = "expected %v, got %v"
)

var errStoreFailure = errors.New("store error")

func TestNewServiceRequiresDependencies(test *testing.T) {
	test.Parallel()
	_, err := NewService(nil, func() int64 { return 0 })
	if !errors.Is(err, ErrInvalidServiceConfig) {
		test.Fatalf("expected invalid service config error, got %v", err)
	}
	_, err = NewService(newStubStore(test), nil)
	if !errors.Is(err, ErrInvalidServiceConfig) {
		test.Fatalf("expected invalid service config error, got %v", err)
	}
}

func TestApplyCreatesApplicantApplication(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)

	created, err := service.Apply(context.Background(), ApplyInput{
		CampaignID:     mustCampaignID(test, campaignIDValue),
		CreatorID:      mustCreatorID(test, creatorIDValue),
		MatchScore:     mustMatchScore(test, 85),
		BidAmountCents: mustOfferAmount(test, 150000),
		BidCurrency:    "USD",
	})
	if err != nil {
		test.Fatalf("apply: %v", err)
	}
	if created.Status != StatusApplicant {
		test.Fatalf("unexpected status: %s", created.Status)
	}
	if created.InitiatedBy != PartyCreator {
		test.Fatalf("unexpected initiator: %s", created.InitiatedBy)
	}
	if created.BidAmountCents != 150000 {
		test.Fatalf("unexpected bid: %d", created.BidAmountCents)
	}
}

func TestApplyRejectsUnknownCampaignAndCreator(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)

	_, err := service.Apply(context.Background(), ApplyInput{
		CampaignID:     mustCampaignID(test, "missing"),
		CreatorID:      mustCreatorID(test, creatorIDValue),
		MatchScore:     mustMatchScore(test, 50),
		BidAmountCents: mustOfferAmount(test, 100),
	})
	if !errors.Is(err, ErrCampaignNotFound) {
		test.Fatalf(errorMismatchMessage, ErrCampaignNotFound, err)
	}

	_, err = service.Apply(context.Background(), ApplyInput{
		CampaignID:     mustCampaignID(test, campaignIDValue),
		CreatorID:      mustCreatorID(test, "missing"),
		MatchScore:     mustMatchScore(test, 50),
		BidAmountCents: mustOfferAmount(test, 100),
	})
	if !errors.Is(err, ErrCreatorNotFound) {
		test.Fatalf(errorMismatchMessage, ErrCreatorNotFound, err)
	}
}

func TestCreateOutreachWritesOfferAndOpeningMessage(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)

	created, err := service.CreateOutreach(context.Background(), outreachInput(test))
	if err != nil {
		test.Fatalf("create outreach: %v", err)
	}
	if created.Status != StatusPendingCreator {
		test.Fatalf("unexpected status: %s", created.Status)
	}
	if created.InitiatedBy != PartyBrand {
		test.Fatalf("unexpected initiator: %s", created.InitiatedBy)
	}
	if created.OfferedAmountCents != 200000 {
		test.Fatalf("unexpected offer: %d", created.OfferedAmountCents)
	}
	if len(store.messages) != 1 {
		test.Fatalf("expected opening message, got %d messages", len(store.messages))
	}
	opening := store.messages[0]
	if opening.SenderType != PartyBrand || opening.SenderID != brandIDValue {
		test.Fatalf("unexpected opening message sender: %+v", opening)
	}
	if opening.Content != messageTextValue {
		test.Fatalf("unexpected opening message content: %q", opening.Content)
	}
}

func TestCreateOutreachRequiresCampaignOwnership(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)

	input := outreachInput(test)
	input.BrandID = mustBrandID(test, "brand-2")
	_, err := service.CreateOutreach(context.Background(), input)
	if !errors.Is(err, ErrCampaignNotFound) {
		test.Fatalf(errorMismatchMessage, ErrCampaignNotFound, err)
	}
}

func TestCreateOutreachRejectsDuplicatePair(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)

	if _, err := service.CreateOutreach(context.Background(), outreachInput(test)); err != nil {
		test.Fatalf("first outreach: %v", err)
	}
	_, err := service.CreateOutreach(context.Background(), outreachInput(test))
	if !errors.Is(err, ErrDuplicateOffer) {
		test.Fatalf(errorMismatchMessage, ErrDuplicateOffer, err)
	}
}

func TestAcceptOfferMovesPendingToNegotiating(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)
	created := mustOutreach(test, service)

	updated, err := service.AcceptOffer(context.Background(), mustApplicationID(test, created.ApplicationID))
	if err != nil {
		test.Fatalf("accept offer: %v", err)
	}
	if updated.Status != StatusNegotiating {
		test.Fatalf("unexpected status: %s", updated.Status)
	}
}

func TestDeclineOfferMovesPendingToDeclined(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)
	created := mustOutreach(test, service)

	updated, err := service.DeclineOffer(context.Background(), mustApplicationID(test, created.ApplicationID))
	if err != nil {
		test.Fatalf("decline offer: %v", err)
	}
	if updated.Status != StatusDeclined {
		test.Fatalf("unexpected status: %s", updated.Status)
	}
}

func TestOfferResponseRequiresPendingState(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)
	created := mustOutreach(test, service)
	applicationID := mustApplicationID(test, created.ApplicationID)

	if _, err := service.AcceptOffer(context.Background(), applicationID); err != nil {
		test.Fatalf("accept offer: %v", err)
	}
	_, err := service.AcceptOffer(context.Background(), applicationID)
	if !errors.Is(err, ErrInvalidState) {
		test.Fatalf(errorMismatchMessage, ErrInvalidState, err)
	}
	_, err = service.DeclineOffer(context.Background(), applicationID)
	if !errors.Is(err, ErrInvalidState) {
		test.Fatalf(errorMismatchMessage, ErrInvalidState, err)
	}
}

func TestUpdateStatusWalksThePipeline(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)
	created := mustApply(test, service)
	applicationID := mustApplicationID(test, created.ApplicationID)

	for _, stage := range []Status{StatusShortlisted, StatusNegotiating, StatusHired, StatusCompleted} {
		updated, err := service.UpdateStatus(context.Background(), applicationID, stage)
		if err != nil {
			test.Fatalf("update to %s: %v", stage, err)
		}
		if updated.Status != stage {
			test.Fatalf("expected %s, got %s", stage, updated.Status)
		}
	}

	// Backward movement inside the pipeline is allowed.
	updated, err := service.UpdateStatus(context.Background(), applicationID, StatusShortlisted)
	if err != nil {
		test.Fatalf("backward update: %v", err)
	}
	if updated.Status != StatusShortlisted {
		test.Fatalf("unexpected status: %s", updated.Status)
	}
}

func TestUpdateStatusRejectsNonPipelineStates(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)

	applied := mustApply(test, service)
	_, err := service.UpdateStatus(context.Background(), mustApplicationID(test, applied.ApplicationID), StatusDeclined)
	if !errors.Is(err, ErrInvalidState) {
		test.Fatalf(errorMismatchMessage, ErrInvalidState, err)
	}

	pending := mustOutreach(test, service)
	_, err = service.UpdateStatus(context.Background(), mustApplicationID(test, pending.ApplicationID), StatusHired)
	if !errors.Is(err, ErrInvalidState) {
		test.Fatalf(errorMismatchMessage, ErrInvalidState, err)
	}
}

func TestOverrideStatusBypassesThePipeline(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	recorder := &recordingLogger{}
	service := mustNewServiceWithOptions(test, store, WithOperationLogger(recorder))
	created := mustOutreach(test, service)

	updated, err := service.OverrideStatus(context.Background(), mustApplicationID(test, created.ApplicationID), StatusHired, "support escalation 4821")
	if err != nil {
		test.Fatalf("override: %v", err)
	}
	if updated.Status != StatusHired {
		test.Fatalf("unexpected status: %s", updated.Status)
	}

	last := recorder.last(test)
	if last.Operation != "override_status" {
		test.Fatalf("unexpected operation: %q", last.Operation)
	}
	if last.Reason != "support escalation 4821" {
		test.Fatalf("override reason not logged: %q", last.Reason)
	}
	if last.FromStatus != StatusPendingCreator || last.ToStatus != StatusHired {
		test.Fatalf("unexpected transition in log: %s -> %s", last.FromStatus, last.ToStatus)
	}
}

func TestRemoveDeletesApplicationAndMessages(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	service := mustNewService(test, store)
	created := mustOutreach(test, service)
	applicationID := mustApplicationID(test, created.ApplicationID)

	if err := service.Remove(context.Background(), applicationID); err != nil {
		test.Fatalf("remove: %v", err)
	}
	if _, err := service.Get(context.Background(), applicationID); !errors.Is(err, ErrApplicationNotFound) {
		test.Fatalf(errorMismatchMessage, ErrApplicationNotFound, err)
	}
	if len(store.messages) != 0 {
		test.Fatalf("messages not cascaded: %d left", len(store.messages))
	}
}

func TestListFilters(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	store.campaigns["campaign-2"] = CampaignRef{CampaignID: "campaign-2", BrandID: brandIDValue}
	service := mustNewService(test, store)

	first := mustApply(test, service)
	second, err := service.Apply(context.Background(), ApplyInput{
		CampaignID:     mustCampaignID(test, "campaign-2"),
		CreatorID:      mustCreatorID(test, creatorIDValue),
		MatchScore:     mustMatchScore(test, 60),
		BidAmountCents: mustOfferAmount(test, 100),
	})
	if err != nil {
		test.Fatalf("second apply: %v", err)
	}

	byCampaign, err := service.ListByCampaign(context.Background(), mustCampaignID(test, campaignIDValue))
	if err != nil {
		test.Fatalf("list by campaign: %v", err)
	}
	if len(byCampaign) != 1 || byCampaign[0].ApplicationID != first.ApplicationID {
		test.Fatalf("unexpected campaign listing: %+v", byCampaign)
	}

	byCreator, err := service.ListByCreator(context.Background(), mustCreatorID(test, creatorIDValue))
	if err != nil {
		test.Fatalf("list by creator: %v", err)
	}
	if len(byCreator) != 2 {
		test.Fatalf("expected 2 creator applications, got %d", len(byCreator))
	}

	if _, err := service.UpdateStatus(context.Background(), mustApplicationID(test, second.ApplicationID), StatusShortlisted); err != nil {
		test.Fatalf("update status: %v", err)
	}
	shortlisted, err := service.ListByStatus(context.Background(), StatusShortlisted)
	if err != nil {
		test.Fatalf("list by status: %v", err)
	}
	if len(shortlisted) != 1 || shortlisted[0].ApplicationID != second.ApplicationID {
		test.Fatalf("unexpected status listing: %+v", shortlisted)
	}
}

func TestOperationsReturnStoreErrors(test *testing.T) {
	test.Parallel()
	store := newStubStore(test)
	store.insertApplicationError = errStoreFailure
	service := mustNewService(test, store)

	_, err := service.Apply(context.Background(), ApplyInput{
		CampaignID:     mustCampaignID(test, campaignIDValue),
		CreatorID:      mustCreatorID(test, creatorIDValue),
		MatchScore:     mustMatchScore(test, 50),
		BidAmountCents: mustOfferAmount(test, 100),
	})
	if !errors.Is(err, errStoreFailure) {
		test.Fatalf(errorMismatchMessage, errStoreFailure, err)
	}
}

func outreachInput(test *testing.T) OutreachInput {
	test.Helper()
	return OutreachInput{
		BrandID:            mustBrandID(test, brandIDValue),
		CampaignID:         mustCampaignID(test, campaignIDValue),
		CreatorID:          mustCreatorID(test, creatorIDValue),
		OfferedAmountCents: mustOfferAmount(test, 200000),
		OfferedCurrency:    "USD",
		InitialMessage:     mustMessageBody(test, messageTextValue),
		MatchScore:         mustMatchScore(test, 90),
	}
}

func mustOutreach(test *testing.T, service *Service) Application {
	test.Helper()
	created, err := service.CreateOutreach(context.Background(), outreachInput(test))
	if err != nil {
		test.Fatalf("create outreach: %v", err)
	}
	return created
}

func mustApply(test *testing.T, service *Service) Application {
	test.Helper()
	created, err := service.Apply(context.Background(), ApplyInput{
		CampaignID:     mustCampaignID(test, campaignIDValue),
		CreatorID:      mustCreatorID(test, creatorIDValue),
		MatchScore:     mustMatchScore(test, 70),
		BidAmountCents: mustOfferAmount(test, 120000),
		BidCurrency:    "USD",
	})
	if err != nil {
		test.Fatalf("apply: %v", err)
	}
	return created
}

type recordingLogger struct {
	mu      sync.Mutex
	entries []OperationLog
}

func (logger *recordingLogger) LogOperation(ctx context.Context, entry OperationLog) {
	logger.mu.Lock()
	defer logger.mu.Unlock()
	logger.entries = append(logger.entries, entry)
}

func (logger *recordingLogger) last(test *testing.T) OperationLog {
	test.Helper()
	logger.mu.Lock()
	defer logger.mu.Unlock()
	if len(logger.entries) == 0 {
		test.Fatalf("no operations logged")
	}
	return logger.entries[len(logger.entries)-1]
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (publisher *recordingPublisher) Publish(ctx context.Context, event Event) error {
	publisher.mu.Lock()
	defer publisher.mu.Unlock()
	publisher.events = append(publisher.events, event)
	return nil
}

type stubStore struct {
	mu                     sync.Mutex
	campaigns              map[string]CampaignRef
	creators               map[string]bool
	applications           map[string]Application
	messages               []Message
	nextID                 int
	insertApplicationError error
	insertMessageError     error
	getApplicationError    error
}

func newStubStore(test *testing.T) *stubStore {
	test.Helper()
	return &stubStore{
		campaigns: map[string]CampaignRef{
			campaignIDValue: {CampaignID: campaignIDValue, BrandID: brandIDValue},
		},
		creators:     map[string]bool{creatorIDValue: true},
		applications: make(map[string]Application),
	}
}

func (store *stubStore) WithTx(ctx context.Context, fn func(ctx context.Context, txStore Store) error) error {
	return fn(ctx, store)
}

func (store *stubStore) GetCampaign(ctx context.Context, campaignID CampaignID) (CampaignRef, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	campaign, ok := store.campaigns[campaignID.String()]
	if !ok {
		return CampaignRef{}, ErrCampaignNotFound
	}
	return campaign, nil
}

func (store *stubStore) CreatorExists(ctx context.Context, creatorID CreatorID) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if !store.creators[creatorID.String()] {
		return ErrCreatorNotFound
	}
	return nil
}

func (store *stubStore) InsertApplication(ctx context.Context, input ApplicationInput) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.insertApplicationError != nil {
		return "", store.insertApplicationError
	}
	for _, application := range store.applications {
		if application.CampaignID == input.CampaignID.String() && application.CreatorID == input.CreatorID.String() {
			return "", ErrDuplicateOffer
		}
	}
	store.nextID++
	applicationID := fmt.Sprintf("app-%d", store.nextID)
	store.applications[applicationID] = Application{
		ApplicationID:      applicationID,
		CampaignID:         input.CampaignID.String(),
		CreatorID:          input.CreatorID.String(),
		Status:             input.Status,
		InitiatedBy:        input.InitiatedBy,
		MatchScore:         input.MatchScore.Int(),
		BidAmountCents:     input.BidAmountCents,
		BidCurrency:        input.BidCurrency,
		OfferedAmountCents: input.OfferedAmountCents,
		OfferedCurrency:    input.OfferedCurrency,
		CreatedUnixMilli:   input.CreatedUnixMilli,
	}
	return applicationID, nil
}

func (store *stubStore) GetApplication(ctx context.Context, applicationID ApplicationID) (Application, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.getApplicationLocked(applicationID)
}

func (store *stubStore) GetApplicationForUpdate(ctx context.Context, applicationID ApplicationID) (Application, error) {
	return store.GetApplication(ctx, applicationID)
}

func (store *stubStore) getApplicationLocked(applicationID ApplicationID) (Application, error) {
	if store.getApplicationError != nil {
		return Application{}, store.getApplicationError
	}
	application, ok := store.applications[applicationID.String()]
	if !ok {
		return Application{}, ErrApplicationNotFound
	}
	return application, nil
}

func (store *stubStore) FindApplication(ctx context.Context, campaignID CampaignID, creatorID CreatorID) (Application, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	for _, application := range store.applications {
		if application.CampaignID == campaignID.String() && application.CreatorID == creatorID.String() {
			return application, true, nil
		}
	}
	return Application{}, false, nil
}

func (store *stubStore) UpdateApplicationStatus(ctx context.Context, applicationID ApplicationID, from Status, to Status) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	application, ok := store.applications[applicationID.String()]
	if !ok {
		return ErrApplicationNotFound
	}
	if application.Status != from {
		return ErrInvalidState
	}
	application.Status = to
	store.applications[applicationID.String()] = application
	return nil
}

func (store *stubStore) UpdateApplication(ctx context.Context, application Application) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if _, ok := store.applications[application.ApplicationID]; !ok {
		return ErrApplicationNotFound
	}
	store.applications[application.ApplicationID] = application
	return nil
}

func (store *stubStore) DeleteApplication(ctx context.Context, applicationID ApplicationID) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if _, ok := store.applications[applicationID.String()]; !ok {
		return ErrApplicationNotFound
	}
	delete(store.applications, applicationID.String())
	return nil
}

func (store *stubStore) ListApplicationsByCampaign(ctx context.Context, campaignID CampaignID) ([]Application, error) {
	return store.listApplications(func(application Application) bool {
		return application.CampaignID == campaignID.String()
	})
}

func (store *stubStore) ListApplicationsByCreator(ctx context.Context, creatorID CreatorID) ([]Application, error) {
	return store.listApplications(func(application Application) bool {
		return application.CreatorID == creatorID.String()
	})
}

func (store *stubStore) ListApplicationsByStatus(ctx context.Context, status Status) ([]Application, error) {
	return store.listApplications(func(application Application) bool {
		return application.Status == status
	})
}

func (store *stubStore) listApplications(match func(Application) bool) ([]Application, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	var listed []Application
	for _, application := range store.applications {
		if match(application) {
			listed = append(listed, application)
		}
	}
	return listed, nil
}

func (store *stubStore) InsertMessage(ctx context.Context, input MessageInput) (string, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.insertMessageError != nil {
		return "", store.insertMessageError
	}
	store.nextID++
	message := Message{
		MessageID:        fmt.Sprintf("msg-%d", store.nextID),
		ApplicationID:    input.ApplicationID.String(),
		SenderID:         input.SenderID,
		SenderType:       input.SenderType,
		Content:          input.Content.String(),
		CreatedUnixMilli: input.CreatedUnixMilli,
	}
	store.messages = append(store.messages, message)
	return message.MessageID, nil
}

func (store *stubStore) ListMessagesByApplication(ctx context.Context, applicationID ApplicationID) ([]Message, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	var listed []Message
	for _, message := range store.messages {
		if message.ApplicationID == applicationID.String() {
			listed = append(listed, message)
		}
	}
	return listed, nil
}

func (store *stubStore) MarkMessagesRead(ctx context.Context, applicationID ApplicationID, senderType PartyType) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	for index, message := range store.messages {
		if message.ApplicationID == applicationID.String() && message.SenderType == senderType {
			store.messages[index].IsRead = true
		}
	}
	return nil
}

func (store *stubStore) DeleteMessagesByApplication(ctx context.Context, applicationID ApplicationID) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	var kept []Message
	for _, message := range store.messages {
		if message.ApplicationID != applicationID.String() {
			kept = append(kept, message)
		}
	}
	store.messages = kept
	return nil
}

func (store *stubStore) CountUnreadForBrand(ctx context.Context, brandID BrandID) (int, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	var count int
	for _, message := range store.messages {
		if message.SenderType != PartyCreator || message.IsRead {
			continue
		}
		application, ok := store.applications[message.ApplicationID]
		if !ok {
			continue
		}
		campaign, ok := store.campaigns[application.CampaignID]
		if !ok || campaign.BrandID != brandID.String() {
			continue
		}
		count++
	}
	return count, nil
}

func mustNewService(test *testing.T, store Store) *Service {
	test.Helper()
	return mustNewServiceWithOptions(test, store)
}

func mustNewServiceWithOptions(test *testing.T, store Store, options ...ServiceOption) *Service {
	test.Helper()
	clock := newTestClock()
	service, err := NewService(store, clock, options...)
	if err != nil {
		test.Fatalf("new service: %v", err)
	}
	return service
}

// newTestClock returns a strictly increasing millisecond clock.
func newTestClock() func() int64 {
	var mu sync.Mutex
	current := int64(1700000000000)
	return func() int64 {
		mu.Lock()
		defer mu.Unlock()
		current++
		return current
	}
}

func mustApplicationID(test *testing.T, raw string) ApplicationID {
	test.Helper()
	value, err := NewApplicationID(raw)
	if err != nil {
		test.Fatalf("application id: %v", err)
	}
	return value
}

func mustCampaignID(test *testing.T, raw string) CampaignID {
	test.Helper()
	value, err := NewCampaignID(raw)
	if err != nil {
		test.Fatalf("campaign id: %v", err)
	}
	return value
}

func mustCreatorID(test *testing.T, raw string) CreatorID {
	test.Helper()
	value, err := NewCreatorID(raw)
	if err != nil {
		test.Fatalf("creator id: %v", err)
	}
	return value
}

func mustBrandID(test *testing.T, raw string) BrandID {
	test.Helper()
	value, err := NewBrandID(raw)
	if err != nil {
		test.Fatalf("brand id: %v", err)
	}
	return value
}

func mustMatchScore(test *testing.T, raw int) MatchScore {
	test.Helper()
	value, err := NewMatchScore(raw)
	if err != nil {
		test.Fatalf("match score: %v", err)
	}
	return value
}

func mustOfferAmount(test *testing.T, raw int64) OfferAmountCents {
	test.Helper()
	value, err := NewOfferAmountCents(raw)
	if err != nil {
		test.Fatalf("offer amount: %v", err)
	}
	return value
}

func mustMessageBody(test *testing.T, raw string) MessageBody {
	test.Helper()
	value, err := NewMessageBody(raw)
	if err != nil {
		test.Fatalf("message body: %v", err)
	}
	return value
}

func mustDraftURL(test *testing.T, raw string) DraftURL {
	test.Helper()
	value, err := NewDraftURL(raw)
	if err != nil {
		test.Fatalf("draft url: %v", err)
	}
	return value
}
