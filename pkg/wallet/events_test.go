package wallet

import (
	"context"
	"errors"
	"sync"
	"testing"
)

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

func TestReleaseEscrowPublishesEvent(test *testing.T) {
	test.Parallel()
	store := newStubStore(test, 300)
	recorder := &recordingPublisher{}
	service := mustNewServiceWithOptions(test, store, WithEventPublisher(recorder))
	brandID := mustBrandID(test, brandIDValue)
	campaignID := mustCampaignID(test, campaignIDValue)
	reference := "release:app-1"

	result, err := service.ReleaseEscrow(context.Background(), brandID, campaignID, mustPositiveAmount(test, 200), mustCurrency(test, currencyValue), reference)
	if err != nil {
		test.Fatalf("release: %v", err)
	}

	if len(recorder.events) != 1 {
		test.Fatalf("expected one event, got %d", len(recorder.events))
	}
	event := recorder.events[0]
	if event.Kind != EventEscrowReleased {
		test.Fatalf("unexpected kind: %q", event.Kind)
	}
	if event.BrandID != brandIDValue || event.CampaignID != campaignIDValue {
		test.Fatalf("unexpected subject: %+v", event)
	}
	if event.TransactionID != result.TransactionID {
		test.Fatalf("event transaction %q, release recorded %q", event.TransactionID, result.TransactionID)
	}
	if event.AmountCents != 200 || event.Currency != currencyValue || event.Reference != reference {
		test.Fatalf("unexpected payload: %+v", event)
	}
	if event.OccurredUnixUTC == 0 {
		test.Fatalf("event missing timestamp")
	}
}

func TestReleaseEscrowReplayDoesNotRepublish(test *testing.T) {
	test.Parallel()
	store := newStubStore(test, 300)
	recorder := &recordingPublisher{}
	service := mustNewServiceWithOptions(test, store, WithEventPublisher(recorder))
	brandID := mustBrandID(test, brandIDValue)
	campaignID := mustCampaignID(test, campaignIDValue)
	reference := "release:app-1"

	for attempt := 0; attempt < 3; attempt++ {
		if _, err := service.ReleaseEscrow(context.Background(), brandID, campaignID, mustPositiveAmount(test, 200), mustCurrency(test, currencyValue), reference); err != nil {
			test.Fatalf("release attempt %d: %v", attempt, err)
		}
	}

	if len(recorder.events) != 1 {
		test.Fatalf("replays republished: %d events", len(recorder.events))
	}
}

func TestFailedReleasePublishesNothing(test *testing.T) {
	test.Parallel()
	store := newStubStore(test, 300)
	store.insertError = errStoreFailure
	recorder := &recordingPublisher{}
	service := mustNewServiceWithOptions(test, store, WithEventPublisher(recorder))
	brandID := mustBrandID(test, brandIDValue)
	campaignID := mustCampaignID(test, campaignIDValue)

	_, err := service.ReleaseEscrow(context.Background(), brandID, campaignID, mustPositiveAmount(test, 200), mustCurrency(test, currencyValue), "release:app-1")
	if !errors.Is(err, errStoreFailure) {
		test.Fatalf(errorMismatchMessage, errStoreFailure, err)
	}
	if len(recorder.events) != 0 {
		test.Fatalf("failed release published %d events", len(recorder.events))
	}
}
