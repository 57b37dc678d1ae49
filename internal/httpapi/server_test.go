package httpapi_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"path/filepath"
	"testing"
	"time"

	"github.com/dealdeskhq/dealdesk/internal/httpapi"
	"github.com/dealdeskhq/dealdesk/internal/store/gormstore"
	"github.com/dealdeskhq/dealdesk/pkg/deal"
	"github.com/dealdeskhq/dealdesk/pkg/directory"
	"github.com/dealdeskhq/dealdesk/pkg/wallet"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	sessionSigningKey = "secret-key"
	sessionIssuer     = "dealdesk"
	sessionCookieName = "dealdesk_session"
	contentTypeHeader = "Content-Type"
	contentTypeJSON   = "application/json"
)

type apiHarness struct {
	baseURL    string
	client     *http.Client
	validator  *httpapi.SessionValidator
	brandID    string
	creatorID  string
	campaignID string
}

func TestMarketplaceFlowIntegration(t *testing.T) {
	harness := startAPIServer(t)

	brandCookie := harness.sessionCookie(t, harness.brandID, "brand", nil)
	creatorCookie := harness.sessionCookie(t, harness.creatorID, "creator", nil)
	adminCookie := harness.sessionCookie(t, harness.brandID, "brand", []string{"admin"})

	if response := harness.request(t, http.MethodGet, "/api/wallet", nil, nil); response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 without session, got %d", response.StatusCode)
	}

	// Fund the wallet and lock escrow for the campaign.
	topUp := harness.requestJSON(t, http.MethodPost, "/api/wallet/topup", brandCookie, map[string]any{
		"amount_cents": int64(500000),
		"currency":     "USD",
	})
	if topUp["result"].(map[string]any)["new_balance_cents"].(float64) != 500000 {
		t.Fatalf("unexpected top-up result: %v", topUp)
	}
	harness.requestJSON(t, http.MethodPost, "/api/wallet/lock", brandCookie, map[string]any{
		"campaign_id":  harness.campaignID,
		"amount_cents": int64(200000),
		"currency":     "USD",
	})

	// Brand reaches out; creator replies, which advances the deal.
	outreach := harness.requestJSON(t, http.MethodPost, "/api/outreach", brandCookie, map[string]any{
		"brand_id":             harness.brandID,
		"campaign_id":          harness.campaignID,
		"creator_id":           harness.creatorID,
		"offered_amount_cents": int64(200000),
		"offered_currency":     "USD",
		"initial_message":      "We would love to collaborate",
		"match_score":          90,
	})
	applicationID := outreach["application"].(map[string]any)["application_id"].(string)
	if outreach["application"].(map[string]any)["status"].(string) != "pending_creator" {
		t.Fatalf("unexpected outreach status: %v", outreach)
	}

	harness.requestJSON(t, http.MethodPost, "/api/applications/"+applicationID+"/messages", creatorCookie, map[string]any{
		"content": "Sounds great, let's talk terms",
	})
	application := harness.requestJSON(t, http.MethodGet, "/api/applications/"+applicationID, brandCookie, nil)
	if got := application["application"].(map[string]any)["status"].(string); got != "negotiating" {
		t.Fatalf("creator reply did not advance the deal: %s", got)
	}

	unread := harness.requestJSON(t, http.MethodGet, "/api/brands/"+harness.brandID+"/unread_count", brandCookie, nil)
	if unread["unread_count"].(float64) != 1 {
		t.Fatalf("unexpected unread count: %v", unread)
	}

	// Hire, submit a draft, approve it, release escrow idempotently.
	harness.requestJSON(t, http.MethodPost, "/api/applications/"+applicationID+"/status", brandCookie, map[string]any{
		"status": "hired",
	})
	harness.requestJSON(t, http.MethodPost, "/api/applications/"+applicationID+"/draft", creatorCookie, map[string]any{
		"url": "https://cdn.example.com/drafts/v1.mp4",
	})
	decided := harness.requestJSON(t, http.MethodPost, "/api/applications/"+applicationID+"/content_decision", brandCookie, map[string]any{
		"decision": "approved",
	})
	if got := decided["application"].(map[string]any)["content_status"].(string); got != "approved" {
		t.Fatalf("unexpected content status: %s", got)
	}

	releaseBody := map[string]any{
		"campaign_id":  harness.campaignID,
		"amount_cents": int64(200000),
		"currency":     "USD",
		"reference":    "release:" + applicationID,
	}
	first := harness.requestJSON(t, http.MethodPost, "/api/wallet/release", brandCookie, releaseBody)
	second := harness.requestJSON(t, http.MethodPost, "/api/wallet/release", brandCookie, releaseBody)
	firstID := first["result"].(map[string]any)["transaction_id"].(string)
	secondID := second["result"].(map[string]any)["transaction_id"].(string)
	if firstID != secondID {
		t.Fatalf("release not idempotent: %q vs %q", firstID, secondID)
	}

	// Pipeline guard: a declined deal is not reachable through status updates.
	response := harness.request(t, http.MethodPost, "/api/applications/"+applicationID+"/status", brandCookie, map[string]any{
		"status": "declined",
	})
	if response.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 for non-pipeline target, got %d", response.StatusCode)
	}

	// Admin-only surfaces.
	if response := harness.request(t, http.MethodPost, "/api/applications/"+applicationID+"/override", brandCookie, map[string]any{
		"status": "completed",
		"reason": "ops request",
	}); response.StatusCode != http.StatusForbidden {
		t.Fatalf("expected 403 without admin role, got %d", response.StatusCode)
	}
	overridden := harness.requestJSON(t, http.MethodPost, "/api/applications/"+applicationID+"/override", adminCookie, map[string]any{
		"status": "completed",
		"reason": "ops request",
	})
	if got := overridden["application"].(map[string]any)["status"].(string); got != "completed" {
		t.Fatalf("override failed: %s", got)
	}

	transactions := harness.requestJSON(t, http.MethodGet, "/api/wallet/transactions", brandCookie, nil)
	if got := len(transactions["transactions"].([]any)); got != 3 {
		t.Fatalf("expected 3 wallet transactions, got %d", got)
	}
}

func TestDuplicateOutreachReturnsConflict(t *testing.T) {
	harness := startAPIServer(t)
	brandCookie := harness.sessionCookie(t, harness.brandID, "brand", nil)

	body := map[string]any{
		"brand_id":             harness.brandID,
		"campaign_id":          harness.campaignID,
		"creator_id":           harness.creatorID,
		"offered_amount_cents": int64(100000),
		"offered_currency":     "USD",
		"initial_message":      "First offer",
		"match_score":          80,
	}
	harness.requestJSON(t, http.MethodPost, "/api/outreach", brandCookie, body)
	response := harness.request(t, http.MethodPost, "/api/outreach", brandCookie, body)
	if response.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate outreach, got %d", response.StatusCode)
	}
	var envelope map[string]any
	decodeBody(t, response, &envelope)
	if code := envelope["error"].(map[string]any)["code"].(string); code != "duplicate_offer" {
		t.Fatalf("unexpected error code: %q", code)
	}
}

func TestOverdrawReturnsConflict(t *testing.T) {
	harness := startAPIServer(t)
	brandCookie := harness.sessionCookie(t, harness.brandID, "brand", nil)

	response := harness.request(t, http.MethodPost, "/api/wallet/lock", brandCookie, map[string]any{
		"campaign_id":  harness.campaignID,
		"amount_cents": int64(100),
		"currency":     "USD",
	})
	if response.StatusCode != http.StatusConflict {
		t.Fatalf("expected 409 on overdraw, got %d", response.StatusCode)
	}
	var envelope map[string]any
	decodeBody(t, response, &envelope)
	if code := envelope["error"].(map[string]any)["code"].(string); code != "insufficient_funds" {
		t.Fatalf("unexpected error code: %q", code)
	}
}

func startAPIServer(t *testing.T) *apiHarness {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "httpapi_test.db")
	db, err := gorm.Open(sqlite.Open(databasePath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(gormstore.AllModels()...); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	directoryService, err := directory.NewService(gormstore.NewDirectoryStore(db), nil)
	if err != nil {
		t.Fatalf("directory service: %v", err)
	}
	dealService, err := deal.NewService(gormstore.NewDealStore(db), func() int64 { return time.Now().UTC().UnixMilli() })
	if err != nil {
		t.Fatalf("deal service: %v", err)
	}
	walletService, err := wallet.NewService(gormstore.NewWalletStore(db), func() int64 { return time.Now().UTC().Unix() })
	if err != nil {
		t.Fatalf("wallet service: %v", err)
	}

	brand, err := directoryService.CreateBrand(context.Background(), directory.Brand{Name: "Acme"})
	if err != nil {
		t.Fatalf("create brand: %v", err)
	}
	creator, err := directoryService.CreateCreator(context.Background(), directory.Creator{Name: "Jordan"})
	if err != nil {
		t.Fatalf("create creator: %v", err)
	}
	campaign, err := directoryService.CreateCampaign(context.Background(), directory.Campaign{
		BrandID: brand.BrandID,
		Title:   "Spring Launch",
	})
	if err != nil {
		t.Fatalf("create campaign: %v", err)
	}

	cfg := httpapi.Config{
		ListenAddr:        allocateListenAddress(t),
		AllowedOrigins:    []string{"http://localhost:3000"},
		SessionSigningKey: sessionSigningKey,
		SessionIssuer:     sessionIssuer,
		SessionCookieName: sessionCookieName,
	}

	runContext, cancelRun := context.WithCancel(context.Background())
	t.Cleanup(cancelRun)
	go func() {
		_ = httpapi.Run(runContext, cfg, httpapi.Services{
			Deals:     dealService,
			Wallets:   walletService,
			Directory: directoryService,
		}, nil)
	}()

	waitForServerHealthy(t, cfg.ListenAddr)

	validator, err := httpapi.NewSessionValidator([]byte(sessionSigningKey), sessionIssuer, sessionCookieName)
	if err != nil {
		t.Fatalf("validator: %v", err)
	}

	return &apiHarness{
		baseURL:    fmt.Sprintf("http://%s", cfg.ListenAddr),
		client:     &http.Client{Timeout: 2 * time.Second},
		validator:  validator,
		brandID:    brand.BrandID,
		creatorID:  creator.CreatorID,
		campaignID: campaign.CampaignID,
	}
}

func (harness *apiHarness) sessionCookie(t *testing.T, actorID string, actorType string, roles []string) *http.Cookie {
	t.Helper()
	token, err := harness.validator.IssueToken(actorID, actorType, roles, time.Hour)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return &http.Cookie{Name: harness.validator.CookieName(), Value: token}
}

func (harness *apiHarness) request(t *testing.T, method string, path string, cookie *http.Cookie, body map[string]any) *http.Response {
	t.Helper()
	var payload *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode body: %v", err)
		}
		payload = bytes.NewBuffer(encoded)
	} else {
		payload = bytes.NewBuffer(nil)
	}
	request, err := http.NewRequest(method, harness.baseURL+path, payload)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	request.Header.Set(contentTypeHeader, contentTypeJSON)
	if cookie != nil {
		request.AddCookie(cookie)
	}
	response, err := harness.client.Do(request)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	return response
}

func (harness *apiHarness) requestJSON(t *testing.T, method string, path string, cookie *http.Cookie, body map[string]any) map[string]any {
	t.Helper()
	response := harness.request(t, method, path, cookie, body)
	if response.StatusCode < 200 || response.StatusCode >= 300 {
		var envelope map[string]any
		decodeBody(t, response, &envelope)
		t.Fatalf("%s %s: status %d body %v", method, path, response.StatusCode, envelope)
	}
	var decoded map[string]any
	decodeBody(t, response, &decoded)
	return decoded
}

func decodeBody(t *testing.T, response *http.Response, target any) {
	t.Helper()
	defer response.Body.Close()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func allocateListenAddress(t *testing.T) string {
	t.Helper()
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("allocate port: %v", err)
	}
	address := listener.Addr().String()
	if err := listener.Close(); err != nil {
		t.Fatalf("release port: %v", err)
	}
	return address
}

func waitForServerHealthy(t *testing.T, listenAddr string) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	healthURL := fmt.Sprintf("http://%s/healthz", listenAddr)
	for time.Now().Before(deadline) {
		response, err := http.Get(healthURL)
		if err == nil {
			response.Body.Close()
			if response.StatusCode == http.StatusOK {
				return
			}
		}
		time.Sleep(50 * time.Millisecond)
	}
	t.Fatalf("server at %s never became healthy", listenAddr)
}
