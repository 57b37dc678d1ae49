// Package httpapi exposes the marketplace services over HTTP.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dealdeskhq/dealdesk/pkg/deal"
	"github.com/dealdeskhq/dealdesk/pkg/directory"
	"github.com/dealdeskhq/dealdesk/pkg/wallet"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const roleAdmin = "admin"

// Services bundles the domain services the API serves.
type Services struct {
	Deals     *deal.Service
	Wallets   *wallet.Service
	Directory *directory.Service
}

// Run boots the HTTP API using the supplied configuration and blocks until
// the context is canceled or the server fails.
func Run(ctx context.Context, cfg Config, services Services, logger *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	validator, err := NewSessionValidator([]byte(cfg.SessionSigningKey), cfg.SessionIssuer, cfg.SessionCookieName)
	if err != nil {
		return err
	}

	handler := &httpHandler{
		logger:    logger,
		deals:     services.Deals,
		wallets:   services.Wallets,
		directory: services.Directory,
	}

	router := setupRouter(cfg, handler, validator)

	server := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("dealdesk api listening", zap.String("addr", cfg.ListenAddr))
		errCh <- server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.Warn("server shutdown error", zap.Error(shutdownErr))
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func setupRouter(cfg Config, handler *httpHandler, validator *SessionValidator) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Origin", "Accept", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")
	api.Use(validator.GinMiddleware())

	api.POST("/brands", handler.handleCreateBrand)
	api.GET("/brands", handler.handleListBrands)
	api.GET("/brands/:id", handler.handleGetBrand)
	api.PATCH("/brands/:id", handler.handleUpdateBrand)
	api.GET("/brands/:id/campaigns", handler.handleListBrandCampaigns)
	api.GET("/brands/:id/unread_count", handler.handleUnreadCount)

	api.POST("/creators", handler.handleCreateCreator)
	api.GET("/creators", handler.handleListCreators)
	api.GET("/creators/:id", handler.handleGetCreator)

	api.POST("/campaigns", handler.handleCreateCampaign)
	api.GET("/campaigns", handler.handleListCampaigns)
	api.GET("/campaigns/:id", handler.handleGetCampaign)
	api.DELETE("/campaigns/:id", handler.handleDeleteCampaign)
	api.GET("/campaigns/:id/applications", handler.handleListCampaignApplications)

	api.POST("/applications", handler.handleApply)
	api.POST("/outreach", handler.handleCreateOutreach)
	api.GET("/applications", handler.handleListApplications)
	api.GET("/applications/:id", handler.handleGetApplication)
	api.POST("/applications/:id/accept", handler.handleAcceptOffer)
	api.POST("/applications/:id/decline", handler.handleDeclineOffer)
	api.POST("/applications/:id/status", handler.handleUpdateStatus)
	api.POST("/applications/:id/override", handler.requireAdmin(handler.handleOverrideStatus))
	api.POST("/applications/:id/draft", handler.handleSubmitDraft)
	api.POST("/applications/:id/content_decision", handler.handleDecideContent)
	api.DELETE("/applications/:id", handler.requireAdmin(handler.handleRemoveApplication))

	api.POST("/applications/:id/messages", handler.handleSendMessage)
	api.GET("/applications/:id/messages", handler.handleListMessages)
	api.POST("/applications/:id/read", handler.handleMarkAsRead)

	api.GET("/wallet", handler.handleWalletBalance)
	api.GET("/wallet/transactions", handler.handleWalletTransactions)
	api.POST("/wallet/topup", handler.handleTopUp)
	api.POST("/wallet/lock", handler.handleLockEscrow)
	api.POST("/wallet/release", handler.handleReleaseEscrow)
	api.POST("/wallet/withdraw", handler.handleWithdraw)
	api.POST("/wallet/refund", handler.handleRefund)
	api.POST("/wallet/record", handler.requireAdmin(handler.handleRecordTransaction))

	return router
}

type httpHandler struct {
	logger    *zap.Logger
	deals     *deal.Service
	wallets   *wallet.Service
	directory *directory.Service
}

func (handler *httpHandler) requireAdmin(next gin.HandlerFunc) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		claims := getClaims(ctx)
		if claims == nil || !claims.HasRole(roleAdmin) {
			ctx.AbortWithStatusJSON(http.StatusForbidden, errorResponse("forbidden", "admin role required"))
			return
		}
		next(ctx)
	}
}
