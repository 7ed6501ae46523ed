package handlers

import (
	"github.com/SscSPs/ledger_engine/cmd/docs"
	portssvc "github.com/SscSPs/ledger_engine/internal/core/ports/services"
	"github.com/SscSPs/ledger_engine/internal/platform/config"
	"github.com/SscSPs/ledger_engine/internal/platform/metrics"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies using interfaces
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
	m *metrics.Metrics,
) {
	r.GET("/health", getHealth(m))
	if m != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
	}

	setupAPIV1Routes(r, cfg, services)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific resource route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	service *portssvc.ServiceContainer,
) {
	v1 := r.Group("/api/v1")

	registerEntityRoutes(v1, service)
	registerLedgerRoutes(v1, service)
	registerJournalEntryRoutes(v1, service)
	registerUnitRoutes(v1, service)
	registerCursorRoutes(v1, service, cfg)
}

func registerEntityRoutes(rg *gin.RouterGroup, service *portssvc.ServiceContainer) {
	eh := newEntityHandler(service.Entity)
	ah := newAccountHandler(service.Account)
	lh := newLedgerHandler(service.Ledger)
	jh := newJournalHandler(service.Posting, service.Ledger)
	dh := newDigestHandler(service.Digest, service.Ledger, service.Entity)
	ch := newClosingHandler(service.Closing)

	rg.POST("/entities", eh.createEntity)
	entity := rg.Group("/entities/:entityID")
	{
		entity.GET("", eh.getEntity)
		entity.POST("/units", eh.createUnit)
		entity.GET("/units", eh.listUnits)

		entity.POST("/chart", ah.seedChart)
		entity.GET("/accounts", ah.listAccounts)
		entity.GET("/accounts/tree", ah.getAccountTree)

		entity.POST("/ledgers", lh.createLedger)
		entity.GET("/ledgers", lh.listLedgers)

		entity.POST("/journal-entries", jh.commitEntityTxs)
		entity.POST("/digest", dh.entityDigest)

		entity.POST("/close", ch.closePeriod)
		entity.GET("/closing-entries", ch.listClosingEntries)
	}
}

func registerLedgerRoutes(rg *gin.RouterGroup, service *portssvc.ServiceContainer) {
	lh := newLedgerHandler(service.Ledger)
	jh := newJournalHandler(service.Posting, service.Ledger)
	dh := newDigestHandler(service.Digest, service.Ledger, service.Entity)

	ledger := rg.Group("/ledgers/:ledgerID")
	{
		ledger.GET("", lh.getLedger)
		ledger.POST("/post", lh.postLedger)
		ledger.POST("/lock", lh.lockLedger)
		ledger.POST("/unlock", lh.unlockLedger)
		ledger.POST("/journal-entries", jh.commitLedgerTxs)
		ledger.GET("/journal-entries", jh.listJournalEntries)
		ledger.POST("/digest", dh.ledgerDigest)
	}
}

func registerJournalEntryRoutes(rg *gin.RouterGroup, service *portssvc.ServiceContainer) {
	jh := newJournalHandler(service.Posting, service.Ledger)
	rg.GET("/journal-entries/:journalEntryID", jh.getJournalEntry)
	rg.DELETE("/journal-entries/:journalEntryID", jh.deleteJournalEntry)
}

func registerUnitRoutes(rg *gin.RouterGroup, service *portssvc.ServiceContainer) {
	dh := newDigestHandler(service.Digest, service.Ledger, service.Entity)
	rg.POST("/units/:unitID/digest", dh.unitDigest)
}

func registerCursorRoutes(rg *gin.RouterGroup, service *portssvc.ServiceContainer, cfg *config.Config) {
	h := newCursorHandler(service.Library, cfg.CursorMode)
	rg.POST("/entities/:entityID/cursor", h.commitCursor)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
