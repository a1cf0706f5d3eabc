package server

import (
	"context"
	"database/sql"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"causality-backend/internal/analyses"
	"causality-backend/internal/classifier"
	"causality-backend/internal/classifier/infer"
	"causality-backend/internal/documents"
	"causality-backend/internal/enrich"
	"causality-backend/internal/scoring"
	"causality-backend/internal/shared/config"
	"causality-backend/internal/shared/metrics"
	"causality-backend/internal/shared/server/middleware"
	"causality-backend/internal/shared/server/respond"
	"causality-backend/internal/shared/storage/db"
	localstore "causality-backend/internal/shared/storage/object/local"
)

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(cfg config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(cfg.CORSAllowOrigin),
		middleware.RateLimit(middleware.RateLimitConfig{
			DefaultGroup: "DEFAULT",
			GroupFor: func(c *gin.Context) string {
				if c.Request.Method == http.MethodGet && c.FullPath() == "/api/v1/analyses/:id" {
					return "POLLING"
				}
				return "DEFAULT"
			},
			Rules: map[string]middleware.RateLimitRule{
				"DEFAULT": {Rate: 5, Burst: 20},
				"POLLING": {Rate: 20, Burst: 60},
			},
		}),
	)

	// Dependencies
	store := localstore.New(cfg.LocalStoreDir)
	var sqlDB *sql.DB
	if cfg.DatabaseURL != "" {
		dbConn, err := db.Connect(context.Background(), cfg.DatabaseURL, db.OptionsFromEnv(db.DefaultServerOptions()))
		if err != nil {
			log.Printf("failed to connect database, falling back to memory: %v", err)
		} else {
			if err := db.RunMigrations(context.Background(), dbConn); err != nil {
				log.Printf("failed to run migrations, falling back to memory: %v", err)
				dbConn = nil
			}
		}
		sqlDB = dbConn
	}

	var docRepo documents.DocumentsRepo
	if sqlDB != nil {
		docRepo = &documents.PGRepo{DB: sqlDB}
	} else {
		docRepo = documents.NewMemoryRepo()
	}
	docSvc := &documents.Service{Store: store, Repo: docRepo}
	docHandler := documents.NewHandler(docSvc)

	var clf classifier.Client
	if cfg.ClassifierURL != "" {
		client, err := infer.NewClient(cfg.ClassifierURL, cfg.ClassifierTimeout)
		if err != nil {
			log.Printf("classifier client unavailable, using lexical fallback: %v", err)
			clf = classifier.Fallback{}
		} else {
			clf = client
		}
	} else {
		log.Printf("CLASSIFIER_URL not set, using lexical fallback")
		clf = classifier.Fallback{}
	}

	var analysisRepo analyses.Repo
	if sqlDB != nil {
		analysisRepo = &analyses.PGRepo{DB: sqlDB}
	} else {
		analysisRepo = analyses.NewMemoryRepo()
	}
	analysisSvc := &analyses.Service{
		Repo:       analysisRepo,
		Docs:       docSvc,
		Classifier: clf,
		Config: scoring.Config{
			Threshold:   cfg.ClassifyThreshold,
			MarkerBoost: cfg.MarkerBoost,
			Preprocess:  cfg.Preprocess,
		},
		Enricher: enrich.NewClient(cfg.FAERSBaseURL, 0),
	}
	analysisHandler := analyses.NewHandler(analysisSvc)

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	api.GET("/metrics", metrics.Handler())
	docHandler.RegisterRoutes(api)
	analysisHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
