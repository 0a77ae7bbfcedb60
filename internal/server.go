package internal

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"net"
	"net/http"
	_ "net/http/pprof"
	"os"
	"strconv"
	"time"

	"github.com/IBM/pgxpoolprometheus"
	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redis_rate/v9"
	"github.com/gorilla/mux"
	"github.com/ipinfo/go/v2/ipinfo"
	"github.com/jackc/pgx/v5/pgxpool"
	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gorilla/mux/otelmux"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/repready/backend/internal/auth"
	"github.com/repready/backend/internal/backup"
	"github.com/repready/backend/internal/config"
	"github.com/repready/backend/internal/db"
	"github.com/repready/backend/internal/geoip"
	"github.com/repready/backend/internal/middleware"
	"github.com/repready/backend/internal/misc"
	"github.com/repready/backend/internal/recovery"
	recoverymcp "github.com/repready/backend/internal/recovery/mcp"
	"github.com/repready/backend/internal/settings"
	"github.com/repready/backend/internal/sleep"
	"github.com/repready/backend/internal/soundtrack"
	"github.com/repready/backend/internal/telemetry/metrics"
	metricsmiddleware "github.com/repready/backend/internal/telemetry/metrics/middleware"
	"github.com/repready/backend/internal/telemetry/tracing"
	"github.com/repready/backend/internal/workouts"
)

// soundtrackSyncInterval is how often the Spotify tracker pulls the
// recently played tracks once authenticated.
const soundtrackSyncInterval = 5 * time.Minute

type Server struct {
	httpServer        *http.Server
	metricsHttpServer *http.Server
	mobileAppSecret   string // used with the companion mobile app
	mcpSecret         string // guards the /mcp endpoint
	versionInfo       string

	config        *config.Config
	dbPool        *pgxpool.Pool
	geoIp         *geoip.Api
	quotesManager *misc.QuotesManager

	spotifyClientID     string
	spotifyClientSecret string
	soundtrackHandler   *soundtrack.Handler

	redisClient  *redis.Client
	loginChecker *auth.LoginChecker
	authService  *auth.Service

	recoveryService *recovery.Service
	backupService   *backup.Service // nil when backups are disabled

	// metrics
	metricsManager *metrics.Manager
	promRegistry   *prometheus.Registry
	otelShutdown   func()
}

type NewServerParams struct {
	Config                  *config.Config
	IpInfoAPIKey            string
	MobileAppSecret         string
	MCPSecret               string
	VersionInfo             string
	AdminUsername           string
	AdminPasswordHash       string
	RedisPassword           string
	DBPassword              string
	HoneycombTracingEnabled bool
	SpotifyClientID         string
	SpotifyClientSecret     string
}

func NewServer(
	ctx context.Context,
	params NewServerParams,
) (*Server, error) {
	dbPool, err := db.NewDBPool(ctx, db.NewDBPoolParams{
		DBHost:         params.Config.PostgresHost,
		DBPort:         params.Config.PostgresPort,
		DBName:         params.Config.PostgresDBName,
		DBPassword:     params.DBPassword,
		TracingEnabled: params.HoneycombTracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("new db pool: %w", err)
	}

	if err := dbPool.Ping(ctx); err != nil {
		log.Warnf("failed to ping db: %s", err)
	}

	pgxpoolCollector := pgxpoolprometheus.NewCollector(
		dbPool,
		map[string]string{"db_name": "repready_db"},
	)
	promRegistry := metrics.SetupPrometheus(pgxpoolCollector)
	metricsManager := metrics.NewManager("backend", "main", promRegistry)
	metricsManager.GaugeLifeSignal.Set(0)

	rdb := redis.NewClient(&redis.Options{
		Addr:     net.JoinHostPort(params.Config.RedisHost, params.Config.RedisPort),
		Password: params.RedisPassword,
		DB:       0, // use default DB
	})

	rdbStatus := rdb.Ping(ctx)
	if err := rdbStatus.Err(); err != nil {
		log.Errorf("--> failed to ping redis: %s", err)
	} else {
		log.Debugf("redis ping: %s", rdbStatus.Val())
	}

	authService := auth.NewAuthService(&auth.Admin{
		Username:     params.AdminUsername,
		PasswordHash: params.AdminPasswordHash,
	}, auth.DefaultTTL, rdb)
	go func() {
		for range time.Tick(time.Hour * 8) {
			authService.ScanAndClean(ctx)
		}
	}()

	// use honeycomb distro to setup OpenTelemetry SDK
	otelShutdown, err := tracing.HoneycombSetup(params.HoneycombTracingEnabled, "repready-backend", rdb)
	if err != nil {
		return nil, err
	}

	tracedHttpClient := &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}

	recoveryService := recovery.NewService(
		workouts.NewRepo(dbPool),
		sleep.NewRepo(dbPool),
		settings.NewRepo(dbPool),
		params.Config.RecoveryWindowDays,
		metricsManager,
	)

	s := &Server{
		config:          params.Config,
		dbPool:          dbPool,
		mobileAppSecret: params.MobileAppSecret,
		mcpSecret:       params.MCPSecret,
		geoIp: geoip.NewApi(
			ipinfo.NewClient(tracedHttpClient, nil, params.IpInfoAPIKey),
			rdb,
		),
		versionInfo: params.VersionInfo,

		spotifyClientID:     params.SpotifyClientID,
		spotifyClientSecret: params.SpotifyClientSecret,

		redisClient:  rdb,
		authService:  authService,
		loginChecker: auth.NewLoginChecker(auth.DefaultTTL, rdb),

		recoveryService: recoveryService,

		// telemetry
		metricsManager: metricsManager,
		promRegistry:   promRegistry,
		otelShutdown:   otelShutdown,
	}

	if params.Config.GDriveBackupEnabled {
		credentialsJSON, err := os.ReadFile(params.Config.GDriveCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read gdrive credentials file: %w", err)
		}
		gdrive, err := backup.NewGoogleDrive(ctx, credentialsJSON, params.Config.GDriveBackupShareEmail)
		if err != nil {
			return nil, fmt.Errorf("new google drive client: %w", err)
		}
		s.backupService = backup.NewService(
			gdrive,
			workouts.NewRepo(dbPool),
			metricsManager,
			time.Duration(params.Config.GDriveBackupIntervalHours)*time.Hour,
		)
	}

	quotesCsvFile, err := os.Open(params.Config.QuotesCsvPath)
	if err != nil {
		return nil, fmt.Errorf("open quotes file: %w", err)
	}
	defer func() {
		if err := quotesCsvFile.Close(); err != nil {
			log.Warnf("close quotes csv file: %s", err)
		}
	}()

	s.quotesManager, err = misc.NewQuoteManager(csv.NewReader(quotesCsvFile))
	if err != nil {
		return nil, fmt.Errorf("failed to create quote manager: %s", err)
	}

	return s, nil
}

func (s *Server) routerSetup() *mux.Router {
	r := mux.NewRouter()
	r.Use(otelmux.Middleware("main-router"))

	reqRateLimiter := redis_rate.NewLimiter(s.redisClient)
	miscHandler := misc.NewHandler(s.quotesManager, s.geoIp, s.versionInfo, s.authService)
	miscHandler.SetupRoutes(r, reqRateLimiter, s.config.LoginRateLimitAllowedPerMin, s.metricsManager)

	workoutsRepo := workouts.NewRepo(s.dbPool)
	workoutsHandler := workouts.NewHandler(workoutsRepo, s.recoveryService, s.metricsManager)
	r.HandleFunc("/workouts", workoutsHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-workout")
	r.HandleFunc("/workouts/list/page/{page}/size/{size}", workoutsHandler.HandleList).Methods("GET", "OPTIONS").Name("list-workouts")
	r.HandleFunc("/workouts/{id}", workoutsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-workout")
	r.HandleFunc("/workouts/{id}", workoutsHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-workout")
	r.HandleFunc("/workouts/{id}", workoutsHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-workout")

	recoveryHandler := recovery.NewHandler(s.recoveryService)
	r.HandleFunc("/recovery/snapshot", recoveryHandler.HandleSnapshot).Methods("GET", "OPTIONS").Name("recovery-snapshot")
	r.HandleFunc("/recovery/muscles", recoveryHandler.HandleMuscles).Methods("GET", "OPTIONS").Name("recovery-muscles")
	r.HandleFunc("/recovery/readiness", recoveryHandler.HandleReadiness).Methods("GET", "OPTIONS").Name("recovery-readiness")
	r.HandleFunc("/recovery/consistency", recoveryHandler.HandleConsistency).Methods("GET", "OPTIONS").Name("recovery-consistency")
	r.HandleFunc("/recovery/imbalances", recoveryHandler.HandleImbalances).Methods("GET", "OPTIONS").Name("recovery-imbalances")
	// recompute bypasses the snapshot cache, keep it rate limited
	r.Handle(
		"/recovery/recompute",
		middleware.RateLimit(
			reqRateLimiter, "recompute", s.config.RecomputeRateLimitAllowedPerMin, s.metricsManager,
		)(http.HandlerFunc(recoveryHandler.HandleRecompute)),
	).Methods("POST", "OPTIONS").Name("recovery-recompute")

	settingsHandler := settings.NewHandler(settings.NewRepo(s.dbPool), s.recoveryService)
	r.HandleFunc("/settings", settingsHandler.HandleGet).Methods("GET", "OPTIONS").Name("get-settings")
	r.HandleFunc("/settings", settingsHandler.HandleUpdate).Methods("PUT", "OPTIONS").Name("update-settings")

	sleepHandler := sleep.NewHandler(sleep.NewRepo(s.dbPool), s.recoveryService, s.metricsManager)
	r.HandleFunc("/sleep", sleepHandler.HandleAdd).Methods("POST", "OPTIONS").Name("new-sleep-log")
	r.HandleFunc("/sleep/list", sleepHandler.HandleList).Methods("GET", "OPTIONS").Name("list-sleep-logs")
	r.HandleFunc("/sleep/{id}", sleepHandler.HandleDelete).Methods("DELETE", "OPTIONS").Name("delete-sleep-log")

	s.soundtrackHandler = soundtrack.NewHandler(
		s.config.SpotifyRedirectURL,
		s.spotifyClientID,
		s.spotifyClientSecret,
		soundtrack.GenerateStateString,
		soundtrack.NewRepo(s.dbPool),
		workoutsRepo,
		soundtrackSyncInterval,
	)
	r.HandleFunc("/soundtrack/auth", s.soundtrackHandler.Authenticate).Methods("GET").Name("soundtrack-auth")
	r.HandleFunc("/soundtrack/auth/redirect", s.soundtrackHandler.AuthRedirect).Methods("GET").Name("soundtrack-auth-redirect")
	r.HandleFunc("/soundtrack/sync", s.soundtrackHandler.HandleSync).Methods("POST", "OPTIONS").Name("soundtrack-sync")
	r.HandleFunc("/soundtrack/list", s.soundtrackHandler.HandleList).Methods("GET", "OPTIONS").Name("list-soundtrack")
	r.HandleFunc("/soundtrack/workout/{id}", s.soundtrackHandler.HandleForWorkout).Methods("GET", "OPTIONS").Name("workout-soundtrack")
	r.HandleFunc("/soundtrack/tracker/status", s.soundtrackHandler.HandleTrackerStatus).Methods("GET", "OPTIONS").Name("soundtrack-tracker-status")
	r.HandleFunc("/soundtrack/tracker/start", s.soundtrackHandler.HandleTrackerStart).Methods("POST", "OPTIONS").Name("soundtrack-tracker-start")
	r.HandleFunc("/soundtrack/tracker/stop", s.soundtrackHandler.HandleTrackerStop).Methods("POST", "OPTIONS").Name("soundtrack-tracker-stop")

	if s.backupService != nil {
		backupHandler := backup.NewHandler(s.backupService)
		r.HandleFunc("/backup/run", backupHandler.HandleRun).Methods("POST", "OPTIONS").Name("run-backup")
	}

	mcpServer := recoverymcp.NewServer(s.recoveryService, workoutsRepo)
	r.PathPrefix("/mcp").Handler(recoverymcp.RequireSecret(
		s.mcpSecret,
		mcpsdk.NewStreamableHTTPHandler(func(*http.Request) *mcpsdk.Server {
			return mcpServer
		}, nil),
	)).Name("mcp")

	// all the rest - unhandled paths
	r.HandleFunc("/{unknown}", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}).Methods("GET", "POST", "PUT", "OPTIONS").Name("unknown")

	authMiddleware := middleware.NewAuthMiddlewareHandler(
		s.mobileAppSecret,
		s.loginChecker,
	)

	r.Use(middleware.PanicRecovery(s.metricsManager))
	r.Use(middleware.LogRequest())
	r.Use(middleware.RequestMetrics(s.metricsManager))
	r.Use(middleware.Cors())
	r.Use(authMiddleware.AuthCheck())
	r.Use(middleware.DrainRequestBody())

	return r
}

func (s *Server) Serve(host string, port int) {
	router := s.routerSetup()

	ipAndPort := net.JoinHostPort(host, strconv.Itoa(port))
	s.httpServer = &http.Server{
		Handler:      router,
		Addr:         ipAndPort,
		WriteTimeout: time.Minute,
		ReadTimeout:  time.Minute,
		ConnState:    s.connStateMetrics,
	}

	metricsRouter := mux.NewRouter()
	metricsRouter.Handle("/metrics", metricsmiddleware.
		New(s.promRegistry, nil).
		WrapHandler("/metrics", promhttp.HandlerFor(
			s.promRegistry,
			promhttp.HandlerOpts{}),
		))
	if s.config.Environment != "production" {
		// net/http/pprof registers on the default mux
		metricsRouter.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)
	}
	metricsAddr := net.JoinHostPort(s.config.PrometheusMetricsHost, s.config.PrometheusMetricsPort)
	s.metricsHttpServer = &http.Server{
		Addr:    metricsAddr,
		Handler: metricsRouter,
	}

	go func() {
		log.Infof(" > server listening on: [%s]", ipAndPort)
		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("main service, listen and serve: %s", err)
		}
	}()

	go func() {
		log.Debugf(" > metrics listening on: [%s]", metricsAddr)
		err := s.metricsHttpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("metrics service, listen and serve: %s", err)
		}
	}()

	if s.backupService != nil && s.config.Environment == "production" {
		s.backupService.Start()
		log.Debugln("periodic workout backups started")
	}

	s.metricsManager.GaugeLifeSignal.Set(1)
}

func (s *Server) GracefulShutdown() {
	log.Debug("graceful shutdown initiated ...")

	s.metricsManager.GaugeLifeSignal.Set(0)

	if s.backupService != nil {
		s.backupService.Stop()
	}
	if s.soundtrackHandler != nil {
		s.soundtrackHandler.StopTracker()
	}

	s.otelShutdown()
	log.Trace("otel shut down ...")

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			log.Errorf("failed to close redis client conn: %s", err)
		}
	}

	if s.dbPool != nil {
		log.Debugln("closing db pool ...")
		s.dbPool.Close() // blocking operation
		log.Debugln("db pool closed")
	}

	if ok := sentry.Flush(5 * time.Second); ok {
		log.Debugf("sentry flush ok: %t", ok)
	}

	maxWaitDuration := time.Second * 15
	ctx, timeoutCancel := context.WithTimeout(context.Background(), maxWaitDuration)
	defer timeoutCancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown http server")
	}
	log.Warnln("server shut down")

	if err := s.metricsHttpServer.Shutdown(ctx); err != nil {
		log.Error(" >>> failed to gracefully shutdown metrics http server")
	}
	log.Warnln("metrics server shut down")
}

func (s *Server) connStateMetrics(_ net.Conn, state http.ConnState) {
	switch state {
	case http.StateNew:
		s.metricsManager.GaugeRequests.Add(1)
	case http.StateClosed:
		s.metricsManager.GaugeRequests.Add(-1)
	default:
		// do nothing
	}
}
