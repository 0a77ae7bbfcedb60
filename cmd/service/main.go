package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/repready/backend/internal"
	"github.com/repready/backend/internal/config"
	"github.com/repready/backend/internal/logging"
	"github.com/repready/backend/pkg"

	log "github.com/sirupsen/logrus"
)

func main() {
	fmt.Println("starting ...")

	env := flag.String("env", "development", "environment [prod | production | dev | development]")
	configPath := flag.String("config", "./config.toml", "path for the TOML config file")
	flag.Parse()

	log.Warnf("---->> running in [%s] environment", *env)

	cfg, err := config.Load(*env, *configPath)
	if err != nil {
		panic(err)
	}

	sentryDSN := os.Getenv("SENTRY_DSN")
	logging.Setup(logging.LoggerSetupParams{
		LogFileName:      cfg.LogsPath,
		LogToStdout:      cfg.LogToStdout,
		LogLevel:         cfg.LogLevel,
		LogFormatJSON:    false,
		Environment:      cfg.Environment,
		SentryEnabled:    cfg.SentryEnabled,
		SentryDSN:        sentryDSN,
		SentryServerName: "main-service",
	})

	log.Debugf("using port: %d", cfg.Port)
	log.Debugf("using server logs path: [%s]", cfg.LogsPath)

	ipInfoAPIKey := os.Getenv("IP_INFO_API_KEY")
	if ipInfoAPIKey == "" {
		log.Errorf("ip info API key not set, use IP_INFO_API_KEY env var to set it")
	}

	versionInfo, err := tryGetLastCommitHash()
	if err != nil {
		log.Tracef("failed to get last commit hash / version info: %s", err)
	} else {
		log.Tracef("running version: %s", versionInfo)
	}

	adminUsername := os.Getenv("REPREADY_ADMIN_USERNAME")
	adminPasswordHash := os.Getenv("REPREADY_ADMIN_PASSWORD_HASH")
	if adminUsername == "" || adminPasswordHash == "" {
		log.Errorf("admin username and password not set. use REPREADY_ADMIN_USERNAME and REPREADY_ADMIN_PASSWORD_HASH")
		// not a valid bcrypt hash, so no password can ever match it
		adminUsername = "nobody"
		adminPasswordHash = "$$2a$$14$$kQm9vXe2LpH.uZsYw7Rc3OfJ5dN8qTaWb0xGyK1rVhUs4Mz"
	}

	mobileAppSecret := os.Getenv("REPREADY_MOBILE_APP_SECRET")
	if mobileAppSecret == "" {
		log.Errorf("mobile app secret not set. use REPREADY_MOBILE_APP_SECRET")
	}

	mcpSecret := os.Getenv("REPREADY_MCP_SECRET")
	if mcpSecret == "" {
		log.Warnf("mcp secret not set, /mcp stays locked. use REPREADY_MCP_SECRET")
	}

	spotifyClientID := os.Getenv("REPREADY_SPOTIFY_CLIENT_ID")
	if spotifyClientID == "" {
		log.Errorf("spotify client id not set. use REPREADY_SPOTIFY_CLIENT_ID")
	}
	spotifyClientSecret := os.Getenv("REPREADY_SPOTIFY_CLIENT_SECRET")
	if spotifyClientSecret == "" {
		log.Errorf("spotify client secret not set. use REPREADY_SPOTIFY_CLIENT_SECRET")
	}

	redisPassword := os.Getenv("REPREADY_REDIS_PASS")
	if redisPassword == "" {
		log.Errorf("redis password not set. use REPREADY_REDIS_PASS")
	}

	dbPassword := os.Getenv("REPREADY_POSTGRES_PASS")
	if dbPassword == "" {
		log.Warnf("postgres password not set, connecting without one. use REPREADY_POSTGRES_PASS")
	}

	if otelServiceName := os.Getenv("OTEL_SERVICE_NAME"); otelServiceName == "" {
		log.Warnln("OTEL_SERVICE_NAME env var not set")
	}

	honeycombEnabled := os.Getenv("HONEYCOMB_ENABLED") == "true"
	if honeycombEnabled {
		if honeycombApiKey := os.Getenv("HONEYCOMB_API_KEY"); honeycombApiKey == "" {
			log.Warnln("HONEYCOMB_API_KEY env var not set")
		}
	} else {
		log.Debugln("honeycomb tracing disabled")
	}

	chOsInterrupt := make(chan os.Signal, 1)
	signal.Notify(chOsInterrupt, os.Interrupt, syscall.SIGTERM)

	ctx, cancel := context.WithCancel(context.Background())

	server, err := internal.NewServer(
		ctx,
		internal.NewServerParams{
			Config:                  cfg,
			IpInfoAPIKey:            ipInfoAPIKey,
			MobileAppSecret:         mobileAppSecret,
			MCPSecret:               mcpSecret,
			VersionInfo:             versionInfo,
			AdminUsername:           adminUsername,
			AdminPasswordHash:       adminPasswordHash,
			RedisPassword:           redisPassword,
			DBPassword:              dbPassword,
			HoneycombTracingEnabled: honeycombEnabled,
			SpotifyClientID:         spotifyClientID,
			SpotifyClientSecret:     spotifyClientSecret,
		},
	)
	if err != nil {
		log.Fatalf("new server: %s", err)
	}

	server.Serve(cfg.Host, cfg.Port)

	receivedSig := <-chOsInterrupt
	log.Warnf("signal [%s] received, shutting everything down ...", receivedSig)
	cancel()

	server.GracefulShutdown()
}

// tryGetLastCommitHash will try to get the last commit hash
// assumes that the built main executable is in project root
func tryGetLastCommitHash() (string, error) {
	cmd := exec.Command("/usr/bin/git", "rev-parse", "HEAD")
	stdout, err := cmd.Output()
	if err != nil {
		return "", err
	}
	return pkg.BytesToString(stdout), nil
}
