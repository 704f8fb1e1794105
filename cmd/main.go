package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	httpctx "github.com/dtroode/cardkeeper-server/internal/api/http/context"
	"github.com/dtroode/cardkeeper-server/internal/api/http/router"
	httpServer "github.com/dtroode/cardkeeper-server/internal/api/http/server"
	"github.com/dtroode/cardkeeper-server/internal/config"
	"github.com/dtroode/cardkeeper-server/internal/logger"
	"github.com/dtroode/cardkeeper-server/internal/model"
	"github.com/dtroode/cardkeeper-server/internal/repository/mongodb"
	"github.com/dtroode/cardkeeper-server/internal/repository/postgres"
	"github.com/dtroode/cardkeeper-server/internal/server"
	"github.com/dtroode/cardkeeper-server/internal/service"
	storage "github.com/dtroode/cardkeeper-server/internal/storage/minio"
	"github.com/dtroode/cardkeeper-server/internal/telemetry"
	"github.com/dtroode/cardkeeper-server/internal/token"
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

const introspectTimeout = 5 * time.Second

type repositories struct {
	cards    model.CardStore
	contacts model.ContactStore
	close    func()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel, cfg.LogFormat)
	if cfg.Auth.UsesDevJWTSecret() {
		logger.Warn("AUTH_JWT_SECRET is not set, tokens are verified with the development secret")
	}

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry, buildVersion)
	if err != nil {
		logger.Fatal("failed to initialize tracing", "error", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("failed to flush traces", "error", err)
		}
	}()

	repos, err := openRepositories(ctx, cfg.Database, logger)
	if err != nil {
		logger.Fatal("failed to initialize storage", "error", err, "driver", cfg.Database.Driver)
	}
	defer repos.close()

	minioClient, err := minio.New(cfg.Storage.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.Storage.AccessKey, cfg.Storage.SecretKey, ""),
		Secure: cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to create minio client", "error", err)
	}
	storageClient, err := storage.NewClient(ctx, minioClient, storage.Options{
		Bucket:     cfg.Storage.Bucket,
		PublicHost: cfg.Storage.PublicHost,
		UseSSL:     cfg.Storage.UseSSL,
	})
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	cardService := service.NewCard(repos.cards, storageClient, logger)
	contactService := service.NewContact(repos.contacts, repos.cards, logger)
	imageService := service.NewImage(repos.cards, storageClient, logger)

	r := router.New("Cardkeeper API", buildVersion,
		router.Services{Card: cardService, Contact: contactService, Image: imageService},
		newVerifier(cfg.Auth),
		httpctx.NewManager(),
		repos.cards,
		metrics.WriteProcessMetrics,
		logger,
	)
	srv := httpServer.NewHTTPServer(r.Register(), fmt.Sprintf(":%s", cfg.HTTP.Port), cfg.HTTP.ReadHeaderTimeout)
	sl := server.NewSecurityLayer(cfg.HTTP)

	var wg sync.WaitGroup
	wg.Add(1)
	go func(s model.Server) {
		defer wg.Done()
		logger.Info("Starting server on", "address", s.Address(), "https", cfg.HTTP.EnableHTTPS)
		if err := s.Start(sl); err != nil {
			logger.Error("failed to start server", "error", err)
			stop()
		}
	}(srv)

	logAppVersion()

	<-ctx.Done()
	logger.Info("received interruption signal, shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Stop(shutdownCtx); err != nil {
		logger.Error("error during server shutdown", "error", err, "address", srv.Address())
	}

	wg.Wait()
	logger.Info("shutdown complete")
}

func openRepositories(ctx context.Context, cfg config.Database, logger *logger.Logger) (repositories, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		conn, err := mongodb.NewConnection(ctx, cfg.DSN, cfg.Name)
		if err != nil {
			return repositories{}, err
		}
		return repositories{
			cards:    mongodb.NewCardRepository(conn),
			contacts: mongodb.NewContactRepository(conn),
			close: func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := conn.Close(closeCtx); err != nil {
					logger.Error("failed to close mongodb connection", "error", err)
				}
			},
		}, nil
	default:
		conn, err := postgres.NewConnection(ctx, cfg.DSN)
		if err != nil {
			return repositories{}, err
		}
		return repositories{
			cards:    postgres.NewCardRepository(conn),
			contacts: postgres.NewContactRepository(conn),
			close: func() {
				if err := conn.Close(); err != nil {
					logger.Error("failed to close postgres connection", "error", err)
				}
			},
		}, nil
	}
}

func newVerifier(cfg config.Auth) model.IdentityVerifier {
	if cfg.Mode == config.AuthModeIntrospect {
		return token.NewIntrospector(cfg.IntrospectURL, cfg.IntrospectSecret, &http.Client{Timeout: introspectTimeout})
	}
	return token.NewJWT(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
