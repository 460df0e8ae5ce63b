package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/example/lifescan/internal/config"
	"github.com/example/lifescan/internal/handlers"
	"github.com/example/lifescan/internal/insight"
	"github.com/example/lifescan/internal/logging"
	"github.com/example/lifescan/internal/upload"
	"github.com/example/lifescan/internal/usecase"
	"github.com/example/lifescan/internal/vision"
)

func main() {
	logger, err := logging.NewLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync() //nolint:errcheck

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	store, err := upload.NewStore(cfg.UploadFolder)
	if err != nil {
		logger.Fatal("failed to prepare upload dir", zap.Error(err))
	}

	var cache usecase.Cache
	if cfg.RedisAddr != "" {
		redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
		cache = usecase.NewRedisCache(initRedis(redisCtx, cfg.RedisAddr, logger))
		redisCancel()
	}

	extractor := buildExtractor(cfg, logger)
	narrator := buildNarrator(cfg, logger)
	uc := usecase.NewScanUseCase(store, cache, cfg.CacheTTL, extractor, narrator, logger)

	r := gin.Default()
	r.MaxMultipartMemory = cfg.MaxContentLength
	r.Use(handlers.BodyLimit(cfg.MaxContentLength))
	r.Use(cors.New(corsConfig(cfg)))

	handlers.RegisterRoutes(r, uc, cfg.FrontendDir, logger)

	server := &http.Server{
		Addr:    cfg.Addr(),
		Handler: r,
	}

	logger.Info("LifeScan API listening", zap.String("addr", cfg.Addr()))
	if err := serveHTTPServer(server, 15*time.Second, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

// buildExtractor selects the vision backend once at startup. Missing
// credentials select the deterministic mock, never a startup failure.
func buildExtractor(cfg config.Config, logger *zap.Logger) vision.Extractor {
	if cfg.VisionConfigured() {
		logger.Info("using Azure Vision backend", zap.String("endpoint", cfg.AzureVisionEndpoint))
		return vision.NewAzureClient(cfg.AzureVisionEndpoint, cfg.AzureVisionKey)
	}
	logger.Info("no vision credentials; using mock extractor")
	return vision.NewMock()
}

func buildNarrator(cfg config.Config, logger *zap.Logger) insight.Narrator {
	if cfg.NarrationConfigured() {
		logger.Info("using OpenAI narration backend")
		return insight.NewOpenAIClient(cfg.OpenAIAPIKey)
	}
	logger.Info("no narration credentials; using canned narrator")
	return insight.NewMock()
}

func corsConfig(cfg config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	origins := cfg.Origins()
	if len(origins) == 1 && origins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
		corsCfg.AllowCredentials = true
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	return corsCfg
}

func initRedis(ctx context.Context, addr string, zapLogger *zap.Logger) *redis.Client {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		// A configured-but-unreachable cache is a deployment error, not
		// a fallback condition.
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	return client
}

func serveHTTPServer(server *http.Server, shutdownTimeout time.Duration, logger *zap.Logger) error {
	return serveHTTPServerWithOptions(server, shutdownTimeout, logger, nil, nil)
}

func serveHTTPServerWithOptions(server *http.Server, shutdownTimeout time.Duration, logger *zap.Logger, listener net.Listener, signalCh <-chan os.Signal) error {
	errCh := make(chan error, 1)
	go func() {
		var err error
		if listener != nil {
			err = server.Serve(listener)
		} else {
			err = server.ListenAndServe()
		}
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		errCh <- err
	}()

	var (
		sigCh       <-chan os.Signal
		stopSignals func()
	)

	if signalCh != nil {
		sigCh = signalCh
		stopSignals = func() {}
	} else {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, os.Interrupt, syscall.SIGTERM)
		sigCh = ch
		stopSignals = func() {
			signal.Stop(ch)
		}
	}
	defer stopSignals()

	select {
	case err := <-errCh:
		return err
	case sig, ok := <-sigCh:
		if !ok {
			return <-errCh
		}
		logger.Info("received shutdown signal", zap.String("signal", sig.String()))
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return <-errCh
	}
}
