package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/Freeeeeet/availability_api/internal/auth"
	"github.com/Freeeeeet/availability_api/internal/cache"
	"github.com/Freeeeeet/availability_api/internal/config"
	"github.com/Freeeeeet/availability_api/internal/controller/httpapi"
	"github.com/Freeeeeet/availability_api/internal/notify"
	"github.com/Freeeeeet/availability_api/internal/repository"
	"github.com/Freeeeeet/availability_api/internal/service"
	"github.com/Freeeeeet/availability_api/migrations"
)

const (
	evictionInterval = time.Minute
	limiterIdle      = 10 * time.Minute
)

// Server собирает зависимости и обслуживает HTTP
type Server struct {
	cfg       *config.Config
	logger    *zap.Logger
	pool      *pgxpool.Pool
	redis     *redis.Client
	notifier  *notify.TelegramNotifier
	scheduler *Scheduler
	http      *http.Server
}

// NewServer подключается к хранилищам и собирает сервисы
func NewServer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Server, error) {
	pool, err := NewPool(ctx, cfg.GetDBDSN())
	if err != nil {
		return nil, err
	}

	s := &Server{cfg: cfg, logger: logger, pool: pool}

	if cfg.MigrationsOnStart {
		if err := s.migrate(ctx); err != nil {
			s.Close()
			return nil, err
		}
	}

	var availabilityCache service.AvailabilityCache
	if cfg.CacheEnabled() {
		client, err := cache.NewRedis(ctx, cache.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err != nil {
			s.Close()
			return nil, err
		}
		s.redis = client
		availabilityCache = cache.NewAvailabilityCache(client, cfg.CacheTTL, logger)
		logger.Info("Availability cache enabled", zap.String("addr", cfg.RedisAddr))
	}

	var notifier service.BookingNotifier
	if cfg.NotificationsEnabled() {
		b, err := notify.NewTelegramBot(cfg.TelegramToken)
		if err != nil {
			s.Close()
			return nil, err
		}
		s.notifier = notify.NewTelegramNotifier(b, cfg.TelegramChatID, cfg.Location(), logger)
		notifier = s.notifier
		logger.Info("Booking notifications enabled", zap.Int64("chat_id", cfg.TelegramChatID))
	}

	txManager := repository.NewPostgresTxManager(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	professionalRepo := repository.NewProfessionalRepository(pool)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret)

	sessionService := service.NewSessionService(txManager, sessionRepo, availabilityCache, cfg.Location(), logger)
	bookingService := service.NewBookingService(txManager, availabilityCache, notifier, logger)
	professionalService := service.NewProfessionalService(txManager, professionalRepo, tokens, logger)
	authService := service.NewAuthService(professionalRepo, tokens, logger)

	limiter := httpapi.NewRateLimiter(cfg.RateLimitPerMin)
	s.scheduler = NewScheduler(limiter, evictionInterval, limiterIdle, logger)

	router := httpapi.NewRouter(httpapi.Deps{
		Professionals: professionalService,
		Sessions:      sessionService,
		Booking:       bookingService,
		Auth:          authService,
		RateLimiter:   limiter,
		Location:      cfg.Location(),
		Logger:        logger,
	})

	s.http = &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

func (s *Server) migrate(ctx context.Context) error {
	migrator, err := NewMigrator(s.pool, migrations.FS, s.logger)
	if err != nil {
		return err
	}
	defer migrator.Close()

	return migrator.Run(ctx)
}

// Run обслуживает запросы до отмены ctx, затем корректно останавливается
func (s *Server) Run(ctx context.Context, shutdownTimeout time.Duration) error {
	s.scheduler.Start(ctx)
	defer s.scheduler.Stop()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("HTTP server listening", zap.String("addr", s.cfg.HTTPAddr))
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down HTTP server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := s.http.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}

// Close освобождает соединения
func (s *Server) Close() {
	if s.notifier != nil {
		s.notifier.Wait()
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Warn("Failed to close redis", zap.Error(err))
		}
	}
	if s.pool != nil {
		s.pool.Close()
	}
}
