package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/sangkips/xylem-api/internal/application/service"
	"github.com/sangkips/xylem-api/internal/config"
	domainRepo "github.com/sangkips/xylem-api/internal/domain/repository"
	"github.com/sangkips/xylem-api/internal/infrastructure/database"
	"github.com/sangkips/xylem-api/internal/infrastructure/repository"
	"github.com/sangkips/xylem-api/internal/presentation/http/handler"
	"github.com/sangkips/xylem-api/internal/presentation/http/middleware"
	"github.com/sangkips/xylem-api/internal/presentation/http/routes"
	"github.com/sangkips/xylem-api/pkg/districts"
	"github.com/sangkips/xylem-api/pkg/email"
	"github.com/sangkips/xylem-api/pkg/logger"
	"github.com/sangkips/xylem-api/pkg/metrics"
	"github.com/sangkips/xylem-api/pkg/notify"
	"github.com/sangkips/xylem-api/pkg/sms"
	"github.com/sangkips/xylem-api/pkg/storage"
	"github.com/sangkips/xylem-api/pkg/utils"
)

const (
	shutdownTimeout        = 30 * time.Second
	idempotencySweepPeriod = time.Hour
)

func serve(parent context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.App.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	if cfg.Admin.Username != "" {
		if _, err := database.EnsureAdmin(db, cfg.Admin); err != nil {
			log.Warn().Err(err).Msg("seed admin")
		}
	}

	catalog, err := districts.Load(cfg.Districts.File)
	if err != nil {
		return err
	}

	m := metrics.New()

	var awsCfg aws.Config
	if needsAWS(cfg) {
		awsCfg, err = awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWS.Region))
		if err != nil {
			return fmt.Errorf("load aws config: %w", err)
		}
	}

	dispatcher, err := newDispatcher(ctx, cfg, awsCfg, m)
	if err != nil {
		return err
	}
	dispatcher.Start(context.WithoutCancel(ctx))

	uploader, err := newUploader(cfg, awsCfg)
	if err != nil {
		return err
	}

	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours, cfg.JWT.RefreshExpiryHours)

	userRepo := repository.NewUserRepository(db)
	repRepo := repository.NewMarketingRepRepository(db)
	distributorRepo := repository.NewDistributorRepository(db)
	fabricatorRepo := repository.NewFabricatorRepository(db)
	reportRepo := repository.NewReportRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	txManager := repository.NewTxManager(db)

	authService := service.NewAuthService(userRepo, jwtManager)
	workflowService := service.NewWorkflowService(fabricatorRepo, distributorRepo, repRepo, dispatcher)
	fabricatorService := service.NewFabricatorService(fabricatorRepo, distributorRepo, repRepo, txManager, catalog, dispatcher)
	repService := service.NewMarketingRepService(repRepo, userRepo, txManager, catalog, dispatcher)
	distributorService := service.NewDistributorService(distributorRepo, repRepo, catalog)
	reportService := service.NewReportService(reportRepo, fabricatorRepo, distributorRepo, activityRepo, userRepo, txManager, dispatcher, cfg.Email.AdminRecipients)
	taskService := service.NewTaskService(taskRepo, repRepo, activityRepo, dispatcher)
	dashboardService := service.NewDashboardService(analyticsRepo, fabricatorRepo, distributorRepo, repRepo, reportRepo, activityRepo)
	uploadService := service.NewUploadService(uploader, storage.Policy{
		MaxSize:           cfg.Storage.MaxUploadSize,
		CompressThreshold: cfg.Storage.CompressThreshold,
	})

	handlers := &routes.Handlers{
		Auth:         handler.NewAuthHandler(authService),
		Fabricator:   handler.NewFabricatorHandler(fabricatorService, workflowService),
		MarketingRep: handler.NewMarketingRepHandler(repService, workflowService),
		Distributor:  handler.NewDistributorHandler(distributorService),
		Report:       handler.NewReportHandler(reportService, fabricatorService, distributorService),
		Task:         handler.NewTaskHandler(taskService),
		Dashboard:    handler.NewDashboardHandler(dashboardService),
		Districts:    handler.NewDistrictsHandler(catalog),
		Upload:       handler.NewUploadHandler(uploadService),
	}

	limiter := middleware.NewRateLimiter(middleware.ConfigFromWindow(cfg.RateLimit.Requests, cfg.RateLimit.Duration))
	defer limiter.Stop()

	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
		RepResolver:     repService,
		Metrics:         m,
		RateLimiter:     limiter,
	})

	go sweepIdempotencyKeys(ctx, idempotencyRepo)

	srv := &http.Server{
		Addr:              ":" + cfg.App.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.App.Port).Str("env", cfg.App.Env).Msgf("starting %s", cfg.App.Name)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return err
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown")
	}
	if err := dispatcher.Close(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("notification dispatcher shutdown")
	}
	return nil
}

func needsAWS(cfg *config.Config) bool {
	return cfg.Email.Provider == "ses" || cfg.SMS.Provider == "sns" || cfg.Storage.Provider == "s3"
}

func newDispatcher(ctx context.Context, cfg *config.Config, awsCfg aws.Config, m *metrics.Metrics) (*notify.Dispatcher, error) {
	emailTmpl, err := email.NewRenderer()
	if err != nil {
		return nil, err
	}
	smsTmpl, err := sms.NewRenderer()
	if err != nil {
		return nil, err
	}

	var emailSender email.Sender
	switch cfg.Email.Provider {
	case "smtp":
		emailSender = email.NewSMTPSender(email.EmailConfig{
			SMTPHost:     cfg.Email.SMTPHost,
			SMTPPort:     cfg.Email.SMTPPort,
			SMTPUsername: cfg.Email.SMTPUsername,
			SMTPPassword: cfg.Email.SMTPPassword,
			FromName:     cfg.Email.FromName,
			FromEmail:    cfg.Email.FromEmail,
		})
	case "ses":
		emailSender = email.NewSESSender(awsCfg, cfg.Email.FromName, cfg.Email.FromEmail)
	case "log", "":
		emailSender = email.LogSender{Logger: logger.ForPackage("email")}
	default:
		return nil, fmt.Errorf("unknown EMAIL_PROVIDER %q", cfg.Email.Provider)
	}

	var smsSender sms.Sender
	switch cfg.SMS.Provider {
	case "cloudsms":
		smsSender = sms.NewCloudSMSClient(cfg.SMS.CloudSMSURL, cfg.SMS.CloudSMSAPIKey)
	case "bulksms":
		smsSender = sms.NewBulkSMSClient(cfg.SMS.BulkSMSURL, cfg.SMS.BulkSMSAPIKey, cfg.SMS.BulkSMSSenderID)
	case "sns":
		smsSender = sms.NewSNSSender(awsCfg)
	case "log", "":
		smsSender = sms.LogSender{Logger: logger.ForPackage("sms")}
	default:
		return nil, fmt.Errorf("unknown SMS_PROVIDER %q", cfg.SMS.Provider)
	}

	var queue notify.Queue
	switch cfg.Notify.Queue {
	case "redis":
		rdb, err := notify.NewRedisClient(ctx, cfg.Notify.RedisURL)
		if err != nil {
			return nil, err
		}
		queue = notify.NewRedisQueue(rdb, cfg.Notify.RedisKey)
	case "memory", "":
		queue = notify.NewMemoryQueue(cfg.Notify.Buffer)
	default:
		return nil, fmt.Errorf("unknown NOTIFY_QUEUE %q", cfg.Notify.Queue)
	}

	return notify.NewDispatcher(queue, cfg.Notify.Workers, notify.Deps{
		Email:     emailSender,
		EmailTmpl: emailTmpl,
		SMS:       smsSender,
		SMSTmpl:   smsTmpl,
		Metrics:   m,
		Logger:    logger.ForPackage("notify"),
	}), nil
}

func newUploader(cfg *config.Config, awsCfg aws.Config) (storage.Uploader, error) {
	switch cfg.Storage.Provider {
	case "s3":
		return storage.NewS3Uploader(awsCfg, cfg.Storage.S3Bucket, cfg.Storage.S3Prefix), nil
	case "transfer", "":
		return storage.NewTransferUploader(cfg.Storage.TransferURL, cfg.Storage.TransferAPIKey, cfg.Storage.TransferPath), nil
	}
	return nil, fmt.Errorf("unknown STORAGE_PROVIDER %q", cfg.Storage.Provider)
}

func sweepIdempotencyKeys(ctx context.Context, repo domainRepo.IdempotencyRepository) {
	ticker := time.NewTicker(idempotencySweepPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := repo.DeleteExpired(ctx, time.Now())
			if err != nil {
				log.Warn().Err(err).Msg("sweep idempotency keys")
				continue
			}
			if n > 0 {
				log.Debug().Int64("deleted", n).Msg("swept expired idempotency keys")
			}
		}
	}
}
