package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-erp/internal/apiclient"
	"go-erp/internal/config"
	"go-erp/internal/messaging/kafka"
	"go-erp/internal/messaging/kafka/producer"
	"go-erp/internal/payment"
	"go-erp/internal/shared/connection"
	"go-erp/internal/shared/contextutil"

	"go.uber.org/zap"
)

// systemUserID tags saga writes made by the recovery loop instead of a user.
const systemUserID = "system"

// RunWorker relays outbox events to Kafka and, when a service token is
// configured, periodically drives stale payment sagas to a terminal state.
func RunWorker(cfg *config.AppConfig) error {
	logger := zap.L().Named("app.worker")

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		connectRetries,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := Migrate(gormDB, logger); err != nil {
		return err
	}

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, connectRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go producer.ProcessOutboxEvents(
		ctx,
		outboxRepo,
		kafkaWriter,
		logger,
		cfg.OutboxPollInterval,
	)

	if cfg.ERPServiceToken != "" {
		erpClient := apiclient.New(cfg.ERPBaseURL, cfg.ERPTimeout, logger)
		paymentService := newPaymentService(cfg, erpClient, sqlDB, gormDB, logger)
		go runSagaRecovery(ctx, paymentService, cfg.ERPServiceToken, cfg.SagaRecoveryInterval, logger)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("worker shutting down")
	cancel()

	return nil
}

// SystemContext carries the service token the ERP client forwards for calls
// not made on behalf of a user.
func SystemContext(ctx context.Context, token string) context.Context {
	return contextutil.WithSession(ctx, contextutil.Session{
		Token:  token,
		UserID: systemUserID,
		Role:   systemUserID,
	})
}

func runSagaRecovery(
	ctx context.Context,
	svc payment.Service,
	token string,
	interval time.Duration,
	logger *zap.Logger,
) {
	if interval <= 0 {
		interval = time.Minute
	}

	log := logger.Named("saga.recovery")
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("saga recovery started", zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			log.Info("saga recovery stopped")
			return
		case <-ticker.C:
			recoverOnce(SystemContext(ctx, token), svc, log)
		}
	}
}

func recoverOnce(ctx context.Context, svc payment.Service, log *zap.Logger) payment.RecoveryReport {
	report, err := svc.RecoverSagas(ctx)
	if err != nil {
		log.Error("saga recovery pass failed", zap.Error(err))
		return report
	}
	if report.Scanned > 0 {
		log.Info("saga recovery pass",
			zap.Int("scanned", report.Scanned),
			zap.Int("completed", report.Completed),
			zap.Int("compensated", report.Compensated),
			zap.Int("failed", report.Failed),
			zap.Int("errors", report.Errors),
		)
	}
	return report
}
