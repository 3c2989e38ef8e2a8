package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-erp/internal/apiclient"
	"go-erp/internal/catalog"
	"go-erp/internal/config"
	"go-erp/internal/events"
	"go-erp/internal/messaging/kafka/consumer"
	"go-erp/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer drops the cached contract and quote lists whenever a payment
// match changes a contract's status.
func RunConsumer(cfg *config.AppConfig) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.RedisAddr, connectRetries)
	if err != nil {
		return err
	}
	defer rdb.Close()

	erpClient := apiclient.New(cfg.ERPBaseURL, cfg.ERPTimeout, logger)
	caches := []consumer.CacheInvalidator{
		catalog.NewModule(catalog.ContractResource, erpClient, rdb, cfg.ListCacheTTL, logger),
		catalog.NewModule(catalog.QuoteResource, erpClient, rdb, cfg.ListCacheTTL, logger),
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.PaymentMatchedTopic,
		GroupID:        cfg.KafkaGroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumePaymentMatched(ctx, reader, logger, caches...)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
