package consumer

import (
	"context"
	"encoding/json"
	"fmt"

	"go-erp/internal/events"
	"go-erp/internal/shared/contextutil"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// CacheInvalidator drops a cached list so the next read goes to the ERP.
type CacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// PaymentMatchedHandler invalidates the caches that show contract status.
func PaymentMatchedHandler(logger *zap.Logger, caches ...CacheInvalidator) HandlerFunc {
	log := logger.Named("kafka.consumer.payment_matched")

	return func(ctx context.Context, msg kafkago.Message) error {
		var event events.PaymentMatchedEvent
		if err := json.Unmarshal(msg.Value, &event); err != nil {
			return fmt.Errorf("%w: decode payment_matched: %v", ErrDropMessage, err)
		}
		if event.ContractID == "" {
			return fmt.Errorf("%w: payment_matched without contract id", ErrDropMessage)
		}

		ctx = contextutil.WithRequestID(ctx, event.RequestID)
		for _, c := range caches {
			if err := c.Invalidate(ctx); err != nil {
				return err
			}
		}

		log.Info("contract caches invalidated",
			zap.String("request_id", event.RequestID),
			zap.String("contract_id", event.ContractID),
			zap.String("saga_id", event.SagaID),
			zap.String("to_status", event.ToStatus),
		)
		return nil
	}
}

func ConsumePaymentMatched(
	ctx context.Context,
	reader MessageReader,
	logger *zap.Logger,
	caches ...CacheInvalidator,
) {
	Run(ctx, reader, "payment_matched", PaymentMatchedHandler(logger, caches...), logger)
}
