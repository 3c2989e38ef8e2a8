package app

import (
	"context"
	"errors"
	"testing"

	"go-erp/internal/payment"
	"go-erp/internal/payment/mock"
	"go-erp/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

func TestSystemContext(t *testing.T) {
	ctx := SystemContext(context.Background(), "svc-token")

	assert.Equal(t, "svc-token", contextutil.GetToken(ctx))
	assert.Equal(t, systemUserID, contextutil.GetUserID(ctx))
}

func TestRecoverOnce(t *testing.T) {
	ctrl := gomock.NewController(t)
	svc := mock.NewMockService(ctrl)

	t.Run("forwards the system session", func(t *testing.T) {
		svc.EXPECT().RecoverSagas(gomock.Any()).
			DoAndReturn(func(ctx context.Context) (payment.RecoveryReport, error) {
				assert.Equal(t, "svc-token", contextutil.GetToken(ctx))
				return payment.RecoveryReport{Scanned: 2, Completed: 1, Compensated: 1}, nil
			})

		report := recoverOnce(SystemContext(context.Background(), "svc-token"), svc, zap.NewNop())

		assert.Equal(t, 2, report.Scanned)
		assert.Equal(t, 1, report.Compensated)
	})

	t.Run("error is logged not raised", func(t *testing.T) {
		svc.EXPECT().RecoverSagas(gomock.Any()).Return(payment.RecoveryReport{}, errors.New("db down"))

		report := recoverOnce(context.Background(), svc, zap.NewNop())

		assert.Zero(t, report.Scanned)
	})
}
