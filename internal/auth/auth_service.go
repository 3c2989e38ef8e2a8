package auth

import (
	"context"
	"net/http"

	"go-erp/internal/apiclient"
	autherrors "go-erp/internal/auth/errors"
	"go-erp/internal/shared/contextutil"

	"go.uber.org/zap"
)

//go:generate mockgen -source=auth_service.go -destination=mock/auth_service_mock.go -package=mock
type Service interface {
	Me(ctx context.Context) (MeResponse, error)
	ChangePassword(ctx context.Context, req ChangePasswordRequest) error
}

type service struct {
	client *apiclient.Client
	logger *zap.Logger
}

func NewService(client *apiclient.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("auth.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.service")
	}
	return &service{client: client, logger: l}
}

// Me returns the ERP profile. Fields the ERP leaves empty are filled from
// the token so the header always has something to show.
func (s *service) Me(ctx context.Context) (MeResponse, error) {
	me, err := apiclient.GetOne[MeResponse](ctx, s.client, "/auth/me")
	if err != nil {
		return MeResponse{}, err
	}

	if session, ok := contextutil.GetSession(ctx); ok {
		if me.ID == "" {
			me.ID = session.UserID
		}
		if me.Name == "" {
			me.Name = session.Name
		}
		if me.Email == "" {
			me.Email = session.Email
		}
		if me.Role == "" {
			me.Role = session.Role
		}
	}
	return me, nil
}

func (s *service) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	if req.NewPassword == req.CurrentPassword {
		return autherrors.ErrSamePassword
	}

	err := s.client.Do(ctx, http.MethodPost, "/auth/change-password", nil, changePasswordPayload{
		CurrentPassword: req.CurrentPassword,
		NewPassword:     req.NewPassword,
	}, nil)
	if err != nil {
		contextutil.GetLogger(ctx, s.logger).Warn("change password rejected", zap.Error(err))
		return err
	}

	contextutil.GetLogger(ctx, s.logger).Info("password changed", zap.String("user_id", contextutil.GetUserID(ctx)))
	return nil
}
