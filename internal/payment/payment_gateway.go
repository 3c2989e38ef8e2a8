package payment

import (
	"context"
	"net/http"

	"go-erp/internal/apiclient"
	"go-erp/internal/sepay"
)

const (
	contractsPath = "/contracts"
	matchesPath   = "/transaction-matches"
)

// ERPGateway is the part of the ERP API the matcher writes to.
//
//go:generate mockgen -source=payment_gateway.go -destination=mock/payment_gateway_mock.go -package=mock
type ERPGateway interface {
	GetContract(ctx context.Context, id string) (Contract, error)
	UpdateContractStatus(ctx context.Context, id, status string) error
	ListMatches(ctx context.Context) ([]TransactionMatch, error)
	CreateMatch(ctx context.Context, m TransactionMatch) (TransactionMatch, error)
	DeleteMatch(ctx context.Context, id string) error
}

// TransactionFeed reads incoming bank transactions.
type TransactionFeed interface {
	ListTransactions(ctx context.Context, p sepay.ListParams) ([]sepay.Transaction, error)
	GetTransaction(ctx context.Context, id string) (sepay.Transaction, error)
}

type erpGateway struct {
	client *apiclient.Client
}

func NewERPGateway(client *apiclient.Client) ERPGateway {
	return &erpGateway{client: client}
}

func (g *erpGateway) GetContract(ctx context.Context, id string) (Contract, error) {
	return apiclient.GetOne[Contract](ctx, g.client, apiclient.ItemPath(contractsPath, id))
}

func (g *erpGateway) UpdateContractStatus(ctx context.Context, id, status string) error {
	path := apiclient.ItemPath(contractsPath, id) + "/status"
	return g.client.Do(ctx, http.MethodPut, path, nil, map[string]string{"status": status}, nil)
}

func (g *erpGateway) ListMatches(ctx context.Context) ([]TransactionMatch, error) {
	return apiclient.GetList[TransactionMatch](ctx, g.client, matchesPath, nil)
}

func (g *erpGateway) CreateMatch(ctx context.Context, m TransactionMatch) (TransactionMatch, error) {
	return apiclient.Send[TransactionMatch](ctx, g.client, http.MethodPost, matchesPath, m)
}

func (g *erpGateway) DeleteMatch(ctx context.Context, id string) error {
	return g.client.Do(ctx, http.MethodDelete, apiclient.ItemPath(matchesPath, id), nil, nil, nil)
}
