// Package sepay reads incoming bank transactions from the SePay feed.
package sepay

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go-erp/internal/shared/apperror"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const (
	DefaultBaseURL = "https://my.sepay.vn/userapi"
	DefaultLimit   = 100
	feedTimeLayout = "2006-01-02 15:04:05"
)

type Transaction struct {
	ID              string    `json:"id"`
	AccountNumber   string    `json:"account_number"`
	AmountIn        int64     `json:"amount_in"`
	Content         string    `json:"transaction_content"`
	ReferenceNumber string    `json:"reference_number"`
	TransactionDate time.Time `json:"transaction_date"`
}

type ListParams struct {
	AccountNumber string
	Limit         int
	Since         time.Time
}

// feedTransaction is the wire shape. Amounts arrive as decimal strings.
type feedTransaction struct {
	ID              json.Number `json:"id"`
	AccountNumber   string      `json:"account_number"`
	AmountIn        string      `json:"amount_in"`
	AmountOut       string      `json:"amount_out"`
	TransactionDate string      `json:"transaction_date"`
	Content         string      `json:"transaction_content"`
	ReferenceNumber string      `json:"reference_number"`
}

type feedResponse struct {
	Status       int               `json:"status"`
	Messages     json.RawMessage   `json:"messages"`
	Transactions []feedTransaction `json:"transactions"`
}

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewClient(baseURL, token string, timeout time.Duration, logger *zap.Logger) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("sepay"),
	}
}

// ListTransactions returns incoming transactions only (amount_in > 0).
func (c *Client) ListTransactions(ctx context.Context, p ListParams) ([]Transaction, error) {
	q := url.Values{}
	if p.AccountNumber != "" {
		q.Set("account_number", p.AccountNumber)
	}
	limit := p.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	q.Set("limit", strconv.Itoa(limit))
	if !p.Since.IsZero() {
		q.Set("transaction_date_min", p.Since.Format(feedTimeLayout))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/transactions/list?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build sepay request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		c.logger.Error("sepay request failed", zap.Error(err))
		return nil, apperror.Upstream(0, "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.Warn("sepay returned error",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("body", body),
		)
		// Feed credentials are ours, not the caller's: never surface 401/403 as the user's.
		return nil, apperror.Upstream(http.StatusBadGateway, "", fmt.Errorf("sepay status %d", resp.StatusCode))
	}

	var feed feedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, apperror.Upstream(0, "", fmt.Errorf("decode sepay feed: %w", err))
	}

	out := make([]Transaction, 0, len(feed.Transactions))
	for _, ft := range feed.Transactions {
		tx, ok, err := ft.toTransaction()
		if err != nil {
			c.logger.Warn("skipping malformed transaction",
				zap.String("id", ft.ID.String()),
				zap.Error(err),
			)
			continue
		}
		if ok {
			out = append(out, tx)
		}
	}
	return out, nil
}

// toTransaction reports ok=false for outgoing or zero-amount entries.
func (ft feedTransaction) toTransaction() (Transaction, bool, error) {
	amount := decimal.Zero
	if s := strings.TrimSpace(ft.AmountIn); s != "" {
		var err error
		amount, err = decimal.NewFromString(s)
		if err != nil {
			return Transaction{}, false, fmt.Errorf("amount_in: %w", err)
		}
	}
	if !amount.IsPositive() {
		return Transaction{}, false, nil
	}

	tx := Transaction{
		ID:              ft.ID.String(),
		AccountNumber:   ft.AccountNumber,
		AmountIn:        amount.Round(0).IntPart(),
		Content:         ft.Content,
		ReferenceNumber: ft.ReferenceNumber,
	}
	if ft.TransactionDate != "" {
		at, err := time.ParseInLocation(feedTimeLayout, ft.TransactionDate, time.Local)
		if err != nil {
			return Transaction{}, false, fmt.Errorf("transaction_date: %w", err)
		}
		tx.TransactionDate = at
	}
	return tx, true, nil
}

type detailResponse struct {
	Status      int             `json:"status"`
	Transaction feedTransaction `json:"transaction"`
}

// ErrTransactionNotFound is returned by GetTransaction for unknown ids and
// for outgoing transactions.
var ErrTransactionNotFound = errors.New("sepay transaction not found")

func (c *Client) GetTransaction(ctx context.Context, id string) (Transaction, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/transactions/details/"+url.PathEscape(id), nil)
	if err != nil {
		return Transaction{}, fmt.Errorf("build sepay request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Transaction{}, ctxErr
		}
		c.logger.Error("sepay request failed", zap.String("id", id), zap.Error(err))
		return Transaction{}, apperror.Upstream(0, "", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return Transaction{}, ErrTransactionNotFound
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Warn("sepay returned error", zap.String("id", id), zap.Int("status", resp.StatusCode))
		return Transaction{}, apperror.Upstream(http.StatusBadGateway, "", fmt.Errorf("sepay status %d", resp.StatusCode))
	}

	var body detailResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return Transaction{}, apperror.Upstream(0, "", fmt.Errorf("decode sepay transaction: %w", err))
	}

	tx, ok, err := body.Transaction.toTransaction()
	if err != nil {
		return Transaction{}, apperror.Upstream(0, "", err)
	}
	if !ok {
		return Transaction{}, ErrTransactionNotFound
	}
	return tx, nil
}
