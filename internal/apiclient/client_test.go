package apiclient_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"go-erp/internal/apiclient"
	"go-erp/internal/shared/apperror"
	"go-erp/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func newServer(t *testing.T, handler http.HandlerFunc) *apiclient.Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return apiclient.New(srv.URL, 5*time.Second, zap.NewNop())
}

func TestGetList_EnvelopeShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "bare array", body: `[{"id":"1"},{"id":"2"}]`, want: 2},
		{name: "data array", body: `{"data":[{"id":"1"}]}`, want: 1},
		{name: "nested data", body: `{"data":{"data":[{"id":"1"},{"id":"2"},{"id":"3"}]}}`, want: 3},
		{name: "categories key", body: `{"categories":[{"id":"1"}]}`, want: 1},
		{name: "items under data", body: `{"data":{"items":[{"id":"1"},{"id":"2"}],"total":2}}`, want: 2},
		{name: "rows key", body: `{"rows":[{"id":"1"}]}`, want: 1},
		{name: "results key", body: `{"results":[]}`, want: 0},
		{name: "unknown shape", body: `{"foo":{"bar":1}}`, want: 0},
		{name: "null data", body: `{"data":null}`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(tt.body))
			})

			items, err := apiclient.GetList[role](context.Background(), client, "/roles", nil)

			assert.NoError(t, err)
			assert.NotNil(t, items)
			assert.Len(t, items, tt.want)
		})
	}
}

func TestGetOne_Unwraps(t *testing.T) {
	for _, body := range []string{
		`{"id":"7","name":"Admin"}`,
		`{"data":{"id":"7","name":"Admin"}}`,
		`{"data":{"data":{"id":"7","name":"Admin"}}}`,
	} {
		client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(body))
		})

		got, err := apiclient.GetOne[role](context.Background(), client, apiclient.ItemPath("/roles", "7"))

		assert.NoError(t, err)
		assert.Equal(t, role{ID: "7", Name: "Admin"}, got)
	}
}

func TestDo_ForwardsSessionAndQuery(t *testing.T) {
	var gotAuth, gotRequestID, gotQuery string
	var gotBody map[string]string

	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		gotQuery = r.URL.RawQuery
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusNoContent)
	})

	ctx := contextutil.WithSession(context.Background(), contextutil.Session{Token: "tok-123", UserID: "u1"})
	ctx = contextutil.WithRequestID(ctx, "rid-1")

	err := client.Do(ctx, http.MethodPost, "/roles", url.Values{"page": {"2"}}, map[string]string{"name": "HR"}, nil)

	assert.NoError(t, err)
	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "rid-1", gotRequestID)
	assert.Equal(t, "page=2", gotQuery)
	assert.Equal(t, "HR", gotBody["name"])
}

func TestDo_UpstreamErrors(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{
			name:       "server message",
			status:     http.StatusBadRequest,
			body:       `{"message":"Tên đã tồn tại"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   apperror.CodeInvalidInput,
			wantMsg:    "Tên đã tồn tại",
		},
		{
			name:       "nested error message",
			status:     http.StatusConflict,
			body:       `{"error":{"message":"duplicate"}}`,
			wantStatus: http.StatusConflict,
			wantCode:   apperror.CodeConflict,
			wantMsg:    "duplicate",
		},
		{
			name:       "no message falls back",
			status:     http.StatusInternalServerError,
			body:       `oops`,
			wantStatus: http.StatusBadGateway,
			wantCode:   apperror.CodeUpstreamError,
			wantMsg:    apperror.FallbackMessage,
		},
		{
			name:       "not found",
			status:     http.StatusNotFound,
			body:       `{}`,
			wantStatus: http.StatusNotFound,
			wantCode:   apperror.CodeNotFound,
			wantMsg:    apperror.FallbackMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			_, err := apiclient.GetOne[role](context.Background(), client, "/roles/1")

			var appErr *apperror.AppError
			assert.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.wantStatus, appErr.HTTPStatus)
			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Equal(t, tt.wantMsg, appErr.Message)
		})
	}
}

func TestDo_ContextCancelled(t *testing.T) {
	release := make(chan struct{})
	client := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-release:
		}
	})
	defer close(release)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	_, err := apiclient.GetList[role](ctx, client, "/roles", nil)

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, http.StatusServiceUnavailable, apperror.ToHTTP(err).Status)
}

func TestIsNotFound(t *testing.T) {
	assert.True(t, apiclient.IsNotFound(apperror.Upstream(http.StatusNotFound, "", nil)))
	assert.False(t, apiclient.IsNotFound(apperror.Upstream(http.StatusBadGateway, "", nil)))
	assert.False(t, apiclient.IsNotFound(errors.New("x")))
}
