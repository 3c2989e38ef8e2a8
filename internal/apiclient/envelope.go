package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"go-erp/internal/shared/apperror"
	"go-erp/internal/shared/contextutil"

	"go.uber.org/zap"
)

// listKeys are probed in order when looking for a collection in a response.
var listKeys = []string{"data", "categories", "items", "rows", "results"}

const maxUnwrapDepth = 3

// GetOne fetches a single record, unwrapping {data: ...} and {data: {data: ...}}.
func GetOne[T any](ctx context.Context, c *Client, path string) (T, error) {
	return Send[T](ctx, c, http.MethodGet, path, nil)
}

// Send issues a write (or read) and decodes the unwrapped record.
func Send[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var out T
	raw, err := c.do(ctx, method, path, nil, body)
	if err != nil {
		return out, err
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(unwrapOne(raw), &out); err != nil {
		return out, apperror.Upstream(0, "", fmt.Errorf("decode %s %s: %w", method, path, err))
	}
	return out, nil
}

// GetList fetches a collection from any of the envelope shapes the API uses.
// A response without a recognizable list decodes to an empty slice.
func GetList[T any](ctx context.Context, c *Client, path string, query url.Values) ([]T, error) {
	raw, err := c.do(ctx, http.MethodGet, path, query, nil)
	if err != nil {
		return nil, err
	}

	list, ok := findList(raw, 0)
	if !ok {
		contextutil.GetLogger(ctx, c.logger).Warn("no list in upstream response, using empty list",
			zap.String("path", path),
		)
		return []T{}, nil
	}

	items := make([]T, 0)
	if err := json.Unmarshal(list, &items); err != nil {
		return nil, apperror.Upstream(0, "", fmt.Errorf("decode list %s: %w", path, err))
	}
	return items, nil
}

func unwrapOne(raw json.RawMessage) json.RawMessage {
	for depth := 0; depth < 2; depth++ {
		obj, ok := asObject(raw)
		if !ok {
			return raw
		}
		inner, ok := obj["data"]
		if !ok || isNull(inner) {
			return raw
		}
		raw = inner
	}
	return raw
}

func findList(raw json.RawMessage, depth int) (json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		return trimmed, true
	}
	if depth >= maxUnwrapDepth {
		return nil, false
	}
	obj, ok := asObject(trimmed)
	if !ok {
		return nil, false
	}
	for _, key := range listKeys {
		v, ok := obj[key]
		if !ok || isNull(v) {
			continue
		}
		if list, found := findList(v, depth+1); found {
			return list, true
		}
	}
	return nil, false
}

func asObject(raw json.RawMessage) (map[string]json.RawMessage, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, false
	}
	return obj, true
}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
