package tests

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httputil"
	"strings"
	"testing"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

// APIClient обменивается JSON с тестовым сервером. Успешный ответ
// декодируется в dest, ошибка в errDest, любой из них может быть nil.
// Обмен пишется в лог теста и виден при падении или с -v.
type APIClient struct {
	tb         testing.TB
	baseURL    string
	httpClient *http.Client
}

func NewAPIClient(tb testing.TB, baseURL string, httpClient *http.Client) APIClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return APIClient{
		tb:         tb,
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		httpClient: httpClient,
	}
}

func (a APIClient) Get(ctx context.Context, endpoint string, dest, errDest any) (*http.Response, error) {
	return a.do(ctx, http.MethodGet, endpoint, http.NoBody, dest, errDest)
}

// Post сериализует request и отправляет его телом запроса.
func (a APIClient) Post(ctx context.Context, endpoint string, request, dest, errDest any) (*http.Response, error) {
	body, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return a.do(ctx, http.MethodPost, endpoint, bytes.NewReader(body), dest, errDest)
}

// PostJSON отправляет body как есть, в том числе некорректный JSON.
func (a APIClient) PostJSON(ctx context.Context, endpoint, body string, dest, errDest any) (*http.Response, error) {
	return a.do(ctx, http.MethodPost, endpoint, strings.NewReader(body), dest, errDest)
}

func (a APIClient) do(
	ctx context.Context,
	method string,
	endpoint string,
	body io.Reader,
	dest any,
	errDest any,
) (*http.Response, error) {
	a.tb.Helper()

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	if method != http.MethodGet {
		req.Header.Set("Content-Type", "application/json")
	}

	a.tb.Logf("request: %s %s", method, req.URL)

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpClient.Do: %w", err)
	}

	defer resp.Body.Close()

	if dump, err := httputil.DumpResponse(resp, true); err == nil {
		a.tb.Logf("response: %s", dump)
	}

	target := dest
	if resp.StatusCode >= http.StatusMultipleChoices {
		target = errDest
	}

	if target == nil {
		return resp, nil
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("json.Decode: %w", err)
	}

	return resp, nil
}
