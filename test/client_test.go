//go:build integration_test || all_tests

package test

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/2beens/eridanus/internal/auth"

	"github.com/stretchr/testify/require"
)

// noRedirectClient returns redirects as they are, so their Location can be checked.
var noRedirectClient = &http.Client{
	CheckRedirect: func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	},
}

type response struct {
	status int
	header http.Header
	body   string
}

func doRequest(ctx context.Context, t *testing.T, method, path, email string, form url.Values) response {
	t.Helper()

	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req, err := http.NewRequestWithContext(ctx, method, serverEndpoint+path, body)
	require.NoError(t, err)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if email != "" {
		req.Header.Set(auth.IAPEmailHeader, "accounts.google.com:"+email)
	}

	resp, err := noRedirectClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return response{
		status: resp.StatusCode,
		header: resp.Header,
		body:   string(respBytes),
	}
}

func (s *IntegrationTestSuite) get(path string) response {
	return doRequest(context.Background(), s.T(), http.MethodGet, path, testUserEmail, nil)
}

func (s *IntegrationTestSuite) post(path string, form url.Values) response {
	if form == nil {
		form = url.Values{}
	}
	return doRequest(context.Background(), s.T(), http.MethodPost, path, testUserEmail, form)
}
