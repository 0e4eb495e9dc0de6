package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jointwt/ghuser/types"
)

func newTestServer(t *testing.T) *httptest.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/users/octocat", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/vnd.github+json", r.Header.Get("Accept"))
		assert.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"login":"octocat","html_url":"https://github.com/octocat","bio":null,"id":1}`))
	})
	mux.HandleFunc("/users/octocat/followers", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"login":"b","html_url":"https://github.com/b"},{"login":"a","html_url":"https://github.com/a"}]`))
	})
	mux.HandleFunc("/users/octocat/repos", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{"name":"Hello-World","full_name":"octocat/Hello-World","owner":{"login":"octocat"},"stargazers_count":42}]`))
	})
	mux.HandleFunc("/users/broken/repos", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})
	mux.HandleFunc("/users/crash", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})
	mux.HandleFunc("/users/slow", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"login":"slow"}`))
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient(t *testing.T) {
	srv := newTestServer(t)

	cli, err := NewClient(WithURI(srv.URL), WithToken("secret"))
	require.NoError(t, err)

	ctx := context.Background()

	t.Run("Profile", func(t *testing.T) {
		p, err := cli.Profile(ctx, "octocat")
		require.NoError(t, err)
		assert.Equal(t, types.Profile{Login: "octocat", URL: "https://github.com/octocat"}, p)
	})

	t.Run("Followers", func(t *testing.T) {
		fs, err := cli.Followers(ctx, "octocat")
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "a"}, fs.Logins())
	})

	t.Run("Repositories", func(t *testing.T) {
		rs, err := cli.Repositories(ctx, "octocat")
		require.NoError(t, err)
		require.Len(t, rs, 1)
		assert.Equal(t, "octocat/Hello-World", rs[0].Path())
		assert.Equal(t, 42, rs[0].Stars)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := cli.Profile(ctx, "ghost")
		require.Error(t, err)

		var lerr *LookupError
		require.True(t, errors.As(err, &lerr))
		assert.Equal(t, "profile", lerr.Op)
		assert.Equal(t, "ghost", lerr.Login)
		assert.Equal(t, http.StatusNotFound, lerr.StatusCode)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("ServerError", func(t *testing.T) {
		_, err := cli.Profile(ctx, "crash")
		assert.True(t, errors.Is(err, ErrServerError))
		assert.True(t, errors.Is(err, &LookupError{}))
	})

	t.Run("DecodeError", func(t *testing.T) {
		_, err := cli.Repositories(ctx, "broken")
		require.Error(t, err)
		assert.True(t, errors.Is(err, &LookupError{}))
	})
}

func TestClient_Timeout(t *testing.T) {
	srv := newTestServer(t)

	cli, err := NewClient(WithURI(srv.URL), WithTimeout(50*time.Millisecond))
	require.NoError(t, err)

	_, err = cli.Profile(context.Background(), "slow")
	assert.Error(t, err)
	assert.True(t, errors.Is(err, &LookupError{}))
}

func TestClient_EscapesLogin(t *testing.T) {
	var (
		mu        sync.Mutex
		requested []string
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		requested = append(requested, r.RequestURI)
		mu.Unlock()
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	cli, err := NewClient(WithURI(srv.URL))
	require.NoError(t, err)

	ctx := context.Background()

	_, err = cli.Followers(ctx, "a b")
	require.NoError(t, err)
	_, err = cli.Repositories(ctx, "a/b?c")
	require.NoError(t, err)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{
		"/users/a%20b/followers",
		"/users/a%2Fb%3Fc/repos",
	}, requested)
}

type roundTripperFunc func(*http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func TestClient_HTTPClient(t *testing.T) {
	srv := newTestServer(t)

	var calls int32
	httpClient := &http.Client{
		Transport: roundTripperFunc(func(req *http.Request) (*http.Response, error) {
			atomic.AddInt32(&calls, 1)
			return http.DefaultTransport.RoundTrip(req)
		}),
	}

	cli, err := NewClient(WithURI(srv.URL), WithToken("secret"), WithHTTPClient(httpClient), WithTimeout(time.Second))
	require.NoError(t, err)

	p, err := cli.Profile(context.Background(), "octocat")
	require.NoError(t, err)
	assert.Equal(t, "octocat", p.Login)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	// The configured timeout applies to a copy
	assert.Zero(t, httpClient.Timeout)
}

func TestNormalizeURI(t *testing.T) {
	testCases := []struct {
		uri      string
		expected string
	}{
		{"https://api.github.com", "https://api.github.com/"},
		{"https://API.github.com:443/", "https://api.github.com/"},
		{"https://ghe.example.com/api/v3/", "https://ghe.example.com/api/v3/"},
	}

	for _, testCase := range testCases {
		actual, err := NormalizeURI(testCase.uri)
		assert.NoError(t, err)
		assert.Equal(t, testCase.expected, actual)
	}
}
