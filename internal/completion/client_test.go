package completion

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/metalagman/ideagpt/internal/logging"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientComplete_SendsFormEncodedRequest(t *testing.T) {
	t.Parallel()

	var (
		gotMethod      string
		gotAuth        string
		gotContentType string
		gotForm        url.Values
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		gotContentType = r.Header.Get("Content-Type")

		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read request body: %v", err)
			return
		}
		gotForm, err = url.ParseQuery(string(body))
		if err != nil {
			t.Errorf("parse form body: %v", err)
			return
		}
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{Endpoint: srv.URL, APIKey: "test-api-key"}, srv.Client())
	require.NoError(t, err)

	prompt := "Give me a startup idea & make it \"weird\" = 100%"
	_, err = client.Complete(context.Background(), prompt)
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "Bearer test-api-key", gotAuth)
	assert.Equal(t, "application/x-www-form-urlencoded", gotContentType)
	assert.Equal(t, url.Values{
		"model":      {"gpt-4"},
		"prompt":     {prompt},
		"max_tokens": {"100"},
	}, gotForm)
}

func TestClientComplete_UsesConfiguredModelAndMaxTokens(t *testing.T) {
	t.Parallel()

	var gotForm url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse form: %v", err)
		}
		gotForm = r.PostForm
		_, _ = w.Write([]byte("ok"))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		Endpoint:  srv.URL,
		APIKey:    "k",
		Model:     "gpt-3.5-turbo-instruct",
		MaxTokens: 7,
	}, nil)
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "hi")
	require.NoError(t, err)
	assert.Equal(t, "gpt-3.5-turbo-instruct", gotForm.Get("model"))
	assert.Equal(t, "7", gotForm.Get("max_tokens"))
}

func TestClientComplete_ReturnsBodyVerbatim(t *testing.T) {
	t.Parallel()

	bodies := []string{
		"A subscription box for plants.",
		`{"id":"cmpl-1","choices":[{"text":"\n\nhello"}]}`,
		"  leading and trailing whitespace\n\n",
		"unicode: 日本語テスト",
	}
	for _, want := range bodies {
		t.Run(want, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write([]byte(want))
			}))
			t.Cleanup(srv.Close)

			client, err := NewClient(Config{Endpoint: srv.URL, APIKey: "k"}, srv.Client())
			require.NoError(t, err)

			got, err := client.Complete(context.Background(), "prompt")
			require.NoError(t, err)
			assert.Equal(t, want, got)
		})
	}
}

func TestClientComplete_AcceptsAnySuccessStatus(t *testing.T) {
	t.Parallel()

	for _, status := range []int{http.StatusOK, http.StatusCreated, http.StatusAccepted, 299} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte("body"))
		}))

		client, err := NewClient(Config{Endpoint: srv.URL, APIKey: "k"}, srv.Client())
		require.NoError(t, err)

		got, err := client.Complete(context.Background(), "p")
		srv.Close()
		require.NoError(t, err, "status %d", status)
		assert.Equal(t, "body", got)
	}
}

func TestClientComplete_ReturnsRequestErrorOnBadStatus(t *testing.T) {
	t.Parallel()

	for _, status := range []int{
		http.StatusMultipleChoices,
		http.StatusBadRequest,
		http.StatusUnauthorized,
		http.StatusTooManyRequests,
		http.StatusInternalServerError,
	} {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
			_, _ = w.Write([]byte(`{"error":{"message":"nope"}}`))
		}))

		client, err := NewClient(Config{Endpoint: srv.URL, APIKey: "k"}, srv.Client())
		require.NoError(t, err)

		got, err := client.Complete(context.Background(), "p")
		srv.Close()

		require.Error(t, err, "status %d", status)
		assert.Empty(t, got)

		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, status, reqErr.StatusCode)
		assert.Contains(t, err.Error(), "unexpected code")
		assert.Contains(t, err.Error(), http.StatusText(status))
		assert.Contains(t, err.Error(), "nope")
	}
}

func TestClientComplete_ReturnsRequestErrorOnEmptyBody(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{Endpoint: srv.URL, APIKey: "k"}, srv.Client())
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "p")
	require.Error(t, err)
	assert.True(t, IsRequestError(err))
	assert.ErrorIs(t, err, errEmptyBody)
}

func TestClientComplete_ReturnsRequestErrorOnTransportFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	endpoint := srv.URL
	srv.Close()

	client, err := NewClient(Config{Endpoint: endpoint, APIKey: "k"}, nil)
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "p")
	require.Error(t, err)
	assert.True(t, IsRequestError(err))
	assert.Equal(t, 1, strings.Count(err.Error(), endpoint), "error %q repeats the url", err.Error())
}

func TestClientComplete_ReturnsRequestErrorOnTimeout(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
		_, _ = w.Write([]byte("too late"))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{Endpoint: srv.URL, APIKey: "k", Timeout: 50 * time.Millisecond}, nil)
	require.NoError(t, err)

	started := time.Now()
	got, err := client.Complete(context.Background(), "p")
	require.Error(t, err)
	assert.Empty(t, got)
	assert.True(t, IsRequestError(err))
	assert.Less(t, time.Since(started), time.Second)
}

func TestClientComplete_ConcurrentCalls(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		_, _ = w.Write([]byte("echo:" + r.PostForm.Get("prompt")))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{Endpoint: srv.URL, APIKey: "k"}, srv.Client())
	require.NoError(t, err)

	const workers = 32
	results := make([]string, workers)
	errs := make([]error, workers)

	var wg sync.WaitGroup
	for i := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = client.Complete(context.Background(), fmt.Sprintf("prompt-%d", i))
		}()
	}
	wg.Wait()

	for i := range workers {
		require.NoError(t, errs[i])
		assert.Equal(t, fmt.Sprintf("echo:prompt-%d", i), results[i])
	}
}

func TestClientComplete_DoesNotLogCredentialOrPrompt(t *testing.T) {
	prevLogger, prevLevel := log.Logger, zerolog.GlobalLevel()
	t.Cleanup(func() {
		log.Logger = prevLogger
		zerolog.SetGlobalLevel(prevLevel)
	})

	var buf bytes.Buffer
	logging.InitWriter(true, &buf)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Fail") != "" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte("fine"))
	}))
	t.Cleanup(srv.Close)

	const secret = "sk-super-secret-credential"
	const prompt = "my very private startup idea"

	client, err := NewClient(Config{Endpoint: srv.URL, APIKey: secret}, srv.Client())
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), prompt)
	require.NoError(t, err)

	down, err := NewClient(Config{Endpoint: "http://127.0.0.1:1", APIKey: secret}, nil)
	require.NoError(t, err)
	_, err = down.Complete(context.Background(), prompt)
	require.Error(t, err)

	out := buf.String()
	assert.Contains(t, out, "completion response")
	assert.NotContains(t, out, secret)
	assert.NotContains(t, out, prompt)
}

func TestClientComplete_ReturnsRequestErrorOnCanceledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("late"))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{Endpoint: srv.URL, APIKey: "k"}, srv.Client())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = client.Complete(ctx, "p")
	require.Error(t, err)
	assert.True(t, IsRequestError(err))
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestClientComplete_RemainsUsableAfterFailure(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte("second time lucky"))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{Endpoint: srv.URL, APIKey: "k"}, srv.Client())
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "p")
	require.Error(t, err)

	got, err := client.Complete(context.Background(), "p")
	require.NoError(t, err)
	assert.Equal(t, "second time lucky", got)
	assert.Equal(t, int32(2), calls.Load(), "failed calls must not be retried")
}

func TestClientComplete_SendsEmptyPrompt(t *testing.T) {
	t.Parallel()

	var gotForm url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseForm()
		gotForm = r.PostForm
		_, _ = w.Write([]byte("x"))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{Endpoint: srv.URL}, srv.Client())
	require.NoError(t, err)

	_, err = client.Complete(context.Background(), "")
	require.NoError(t, err)
	assert.Contains(t, gotForm, "prompt")
	assert.Empty(t, gotForm.Get("prompt"))
}

func TestNewClient_AppliesDefaults(t *testing.T) {
	t.Parallel()

	client, err := NewClient(Config{APIKey: "k"}, nil)
	require.NoError(t, err)

	cfg := client.Config()
	assert.Equal(t, DefaultEndpoint, cfg.Endpoint)
	assert.Equal(t, DefaultModel, cfg.Model)
	assert.Equal(t, DefaultMaxTokens, cfg.MaxTokens)
}

func TestNewClient_RejectsRelativeEndpoint(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{Endpoint: "/v1/completions"}, nil)
	require.Error(t, err)
}

func TestNewClient_RejectsNegativeTimeout(t *testing.T) {
	t.Parallel()

	_, err := NewClient(Config{Timeout: -1}, nil)
	require.Error(t, err)
}
