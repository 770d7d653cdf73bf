package suggest_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/voyage/internal/infrastructure/suggest"
	"github.com/bnema/voyage/internal/logging"
)

func testCtx() context.Context {
	return logging.WithContext(context.Background(), logging.NewFromConfigValues("debug", "console"))
}

func TestParseResponse(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    []string
		wantErr bool
	}{
		{name: "two elements", body: `["go",["golang","go modules"]]`, want: []string{"golang", "go modules"}},
		{name: "extra elements ignored", body: `["go",["golang"],["desc"],["https://x"]]`, want: []string{"golang"}},
		{name: "non strings skipped", body: `["go",["golang",1,null,""]]`, want: []string{"golang"}},
		{name: "empty list", body: `["go",[]]`, want: []string{}},
		{name: "object body", body: `{"q":"go"}`, wantErr: true},
		{name: "single element", body: `["go"]`, wantErr: true},
		{name: "second element not a list", body: `["go","golang"]`, wantErr: true},
		{name: "garbage", body: `<html>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := suggest.ParseResponse([]byte(tt.body))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClient_Suggest(t *testing.T) {
	var gotQuery atomic.Value
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		gotQuery.Store(r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/x-suggestions+json")
		_, _ = w.Write([]byte(`["go mod",["go mod tidy","go mod vendor"]]`))
	}))
	t.Cleanup(srv.Close)

	client := suggest.NewClient(suggest.Options{Endpoint: srv.URL + "/ac?q=%s"})

	got, err := client.Suggest(testCtx(), " go mod ")
	require.NoError(t, err)
	assert.Equal(t, []string{"go mod tidy", "go mod vendor"}, got)
	assert.Equal(t, " go mod ", gotQuery.Load(), "query is sent untrimmed")

	_, err = client.Suggest(testCtx(), " go mod ")
	require.NoError(t, err)
	assert.Equal(t, int32(1), hits.Load(), "second lookup is served from cache")
}

func TestClient_Failures(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{name: "server error", handler: func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}},
		{name: "malformed body", handler: func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"not":"a list"}`))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(tt.handler)
			t.Cleanup(srv.Close)

			client := suggest.NewClient(suggest.Options{Endpoint: srv.URL + "/?q=%s"})
			got, err := client.Suggest(testCtx(), "go")
			assert.Error(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestClient_FailuresAreNotCached(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`["go",["golang"]]`))
	}))
	t.Cleanup(srv.Close)

	client := suggest.NewClient(suggest.Options{Endpoint: srv.URL + "/?q=%s"})

	_, err := client.Suggest(testCtx(), "go")
	require.Error(t, err)

	got, err := client.Suggest(testCtx(), "go")
	require.NoError(t, err)
	assert.Equal(t, []string{"golang"}, got)
}

func TestClient_DisabledEndpoint(t *testing.T) {
	client := suggest.NewClient(suggest.Options{})

	got, err := client.Suggest(testCtx(), "go")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestClient_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	t.Cleanup(srv.Close)

	client := suggest.NewClient(suggest.Options{Endpoint: srv.URL + "/?q=%s", Timeout: 5 * time.Second})

	ctx, cancel := context.WithCancel(testCtx())
	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	start := time.Now()
	_, err := client.Suggest(ctx, "go")
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)
}

func TestClient_Configure(t *testing.T) {
	first := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`["go",["from first"]]`))
	}))
	t.Cleanup(first.Close)
	second := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`["go",["from second"]]`))
	}))
	t.Cleanup(second.Close)

	client := suggest.NewClient(suggest.Options{Endpoint: first.URL + "/?q=%s"})
	got, err := client.Suggest(testCtx(), "go")
	require.NoError(t, err)
	assert.Equal(t, []string{"from first"}, got)

	client.Configure(suggest.Options{Endpoint: second.URL + "/?q=%s", RatePerSecond: 10})
	got, err = client.Suggest(testCtx(), "go")
	require.NoError(t, err)
	assert.Equal(t, []string{"from second"}, got)
}

func TestClient_ConfigureWhileQuerying(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["q",["` + r.URL.Query().Get("q") + ` docs"]]`))
	}))
	t.Cleanup(srv.Close)

	endpoint := srv.URL + "/?q=%s"
	client := suggest.NewClient(suggest.Options{Endpoint: endpoint})

	var wg sync.WaitGroup
	for i := range 20 {
		wg.Add(2)
		go func() {
			defer wg.Done()
			got, err := client.Suggest(testCtx(), fmt.Sprintf("term%d", i))
			if assert.NoError(t, err) {
				assert.Equal(t, []string{fmt.Sprintf("term%d docs", i)}, got)
			}
		}()
		go func() {
			defer wg.Done()
			client.Configure(suggest.Options{
				Endpoint: endpoint,
				Timeout:  time.Second + time.Duration(i)*time.Millisecond,
			})
		}()
	}
	wg.Wait()
}
