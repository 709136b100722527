package rpc

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/krainode/rpcbot/logger"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendSuccess(t *testing.T) {
	var gotBody []byte
	var gotHeaders http.Header
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		gotHeaders = r.Header.Clone()
		_, _ = w.Write([]byte(`{"jsonrpc":"2.0","id":1,"result":"0x10"}`))
	}))
	defer srv.Close()

	d := NewDispatcher(0, 0)
	data, err := d.Send(context.Background(), srv.URL, []byte(`{"method":"eth_blockNumber"}`), map[string]string{"x-api-key": "k"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"jsonrpc":"2.0","id":1,"result":"0x10"}`, string(data))
	assert.Equal(t, `{"method":"eth_blockNumber"}`, string(gotBody))
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))
	assert.Equal(t, "k", gotHeaders.Get("X-Api-Key"))

	result, ok := ExtractResult(data)
	require.True(t, ok)
	assert.Equal(t, "0x10", result.String())
}

func TestSendCustomContentTypeWins(t *testing.T) {
	var ct string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ct = r.Header.Get("Content-Type")
		_, _ = w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	_, err := NewDispatcher(0, 0).Send(context.Background(), srv.URL, []byte(`{}`), map[string]string{"Content-Type": "application/json-rpc"})
	require.NoError(t, err)
	assert.Equal(t, "application/json-rpc", ct)
}

func TestSendHTTPStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewDispatcher(0, 0).Send(context.Background(), srv.URL, []byte(`{}`), nil)
	var ce *CallError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, KindError, ce.Kind)
	assert.Equal(t, 429, ce.Status)
	assert.Equal(t, "HTTP 429", FriendlyMessage(err))
}

func TestSendNonJSONBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer srv.Close()

	_, err := NewDispatcher(0, 0).Send(context.Background(), srv.URL, []byte(`{}`), nil)
	var ce *CallError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, KindError, ce.Kind)
}

func TestSendTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	timeout := 100 * time.Millisecond
	start := time.Now()
	_, err := NewDispatcher(timeout, 0).Send(context.Background(), srv.URL, []byte(`{}`), nil)
	elapsed := time.Since(start)

	require.Error(t, err)
	assert.True(t, IsTimeout(err))
	assert.Equal(t, MsgTimedOut, FriendlyMessage(err))
	assert.Less(t, elapsed, timeout+time.Second)
}

func TestSendConnectionRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	_, err = NewDispatcher(time.Second, 0).Send(context.Background(), "http://"+addr, []byte(`{}`), nil)
	var ce *CallError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, KindNetworkOrCORS, ce.Kind)
	assert.Equal(t, MsgNetworkBlocked, FriendlyMessage(err))
}

func TestCallReleasesOnSuccess(t *testing.T) {
	var opCtx context.Context
	v, err := Call(context.Background(), time.Minute, func(ctx context.Context) (int, error) {
		opCtx = ctx
		return 7, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 7, v)
	assert.ErrorIs(t, opCtx.Err(), context.Canceled)
}

func TestCallKeepsTypedError(t *testing.T) {
	want := &CallError{Kind: KindError, Status: 500, Message: "HTTP 500"}
	_, err := Call(context.Background(), time.Second, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, want
	})
	assert.Same(t, want, err)
}

func TestCallRawMessage(t *testing.T) {
	_, err := Call(context.Background(), time.Second, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, errors.New("boom")
	})
	assert.Equal(t, "boom", FriendlyMessage(err))
}

func TestProbeLabels(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
		ok     bool
		label  string
	}{
		{"result", 200, `{"result":"Geth/v1.14"}`, true, ProbeOK},
		{"empty result", 200, `{"result":""}`, true, ProbeNoResult},
		{"no json", 200, `pong`, true, ProbeNoResult},
		{"status", 503, ``, false, "HTTP 503"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, _ := io.ReadAll(r.Body)
				assert.JSONEq(t, `{"jsonrpc":"2.0","id":1,"method":"web3_clientVersion","params":[]}`, string(body))
				w.WriteHeader(c.status)
				_, _ = w.Write([]byte(c.body))
			}))
			defer srv.Close()

			res := NewDispatcher(0, 0).Probe(context.Background(), srv.URL, nil)
			assert.Equal(t, c.ok, res.OK)
			assert.Equal(t, c.label, res.Label)
		})
	}
}

func TestProbeTimeoutAndBlocked(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	res := NewDispatcher(0, 50*time.Millisecond).Probe(context.Background(), srv.URL, nil)
	assert.False(t, res.OK)
	assert.Equal(t, ProbeTimeout, res.Label)

	res = NewDispatcher(0, time.Second).Probe(context.Background(), "not a url", nil)
	assert.False(t, res.OK)
	assert.Equal(t, ProbeBlocked, res.Label)
}

func TestProbeFailureLogsProbeCategory(t *testing.T) {
	var buf bytes.Buffer
	prev := log.Logger
	log.Logger = zerolog.New(&buf).Level(zerolog.DebugLevel)
	defer func() { log.Logger = prev }()

	NewDispatcher(0, time.Second).Probe(context.Background(), "not a url", nil)
	assert.Contains(t, buf.String(), `"`+logger.CategoryField+`":"`+logger.CategoryProbe+`"`)
	assert.Contains(t, buf.String(), "probe failed")
}

func TestExtractResultBatch(t *testing.T) {
	r, ok := ExtractResult([]byte(`[{"result":1},{"result":2}]`))
	require.True(t, ok)
	assert.Equal(t, int64(1), r.Int())

	_, ok = ExtractResult([]byte(`{"error":{"code":-32601}}`))
	assert.False(t, ok)
}
