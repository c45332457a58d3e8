package forward

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/impulso-stone/webhook-service/internal/store"
)

func TestForwardPostsRecord(t *testing.T) {
	t.Parallel()

	received := make(chan store.Empreendedor, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var rec store.Empreendedor
		require.NoError(t, json.NewDecoder(r.Body).Decode(&rec))
		received <- rec
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := New(srv.URL, time.Second, nil)
	require.True(t, f.Enabled())

	f.Forward(context.Background(), store.Empreendedor{ID: 7, Nome: "Ana", Telefone: "(11) 9"})

	select {
	case rec := <-received:
		require.Equal(t, int64(7), rec.ID)
		require.Equal(t, "Ana", rec.Nome)
	case <-time.After(time.Second):
		t.Fatal("webhook never received the record")
	}
}

func TestForwardSwallowsServerErrors(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	f := New(srv.URL, time.Second, nil)
	// Must not panic or error out.
	f.Forward(context.Background(), store.Empreendedor{ID: 1, Nome: "Ana", Telefone: "(11) 9"})
}

func TestForwardDisabledWithoutURL(t *testing.T) {
	t.Parallel()

	f := New("", time.Second, nil)
	require.False(t, f.Enabled())
	f.Forward(context.Background(), store.Empreendedor{ID: 1})
}

func TestForwardSwallowsTimeout(t *testing.T) {
	t.Parallel()

	blocked := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		<-blocked
	}))
	defer srv.Close()
	defer close(blocked)

	f := New(srv.URL, 50*time.Millisecond, nil)
	f.Forward(context.Background(), store.Empreendedor{ID: 1, Nome: "Ana", Telefone: "(11) 9"})
}
