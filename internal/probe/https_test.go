package probe

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/hakim/wifiscan/internal/models"
)

func TestHTTPSProbe_MajorityPasses(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "ok")
	}))
	defer srv.Close()

	client := srv.Client()
	client.Timeout = 2 * time.Second

	p := &HTTPSProbe{
		Targets: []string{srv.URL, srv.URL + "/second", "https://127.0.0.1:1"},
		Client:  client,
	}
	assert.Equal(t, models.SignalTrue, p.Check(context.Background()).State)
}

func TestHTTPSProbe_OneOfThreeFails(t *testing.T) {
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	plain := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer plain.Close()

	client := srv.Client()
	client.Timeout = 2 * time.Second

	p := &HTTPSProbe{
		Targets: []string{srv.URL, plain.URL, "https://127.0.0.1:1"},
		Client:  client,
	}
	got := p.Check(context.Background())
	assert.Equal(t, models.SignalFalse, got.State)
	assert.Contains(t, got.Reason, "1 of 3")
}

func TestHTTPSProbe_DowngradeRedirectIsNotSecure(t *testing.T) {
	plain := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer plain.Close()

	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, plain.URL, http.StatusFound)
	}))
	defer srv.Close()

	client := srv.Client()
	client.Timeout = 2 * time.Second

	p := &HTTPSProbe{Targets: []string{srv.URL, srv.URL, srv.URL}, Client: client}
	assert.Equal(t, models.SignalFalse, p.Check(context.Background()).State)
}

func TestHTTPSProbe_NothingReachable(t *testing.T) {
	p := NewHTTPSProbe([]string{"https://127.0.0.1:1", "https://127.0.0.1:2", "https://127.0.0.1:3"}, time.Second)
	got := p.Check(context.Background())
	assert.Equal(t, models.SignalUnknown, got.State)
	assert.False(t, got.OK())
}

func TestNewHTTPSProbe_Defaults(t *testing.T) {
	p := NewHTTPSProbe(nil, 0)
	assert.Equal(t, DefaultHTTPSTargets, p.Targets)
	assert.Equal(t, DefaultHTTPSTimeout, p.Client.Timeout)
}
