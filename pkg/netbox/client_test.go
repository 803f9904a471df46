package netbox

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/netfleet/netinv/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDeviceByNameFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Token secret", r.Header.Get("Authorization"))
		w.Write([]byte(`{"count":1,"results":[{"id":7,"name":"sw1"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "secret", time.Second, 1, 0)
	d, err := c.GetDeviceByName(context.Background(), "sw1")
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 7, d.ID)
}

func TestAuthFailureIsNeverRetried(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := New(srv.URL, "bad-token", time.Second, 5, 0)
	_, err := c.GetDeviceByName(context.Background(), "sw1")
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrAuthenticationFailed)
	assert.Equal(t, 1, calls)
}

func TestServerErrorRetriedThenSucceeds(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"id":1,"name":"sw1"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", time.Second, 5, time.Millisecond)
	d, err := c.CreateDevice(context.Background(), Device{Name: "sw1"})
	require.NoError(t, err)
	require.NotNil(t, d)
	assert.Equal(t, 3, calls)
}

func TestGetOrCreateSiteCreatesWhenAbsent(t *testing.T) {
	var getCalled, postCalled bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			getCalled = true
			w.Write([]byte(`{"count":0,"results":[]}`))
		case http.MethodPost:
			postCalled = true
			w.Write([]byte(`{"id":42,"name":"DC1","slug":"dc1"}`))
		}
	}))
	defer srv.Close()

	c := New(srv.URL, "tok", time.Second, 1, 0)
	ref, err := c.GetOrCreateSite(context.Background(), "DC1")
	require.NoError(t, err)
	assert.True(t, getCalled)
	assert.True(t, postCalled)
	assert.Equal(t, 42, ref.ID)
}
