package fetcher

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHtmlBytes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte("<h1>ok</h1>"))
		case "/moved":
			http.Redirect(w, r, "/ok", http.StatusMovedPermanently)
		case "/boom":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewFetcher(2 * time.Second)

	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantBody   string
		wantErr    bool
	}{
		{name: "200 returns body", path: "/ok", wantStatus: 200, wantBody: "<h1>ok</h1>"},
		{name: "redirect is not followed", path: "/moved", wantStatus: 301, wantErr: true},
		{name: "404", path: "/missing", wantStatus: 404, wantErr: true},
		{name: "500", path: "/boom", wantStatus: 500, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body, status, err := f.GetHtmlBytes(context.Background(), srv.URL+tt.path)
			assert.Equal(t, tt.wantStatus, status)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Equal(t, tt.wantBody, string(body))
				return
			}
			var statusErr *StatusError
			require.True(t, errors.As(err, &statusErr), "expected *StatusError, got %v", err)
			assert.Equal(t, tt.wantStatus, statusErr.StatusCode)
		})
	}
}

func TestGetHtmlBytesTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	f := NewFetcher(50 * time.Millisecond)
	_, _, err := f.GetHtmlBytes(context.Background(), srv.URL)
	require.Error(t, err)

	var statusErr *StatusError
	assert.False(t, errors.As(err, &statusErr))
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestSetTimeout(t *testing.T) {
	f := NewFetcher(time.Second)
	f.SetTimeout(3 * time.Second)
	assert.Equal(t, 3*time.Second, f.Timeout())
}
