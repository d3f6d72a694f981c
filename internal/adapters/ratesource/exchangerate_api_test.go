package ratesource_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/revenue_split_app/internal/adapters/ratesource"
	"github.com/SscSPs/revenue_split_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExchangeRateAPI_FetchRates(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"base":"GBP","rates":{"GBP":1,"USD":1.27,"EUR":1.17,"JPY":190.2}}`))
	}))
	defer srv.Close()

	api := ratesource.NewExchangeRateAPI(srv.URL+"/v4/latest/", srv.Client())
	rates, err := api.FetchRates(context.Background(), "GBP")

	require.NoError(t, err)
	assert.Equal(t, "/v4/latest/GBP", gotPath)
	assert.Equal(t, 1.27, rates["USD"])
	assert.Len(t, rates, 4)
}

func TestExchangeRateAPI_NonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := ratesource.NewExchangeRateAPI(srv.URL, nil).FetchRates(context.Background(), "GBP")
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
}

func TestExchangeRateAPI_MalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rates":`))
	}))
	defer srv.Close()

	_, err := ratesource.NewExchangeRateAPI(srv.URL, nil).FetchRates(context.Background(), "GBP")
	assert.Error(t, err)
}

func TestExchangeRateAPI_ContextTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := ratesource.NewExchangeRateAPI(srv.URL, nil).FetchRates(ctx, "GBP")
	assert.ErrorIs(t, err, apperrors.ErrUnavailable)
}
