package client

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/memberclient/internal/client/models"
	"github.com/dmitrijs2005/memberclient/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	session    *models.Session
	loadErr    error
	clearErr   error
	loadCalls  int
	clearCalls int
}

func (f *fakeStore) Load(context.Context) (*models.Session, error) {
	f.loadCalls++
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return f.session, nil
}

func (f *fakeStore) Clear(context.Context) error {
	f.clearCalls++
	f.session = nil
	return f.clearErr
}

func TestAuthClient_NoSession_FailsWithoutNetwork(t *testing.T) {
	srv, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	store := &fakeStore{}
	expired := 0
	c := NewAuthClient(NewHTTPClient(srv.URL), store, WithExpiredHandler(func(context.Context) { expired++ }))

	_, err := c.Do(context.Background(), Request{Path: "/user/get-dashboard"})

	e := requireKind(t, err, KindAuthExpired)
	assert.Equal(t, MsgNotAuthorized, e.Message)
	assert.Zero(t, hits.Load(), "no request may reach the network")
	assert.Equal(t, 1, store.clearCalls)
	assert.Equal(t, 1, expired)
}

func TestAuthClient_EmptyTokenIsAbsent(t *testing.T) {
	srv, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {})

	store := &fakeStore{session: &models.Session{UserID: "TRT1"}}
	_, err := NewAuthClient(NewHTTPClient(srv.URL), store).Do(context.Background(), Request{Path: "/x"})

	requireKind(t, err, KindAuthExpired)
	assert.Zero(t, hits.Load())
}

func TestAuthClient_LoadErrorTreatedAsAbsent(t *testing.T) {
	srv, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {})

	store := &fakeStore{loadErr: errors.New("disk gone")}
	_, err := NewAuthClient(NewHTTPClient(srv.URL), store).Do(context.Background(), Request{Path: "/x"})

	requireKind(t, err, KindAuthExpired)
	assert.Zero(t, hits.Load())
	assert.Equal(t, 1, store.clearCalls)
}

func TestAuthClient_AttachesBearerToken(t *testing.T) {
	var auth string
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		auth = r.Header.Get(common.AuthorizationHeaderName)
		writeJSON(w, http.StatusOK, map[string]any{"data": map[string]float64{"USDTBalance": 12.5}})
	})

	store := &fakeStore{session: &models.Session{Token: "tok-1", UserID: "TRT1"}}
	body, err := NewAuthClient(NewHTTPClient(srv.URL), store).Do(context.Background(), Request{Path: "/user/get-wallet"})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-1", auth)
	var w models.Wallet
	require.NoError(t, DecodeData(body, &w, true))
	assert.Equal(t, 12.5, w.USDTBalance)
	assert.Zero(t, store.clearCalls)
}

func TestAuthClient_401ClearsStoreAndExpires(t *testing.T) {
	srv, hits := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "jwt expired"})
	})

	store := &fakeStore{session: &models.Session{Token: "old", UserID: "TRT1"}}
	expired := 0
	c := NewAuthClient(NewHTTPClient(srv.URL), store, WithExpiredHandler(func(context.Context) { expired++ }))

	_, err := c.Do(context.Background(), Request{Path: "/user/get-profile"})

	e := requireKind(t, err, KindAuthExpired)
	assert.ErrorIs(t, err, ErrAuthExpired)
	assert.NotErrorIs(t, err, ErrClient, "401 must not surface as a generic 4xx")
	assert.Equal(t, MsgSessionExpired, e.Message)
	assert.Equal(t, http.StatusUnauthorized, e.Status)
	assert.Nil(t, store.session)
	assert.Equal(t, 1, store.clearCalls)
	assert.Equal(t, 1, expired)
	assert.Equal(t, int32(1), hits.Load())
}

func TestAuthClient_ClearFailureStillExpires(t *testing.T) {
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	store := &fakeStore{session: &models.Session{Token: "old"}, clearErr: errors.New("locked")}
	_, err := NewAuthClient(NewHTTPClient(srv.URL), store).Do(context.Background(), Request{Path: "/x"})
	requireKind(t, err, KindAuthExpired)
}

func TestAuthClient_OtherStatusesPreferErrorField(t *testing.T) {
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "Insufficient balance", "message": "Forbidden"})
	})

	store := &fakeStore{session: &models.Session{Token: "tok"}}
	_, err := NewAuthClient(NewHTTPClient(srv.URL), store).Do(context.Background(), Request{
		Method: http.MethodPost,
		Path:   "/withdraw/withdraw-request",
	})

	e := requireKind(t, err, KindClient)
	assert.Equal(t, "Insufficient balance", e.Message)
	assert.Zero(t, store.clearCalls, "only 401 clears the session")
	assert.NotNil(t, store.session)
}

func TestAPI_RoutesByAuthenticatedFlag(t *testing.T) {
	var auths []string
	srv, _ := countingServer(t, func(w http.ResponseWriter, r *http.Request) {
		auths = append(auths, r.Header.Get(common.AuthorizationHeaderName))
		w.WriteHeader(http.StatusOK)
	})

	h := NewHTTPClient(srv.URL)
	store := &fakeStore{session: &models.Session{Token: "tok"}}
	api := NewAPI(h, NewAuthClient(h, store))

	_, err := api.Request(context.Background(), "/referral/getreferralname/TRT1", http.MethodGet, nil, false)
	require.NoError(t, err)
	_, err = api.Request(context.Background(), "/user/get-wallet", http.MethodGet, nil, true)
	require.NoError(t, err)

	assert.Equal(t, []string{"", "Bearer tok"}, auths)
}

func TestDecodeData(t *testing.T) {
	var w models.Wallet
	require.NoError(t, DecodeData([]byte(`{"data":{"depositBalance":50}}`), &w, true))
	assert.Equal(t, 50.0, w.DepositBalance)

	requireKind(t, DecodeData([]byte(`{"message":"ok"}`), &w, true), KindServer)
	require.NoError(t, DecodeData([]byte(`{"message":"ok"}`), &w, false))
	requireKind(t, DecodeData([]byte(`not json`), &w, false), KindServer)
	requireKind(t, DecodeData([]byte(`{"data":"string"}`), &w, true), KindServer)
}

func TestDecodeEnvelope_Success(t *testing.T) {
	env, err := DecodeEnvelope([]byte(`{"success":false,"message":"no such referrer"}`))
	require.NoError(t, err)
	assert.False(t, env.Success)
	assert.Equal(t, "no such referrer", env.Message)

	env, err = DecodeEnvelope([]byte(`{"data":{}}`))
	require.NoError(t, err)
	assert.True(t, env.Success)

	env, err = DecodeEnvelope(nil)
	require.NoError(t, err)
	assert.True(t, env.Success)
}
