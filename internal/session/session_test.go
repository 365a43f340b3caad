package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"krixo-panel/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helpers
// ==========================

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

// ==========================
// Classification Tests
// ==========================

func TestClassify(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		kind      models.PrincipalKind
		workerID  string
		adminPass bool
	}{
		{"empty", "", models.PrincipalUnauthenticated, "", false},
		{"admin sentinel", AdminToken, models.PrincipalAdmin, "", true},
		{"worker token", "worker-42", models.PrincipalWorker, "42", false},
		{"worker prefix without id", "worker-", models.PrincipalUnauthenticated, "", false},
		{"arbitrary value passes only the coarse guard", "something-else", models.PrincipalAdminAuthorized, "", true},
		{"stale or foreign token is not admin", "stale-or-foreign-token", models.PrincipalAdminAuthorized, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Classify(tt.token, AdminToken)
			assert.Equal(t, tt.kind, p.Kind)
			assert.Equal(t, tt.workerID, p.WorkerID)
			assert.Equal(t, tt.adminPass, IsAdminAuthorized(tt.token))
		})
	}
}

func TestWorkerToken(t *testing.T) {
	assert.Equal(t, "worker-7", WorkerToken("7"))
	assert.Equal(t, "7", Classify(WorkerToken("7"), AdminToken).WorkerID)
}

// ==========================
// Storage Tests
// ==========================

func storageContract(t *testing.T, store Storage) {
	ctx := context.Background()

	_, err := store.Get(ctx, "c1", KeyAuthToken)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "c1", KeyAuthToken, "admin-token"))
	require.NoError(t, store.Set(ctx, "c1", KeyScreenshotMode, "true"))
	require.NoError(t, store.Set(ctx, "c2", KeyAuthToken, "worker-1"))

	val, err := store.Get(ctx, "c1", KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "admin-token", val)

	require.NoError(t, store.Delete(ctx, "c1", KeyAuthToken))
	_, err = store.Get(ctx, "c1", KeyAuthToken)
	assert.ErrorIs(t, err, ErrNotFound)

	val, err = store.Get(ctx, "c1", KeyScreenshotMode)
	require.NoError(t, err)
	assert.Equal(t, "true", val)

	require.NoError(t, store.Clear(ctx, "c1"))
	_, err = store.Get(ctx, "c1", KeyScreenshotMode)
	assert.ErrorIs(t, err, ErrNotFound)

	val, err = store.Get(ctx, "c2", KeyAuthToken)
	require.NoError(t, err)
	assert.Equal(t, "worker-1", val)

	assert.NoError(t, store.Ping(ctx))
}

func TestMemoryStorage(t *testing.T) {
	storageContract(t, NewMemoryStorage())
}

func TestRedisStorage(t *testing.T) {
	_, client := setupRedis(t)
	storageContract(t, NewRedisStorage(client, time.Hour))
}

func TestRedisStorage_RefreshesTTL(t *testing.T) {
	mr, client := setupRedis(t)
	store := NewRedisStorage(client, time.Minute)

	require.NoError(t, store.Set(context.Background(), "c1", KeyAuthToken, "admin-token"))
	assert.Equal(t, time.Minute, mr.TTL("storage:c1"))

	mr.FastForward(30 * time.Second)
	require.NoError(t, store.Set(context.Background(), "c1", KeyScreenshotMode, "true"))
	assert.Equal(t, time.Minute, mr.TTL("storage:c1"))
}

func TestRedisStorage_ErrorPaths(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewRedisStorage(client, time.Minute)
	ctx := context.Background()

	mock.ExpectHGet("storage:c1", KeyAuthToken).SetErr(errors.New("connection refused"))
	_, err := store.Get(ctx, "c1", KeyAuthToken)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)

	mock.ExpectHSet("storage:c1", KeyAuthToken, "admin-token").SetVal(1)
	mock.ExpectExpire("storage:c1", time.Minute).SetErr(errors.New("readonly"))
	assert.Error(t, store.Set(ctx, "c1", KeyAuthToken, "admin-token"))

	assert.NoError(t, mock.ExpectationsWereMet())
}

// ==========================
// Session Tests
// ==========================

func TestSession_TokenLifecycle(t *testing.T) {
	ctx := context.Background()
	s := New("client-1", NewMemoryStorage())

	p, err := s.Principal(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.PrincipalUnauthenticated, p.Kind)

	require.NoError(t, s.SetToken(ctx, WorkerToken("9")))
	require.NoError(t, s.SetWorkerData(ctx, map[string]interface{}{"id": "9", "email": "a@b.dz"}))

	p, err = s.Principal(ctx)
	require.NoError(t, err)
	assert.Equal(t, "9", p.WorkerID)

	data, err := s.WorkerData(ctx)
	require.NoError(t, err)
	assert.Equal(t, "a@b.dz", data["email"])

	require.NoError(t, s.ClearToken(ctx))
	token, err := s.Token(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	data, err = s.WorkerData(ctx)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestSession_ScreenshotMode(t *testing.T) {
	ctx := context.Background()
	s := New("client-1", NewMemoryStorage())

	on, err := s.ScreenshotMode(ctx)
	require.NoError(t, err)
	assert.False(t, on)

	require.NoError(t, s.SetScreenshotMode(ctx, true))
	on, _ = s.ScreenshotMode(ctx)
	assert.True(t, on)

	require.NoError(t, s.SetScreenshotMode(ctx, false))
	on, _ = s.ScreenshotMode(ctx)
	assert.False(t, on)
}

func TestSession_StorageFailure(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectHGet("storage:c1", KeyAuthToken).SetErr(errors.New("timeout"))

	_, err := New("c1", NewRedisStorage(client, 0)).Principal(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read authToken")
}

func TestClassify_ConfiguredSentinel(t *testing.T) {
	assert.Equal(t, models.PrincipalAdmin, Classify("admin-v2", "admin-v2").Kind)
	assert.Equal(t, models.PrincipalAdminAuthorized, Classify(AdminToken, "admin-v2").Kind)
	assert.Equal(t, models.PrincipalAdmin, Classify(AdminToken, "").Kind)

	s := New("c1", NewMemoryStorage()).WithSentinel("admin-v2")
	require.NoError(t, s.SetToken(context.Background(), AdminToken))
	p, err := s.Principal(context.Background())
	require.NoError(t, err)
	assert.False(t, p.IsAdmin())
}

// ==========================
// Middleware Tests
// ==========================

func TestMiddleware_IssuesAndReusesClientID(t *testing.T) {
	store := NewMemoryStorage()
	var seen []string
	handler := Middleware(store, "krixo_client", false, AdminToken)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s := FromContext(r.Context())
		require.NotNil(t, s)
		seen = append(seen, s.ClientID)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Empty(t, rec.Result().Cookies())
	require.Len(t, seen, 2)
	assert.Equal(t, seen[0], seen[1])
}

func TestMiddleware_RejectsMalformedCookie(t *testing.T) {
	handler := Middleware(NewMemoryStorage(), "krixo_client", true, AdminToken)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.NotEqual(t, "../../etc", FromContext(r.Context()).ClientID)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "krixo_client", Value: "../../etc"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.True(t, cookies[0].Secure)
}
