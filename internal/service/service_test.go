package service

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"connectrpc.com/connect"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/patungan/internal/auth"
	"github.com/mmynk/patungan/internal/middleware"
	"github.com/mmynk/patungan/internal/storage/sqlite"
	"github.com/mmynk/patungan/pkg/api/apiconnect"
)

const (
	testUser      = "user-alice"
	testUserHdr   = "X-Test-User"
	otherTestUser = "user-mallory"
)

// testAuthInterceptor puts a user ID on the context: the X-Test-User header
// when present, testUser otherwise.
func testAuthInterceptor() connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			userID := req.Header().Get(testUserHdr)
			if userID == "" {
				userID = testUser
			}
			return next(middleware.WithUser(ctx, userID, userID+"@example.com"), req)
		}
	}
}

type testEnv struct {
	bills  apiconnect.BillServiceClient
	groups apiconnect.GroupServiceClient
	auth   apiconnect.AuthServiceClient
	store  *sqlite.SQLiteStore
	jwt    *auth.JWTManager
}

// setupTestServer serves all three services over httptest with a temp-dir SQLite store.
// Bill and group calls are authenticated by testAuthInterceptor; the auth service
// uses the real token interceptor.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	logger := discardLogger()
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	authenticator := auth.NewPasswordAuthenticator(store)

	testAuth := connect.WithInterceptors(testAuthInterceptor())
	mux := http.NewServeMux()
	mux.Handle(apiconnect.NewBillServiceHandler(NewBillService(store, logger), testAuth))
	mux.Handle(apiconnect.NewGroupServiceHandler(NewGroupService(store, logger), testAuth))
	mux.Handle(apiconnect.NewAuthServiceHandler(
		NewAuthService(authenticator, jwtManager, store, logger),
		connect.WithInterceptors(middleware.OptionalAuth(jwtManager)),
	))

	server := httptest.NewServer(mux)
	t.Cleanup(func() {
		server.Close()
		store.Close()
	})

	return &testEnv{
		bills:  apiconnect.NewBillServiceClient(server.Client(), server.URL),
		groups: apiconnect.NewGroupServiceClient(server.Client(), server.URL),
		auth:   apiconnect.NewAuthServiceClient(server.Client(), server.URL),
		store:  store,
		jwt:    jwtManager,
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// as builds a request made by the given user.
func as[T any](userID string, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	req.Header().Set(testUserHdr, userID)
	return req
}

// requireCode fails unless err is a Connect error with the given code.
func requireCode(t *testing.T, want connect.Code, err error) {
	t.Helper()
	require.Error(t, err)
	require.Equal(t, want, connect.CodeOf(err), "error: %v", err)
}
