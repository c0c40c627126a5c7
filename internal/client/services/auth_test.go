package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/GiftMothusi/tshwane-transit-cli/internal/client/api"
	"github.com/GiftMothusi/tshwane-transit-cli/internal/client/models"
	"github.com/GiftMothusi/tshwane-transit-cli/internal/client/session"
	"github.com/GiftMothusi/tshwane-transit-cli/internal/logging"
)

// ---- helpers ----

func setupStore(t *testing.T) (*session.Store, *sql.DB) {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	return session.NewStore(db, logger), db
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// ---- fake client ----

// fakeClient implements api.Client for unit tests of the services.
type fakeClient struct {
	LoginRet      *models.UserProfile
	LoginToken    string
	LoginErr      error
	RegisterRet   *models.UserProfile
	RegisterToken string
	RegisterErr   error
	LogoutErr     error

	PlanRouteRet []models.RouteOption
	PlanRouteErr error
	StopsRet     []models.Stop
	SchedulesRet []models.Schedule
	LocationsRet []models.BusLocation
	LocationsErr error
	WalletRet    *models.Wallet
	TopUpRet     *models.Wallet

	// argument captures
	LastLoginEmail    string
	LastLoginPassword string
	LastRegistration  api.Registration
	LastPlanRequest   api.RoutePlanRequest
	LastStopsAt       models.Coordinates
	LastStopsRadius   float64
	LastTopUpAmount   float64
	LastTopUpMethod   string

	Token        string
	TokenCleared bool
	LogoutCalls  int
	LocationCall int
}

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) Login(ctx context.Context, email, password string) (*models.UserProfile, string, error) {
	f.LastLoginEmail = email
	f.LastLoginPassword = password
	return f.LoginRet, f.LoginToken, f.LoginErr
}

func (f *fakeClient) Register(ctx context.Context, reg api.Registration) (*models.UserProfile, string, error) {
	f.LastRegistration = reg
	return f.RegisterRet, f.RegisterToken, f.RegisterErr
}

func (f *fakeClient) Logout(ctx context.Context) error {
	f.LogoutCalls++
	return f.LogoutErr
}

func (f *fakeClient) SetCredential(token string) {
	f.Token = token
	f.TokenCleared = false
}

func (f *fakeClient) ClearCredential() {
	f.Token = ""
	f.TokenCleared = true
}

func (f *fakeClient) PlanRoute(ctx context.Context, req api.RoutePlanRequest) ([]models.RouteOption, error) {
	f.LastPlanRequest = req
	return f.PlanRouteRet, f.PlanRouteErr
}

func (f *fakeClient) NearbyStops(ctx context.Context, at models.Coordinates, radius float64) ([]models.Stop, error) {
	f.LastStopsAt = at
	f.LastStopsRadius = radius
	return f.StopsRet, nil
}

func (f *fakeClient) BusSchedules(ctx context.Context) ([]models.Schedule, error) {
	return f.SchedulesRet, nil
}

func (f *fakeClient) BusLocations(ctx context.Context) ([]models.BusLocation, error) {
	f.LocationCall++
	return f.LocationsRet, f.LocationsErr
}

func (f *fakeClient) Wallet(ctx context.Context) (*models.Wallet, error) {
	return f.WalletRet, nil
}

func (f *fakeClient) TopUp(ctx context.Context, amount float64, paymentMethod string) (*models.Wallet, error) {
	f.LastTopUpAmount = amount
	f.LastTopUpMethod = paymentMethod
	return f.TopUpRet, nil
}

// ---- TESTS ----

func TestRestore_FreshInstall_EndsAnonymous(t *testing.T) {
	store, _ := setupStore(t)
	fc := &fakeClient{}
	svc := NewAuthService(fc, store, testLogger())

	require.True(t, store.Current().Restoring)

	svc.Restore(context.Background())

	st := store.Current()
	require.False(t, st.Restoring)
	require.False(t, st.IsAuthenticated())
	require.False(t, svc.IsAuthenticated())
	require.Empty(t, fc.Token)
}

func TestRestore_StoredSession_BecomesAuthenticated(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	profile := &models.UserProfile{ID: 5, Name: "B", Email: "b@example.com"}
	require.NoError(t, store.Save(ctx, profile, "stored-token"))

	fc := &fakeClient{}
	svc := NewAuthService(fc, store, testLogger())

	svc.Restore(ctx)

	st := store.Current()
	require.False(t, st.Restoring)
	require.True(t, st.IsAuthenticated())
	require.Equal(t, "stored-token", fc.Token, "credential must be attached to future requests")
	require.Equal(t, 5, svc.CurrentUser().ID)
}

func TestRestore_PartialRecord_EndsAnonymous(t *testing.T) {
	store, db := setupStore(t)
	ctx := context.Background()

	_, err := db.Exec(`INSERT INTO metadata(key,value) VALUES('tshwane_transit_user', ?)`,
		[]byte(`{"id":1,"email":"a@e.com"}`))
	require.NoError(t, err)

	fc := &fakeClient{}
	svc := NewAuthService(fc, store, testLogger())

	svc.Restore(ctx)

	require.False(t, store.Current().Restoring)
	require.False(t, svc.IsAuthenticated())
}

func TestSignIn_Success_PersistsAndAttachesCredential(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	fc := &fakeClient{
		LoginRet:   &models.UserProfile{ID: 1, Name: "A", Email: "user@example.com"},
		LoginToken: "abc",
	}
	svc := NewAuthService(fc, store, testLogger())

	require.NoError(t, svc.SignIn(ctx, "user@example.com", "correct-pw"))

	require.Equal(t, "user@example.com", fc.LastLoginEmail)
	require.Equal(t, "correct-pw", fc.LastLoginPassword)
	require.True(t, svc.IsAuthenticated())
	require.Equal(t, "abc", fc.Token)

	// session survives in storage
	got, token := store.Load(ctx)
	require.Equal(t, 1, got.ID)
	require.Equal(t, "abc", token)
}

func TestSignIn_Rejected_SurfacesAuthError(t *testing.T) {
	store, _ := setupStore(t)

	fc := &fakeClient{LoginErr: &api.AuthError{StatusCode: 401, Message: "Invalid credentials"}}
	svc := NewAuthService(fc, store, testLogger())

	err := svc.SignIn(context.Background(), "user@example.com", "wrong")
	var authErr *api.AuthError
	require.ErrorAs(t, err, &authErr)
	require.Equal(t, "Invalid credentials", authErr.Message)
	require.False(t, svc.IsAuthenticated())
}

func TestSignIn_Failure_PreservesPriorSession(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	fc := &fakeClient{
		LoginRet:   &models.UserProfile{ID: 1, Name: "A", Email: "a@example.com"},
		LoginToken: "first",
	}
	svc := NewAuthService(fc, store, testLogger())
	require.NoError(t, svc.SignIn(ctx, "a@example.com", "pw"))

	fc.LoginRet = nil
	fc.LoginToken = ""
	fc.LoginErr = &api.AuthError{StatusCode: 401, Message: "Invalid credentials"}

	err := svc.SignIn(ctx, "a@example.com", "wrong")
	require.Error(t, err)

	require.True(t, svc.IsAuthenticated())
	require.Equal(t, 1, svc.CurrentUser().ID)
	got, token := store.Load(ctx)
	require.Equal(t, 1, got.ID)
	require.Equal(t, "first", token)
}

func TestSignIn_StorageWriteFailure_FailsTheCall(t *testing.T) {
	store, db := setupStore(t)
	ctx := context.Background()

	require.NoError(t, db.Close())

	fc := &fakeClient{
		LoginRet:   &models.UserProfile{ID: 1, Email: "a@example.com"},
		LoginToken: "abc",
	}
	svc := NewAuthService(fc, store, testLogger())

	err := svc.SignIn(ctx, "a@example.com", "pw")
	require.Error(t, err)
	require.Contains(t, err.Error(), "saving session")

	// in-memory state must not have been updated
	require.False(t, svc.IsAuthenticated())
	require.Empty(t, fc.Token)
}

func TestSignUp_Success_SameContractAsSignIn(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	fc := &fakeClient{
		RegisterRet:   &models.UserProfile{ID: 9, Name: "N", Email: "n@example.com"},
		RegisterToken: "fresh",
	}
	svc := NewAuthService(fc, store, testLogger())

	reg := api.Registration{
		Name:                 "N",
		Email:                "n@example.com",
		Password:             "pw",
		PasswordConfirmation: "pw",
		PhoneNumber:          "0123456789",
	}
	require.NoError(t, svc.SignUp(ctx, reg))

	require.Equal(t, reg, fc.LastRegistration)
	require.True(t, svc.IsAuthenticated())
	require.Equal(t, "fresh", fc.Token)
}

func TestSignUp_Rejected_StateUnchanged(t *testing.T) {
	store, _ := setupStore(t)

	fc := &fakeClient{RegisterErr: &api.AuthError{StatusCode: 422, Message: "The email has already been taken."}}
	svc := NewAuthService(fc, store, testLogger())

	err := svc.SignUp(context.Background(), api.Registration{Email: "dup@example.com"})
	require.Error(t, err)
	require.False(t, svc.IsAuthenticated())
}

func TestSignOut_ClearsEverything(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	fc := &fakeClient{
		LoginRet:   &models.UserProfile{ID: 1, Email: "a@example.com"},
		LoginToken: "abc",
	}
	svc := NewAuthService(fc, store, testLogger())
	require.NoError(t, svc.SignIn(ctx, "a@example.com", "pw"))

	svc.SignOut(ctx)

	require.False(t, svc.IsAuthenticated())
	require.True(t, fc.TokenCleared)
	require.Equal(t, 1, fc.LogoutCalls)

	got, token := store.Load(ctx)
	require.Nil(t, got)
	require.Empty(t, token)
}

func TestSignOut_RemoteFailure_LocalLogoutStillSucceeds(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	fc := &fakeClient{
		LoginRet:   &models.UserProfile{ID: 1, Email: "a@example.com"},
		LoginToken: "abc",
		LogoutErr:  errors.New("network down"),
	}
	svc := NewAuthService(fc, store, testLogger())
	require.NoError(t, svc.SignIn(ctx, "a@example.com", "pw"))

	svc.SignOut(ctx)

	require.False(t, svc.IsAuthenticated())
	require.True(t, fc.TokenCleared)

	got, token := store.Load(ctx)
	require.Nil(t, got)
	require.Empty(t, token)
}

func TestSignIn_WhileAuthenticated_OverwritesSession(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	fc := &fakeClient{
		LoginRet:   &models.UserProfile{ID: 1, Email: "a@example.com"},
		LoginToken: "first",
	}
	svc := NewAuthService(fc, store, testLogger())
	require.NoError(t, svc.SignIn(ctx, "a@example.com", "pw"))

	fc.LoginRet = &models.UserProfile{ID: 2, Email: "b@example.com"}
	fc.LoginToken = "second"
	require.NoError(t, svc.SignIn(ctx, "b@example.com", "pw"))

	require.Equal(t, 2, svc.CurrentUser().ID)
	require.Equal(t, "second", fc.Token)

	got, token := store.Load(ctx)
	require.Equal(t, 2, got.ID)
	require.Equal(t, "second", token)
}
