package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/GiftMothusi/tshwane-transit-cli/internal/client/api"
	"github.com/GiftMothusi/tshwane-transit-cli/internal/client/config"
	"github.com/GiftMothusi/tshwane-transit-cli/internal/client/services"
	"github.com/GiftMothusi/tshwane-transit-cli/internal/client/session"
	"github.com/GiftMothusi/tshwane-transit-cli/internal/client/storage"
	"github.com/GiftMothusi/tshwane-transit-cli/internal/filex"
	"github.com/GiftMothusi/tshwane-transit-cli/internal/logging"

	_ "modernc.org/sqlite"
)

const dataDirName = "tshwane-transit"

// App wires the configuration, API client, session store and services
// together and drives the interactive shell.
type App struct {
	config         *config.Config
	authService    services.AuthService
	transitService services.TransitService
	store          *session.Store
	logger         logging.Logger
	db             *sql.DB
	reader         *bufio.Reader

	mu    sync.Mutex
	group RouteGroup
}

func NewApp(c *config.Config, logger logging.Logger) (*App, error) {

	ctx := context.Background()

	dir, err := filex.EnsureSubDir(dataDirName)
	if err != nil {
		return nil, fmt.Errorf("preparing data directory: %w", err)
	}

	db, err := storage.InitDatabase(ctx, filepath.Join(dir, c.DatabaseFile))
	if err != nil {
		log.Printf("error initializing database: %s", err.Error())
		return nil, err
	}

	store := session.NewStore(db, logger)

	deviceID, err := store.DeviceID(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolving device id: %w", err)
	}

	apiClient := api.NewHTTPClient(c.APIBaseURL, c.RequestTimeout, deviceID)

	as := services.NewAuthService(apiClient, store, logger)
	ts := services.NewTransitService(apiClient, c.PlanRadiusKm, c.StopRadiusM)

	return &App{
		config:         c,
		authService:    as,
		transitService: ts,
		store:          store,
		logger:         logger,
		db:             db,
		reader:         bufio.NewReader(os.Stdin),
		group:          GroupAuth,
	}, nil
}

func (a *App) currentGroup() RouteGroup {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.group
}

func (a *App) setGroup(g RouteGroup) {
	a.mu.Lock()
	a.group = g
	a.mu.Unlock()
}

// applyGuard reacts to a session state change: if the user's current area no
// longer matches the session, it switches areas and tells the user.
func (a *App) applyGuard(st session.State) {
	switch Redirect(st, a.currentGroup()) {
	case DecisionToLogin:
		a.setGroup(GroupAuth)
		printlnFn("Signed out. Use 'login' or 'register' to continue.")
	case DecisionToHome:
		a.setGroup(GroupTabs)
		printlnFn("Welcome! Type 'help' to see what you can do.")
	}
}

func (a *App) isLoggedIn() bool {
	return a.currentGroup() == GroupTabs
}

func (a *App) getStatus() string {
	st := a.store.Current()
	if st.Restoring {
		return "(restoring)"
	}
	if st.Profile != nil {
		return fmt.Sprintf("(%s)", st.Profile.Email)
	}
	return ""
}

// Run restores any persisted session, then hands control to the interactive
// shell until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	defer a.Close()

	a.store.Subscribe(a.applyGuard)

	log.Println("Welcome to Tshwane Transit CLI (type 'help' for commands)")

	a.authService.Restore(ctx)

	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

func (a *App) Close() {
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			a.logger.Warn(context.Background(), "closing database", "error", err)
		}
	}
}
