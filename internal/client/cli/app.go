package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/userdir/internal/client/api"
	"github.com/dmitrijs2005/userdir/internal/client/auth"
	"github.com/dmitrijs2005/userdir/internal/client/config"
	"github.com/dmitrijs2005/userdir/internal/client/directory"
	"github.com/dmitrijs2005/userdir/internal/client/models"
	"github.com/dmitrijs2005/userdir/internal/client/session"
	"github.com/dmitrijs2005/userdir/internal/logging"
	"github.com/jonboulle/clockwork"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

// healthTimeout bounds a single watcher probe.
const healthTimeout = 3 * time.Second

// App owns every client component for one CLI run.
type App struct {
	config *config.Config
	log    logging.Logger

	store *session.SQLiteStore
	state *auth.State
	auth  *auth.Controller
	api   *api.Client
	users *directory.List

	reader *bufio.Reader
	out    io.Writer
	clock  clockwork.Clock

	modeMu sync.RWMutex
	mode   Mode

	unsubscribe func()
}

// NewApp opens the session database and wires the components in
// dependency order: state, transport, facade, controller, directory list.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	store, err := session.Open(ctx, c.SessionDB)
	if err != nil {
		log.Error(ctx, "error initializing session database", "path", c.SessionDB, "error", err)
		return nil, err
	}

	state := auth.NewState()
	transport, err := api.NewTransport(c.BaseURL, state,
		api.WithTimeout(c.RequestTimeout),
		api.WithLogger(log.With("component", "transport")),
	)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	client := api.NewClient(transport)

	a := &App{
		config: c,
		log:    log,
		store:  store,
		state:  state,
		auth:   auth.NewController(ctx, state, store, client, log.With("component", "auth")),
		api:    client,
		users:  directory.New(client, state, log.With("component", "directory")),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		clock:  clockwork.NewRealClock(),
	}

	// the list is only meaningful for the session that loaded it
	a.unsubscribe = state.Subscribe(func(models.Session) { a.users.Reset() })
	return a, nil
}

// Close releases the session database.
func (a *App) Close() error {
	if a.unsubscribe != nil {
		a.unsubscribe()
	}
	return a.store.Close()
}

func (a *App) Mode() Mode {
	a.modeMu.RLock()
	defer a.modeMu.RUnlock()
	return a.mode
}

func (a *App) setMode(mode Mode) {
	a.modeMu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.modeMu.Unlock()

	if changed {
		a.log.Info(context.Background(), "connectivity changed", "mode", string(mode))
	}
}

func (a *App) isLoggedIn() bool {
	return a.state.IsAuthenticated()
}

func (a *App) getStatus() string {
	s := ""
	if u := a.state.User(); u != nil {
		s = u.Name + " "
	}
	if m := a.Mode(); m != "" {
		s += string(m)
	}
	s = strings.TrimRight(s, " ")
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

// Run greets the user, loads the directory when a session was restored,
// starts the connectivity watcher and blocks in the REPL until exit.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	fmt.Fprintln(a.out, "Welcome to the userdir CLI (type 'help' for commands)")
	if u := a.state.User(); u != nil {
		fmt.Fprintf(a.out, "Signed in as %s <%s>\n", u.Name, u.Email)
		_ = a.List(ctx)
	} else {
		fmt.Fprintln(a.out, "Please login to view and manage users.")
	}

	go a.StartOnlineStatusWatcher(ctx, a.config.HealthInterval)

	runREPL(ctx, a, a.getStatus, a.reader)
}

// StartOnlineStatusWatcher probes the service right away and then on every
// tick until ctx is done. A non-positive interval disables it.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	a.probe(ctx)

	ticker := a.clock.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.Chan():
			a.probe(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// probe sets the mode from one health check and returns what it saw.
func (a *App) probe(ctx context.Context) (models.HealthStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, healthTimeout)
	defer cancel()

	h, err := a.api.Health(ctx)
	if err != nil || !h.OK() {
		a.setMode(ModeOffline)
	} else {
		a.setMode(ModeOnline)
	}
	return h, err
}

// Health runs one probe on demand and prints the result.
func (a *App) Health(ctx context.Context) error {
	h, err := a.probe(ctx)
	if err != nil {
		a.log.Debug(ctx, "health check failed", "error", err)
		fmt.Fprintln(a.out, "Service is unreachable.")
		return err
	}
	renderHealth(a.out, h)
	return nil
}
