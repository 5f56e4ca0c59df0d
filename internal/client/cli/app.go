package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"

	"github.com/nyaysetu/nyaysetu-client/internal/client/api"
	"github.com/nyaysetu/nyaysetu-client/internal/client/config"
	"github.com/nyaysetu/nyaysetu-client/internal/client/connectivity"
	"github.com/nyaysetu/nyaysetu-client/internal/client/httpclient"
	"github.com/nyaysetu/nyaysetu-client/internal/client/kvstore"
	"github.com/nyaysetu/nyaysetu-client/internal/client/offline"
	"github.com/nyaysetu/nyaysetu-client/internal/client/platform"
	"github.com/nyaysetu/nyaysetu-client/internal/client/services"
	"github.com/nyaysetu/nyaysetu-client/internal/client/session"
	"github.com/nyaysetu/nyaysetu-client/internal/filex"
	"github.com/nyaysetu/nyaysetu-client/internal/logging"
)

type Mode string

const (
	ModeOffline Mode = "offline"
	ModeOnline  Mode = "online"
)

const (
	dbFileName = "nyaysetu.db"
	cacheDir   = "cache"
)

type App struct {
	config *config.Config
	log    logging.Logger

	store       kvstore.Store
	sessions    *session.Store
	api         *api.API
	authService services.AuthService
	actions     services.ActionService

	pinger   *connectivity.PingSource
	detector *connectivity.Detector
	banner   *connectivity.Banner

	dataDir   string
	estimator platform.StorageEstimator
	caches    platform.DirCaches
	host      platform.Host

	mu       sync.Mutex
	mode     Mode
	userName string

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local store under the configured data directory and
// wires every client component to it.
func NewApp(ctx context.Context, c *config.Config, log logging.Logger) (*App, error) {
	base, name := "", c.DataDir
	if filepath.IsAbs(c.DataDir) {
		base, name = c.DataDir, ""
	}
	dataDir, err := filex.EnsureDir(base, name)
	if err != nil {
		return nil, fmt.Errorf("data dir: %w", err)
	}

	store, err := kvstore.Open(ctx, kvstore.Options{
		Backend:     c.StoreBackend,
		SQLitePath:  filepath.Join(dataDir, dbFileName),
		RedisAddr:   c.RedisAddr,
		RedisPrefix: c.RedisPrefix,
	})
	if err != nil {
		log.Error(ctx, "error initializing store", "error", err)
		return nil, err
	}

	hc, err := newHTTPClient(c)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	app, err := assemble(ctx, c, log, store, hc, dataDir)
	if err != nil {
		_ = store.Close()
		return nil, err
	}
	return app, nil
}

// newHTTPClient applies the request timeout and, for an empty base URL,
// routes bare paths to the configured proxy origin.
func newHTTPClient(c *config.Config) (*http.Client, error) {
	hc := &http.Client{Timeout: c.RequestTimeout}
	if c.APIBaseURL != "" {
		return hc, nil
	}
	tr, err := httpclient.NewOriginTransport(c.ProxyOrigin, nil)
	if err != nil {
		return nil, fmt.Errorf("proxy origin: %w", err)
	}
	hc.Transport = tr
	return hc, nil
}

func assemble(ctx context.Context, c *config.Config, log logging.Logger, store kvstore.Store, hc *http.Client, dataDir string) (*App, error) {
	caches, err := filex.EnsureDir(dataDir, cacheDir)
	if err != nil {
		return nil, fmt.Errorf("cache dir: %w", err)
	}

	sessions := session.NewStore(store, log)
	client := httpclient.New(c.APIBaseURL, nil,
		httpclient.WithCredentials(sessions),
		httpclient.WithHTTPClient(hc),
		httpclient.WithLogger(log),
	)
	backend := api.New(client)
	backend.Meetings.JitsiBase = c.JitsiBaseURL

	pinger := connectivity.NewPingSource(reachability(backend.System.Health), c.OnlineCheckInterval, log)
	detector := connectivity.NewDetector(pinger)
	queue := offline.NewQueue(store, log)

	a := &App{
		config:      c,
		log:         log,
		store:       store,
		sessions:    sessions,
		api:         backend,
		authService: services.NewAuthService(backend.Auth, backend.System, sessions),
		actions:     services.NewActionService(backend.Cases, backend.Chat, queue, detector, log),
		pinger:      pinger,
		detector:    detector,
		dataDir:     dataDir,
		estimator:   platform.DiskEstimator{Dir: dataDir},
		caches:      platform.DirCaches{Root: caches},
		reader:      bufio.NewReader(os.Stdin),
		out:         os.Stdout,
	}
	a.host = platform.TerminalHost{DataDir: dataDir, Conn: detector, Out: os.Stdout}
	a.banner = connectivity.NewBanner(ctx, detector, store, c.BannerNoticeDuration, log)
	a.banner.OnChange(a.showBanner)
	detector.OnChange(func(online bool) { a.onConnectivityChange(context.Background(), online) })

	if u, err := sessions.User(ctx); err == nil {
		a.userName = u.Name
	}
	return a, nil
}

// reachability turns a health check into a connectivity probe. Only a
// transport failure means offline: an error status still came from a
// reachable backend.
func reachability(health func(context.Context) error) connectivity.ProbeFunc {
	return func(ctx context.Context) error {
		if err := health(ctx); httpclient.IsTransport(err) {
			return err
		}
		return nil
	}
}

func (a *App) setMode(mode Mode) {
	a.mu.Lock()
	changed := a.mode != mode
	a.mode = mode
	a.mu.Unlock()
	if changed {
		a.log.Info(context.Background(), fmt.Sprintf("Switched to %s mode", mode))
	}
}

func (a *App) currentMode() Mode {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.mode
}

func (a *App) onConnectivityChange(ctx context.Context, online bool) {
	if !online {
		a.setMode(ModeOffline)
		return
	}
	a.setMode(ModeOnline)
	if len(a.actions.Pending(ctx)) == 0 {
		return
	}
	res := a.actions.Drain(ctx)
	a.printf("Back online: replayed %d queued action(s), %d rejected, %d still pending\n", res.Replayed, res.Rejected, res.Kept)
}

func (a *App) showBanner(s connectivity.BannerState) {
	switch s {
	case connectivity.BannerOffline:
		a.println("You are offline. Changes will be queued and sent when the connection returns (type 'dismiss' to hide this).")
	case connectivity.BannerBackOnline:
		a.println("Back online.")
	}
}

// Run starts the connectivity watcher and blocks in the REPL until the user
// exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.Close()

	if a.detector.Online() {
		a.setMode(ModeOnline)
	}
	go a.pinger.Run(ctx)

	a.println("Welcome to NyaySetu CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, bufio.NewScanner(a.reader))
}

func (a *App) Close() {
	a.banner.Close()
	a.detector.Close()
	if err := a.store.Close(); err != nil {
		a.log.Warn(context.Background(), "close store", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.sessions.Active(context.Background())
}

func (a *App) getStatus() string {
	s := ""
	a.mu.Lock()
	if a.userName != "" {
		s = a.userName + " "
	}
	s += string(a.mode)
	a.mu.Unlock()
	if s != "" {
		s = fmt.Sprintf("(%s)", s)
	}
	return s
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// report prints a user-facing message for err and returns it.
func (a *App) report(what string, err error) error {
	switch {
	case httpclient.IsTransport(err):
		a.printf("%s failed: backend unreachable\n", what)
	case httpclient.StatusCode(err) == http.StatusUnauthorized:
		a.printf("%s failed: not authorised, please login again\n", what)
	default:
		a.printf("%s failed: %v\n", what, err)
	}
	return err
}
