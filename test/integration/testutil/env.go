package testutil

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"hotelledger/pkg/app"
	"hotelledger/pkg/config"
	"hotelledger/pkg/events"
	"hotelledger/pkg/logger"
	"hotelledger/pkg/store"
)

const DefaultReadyTimeout = 5 * time.Second

// TestEnv runs the tests against TEST_SERVER_URL when it is set, and
// otherwise against an in-process server over a ledger file in a temp dir.
type TestEnv struct {
	ServerURL       string
	ReservationMode string

	// LedgerFile is the ledger written by the in-process server. It stays
	// empty when the tests run against TEST_SERVER_URL.
	LedgerFile string
}

func NewTestEnv() *TestEnv {
	return &TestEnv{
		ServerURL:       os.Getenv("TEST_SERVER_URL"),
		ReservationMode: config.ReservationModeSequential,
	}
}

func (e *TestEnv) WithReservationMode(mode string) *TestEnv {
	e.ReservationMode = mode
	return e
}

// Setup returns a client and, for the in-process server, the recorder that
// captures published ledger events. The recorder is nil for a remote server.
func (e *TestEnv) Setup(t *testing.T) (*Client, *events.Recorder) {
	t.Helper()

	if e.ServerURL != "" {
		client := NewClient(e.ServerURL)
		client.WaitForReady(t, DefaultReadyTimeout)
		return client, nil
	}

	cfg := config.FromEnv()
	cfg.Log = logger.Discard()
	cfg.Client = nil
	cfg.ReservationMode = e.ReservationMode
	cfg.StoreBackend = config.StoreBackendFile
	cfg.LedgerFile = filepath.Join(t.TempDir(), config.DefaultLedgerFile)
	e.LedgerFile = cfg.LedgerFile

	recorder := &events.Recorder{}
	services := app.NewServices(cfg, store.NewFileStore(cfg.LedgerFile), recorder)
	application := app.NewApplication(cfg, services.Ledger, recorder)
	application.SetApp(services.Handlers(cfg)...)

	server := httptest.NewServer(application.Handler())
	t.Cleanup(func() {
		server.Close()
		application.Shutdown()
	})

	client := NewClient(server.URL)
	client.WaitForReady(t, DefaultReadyTimeout)
	return client, recorder
}
