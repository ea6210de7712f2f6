package main

import (
	"context"
	"fmt"
	"os"

	"hotelledger/internal/batch"
	"hotelledger/pkg/app"
	"hotelledger/pkg/config"
	"hotelledger/pkg/logger"
	"hotelledger/pkg/sanitizer"
	"hotelledger/pkg/store"

	"github.com/urfave/cli/v2"
)

const (
	ServiceName   = "ledgerctl"
	DefaultOutput = "output.json"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "[ERROR] %s\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:      ServiceName,
		Usage:     "replay a batch of ledger operations from a JSON file",
		ArgsUsage: "INPUT_FILE",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   DefaultOutput,
				Usage:   "path the final ledger is copied to",
			},
			&cli.StringFlag{
				Name:    "store",
				Aliases: []string{"s"},
				Value:   config.DefaultLedgerFile,
				Usage:   "working ledger file, removed before the batch starts",
				EnvVars: []string{config.EnvLedgerFile},
			},
			&cli.StringFlag{
				Name:    "mode",
				Value:   config.DefaultReservationMode,
				Usage:   "reservation mode: sequential or atomic",
				EnvVars: []string{config.EnvReservationMode},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   logger.WARN,
				Usage:   "log level for the structured log on stderr",
				EnvVars: []string{config.EnvLogLevel},
			},
		},
		Action: run,
	}
}

func run(c *cli.Context) error {
	if c.NArg() != 1 {
		return fmt.Errorf("expected exactly one input file, got %d arguments", c.NArg())
	}
	inputPath := c.Args().First()
	if _, err := os.Stat(inputPath); err != nil {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	cfg := config.FromEnv()
	cfg.StoreBackend = config.StoreBackendFile
	cfg.LedgerFile = c.String("store")
	cfg.ReservationMode = sanitizer.NormalizeKeyword(c.String("mode"))
	cfg.Log = logger.New(logger.Config{
		Level:   c.String("log-level"),
		Format:  logger.TEXT,
		Output:  c.App.ErrWriter,
		Service: ServiceName,
	})
	if err := cfg.Validate(); err != nil {
		return err
	}

	in, err := batch.ReadInput(inputPath)
	if err != nil {
		return err
	}

	fileStore := store.NewFileStore(cfg.LedgerFile)
	if err := fileStore.Remove(); err != nil {
		return fmt.Errorf("remove stale ledger: %w", err)
	}

	publisher, err := app.NewPublisher(cfg, ServiceName)
	if err != nil {
		return err
	}
	defer func() {
		if err := publisher.Close(); err != nil {
			cfg.Log.Error("Failed to close event publisher", "error", err)
		}
	}()

	services := app.NewServices(cfg, store.NewTracedStore(fileStore, config.StoreBackendFile), publisher)
	driver := batch.NewDriver(services.Customers, services.Hotels, services.Reservations, cfg.Log)
	report := driver.Run(c.Context, in)

	if _, err := report.WriteTo(c.App.Writer); err != nil {
		return err
	}

	output := c.String("output")
	if err := copyLedger(c.Context, fileStore, output); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "\n[DONE] Final data saved to %s\n", output)
	return nil
}

// copyLedger writes the working ledger to path. A batch that never saved
// leaves no working file, in which case the empty snapshot is written.
func copyLedger(ctx context.Context, from *store.FileStore, path string) error {
	snapshot, err := from.Load(ctx)
	if err != nil {
		return fmt.Errorf("read final ledger: %w", err)
	}
	if err := store.NewFileStore(path).Save(ctx, snapshot); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}
