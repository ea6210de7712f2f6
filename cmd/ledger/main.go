package main

import (
	"hotelledger/pkg/app"
	"hotelledger/pkg/config"
)

const ServiceName = "ledger"

func main() {
	cfg := config.Load(ServiceName)
	cfg.Log.Info("Starting Hotel Ledger service")

	ledgerStore, err := app.OpenStore(cfg)
	if err != nil {
		cfg.Log.Fatal("Failed to open ledger store", "error", err)
	}

	publisher, err := app.NewPublisher(cfg, ServiceName)
	if err != nil {
		cfg.Log.Fatal("Failed to create event publisher", "error", err)
	}

	services := app.NewServices(cfg, ledgerStore, publisher)
	serverApp := app.NewApplication(cfg, services.Ledger, publisher)
	serverApp.SetApp(services.Handlers(cfg)...)
	serverApp.Run()
}
