package main

import (
	"log"
	"os"

	yall "yall.in"
	"yall.in/colour"

	"github.com/HttpRafa/Bibliothek/internal/config"
	"github.com/HttpRafa/Bibliothek/internal/database"
	"github.com/HttpRafa/Bibliothek/internal/resolver"
	"github.com/HttpRafa/Bibliothek/internal/server"
	"github.com/HttpRafa/Bibliothek/internal/server/handlers"
	"github.com/HttpRafa/Bibliothek/internal/storage"
)

func main() {
	// Load environment variables
	if err := config.Load(); err != nil {
		log.Fatalf("config load failed: %v", err)
	}

	logger := yall.New(colour.New(os.Stdout, yall.Info))

	// Init store
	var store database.Store
	if config.Current.UseMemoryStore {
		mem, err := database.NewMemoryStore()
		if err != nil {
			log.Fatalf("memory store init failed: %v", err)
		}
		store = mem
	} else {
		pg, err := database.Connect(config.Current.DatabaseURL)
		if err != nil {
			log.Fatalf("database connect failed: %v", err)
		}
		if err := pg.AutoMigrate(); err != nil {
			log.Fatalf("migration failed: %v", err)
		}
		store = pg
	}

	api := &handlers.API{
		Resolver: resolver.New(store),
		Locator:  storage.NewLocator(config.Current.StoragePath),
		Cache:    config.Current.CacheControl(),
	}

	app := server.New(api, logger)
	log.Fatal(app.Listen(config.Current.ListenAddr))
}
