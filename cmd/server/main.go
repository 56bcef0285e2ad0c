package main

import (
	"log"

	"github.com/rizalafandiv1-png/Website-Andikilz-Store/app"
	"github.com/rizalafandiv1-png/Website-Andikilz-Store/app/config"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db := app.MustOpenDB(cfg)
	store := app.NewPostgresStore(db)

	app.InitStripe(cfg)

	generator, err := app.NewOpenAIGenerator(cfg.OpenAI)
	if err != nil {
		log.Fatalf("failed to init generator: %v", err)
	}

	server := app.NewServer(cfg, store, store, generator)
	router, err := server.Routes()
	if err != nil {
		log.Fatalf("failed to initialize router: %v", err)
	}
	router.Run(cfg.Addr)
}
