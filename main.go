package main

import (
	"log"
	"os"

	"hybrid_gw/internal/bootstrap"
	"hybrid_gw/internal/config"
	"hybrid_gw/internal/version"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	log.Println(version.GetVersion())

	conf, err := config.MustLoad()
	if err != nil {
		log.Fatalf("Failed to load config: %s", err)
	}

	app, err := bootstrap.New(conf)
	if err != nil {
		log.Fatalf("Failed to initialize: %s", err)
	}

	if err = app.Run(); err != nil {
		log.Fatalf("Service terminated: %s", err)
	}
}
