package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/matryer/way"
	log "github.com/sirupsen/logrus"
	"github.com/zucenko/stealth/server"
	"github.com/zucenko/stealth/sim"
	"github.com/zucenko/stealth/store"
)

type Server struct {
	router     *way.Router
	GameServer *server.GameServer
}

func main() {
	configPath := flag.String("config", "", "scenario yaml (default: reference scenario)")
	dbPath := flag.String("db", "data/results.sqlite", "results database, empty to disable")
	maxSessions := flag.Int("max_sessions", 256, "concurrent game sessions, 0 for no limit")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env loaded: %v", err)
	}
	if lvl, err := log.ParseLevel(os.Getenv("LOG_LEVEL")); err == nil {
		log.SetLevel(lvl)
	}

	cfg := sim.DefaultConfig()
	if *configPath != "" {
		var err error
		cfg, err = sim.LoadConfig(*configPath)
		if err != nil {
			log.Fatalf("config: %v", err)
		}
	}

	var st *store.SQLiteStore
	if *dbPath != "" {
		var err error
		st, err = store.OpenSQLite(*dbPath)
		if err != nil {
			log.Fatalf("results db: %v", err)
		}
	}

	Server := Server{
		GameServer: server.NewGameServer(cfg, st),
	}
	Server.GameServer.MaxSessions = *maxSessions
	go Server.GameServer.Loop()
	Server.routes()

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		log.Info("shutting down")
		Server.GameServer.Stop()
		if st != nil {
			if err := st.Close(); err != nil {
				log.Warnf("results db close: %v", err)
			}
		}
		os.Exit(0)
	}()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
		log.Printf("Defaulting to port %s", port)
	}
	log.WithFields(log.Fields{
		"grid":   cfg.GridSize,
		"tick":   cfg.TickInterval(),
		"guards": len(cfg.Agents),
	}).Info("serving stealth missions")
	log.Fatalln(http.ListenAndServe(":"+port, Server.router))
}
