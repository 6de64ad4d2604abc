package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/riverwalkmud/samud/internal/antispam"
	"github.com/riverwalkmud/samud/internal/chatfilter"
	"github.com/riverwalkmud/samud/internal/config"
	"github.com/riverwalkmud/samud/internal/database"
	"github.com/riverwalkmud/samud/internal/logger"
	"github.com/riverwalkmud/samud/internal/namefilter"
	"github.com/riverwalkmud/samud/internal/server"
	"github.com/riverwalkmud/samud/internal/world"
)

func main() {
	port := flag.Int("port", 4000, "Telnet server port")
	wsPort := flag.Int("wsport", 4443, "WebSocket server port")
	serverConfigFile := flag.String("config", "data/server.yaml", "Path to server config YAML file")
	roomsFile := flag.String("rooms", "data/rooms.yaml", "Path to rooms YAML file")
	npcsFile := flag.String("npcs", "data/npcs.yaml", "Path to NPCs YAML file")
	itemsFile := flag.String("items", "data/items.yaml", "Path to items YAML file")
	loggingConfig := flag.String("logging", "data/logging.yaml", "Path to logging config YAML file")
	chatFilterConfig := flag.String("chatfilter", "data/chat_filter.yaml", "Path to chat filter config YAML file")
	nameFilterConfig := flag.String("namefilter", "data/name_filter.yaml", "Path to name filter config YAML file")
	flag.Parse()

	// Initialize logger first (before any logging)
	logConfig, _ := logger.LoadConfig(*loggingConfig)
	logger.Initialize(logConfig)

	logger.Info("Starting San Antonio MUD Server")

	serverCfg, err := config.LoadConfig(*serverConfigFile)
	if err != nil {
		logger.Warning("Failed to load server config, using defaults", "path", *serverConfigFile, "error", err)
		serverCfg = config.DefaultConfig()
	}

	content, err := world.LoadContent(*roomsFile, *npcsFile, *itemsFile)
	if err != nil {
		log.Fatalf("Failed to load world content: %v", err)
	}
	logger.Info("World content loaded",
		"rooms", len(content.Rooms),
		"npcs", len(content.NPCs),
		"items", len(content.Items))

	db, err := database.Open(databaseConfig(serverCfg))
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()
	logger.Info("Database initialized", "driver", serverCfg.Database.Driver)

	if err := db.Seed(content); err != nil {
		log.Fatalf("Failed to seed world content: %v", err)
	}

	addr := fmt.Sprintf(":%d", *port)
	srv := server.NewServer(addr, db, serverCfg)

	if len(serverCfg.WebSocket.AllowedOrigins) == 0 {
		logger.Info("WebSocket CORS policy", "mode", "same-origin")
	} else if len(serverCfg.WebSocket.AllowedOrigins) == 1 && serverCfg.WebSocket.AllowedOrigins[0] == "*" {
		logger.Warning("WebSocket CORS allows all origins (not recommended for production)")
	} else {
		logger.Info("WebSocket CORS policy", "allowed_origins", serverCfg.WebSocket.AllowedOrigins)
	}

	filterCfg, err := chatfilter.LoadConfig(*chatFilterConfig)
	if err != nil {
		logger.Warning("Failed to load chat filter config, chat filter disabled", "path", *chatFilterConfig, "error", err)
	} else {
		srv.SetChatFilter(chatfilter.New(filterCfg))
		if filterCfg.Enabled {
			logger.Info("Chat filter enabled", "mode", filterCfg.Mode, "words", len(filterCfg.BannedWords))
		}
		if as := filterCfg.Antispam; as != nil {
			srv.SetAntispamConfig(antispam.ConfigFromYAML(as.Enabled, as.MaxMessages, as.TimeWindowSeconds, as.RepeatCooldownSeconds))
			if as.Enabled {
				logger.Info("Anti-spam enabled", "max_messages", as.MaxMessages, "time_window", as.TimeWindowSeconds)
			}
		}
	}

	nameCfg, err := namefilter.LoadConfig(*nameFilterConfig)
	if err != nil {
		logger.Warning("Failed to load name filter config, name filter disabled", "path", *nameFilterConfig, "error", err)
	} else {
		srv.SetNameFilter(namefilter.New(nameCfg))
		if nameCfg.Enabled {
			logger.Info("Name filter enabled", "banned_words", len(nameCfg.BannedWords), "banned_names", len(nameCfg.BannedNames))
		}
	}

	go func() {
		if err := srv.Start(); err != nil {
			log.Fatalf("Telnet server error: %v", err)
		}
	}()

	wsAddr := fmt.Sprintf(":%d", *wsPort)
	go func() {
		if err := srv.StartWebSocket(wsAddr); err != nil {
			log.Fatalf("WebSocket server error: %v", err)
		}
	}()

	logger.Info("MUD Server running", "telnet_port", *port, "websocket_port", *wsPort)
	logger.Info("Press Ctrl+C to shutdown")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down server")
	srv.Shutdown()
	logger.Info("Server stopped")
}

// databaseConfig maps the server YAML config onto the database package's
// connection settings.
func databaseConfig(cfg *config.ServerConfig) database.Config {
	dbCfg := database.DefaultConfig(cfg.Database.SQLitePath)
	if cfg.Game.StartingRoom != "" {
		dbCfg.StartingRoom = cfg.Game.StartingRoom
	}
	if cfg.Database.Driver != "" {
		dbCfg.Driver = cfg.Database.Driver
	}
	if dbCfg.Driver == "postgres" {
		pg := database.DefaultPostgresConfig()
		pg.Host = cfg.Database.Postgres.Host
		pg.Port = cfg.Database.Postgres.Port
		pg.User = cfg.Database.Postgres.User
		pg.Password = cfg.Database.Postgres.Password
		pg.Database = cfg.Database.Postgres.Database
		if cfg.Database.Postgres.SSLMode != "" {
			pg.SSLMode = cfg.Database.Postgres.SSLMode
		}
		dbCfg.Postgres = pg
	}
	return dbCfg
}
