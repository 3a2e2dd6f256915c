package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"shop-service/config"
	"shop-service/database"
	"shop-service/flagx"
	"shop-service/logging"
	"shop-service/server"

	"go.uber.org/zap"
)

var commandFlags = []string{"-command", "--command", "-name", "--name", "-dir", "--dir"}

func main() {
	fs := flag.NewFlagSet("shop-service", flag.ExitOnError)
	commandFlag := fs.String("command", "start", "Command to run: start | migrate | create-migration")
	nameFlag := fs.String("name", "", "Migration name (alphanum+underscore only)")
	dirFlag := fs.String("dir", "./database/migrations/sqlite", "Target directory for the new .sql file")
	_ = fs.Parse(flagx.FilterArgs(os.Args[1:], commandFlags))

	if *commandFlag == "" {
		fmt.Println("Usage: go run main.go --command <command-name> [... other options]")
		os.Exit(1)
	}

	if *commandFlag == "create-migration" {
		if *nameFlag == "" {
			fmt.Println("create-migration requires --name")
			os.Exit(1)
		}
		if err := database.CreateMigration(*dirFlag, *nameFlag); err != nil {
			fmt.Println("Failed to create migration:", err)
			os.Exit(1)
		}
		return
	}

	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid configuration:", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Println("Failed to initialize logger:", err)
		os.Exit(1)
	}
	defer logger.Sync()

	switch *commandFlag {
	case "start":
		logger.Info("Starting shop service...")
		if err := server.StartServer(cfg, logger); err != nil {
			logger.Error("Server stopped with error", zap.Error(err))
			os.Exit(1)
		}
	case "migrate":
		dbConn, err := database.InitializeDatabase(context.Background(), cfg, logger)
		if err != nil {
			logger.Error("Migration failed", zap.Error(err))
			os.Exit(1)
		}
		dbConn.Close()
	default:
		fmt.Printf("Unknown command %q\n", *commandFlag)
		os.Exit(1)
	}
}
