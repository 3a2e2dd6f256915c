package main

import (
	"context"
	"os"

	"shop-service/client/api"
	"shop-service/client/cart"
	"shop-service/client/cli"
	"shop-service/client/config"
	"shop-service/client/localstore"
	"shop-service/logging"

	"go.uber.org/zap"
)

func main() {
	logger, err := logging.New("warn")
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	cfg := config.LoadConfig()

	ctx := context.Background()

	store, err := localstore.Open(ctx, cfg.LocalDBPath)
	if err != nil {
		logger.Fatal("Failed to open local storage", zap.String("path", cfg.LocalDBPath), zap.Error(err))
	}
	defer store.Close()

	persister := cart.NewKVPersister(store, localstore.KeyCart)
	c, err := cart.Open(persister)
	if err != nil {
		logger.Warn("Saved cart is unreadable, starting with an empty cart", zap.Error(err))
		c = cart.New(persister)
	}

	client := api.New(cfg.ServerURL, cfg.RequestTimeout)
	cli.NewApp(client, store, c, os.Stdin, os.Stdout).Run(ctx)
}
