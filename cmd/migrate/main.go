// Command migrate runs one-off data migrations against the document
// store. Currently it backfills starter subscriptions onto profiles
// created before subscription tracking existed.
package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/agrikit/agrikit/pkg/config"
	"github.com/agrikit/agrikit/pkg/logger"
	appmongo "github.com/agrikit/agrikit/pkg/mongo"
	"github.com/agrikit/agrikit/pkg/subscription"
	"github.com/agrikit/agrikit/pkg/user"
)

func main() {
	log := logger.New(logger.WithProduction("agrikit-migrate"))
	logger.SetAsDefault(log)

	var mongoCfg appmongo.Config
	config.MustLoad(&mongoCfg)

	ctx := context.Background()
	client, err := appmongo.New(ctx, mongoCfg)
	if err != nil {
		log.Error("failed to connect to document store", logger.Error(err))
		os.Exit(1)
	}
	defer client.Disconnect(context.Background()) //nolint:errcheck // process is exiting

	profiles := user.NewMongoStore(client.Database(mongoCfg.DatabaseName))
	migrator := subscription.NewMigrator(profiles, log)

	processed, err := migrator.DemoteToStarter(ctx)
	if err != nil {
		log.Error("migration failed, safe to re-run",
			slog.Int("processed", processed), logger.Error(err))
		os.Exit(1)
	}
	log.Info("migration finished", slog.Int("processed", processed))
}
