package repository

import (
	"context"

	"github.com/pkg/errors"

	"bitbucket.org/novatechnologies/spychart/domain"
	"bitbucket.org/novatechnologies/spychart/infra"
	"bitbucket.org/novatechnologies/spychart/infra/mongo"
	"bitbucket.org/novatechnologies/spychart/infra/postgres"
)

// Open connects the bar store selected by STORAGE_DRIVER. The returned
// closer releases the connection.
func Open(ctx context.Context, conf infra.Config) (domain.BarRepository, func(context.Context) error, error) {
	symbol := conf.ChartConfig.Symbol

	switch conf.StorageConfig.Driver {
	case infra.StoragePostgres:
		db, err := postgres.NewDB(ctx, conf.DbConfig)
		if err != nil {
			return nil, nil, err
		}
		repo := NewMinuteData(db, symbol)
		if err = repo.Migrate(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return repo, func(context.Context) error { return db.Close() }, nil

	case infra.StorageMongo:
		client, err := mongo.NewMongoClient(ctx, conf.MongoDbConfig)
		if err != nil {
			return nil, nil, err
		}
		coll, err := mongo.GetOrCreateMinutesCollection(ctx, client, conf.MongoDbConfig)
		if err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, err
		}
		return NewCandle(coll, symbol), client.Disconnect, nil
	}

	return nil, nil, errors.Errorf("unknown storage driver %q", conf.StorageConfig.Driver)
}
