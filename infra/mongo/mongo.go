package mongo

import (
	"context"
	"time"

	"github.com/AlekSi/pointer"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bitbucket.org/novatechnologies/spychart/infra"
	"bitbucket.org/novatechnologies/spychart/infra/logger"
)

func NewMongoClient(
	ctx context.Context,
	config infra.MongoDbConfig,
) (*mongo.Client, error) {
	timeout := time.Duration(config.TimeOut) * time.Second
	clientOptions := options.Client().
		ApplyURI(config.ConnectionUrl).
		SetMaxPoolSize(100).
		SetConnectTimeout(timeout)

	connectCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, clientOptions)
	if err != nil {
		logger.FromContext(ctx).WithError(err).Error("[infra.Mongo] Failed connect to mongo")
		return nil, errors.Wrap(err, "mongo connect")
	}
	if err = client.Ping(connectCtx, nil); err != nil {
		return nil, errors.Wrap(err, "mongo ping")
	}

	return client, nil
}

// GetOrCreateMinutesCollection returns the minutes collection, creating it
// with a unique (symbol, time) index on first use. Bars are upserted, which
// time series collections don't allow, so it is a regular collection.
func GetOrCreateMinutesCollection(
	ctx context.Context,
	client *mongo.Client,
	config infra.MongoDbConfig,
) (*mongo.Collection, error) {
	db := client.Database(config.DatabaseName)
	name := config.MinuteCandleCollectionName

	exists, err := collectionExists(ctx, db, name)
	if err != nil {
		return nil, err
	}
	if exists {
		logger.FromContext(ctx).Infof("[infra.Mongo] Using existing collection %s", name)
		return db.Collection(name), nil
	}

	if err = db.CreateCollection(ctx, name, minutesCollectionOptions()); err != nil {
		return nil, errors.Wrapf(err, "create collection %s", name)
	}
	coll := db.Collection(name)
	_, err = coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{"s", 1}, {"t", -1}},
		Options: &options.IndexOptions{
			Name:   pointer.ToString("minutes"),
			Unique: pointer.ToBool(true),
		},
	})
	if err != nil {
		return nil, errors.Wrap(err, "create minutes index")
	}

	return coll, nil
}

func minutesCollectionOptions() *options.CreateCollectionOptions {
	return options.CreateCollection()
}

func collectionExists(ctx context.Context, db *mongo.Database, name string) (bool, error) {
	names, err := db.ListCollectionNames(ctx, bson.D{{"name", name}})
	if err != nil {
		return false, errors.Wrap(err, "list collections")
	}
	return len(names) > 0, nil
}
