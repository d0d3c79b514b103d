package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/AlekSi/pointer"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bitbucket.org/novatechnologies/spychart/domain"
	"bitbucket.org/novatechnologies/spychart/internal/model"
)

// Candle repository working only with minutes collection
type Candle struct {
	minutesCollection *mongo.Collection
	symbol            string
}

// NewCandle return new Candle repository
func NewCandle(minutesCollection *mongo.Collection, symbol string) *Candle {
	return &Candle{minutesCollection: minutesCollection, symbol: symbol}
}

func (r *Candle) Latest(ctx context.Context, limit int) ([]domain.Bar, error) {
	opts := options.Find().
		SetSort(bson.D{{"t", -1}}).
		SetLimit(int64(limit))
	cursor, err := r.minutesCollection.Find(ctx, bson.D{{"s", r.symbol}}, opts)
	if err != nil {
		return nil, fmt.Errorf("can't find latest candles %w", err)
	}
	bars, err := r.decode(ctx, cursor)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(bars)-1; i < j; i, j = i+1, j-1 {
		bars[i], bars[j] = bars[j], bars[i]
	}
	return bars, nil
}

func (r *Candle) Between(ctx context.Context, from, to time.Time) ([]domain.Bar, error) {
	filter := bson.D{
		{"s", r.symbol},
		{"t", bson.D{
			{"$gte", primitive.NewDateTimeFromTime(from)},
			{"$lt", primitive.NewDateTimeFromTime(to)},
		}},
	}
	cursor, err := r.minutesCollection.Find(ctx, filter, options.Find().SetSort(bson.D{{"t", 1}}))
	if err != nil {
		return nil, fmt.Errorf("can't find candles between %s and %s %w", from, to, err)
	}
	return r.decode(ctx, cursor)
}

func (r *Candle) LatestTimestamp(ctx context.Context) (time.Time, error) {
	matchStage := bson.D{{"$match", bson.D{{"s", r.symbol}}}}
	groupStage := bson.D{{"$group", bson.D{
		{"_id", "$s"},
		{"t", bson.D{{"$max", "$t"}}},
	}}}
	cursor, err := r.minutesCollection.Aggregate(ctx, mongo.Pipeline{matchStage, groupStage})
	if err != nil {
		return time.Time{}, fmt.Errorf("can't aggregate latest timestamp %w", err)
	}
	var res []struct {
		T time.Time `bson:"t"`
	}
	if err = cursor.All(ctx, &res); err != nil {
		return time.Time{}, fmt.Errorf("can't serialise latest timestamp %w", err)
	}
	if len(res) == 0 {
		return time.Time{}, domain.ErrNoData
	}
	return res[0].T.UTC(), nil
}

// Save upserts bars keyed by symbol and open time.
func (r *Candle) Save(ctx context.Context, bars []domain.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	models := make([]mongo.WriteModel, 0, len(bars))
	for _, b := range bars {
		c, err := model.NewCandle(b)
		if err != nil {
			return fmt.Errorf("can't convert bar %s %w", b.Timestamp, err)
		}
		models = append(models, mongo.NewReplaceOneModel().
			SetFilter(bson.D{{"s", c.Symbol}, {"t", c.OpenTime}}).
			SetReplacement(c).
			SetUpsert(true),
		)
	}
	_, err := r.minutesCollection.BulkWrite(ctx, models, &options.BulkWriteOptions{
		Ordered: pointer.ToBool(false),
	})
	if err != nil {
		return fmt.Errorf("can't save candles %w", err)
	}
	return nil
}

func (r *Candle) decode(ctx context.Context, cursor *mongo.Cursor) ([]domain.Bar, error) {
	data := make([]*model.Candle, 0)
	if err := cursor.All(ctx, &data); err != nil {
		return nil, fmt.Errorf("can't serialise candle %w", err)
	}
	bars := make([]domain.Bar, 0, len(data))
	for _, c := range data {
		b, err := c.Bar()
		if err != nil {
			return nil, fmt.Errorf("can't convert candle %s %w", c.OpenTime, err)
		}
		bars = append(bars, b)
	}
	return bars, nil
}
