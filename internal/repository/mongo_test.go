package repository

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"bitbucket.org/novatechnologies/spychart/domain"
)

func candleDoc(ts time.Time, o, h, l, c, v string) bson.D {
	dec := func(s string) primitive.Decimal128 {
		d, _ := primitive.ParseDecimal128(s)
		return d
	}
	return bson.D{
		{"_id", primitive.NewObjectID()},
		{"s", "SPY"},
		{"o", dec(o)},
		{"h", dec(h)},
		{"l", dec(l)},
		{"c", dec(c)},
		{"v", dec(v)},
		{"t", primitive.NewDateTimeFromTime(ts)},
	}
}

func TestCandle_Latest(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	newest := time.Date(2024, 3, 1, 14, 31, 0, 0, time.UTC)
	mt.Run("returns oldest first", func(mt *mtest.T) {
		r := NewCandle(mt.Coll, "SPY")
		first := mtest.CreateCursorResponse(1, "spychart.minutes", mtest.FirstBatch,
			candleDoc(newest, "101", "102", "100.5", "101.5", "2000"),
			candleDoc(newest.Add(-time.Minute), "100", "101.25", "99.5", "101", "1500"),
		)
		killCursors := mtest.CreateCursorResponse(0, "spychart.minutes", mtest.NextBatch)
		mt.AddMockResponses(first, killCursors)

		bars, err := r.Latest(context.Background(), 2)
		require.NoError(t, err)
		require.Len(t, bars, 2)
		assert.True(t, bars[0].Timestamp.Equal(newest.Add(-time.Minute)))
		assert.True(t, bars[1].Timestamp.Equal(newest))
		assert.True(t, decimal.RequireFromString("101.25").Equal(bars[0].High))
		assert.Equal(t, int64(1500), bars[0].Volume)
		assert.Equal(t, "SPY", bars[0].Symbol)
	})

	mt.Run("query failure", func(mt *mtest.T) {
		r := NewCandle(mt.Coll, "SPY")
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad query",
		}))

		_, err := r.Latest(context.Background(), 2)
		assert.Error(t, err)
	})
}

func TestCandle_Between(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("success", func(mt *mtest.T) {
		r := NewCandle(mt.Coll, "SPY")
		day := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
		first := mtest.CreateCursorResponse(1, "spychart.minutes", mtest.FirstBatch,
			candleDoc(day.Add(14*time.Hour+30*time.Minute), "100", "101", "99", "100.5", "10"),
		)
		killCursors := mtest.CreateCursorResponse(0, "spychart.minutes", mtest.NextBatch)
		mt.AddMockResponses(first, killCursors)

		bars, err := r.Between(context.Background(), day, day.AddDate(0, 0, 1))
		require.NoError(t, err)
		assert.Len(t, bars, 1)
	})
}

func TestCandle_LatestTimestamp(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("no data", func(mt *mtest.T) {
		r := NewCandle(mt.Coll, "SPY")
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "spychart.minutes", mtest.FirstBatch))

		_, err := r.LatestTimestamp(context.Background())
		assert.ErrorIs(t, err, domain.ErrNoData)
	})

	mt.Run("max time", func(mt *mtest.T) {
		r := NewCandle(mt.Coll, "SPY")
		ts := time.Date(2024, 3, 1, 20, 59, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "spychart.minutes", mtest.FirstBatch,
			bson.D{{"_id", "SPY"}, {"t", primitive.NewDateTimeFromTime(ts)}},
		))

		got, err := r.LatestTimestamp(context.Background())
		require.NoError(t, err)
		assert.True(t, got.Equal(ts))
	})
}

func TestCandle_Save(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	defer mt.Close()

	mt.Run("upserts", func(mt *mtest.T) {
		r := NewCandle(mt.Coll, "SPY")
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 2},
			bson.E{Key: "nModified", Value: 0},
		))

		err := r.Save(context.Background(), testBars(time.Date(2024, 3, 1, 14, 30, 0, 0, time.UTC), 2))
		require.NoError(t, err)
	})

	mt.Run("nothing to save", func(mt *mtest.T) {
		r := NewCandle(mt.Coll, "SPY")
		assert.NoError(t, r.Save(context.Background(), nil))
	})
}
