package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bitbucket.org/novatechnologies/spychart/domain"
)

// Candle is the stored form of one bar in the minutes collection.
type Candle struct {
	Symbol   string               `bson:"s"`
	Open     primitive.Decimal128 `bson:"o"`
	High     primitive.Decimal128 `bson:"h"`
	Low      primitive.Decimal128 `bson:"l"`
	Close    primitive.Decimal128 `bson:"c"`
	Volume   primitive.Decimal128 `bson:"v"`
	OpenTime time.Time            `bson:"t"`
}

func NewCandle(b domain.Bar) (*Candle, error) {
	c := &Candle{Symbol: b.Symbol, OpenTime: b.Timestamp.UTC()}
	var err error
	if c.Open, err = toDecimal128(b.Open); err != nil {
		return nil, err
	}
	if c.High, err = toDecimal128(b.High); err != nil {
		return nil, err
	}
	if c.Low, err = toDecimal128(b.Low); err != nil {
		return nil, err
	}
	if c.Close, err = toDecimal128(b.Close); err != nil {
		return nil, err
	}
	if c.Volume, err = toDecimal128(decimal.NewFromInt(b.Volume)); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Candle) Bar() (domain.Bar, error) {
	b := domain.Bar{Symbol: c.Symbol, Timestamp: c.OpenTime.UTC()}
	var err error
	if b.Open, err = fromDecimal128(c.Open); err != nil {
		return b, fmt.Errorf("open: %w", err)
	}
	if b.High, err = fromDecimal128(c.High); err != nil {
		return b, fmt.Errorf("high: %w", err)
	}
	if b.Low, err = fromDecimal128(c.Low); err != nil {
		return b, fmt.Errorf("low: %w", err)
	}
	if b.Close, err = fromDecimal128(c.Close); err != nil {
		return b, fmt.Errorf("close: %w", err)
	}
	v, err := fromDecimal128(c.Volume)
	if err != nil {
		return b, fmt.Errorf("volume: %w", err)
	}
	b.Volume = v.IntPart()
	return b, nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	return primitive.ParseDecimal128(d.String())
}

func fromDecimal128(d primitive.Decimal128) (decimal.Decimal, error) {
	return decimal.NewFromString(d.String())
}
