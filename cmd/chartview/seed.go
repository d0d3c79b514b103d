package main

import (
	"fmt"
	"time"

	finance "github.com/piquette/finance-go"
	fchart "github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"bitbucket.org/novatechnologies/spychart/domain"
	"bitbucket.org/novatechnologies/spychart/infra"
	"bitbucket.org/novatechnologies/spychart/infra/logger"
	"bitbucket.org/novatechnologies/spychart/internal/repository"
)

type seedOptions struct {
	symbol   string
	days     int
	interval string
}

func newSeedCmd(configPath *string) *cobra.Command {
	opts := seedOptions{}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load recent regular-session bars from Yahoo Finance into storage",
		RunE: func(cmd *cobra.Command, args []string) error {
			conf, err := infra.LoadConfig(*configPath)
			if err != nil {
				return err
			}
			if err = conf.Validate(); err != nil {
				return err
			}
			if opts.symbol == "" {
				opts.symbol = conf.ChartConfig.Symbol
			}
			if err = checkSeedSymbol(conf, opts.symbol); err != nil {
				return err
			}
			interval := domain.Interval(opts.interval)
			if !interval.IsValid() {
				return errors.Errorf("unsupported interval %q", opts.interval)
			}
			if limit := interval.MaxHistoryDays(); opts.days > limit {
				opts.days = limit
			}
			return runSeed(cmd, conf, opts)
		},
	}

	cmd.Flags().StringVar(&opts.symbol, "symbol", "", "ticker (CHART_SYMBOL by default)")
	cmd.Flags().IntVar(&opts.days, "days", 5, "days of history, capped by what Yahoo keeps for the interval")
	cmd.Flags().StringVar(&opts.interval, "interval", "1m", "bar interval (1m, 5m, 1h, 1d)")

	return cmd
}

func runSeed(cmd *cobra.Command, conf infra.Config, opts seedOptions) error {
	ctx := cmd.Context()
	log := logger.FromContext(ctx).WithField("symbol", opts.symbol)

	end := time.Now()
	start := end.AddDate(0, 0, -opts.days)
	iter := fchart.Get(&fchart.Params{
		Symbol:   opts.symbol,
		Start:    datetime.New(&start),
		End:      datetime.New(&end),
		Interval: datetime.Interval(opts.interval),
	})

	bars := make([]domain.Bar, 0)
	for iter.Next() {
		if b, ok := toBar(opts.symbol, iter.Bar()); ok {
			bars = append(bars, b)
		}
	}
	if err := iter.Err(); err != nil {
		return errors.Wrapf(err, "failed to get bars for %s", opts.symbol)
	}
	log.WithField("bars", len(bars)).Info("fetched bars")

	repo, closeStorage, err := repository.Open(ctx, conf)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := closeStorage(ctx); cerr != nil {
			log.WithError(cerr).Warn("can't close storage")
		}
	}()

	if err = repo.Save(ctx, bars); err != nil {
		return err
	}
	_, err = fmt.Fprintf(cmd.OutOrStdout(), "saved %d %s bars\n", len(bars), opts.symbol)
	return err
}

// checkSeedSymbol rejects symbols the configured storage can't keep apart.
// minute_data has no symbol column, so postgres holds CHART_SYMBOL only.
func checkSeedSymbol(conf infra.Config, symbol string) error {
	if conf.StorageConfig.Driver == infra.StoragePostgres && symbol != conf.ChartConfig.Symbol {
		return errors.Errorf(
			"postgres storage holds %s bars only, can't seed %s", conf.ChartConfig.Symbol, symbol,
		)
	}
	return nil
}

// toBar skips the empty bars Yahoo reports for halted minutes.
func toBar(symbol string, b *finance.ChartBar) (domain.Bar, bool) {
	if b == nil || b.Close.IsZero() || b.High.LessThan(b.Low) {
		return domain.Bar{}, false
	}
	return domain.Bar{
		Symbol:    symbol,
		Timestamp: time.Unix(int64(b.Timestamp), 0).UTC(),
		Open:      b.Open,
		High:      b.High,
		Low:       b.Low,
		Close:     b.Close,
		Volume:    int64(b.Volume),
	}, true
}
