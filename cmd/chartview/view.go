package main

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"bitbucket.org/novatechnologies/spychart/chart"
	"bitbucket.org/novatechnologies/spychart/chart/headless"
	"bitbucket.org/novatechnologies/spychart/client/chartdata"
	"bitbucket.org/novatechnologies/spychart/domain"
	"bitbucket.org/novatechnologies/spychart/infra"
)

const containerID = "chart"

type viewOptions struct {
	url           string
	at            int64
	x, y          float64
	width, height float64
}

func newViewCmd(configPath *string) *cobra.Command {
	opts := viewOptions{}

	cmd := &cobra.Command{
		Use:   "view",
		Short: "Load the chart headlessly and print the legend under the cursor",
		Long: `Builds the chart display against the chart server, waits for the data
load and moves the crosshair to --at (the newest bar by default).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.url == "" {
				conf, err := infra.LoadConfig(*configPath)
				if err != nil {
					return err
				}
				opts.url = conf.ChartConfig.ServerURL
			}
			if !cmd.Flags().Changed("x") {
				opts.x = opts.width / 2
			}
			if !cmd.Flags().Changed("y") {
				opts.y = opts.height / 2
			}
			return runView(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.url, "url", "", "chart server base url (CHART_SERVER_URL by default)")
	cmd.Flags().Int64Var(&opts.at, "at", 0, "bar time in unix seconds")
	cmd.Flags().Float64Var(&opts.x, "x", 0, "cursor x inside the chart")
	cmd.Flags().Float64Var(&opts.y, "y", 0, "cursor y inside the chart")
	cmd.Flags().Float64Var(&opts.width, "width", 800, "chart width")
	cmd.Flags().Float64Var(&opts.height, "height", 600, "chart height")

	return cmd
}

func runView(cmd *cobra.Command, opts viewOptions) error {
	ctx := cmd.Context()

	source, err := chartdata.New(chartdata.Config{ServerURL: opts.url}, chartdata.NewErrorProcessor(nil))
	if err != nil {
		return err
	}

	doc := headless.NewDocument()
	container := doc.AddContainer(containerID, opts.width, opts.height)
	engine := headless.NewEngine()

	display, err := chart.New(ctx, doc, engine, containerID, source)
	if err != nil {
		return err
	}
	defer display.Close()

	select {
	case <-display.Done():
	case <-ctx.Done():
		return ctx.Err()
	}
	if err = display.Err(); err != nil {
		return err
	}

	surface := engine.Surfaces()[0]
	at := domain.UTCTimestamp(opts.at)
	if at == 0 {
		price, ok := surface.Series()[0].(*headless.CandlestickSeries)
		if !ok || len(price.Data()) == 0 {
			return errors.New("chart server returned no bars")
		}
		data := price.Data()
		at = data[len(data)-1].Time
	}
	surface.MoveCrosshair(at, chart.Point{X: opts.x, Y: opts.y})

	regions := make([]string, 0, 3)
	for _, item := range container.FindByClass("legend-item") {
		regions = append(regions, item.InnerHTML())
	}
	lines, err := parseLegend(regions)
	if err != nil {
		return errors.Wrap(err, "can't parse legend")
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), at.Time().Format("2006-01-02 15:04 MST"))
	if err == nil {
		_, err = fmt.Fprintln(cmd.OutOrStdout(), renderLegend(lines))
	}
	return err
}
