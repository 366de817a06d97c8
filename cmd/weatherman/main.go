package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/i474232898/weatherman/internal/api/http"
	"github.com/i474232898/weatherman/internal/chart"
	"github.com/i474232898/weatherman/internal/cli"
	"github.com/i474232898/weatherman/internal/config"
	"github.com/i474232898/weatherman/internal/ingest"
	"github.com/i474232898/weatherman/internal/logging"
	"github.com/i474232898/weatherman/internal/scheduler"
	"github.com/i474232898/weatherman/internal/weather"
)

const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// options holds the parsed command line.
type options struct {
	year      string
	month     string
	chartDate string
	serve     bool
	path      string
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("weatherman", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&opts.year, "e", "", "for a given year (YYYY) display the highest temperature, lowest temperature and most humid day")
	fs.StringVar(&opts.month, "a", "", "for a given month (YYYY/MM) display the highest and lowest mean temperature and average humidity")
	fs.StringVar(&opts.chartDate, "c", "", "for a given month (YYYY/MM) draw highest and lowest temperature bars for each day")
	fs.BoolVar(&opts.serve, "serve", false, "serve reports over HTTP instead of printing them")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "usage: weatherman [-e YYYY] [-a YYYY/MM] [-c YYYY/MM] [-serve] [path]")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 1 {
		fs.Usage()
		return opts, errors.New("too many arguments")
	}
	opts.path = fs.Arg(0)

	if opts.year == "" && opts.month == "" && opts.chartDate == "" && !opts.serve {
		fs.Usage()
		return opts, errors.New("no report requested")
	}
	return opts, nil
}

// query is a validated set of report requests.
type query struct {
	year      *int
	month     *weather.MonthKey
	chartDate *weather.MonthKey
}

func parseQuery(opts options) (query, error) {
	var q query

	if opts.year != "" {
		year, err := cli.ParseYear(opts.year)
		if err != nil {
			return q, err
		}
		q.year = &year
	}
	if opts.month != "" {
		year, month, err := cli.ParseYearMonth(opts.month)
		if err != nil {
			return q, err
		}
		q.month = &weather.MonthKey{Year: year, Month: month}
	}
	if opts.chartDate != "" {
		year, month, err := cli.ParseYearMonth(opts.chartDate)
		if err != nil {
			return q, err
		}
		q.chartDate = &weather.MonthKey{Year: year, Month: month}
	}
	return q, nil
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	q, err := parseQuery(opts)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return exitError
	}

	// Reports own stdout and stderr; only problems are logged outside serve mode.
	if !opts.serve && cfg.LogLevel < slog.LevelWarn {
		cfg.LogLevel = slog.LevelWarn
	}
	logger := logging.New(stderr, *cfg, "weatherman")
	service := weather.NewService(newLoader(opts.path, cfg, logger), logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := service.Reload(ctx); err != nil {
		fmt.Fprintf(stderr, "failed to read weather files: %v\n", err)
		return exitError
	}

	if opts.serve {
		if err := serve(ctx, cfg, service, logger); err != nil {
			logger.Error("server stopped", "error", err)
			return exitError
		}
		return exitOK
	}

	return report(q, cfg, service, stdout, stderr)
}

// newLoader picks the reading source: an explicit path wins, then configured
// remote files, then the configured data directory.
func newLoader(path string, cfg *config.AppConfig, logger *slog.Logger) weather.Loader {
	if path == "" && len(cfg.RemoteFiles) > 0 {
		client := &http.Client{Timeout: cfg.HTTPTimeout}
		return ingest.NewHTTPLoader(client, cfg.RemoteFiles, logger)
	}
	if path == "" {
		path = cfg.DataDir
	}
	return ingest.NewDirLoader(path, logger)
}

// report prints the requested reports in the order yearly, monthly, chart.
// A report with no data is reported on stderr and the remaining reports
// still run.
func report(q query, cfg *config.AppConfig, service *weather.Service, stdout, stderr io.Writer) int {
	code := exitOK

	if q.year != nil {
		calc, err := service.Yearly(*q.year)
		if err != nil {
			code = max(code, printError(stderr, err, fmt.Sprint(*q.year)))
		} else {
			fmt.Fprintln(stdout, calc)
		}
	}

	if q.month != nil {
		calc, err := service.Monthly(q.month.Year, q.month.Month)
		if err != nil {
			code = max(code, printError(stderr, err, q.month.String()))
		} else {
			fmt.Fprintln(stdout, calc)
		}
	}

	if q.chartDate != nil {
		calc, err := service.Monthly(q.chartDate.Year, q.chartDate.Month)
		if err != nil {
			return max(code, printError(stderr, err, q.chartDate.String()))
		}

		var chartOpts []chart.Option
		if !cfg.ChartColor {
			chartOpts = append(chartOpts, chart.WithoutColor())
		}
		if err := chart.New(stdout, chartOpts...).Render(calc); err != nil {
			fmt.Fprintf(stderr, "failed to draw chart: %v\n", err)
			return exitError
		}
	}

	return code
}

func printError(stderr io.Writer, err error, period string) int {
	switch {
	case errors.Is(err, weather.ErrMissingMetric):
		fmt.Fprintf(stderr, "readings for %s are missing required values\n", period)
	case errors.Is(err, weather.ErrNotFound):
		fmt.Fprintf(stderr, "no readings found for %s\n", period)
	default:
		fmt.Fprintf(stderr, "application error: %v\n", err)
	}
	return exitError
}

func serve(ctx context.Context, cfg *config.AppConfig, service *weather.Service, logger *slog.Logger) error {
	sched := scheduler.New(cfg.ReloadInterval, service, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()

	app := httpapi.NewApp(service)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", "port", cfg.Port)
		errCh <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return app.ShutdownWithContext(shutdownCtx)
}
