package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/goccy/go-json"
	"github.com/jessevdk/go-flags"
	"github.com/scylladb/termtables"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/araddon/strptime"
	"github.com/araddon/strptime/internal/config"
)

type option struct {
	Format    string           `description:"format to parse with (env STRPTIME_FORMAT)" long:"format" short:"f"`
	Type      string           `description:"what to build from the matched fields" long:"type" short:"t" default:"fields" choice:"fields" choice:"date" choice:"time" choice:"naive" choice:"datetime"`
	PivotYear int              `description:"pivot year for %y, 0-99 (env STRPTIME_PIVOT_YEAR)" long:"pivot-year"`
	Config    string           `description:"YAML or JSON options document (env STRPTIME_CONFIG)" long:"config"`
	JSON      bool             `description:"write JSON lines instead of a table" long:"json"`
	Workers   int              `description:"inputs parsed concurrently (env STRPTIME_WORKERS)" long:"workers"`
	LogLevel  config.LogLevel  `description:"log level, debug shows every failed parse (env STRPTIME_LOG_LEVEL)" long:"log-level"`
	LogFormat config.LogFormat `description:"log format, console or json (env STRPTIME_LOG_FORMAT)" long:"log-format"`
}

type exitCode int

const (
	exitOK    exitCode = 0
	exitError exitCode = 1
	// exitFailed means the tool ran but some input did not parse.
	exitFailed exitCode = 2
)

func main() {
	os.Exit(int(run()))
}

func run() exitCode {
	args, opt, err := parseOpt()
	if err != nil {
		flagsErr, ok := err.(*flags.Error)
		if !ok {
			fmt.Fprintf(os.Stderr, "[strptime] %v\n", err)
			return exitError
		}
		if flagsErr.Type == flags.ErrHelp {
			return exitOK
		}
		return exitError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	results, err := runParse(ctx, args, opt, os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[strptime] %v\n", err)
		return exitError
	}
	if opt.JSON {
		err = writeJSON(os.Stdout, results)
	} else {
		err = writeTable(os.Stdout, results)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "[strptime] %v\n", err)
		return exitError
	}
	for _, r := range results {
		if r.Error != "" {
			return exitFailed
		}
	}
	return exitOK
}

// parseOpt fills the options from the environment first so that flags
// given on the command line override them.
func parseOpt() ([]string, option, error) {
	env, err := config.FromEnv()
	if err != nil {
		return nil, option{}, err
	}
	opt := option{
		Format:    env.Format,
		PivotYear: env.PivotYear,
		Config:    env.ConfigPath,
		Workers:   env.Workers,
		LogLevel:  env.LogLevel,
		LogFormat: env.LogFormat,
	}
	parser := flags.NewParser(&opt, flags.Default)
	parser.Usage = "[OPTIONS] [INPUT...]\n\nInputs are read from stdin, one per line, when none are given."
	args, err := parser.Parse()
	return args, opt, err
}

func runParse(ctx context.Context, args []string, opt option, stdin io.Reader) ([]result, error) {
	logger, err := config.NewLogger(opt.LogLevel, opt.LogFormat)
	if err != nil {
		return nil, err
	}
	defer func() { _ = logger.Sync() }()

	format, err := strptime.Compile(opt.Format)
	if err != nil {
		return nil, err
	}
	opts, err := loadOptions(opt, logger)
	if err != nil {
		return nil, err
	}

	inputs := args
	if len(inputs) == 0 {
		if inputs, err = readLines(stdin); err != nil {
			return nil, err
		}
	}
	logger.Info("parsing",
		zap.String("format", format.String()),
		zap.String("type", opt.Type),
		zap.Int("inputs", len(inputs)),
		zap.Int("workers", opt.Workers))
	return parseAll(ctx, format, opt.Type, inputs, opts, opt.Workers)
}

// loadOptions turns the config document, the pivot year and the logger
// into parse options. The pivot year flag wins over the document.
func loadOptions(opt option, logger *zap.Logger) ([]strptime.Option, error) {
	var opts []strptime.Option
	if opt.Config != "" {
		data, err := os.ReadFile(opt.Config)
		if err != nil {
			return nil, err
		}
		var c *strptime.Config
		switch strings.ToLower(filepath.Ext(opt.Config)) {
		case ".json":
			c, err = strptime.LoadConfigJSON(data)
		default:
			c, err = strptime.LoadConfigYAML(data)
		}
		if err != nil {
			return nil, fmt.Errorf("%s: %w", opt.Config, err)
		}
		if opts, err = c.Options(); err != nil {
			return nil, fmt.Errorf("%s: %w", opt.Config, err)
		}
	}
	if opt.PivotYear >= 0 {
		opts = append(opts, strptime.WithPivotYear(opt.PivotYear))
	}
	return append(opts, strptime.WithLogger(logger)), nil
}

func readLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

type result struct {
	Input  string `json:"input"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// parseAll parses every input with the shared compiled format, at most
// workers at a time. Results keep the input order.
func parseAll(ctx context.Context, format *strptime.Format, kind string, inputs []string, opts []strptime.Option, workers int) ([]result, error) {
	if workers < 1 {
		workers = 1
	}
	results := make([]result, len(inputs))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, input := range inputs {
		i, input := i, input
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			v, err := parseOne(format, kind, input, opts)
			results[i] = result{Input: input, Result: v}
			if err != nil {
				results[i] = result{Input: input, Error: err.Error()}
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func parseOne(format *strptime.Format, kind, input string, opts []strptime.Option) (any, error) {
	switch kind {
	case "date":
		d, err := format.ParseDate(input, opts...)
		return d.String(), err
	case "time":
		t, err := format.ParseTime(input, opts...)
		return t.String(), err
	case "naive":
		n, err := format.ParseNaiveDateTime(input, opts...)
		return n.String(), err
	case "datetime":
		t, err := format.ParseDateTime(input, opts...)
		return t.Format(time.RFC3339Nano), err
	}
	return format.Parse(input, opts...)
}

func writeJSON(w io.Writer, results []result) error {
	enc := json.NewEncoder(w)
	for _, r := range results {
		if err := enc.Encode(r); err != nil {
			return err
		}
	}
	return nil
}

func writeTable(w io.Writer, results []result) error {
	table := termtables.CreateTable()
	table.AddHeaders("Input", "Parsed", "Error")
	for _, r := range results {
		parsed := ""
		if r.Result != nil {
			parsed = fmt.Sprintf("%v", r.Result)
		}
		table.AddRow(r.Input, parsed, r.Error)
	}
	_, err := fmt.Fprintln(w, table.Render())
	return err
}
