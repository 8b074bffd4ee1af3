package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/santoshdahal12/licensegate/internal/config"
	"github.com/santoshdahal12/licensegate/internal/models"
	"github.com/santoshdahal12/licensegate/internal/report"
	"github.com/santoshdahal12/licensegate/internal/resolver"
	"github.com/santoshdahal12/licensegate/internal/workspace"
	"github.com/santoshdahal12/licensegate/pkg/registry"
)

// ecosystemList collects repeated -exclude flags.
type ecosystemList []models.Ecosystem

func (l *ecosystemList) String() string {
	names := make([]string, len(*l))
	for i, eco := range *l {
		names[i] = eco.String()
	}
	return strings.Join(names, ",")
}

func (l *ecosystemList) Set(value string) error {
	eco, err := models.ParseEcosystem(value)
	if err != nil {
		return err
	}
	*l = append(*l, eco)
	return nil
}

func main() {
	os.Exit(run())
}

func run() int {
	// .env files are a local-dev convenience; absence is fine.
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	env := config.Load()

	var (
		online     bool
		policyPath string
		format     string
		outputFile string
		pretty     bool
		noRecurse  bool
		workers    int
		batchSize  int
		verbose    bool
		quiet      bool
		exclude    ecosystemList
	)

	flag.BoolVar(&online, "online", false, "Resolve missing licenses from package registries")
	flag.StringVar(&policyPath, "config", env.PolicyPath, "Policy config file applied to every project")
	flag.StringVar(&format, "report", "terminal", "Report format: terminal or json")
	flag.StringVar(&outputFile, "out", "", "Output file path (default: stdout)")
	flag.BoolVar(&pretty, "pretty", false, "Pretty print JSON output (ignored with -report terminal)")
	flag.BoolVar(&noRecurse, "no-recurse", false, "Scan the path as a single project instead of discovering nested ones")
	flag.IntVar(&workers, "workers", env.Workers, "Concurrent project scans (default: CPU count)")
	flag.IntVar(&batchSize, "batch-size", env.BatchSize, "Registry lookups in flight per batch")
	flag.BoolVar(&verbose, "verbose", false, "Include passing dependencies in the report and enable debug logging")
	flag.BoolVar(&quiet, "quiet", false, "Print only the summary line")
	flag.Var(&exclude, "exclude", "Ecosystem to skip (repeatable): rust, python, java, node, dotnet")
	flag.Parse()

	root := "."
	if flag.NArg() > 0 {
		root = flag.Arg(0)
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving path: %v\n", err)
		return 2
	}

	if format != "terminal" && format != "json" {
		fmt.Fprintf(os.Stderr, "Unknown report format: %s\n", format)
		return 2
	}

	log := newLogger(verbose)
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var client *registry.Client
	if online {
		client = registry.NewClient(env.Timeout)
	}
	res := resolver.New(client, batchSize, log)
	pipeline := workspace.NewPipeline(workspace.DefaultScanners(), res, online, log)
	scanner := workspace.NewScanner(pipeline, log)

	result, err := scanner.Scan(ctx, absRoot, workspace.Options{
		Recurse:        !noRecurse,
		Workers:        workers,
		ConfigOverride: policyPath,
		Exclude:        exclude,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error scanning %s: %v\n", absRoot, err)
		return 2
	}

	var writer io.Writer = os.Stdout
	if outputFile != "" {
		file, err := os.Create(outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			return 2
		}
		defer file.Close()
		writer = file
	}

	if format == "json" {
		if err := report.WriteJSON(writer, result, pretty); err != nil {
			fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
			return 2
		}
	} else {
		report.WriteTerminal(writer, result, report.Options{Verbose: verbose, Quiet: quiet})
	}

	if result.HasErrors() {
		return 1
	}
	return 0
}

// newLogger builds a console logger on stderr so log lines never mix into
// the report on stdout.
func newLogger(verbose bool) *zap.Logger {
	level := zap.WarnLevel
	if verbose {
		level = zap.DebugLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	cfg.OutputPaths = []string{"stderr"}
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	log, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}
