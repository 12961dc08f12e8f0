package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/spf13/cobra"

	"github.com/9003755/excel-tool/config"
	"github.com/9003755/excel-tool/core"

	// Database drivers
	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// cliSourceName labels the source built from --source when no config file is given.
const cliSourceName = "cli"

type options struct {
	configFile  string
	sourcesFile string
	template    string
	source      string
	month       string
	outputDir   string
	s3Bucket    string
	s3Prefix    string
	verbose     bool
}

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		slog.Error("Generation failed", "error", err)
		os.Exit(1)
	}
}

func run(output io.Writer, args []string) error {
	cmd := newRootCmd(output)
	cmd.SetArgs(args)
	return cmd.Execute()
}

func newRootCmd(output io.Writer) *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "excel-tool",
		Short: "Fill a spreadsheet template once per source row",
		Long: `excel-tool copies a template workbook for every row of a source table,
fills the mapped columns, replaces the month placeholder and writes the
individual workbooks plus one merged workbook.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return execute(cmd.Context(), output, opts)
		},
	}
	cmd.SetOut(output)
	cmd.SetErr(output)

	flags := cmd.Flags()
	flags.StringVar(&opts.configFile, "config", "", "Path to job configuration (YAML)")
	flags.StringVar(&opts.sourcesFile, "sources", "", "Path to source definitions (YAML), replaces the sources of --config")
	flags.StringVar(&opts.template, "template", "", "Template workbook (overrides the config)")
	flags.StringVar(&opts.source, "source", "", "Source table, .xlsx or .csv (used without --config)")
	flags.StringVar(&opts.month, "month", "", "Month 1-12 or $date:month:unit:offset (default: current month)")
	flags.StringVar(&opts.outputDir, "output", "", "Directory for generated files")
	flags.StringVar(&opts.s3Bucket, "s3-bucket", "", "S3 bucket name for uploading output")
	flags.StringVar(&opts.s3Prefix, "s3-prefix", "", "S3 prefix (folder) for uploaded files")
	flags.BoolVar(&opts.verbose, "verbose", false, "Log every month substitution")
	return cmd
}

func execute(ctx context.Context, output io.Writer, opts *options) error {
	if ctx == nil {
		ctx = context.Background()
	}

	level := slog.LevelInfo
	if opts.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	// 1. Load job
	job, sources, err := loadJob(opts)
	if err != nil {
		return err
	}
	src := sources[job.Source]
	slog.Info("Job loaded", "name", job.Name, "template", job.Template, "source", src.Name, "type", src.Type)

	// 2. Fetch source rows
	fetcher, closeFetcher, err := newRowFetcher(ctx, src)
	if err != nil {
		return err
	}
	defer closeFetcher()

	rows, err := core.LoadSourceRows(ctx, fetcher)
	if err != nil {
		return fmt.Errorf("load source %s: %w", src.Name, err)
	}
	slog.Info("Source rows loaded", "count", len(rows))

	// 3. Generate
	runOpts, err := core.NewRunOptions(job, time.Now())
	if err != nil {
		return err
	}
	data, err := os.ReadFile(job.Template)
	if err != nil {
		return fmt.Errorf("failed to read template: %w", err)
	}
	template := core.NewFileData(filepath.Base(job.Template), data)

	processor := core.NewProcessor(core.NewExcelizeCodec(), logger)
	result, err := processor.Run(template, rows, runOpts, func(current, total int, message string) {
		fmt.Fprintf(output, "[%d/%d] %s\n", current, total, message)
	})
	if err != nil {
		return fmt.Errorf("generate from %s: %w", template.Name, err)
	}

	files := append(append([]core.FileData(nil), result.Individual...), result.Merged)
	if err := core.WriteFiles(job.Output.Dir, files); err != nil {
		return err
	}
	slog.Info("Successfully generated", "files", len(files), "dir", job.Output.Dir, "month", runOpts.Month)

	// 4. Upload to S3 if configured
	if job.Output.S3Bucket != "" {
		slog.Info("Starting S3 upload", "bucket", job.Output.S3Bucket, "prefix", job.Output.S3Prefix)
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return fmt.Errorf("unable to load AWS SDK config for S3: %w", err)
		}
		uploader := core.NewS3Uploader(cfg, job.Output.S3Bucket, job.Output.S3Prefix)
		if err := uploader.UploadFiles(ctx, files); err != nil {
			return fmt.Errorf("failed to upload output to s3: %w", err)
		}
		slog.Info("Successfully uploaded to S3")
	}

	return nil
}

// loadJob reads the config bundle, or builds a job from flags alone, then
// applies flag overrides. Relative paths in a bundle resolve against its directory.
func loadJob(opts *options) (*config.JobConfig, map[string]*config.SourceConfig, error) {
	var (
		job     *config.JobConfig
		sources map[string]*config.SourceConfig
		err     error
	)

	if opts.sourcesFile != "" && opts.configFile == "" {
		return nil, nil, fmt.Errorf("--sources requires --config")
	}

	if opts.sourcesFile != "" {
		job, sources, err = loadSplitBundle(opts.configFile, opts.sourcesFile)
		if err != nil {
			return nil, nil, err
		}
	} else if opts.configFile != "" {
		slog.Info("Loading configuration bundle", "file", opts.configFile)
		job, sources, err = config.LoadConfigBundle(opts.configFile)
		if err != nil {
			return nil, nil, err
		}
		base := filepath.Dir(opts.configFile)
		job.Template = resolvePath(base, job.Template)
		for _, src := range sources {
			src.Path = resolvePath(base, src.Path)
		}
	} else {
		if opts.template == "" || opts.source == "" {
			return nil, nil, fmt.Errorf("either --config or both --template and --source are required")
		}
		srcType := config.SourceXlsx
		if strings.EqualFold(filepath.Ext(opts.source), ".csv") {
			srcType = config.SourceCSV
		}
		sources = map[string]*config.SourceConfig{
			cliSourceName: {Name: cliSourceName, Type: srcType, Path: opts.source},
		}
		job = &config.JobConfig{Name: filepath.Base(opts.template), Source: cliSourceName}
		job.ApplyDefaults()
	}

	if opts.template != "" {
		job.Template = opts.template
	}
	if opts.source != "" && opts.configFile != "" {
		src := *sources[job.Source]
		src.Path = opts.source
		sources[job.Source] = &src
	}
	if opts.month != "" {
		job.Month = opts.month
	}
	if opts.outputDir != "" {
		job.Output.Dir = opts.outputDir
	}
	if opts.s3Bucket != "" {
		job.Output.S3Bucket = opts.s3Bucket
	}
	if opts.s3Prefix != "" {
		job.Output.S3Prefix = opts.s3Prefix
	}

	validator := config.NewValidator(config.NewMemoryConfigRegistry(sources))
	if err := validator.ValidateSource(sources[job.Source]); err != nil {
		return nil, nil, err
	}
	if err := validator.ValidateJob(job); err != nil {
		return nil, nil, err
	}
	return job, sources, nil
}

// loadSplitBundle takes the job from configFile and its sources from
// sourcesFile. Each file's relative paths resolve against its own directory.
func loadSplitBundle(configFile, sourcesFile string) (*config.JobConfig, map[string]*config.SourceConfig, error) {
	slog.Info("Loading job configuration", "file", configFile)
	bundle, err := config.LoadBundle(configFile)
	if err != nil {
		return nil, nil, err
	}
	job := bundle.Job
	job.ApplyDefaults()
	job.Template = resolvePath(filepath.Dir(configFile), job.Template)

	slog.Info("Loading source definitions", "file", sourcesFile)
	sources, err := config.LoadSourcesBundle(sourcesFile)
	if err != nil {
		return nil, nil, fmt.Errorf("load sources %s: %w", sourcesFile, err)
	}
	if _, ok := sources[job.Source]; !ok {
		return nil, nil, fmt.Errorf("source %q not defined in %s", job.Source, sourcesFile)
	}
	base := filepath.Dir(sourcesFile)
	for _, src := range sources {
		src.Path = resolvePath(base, src.Path)
	}
	return &job, sources, nil
}

func resolvePath(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}

// newRowFetcher builds the fetcher for src. The returned cleanup is always non-nil.
func newRowFetcher(ctx context.Context, src *config.SourceConfig) (core.RowFetcher, func(), error) {
	noop := func() {}
	switch src.Type {
	case config.SourceDynamoDB:
		slog.Info("Initializing DynamoDB Row Fetcher", "table", src.Table)
		// Load AWS Config (handles env vars, IAM roles, etc.)
		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, noop, fmt.Errorf("unable to load AWS SDK config: %w", err)
		}
		return core.NewDynamoDBRowFetcher(cfg, src.Table, src.Columns, src.SortBy), noop, nil
	case config.SourceMySQL, config.SourcePostgres, config.SourceSQLite:
		slog.Info("Initializing SQL Row Fetcher", "type", src.Type)
		dsn := src.DSN
		if src.Type == config.SourceSQLite {
			dsn = src.Path
		}
		db, err := sql.Open(string(src.Type), dsn)
		if err != nil {
			return nil, noop, fmt.Errorf("failed to open db connection: %w", err)
		}
		if err := db.PingContext(ctx); err != nil {
			db.Close()
			return nil, noop, fmt.Errorf("failed to ping db: %w", err)
		}
		return core.NewSQLRowFetcher(db, string(src.Type), src.Table, src.Query), func() { db.Close() }, nil
	case config.SourceCSV:
		slog.Info("Initializing CSV Row Fetcher", "path", src.Path)
		return core.NewCsvRowFetcher(src.Path), noop, nil
	default:
		slog.Info("Initializing Xlsx Row Fetcher", "path", src.Path)
		return core.NewXlsxRowFetcher(src.Path), noop, nil
	}
}
