package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ajitpratap0/tabular/pkg/arrowio"
	"github.com/ajitpratap0/tabular/pkg/compression"
	"github.com/ajitpratap0/tabular/pkg/config"
	"github.com/ajitpratap0/tabular/pkg/json"
	"github.com/ajitpratap0/tabular/pkg/logger"
	"github.com/ajitpratap0/tabular/pkg/profile"
	"github.com/ajitpratap0/tabular/pkg/render"
	stringpool "github.com/ajitpratap0/tabular/pkg/strings"
	"github.com/ajitpratap0/tabular/pkg/table"
)

var version = "0.1.0"

func main() {
	var (
		configPath  string
		batchSize   int
		workers     int
		format      string
		compress    string
		output      string
		schemaName  string
		sampleLimit int
	)

	root := &cobra.Command{
		Use:   "tabular",
		Short: "Tabular - columnar encoding and data profiling toolkit",
		Long: `Tabular computes streaming statistical profiles over tabular data:
per-column counts, bounds, ordering, frequent values, histograms and
distinct estimates, with compact physical column encodings.`,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (yaml)")

	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("Tabular v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	})

	schemaCmd := &cobra.Command{
		Use:   "schema <input>",
		Short: "Infer and print the schema of a CSV, JSONL or Arrow file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if err := initLogging(cfg); err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			rel, err := loadRelation(args[0], schemaName, sampleLimit)
			if err != nil {
				return err
			}
			out, err := json.MarshalIndent(rel.Schema, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}
	schemaCmd.Flags().StringVar(&schemaName, "name", "", "relation name (defaults to the file name)")
	schemaCmd.Flags().IntVar(&sampleLimit, "sample", 0, "rows to sample for inference (0 = all)")
	root.AddCommand(schemaCmd)

	profileCmd := &cobra.Command{
		Use:   "profile <input>",
		Short: "Profile every column of a CSV, JSONL or Arrow file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if batchSize > 0 {
				cfg.Profile.BatchSize = batchSize
			}
			if workers > 0 {
				cfg.Profile.Workers = workers
			}
			if format != "" {
				cfg.Export.Format = format
			}
			if compress != "" {
				cfg.Export.Compression = compress
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := initLogging(cfg); err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rel, err := loadRelation(args[0], schemaName, 0)
			if err != nil {
				return err
			}

			tp, err := table.Profile(ctx, rel, table.ProfileOptions{
				BatchSize: cfg.Profile.BatchSize,
				Workers:   cfg.Profile.Workers,
				Profile: profile.Options{
					MFVSize:       cfg.Profile.MFVSize,
					HistogramBins: cfg.Profile.HistogramBins,
					SketchSize:    cfg.Profile.SketchSize,
				},
			})
			if err != nil {
				return err
			}

			logger.WithContext(ctx).Info("profiled table",
				zap.String("table", rel.Name()),
				zap.Int("rows", rel.Len()),
				zap.Int("columns", len(tp.Profiles)))

			return emitProfile(tp, cfg, output)
		},
	}
	profileCmd.Flags().IntVar(&batchSize, "batch-size", 0, "rows per parallel batch")
	profileCmd.Flags().IntVar(&workers, "workers", 0, "batch-level parallelism")
	profileCmd.Flags().StringVar(&format, "format", "", "output format: ascii, json or csv")
	profileCmd.Flags().StringVar(&compress, "compression", "", "output compression: none, gzip, zstd, lz4, s2, snappy")
	profileCmd.Flags().StringVarP(&output, "output", "o", "", "write output to a file instead of stdout")
	profileCmd.Flags().StringVar(&schemaName, "name", "", "relation name (defaults to the file name)")
	root.AddCommand(profileCmd)

	headCmd := &cobra.Command{
		Use:   "head <input>",
		Short: "Render the first rows of a CSV, JSONL or Arrow file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if err := initLogging(cfg); err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			rel, err := loadRelation(args[0], schemaName, 0)
			if err != nil {
				return err
			}
			opts := render.DefaultOptions()
			if sampleLimit > 0 {
				opts.MaxRows = sampleLimit
			}
			fmt.Print(render.Relation(rel, opts))
			return nil
		},
	}
	headCmd.Flags().IntVarP(&sampleLimit, "rows", "n", 10, "rows to show")
	headCmd.Flags().StringVar(&schemaName, "name", "", "relation name (defaults to the file name)")
	root.AddCommand(headCmd)

	exportCmd := &cobra.Command{
		Use:   "export <input> <output.arrow>",
		Short: "Convert a CSV, JSONL or Arrow file to an Arrow IPC file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if err := initLogging(cfg); err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			rel, err := loadRelation(args[0], schemaName, 0)
			if err != nil {
				return err
			}

			ipcCompression := arrowio.CompressionNone
			switch compress {
			case "zstd":
				ipcCompression = arrowio.CompressionZstd
			case "lz4":
				ipcCompression = arrowio.CompressionLZ4
			}
			if err := arrowio.WriteFile(args[1], rel, ipcCompression); err != nil {
				return err
			}
			logger.Get().Info("exported relation",
				zap.String("path", args[1]),
				zap.Int("rows", rel.Len()))
			return nil
		},
	}
	exportCmd.Flags().StringVar(&compress, "compression", "none", "ipc buffer compression: none, zstd, lz4")
	exportCmd.Flags().StringVar(&schemaName, "name", "", "relation name (defaults to the file name)")
	root.AddCommand(exportCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.New(), nil
	}
	return config.Load(path)
}

func initLogging(cfg *config.Config) error {
	return logger.Init(logger.Config{
		Level:    cfg.Logging.Level,
		Encoding: cfg.Logging.Format,
	})
}

// emitProfile renders the profile per the export config and writes it to
// stdout or a file, compressing file output when configured.
func emitProfile(tp *table.TableProfile, cfg *config.Config, output string) error {
	var payload []byte
	switch cfg.Export.Format {
	case "json":
		out, err := json.MarshalIndent(tp, "", "  ")
		if err != nil {
			return err
		}
		payload = append(out, '\n')
	case "csv":
		payload = []byte(profileCSV(tp))
	default:
		payload = []byte(render.Profile(tp, render.DefaultOptions()))
	}

	if output == "" {
		_, err := os.Stdout.Write(payload)
		return err
	}

	if cfg.Export.Compression != "" && cfg.Export.Compression != "none" {
		algo, err := compression.ParseAlgorithm(cfg.Export.Compression)
		if err != nil {
			return err
		}
		comp, err := compression.NewCompressor(&compression.Config{
			Algorithm: algo,
			Level:     compression.Default,
		})
		if err != nil {
			return err
		}
		payload, err = comp.Compress(payload)
		if err != nil {
			return err
		}
	}
	return os.WriteFile(output, payload, 0o644)
}

// profileCSVFields is the column order of a CSV profile export, keyed by
// the profile map field names.
var profileCSVFields = [][2]string{
	{"column", "name"},
	{"type", "type"},
	{"count", "count"},
	{"missing", "missing"},
	{"minimum", "minimum"},
	{"maximum", "maximum"},
	{"ordering", "ordering"},
	{"transitions", "transitions"},
	{"distinct", "distinct_estimate"},
}

func profileCSV(tp *table.TableProfile) string {
	headers := make([]string, len(profileCSVFields))
	for i, f := range profileCSVFields {
		headers[i] = f[0]
	}

	cb := stringpool.NewCSVBuilder(len(tp.Profiles)+1, len(headers))
	defer cb.Close()
	cb.WriteHeader(headers)

	line := make([]string, len(headers))
	for _, m := range tp.AsRows() {
		for i, f := range profileCSVFields {
			if v, ok := m[f[1]]; ok && v != nil {
				line[i] = fmt.Sprintf("%v", v)
			} else {
				line[i] = ""
			}
		}
		cb.WriteRow(line)
	}
	return cb.String()
}
