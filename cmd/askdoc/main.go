// Package main is the askdoc CLI entry point.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hyperjump/askdoc/internal/answer"
	"github.com/hyperjump/askdoc/internal/cli"
	"github.com/hyperjump/askdoc/internal/config"
	"github.com/hyperjump/askdoc/internal/embedding"
	"github.com/hyperjump/askdoc/internal/extract"
	"github.com/hyperjump/askdoc/internal/indexer"
	"github.com/hyperjump/askdoc/internal/search"
	"github.com/hyperjump/askdoc/internal/session"
	"github.com/hyperjump/askdoc/internal/source"
	"github.com/hyperjump/askdoc/internal/vector"
	"github.com/hyperjump/askdoc/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "config.yaml"

// loadConfig loads config from path. A missing file at the default path is not
// an error: defaults and environment overrides are used instead.
func loadConfig(path string) (*config.Config, error) {
	if path == defaultConfigPath {
		if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
			cfg := config.Default()
			if err := config.ApplyEnv(cfg); err != nil {
				return nil, err
			}
			config.ApplyDefaults(cfg)
			return cfg, nil
		}
	}
	return config.Load(path)
}

func main() {
	_ = godotenv.Load()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "doc", "web", "ask":
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		go func() {
			<-sigChan
			fmt.Println("\nExiting...")
			os.Exit(130)
		}()
		if err := runQA(context.Background(), command, os.Args[2:], os.Stdin, os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	case "init":
		if err := runInit(os.Args[2:], os.Stdout); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	case "version", "--version", "-v":
		fmt.Printf("askdoc version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// runInit writes a config file holding every default, so users can edit it
// instead of starting from an empty file.
func runInit(args []string, out io.Writer) error {
	flags := flag.NewFlagSet("init", flag.ContinueOnError)
	configPath := flags.String("config", defaultConfigPath, "config file path to write")
	force := flags.Bool("force", false, "overwrite an existing file")
	if err := flags.Parse(args); err != nil {
		return err
	}
	if _, err := os.Stat(*configPath); err == nil && !*force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", *configPath)
	}
	if err := config.Save(*configPath, config.Default()); err != nil {
		return err
	}
	fmt.Fprintf(out, "Config written to %s\n", *configPath)
	return nil
}

// options are the flags shared by the question-answering commands.
type options struct {
	configPath string
	source     string
	debug      bool
	logFile    string
	output     string
}

func newFlagSet(command string, opts *options) *flag.FlagSet {
	flags := flag.NewFlagSet(command, flag.ContinueOnError)
	flags.StringVar(&opts.configPath, "config", defaultConfigPath, "config file path")
	flags.StringVar(&opts.source, "source", "", "document path or URL to load at startup")
	flags.BoolVar(&opts.debug, "debug", false, "enable debug logging")
	flags.StringVar(&opts.logFile, "log-file", "", "write logs to this file instead of stderr")
	flags.StringVar(&opts.output, "output", "text", "answer format: text or json")
	return flags
}

func parseFlags(command string, args []string) (*options, error) {
	opts := &options{}
	flags := newFlagSet(command, opts)
	if err := flags.Parse(reorderArgs(flags, args)); err != nil {
		return nil, err
	}
	if opts.source == "" && flags.NArg() > 0 {
		opts.source = strings.Join(flags.Args(), " ")
	}
	if _, err := outputFormat(opts.output); err != nil {
		return nil, err
	}
	return opts, nil
}

// reorderArgs moves every flag, with its value, in front of the positional
// arguments so that flag.Parse sees all of them: "askdoc doc -debug report.pdf
// -output json" works like "askdoc doc -debug -output json report.pdf".
// Arguments after "--" stay positional.
func reorderArgs(flags *flag.FlagSet, args []string) []string {
	flagArgs := make([]string, 0, len(args))
	var positional []string
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			flagArgs = append(flagArgs, "--")
			positional = append(positional, args[i+1:]...)
			break
		}
		if len(a) < 2 || a[0] != '-' {
			positional = append(positional, a)
			continue
		}
		flagArgs = append(flagArgs, a)
		name := strings.TrimLeft(a, "-")
		if strings.Contains(name, "=") {
			continue
		}
		// Unknown flags are left for flag.Parse to report.
		f := flags.Lookup(name)
		if f == nil {
			continue
		}
		if b, ok := f.Value.(interface{ IsBoolFlag() bool }); ok && b.IsBoolFlag() {
			continue
		}
		if i+1 < len(args) {
			i++
			flagArgs = append(flagArgs, args[i])
		}
	}
	return append(flagArgs, positional...)
}

func outputFormat(s string) (cli.OutputFormat, error) {
	switch s {
	case "text", "":
		return cli.OutputText, nil
	case "json":
		return cli.OutputJSON, nil
	default:
		return "", fmt.Errorf("unknown output format %q; use text or json", s)
	}
}

// runQA loads a source and answers questions read from in until "exit" or EOF.
func runQA(ctx context.Context, command string, args []string, in io.Reader, out io.Writer) error {
	opts, err := parseFlags(command, args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	debugMode := cfg.Debug || opts.debug
	logFile := cfg.LogFile
	if opts.logFile != "" {
		logFile = opts.logFile
	}
	var logPaths []string
	if logFile != "" {
		logPaths = append(logPaths, logFile)
	}
	logger, err := utils.NewLogger(debugMode, logPaths...)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Sync()

	components, err := initializeComponents(command, cfg, logger, out)
	if err != nil {
		return err
	}
	defer components.Close()

	format, _ := outputFormat(opts.output)
	preset := opts.source
	if preset == "" {
		preset = cfg.Source
	}
	repl := cli.NewREPL(components.Session, in, out,
		cli.WithSourcePrompt(sourcePrompt(command)),
		cli.WithFormat(format),
		cli.WithLogger(logger),
	)
	return repl.Run(ctx, preset)
}

func sourcePrompt(command string) string {
	switch command {
	case "web":
		return cli.WebPrompt
	case "ask":
		return cli.SourcePrompt
	default:
		return cli.DocumentPrompt
	}
}

// Components holds initialized services.
type Components struct {
	Embedder embedding.Embedder
	Session  *session.Session
}

func (c *Components) Close() {
	if c.Session != nil {
		_ = c.Session.Close()
	}
	if c.Embedder != nil {
		_ = c.Embedder.Close()
	}
}

func initializeComponents(command string, cfg *config.Config, logger *zap.Logger, progress io.Writer) (*Components, error) {
	embedder, err := embedding.NewEmbedder(cfg.Embedding, cfg.OpenAI)
	if err != nil {
		if cfg.Embedding.Provider != "onnx" {
			return nil, fmt.Errorf("failed to initialize embedder: %w", err)
		}
		// Fall back to the hashing embedder if the ONNX runtime or model is missing.
		logger.Warn("onnx embedder unavailable, falling back to hashing",
			zap.String("model_path", cfg.Embedding.ModelPath),
			zap.Error(err))
		fallback := cfg.Embedding
		fallback.Provider = "hashing"
		if embedder, err = embedding.NewEmbedder(fallback, cfg.OpenAI); err != nil {
			return nil, fmt.Errorf("failed to initialize embedder: %w", err)
		}
	}

	indexType := cfg.Index.Type
	if vector.IndexType(indexType) == vector.IndexTypeFAISS && !vector.IsFAISSAvailable() {
		logger.Warn("faiss not compiled in, falling back to memory index")
		indexType = string(vector.IndexTypeMemory)
	}
	logger.Debug("pipeline initialized",
		zap.String("embedder", cfg.Embedding.Provider),
		zap.Int("dimensions", embedder.Dimensions()),
		zap.String("index", indexType),
		zap.String("answer", cfg.Answer.Provider))

	extractor, err := answer.NewExtractor(cfg.Answer, cfg.OpenAI, logger)
	if err != nil {
		_ = embedder.Close()
		return nil, fmt.Errorf("failed to initialize answer extractor: %w", err)
	}

	idx := indexer.NewIndexer(embedder, vector.ConstructorFor(indexType), indexer.WithLogger(logger))
	sess := session.New(
		newLoader(command, cfg, logger),
		indexer.NewChunker(cfg.Chunking.ChunkSize),
		idx,
		search.NewRetriever(idx.Embedder(), search.WithLogger(logger)),
		extractor,
		session.WithLogger(logger),
		session.WithProgress(progress),
	)
	return &Components{Embedder: embedder, Session: sess}, nil
}

func newLoader(command string, cfg *config.Config, logger *zap.Logger) source.Loader {
	file := source.NewFileLoader(source.WithFileLogger(logger))
	web := source.NewWebLoader(cfg.Web.Timeout, cfg.Web.UserAgent, source.WithWebLogger(logger))
	switch command {
	case "doc":
		return file
	case "web":
		return web
	default:
		return source.NewAutoLoader(file, web)
	}
}

func printUsage() {
	fmt.Println(`askdoc - Ask questions about a document or a web page

Usage:
  askdoc doc [flags] [path]   Answer questions about a local document
  askdoc web [flags] [url]    Answer questions about a web page
  askdoc ask [flags] [source] Answer questions about a path or URL
  askdoc init [--force]       Write config.yaml with every default
  askdoc version              Show version
  askdoc help                 Show this help

Flags:
  --config string     Config file path (default: config.yaml; defaults are used if it does not exist)
  --source string     Path or URL to load at startup (otherwise prompted)
  --debug             Enable debug logging
  --log-file string   Write logs to a file so they do not mix with the prompt
  --output string     Answer format: text or json (default: text)

Supported documents: ` + strings.Join(extract.Formats(), ", ") + `

In the question loop:
  exit                Quit
  :load <source>      Replace the current document
  :context            Show the passage the last answer came from

Examples:
  askdoc doc report.pdf
  askdoc web https://example.com/article
  askdoc ask --output json notes.md`)
}
