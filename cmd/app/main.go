package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/andrewesterhuizen/js-engine/internal/evaluator"
	"github.com/andrewesterhuizen/js-engine/internal/lexer"
	"github.com/andrewesterhuizen/js-engine/internal/parser"
	"github.com/andrewesterhuizen/js-engine/internal/util"
)

var (
	// Version is the current version of the interpreter binary.
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"
	help      bool
	version   bool
	// logging
	logLevel string
	logFile  string
	// run config
	files        string
	outputTokens bool
	outputAST    bool
)

func init() {
	flag.BoolVar(&help, "help", false, "Display help information and exit")
	flag.BoolVar(&help, "h", false, "Display help information and exit")
	flag.BoolVar(&version, "version", false, "Display version information and exit")
	flag.BoolVar(&version, "v", false, "Display version information and exit")
	// run config
	flag.StringVar(&files, "files", "", "Comma-separated list of source files, concatenated in order")
	flag.BoolVar(&outputTokens, "output-tokens", false, "Dump the token stream as JSON and exit")
	flag.BoolVar(&outputAST, "output-ast", false, "Dump the AST as JSON and exit")
	// log config
	flag.StringVar(&logLevel, "log-level", "none", "Log level: debug, info, warn, error, none")
	flag.StringVar(&logFile, "log-file", "", "Log file path (if not set, logs to stderr)")
}

func main() {
	flag.Parse()

	loggerOptions := &slog.HandlerOptions{
		AddSource: false,
		Level:     logLevelFromString(logLevel),
	}
	logWriter := configureLogWriter()
	defaultLogger := slog.New(slog.NewJSONHandler(logWriter, loggerOptions))
	slog.SetDefault(defaultLogger)

	if version {
		printVersion()
		return
	}

	if help {
		printHelp()
		return
	}

	if files == "" {
		fmt.Fprintln(os.Stderr, "no input files: use --files=a.js,b.js")
		os.Exit(1)
	}

	config := util.Configuration{
		Version:      Version,
		BuildDate:    BuildDate,
		Commit:       Commit,
		Files:        strings.Split(files, ","),
		OutputTokens: outputTokens,
		OutputAST:    outputAST,
	}

	source, err := aggregateSources(config.Files)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	tokens, err := lexer.New(source).Tokens()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if config.OutputTokens {
		out, err := parser.RenderTokensAsJSON(tokens)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Print(out)
		return
	}

	p := parser.New(tokens)
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) > 0 {
		for _, e := range errs {
			fmt.Fprintln(os.Stderr, e)
		}
		os.Exit(1)
	}

	if config.OutputAST {
		out, err := parser.RenderASTAsJSON(program)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		fmt.Print(out)
		return
	}

	// an uncaught error is printed to stderr by Run; the exit code stays 0
	evaluator.New().Run(program)
}

// aggregateSources reads and concatenates the input files in argument order;
// there is no module system.
func aggregateSources(paths []string) (string, error) {
	var sources []string
	for _, path := range paths {
		data, err := os.ReadFile(strings.TrimSpace(path))
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %v", path, err)
		}
		sources = append(sources, string(data))
	}
	return strings.Join(sources, "\n"), nil
}

func configureLogWriter() *os.File {
	var logWriter *os.File
	var err error
	if logFile != "" {
		if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "failed to create log directory for '%s': %v; falling back to stderr\n", logFile, err)
			return os.Stderr
		}
		logWriter, err = os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to open log file '%s': %v; falling back to stderr\n", logFile, err)
			logWriter = os.Stderr
		}
	} else {
		logWriter = os.Stderr
	}
	return logWriter
}

func printVersion() {
	fmt.Printf("js-engine version 'v%s' %s %s\n", Version, BuildDate, Commit)
}

func printHelp() {
	fmt.Printf(`Usage: interpreter --files=a.js,b.js[,...] [options]

Options:
  -files <list>      Comma-separated source files, concatenated in order.
  -output-tokens     Dump the token stream as pretty-printed JSON and exit.
  -output-ast        Dump the AST as pretty-printed JSON and exit.
  -help              Display this help information and exit.
  -version           Display version information and exit.
  -log-level <level> Set the log level: debug, info, warn, error. Default is 'none'.
  -log-file <path>   Specify a log file to write logs. Default is stderr.

Examples:
  interpreter --files=main.js              Execute main.js
  interpreter --files=lib.js,main.js       Concatenate then execute
  interpreter --files=main.js -output-ast  Print the AST as JSON

Version Information:
  Version:    %s
  Build Date: %s
  Commit:     %s
`, Version, BuildDate, Commit)
}

func logLevelFromString(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelError + 4
	}
}
