package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sovelia/goevidence/internal/app"
	"github.com/sovelia/goevidence/internal/search"
)

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	var (
		inputPath     string
		outputRoot    string
		configPath    string
		envPath       string
		searchDelay   time.Duration
		fetchTimeout  time.Duration
		maxSnippets   int
		maxSnippetLen int
		fileSearch    string
		country       string
		interactive   bool
		digestPDF     bool
		ignoreRobots  bool
		verbose       bool
	)

	flag.StringVar(&inputPath, "input", "", "Path to companies CSV (columns: company, domain, optional country)")
	flag.StringVar(&outputRoot, "out", "out", "Output directory root for raw/, meta/, logs/ and csv/")
	flag.StringVar(&configPath, "config", "", "Optional study config file (YAML or JSON)")
	flag.StringVar(&envPath, "env", ".env", "Dotenv file with backend credentials")
	flag.DurationVar(&searchDelay, "search.delay", 0, "Fixed delay between search queries (default 3s)")
	flag.DurationVar(&fetchTimeout, "fetch.timeout", 0, "Per-URL fetch timeout (default 20s)")
	flag.IntVar(&maxSnippets, "max.snippets", 0, "Maximum evidence snippets per page (default 3)")
	flag.IntVar(&maxSnippetLen, "max.snippetChars", 0, "Maximum snippet length in characters (default 280)")
	flag.StringVar(&fileSearch, "search.file", os.Getenv("SEARCH_FILE"), "Path to JSON file for offline file-based search provider")
	flag.StringVar(&country, "country", "", "Default country code for rows without one (default FI)")
	flag.BoolVar(&interactive, "interactive", false, "Prompt to continue between companies")
	flag.BoolVar(&digestPDF, "digest.pdf", false, "Also write a per-company evidence digest PDF")
	flag.BoolVar(&ignoreRobots, "ignore.robots", false, "Skip robots.txt checks before fetching")
	flag.BoolVar(&verbose, "v", false, "Verbose logging")
	flag.Parse()

	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Credentials come from the environment, optionally seeded from a dotenv
	// file. They are read here once and passed in explicitly; nothing inside
	// the pipeline consults the environment.
	if err := godotenv.Load(envPath); err != nil && !os.IsNotExist(err) {
		log.Warn().Err(err).Str("path", envPath).Msg("dotenv load failed")
	}

	cfg := app.Config{
		InputPath:  inputPath,
		OutputRoot: outputRoot,
		Credentials: search.Credentials{
			GoogleAPIKey: os.Getenv("GOOGLE_API_KEY"),
			GoogleCX:     os.Getenv("GOOGLE_CX"),
			BingAPIKey:   os.Getenv("BING_API_KEY"),
		},
		FileSearchPath: fileSearch,
		SearchDelay:    searchDelay,
		FetchTimeout:   fetchTimeout,
		MaxSnippets:    maxSnippets,
		MaxSnippetLen:  maxSnippetLen,
		DefaultCountry: country,
		Interactive:    interactive,
		DigestPDF:      digestPDF,
		IgnoreRobots:   ignoreRobots,
		Verbose:        verbose,
	}

	if configPath != "" {
		fc, err := app.LoadConfigFile(configPath)
		if err != nil {
			log.Error().Err(err).Str("path", configPath).Msg("config file load failed")
			os.Exit(1)
		}
		app.ApplyFileConfig(&cfg, fc)
	}

	if strings.TrimSpace(cfg.InputPath) == "" {
		fmt.Fprintln(os.Stderr, "usage: goevidence -input companies.csv [flags]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		log.Error().Err(err).Msg("run failed")
		os.Exit(1)
	}
}

func run(cfg app.Config) error {
	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init app: %w", err)
	}
	if cfg.Interactive {
		a.Prompt = askContinue
	}
	return a.Run(context.Background())
}

// askContinue is the per-company checkpoint: the operator can stop a long run
// between companies and resume later by trimming the input CSV.
func askContinue(done, total int) bool {
	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Fprintf(os.Stderr, "\nCompany %d/%d completed. Continue? (y/n): ", done, total)
		line, err := reader.ReadString('\n')
		if err != nil {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		case "n", "no", "q", "quit":
			return false
		}
		fmt.Fprintln(os.Stderr, "Please enter 'y' or 'n'")
	}
}
