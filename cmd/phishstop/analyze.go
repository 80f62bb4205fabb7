package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/talhabaig007/PhishStop/internal/analyzer"
	"github.com/talhabaig007/PhishStop/internal/cli"
	"github.com/talhabaig007/PhishStop/internal/config"
	"github.com/talhabaig007/PhishStop/internal/feature"
	"github.com/talhabaig007/PhishStop/internal/heuristic"
	"github.com/talhabaig007/PhishStop/internal/model"
	"github.com/talhabaig007/PhishStop/internal/stats"
	"github.com/talhabaig007/PhishStop/internal/storage"
)

func analyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [urls...]",
		Short: "Score URLs for phishing risk",
		Long: `Analyze one or more URLs with the layered detection pipeline.

By default URLs are scored locally with the heuristic rules. With --remote
the analysis service is consulted first and the same heuristics serve as
an offline fallback, so a verdict always comes back.

Examples:
  # Score a single URL locally
  phishstop analyze https://paypal-secure.tk/login

  # Score a batch from a file (one URL per line, - for stdin)
  phishstop analyze --file urls.txt

  # Consult the analysis service, falling back to local heuristics
  phishstop analyze --remote http://192.168.1.5/login

  # Persist verdicts to the local analysis ledger
  phishstop analyze --save https://example.com`,
		RunE: runAnalyzeURLs,
	}

	cmd.Flags().StringP("file", "f", "", "file with one URL per line (- for stdin)")
	cmd.Flags().Bool("remote", false, "consult the analysis service before falling back to local heuristics")
	cmd.Flags().Bool("save", false, "persist verdicts to the local analysis ledger")
	cmd.Flags().String("api", "", "analysis service base URL (default http://localhost:5000)")

	return cmd
}

func runAnalyzeURLs(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	filePath, _ := cmd.Flags().GetString("file")
	remote, _ := cmd.Flags().GetBool("remote")
	save, _ := cmd.Flags().GetBool("save")
	apiBase, _ := cmd.Flags().GetString("api")
	if apiBase == "" {
		apiBase = config.APIBaseURL()
	}

	urls := append([]string{}, args...)
	if filePath != "" {
		fromFile, err := readURLList(filePath)
		if err != nil {
			return fmt.Errorf("failed to read URL list: %w", err)
		}
		urls = append(urls, fromFile...)
	}

	if len(urls) == 0 {
		return fmt.Errorf("no URLs to analyze (pass arguments or --file)")
	}

	batch := len(urls) > 1

	// Set up interrupt handling
	interruptHandler := cli.NewInterruptHandler(nil)
	ctx = interruptHandler.HandleInterrupts(ctx, batch)

	var store *storage.SQLiteStorage
	if save {
		var err error
		store, err = initStorage(ctx)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		defer func() { _ = store.Close() }()
	}

	analyzeOne := localAnalyzer()
	if remote {
		a := analyzer.New(analyzer.NewHTTPClient(apiBase, 0), analyzer.Config{}, slog.Default())
		defer func() { _ = a.Close() }()
		analyzeOne = func(ctx context.Context, rawURL string) (model.Verdict, error) {
			return a.Analyze(ctx, rawURL), nil
		}
	}

	if !batch {
		v, err := analyzeOne(ctx, urls[0])
		if err != nil {
			return fmt.Errorf("failed to analyze %s: %w", urls[0], err)
		}
		persistVerdict(ctx, store, v)
		fmt.Println(cli.RenderVerdict(v))
		return nil
	}

	return runBatch(ctx, urls, analyzeOne, store, interruptHandler)
}

// verdictFunc scores one URL. The local variant can reject malformed
// input; the remote variant never fails.
type verdictFunc func(ctx context.Context, rawURL string) (model.Verdict, error)

func localAnalyzer() verdictFunc {
	scorer := heuristic.NewScorer(heuristic.DefaultRules())
	return func(_ context.Context, rawURL string) (model.Verdict, error) {
		f, err := feature.Extract(rawURL)
		if err != nil {
			return model.Verdict{}, err
		}
		return scorer.Evaluate(f, time.Now()), nil
	}
}

func runBatch(ctx context.Context, urls []string, analyzeOne verdictFunc, store *storage.SQLiteStorage, interruptHandler *cli.InterruptHandler) error {
	bar := cli.NewProgressBar(len(urls), "Analyzing URLs...", os.Stdout)
	aggregator := stats.New(len(urls))

	lines := make([]string, 0, len(urls))
	failed := 0

	for _, rawURL := range urls {
		if ctx.Err() != nil {
			break
		}

		v, err := analyzeOne(ctx, rawURL)
		if err != nil {
			failed++
			lines = append(lines, cli.FormatError(fmt.Sprintf("%s: %v", rawURL, err)))
		} else {
			persistVerdict(ctx, store, v)
			aggregator.Record(v)
			lines = append(lines, cli.RenderVerdictLine(v))
		}

		if err := bar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}

	fmt.Println()
	for _, line := range lines {
		fmt.Println(line)
	}

	if interruptHandler.WasInterrupted() {
		return nil
	}

	snapshot := aggregator.Snapshot()
	fmt.Println()
	fmt.Println(cli.RenderStats(snapshot))
	if failed > 0 {
		fmt.Println(cli.FormatWarning(fmt.Sprintf("%d URL(s) could not be analyzed", failed)))
	}

	return nil
}

// persistVerdict saves a verdict to the ledger when --save is active.
// Persistence failures are logged, never fatal.
func persistVerdict(ctx context.Context, store *storage.SQLiteStorage, v model.Verdict) {
	if store == nil {
		return
	}

	host := ""
	if f, err := feature.Extract(v.URL); err == nil {
		host = f.Host
	}

	if err := store.SaveVerdict(ctx, model.RecordFromVerdict(v, host)); err != nil {
		slog.Warn("Failed to persist verdict", "url", v.URL, "error", err)
	}
}

func readURLList(path string) ([]string, error) {
	var r io.Reader
	if path == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}

	return urls, scanner.Err()
}
