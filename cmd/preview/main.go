package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"moviepreview/internal/config"
	"moviepreview/internal/handlers/render"
	"moviepreview/internal/output"
	"moviepreview/internal/services"
)

const (
	exitFound    = 0
	exitFailure  = 1
	exitUsage    = 2
	exitNotFound = 3
)

type cliOptions struct {
	JSON           bool
	NoColor        bool
	StrictFallback bool
	Verbose        bool
	Timeout        time.Duration
	Storefront     string
}

// exitError carries the process exit code out of a command
type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("exit status %d", e.code)
	}
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	var ee *exitError
	if err != nil && (!errors.As(err, &ee) || ee.err != nil) {
		fmt.Fprintln(os.Stderr, "Error:", err.Error())
	}
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	if err == nil {
		return exitFound
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	// cobra reports unknown flags and bad arguments as plain errors
	return exitUsage
}

func newRootCmd() *cobra.Command {
	opts := &cliOptions{}

	cmd := &cobra.Command{
		Use:   "preview [movie name...]",
		Short: "Find a song preview for a movie",
		Long: `preview looks up a movie's soundtrack album in the iTunes catalog and prints
a playable song preview. Without arguments on a terminal it asks for movie
names until you type "exit".`,
		Example:       "  preview Leo\n  preview --json Leo Naa Ready",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, opts, args)
		},
	}

	flags := cmd.Flags()
	flags.BoolVar(&opts.JSON, "json", false, "print JSON instead of text")
	flags.BoolVar(&opts.NoColor, "no-color", false, "disable colored output")
	flags.BoolVar(&opts.StrictFallback, "strict-fallback", false, "require track entries in the song search fallback")
	flags.BoolVarP(&opts.Verbose, "verbose", "v", false, "log pipeline stages to stderr")
	flags.DurationVar(&opts.Timeout, "timeout", 0, "per-request catalog timeout (default from CATALOG_TIMEOUT)")
	flags.StringVar(&opts.Storefront, "storefront", "", "catalog storefront country code (default from CATALOG_STOREFRONT)")

	return cmd
}

func run(cmd *cobra.Command, opts *cliOptions, args []string) error {
	out := output.New(output.Options{
		JSON:    opts.JSON,
		NoColor: opts.NoColor,
		Out:     cmd.OutOrStdout(),
		Err:     cmd.ErrOrStderr(),
	})

	cfg, err := config.Load()
	if err != nil {
		return &exitError{code: exitUsage, err: err}
	}
	if cmd.Flags().Changed("timeout") {
		if opts.Timeout <= 0 {
			return &exitError{code: exitUsage, err: errors.New("--timeout must be positive")}
		}
		cfg.CatalogTimeout = opts.Timeout
	}
	if cmd.Flags().Changed("storefront") {
		cfg.CatalogStorefront = opts.Storefront
	}
	if cmd.Flags().Changed("strict-fallback") {
		cfg.StrictFallback = opts.StrictFallback
	}
	if err := cfg.Validate(); err != nil {
		return &exitError{code: exitUsage, err: err}
	}

	level := slog.LevelWarn
	if opts.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))

	catalog := services.NewCatalogService(services.CatalogOptions{
		BaseURL:    cfg.CatalogBaseURL,
		Storefront: cfg.CatalogStorefront,
		Timeout:    cfg.CatalogTimeout,
		UserAgent:  cfg.CatalogUserAgent,
	})
	resolver := services.NewPreviewResolutionService(catalog,
		services.WithStrictFallback(cfg.StrictFallback))

	if len(args) > 0 {
		return resolveOnce(cmd.Context(), resolver, out, strings.Join(args, " "))
	}

	if !output.IsInteractive(os.Stdin) {
		return &exitError{code: exitUsage, err: errors.New("a movie name is required when stdin is not a terminal")}
	}
	return interactive(cmd.Context(), resolver, out, cmd.InOrStdin())
}

// resolveOnce prints one resolution and maps it onto an exit code
func resolveOnce(ctx context.Context, resolver *services.PreviewResolutionService, out *output.Output, movie string) error {
	result, err := resolver.ResolvePreview(ctx, movie)
	if err != nil {
		problem := render.ProblemFor(err)
		if printErr := out.Problem(problem.Response); printErr != nil {
			return &exitError{code: exitFailure, err: printErr}
		}
		code := exitFailure
		if errors.Is(err, services.ErrEmptyQuery) {
			code = exitUsage
		}
		return &exitError{code: code}
	}

	if result == nil {
		if err := out.NotFound(movie); err != nil {
			return &exitError{code: exitFailure, err: err}
		}
		return &exitError{code: exitNotFound}
	}

	if err := out.Found(movie, result); err != nil {
		return &exitError{code: exitFailure, err: err}
	}
	return nil
}

// interactive prompts for movie names until EOF or "exit"
func interactive(ctx context.Context, resolver *services.PreviewResolutionService, out *output.Output, in io.Reader) error {
	out.Info("Type a movie name and press Enter. \"exit\" quits.")

	scanner := bufio.NewScanner(in)
	for {
		out.Prompt("🎬 Movie: ")
		if !scanner.Scan() {
			out.Info("")
			if err := scanner.Err(); err != nil {
				return &exitError{code: exitFailure, err: err}
			}
			return nil
		}

		movie := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(movie) {
		case "exit", "quit":
			return nil
		case "":
			out.Info(render.EmptyQueryMessage)
			continue
		}

		out.Info("Searching preview… 🎧")
		if err := resolveOnce(ctx, resolver, out, movie); err != nil {
			var ee *exitError
			if !errors.As(err, &ee) || ee.err != nil {
				return err
			}
		}

		if ctx.Err() != nil {
			return nil
		}
	}
}
