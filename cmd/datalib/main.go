package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/0xalexb/datalib"
	"github.com/0xalexb/datalib/document"
	"github.com/0xalexb/datalib/logging"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
)

var (
	errLibraryRequired = errors.New("the -library flag is required")
	errConfigRequired  = errors.New("exactly one configuration file is required")
)

func main() {
	if err := run(os.Stdout, os.Args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}

		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run resolves one configuration document against a library and writes the
// fully resolved document to w.
func run(w io.Writer, args []string) error {
	fs := flag.NewFlagSet("datalib", flag.ContinueOnError)
	library := fs.String("library", "", "path to the active library root")
	defaultLibrary := fs.String("default-library", "", "optional fallback library root")
	extraKeys := fs.String("extra-keys", "", "comma-separated nested keys to recurse into")
	logLevel := fs.String("log-level", "warn", "log level: debug, info, warn, error")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "Usage: datalib -library <root> [flags] <config.yaml>")
		fmt.Fprintln(fs.Output(), "Resolves the library references in a configuration file and prints the result.")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parsing flags: %w", err)
	}

	if *library == "" {
		return errLibraryRequired
	}

	if fs.NArg() != 1 {
		return errConfigRequired
	}

	config, err := readConfig(fs.Arg(0))
	if err != nil {
		return err
	}

	logger := logging.NewLogger(logging.Config{Level: *logLevel}, os.Stderr)
	slog.SetDefault(logger)

	var opts []datalib.Option
	if *defaultLibrary != "" {
		opts = append(opts, datalib.WithDefaultLibrary(*defaultLibrary))
	}

	var lib *datalib.Library

	app := fx.New(
		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger}
		}),
		datalib.NewModule("library", *library, opts...),
		fx.Invoke(
			fx.Annotate(
				func(l *datalib.Library) { lib = l },
				fx.ParamTags(`name:"library"`),
			),
		),
	)

	if err := app.Start(context.Background()); err != nil {
		return fmt.Errorf("starting app: %w", err)
	}

	defer func() { _ = app.Stop(context.Background()) }()

	resolved, err := lib.ResolveAll(config, splitKeys(*extraKeys)...)
	if err != nil {
		return fmt.Errorf("resolving %q: %w", fs.Arg(0), err)
	}

	out, err := document.Encode(resolved)
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	_, err = w.Write(out)
	if err != nil {
		return fmt.Errorf("writing result: %w", err)
	}

	return nil
}

// readConfig decodes the configuration document to resolve. The top level
// must be a mapping.
func readConfig(path string) (map[string]any, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path comes from the command line
	if err != nil {
		return nil, fmt.Errorf("reading config %q: %w", path, err)
	}

	v, err := document.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding config %q: %w", path, err)
	}

	config, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("config %q: expected a mapping, got %T", path, v)
	}

	return config, nil
}

func splitKeys(s string) []string {
	if s == "" {
		return nil
	}

	var keys []string

	for _, key := range strings.Split(s, ",") {
		if key = strings.TrimSpace(key); key != "" {
			keys = append(keys, key)
		}
	}

	return keys
}
