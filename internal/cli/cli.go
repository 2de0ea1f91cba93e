package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/Terria-K/cluttered/internal/app"
	"github.com/Terria-K/cluttered/internal/config"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// stringList is a repeatable string flag.
type stringList []string

func (l *stringList) String() string { return strings.Join(*l, ",") }

func (l *stringList) Set(v string) error {
	*l = append(*l, v)
	return nil
}

const usageText = `
Cluttered - a texture atlas packer.

Usage:
  cluttered [options] pack -i <folder> [-i <folder>...] [folder...] -o <output> [pack options]
  cluttered [options] config -i <request file>

Commands:
  pack      Pack the images of one or more folders into a sheet.
  config    Pack using a .json, .toml, .ron or .hcl request file.

Options:
`

// Parse processes command-line arguments. It returns a populated Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("cluttered", flag.ContinueOnError)
	flagSet.SetOutput(output)
	flagSet.Usage = func() {
		fmt.Fprint(output, usageText)
		flagSet.PrintDefaults()
	}

	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}
	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}

	if flagSet.NArg() == 0 {
		slog.Debug("No command provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	cfg := app.Config{LogFormat: logFormat, LogLevel: logLevel}
	command, rest := flagSet.Arg(0), flagSet.Args()[1:]
	slog.Debug("Command determined.", "command", command)

	var (
		shouldExit bool
		err        error
	)
	switch command {
	case "pack":
		cfg.Request, shouldExit, err = parsePack(rest, output)
	case "config":
		cfg.ConfigPath, shouldExit, err = parseConfig(rest, output)
	case "help":
		flagSet.Usage()
		return nil, true, nil
	default:
		return nil, false, usageError("unknown command %q: expected 'pack' or 'config'", command)
	}
	if err != nil || shouldExit {
		return nil, shouldExit, err
	}

	appConfig, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, usageError("%s", err.Error())
	}
	slog.Debug("CLI parser finished successfully.", "command", command)
	return appConfig, false, nil
}

// parsePack builds a request from the pack subcommand flags.
func parsePack(args []string, output io.Writer) (*config.Request, bool, error) {
	flagSet := flag.NewFlagSet("pack", flag.ContinueOnError)
	flagSet.SetOutput(output)

	var inputs, types, templates stringList
	flagSet.Var(&inputs, "i", "Input folder with images (repeatable, shorthand).")
	flagSet.Var(&inputs, "input", "Input folder with images (repeatable).")
	outFlag := flagSet.String("o", "", "Output folder for the sheet and descriptors (shorthand).")
	outputFlag := flagSet.String("output", "", "Output folder for the sheet and descriptors.")
	flagSet.Var(&types, "t", "Output type: json, ron, toml, binary, msgpack or template (repeatable, shorthand).")
	flagSet.Var(&types, "type", "Output type: json, ron, toml, binary, msgpack or template (repeatable).")
	flagSet.Var(&templates, "a", "Template file for template output (repeatable, shorthand).")
	flagSet.Var(&templates, "template_path", "Template file for template output (repeatable).")
	nFlag := flagSet.String("n", "", "Output name (shorthand). Defaults to the output folder name.")
	nameFlag := flagSet.String("name", "", "Output name. Defaults to the output folder name.")
	maxSize := flagSet.Int("max-size", config.DefaultMaxSize, "Maximum sheet width and height, a power of two.")
	imageFormat := flagSet.String("image-format", "png", "Sheet image format: png, qoi or jpg.")
	hideExt := flagSet.Bool("hide-extension", false, "Strip file extensions from frame names.")
	ninePatch := flagSet.Bool("nine-patch", false, "Read nine-patch sidecar files.")
	multiFrame := flagSet.Bool("multi-frame", false, "Expand aseprite files and animated GIFs into frames.")
	sheet := flagSet.Bool("sheet", false, "Tile multi-frame files into a single frame instead of one per frame.")

	positional, err := parseInterleaved(flagSet, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, usageError("%s", err.Error())
	}
	inputs = append(inputs, positional...)

	req := config.NewRequest()
	req.Folders = inputs
	req.OutputDir = firstNonEmpty(*outputFlag, *outFlag)
	req.Name = firstNonEmpty(*nameFlag, *nFlag, defaultName(req.OutputDir))
	req.Templates = templates
	req.MaxSize = *maxSize
	req.ShowExtension = !*hideExt
	req.NinePatch = *ninePatch
	req.MultiFrame = *multiFrame
	if *sheet {
		req.MultiFrameMode = config.SingleSheet
	}
	if err := req.ImageFormat.UnmarshalText([]byte(*imageFormat)); err != nil {
		return nil, false, usageError("invalid image-format: %s", err)
	}
	if len(types) > 0 {
		req.Encodings = req.Encodings[:0]
		for _, t := range types {
			e, err := config.ParseEncoding(t)
			if err != nil {
				return nil, false, usageError("invalid type: %s", err)
			}
			req.Encodings = append(req.Encodings, e)
		}
	}

	if err := req.Validate(); err != nil {
		return nil, false, usageError("%s", err.Error())
	}
	return req, false, nil
}

// parseConfig returns the request file path of the config subcommand.
func parseConfig(args []string, output io.Writer) (string, bool, error) {
	flagSet := flag.NewFlagSet("config", flag.ContinueOnError)
	flagSet.SetOutput(output)
	iFlag := flagSet.String("i", "", "Request file path (shorthand).")
	inputFlag := flagSet.String("input", "", "Request file path.")

	positional, err := parseInterleaved(flagSet, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return "", true, nil
		}
		return "", false, usageError("%s", err.Error())
	}

	paths := positional
	if p := firstNonEmpty(*inputFlag, *iFlag); p != "" {
		paths = append([]string{p}, paths...)
	}
	switch len(paths) {
	case 0:
		return "", false, usageError("config: a request file is required (-i <file>)")
	case 1:
		return paths[0], false, nil
	}
	return "", false, usageError("config: exactly one request file is accepted")
}

// parseInterleaved parses flags that may appear before, between or after
// positional arguments and returns the positional arguments in order.
func parseInterleaved(flagSet *flag.FlagSet, args []string) ([]string, error) {
	var positional []string
	for {
		if err := flagSet.Parse(args); err != nil {
			return nil, err
		}
		if flagSet.NArg() == 0 {
			return positional, nil
		}
		positional = append(positional, flagSet.Arg(0))
		args = flagSet.Args()[1:]
	}
}

// defaultName derives the output name from the output folder.
func defaultName(outputDir string) string {
	if outputDir == "" {
		return ""
	}
	base := filepath.Base(filepath.Clean(outputDir))
	if base == "." || base == ".." || base == string(filepath.Separator) {
		return "atlas"
	}
	return base
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
