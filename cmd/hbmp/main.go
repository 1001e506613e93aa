// Command hbmp applies filters to a 24-bit uncompressed BMP image.
//
// Usage:
//
//	hbmp [OPTIONS] [FILE]
//
// The image is read from FILE, or stdin if FILE is omitted, and written to
// stdout unless -o is given. Filters selected by flags are applied in the
// order sepia, reflect, grayscale, blur, whatever order the flags appear in.
// A recipe (-c) lists filters in the order they run.
package main

import (
	"errors"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/hbmp"
	"github.com/gogpu/hbmp/internal/filter"
	"github.com/gogpu/hbmp/internal/recipe"
	"github.com/gogpu/hbmp/internal/stream"
)

var (
	errUsage = errors.New("usage")
	errRead  = errors.New("failed to read input file")
	errWrite = errors.New("failed to write to output file")
)

type options struct {
	filters map[filter.Kind]*bool
	output  string
	config  string
	workers int
	verbose bool
	preview string
}

func main() {
	os.Exit(execute(newRootCmd()))
}

// execute runs cmd and reports a failure on its error stream. It returns the
// process exit status.
func execute(cmd *cobra.Command) int {
	err := cmd.Execute()
	if err == nil {
		return 0
	}
	hbmp.Logger().Debug("hbmp: failed", "err", err)

	stderr := cmd.ErrOrStderr()
	fmt.Fprintln(stderr, describe(err))
	if errors.Is(err, errUsage) {
		fmt.Fprint(stderr, cmd.UsageString())
	}
	return 1
}

// describe maps err to the message printed for it.
func describe(err error) string {
	switch {
	case errors.Is(err, hbmp.ErrUnsupportedFormat):
		return "Error - unsupported file format."
	case errors.Is(err, hbmp.ErrCorruptDimensions):
		return "Error - corrupted BMP file: width or height is zero."
	case errors.Is(err, hbmp.ErrWidthOverflow):
		return "Error - image width is too large for this system to process."
	case errors.Is(err, hbmp.ErrDimensionOverflow):
		return "Error - Image dimensions are too large for this system to process."
	case errors.Is(err, hbmp.ErrAllocation):
		return "Error - not enough memory to store image."
	case errors.Is(err, hbmp.ErrTruncatedHeader),
		errors.Is(err, hbmp.ErrTruncatedScanline),
		errors.Is(err, errRead):
		return "Error - failed to read input file."
	case errors.Is(err, hbmp.ErrWriteFailure), errors.Is(err, errWrite):
		return "Error - failed to write to output file."
	default:
		return fmt.Sprintf("Error - %v", err)
	}
}

func newRootCmd() *cobra.Command {
	opts := &options{filters: make(map[filter.Kind]*bool)}

	cmd := &cobra.Command{
		Use:           "hbmp [OPTIONS] [FILE]",
		Short:         "Apply filters to a 24-bit BMP image",
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(_ *cobra.Command, args []string) error {
			if len(args) > 1 {
				return fmt.Errorf("%w: accepts at most one input file, received %d", errUsage, len(args))
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return run(cmd, opts, input)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", errUsage, err)
	})

	flags := cmd.Flags()
	flags.SortFlags = false
	flags.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if name == "reflect" {
			name = "reverse"
		}
		return pflag.NormalizedName(name)
	})
	opts.filters[filter.Grayscale] = flags.BoolP("grayscale", "g", false, "convert the image to grayscale")
	opts.filters[filter.Reflect] = flags.BoolP("reverse", "r", false, "mirror the image horizontally (alias --reflect)")
	opts.filters[filter.Sepia] = flags.BoolP("sepia", "s", false, "apply a sepia tone")
	opts.filters[filter.Blur] = flags.BoolP("blur", "b", false, "blur the image")
	flags.StringVarP(&opts.output, "output", "o", "", "write the result to `FILE` (default stdout)")
	flags.StringVarP(&opts.config, "config", "c", "", "read a filter recipe from `FILE`")
	flags.IntVarP(&opts.workers, "workers", "w", 0, "split rows across `N` goroutines")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug information to stderr")
	flags.StringVar(&opts.preview, "png", "", "also write a PNG preview to `FILE`")

	return cmd
}

// settings is the merged result of flags and recipe.
type settings struct {
	kinds   []filter.Kind
	output  string
	preview string
	workers int
	level   slog.Level
}

func resolve(cmd *cobra.Command, opts *options) (*settings, error) {
	s := &settings{level: slog.LevelWarn}

	if opts.config != "" {
		r, err := recipe.Load(opts.config)
		if err != nil {
			return nil, err
		}
		s.kinds = r.Kinds()
		s.output = r.Output
		s.preview = r.Preview
		s.workers = r.Workers
		s.level = r.Level()
	}

	set := lo.FilterMap(lo.Keys(opts.filters), func(k filter.Kind, _ int) (filter.Kind, bool) {
		return k, *opts.filters[k]
	})
	if selected := filter.Canonical(set); len(selected) > 0 {
		s.kinds = selected
	}

	flags := cmd.Flags()
	if flags.Changed("output") {
		s.output = opts.output
	}
	if flags.Changed("png") {
		s.preview = opts.preview
	}
	if flags.Changed("workers") {
		s.workers = opts.workers
	}
	if opts.verbose {
		s.level = slog.LevelDebug
	}
	if s.workers < 0 {
		return nil, fmt.Errorf("%w: workers must be >= 0, got %d", errUsage, s.workers)
	}
	return s, nil
}

func run(cmd *cobra.Command, opts *options, input string) error {
	s, err := resolve(cmd, opts)
	if err != nil {
		return err
	}

	stderr := cmd.ErrOrStderr()
	hbmp.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: s.level})))

	// The whole input is decoded before any output is opened, so the output
	// may name the input file.
	h, buf, err := decodeInput(input, cmd.InOrStdin())
	if err != nil {
		return err
	}

	hbmp.Apply(s.kinds, buf, hbmp.WithWorkers(s.workers))

	n, err := writeOutputs(s, h, buf, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	if s.level <= slog.LevelDebug {
		names := lo.Map(s.kinds, func(k filter.Kind, _ int) string { return k.String() })
		p := message.NewPrinter(language.English)
		p.Fprintf(stderr, "%s: %d x %d pixels, %d bytes written, filters: [%s]\n",
			lo.Ternary(input == "", "stdin", input), buf.Width(), buf.Height(), n, strings.Join(names, " "))
	}
	return nil
}

func decodeInput(path string, stdin io.Reader) (*hbmp.Header, *hbmp.Buffer, error) {
	in, err := stream.OpenInput(path, stdin)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", errRead, err)
	}
	defer in.Close()
	return hbmp.Decode(in)
}

// writeOutputs writes the image and the optional preview, committing both
// only when both succeed. It returns the number of BMP bytes written.
func writeOutputs(s *settings, h *hbmp.Header, buf *hbmp.Buffer, stdout io.Writer) (int64, error) {
	out, err := stream.CreateOutput(s.output, stdout)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", errWrite, err)
	}
	defer out.Abort()

	if err := hbmp.Encode(out, h, buf); err != nil {
		return 0, err
	}

	var preview *stream.Output
	if s.preview != "" {
		preview, err = stream.CreateOutput(s.preview, stdout)
		if err != nil {
			return 0, fmt.Errorf("%w: %w", errWrite, err)
		}
		defer preview.Abort()
		if err := png.Encode(preview, hbmp.ToImage(h, buf)); err != nil {
			return 0, fmt.Errorf("%w: preview: %w", errWrite, err)
		}
	}

	if err := out.Commit(); err != nil {
		return 0, fmt.Errorf("%w: %w", errWrite, err)
	}
	if preview != nil {
		if err := preview.Commit(); err != nil {
			return 0, fmt.Errorf("%w: preview: %w", errWrite, err)
		}
	}
	return out.Written(), nil
}
