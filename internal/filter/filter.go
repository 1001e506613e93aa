package filter

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/gogpu/hbmp/internal/parallel"
	"github.com/gogpu/hbmp/internal/pixel"
)

// ErrUnknownFilter is returned by Parse for names outside the filter set.
var ErrUnknownFilter = errors.New("filter: unknown filter")

// Kind identifies one of the supported filters.
type Kind uint8

const (
	// Grayscale sets every channel to the rounded channel average.
	Grayscale Kind = iota

	// Sepia applies a warm brown tone.
	Sepia

	// Reflect mirrors every row horizontally.
	Reflect

	// Blur approximates a Gaussian blur with three 3x3 box passes.
	Blur

	// kindCount is the number of kinds (for internal use).
	kindCount
)

// DefaultOrder is the order in which flag-selected filters are applied.
var DefaultOrder = []Kind{Sepia, Reflect, Grayscale, Blur}

var kindNames = [kindCount]string{
	Grayscale: "grayscale",
	Sepia:     "sepia",
	Reflect:   "reflect",
	Blur:      "blur",
}

// aliases accepted by Parse in addition to the canonical names.
var aliases = map[string]Kind{
	"greyscale": Grayscale,
	"reverse":   Reflect,
}

// String returns the canonical filter name.
func (k Kind) String() string {
	if k >= kindCount {
		return fmt.Sprintf("Kind(%d)", uint8(k))
	}
	return kindNames[k]
}

// IsValid returns true if k is a known filter.
func (k Kind) IsValid() bool {
	return k < kindCount
}

// Parse returns the Kind for a filter name. Matching ignores case and
// surrounding space.
func Parse(name string) (Kind, error) {
	n := strings.ToLower(strings.TrimSpace(name))
	for k, s := range kindNames {
		if s == n {
			return Kind(k), nil
		}
	}
	if k, ok := aliases[n]; ok {
		return k, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
}

// ParseList parses every name, stopping at the first unknown one.
func ParseList(names []string) ([]Kind, error) {
	kinds := make([]Kind, 0, len(names))
	for _, name := range names {
		k, err := Parse(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// Canonical returns the distinct kinds of the set in DefaultOrder.
func Canonical(kinds []Kind) []Kind {
	return lo.Filter(DefaultOrder, func(k Kind, _ int) bool {
		return lo.Contains(kinds, k)
	})
}

// Option configures how filters are applied.
type Option func(*options)

type options struct {
	workers int
	trace   func(Kind, time.Duration)
}

// WithWorkers partitions rows across n goroutines. n <= 1 runs on the
// calling goroutine. The output does not depend on n.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithTrace calls fn after each filter with the time it took.
func WithTrace(fn func(k Kind, elapsed time.Duration)) Option {
	return func(o *options) {
		o.trace = fn
	}
}

// Apply runs filter k over b in place. Unknown kinds leave b unchanged.
func Apply(k Kind, b *pixel.Buffer, opts ...Option) {
	ApplyAll([]Kind{k}, b, opts...)
}

// ApplyAll runs the filters in order, each over the full output of the
// previous one. All filters share one worker pool. Unknown kinds are skipped.
func ApplyAll(kinds []Kind, b *pixel.Buffer, opts ...Option) {
	if b == nil || len(kinds) == 0 {
		return
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var pool *parallel.WorkerPool
	if o.workers > 1 {
		pool = parallel.NewWorkerPool(o.workers)
		defer pool.Close()
	}

	for _, k := range kinds {
		if !k.IsValid() {
			continue
		}
		start := time.Now()
		apply(k, b, pool)
		if o.trace != nil {
			o.trace(k, time.Since(start))
		}
	}
}

func apply(k Kind, b *pixel.Buffer, pool *parallel.WorkerPool) {
	switch k {
	case Grayscale:
		pool.Rows(b.Height(), func(y0, y1 int) { grayscaleRows(b, y0, y1) })
	case Sepia:
		pool.Rows(b.Height(), func(y0, y1 int) { sepiaRows(b, y0, y1) })
	case Reflect:
		pool.Rows(b.Height(), func(y0, y1 int) { reflectRows(b, y0, y1) })
	case Blur:
		blur(b, pool)
	}
}
