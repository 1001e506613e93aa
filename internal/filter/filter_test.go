package filter

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		want Kind
	}{
		{"grayscale", Grayscale},
		{"greyscale", Grayscale},
		{"  Sepia ", Sepia},
		{"reflect", Reflect},
		{"REVERSE", Reflect},
		{"blur", Blur},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Parse(tt.name)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.name, err)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %v, want %v", tt.name, got, tt.want)
			}
		})
	}
}

func TestParseUnknown(t *testing.T) {
	for _, name := range []string{"", "invert", "blurr"} {
		if _, err := Parse(name); !errors.Is(err, ErrUnknownFilter) {
			t.Errorf("Parse(%q) error = %v, want %v", name, err, ErrUnknownFilter)
		}
	}
}

func TestParseList(t *testing.T) {
	got, err := ParseList([]string{"blur", "sepia", "blur"})
	if err != nil {
		t.Fatalf("ParseList error = %v", err)
	}
	if diff := cmp.Diff([]Kind{Blur, Sepia, Blur}, got); diff != "" {
		t.Errorf("ParseList mismatch (-want +got):\n%s", diff)
	}

	if _, err := ParseList([]string{"sepia", "nope"}); !errors.Is(err, ErrUnknownFilter) {
		t.Errorf("ParseList error = %v, want %v", err, ErrUnknownFilter)
	}
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		name string
		in   []Kind
		want []Kind
	}{
		{"empty", nil, []Kind{}},
		{"all reversed", []Kind{Blur, Grayscale, Reflect, Sepia}, DefaultOrder},
		{"duplicates", []Kind{Blur, Grayscale, Blur}, []Kind{Grayscale, Blur}},
		{"sepia before reflect", []Kind{Reflect, Sepia}, []Kind{Sepia, Reflect}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Canonical(tt.in)); diff != "" {
				t.Errorf("Canonical mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	tests := []struct {
		k    Kind
		want string
	}{
		{Grayscale, "grayscale"},
		{Sepia, "sepia"},
		{Reflect, "reflect"},
		{Blur, "blur"},
		{Kind(9), "Kind(9)"},
	}

	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("Kind(%d).String() = %q, want %q", uint8(tt.k), got, tt.want)
		}
	}
	if Kind(9).IsValid() {
		t.Error("Kind(9).IsValid() = true, want false")
	}
}

func TestApplyUnknownKindNoop(t *testing.T) {
	b := createPatternBuffer(t, 4, 4)
	orig := b.Clone()
	Apply(Kind(200), b)

	if !b.Equal(orig) {
		t.Error("unknown kind modified the buffer")
	}
}

func TestApplyAllTrace(t *testing.T) {
	b := createPatternBuffer(t, 8, 40)

	var got []Kind
	trace := WithTrace(func(k Kind, elapsed time.Duration) {
		if elapsed < 0 {
			t.Errorf("%v elapsed = %v, want >= 0", k, elapsed)
		}
		got = append(got, k)
	})
	ApplyAll([]Kind{Blur, Kind(42), Sepia, Blur}, b, trace, WithWorkers(3))

	if diff := cmp.Diff([]Kind{Blur, Sepia, Blur}, got); diff != "" {
		t.Errorf("traced kinds mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyAllNilBuffer(t *testing.T) {
	ApplyAll(DefaultOrder, nil)
}

func TestApplyAllOrder(t *testing.T) {
	// Reflect then grayscale equals grayscale then reflect, but sepia and
	// grayscale do not commute.
	a := createPatternBuffer(t, 9, 5)
	b := a.Clone()

	ApplyAll([]Kind{Sepia, Grayscale}, a)
	ApplyAll([]Kind{Grayscale, Sepia}, b)
	if a.Equal(b) {
		t.Error("sepia and grayscale commuted on a pattern image")
	}

	a = createPatternBuffer(t, 9, 5)
	b = a.Clone()
	ApplyAll([]Kind{Reflect, Grayscale}, a)
	ApplyAll([]Kind{Grayscale, Reflect}, b)
	if !a.Equal(b) {
		t.Error("reflect and grayscale did not commute")
	}
}

func TestApplyAllSequential(t *testing.T) {
	a := createPatternBuffer(t, 11, 7)
	b := a.Clone()

	ApplyAll(DefaultOrder, a)
	for _, k := range DefaultOrder {
		Apply(k, b)
	}
	if !a.Equal(b) {
		t.Error("ApplyAll differs from applying each filter in turn")
	}
}

func TestWorkersDeterministic(t *testing.T) {
	// Heights above the band minimum so the work is really split.
	for _, k := range []Kind{Grayscale, Sepia, Reflect, Blur} {
		t.Run(k.String(), func(t *testing.T) {
			serial := createPatternBuffer(t, 37, 101)
			par := serial.Clone()

			Apply(k, serial)
			Apply(k, par, WithWorkers(8))

			if !serial.Equal(par) {
				t.Errorf("%v with 8 workers differs from serial", k)
			}
		})
	}
}

func BenchmarkSepia(b *testing.B) {
	buf := createPatternBuffer(b, 640, 480)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Apply(Sepia, buf)
	}
}
