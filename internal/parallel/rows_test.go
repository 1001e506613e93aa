package parallel

import "testing"

func TestBands(t *testing.T) {
	tests := []struct {
		name      string
		height, n int
		wantBands int
	}{
		{"single worker", 100, 1, 1},
		{"four workers", 100, 4, 4},
		{"small image", 20, 8, 2},
		{"one row", 1, 8, 1},
		{"zero workers", 50, 0, 1},
		{"uneven", 103, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bands := Bands(tt.height, tt.n)
			if len(bands) != tt.wantBands {
				t.Fatalf("len(Bands(%d, %d)) = %d, want %d", tt.height, tt.n, len(bands), tt.wantBands)
			}

			// Bands must tile [0, height) without gaps or overlaps.
			next := 0
			for _, b := range bands {
				if b[0] != next || b[1] <= b[0] {
					t.Fatalf("band %v does not continue at %d", b, next)
				}
				next = b[1]
			}
			if next != tt.height {
				t.Errorf("bands end at %d, want %d", next, tt.height)
			}
		})
	}

	if Bands(0, 4) != nil {
		t.Error("Bands(0, 4) should be nil")
	}
}
