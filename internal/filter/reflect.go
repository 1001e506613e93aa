package filter

import "github.com/gogpu/hbmp/internal/pixel"

func reflectRows(b *pixel.Buffer, y0, y1 int) {
	for y := y0; y < y1; y++ {
		row := b.Row(y)
		for i, j := 0, len(row)-1; i < j; i, j = i+1, j-1 {
			row[i], row[j] = row[j], row[i]
		}
	}
}
