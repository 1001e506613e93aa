package parallel

// minBandRows keeps bands from becoming so thin that scheduling dominates.
const minBandRows = 16

// Bands splits [0, height) into at most n contiguous half-open ranges of
// near-equal size. It returns nil for a non-positive height.
func Bands(height, n int) [][2]int {
	if height <= 0 {
		return nil
	}
	n = max(1, min(n, (height+minBandRows-1)/minBandRows))

	bands := make([][2]int, 0, n)
	size, rem := height/n, height%n
	lo := 0
	for i := range n {
		hi := lo + size
		if i < rem {
			hi++
		}
		bands = append(bands, [2]int{lo, hi})
		lo = hi
	}
	return bands
}
