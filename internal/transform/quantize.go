package transform

import (
	"math"

	"github.com/leandrodaf/midi2gb/internal/smf"
)

const (
	// minFactorDivisor bounds candidate factors from below at mostCommon/16.
	minFactorDivisor = 16
	// smallestGapSlack lets candidates exceed the smallest gap by 20%.
	smallestGapSlack = 1.2
)

/*
DividingFactor finds the tick unit that all gaps of the sequence are best
expressed in.

The most frequent positive delta-time is taken as the reference; among equally
frequent values the first one met wins. When no shorter gap exists the
reference itself is the unit. Otherwise every proper divisor of the reference
between reference/16 and 1.2 times the shortest gap is scored by how far each
shorter gap is from being a whole multiple (or whole fraction) of it. The
lowest score wins, larger divisors first on equal scores. Without candidates
the unit is 1.
*/
func DividingFactor(events []smf.Event) int {
	counts := make(map[int]int)
	var seen []int
	for _, e := range events {
		if e.DeltaTime <= 0 {
			continue
		}
		if counts[e.DeltaTime] == 0 {
			seen = append(seen, e.DeltaTime)
		}
		counts[e.DeltaTime]++
	}
	if len(seen) == 0 {
		return 1
	}

	mostCommon := seen[0]
	for _, d := range seen {
		if counts[d] > counts[mostCommon] {
			mostCommon = d
		}
	}

	var smaller []int
	for _, d := range seen {
		if d < mostCommon {
			smaller = append(smaller, d)
		}
	}
	if len(smaller) == 0 {
		return mostCommon
	}
	shortest := smaller[0]
	for _, d := range smaller {
		shortest = min(shortest, d)
	}

	best, bestScore := 0, math.Inf(1)
	for f := 2; f <= mostCommon/2; f++ {
		if mostCommon%f != 0 ||
			float64(f) >= float64(shortest)*smallestGapSlack ||
			float64(f) < float64(mostCommon)/minFactorDivisor {
			continue
		}
		score := 0.0
		for _, s := range smaller {
			ratio := float64(max(f, s)) / float64(min(f, s))
			score += ratio - math.Floor(ratio)
		}
		if score < bestScore || score == bestScore && f > best {
			best, bestScore = f, score
		}
	}
	if best == 0 {
		return 1
	}
	return best
}

// DivideDeltaTime divides every delta-time by factor, rounding halves to even.
func DivideDeltaTime(events []smf.Event, factor int) []smf.Event {
	factor = max(factor, 1)
	for i := range events {
		events[i].DeltaTime = int(math.RoundToEven(float64(events[i].DeltaTime) / float64(factor)))
	}
	return events
}

// Quantize divides the sequence by its DividingFactor and returns the factor used.
func Quantize(events []smf.Event) ([]smf.Event, int) {
	factor := DividingFactor(events)
	return DivideDeltaTime(events, factor), factor
}
