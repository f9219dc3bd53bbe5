package csv

import "strings"

var candidateDelimiters = []rune{',', ';', '\t'}

// DetectDelimiter picks the delimiter whose per-line count is highest and
// most consistent across the first few non-empty lines. Defaults to comma.
func DetectDelimiter(content string) rune {
	sample := make([]string, 0, 5)
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		sample = append(sample, trimmed)
		if len(sample) >= 5 {
			break
		}
	}
	if len(sample) == 0 {
		return ','
	}

	best := ','
	maxConsistency := 0.0
	for _, delim := range candidateDelimiters {
		counts := make([]int, len(sample))
		sum := 0
		for i, line := range sample {
			counts[i] = strings.Count(line, string(delim))
			sum += counts[i]
		}
		avg := float64(sum) / float64(len(sample))
		if avg == 0 {
			continue
		}

		variance := 0.0
		for _, c := range counts {
			diff := float64(c) - avg
			variance += diff * diff
		}
		variance /= float64(len(sample))

		// Reward frequent delimiters, penalize ones whose count jumps
		// around between lines (likely in-field punctuation).
		consistency := avg / (1.0 + variance)
		if consistency > maxConsistency {
			maxConsistency = consistency
			best = delim
		}
	}
	return best
}
