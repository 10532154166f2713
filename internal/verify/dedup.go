package verify

import "strings"

// Task deduplication is a text heuristic carried over from the original
// product: two task titles are considered the same task when, after
// normalization, either contains the other. It can over-merge ("book hotel"
// vs "book hotel in Rome") and under-merge (reworded titles); it is kept
// behind these two functions so a stricter rule-ID-based identity can
// replace it without touching the engine.

// NormalizeTitle lowercases and trims a task title for comparison.
func NormalizeTitle(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// TitlesOverlap reports whether two titles identify the same task under the
// normalized bidirectional-substring heuristic. Empty titles never match.
func TitlesOverlap(a, b string) bool {
	na, nb := NormalizeTitle(a), NormalizeTitle(b)
	if na == "" || nb == "" {
		return false
	}
	return strings.Contains(na, nb) || strings.Contains(nb, na)
}

// filterDuplicates drops generated tasks whose title overlaps any of the
// existing titles. Order of survivors is preserved, which keeps engine runs
// deterministic.
func filterDuplicates(tasks []GeneratedTask, existingTitles []string) []GeneratedTask {
	if len(existingTitles) == 0 {
		return tasks
	}
	kept := tasks[:0:0]
	for _, task := range tasks {
		dup := false
		for _, existing := range existingTitles {
			if TitlesOverlap(task.Title, existing) {
				dup = true
				break
			}
		}
		if !dup {
			kept = append(kept, task)
		}
	}
	return kept
}
