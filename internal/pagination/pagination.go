// Package pagination splits generated story prose into reader-sized pages.
// Splitting is a pure function of the text: the same input always yields the
// same pages, so a restarted pipeline reproduces identical page boundaries.
package pagination

import "strings"

// Target words-per-page range for the reader UI.
const (
	MinWordsPerPage = 50
	MaxWordsPerPage = 60
)

// Paginate splits the full story text into consecutive pages of roughly
// MinWordsPerPage-MaxWordsPerPage whitespace-delimited words, preserving word
// order. Every page except possibly the last falls within the target range;
// the last page may exceed MaxWordsPerPage only when a short tail had to be
// merged into it.
func Paginate(fullText string) []string {
	words := strings.Fields(fullText)
	totalWords := len(words)

	// Estimate the page count from the midpoint of the target range.
	averageWordsPerPage := (MinWordsPerPage + MaxWordsPerPage) / 2
	estimatedPages := ceilDiv(totalWords, averageWordsPerPage)

	if estimatedPages <= 1 {
		return []string{fullText}
	}

	// Distribute words evenly, clamped into the target range.
	wordsPerPage := ceilDiv(totalWords, estimatedPages)
	if wordsPerPage < MinWordsPerPage {
		wordsPerPage = MinWordsPerPage
	} else if wordsPerPage > MaxWordsPerPage {
		wordsPerPage = MaxWordsPerPage
	}

	pages := slicePages(words, wordsPerPage)

	// A too-short final page gets rebalanced: re-slice one page shorter if
	// that keeps pages within the maximum, otherwise merge the last two.
	lastPageWords := len(strings.Fields(pages[len(pages)-1]))
	if lastPageWords < MinWordsPerPage && len(pages) > 1 {
		newWordsPerPage := ceilDiv(totalWords, len(pages)-1)
		if newWordsPerPage <= MaxWordsPerPage {
			pages = slicePages(words, newWordsPerPage)
		} else {
			lastPage := pages[len(pages)-1]
			pages = pages[:len(pages)-1]
			pages[len(pages)-1] = pages[len(pages)-1] + " " + lastPage
		}
	}

	return pages
}

// slicePages chunks words into consecutive pages of wordsPerPage words each,
// joining every chunk back into a single text block.
func slicePages(words []string, wordsPerPage int) []string {
	pages := make([]string, 0, ceilDiv(len(words), wordsPerPage))
	for i := 0; i < len(words); i += wordsPerPage {
		end := i + wordsPerPage
		if end > len(words) {
			end = len(words)
		}
		pages = append(pages, strings.Join(words[i:end], " "))
	}
	return pages
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
