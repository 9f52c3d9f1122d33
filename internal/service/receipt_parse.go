package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"ahorrapp/internal/dto"
)

var (
	amountRe = regexp.MustCompile(`(?:€|\$)?\s*([0-9]+(?:[.,][0-9]{1,2})?)\s*(?:€|\$)?`)
	// Lines likely to carry the receipt total, Spanish first.
	totalWords = []string{"total", "importe", "a pagar"}
	dateRes    = []*regexp.Regexp{
		regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`), // YYYY-MM-DD
		regexp.MustCompile(`\b(\d{2})/(\d{2})/(\d{4})\b`), // DD/MM/YYYY
		regexp.MustCompile(`\b(\d{2})-(\d{2})-(\d{4})\b`), // DD-MM-YYYY
	}
)

// parseReceiptText applies simple rules: the amount comes from a line
// mentioning the total (largest number on the receipt as fallback), the
// description from the first line with letters, the date from the first
// recognizable date pattern.
func parseReceiptText(text string) *dto.ReceiptScanResponse {
	lines := nonEmptyLines(text)
	return &dto.ReceiptScanResponse{
		Description: guessDescription(lines),
		Amount:      guessAmount(lines),
		Date:        guessDate(text),
	}
}

func guessDescription(lines []string) string {
	for _, line := range lines {
		if isTotalLine(line) {
			continue
		}
		if hasLetters(line) {
			return truncate(line, 64)
		}
	}
	return ""
}

func guessAmount(lines []string) float64 {
	// First pass: a number on a "total" line wins.
	for _, line := range lines {
		if !isTotalLine(line) {
			continue
		}
		if v, ok := largestNumber(line); ok {
			return v
		}
	}
	// Fallback: the largest number anywhere, typically the total.
	var best float64
	for _, line := range lines {
		if v, ok := largestNumber(line); ok && v > best {
			best = v
		}
	}
	return best
}

func guessDate(text string) string {
	for i, r := range dateRes {
		m := r.FindStringSubmatch(text)
		if len(m) != 4 {
			continue
		}
		if i == 0 {
			return fmt.Sprintf("%s-%s-%s", m[1], m[2], m[3])
		}
		return fmt.Sprintf("%s-%s-%s", m[3], m[2], m[1])
	}
	return ""
}

func largestNumber(line string) (float64, bool) {
	var best float64
	found := false
	for _, m := range amountRe.FindAllStringSubmatch(line, -1) {
		raw := strings.ReplaceAll(m[1], ",", ".")
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || v <= 0 {
			continue
		}
		if !found || v > best {
			best = v
			found = true
		}
	}
	return best, found
}

func isTotalLine(line string) bool {
	l := strings.ToLower(line)
	for _, w := range totalWords {
		if strings.Contains(l, w) {
			return true
		}
	}
	return false
}

func nonEmptyLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func hasLetters(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
