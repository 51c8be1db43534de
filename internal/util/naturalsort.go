package util

import (
	"sort"
	"strings"
	"unicode"

	"github.com/vrsandeep/cinevault-go/internal/models"
)

// NaturalSortLess orders strings the way people number episodes:
// digit runs compare by value, everything else case-insensitively.
func NaturalSortLess(a, b string) bool {
	for a != "" && b != "" {
		ra, rb := chunk(a), chunk(b)
		a, b = a[len(ra):], b[len(rb):]

		da, db := isDigits(ra), isDigits(rb)
		switch {
		case da && !db:
			return true
		case !da && db:
			return false
		case da && db:
			if c := compareDigits(ra, rb); c != 0 {
				return c < 0
			}
		default:
			la, lb := strings.ToLower(ra), strings.ToLower(rb)
			if la != lb {
				return la < lb
			}
		}
	}
	return a == "" && b != ""
}

// SortMediaFiles orders files by display title, falling back to the file
// name for untitled entries.
func SortMediaFiles(files []models.MediaFile) {
	sort.SliceStable(files, func(i, j int) bool {
		return NaturalSortLess(displayTitle(files[i]), displayTitle(files[j]))
	})
}

func displayTitle(m models.MediaFile) string {
	if m.Title != nil && *m.Title != "" {
		return *m.Title
	}
	return m.FileName
}

// chunk returns the leading run of digits or non-digits of s.
func chunk(s string) string {
	digit := unicode.IsDigit(rune(s[0]))
	for i, r := range s {
		if unicode.IsDigit(r) != digit {
			return s[:i]
		}
	}
	return s
}

func isDigits(s string) bool {
	return s != "" && unicode.IsDigit(rune(s[0]))
}

// compareDigits compares two digit runs by value without overflowing.
func compareDigits(a, b string) int {
	a = strings.TrimLeft(a, "0")
	b = strings.TrimLeft(b, "0")
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	return strings.Compare(a, b)
}
