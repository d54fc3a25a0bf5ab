package validate

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	reID       = regexp.MustCompile(`^[A-Za-z0-9_-]{1,64}$`)
	reUsername = regexp.MustCompile(`^[A-Za-z0-9._-]{1,30}$`)
	reCategory = regexp.MustCompile(`^(Internet|Dish)$`)
	rePinned   = regexp.MustCompile(`^(Reserved|Deprecated)$`)
	reTaskStat = regexp.MustCompile(`^(Pending|In Progress|Completed)$`)
	reEmail    = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
)

// ID validates a resource identifier (material/request/task ids).
func ID(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reID.MatchString(s)
}

func Username(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != "" && reUsername.MatchString(s)
}

// Qty parses a strictly positive integer quantity. Non-integer or
// non-positive input is rejected, never clamped.
func Qty(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// QtyInt checks an already-decoded quantity (JSON bodies).
func QtyInt(n int) bool { return n >= 1 }

func Category(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reCategory.MatchString(s)
}

// PinnedStatus validates a manual status override (Reserved/Deprecated).
// "auto" asks for the override to be cleared.
func PinnedStatus(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s == "auto" || rePinned.MatchString(s)
}

func TaskStatus(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, reTaskStat.MatchString(s)
}

func Email(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if len(s) == 0 || len(s) > 50 {
		return "", false
	}
	return s, reEmail.MatchString(s)
}

// Name validates a displayable name with a reasonable max length.
func Name(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" || len(s) > 100 {
		return "", false
	}
	return s, true
}

// Note trims free text and caps it; empty notes are fine.
func Note(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > 500 {
		s = s[:500]
	}
	return s
}

// Date parses a report-range day as YYYY-MM-DD.
func Date(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
