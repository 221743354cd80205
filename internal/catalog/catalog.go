package catalog

import (
	"cmp"
	"slices"
	"strconv"
	"time"

	"github.com/lawbot/billrag/internal/bill"
)

const notAvailable = "N/A"

// Entry 는 UI 목록 한 줄.
type Entry struct {
	Committee string
	Session   string
	Field     string
	Title     string
	Date      string
}

// SessionGroup 국회 회기별 목록
type SessionGroup struct {
	Session string
	Entries []Entry
}

func FromRecords(records []bill.Record) []Entry {
	entries := make([]Entry, 0, len(records))
	for _, r := range records {
		entries = append(entries, Entry{
			Committee: orNA(r.Committee),
			Session:   orNA(r.Session),
			Field:     orNA(r.Field),
			Title:     orNA(r.Title),
			Date:      orNA(r.Date),
		})
	}
	return entries
}

type Catalog struct {
	entries []Entry
}

func New(entries []Entry) *Catalog {
	return &Catalog{entries: entries}
}

func (c *Catalog) Len() int {
	return len(c.entries)
}

// Committees returns distinct committees in first-seen order.
func (c *Catalog) Committees() []string {
	return unique(c.entries, func(e Entry) (string, bool) { return e.Committee, true })
}

// Fields returns distinct fields of one committee in first-seen order.
func (c *Catalog) Fields(committee string) []string {
	return unique(c.entries, func(e Entry) (string, bool) { return e.Field, e.Committee == committee })
}

// Sessions 위원회와 법 분야로 거른 목록을 회기별로 묶는다.
// 회기는 오름차순, 회기 안에서는 게시일 내림차순.
func (c *Catalog) Sessions(committee, field string) []SessionGroup {
	var groups []SessionGroup
	index := map[string]int{}
	for _, e := range c.entries {
		if e.Committee != committee || e.Field != field {
			continue
		}
		i, ok := index[e.Session]
		if !ok {
			i = len(groups)
			index[e.Session] = i
			groups = append(groups, SessionGroup{Session: e.Session})
		}
		groups[i].Entries = append(groups[i].Entries, e)
	}

	slices.SortFunc(groups, func(a, b SessionGroup) int { return compareSession(a.Session, b.Session) })
	for _, g := range groups {
		slices.SortStableFunc(g.Entries, byDateDesc)
	}
	return groups
}

func compareSession(a, b string) int {
	na, errA := strconv.Atoi(a)
	nb, errB := strconv.Atoi(b)
	if errA == nil && errB == nil {
		return cmp.Compare(na, nb)
	}
	return cmp.Compare(a, b)
}

func byDateDesc(a, b Entry) int {
	ta, okA := parseDate(a.Date)
	tb, okB := parseDate(b.Date)
	switch {
	case okA && okB:
		return tb.Compare(ta)
	case okA:
		return -1
	case okB:
		return 1
	default:
		return 0
	}
}

var dateLayouts = []string{"2006-01-02", "2006.01.02", "2006/01/02", "20060102"}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders a listing date as YYYY-MM-DD when it can be parsed.
func FormatDate(s string) string {
	if t, ok := parseDate(s); ok {
		return t.Format("2006-01-02")
	}
	return s
}

func unique(entries []Entry, key func(Entry) (string, bool)) []string {
	seen := map[string]struct{}{}
	var out []string
	for _, e := range entries {
		k, ok := key(e)
		if !ok {
			continue
		}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
