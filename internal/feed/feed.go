// Package feed is the event-announcement sink: engines and collaborators
// push fire-and-forget announcements, UIs read the recent tail.
package feed

import (
	"io"
	"strconv"
	"sync"

	"github.com/fatih/color"

	"bourse/internal/market"
)

const defaultCapacity = 100

// Feed keeps the most recent announcements in a bounded buffer and mirrors
// each one to any attached writer.
type Feed struct {
	mu      sync.Mutex
	entries []market.Announcement
	cap     int

	console io.Writer
}

func New() *Feed {
	return &Feed{cap: defaultCapacity}
}

// WithConsole mirrors announcements to w, colored per the announcement.
func (f *Feed) WithConsole(w io.Writer) *Feed {
	f.console = w
	return f
}

func (f *Feed) Announce(a market.Announcement) {
	f.mu.Lock()
	f.entries = append(f.entries, a)
	if len(f.entries) > f.cap {
		f.entries = f.entries[len(f.entries)-f.cap:]
	}
	w := f.console
	f.mu.Unlock()

	if w == nil {
		return
	}
	title := color.New(color.Bold)
	body := color.New()
	if r, g, b, ok := parseHex(a.TitleColor); ok {
		title = color.RGB(r, g, b).Add(color.Bold)
	}
	if r, g, b, ok := parseHex(a.DescriptionColor); ok {
		body = color.RGB(r, g, b)
	}
	title.Fprintf(w, "%s ", a.Title)
	body.Fprintln(w, a.Description)
}

// Recent returns up to n announcements, newest last.
func (f *Feed) Recent(n int) []market.Announcement {
	f.mu.Lock()
	defer f.mu.Unlock()
	start := len(f.entries) - n
	if start < 0 {
		start = 0
	}
	out := make([]market.Announcement, len(f.entries)-start)
	copy(out, f.entries[start:])
	return out
}

func parseHex(hex string) (r, g, b int, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	channels := [3]int{}
	for i := 0; i < 3; i++ {
		v, err := strconv.ParseInt(hex[1+i*2:3+i*2], 16, 32)
		if err != nil {
			return 0, 0, 0, false
		}
		channels[i] = int(v)
	}
	return channels[0], channels[1], channels[2], true
}
