package kitelog

import (
	"bytes"
	"fmt"
	"text/tabwriter"
	"time"
)

type duration struct {
	name     string
	duration time.Duration
}

// Durations tracks durations of named stages, in the order they were recorded
type Durations []duration

// Record records a duration
func (t *Durations) Record(name string, d time.Duration) {
	*t = append(*t, duration{name, d})
}

// Since records the time elapsed since start under name
func (t *Durations) Since(name string, start time.Time) {
	t.Record(name, time.Since(start))
}

// Total is the sum of all recorded durations
func (t Durations) Total() time.Duration {
	var total time.Duration
	for _, entry := range t {
		total += entry.duration
	}
	return total
}

// Flush writes the recorded durations as an aligned table to the given handler
// and resets the tracker
func (t *Durations) Flush(i Interface) {
	if len(*t) == 0 {
		return
	}

	var b bytes.Buffer
	tw := tabwriter.NewWriter(&b, 4, 4, 0, ' ', 0)
	for _, entry := range *t {
		fmt.Fprintf(tw, "   %s\t%s\n", entry.name, entry.duration)
	}
	fmt.Fprintf(tw, "   %s\t%s\n", "total", t.Total())
	tw.Flush()

	i.Println(b.String())
	*t = nil
}
