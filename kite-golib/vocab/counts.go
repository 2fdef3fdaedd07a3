package vocab

import (
	"encoding/json"
	"io"
	"sort"
)

// Entry is a token and the number of times it was seen
type Entry struct {
	Token string
	Count int
}

// Counts is a frequency table that remembers the order in which tokens were
// first seen, so that ties can be broken deterministically.
// It is not safe for concurrent use; each counting pass owns its own table.
type Counts struct {
	index   map[string]int
	entries []Entry
}

// NewCounts returns an empty table
func NewCounts() *Counts {
	return &Counts{
		index: make(map[string]int),
	}
}

// Hit increments the count of tok by count
func (c *Counts) Hit(tok string, count int) {
	idx, ok := c.index[tok]
	if !ok {
		idx = len(c.entries)
		c.index[tok] = idx
		c.entries = append(c.entries, Entry{Token: tok})
	}
	c.entries[idx].Count += count
}

// HitAll increments the count of every token by one
func (c *Counts) HitAll(toks []string) {
	for _, tok := range toks {
		c.Hit(tok, 1)
	}
}

// Count returns the count of tok, zero if it was never seen
func (c *Counts) Count(tok string) int {
	if idx, ok := c.index[tok]; ok {
		return c.entries[idx].Count
	}
	return 0
}

// Len returns the number of distinct tokens
func (c *Counts) Len() int {
	return len(c.entries)
}

// Entries returns a copy of the entries in first-seen order
func (c *Counts) Entries() []Entry {
	return append([]Entry(nil), c.entries...)
}

// Sorted returns the entries by descending count. Entries with equal counts
// keep their first-seen order.
func (c *Counts) Sorted() []Entry {
	entries := c.Entries()
	sort.Stable(SortPopularity(entries))
	return entries
}

// Add merges other into c. Tokens new to c are appended in other's first-seen order.
func (c *Counts) Add(other *Counts) {
	for _, e := range other.entries {
		c.Hit(e.Token, e.Count)
	}
}

// WriteTo writes the table as one JSON object per line, in first-seen order
func (c *Counts) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, e := range c.entries {
		buf, err := json.Marshal(e)
		if err != nil {
			return total, err
		}
		n, err := w.Write(append(buf, '\n'))
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// ReadFrom adds the entries written by WriteTo to the table
func (c *Counts) ReadFrom(r io.Reader) (int64, error) {
	js := json.NewDecoder(r)
	for {
		var e Entry
		err := js.Decode(&e)
		if err == io.EOF {
			return js.InputOffset(), nil
		}
		if err != nil {
			return js.InputOffset(), err
		}
		c.Hit(e.Token, e.Count)
	}
}

// SortPopularity implements sort.Interface to sort by descending count.
// Use it with sort.Stable to break ties by insertion order.
type SortPopularity []Entry

// Len implements sort.Interface
func (b SortPopularity) Len() int { return len(b) }

// Less implements sort.Interface
func (b SortPopularity) Less(i, j int) bool { return b[i].Count > b[j].Count }

// Swap implements sort.Interface
func (b SortPopularity) Swap(i, j int) { b[i], b[j] = b[j], b[i] }
