package workflow

import (
	"fmt"
	"sync"

	"backoffice/internal/backend/models"
	"backoffice/internal/verification"
	dErrors "backoffice/pkg/domain-errors"
)

// Filter selects a tab of the reviewer's worklist.
type Filter string

const (
	FilterPending  Filter = "pending"
	FilterVerified Filter = "verified"
	FilterRejected Filter = "rejected"
	FilterAll      Filter = "all"
)

func Filters() []Filter {
	return []Filter{FilterPending, FilterVerified, FilterRejected, FilterAll}
}

// ParseFilter defaults to the pending tab when raw is empty.
func ParseFilter(raw string) (Filter, error) {
	if raw == "" {
		return FilterPending, nil
	}
	for _, f := range Filters() {
		if Filter(raw) == f {
			return f, nil
		}
	}
	return "", dErrors.New(dErrors.CodeInvalidInput, fmt.Sprintf("unknown filter %q", raw))
}

func (f Filter) matches(status verification.Status) bool {
	switch f {
	case FilterPending:
		return status == verification.StatusPending
	case FilterVerified:
		return status == verification.StatusVerified
	case FilterRejected:
		return status == verification.StatusRejected
	case FilterAll:
		return true
	default:
		return false
	}
}

// Entry is one client under review together with its uploaded documents.
type Entry struct {
	Client    models.Client     `json:"client"`
	Documents []models.Document `json:"documents"`
}

// Worklist is a reviewer's local copy of the bank's clients.
type Worklist struct {
	mu      sync.RWMutex
	entries []Entry
}

func NewWorklist(entries []Entry) *Worklist {
	return &Worklist{entries: entries}
}

// Filter returns the entries on tab f, in backend order.
func (w *Worklist) Filter(f Filter) []Entry {
	w.mu.RLock()
	defer w.mu.RUnlock()
	out := make([]Entry, 0, len(w.entries))
	for _, e := range w.entries {
		if f.matches(e.Client.VerificationStatus) {
			out = append(out, e)
		}
	}
	return out
}

func (w *Worklist) Pending() []Entry {
	return w.Filter(FilterPending)
}

// Counts returns the size of every tab.
func (w *Worklist) Counts() map[Filter]int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	counts := make(map[Filter]int, len(Filters()))
	for _, f := range Filters() {
		counts[f] = 0
	}
	for _, e := range w.entries {
		for _, f := range Filters() {
			if f.matches(e.Client.VerificationStatus) {
				counts[f]++
			}
		}
	}
	return counts
}

// Lookup finds the entry for clientID.
func (w *Worklist) Lookup(clientID int64) (Entry, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, e := range w.entries {
		if e.Client.ID == clientID {
			return e, true
		}
	}
	return Entry{}, false
}

// Replace swaps in the updated client, keeping its documents. It reports
// whether the client was present.
func (w *Worklist) Replace(client models.Client) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	for i := range w.entries {
		if w.entries[i].Client.ID == client.ID {
			w.entries[i].Client = client
			return true
		}
	}
	return false
}
