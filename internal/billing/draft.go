package billing

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pavilo/pavilo-billing/internal/shared"
)

// Draft is an invoice under construction. Customer fields, lines, tax rate
// and the pre-finalization status flag stay mutable until Finalize, which
// consumes the draft.
type Draft struct {
	ID        string           `json:"id"`
	Customer  CustomerSnapshot `json:"customer"`
	Items     []LineItem       `json:"items"`
	GSTRate   float64          `json:"gstRate"`
	Status    Status           `json:"status"`
	StartedAt time.Time        `json:"startedAt"`
}

func newDraft() *Draft {
	return &Draft{
		ID:        uuid.NewString(),
		Items:     []LineItem{emptyLine()},
		GSTRate:   DefaultGSTRate,
		Status:    StatusPending,
		StartedAt: time.Now(),
	}
}

func emptyLine() LineItem {
	return LineItem{ID: shared.NewRecordID(), Quantity: 1}
}

func (d *Draft) line(id string) *LineItem {
	for i := range d.Items {
		if d.Items[i].ID == id {
			return &d.Items[i]
		}
	}
	return nil
}

// draftRegistry holds in-flight drafts. Drafts are process-local form state
// and are never written to the storage adapter.
type draftRegistry struct {
	mu     sync.Mutex
	drafts map[string]*Draft
}

func newDraftRegistry() *draftRegistry {
	return &draftRegistry{drafts: make(map[string]*Draft)}
}

func (r *draftRegistry) put(d *Draft) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts[d.ID] = d
}

// view returns a snapshot of the draft, or nil. The items slice is copied
// while the lock is held so readers never share memory with with's mutations.
func (r *draftRegistry) view(id string) *Draft {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drafts[id]
	if !ok {
		return nil
	}
	copied := *d
	copied.Items = append([]LineItem(nil), d.Items...)
	return &copied
}

func (r *draftRegistry) remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.drafts, id)
}

// with runs fn while holding the registry lock, serializing draft mutations.
func (r *draftRegistry) with(id string, fn func(*Draft) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.drafts[id]
	if !ok {
		return errDraftNotFound(id)
	}
	return fn(d)
}
