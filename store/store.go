// Package store keeps generated content while it moves through the
// approval lifecycle. Records live in memory; approved and posted
// content survives only for the life of the process.
package store

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/spetersoncode/postpilot/images"
	"github.com/spetersoncode/postpilot/pipeline"
)

// Lifecycle statuses for stored content.
const (
	StatusPendingApproval = "pending_approval"
	StatusApproved        = "approved"
	StatusRejected        = "rejected"
	StatusPosted          = "posted"
	StatusPostFailed      = "post_failed"
)

// validTransitions maps each status to the statuses it may move to.
var validTransitions = map[string][]string{
	StatusPendingApproval: {StatusApproved, StatusRejected},
	StatusApproved:        {StatusPosted, StatusPostFailed},
	StatusPostFailed:      {StatusPosted, StatusPostFailed},
}

// Record is one piece of generated content tracked through approval.
type Record struct {
	ID        string           `json:"id"`
	Result    *pipeline.Result `json:"result"`
	Images    []images.Image   `json:"images,omitempty"`
	ChatID    int64            `json:"chat_id,omitempty"`
	Status    string           `json:"status"`
	PostID    string           `json:"post_id,omitempty"`
	Error     string           `json:"error,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ErrNotFound is returned when no record has the requested id.
type ErrNotFound struct{ ID string }

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("store: content %s not found", e.ID)
}

// ErrInvalidTransition is returned for a disallowed status change.
type ErrInvalidTransition struct {
	ID   string
	From string
	To   string
}

func (e *ErrInvalidTransition) Error() string {
	return fmt.Sprintf("store: content %s cannot move from %s to %s", e.ID, e.From, e.To)
}

// Store is a thread-safe in-memory content store.
type Store struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// New creates an empty store.
func New() *Store {
	return &Store{records: make(map[string]*Record)}
}

// Save adds a generation result awaiting approval and returns its record.
func (s *Store) Save(result *pipeline.Result, imgs []images.Image, chatID int64) *Record {
	now := time.Now()
	rec := &Record{
		ID:        uuid.NewString(),
		Result:    result,
		Images:    imgs,
		ChatID:    chatID,
		Status:    StatusPendingApproval,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.records[rec.ID] = rec
	s.mu.Unlock()
	return rec
}

// Get returns a copy of the record with the given id.
func (s *Store) Get(id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, &ErrNotFound{ID: id}
	}
	cp := *rec
	return &cp, nil
}

// Transition moves a record to a new lifecycle status.
func (s *Store) Transition(id, status string) (*Record, error) {
	return s.update(id, func(rec *Record) error {
		if !transitionAllowed(rec.Status, status) {
			return &ErrInvalidTransition{ID: id, From: rec.Status, To: status}
		}
		rec.Status = status
		return nil
	})
}

// MarkPosted records a successful publish with the created post id.
func (s *Store) MarkPosted(id, postID string) (*Record, error) {
	return s.update(id, func(rec *Record) error {
		if !transitionAllowed(rec.Status, StatusPosted) {
			return &ErrInvalidTransition{ID: id, From: rec.Status, To: StatusPosted}
		}
		rec.Status = StatusPosted
		rec.PostID = postID
		return nil
	})
}

// MarkPostFailed records a failed publish attempt.
func (s *Store) MarkPostFailed(id string, cause error) (*Record, error) {
	return s.update(id, func(rec *Record) error {
		if !transitionAllowed(rec.Status, StatusPostFailed) {
			return &ErrInvalidTransition{ID: id, From: rec.Status, To: StatusPostFailed}
		}
		rec.Status = StatusPostFailed
		rec.Error = cause.Error()
		return nil
	})
}

// List returns copies of all records with the given status, newest
// first. An empty status returns everything.
func (s *Store) List(status string) []*Record {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Record, 0, len(s.records))
	for _, rec := range s.records {
		if status != "" && rec.Status != status {
			continue
		}
		cp := *rec
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Delete removes a record.
func (s *Store) Delete(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return &ErrNotFound{ID: id}
	}
	delete(s.records, id)
	return nil
}

func (s *Store) update(id string, fn func(*Record) error) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return nil, &ErrNotFound{ID: id}
	}
	if err := fn(rec); err != nil {
		return nil, err
	}
	rec.UpdatedAt = time.Now()
	cp := *rec
	return &cp, nil
}

func transitionAllowed(from, to string) bool {
	for _, allowed := range validTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}
