package estimate

import (
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"
)

type SubmissionStatus string

const (
	SubmissionAccepted  SubmissionStatus = "accepted"
	SubmissionContacted SubmissionStatus = "contacted"
	SubmissionClosed    SubmissionStatus = "closed"
)

// ManualRequest is a user's ask for a human-prepared estimate, used when the
// automated pipeline failed or the user opted out of it.
type ManualRequest struct {
	PreferredContact string      `json:"preferredContact"`
	Email            string      `json:"email,omitempty"`
	Phone            string      `json:"phone,omitempty"`
	Notes            string      `json:"notes,omitempty"`
	UserDetails      UserDetails `json:"userDetails"`
	IdeaDetails      IdeaDetails `json:"ideaDetails"`
}

type Submission struct {
	Token     string           `json:"token"`
	CreatedAt time.Time        `json:"createdAt"`
	Status    SubmissionStatus `json:"status"`
	Request   ManualRequest    `json:"request"`
}

// SubmissionStore keeps manual estimate requests keyed by an unguessable
// token handed back to the requester.
type SubmissionStore struct {
	mu          sync.RWMutex
	submissions map[string]*Submission
}

func NewSubmissionStore() *SubmissionStore {
	return &SubmissionStore{
		submissions: make(map[string]*Submission),
	}
}

func generateToken() string {
	b := make([]byte, 16)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

func (s *SubmissionStore) Create(req ManualRequest) *Submission {
	sub := &Submission{
		Token:     generateToken(),
		CreatedAt: time.Now(),
		Status:    SubmissionAccepted,
		Request:   req,
	}
	s.mu.Lock()
	s.submissions[sub.Token] = sub
	s.mu.Unlock()
	return sub
}

func (s *SubmissionStore) Get(token string) *Submission {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.submissions[token]
}

// SetStatus advances a submission through the manual workflow. Returns false
// for unknown tokens.
func (s *SubmissionStore) SetStatus(token string, status SubmissionStatus) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	sub, ok := s.submissions[token]
	if !ok {
		return false
	}
	sub.Status = status
	return true
}
