package service

import (
	"sync"
	"time"
)

const (
	EventAnalysisSaved   = "analysis_saved"
	EventAnalysisDeleted = "analysis_deleted"
	EventAnalysesCleared = "analyses_cleared"
)

// Event is one saved-analysis store change, broadcast to watch subscribers.
type Event struct {
	Type         string    `json:"type"`
	AnalysisID   int64     `json:"analysisId,omitempty"`
	Name         string    `json:"name,omitempty"`
	Sender       string    `json:"sender,omitempty"`
	Receiver     string    `json:"receiver,omitempty"`
	MessageCount int       `json:"messageCount,omitempty"`
	At           time.Time `json:"at"`
}

// Notifier fans events out to subscribers. Publishing never blocks: a
// subscriber that cannot keep up drops events rather than stalling the
// writer.
type Notifier struct {
	mu   sync.Mutex
	subs map[chan Event]struct{}
}

func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[chan Event]struct{})}
}

// Subscribe registers a new subscriber and returns its event channel plus a
// cancel function that must be called to release it.
func (n *Notifier) Subscribe() (<-chan Event, func()) {
	ch := make(chan Event, 16)

	n.mu.Lock()
	n.subs[ch] = struct{}{}
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		if _, ok := n.subs[ch]; ok {
			delete(n.subs, ch)
			close(ch)
		}
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber that has buffer room.
func (n *Notifier) Publish(evt Event) {
	if evt.At.IsZero() {
		evt.At = time.Now()
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}

// SubscriberCount reports the current number of subscribers.
func (n *Notifier) SubscriberCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.subs)
}
