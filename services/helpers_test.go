package services

import (
	"encoding/json"
	"sync"
	"testing"
	"time"

	"mindspace-notes/mindspace/models"
	"mindspace-notes/mindspace/store"
	"mindspace-notes/mindspace/testutils"

	"github.com/stretchr/testify/require"
)

func newServiceStore(t *testing.T) *store.NoteStore {
	t.Helper()
	db := testutils.SetupTestDB(t)
	s, err := store.NewNoteStore(db)
	require.NoError(t, err)
	return s
}

// fakeProducer records published messages per subject.
type fakeProducer struct {
	mu       sync.Mutex
	messages map[string][][]byte
	err      error
}

func newFakeProducer() *fakeProducer {
	return &fakeProducer{messages: make(map[string][][]byte)}
}

func (p *fakeProducer) PublishMessage(subject string, data []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.messages[subject] = append(p.messages[subject], data)
	return nil
}

func (p *fakeProducer) Close() {}

func (p *fakeProducer) published(subject string) [][]byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([][]byte(nil), p.messages[subject]...)
}

// eventTypes decodes the published note events on subject and returns their
// event names in publish order.
func (p *fakeProducer) eventTypes(t *testing.T, subject string) []string {
	t.Helper()
	var types []string
	for _, data := range p.published(subject) {
		var event models.Event
		require.NoError(t, json.Unmarshal(data, &event))
		types = append(types, event.Event)
	}
	return types
}

// fakeScheduler records Schedule and Cancel calls.
type fakeScheduler struct {
	mu          sync.Mutex
	scheduled   map[uint]time.Time
	cancelled   []uint
	scheduleErr error
	cancelErr   error
}

func newFakeScheduler() *fakeScheduler {
	return &fakeScheduler{scheduled: make(map[uint]time.Time)}
}

func (s *fakeScheduler) Schedule(noteID uint, fireAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.scheduleErr != nil {
		return s.scheduleErr
	}
	s.scheduled[noteID] = fireAt
	return nil
}

func (s *fakeScheduler) Cancel(noteID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancelErr != nil {
		return s.cancelErr
	}
	s.cancelled = append(s.cancelled, noteID)
	return nil
}

func (s *fakeScheduler) scheduledAt(noteID uint) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	at, ok := s.scheduled[noteID]
	return at, ok
}

func (s *fakeScheduler) cancelledIDs() []uint {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]uint(nil), s.cancelled...)
}

// fakeNotifier captures delivered notifications.
type fakeNotifier struct {
	mu            sync.Mutex
	notifications []models.NotificationEvent
	err           error
}

func (n *fakeNotifier) PublishNotification(event models.NotificationEvent) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.err != nil {
		return n.err
	}
	n.notifications = append(n.notifications, event)
	return nil
}

func (n *fakeNotifier) delivered() []models.NotificationEvent {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]models.NotificationEvent(nil), n.notifications...)
}
