package scheduler

import (
	"fmt"
	"log"
	"sync"
	"time"

	"mindspace-notes/mindspace/database"
	"mindspace-notes/mindspace/models"

	"gorm.io/gorm/clause"
)

// TimerScheduler backs the Scheduler contract with a reminder_jobs table and
// an in-process timer per pending job. Start reloads the table, so reminders
// scheduled before a restart still fire; jobs already overdue at reload fire
// immediately.
type TimerScheduler struct {
	db      *database.Database
	handler Handler

	mu      sync.Mutex
	timers  map[uint]*time.Timer
	stopped bool
}

func NewTimerScheduler(db *database.Database) *TimerScheduler {
	return &TimerScheduler{
		db:     db,
		timers: make(map[uint]*time.Timer),
	}
}

// SetHandler must be called before Start.
func (s *TimerScheduler) SetHandler(h Handler) {
	s.handler = h
}

// Start arms a timer for every persisted job. Overdue jobs are delivered
// right away.
func (s *TimerScheduler) Start() error {
	var jobs []models.ReminderJob
	if err := s.db.DB.Find(&jobs).Error; err != nil {
		return fmt.Errorf("load reminder jobs: %w", err)
	}

	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, job := range jobs {
		if !job.FireAt.After(now) {
			go s.fire(job.NoteID)
			continue
		}
		s.armLocked(job.NoteID, job.FireAt)
	}
	log.Printf("Reminder scheduler started with %d pending job(s)", len(jobs))
	return nil
}

// Stop halts all timers. Persisted jobs are kept for the next Start.
func (s *TimerScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopped = true
	for id, timer := range s.timers {
		timer.Stop()
		delete(s.timers, id)
	}
}

// Schedule persists and arms a wake-up for noteID, superseding any earlier
// one. A fireAt in the past schedules nothing and clears any pending entry.
func (s *TimerScheduler) Schedule(noteID uint, fireAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.disarmLocked(noteID)

	if !fireAt.After(time.Now()) {
		if err := s.deleteJob(noteID); err != nil {
			return err
		}
		return nil
	}

	job := models.ReminderJob{NoteID: noteID, FireAt: fireAt}
	if err := s.db.DB.Clauses(clause.OnConflict{UpdateAll: true}).Create(&job).Error; err != nil {
		return fmt.Errorf("persist reminder job for note %d: %w", noteID, err)
	}

	if !s.stopped {
		s.armLocked(noteID, fireAt)
	}
	return nil
}

// Cancel removes any pending schedule for noteID.
func (s *TimerScheduler) Cancel(noteID uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.disarmLocked(noteID)
	return s.deleteJob(noteID)
}

func (s *TimerScheduler) armLocked(noteID uint, fireAt time.Time) {
	delay := time.Until(fireAt)
	if delay < 0 {
		delay = 0
	}
	s.timers[noteID] = time.AfterFunc(delay, func() { s.fire(noteID) })
}

func (s *TimerScheduler) disarmLocked(noteID uint) {
	if timer, ok := s.timers[noteID]; ok {
		timer.Stop()
		delete(s.timers, noteID)
	}
}

func (s *TimerScheduler) deleteJob(noteID uint) error {
	if err := s.db.DB.Delete(&models.ReminderJob{}, "note_id = ?", noteID).Error; err != nil {
		return fmt.Errorf("delete reminder job for note %d: %w", noteID, err)
	}
	return nil
}

// fire consumes the durable job, then hands off to the delivery handler.
// Delivery is fire-and-forget: nothing here may take the process down.
func (s *TimerScheduler) fire(noteID uint) {
	s.mu.Lock()
	delete(s.timers, noteID)
	handler := s.handler
	s.mu.Unlock()

	if err := s.deleteJob(noteID); err != nil {
		log.Printf("Failed to consume reminder job for note %d: %v", noteID, err)
	}

	if handler == nil {
		log.Printf("No reminder handler registered, dropping wake-up for note %d", noteID)
		return
	}

	defer func() {
		if r := recover(); r != nil {
			log.Printf("Reminder delivery for note %d panicked: %v", noteID, r)
		}
	}()
	handler(noteID)
}
