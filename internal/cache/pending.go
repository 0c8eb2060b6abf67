package cache

import "github.com/pcosta/flashdeck/internal/models"

// PendingUpdates returns the queued, not-yet-synced mutations.
func (s *Store) PendingUpdates() models.PendingUpdates {
	var p models.PendingUpdates
	s.read(keyPendingUpdates, &p)
	return p
}

func (s *Store) setPendingUpdates(p models.PendingUpdates) {
	s.write(keyPendingUpdates, p)
}

// QueueFlashcardUpdate upserts a pending scheduling delta by card id: exactly
// one entry per card survives, the latest one.
func (s *Store) QueueFlashcardUpdate(update models.PendingFlashcardUpdate) {
	pending := s.PendingUpdates()
	replaced := false
	for i := range pending.Flashcards {
		if pending.Flashcards[i].ID == update.ID {
			pending.Flashcards[i] = update
			replaced = true
			break
		}
	}
	if !replaced {
		pending.Flashcards = append(pending.Flashcards, update)
	}
	s.setPendingUpdates(pending)
}

// QueueProgressUpdate overwrites the single pending progress snapshot.
func (s *Store) QueueProgressUpdate(progress models.UserProgress) {
	pending := s.PendingUpdates()
	pending.Progress = &progress
	s.setPendingUpdates(pending)
}

// RemovePending deletes the given entries from the queue. Entries are matched
// by value, so a delta queued (or re-queued with fresher fields) after the
// snapshot was taken survives for the next flush.
func (s *Store) RemovePending(sent models.PendingUpdates) {
	pending := s.PendingUpdates()

	kept := pending.Flashcards[:0]
	for _, f := range pending.Flashcards {
		if !containsDelta(sent.Flashcards, f) {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		kept = nil
	}
	pending.Flashcards = kept

	if sent.Progress != nil && pending.Progress != nil && sent.Progress.Equal(*pending.Progress) {
		pending.Progress = nil
	}
	s.setPendingUpdates(pending)
}

func containsDelta(deltas []models.PendingFlashcardUpdate, d models.PendingFlashcardUpdate) bool {
	for _, candidate := range deltas {
		if candidate.Equal(d) {
			return true
		}
	}
	return false
}
