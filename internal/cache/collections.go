package cache

import (
	"sort"

	"github.com/google/uuid"

	"github.com/pcosta/flashdeck/internal/models"
)

// Decks returns every cached deck, or an empty slice when none are cached.
func (s *Store) Decks() []models.Deck {
	var decks []models.Deck
	s.read(keyDecks, &decks)
	return decks
}

// SetDecks wholesale-replaces the cached deck collection.
func (s *Store) SetDecks(decks []models.Deck) {
	s.write(keyDecks, decks)
}

// Deck returns the cached deck with the given id.
func (s *Store) Deck(id uuid.UUID) (models.Deck, bool) {
	for _, d := range s.Decks() {
		if d.ID == id {
			return d, true
		}
	}
	return models.Deck{}, false
}

// AddDeck appends a deck to the cached collection.
func (s *Store) AddDeck(deck models.Deck) {
	s.SetDecks(append(s.Decks(), deck))
}

// UpdateDeck applies patch to the cached deck with the given id. Returns false
// when no such deck is cached.
func (s *Store) UpdateDeck(id uuid.UUID, patch func(*models.Deck)) bool {
	decks := s.Decks()
	for i := range decks {
		if decks[i].ID == id {
			patch(&decks[i])
			s.SetDecks(decks)
			return true
		}
	}
	return false
}

// DeleteDeck removes a deck and, cascading, every flashcard that belongs to it.
func (s *Store) DeleteDeck(id uuid.UUID) {
	decks := s.Decks()
	kept := decks[:0]
	for _, d := range decks {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	s.SetDecks(kept)

	cards := s.Flashcards()
	keptCards := cards[:0]
	for _, c := range cards {
		if c.DeckID != id {
			keptCards = append(keptCards, c)
		}
	}
	s.SetFlashcards(keptCards)
}

// Flashcards returns every cached flashcard.
func (s *Store) Flashcards() []models.Flashcard {
	var cards []models.Flashcard
	s.read(keyFlashcards, &cards)
	return cards
}

// SetFlashcards wholesale-replaces the cached flashcard collection.
func (s *Store) SetFlashcards(cards []models.Flashcard) {
	s.write(keyFlashcards, cards)
}

// FlashcardsForDeck returns the cached flashcards belonging to a deck.
func (s *Store) FlashcardsForDeck(deckID uuid.UUID) []models.Flashcard {
	var out []models.Flashcard
	for _, c := range s.Flashcards() {
		if c.DeckID == deckID {
			out = append(out, c)
		}
	}
	return out
}

// Flashcard returns the cached flashcard with the given id.
func (s *Store) Flashcard(id uuid.UUID) (models.Flashcard, bool) {
	for _, c := range s.Flashcards() {
		if c.ID == id {
			return c, true
		}
	}
	return models.Flashcard{}, false
}

// AddFlashcards appends cards to the cached collection.
func (s *Store) AddFlashcards(cards ...models.Flashcard) {
	s.SetFlashcards(append(s.Flashcards(), cards...))
}

// UpdateFlashcard applies patch to the cached flashcard with the given id.
// Returns false when no such card is cached.
func (s *Store) UpdateFlashcard(id uuid.UUID, patch func(*models.Flashcard)) bool {
	cards := s.Flashcards()
	for i := range cards {
		if cards[i].ID == id {
			patch(&cards[i])
			s.SetFlashcards(cards)
			return true
		}
	}
	return false
}

// DeleteFlashcard removes a single flashcard from the cache.
func (s *Store) DeleteFlashcard(id uuid.UUID) {
	cards := s.Flashcards()
	kept := cards[:0]
	for _, c := range cards {
		if c.ID != id {
			kept = append(kept, c)
		}
	}
	s.SetFlashcards(kept)
}

// Progress returns the cached progress snapshot, or the zero snapshot when
// none is cached.
func (s *Store) Progress() models.UserProgress {
	var p models.UserProgress
	s.read(keyProgress, &p)
	return p
}

// SetProgress replaces the cached progress snapshot.
func (s *Store) SetProgress(p models.UserProgress) {
	s.write(keyProgress, p)
}

// Tags returns the cached tag registry.
func (s *Store) Tags() []string {
	var tags []string
	s.read(keyTags, &tags)
	return tags
}

// SetTags wholesale-replaces the cached tag registry.
func (s *Store) SetTags(tags []string) {
	s.write(keyTags, tags)
}

// AddTag inserts a tag into the registry, keeping it sorted and unique.
func (s *Store) AddTag(tag string) {
	tags := s.Tags()
	for _, t := range tags {
		if t == tag {
			return
		}
	}
	tags = append(tags, tag)
	sort.Strings(tags)
	s.SetTags(tags)
}

// RemoveTag deletes a tag from the registry. Used to roll back an optimistic
// local insert after a remote rejection.
func (s *Store) RemoveTag(tag string) {
	tags := s.Tags()
	kept := tags[:0]
	for _, t := range tags {
		if t != tag {
			kept = append(kept, t)
		}
	}
	s.SetTags(kept)
}
