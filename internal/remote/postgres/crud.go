package postgres

import (
	"context"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/pcosta/flashdeck/internal/logger"
	"github.com/pcosta/flashdeck/internal/models"
)

func (s *store) CreateDeck(ctx context.Context, userID uuid.UUID, deck models.Deck) error {
	log := logger.FromContext(ctx).WithPrefix("remote")
	log.Debug("creating deck: deck_id=%s, name=%s", deck.ID, deck.Name)

	query, args, err := s.sb.
		Insert("decks").
		Columns("id", "user_id", "name", "created_at", "updated_at").
		Values(deck.ID, userID, deck.Name, deck.CreatedAt, deck.UpdatedAt).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		log.Error("failed to create deck: %v", err)
		return err
	}
	if len(deck.Tags) > 0 {
		return s.SetDeckTags(ctx, deck.ID, userID, deck.Tags)
	}
	return nil
}

func (s *store) UpdateDeckName(ctx context.Context, deckID, userID uuid.UUID, name string, updatedAt time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("remote")
	log.Debug("renaming deck: deck_id=%s", deckID)

	query, args, err := s.sb.
		Update("decks").
		Set("name", name).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": deckID, "user_id": userID}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		log.Error("failed to rename deck: %v", err)
		return err
	}
	return nil
}

func (s *store) DeleteDeck(ctx context.Context, deckID, userID uuid.UUID) error {
	log := logger.FromContext(ctx).WithPrefix("remote")
	log.Debug("deleting deck: deck_id=%s", deckID)

	// Flashcards and tag rows cascade via foreign keys.
	query, args, err := s.sb.
		Delete("decks").
		Where(sq.Eq{"id": deckID, "user_id": userID}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		log.Error("failed to delete deck: %v", err)
		return err
	}
	return nil
}

func (s *store) SetDeckTags(ctx context.Context, deckID, userID uuid.UUID, tags []string) error {
	log := logger.FromContext(ctx).WithPrefix("remote")
	log.Debug("setting deck tags: deck_id=%s, count=%d", deckID, len(tags))

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM deck_tags WHERE deck_id = $1 AND user_id = $2`, deckID, userID); err != nil {
			return err
		}
		for _, tag := range tags {
			if _, err := tx.Exec(ctx, `INSERT INTO deck_tags (deck_id, user_id, tag) VALUES ($1, $2, $3)`, deckID, userID, tag); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *store) CreateFlashcards(ctx context.Context, userID uuid.UUID, cards []models.Flashcard) error {
	log := logger.FromContext(ctx).WithPrefix("remote")
	log.Debug("creating %d flashcards", len(cards))

	if len(cards) == 0 {
		return nil
	}

	builder := s.sb.
		Insert("flashcards").
		Columns("id", "user_id", "deck_id", "front", "back", "ease_factor", "interval", "repetitions", "next_review_date", "created_at", "updated_at")
	for _, c := range cards {
		builder = builder.Values(c.ID, userID, c.DeckID, c.Front, c.Back, c.EaseFactor, c.Interval, c.Repetitions, c.NextReviewDate, c.CreatedAt, c.UpdatedAt)
	}
	query, args, err := builder.ToSql()
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		log.Error("failed to create flashcards: %v", err)
		return err
	}
	return nil
}

func (s *store) UpdateFlashcardContent(ctx context.Context, cardID, userID uuid.UUID, front, back string, updatedAt time.Time) error {
	log := logger.FromContext(ctx).WithPrefix("remote")
	log.Debug("updating flashcard content: card_id=%s", cardID)

	query, args, err := s.sb.
		Update("flashcards").
		Set("front", front).
		Set("back", back).
		Set("updated_at", updatedAt).
		Where(sq.Eq{"id": cardID, "user_id": userID}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		log.Error("failed to update flashcard content: %v", err)
		return err
	}
	return nil
}

func (s *store) DeleteFlashcard(ctx context.Context, cardID, userID uuid.UUID) error {
	log := logger.FromContext(ctx).WithPrefix("remote")
	log.Debug("deleting flashcard: card_id=%s", cardID)

	query, args, err := s.sb.
		Delete("flashcards").
		Where(sq.Eq{"id": cardID, "user_id": userID}).
		ToSql()
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		log.Error("failed to delete flashcard: %v", err)
		return err
	}
	return nil
}
