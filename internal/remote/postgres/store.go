package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pcosta/flashdeck/internal/logger"
	"github.com/pcosta/flashdeck/internal/models"
	"github.com/pcosta/flashdeck/internal/remote"
)

type store struct {
	pool *pgxpool.Pool
	sb   sq.StatementBuilderType
}

// NewStore creates a Postgres-backed remote.Store.
func NewStore(pool *pgxpool.Pool) remote.Store {
	return &store{
		pool: pool,
		sb:   sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (s *store) FetchDecks(ctx context.Context, userID uuid.UUID) ([]models.Deck, error) {
	log := logger.FromContext(ctx).WithPrefix("remote")
	log.Debug("fetching decks: user_id=%s", userID)

	query, args, err := s.sb.
		Select("id", "name", "created_at", "updated_at").
		From("decks").
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error("failed to query decks: %v", err)
		return nil, err
	}
	defer rows.Close()

	var decks []models.Deck
	for rows.Next() {
		var d models.Deck
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, err
		}
		d.Tags = []string{}
		decks = append(decks, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Tags live in a join table; fold them onto their decks.
	tagsByDeck, err := s.fetchDeckTags(ctx, userID)
	if err != nil {
		return nil, err
	}
	for i := range decks {
		if tags, ok := tagsByDeck[decks[i].ID]; ok {
			decks[i].Tags = tags
		}
	}

	log.Debug("fetched %d decks", len(decks))
	return decks, nil
}

func (s *store) fetchDeckTags(ctx context.Context, userID uuid.UUID) (map[uuid.UUID][]string, error) {
	query, args, err := s.sb.
		Select("deck_id", "tag").
		From("deck_tags").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uuid.UUID][]string)
	for rows.Next() {
		var deckID uuid.UUID
		var tag string
		if err := rows.Scan(&deckID, &tag); err != nil {
			return nil, err
		}
		out[deckID] = append(out[deckID], tag)
	}
	return out, rows.Err()
}

func (s *store) FetchFlashcards(ctx context.Context, userID uuid.UUID) ([]models.Flashcard, error) {
	log := logger.FromContext(ctx).WithPrefix("remote")
	log.Debug("fetching flashcards: user_id=%s", userID)

	query, args, err := s.sb.
		Select("id", "deck_id", "front", "back", "ease_factor", "interval", "repetitions", "next_review_date", "created_at", "updated_at").
		From("flashcards").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		log.Error("failed to query flashcards: %v", err)
		return nil, err
	}
	defer rows.Close()

	var cards []models.Flashcard
	for rows.Next() {
		var c models.Flashcard
		if err := rows.Scan(&c.ID, &c.DeckID, &c.Front, &c.Back, &c.EaseFactor, &c.Interval, &c.Repetitions, &c.NextReviewDate, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}

	log.Debug("fetched %d flashcards", len(cards))
	return cards, rows.Err()
}

func (s *store) FetchProgress(ctx context.Context, userID uuid.UUID) (models.UserProgress, error) {
	log := logger.FromContext(ctx).WithPrefix("remote")
	log.Debug("fetching progress: user_id=%s", userID)

	query, args, err := s.sb.
		Select("total_cards_reviewed", "current_streak", "last_practice_date").
		From("user_progress").
		Where(sq.Eq{"user_id": userID}).
		ToSql()
	if err != nil {
		return models.UserProgress{}, err
	}

	var p models.UserProgress
	err = s.pool.QueryRow(ctx, query, args...).Scan(&p.TotalCardsReviewed, &p.CurrentStreak, &p.LastPracticeDate)
	if errors.Is(err, pgx.ErrNoRows) {
		// A user who never practiced has no row yet.
		return models.UserProgress{}, nil
	}
	if err != nil {
		log.Error("failed to query progress: %v", err)
		return models.UserProgress{}, err
	}
	return p, nil
}

func (s *store) FetchTags(ctx context.Context, userID uuid.UUID) ([]string, error) {
	log := logger.FromContext(ctx).WithPrefix("remote")
	log.Debug("fetching tags: user_id=%s", userID)

	query, args, err := s.sb.
		Select("tags").
		From("profiles").
		Where(sq.Eq{"id": userID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var tags []string
	err = s.pool.QueryRow(ctx, query, args...).Scan(&tags)
	if errors.Is(err, pgx.ErrNoRows) {
		return []string{}, nil
	}
	if err != nil {
		log.Error("failed to query tags: %v", err)
		return nil, err
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}

func (s *store) UpdateFlashcardFields(ctx context.Context, cardID, userID uuid.UUID, fields models.PendingFlashcardUpdate) error {
	log := logger.FromContext(ctx).WithPrefix("remote")
	log.Debug("updating flashcard fields: card_id=%s, interval=%d, ease=%.2f", cardID, fields.Interval, fields.EaseFactor)

	query, args, err := s.sb.
		Update("flashcards").
		Set("ease_factor", fields.EaseFactor).
		Set("interval", fields.Interval).
		Set("repetitions", fields.Repetitions).
		Set("next_review_date", fields.NextReviewDate).
		Set("updated_at", time.Now().UTC()).
		Where(sq.Eq{"id": cardID, "user_id": userID}).
		ToSql()
	if err != nil {
		return err
	}

	// Zero rows affected means the card does not belong to the user (or was
	// deleted remotely); the overwrite quietly no-ops either way.
	if _, err := s.pool.Exec(ctx, query, args...); err != nil {
		log.Error("failed to update flashcard: %v", err)
		return err
	}
	return nil
}

func (s *store) UpdateProgress(ctx context.Context, userID uuid.UUID, progress models.UserProgress) error {
	log := logger.FromContext(ctx).WithPrefix("remote")
	log.Debug("updating progress: user_id=%s, reviewed=%d, streak=%d", userID, progress.TotalCardsReviewed, progress.CurrentStreak)

	_, err := s.pool.Exec(ctx, `
INSERT INTO user_progress (user_id, total_cards_reviewed, current_streak, last_practice_date)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id) DO UPDATE SET
	total_cards_reviewed = EXCLUDED.total_cards_reviewed,
	current_streak = EXCLUDED.current_streak,
	last_practice_date = EXCLUDED.last_practice_date
`, userID, progress.TotalCardsReviewed, progress.CurrentStreak, progress.LastPracticeDate)
	if err != nil {
		log.Error("failed to update progress: %v", err)
	}
	return err
}

func (s *store) UpdateTags(ctx context.Context, userID uuid.UUID, tags []string) error {
	log := logger.FromContext(ctx).WithPrefix("remote")
	log.Debug("updating tags: user_id=%s, count=%d", userID, len(tags))

	tag, err := s.pool.Exec(ctx, `UPDATE profiles SET tags = $1 WHERE id = $2`, tags, userID)
	if err != nil {
		log.Error("failed to update tags: %v", err)
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("no profile for user %s", userID)
	}
	return nil
}
