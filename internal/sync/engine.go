package sync

import (
	"context"
	stdsync "sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/pcosta/flashdeck/internal/auth"
	"github.com/pcosta/flashdeck/internal/cache"
	"github.com/pcosta/flashdeck/internal/logger"
	"github.com/pcosta/flashdeck/internal/models"
	"github.com/pcosta/flashdeck/internal/remote"
)

// Engine reconciles the local cache with the remote store of record: a full
// pull on sign-in, an incremental push of queued mutations on session
// completion and logout.
//
// Failures never escape as errors. A failed pull leaves the cache
// stale-but-usable; a failed push leaves the queue intact for an opportunistic
// retry on the next natural trigger. Practice must keep working fully offline.
type Engine struct {
	cache       *cache.Store
	remote      remote.Store
	auth        auth.Provider
	pullTimeout time.Duration
	log         *logger.Logger

	// Pull and push must never run concurrently for the same user.
	mu stdsync.Mutex
}

// New creates a sync engine over the given cache and remote store.
func New(cacheStore *cache.Store, remoteStore remote.Store, provider auth.Provider, pullTimeout time.Duration) *Engine {
	return &Engine{
		cache:       cacheStore,
		remote:      remoteStore,
		auth:        provider,
		pullTimeout: pullTimeout,
		log:         logger.Default().WithPrefix("sync"),
	}
}

// Bind subscribes the engine to session lifecycle events: sign-in triggers a
// background pull, sign-out wipes the cache.
func (e *Engine) Bind(session *auth.Session) {
	session.OnSignedIn(func(uuid.UUID) {
		go e.Pull(context.Background())
	})
	session.OnSignedOut(func() {
		e.mu.Lock()
		defer e.mu.Unlock()
		e.cache.ClearAll()
	})
}

// Pull fetches the complete remote state for the authenticated user and
// wholesale-replaces every cache collection, stamping the last-sync marker
// only after all replaces are done. On any fetch failure the cache is left
// untouched. With no authenticated user the cache is wiped instead, since
// there is nothing to scope it to. Returns whether the pull succeeded.
func (e *Engine) Pull(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	userID, ok := e.auth.CurrentUserID(ctx)
	if !ok {
		e.log.Info("pull with no authenticated user, wiping cache")
		e.cache.ClearAll()
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, e.pullTimeout)
	defer cancel()

	e.log.Debug("pull starting: user_id=%s", userID)

	var (
		decks    []models.Deck
		cards    []models.Flashcard
		progress models.UserProgress
		tags     []string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		decks, err = e.remote.FetchDecks(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		cards, err = e.remote.FetchFlashcards(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		progress, err = e.remote.FetchProgress(gctx, userID)
		return err
	})
	g.Go(func() error {
		var err error
		tags, err = e.remote.FetchTags(gctx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		e.log.Warn("pull abandoned, cache left as-is: %v", err)
		return false
	}

	e.cache.SetDecks(decks)
	e.cache.SetFlashcards(cards)
	e.cache.SetProgress(progress)
	e.cache.SetTags(tags)
	e.cache.SetLastSync(time.Now())

	e.log.Info("pull complete: %d decks, %d cards", len(decks), len(cards))
	return true
}

// Push flushes the pending-mutation queue to the remote store. Per-card
// updates run concurrently with each other and with the progress update; they
// touch disjoint rows. Delivered entries are removed from the queue only when
// every remote write succeeds, giving at-least-once delivery; each write is a full-field
// overwrite keyed by id, so replays are idempotent. Returns whether the push
// succeeded.
func (e *Engine) Push(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	userID, ok := e.auth.CurrentUserID(ctx)
	if !ok {
		e.log.Debug("push with no authenticated user, queue retained")
		return false
	}

	pending := e.cache.PendingUpdates()
	if len(pending.Flashcards) == 0 && pending.Progress == nil {
		return true
	}

	e.log.Debug("push starting: %d card updates, progress=%v", len(pending.Flashcards), pending.Progress != nil)

	g, gctx := errgroup.WithContext(ctx)
	for _, update := range pending.Flashcards {
		update := update
		g.Go(func() error {
			return e.remote.UpdateFlashcardFields(gctx, update.ID, userID, update)
		})
	}
	if pending.Progress != nil {
		progress := *pending.Progress
		g.Go(func() error {
			return e.remote.UpdateProgress(gctx, userID, progress)
		})
	}

	if err := g.Wait(); err != nil {
		e.log.Warn("push failed, queue retained for retry: %v", err)
		return false
	}

	// Remove only the entries this push delivered; a grade that landed while
	// the writes were in flight stays queued for the next flush.
	e.cache.RemovePending(pending)
	e.log.Info("push complete: %d card updates flushed", len(pending.Flashcards))
	return true
}
