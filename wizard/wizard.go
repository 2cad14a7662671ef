// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package wizard

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/danielhkuo/regdesk/db"
	"github.com/danielhkuo/regdesk/models"
	"github.com/danielhkuo/regdesk/stats"
	"github.com/danielhkuo/regdesk/validation"
)

// cacheKeyPrefix namespaces session keys in the draft cache
const cacheKeyPrefix = "regdesk-draft:"

// Store is the registration collection.
type Store interface {
	Insert(ctx context.Context, reg models.StoredRegistration) (string, error)
	QueryEquals(ctx context.Context, field, value string) ([]models.StoredRegistration, error)
}

// DraftCache persists the latest session snapshot per key.
type DraftCache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
}

// Client describes who is submitting. IPAddress is best-effort.
type Client interface {
	IPAddress(ctx context.Context) (string, error)
	UserAgent() string
}

// Transition is the outcome of a successful step change.
type Transition struct {
	Session    models.Session
	Advisories []string
}

// Receipt is returned by a successful submission.
type Receipt struct {
	ID          string
	SubmittedAt time.Time
	Session     models.Session
}

// Wizard drives the three-step registration flow. Sessions live in the
// draft cache; a Wizard holds no per-session state.
type Wizard struct {
	store   Store
	cache   DraftCache
	now     func() time.Time
	timeout time.Duration
}

type Option func(*Wizard)

// WithClock overrides time.Now for submission timestamps.
func WithClock(now func() time.Time) Option {
	return func(w *Wizard) { w.now = now }
}

// WithTimeout bounds every store and cache call.
func WithTimeout(d time.Duration) Option {
	return func(w *Wizard) { w.timeout = d }
}

func New(store Store, cache DraftCache, opts ...Option) *Wizard {
	w := &Wizard{store: store, cache: cache, now: time.Now}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

func (w *Wizard) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if w.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, w.timeout)
}

// Open restores the session for key, or returns a fresh Step1 session.
func (w *Wizard) Open(ctx context.Context, key string) (models.Session, error) {
	ctx, cancel := w.bound(ctx)
	defer cancel()
	return w.load(ctx, key)
}

// Apply mutates the draft and writes the whole session back to the cache.
// Either every edit is applied or none is.
func (w *Wizard) Apply(ctx context.Context, key string, edits ...models.Edit) (models.Session, error) {
	ctx, cancel := w.bound(ctx)
	defer cancel()

	s, err := w.load(ctx, key)
	if err != nil {
		return models.Session{}, err
	}

	draft := s.Draft
	for _, e := range edits {
		if err := draft.Apply(e); err != nil {
			return s, err
		}
	}
	s.Draft = draft

	if err := w.save(ctx, key, s); err != nil {
		return models.Session{}, err
	}
	return s, nil
}

// Next moves forward exactly one step when the current step's gate passes.
// On failure the session is returned unchanged.
func (w *Wizard) Next(ctx context.Context, key string) (Transition, error) {
	ctx, cancel := w.bound(ctx)
	defer cancel()

	s, err := w.load(ctx, key)
	if err != nil {
		return Transition{}, err
	}

	var advisories []string
	switch s.Step {
	case models.Step1:
		if err := w.gateTeamDetails(ctx, s.Draft); err != nil {
			return Transition{Session: s}, err
		}
	case models.Step2:
		advisories, err = gateMembers(s.Draft)
		if err != nil {
			return Transition{Session: s}, err
		}
	default:
		return Transition{Session: s}, ErrNoForwardStep
	}

	s.Step++
	if err := w.save(ctx, key, s); err != nil {
		return Transition{}, err
	}
	return Transition{Session: s, Advisories: advisories}, nil
}

// Back moves to the previous step without validation. Step1 stays put.
func (w *Wizard) Back(ctx context.Context, key string) (models.Session, error) {
	ctx, cancel := w.bound(ctx)
	defer cancel()

	s, err := w.load(ctx, key)
	if err != nil {
		return models.Session{}, err
	}
	if s.Step == models.Step1 {
		return s, nil
	}

	s.Step--
	if err := w.save(ctx, key, s); err != nil {
		return models.Session{}, err
	}
	return s, nil
}

// Submit stores the registration and clears the draft. It is only valid on
// Step3. Every gate is re-run because the draft may have changed since it
// was passed.
func (w *Wizard) Submit(ctx context.Context, key string, client Client) (Receipt, error) {
	ctx, cancel := w.bound(ctx)
	defer cancel()

	s, err := w.load(ctx, key)
	if err != nil {
		return Receipt{}, err
	}
	if s.Step != models.Step3 {
		return Receipt{}, ErrWrongStep
	}

	d := s.Draft
	for _, step := range []models.Step{models.Step3, models.Step1} {
		if err := requireFields(step, d); err != nil {
			return Receipt{}, err
		}
	}
	if _, err := gateMembers(d); err != nil {
		return Receipt{}, err
	}

	// The uniqueness check is repeated here to narrow the window between
	// check and insert. It is still not atomic.
	ip := models.UnknownIP
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		ip = lookupIP(gctx, client)
		return nil
	})
	g.Go(func() error {
		return w.checkTeamName(gctx, d.TeamName)
	})
	if err := g.Wait(); err != nil {
		return Receipt{}, err
	}

	userAgent := ""
	if client != nil {
		userAgent = client.UserAgent()
	}

	reg := models.StoredRegistration{
		TeamName:    strings.TrimSpace(d.TeamName),
		PSNumber:    strings.TrimSpace(d.PSNumber),
		Leader:      d.Leader,
		Members:     d.Members,
		Willingness: d.Willingness,
		SubmittedAt: w.now().UTC(),
		IPAddress:   ip,
		UserAgent:   userAgent,
		Status:      models.StatusPending,
		TeamStats:   stats.TeamStats(d),
	}

	id, err := w.store.Insert(ctx, reg)
	if errors.Is(err, db.ErrDuplicate) {
		return Receipt{}, ErrUniquenessConflict
	}
	if err != nil {
		return Receipt{}, storeUnavailable(err)
	}

	if err := w.cache.Remove(ctx, cacheKeyPrefix+key); err != nil {
		// Registration is already stored; the submission still succeeds.
		zap.L().Error("failed to clear draft after submission",
			zap.String("registration_id", id), zap.Error(err))
	}

	zap.L().Info("registration submitted",
		zap.String("registration_id", id),
		zap.String("team_name", reg.TeamName),
		zap.Int("female_members", reg.TeamStats.FemaleMembers))

	return Receipt{ID: id, SubmittedAt: reg.SubmittedAt, Session: models.NewSession()}, nil
}

// Discard abandons the draft for key.
func (w *Wizard) Discard(ctx context.Context, key string) error {
	ctx, cancel := w.bound(ctx)
	defer cancel()

	if err := w.cache.Remove(ctx, cacheKeyPrefix+key); err != nil {
		return storeUnavailable(err)
	}
	return nil
}

// requireFields fails with a ValidationError listing the fields step needs.
func requireFields(step models.Step, d models.Draft) error {
	if missing := validation.Step(step, d); len(missing) > 0 {
		return &ValidationError{Step: step, Fields: missing}
	}
	return nil
}

func (w *Wizard) gateTeamDetails(ctx context.Context, d models.Draft) error {
	if err := requireFields(models.Step1, d); err != nil {
		return err
	}
	return w.checkTeamName(ctx, d.TeamName)
}

func gateMembers(d models.Draft) ([]string, error) {
	if err := requireFields(models.Step2, d); err != nil {
		return nil, err
	}

	balance := validation.GenderBalance(d)
	if balance.Blocked {
		return nil, &PolicyError{Rule: "female_member_required", Message: MessageFemaleRequired}
	}
	if balance.Advisory {
		return []string{MessageFemaleRecommended}, nil
	}
	return nil, nil
}

// checkTeamName fails with ErrUniquenessConflict when a stored registration
// already uses the trimmed name. Matching is exact and case-sensitive.
func (w *Wizard) checkTeamName(ctx context.Context, name string) error {
	regs, err := w.store.QueryEquals(ctx, db.FieldTeamName, strings.TrimSpace(name))
	if err != nil {
		zap.L().Error("team name check failed", zap.Error(err))
		return storeUnavailable(err)
	}
	if len(regs) > 0 {
		return ErrUniquenessConflict
	}
	return nil
}

func lookupIP(ctx context.Context, client Client) string {
	if client == nil {
		return models.UnknownIP
	}
	ip, err := client.IPAddress(ctx)
	if err != nil || ip == "" {
		zap.L().Warn("could not determine client IP", zap.Error(err))
		return models.UnknownIP
	}
	return ip
}

func (w *Wizard) load(ctx context.Context, key string) (models.Session, error) {
	raw, ok, err := w.cache.Get(ctx, cacheKeyPrefix+key)
	if err != nil {
		return models.Session{}, storeUnavailable(err)
	}
	if !ok {
		return models.NewSession(), nil
	}

	var s models.Session
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		zap.L().Warn("discarding unreadable draft", zap.String("key", key), zap.Error(err))
		return models.NewSession(), nil
	}
	if !s.Step.Valid() {
		s.Step = models.Step1
	}
	return s, nil
}

func (w *Wizard) save(ctx context.Context, key string, s models.Session) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}
	if err := w.cache.Set(ctx, cacheKeyPrefix+key, string(raw)); err != nil {
		return storeUnavailable(err)
	}
	return nil
}
