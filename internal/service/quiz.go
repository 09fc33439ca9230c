package service

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/geoquiz/backend/internal/domain/dataset"
	"github.com/geoquiz/backend/internal/domain/quiz"
	"github.com/geoquiz/backend/internal/schedule"
)

var (
	ErrNoSession           = errors.New("no quiz session has been started")
	ErrSelectionIncomplete = errors.New("choose both a topic and a mode")
)

// QuizService owns the loaded dataset and the current quiz session.
// Calls are serialized so concurrent HTTP handlers see a consistent session.
type QuizService struct {
	data        *dataset.Dataset
	presenter   quiz.Presenter
	scheduler   schedule.Scheduler
	resultDelay time.Duration
	rng         *rand.Rand
	logger      *slog.Logger

	mu      sync.Mutex
	session *quiz.Session
}

// QuizOption customizes a QuizService.
type QuizOption func(*QuizService)

// WithScheduler sets the scheduler handed to every session.
func WithScheduler(s schedule.Scheduler) QuizOption {
	return func(qs *QuizService) { qs.scheduler = s }
}

// WithResultDelay sets the free-text result view delay.
func WithResultDelay(d time.Duration) QuizOption {
	return func(qs *QuizService) { qs.resultDelay = d }
}

// WithRand makes question order deterministic.
func WithRand(r *rand.Rand) QuizOption {
	return func(qs *QuizService) { qs.rng = r }
}

// NewQuizService creates a QuizService over d. No session exists until Start.
func NewQuizService(d *dataset.Dataset, p quiz.Presenter, logger *slog.Logger, opts ...QuizOption) *QuizService {
	qs := &QuizService{
		data:        d,
		presenter:   p,
		scheduler:   schedule.Clock{},
		resultDelay: quiz.DefaultResultDelay,
		logger:      logger,
	}
	for _, opt := range opts {
		opt(qs)
	}
	return qs
}

// Dataset returns the loaded dataset.
func (qs *QuizService) Dataset() *dataset.Dataset {
	return qs.data
}

// Bounds returns the inclusive slider range for Start and Stop.
func (qs *QuizService) Bounds() (lo, hi int) {
	return 1, qs.data.Len()
}

// Start replaces the current session with a new one over the selected
// range. An incomplete selection leaves everything untouched.
func (qs *QuizService) Start(sel quiz.Selection) (Snapshot, error) {
	if !sel.Complete() {
		return Snapshot{}, ErrSelectionIncomplete
	}

	pool, answers := sel.Topic.Pool(qs.data)
	questions := quiz.SelectRange(pool, sel.Start, sel.Stop)
	if len(questions) == 0 {
		return Snapshot{}, fmt.Errorf("range %d-%d: %w", sel.Start, sel.Stop, quiz.ErrEmptyPool)
	}

	opts := []quiz.Option{
		quiz.WithScheduler(qs.scheduler),
		quiz.WithResultDelay(qs.resultDelay),
	}
	if qs.rng != nil {
		opts = append(opts, quiz.WithRand(qs.rng))
	}

	qs.mu.Lock()
	defer qs.mu.Unlock()

	if qs.session != nil {
		qs.session.Stop()
	}
	session := quiz.NewSession(sel.Topic, sel.Mode, answers, qs.presenter, opts...)
	if err := session.Start(questions); err != nil {
		return Snapshot{}, err
	}
	qs.session = session

	qs.logger.Info("quiz started",
		"session_id", session.ID(),
		"topic", sel.Topic.String(),
		"mode", sel.Mode.String(),
		"start", sel.Start,
		"stop", sel.Stop,
		"questions", len(questions),
	)
	return snapshot(session), nil
}

// Answer submits a free-text answer to the current question.
func (qs *QuizService) Answer(text string) (quiz.Outcome, error) {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	if qs.session == nil {
		return quiz.Outcome{}, ErrNoSession
	}

	out, err := qs.session.SubmitAnswer(text)
	if err != nil {
		return out, err
	}

	qs.logger.Debug("answer checked",
		"session_id", qs.session.ID(),
		"question", out.Question,
		"correct", out.Correct,
	)
	if out.Finished {
		sc := qs.session.Score()
		qs.logger.Info("quiz finished",
			"session_id", qs.session.ID(),
			"correct", sc.Correct,
			"total", sc.Total,
			"ratio", sc.Ratio,
		)
	}
	return out, nil
}

// Retry restarts the current session over its missed questions.
func (qs *QuizService) Retry() (Snapshot, error) {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	if qs.session == nil {
		return Snapshot{}, ErrNoSession
	}

	missed := len(qs.session.Missed())
	if err := qs.session.Retry(); err != nil {
		return Snapshot{}, err
	}

	qs.logger.Info("quiz retried", "session_id", qs.session.ID(), "questions", missed)
	return snapshot(qs.session), nil
}

// Reveal returns the flashcard text for the toggle position.
func (qs *QuizService) Reveal(down bool) (string, error) {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	if qs.session == nil {
		return "", ErrNoSession
	}
	return qs.session.Reveal(down), nil
}

// End discards the current session, cancelling a pending result view.
func (qs *QuizService) End() error {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	if qs.session == nil {
		return ErrNoSession
	}
	qs.session.Stop()
	qs.logger.Info("quiz ended", "session_id", qs.session.ID())
	qs.session = nil
	return nil
}

// Snapshot is a consistent copy of the current session's state.
type Snapshot struct {
	ID        string
	Topic     quiz.Topic
	Mode      quiz.Mode
	State     quiz.State
	Question  string
	Remaining int
	Score     quiz.Score
	Title     string
	Missed    []string
}

// Current returns a snapshot of the current session.
func (qs *QuizService) Current() (Snapshot, error) {
	qs.mu.Lock()
	defer qs.mu.Unlock()

	if qs.session == nil {
		return Snapshot{}, ErrNoSession
	}
	return snapshot(qs.session), nil
}

func snapshot(s *quiz.Session) Snapshot {
	return Snapshot{
		ID:        s.ID(),
		Topic:     s.Topic(),
		Mode:      s.Mode(),
		State:     s.State(),
		Question:  s.Question(),
		Remaining: s.Remaining(),
		Score:     s.Score(),
		Title:     s.Title(),
		Missed:    s.Missed(),
	}
}
