package quiz

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/geoquiz/backend/internal/schedule"
)

// DefaultResultDelay is how long a free-text session keeps the last
// feedback on screen before the result view is shown.
const DefaultResultDelay = time.Second

var (
	ErrEmptyPool      = errors.New("no questions in the selected range")
	ErrNotRunning     = errors.New("quiz session is not running")
	ErrNothingToRetry = errors.New("no missed questions to retry")
)

// State is the lifecycle state of a Session.
type State int

const (
	StateIdle State = iota
	StateRunning
	StateCompleted    // ended with every answer correct
	StateRetryPending // ended with at least one missed question
)

func (s State) String() string {
	switch s {
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateRetryPending:
		return "retry_pending"
	default:
		return "idle"
	}
}

// Score is the running tally of a session.
type Score struct {
	Correct int
	Asked   int
	Total   int
	Ratio   int // percent of asked questions answered correctly, rounded
}

// Outcome describes the evaluation of one submitted answer.
type Outcome struct {
	Question string
	Expected string
	Correct  bool
	Finished bool
}

// Session drives one quiz run: a shuffled working queue, the answer lookup,
// the counters and the missed list. It is not safe for concurrent use.
type Session struct {
	id        string
	topic     Topic
	mode      Mode
	answers   map[string]string
	presenter Presenter

	scheduler   schedule.Scheduler
	resultDelay time.Duration
	rng         *rand.Rand
	pending     schedule.Task

	state    State
	queue    []string
	total    int
	asked    int
	correct  int
	missed   []string
	question string
	answer   string
}

// Option customizes a Session.
type Option func(*Session)

// WithScheduler sets the scheduler used for the delayed result view.
func WithScheduler(s schedule.Scheduler) Option {
	return func(sess *Session) { sess.scheduler = s }
}

// WithResultDelay sets the free-text result view delay.
func WithResultDelay(d time.Duration) Option {
	return func(sess *Session) { sess.resultDelay = d }
}

// WithRand sets the source used to shuffle questions.
func WithRand(r *rand.Rand) Option {
	return func(sess *Session) { sess.rng = r }
}

// NewSession creates an idle session. answers may be nil for TopicFlags.
func NewSession(topic Topic, mode Mode, answers map[string]string, presenter Presenter, opts ...Option) *Session {
	s := &Session{
		topic:       topic,
		mode:        mode,
		answers:     answers,
		presenter:   presenter,
		scheduler:   schedule.Clock{},
		resultDelay: DefaultResultDelay,
		state:       StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.rng == nil {
		s.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return s
}

// Start begins a run over a shuffled copy of questions and shows the
// first one. Counters and the missed list are reset.
func (s *Session) Start(questions []string) error {
	if len(questions) == 0 {
		return ErrEmptyPool
	}

	s.Stop()

	s.queue = make([]string, len(questions))
	copy(s.queue, questions)
	s.rng.Shuffle(len(s.queue), func(i, j int) {
		s.queue[i], s.queue[j] = s.queue[j], s.queue[i]
	})

	s.id = uuid.NewString()
	s.total = len(s.queue)
	s.asked = 0
	s.correct = 0
	s.missed = nil
	s.state = StateRunning

	if s.mode == ModeFreeText {
		s.presenter.SetInputEnabled(true)
	}
	s.nextQuestion()
	return nil
}

// Stop cancels a result view that is still waiting to be shown.
func (s *Session) Stop() {
	if s.pending != nil {
		s.pending.Cancel()
		s.pending = nil
	}
}

// nextQuestion pops from the end of the queue.
func (s *Session) nextQuestion() {
	last := len(s.queue) - 1
	s.question = s.queue[last]
	s.queue = s.queue[:last]

	if s.topic == TopicFlags {
		s.answer = s.question
	} else {
		s.answer = s.answers[s.question]
	}

	s.asked++
	s.presenter.UpdateQuestion(Prompt{Topic: s.topic, Mode: s.mode, Text: s.question})
	s.presenter.UpdateTitle(s.Title())
}

// SubmitAnswer compares answer with the expected one, ignoring case, and
// moves on to the next question or ends the session.
func (s *Session) SubmitAnswer(answer string) (Outcome, error) {
	if s.state != StateRunning {
		return Outcome{}, ErrNotRunning
	}

	out := Outcome{
		Question: s.question,
		Expected: s.answer,
		Correct:  strings.EqualFold(answer, s.answer),
	}

	if out.Correct {
		s.correct++
		s.presenter.SetAnswerCorrect()
	} else {
		s.missed = append(s.missed, s.question)
		s.presenter.SetAnswerIncorrect(s.question, s.answer)
	}

	if len(s.queue) > 0 {
		s.nextQuestion()
	} else {
		s.end()
		out.Finished = true
	}
	return out, nil
}

func (s *Session) end() {
	if len(s.missed) == 0 {
		s.state = StateCompleted
	} else {
		s.state = StateRetryPending
	}

	result := s.Result()
	if s.mode != ModeFreeText {
		s.presenter.DisplayResult(result)
		return
	}

	s.presenter.SetInputEnabled(false)
	s.pending = s.scheduler.Once(s.resultDelay, func() {
		s.presenter.DisplayResult(result)
	})
}

// Retry starts a new run over the questions missed in the previous one.
func (s *Session) Retry() error {
	if s.state != StateRetryPending {
		return ErrNothingToRetry
	}
	return s.Start(s.missed)
}

// Reveal returns the card text for the flashcard toggle. For flags the
// hint is the country name while the toggle is down.
func (s *Session) Reveal(down bool) string {
	if s.topic == TopicFlags {
		if down {
			return s.question
		}
		return ""
	}
	if down {
		return s.answer
	}
	return s.question
}

// Score returns the current tally.
func (s *Session) Score() Score {
	ratio := 0
	if s.asked > 0 {
		ratio = int(math.Round(float64(s.correct) / float64(s.asked) * 100))
	}
	return Score{
		Correct: s.correct,
		Asked:   s.asked,
		Total:   s.total,
		Ratio:   ratio,
	}
}

// Title renders the score as "<asked>/<total>, <ratio>%".
func (s *Session) Title() string {
	sc := s.Score()
	return fmt.Sprintf("%d/%d, %d%%", sc.Asked, sc.Total, sc.Ratio)
}

// Result is the summary shown on the result view.
func (s *Session) Result() Result {
	return Result{
		Correct:      s.correct,
		Total:        s.total,
		RetryAllowed: s.correct != s.total,
	}
}

func (s *Session) ID() string       { return s.id }
func (s *Session) Topic() Topic     { return s.topic }
func (s *Session) Mode() Mode       { return s.mode }
func (s *Session) State() State     { return s.state }
func (s *Session) Question() string { return s.question }
func (s *Session) Remaining() int   { return len(s.queue) }

// Missed returns a copy of the questions answered incorrectly so far, in
// the order they were missed.
func (s *Session) Missed() []string {
	out := make([]string, len(s.missed))
	copy(out, s.missed)
	return out
}
