package service_test

import (
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/geoquiz/backend/internal/domain/dataset"
	"github.com/geoquiz/backend/internal/domain/quiz"
	"github.com/geoquiz/backend/internal/schedule"
	"github.com/geoquiz/backend/internal/service"
)

type recorder struct {
	prompts []quiz.Prompt
	results []quiz.Result
	input   []bool
}

func (r *recorder) UpdateQuestion(p quiz.Prompt) { r.prompts = append(r.prompts, p) }
func (r *recorder) UpdateTitle(string) {}
func (r *recorder) SetAnswerCorrect() {}
func (r *recorder) SetAnswerIncorrect(string, string) {}
func (r *recorder) SetInputEnabled(enabled bool) { r.input = append(r.input, enabled) }
func (r *recorder) DisplayResult(res quiz.Result) { r.results = append(r.results, res) }

func newService(t *testing.T, rec *recorder, clock *schedule.Manual) *service.QuizService {
	t.Helper()
	d := dataset.New([]dataset.Entry{
		{Capital: "Stockholm", Country: "Sverige"},
		{Capital: "Oslo", Country: "Norge"},
		{Capital: "Köpenhamn", Country: "Danmark"},
	})
	return service.NewQuizService(d, rec, slog.New(slog.NewTextHandler(io.Discard, nil)),
		service.WithScheduler(clock),
		service.WithResultDelay(time.Second),
		service.WithRand(rand.New(rand.NewSource(7))),
	)
}

func TestNoSessionBeforeStart(t *testing.T) {
	qs := newService(t, &recorder{}, schedule.NewManual())

	if _, err := qs.Current(); !errors.Is(err, service.ErrNoSession) {
		t.Errorf("Current: expected ErrNoSession, got %v", err)
	}
	if _, err := qs.Answer("Oslo"); !errors.Is(err, service.ErrNoSession) {
		t.Errorf("Answer: expected ErrNoSession, got %v", err)
	}
	if _, err := qs.Retry(); !errors.Is(err, service.ErrNoSession) {
		t.Errorf("Retry: expected ErrNoSession, got %v", err)
	}
	if _, err := qs.Reveal(true); !errors.Is(err, service.ErrNoSession) {
		t.Errorf("Reveal: expected ErrNoSession, got %v", err)
	}
}

func TestBounds(t *testing.T) {
	qs := newService(t, &recorder{}, schedule.NewManual())

	lo, hi := qs.Bounds()
	if lo != 1 || hi != 3 {
		t.Errorf("expected bounds 1..3, got %d..%d", lo, hi)
	}
}

func TestStart_IncompleteSelectionChangesNothing(t *testing.T) {
	rec := &recorder{}
	qs := newService(t, rec, schedule.NewManual())

	cases := []quiz.Selection{
		{Mode: quiz.ModeFreeText, Start: 1, Stop: 3},
		{Topic: quiz.TopicFlags, Start: 1, Stop: 3},
		{Start: 1, Stop: 3},
	}
	for _, sel := range cases {
		if _, err := qs.Start(sel); !errors.Is(err, service.ErrSelectionIncomplete) {
			t.Errorf("%+v: expected ErrSelectionIncomplete, got %v", sel, err)
		}
	}

	if _, err := qs.Current(); !errors.Is(err, service.ErrNoSession) {
		t.Errorf("expected no session, got %v", err)
	}
	if len(rec.prompts) != 0 {
		t.Errorf("expected nothing presented, got %d prompts", len(rec.prompts))
	}
}

func TestStart_EmptyRange(t *testing.T) {
	qs := newService(t, &recorder{}, schedule.NewManual())

	_, err := qs.Start(quiz.Selection{Topic: quiz.TopicCountryCapital, Mode: quiz.ModeFlashcard, Start: 3, Stop: 1})
	if !errors.Is(err, quiz.ErrEmptyPool) {
		t.Fatalf("expected ErrEmptyPool, got %v", err)
	}
}

func TestStart_UsesSelectedRange(t *testing.T) {
	qs := newService(t, &recorder{}, schedule.NewManual())

	snap, err := qs.Start(quiz.Selection{Topic: quiz.TopicCapitalCountry, Mode: quiz.ModeFreeText, Start: 2, Stop: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if snap.Score.Total != 2 {
		t.Errorf("expected 2 questions, got %d", snap.Score.Total)
	}
	if snap.Question != "Oslo" && snap.Question != "Köpenhamn" {
		t.Errorf("question %q is outside the range", snap.Question)
	}
	if snap.State != quiz.StateRunning {
		t.Errorf("expected running, got %s", snap.State)
	}
	if snap.ID == "" {
		t.Error("expected a session id")
	}
}

func TestAnswerThroughToRetry(t *testing.T) {
	rec := &recorder{}
	clock := schedule.NewManual()
	qs := newService(t, rec, clock)

	snap, err := qs.Start(quiz.Selection{Topic: quiz.TopicFlags, Mode: quiz.ModeFreeText, Start: 1, Stop: 3})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var wrong string
	for i := 0; i < 3; i++ {
		cur, err := qs.Current()
		if err != nil {
			t.Fatalf("Current: %v", err)
		}
		answer := cur.Question
		if i == 0 {
			wrong = cur.Question
			answer = "Atlantis"
		}
		out, err := qs.Answer(answer)
		if err != nil {
			t.Fatalf("Answer: %v", err)
		}
		if out.Finished != (i == 2) {
			t.Errorf("answer %d: Finished = %v", i, out.Finished)
		}
	}

	snap, _ = qs.Current()
	if snap.State != quiz.StateRetryPending {
		t.Fatalf("expected retry pending, got %s", snap.State)
	}
	if snap.Score.Ratio != 67 {
		t.Errorf("expected ratio 67, got %d", snap.Score.Ratio)
	}
	if len(rec.results) != 0 {
		t.Error("free-text result must wait for the delay")
	}

	clock.Advance(time.Second)
	if len(rec.results) != 1 || !rec.results[0].RetryAllowed {
		t.Fatalf("expected one retryable result, got %+v", rec.results)
	}

	if _, err := qs.Answer("Sverige"); !errors.Is(err, quiz.ErrNotRunning) {
		t.Errorf("expected ErrNotRunning after the end, got %v", err)
	}

	snap, err = qs.Retry()
	if err != nil {
		t.Fatalf("Retry: %v", err)
	}
	if snap.Score.Total != 1 || snap.Question != wrong {
		t.Errorf("expected retry over %q only, got %+v", wrong, snap)
	}
}

func TestRetry_NothingMissed(t *testing.T) {
	qs := newService(t, &recorder{}, schedule.NewManual())

	if _, err := qs.Start(quiz.Selection{Topic: quiz.TopicFlags, Mode: quiz.ModeFlashcard, Start: 1, Stop: 1}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := qs.Answer("sverige"); err != nil {
		t.Fatalf("Answer: %v", err)
	}

	if _, err := qs.Retry(); !errors.Is(err, quiz.ErrNothingToRetry) {
		t.Errorf("expected ErrNothingToRetry, got %v", err)
	}
}

func TestStart_CancelsPendingResultOfPreviousSession(t *testing.T) {
	rec := &recorder{}
	clock := schedule.NewManual()
	qs := newService(t, rec, clock)

	sel := quiz.Selection{Topic: quiz.TopicFlags, Mode: quiz.ModeFreeText, Start: 1, Stop: 1}
	if _, err := qs.Start(sel); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := qs.Answer("Sverige"); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if clock.Pending() != 1 {
		t.Fatalf("expected a pending result, got %d", clock.Pending())
	}

	if _, err := qs.Start(sel); err != nil {
		t.Fatalf("restart: %v", err)
	}
	clock.Advance(time.Minute)

	if len(rec.results) != 0 {
		t.Errorf("expected the stale result to be cancelled, got %+v", rec.results)
	}
}

func TestReveal(t *testing.T) {
	qs := newService(t, &recorder{}, schedule.NewManual())

	snap, err := qs.Start(quiz.Selection{Topic: quiz.TopicCountryCapital, Mode: quiz.ModeFlashcard, Start: 1, Stop: 1})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	down, _ := qs.Reveal(true)
	up, _ := qs.Reveal(false)
	if down != "Stockholm" || up != snap.Question {
		t.Errorf("expected Stockholm/%s, got %q/%q", snap.Question, down, up)
	}
}

func TestEnd(t *testing.T) {
	rec := &recorder{}
	clock := schedule.NewManual()
	qs := newService(t, rec, clock)

	if err := qs.End(); !errors.Is(err, service.ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}

	sel := quiz.Selection{Topic: quiz.TopicFlags, Mode: quiz.ModeFreeText, Start: 1, Stop: 1}
	if _, err := qs.Start(sel); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := qs.Answer("Sverige"); err != nil {
		t.Fatalf("Answer: %v", err)
	}
	if err := qs.End(); err != nil {
		t.Fatalf("End: %v", err)
	}
	clock.Advance(time.Minute)

	if len(rec.results) != 0 {
		t.Errorf("expected no result after End, got %+v", rec.results)
	}
	if _, err := qs.Current(); !errors.Is(err, service.ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
}
