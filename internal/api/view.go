package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/geoquiz/backend/internal/domain/quiz"
	"github.com/geoquiz/backend/internal/schedule"
)

// Screens a client can be on.
const (
	ScreenMenu   = "menu"
	ScreenQuiz   = "quiz"
	ScreenResult = "result"
)

// Event types pushed to websocket subscribers.
const (
	EventState    = "state"
	EventQuestion = "question"
	EventTitle    = "title"
	EventFeedback = "feedback"
	EventInput    = "input"
	EventResult   = "result"
)

// Event is one presenter update as sent over the websocket.
type Event struct {
	Type  string    `json:"type"`
	State ViewState `json:"state"`
}

// Feedback is the verdict on the last submitted answer.
type Feedback struct {
	Correct       bool   `json:"correct" example:"false"`
	Question      string `json:"question,omitempty" example:"Norge"`
	CorrectAnswer string `json:"correct_answer,omitempty" example:"Oslo"`
}

// ResultView is what the result screen shows.
type ResultView struct {
	Correct      int  `json:"correct" example:"2"`
	Total        int  `json:"total" example:"3"`
	RetryAllowed bool `json:"retry_allowed" example:"true"`
}

// ViewState is everything a client needs to render the current screen.
type ViewState struct {
	Screen       string      `json:"screen" example:"quiz"`
	Topic        string      `json:"topic,omitempty" example:"countries"`
	Mode         string      `json:"mode,omitempty" example:"free-text"`
	Question     string      `json:"question,omitempty" example:"Sverige"`
	FlagURL      string      `json:"flag_url,omitempty" example:"/flags/Sverige"`
	Title        string      `json:"title,omitempty" example:"1/3, 0%"`
	Feedback     *Feedback   `json:"feedback,omitempty"`
	InputEnabled bool        `json:"input_enabled"`
	Result       *ResultView `json:"result,omitempty"`
}

// subscriber is one websocket client. Writes are serialized per connection.
type subscriber struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// View is the web presentation of a quiz. It keeps the state a client
// would render and pushes every change to websocket subscribers.
type View struct {
	scheduler  schedule.Scheduler
	focusDelay time.Duration
	logger     *slog.Logger
	upgrader   websocket.Upgrader

	mu        sync.Mutex
	state     ViewState
	focusTask schedule.Task
	subs      map[*subscriber]struct{}
}

var _ quiz.Presenter = (*View)(nil)

// NewView creates a View on the menu screen. Re-enabling the answer input
// is delayed by focusDelay so a client can finish clearing the field.
func NewView(s schedule.Scheduler, focusDelay time.Duration, logger *slog.Logger) *View {
	return &View{
		scheduler:  s,
		focusDelay: focusDelay,
		logger:     logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		state: ViewState{Screen: ScreenMenu},
		subs:  make(map[*subscriber]struct{}),
	}
}

// State returns a copy of the current view state.
func (v *View) State() ViewState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

func (v *View) UpdateQuestion(p quiz.Prompt) {
	v.update(EventQuestion, func(s *ViewState) {
		s.Screen = ScreenQuiz
		s.Topic = p.Topic.String()
		s.Mode = p.Mode.String()
		s.Result = nil
		s.Question = p.Text
		s.FlagURL = ""
		if p.Topic == quiz.TopicFlags {
			// The country name is the answer, so only the image is shown.
			s.Question = ""
			s.FlagURL = "/flags/" + url.PathEscape(p.Text)
		}
	})
}

func (v *View) UpdateTitle(title string) {
	v.update(EventTitle, func(s *ViewState) {
		s.Title = title
	})
}

func (v *View) SetAnswerCorrect() {
	v.update(EventFeedback, func(s *ViewState) {
		s.Feedback = &Feedback{Correct: true}
	})
}

func (v *View) SetAnswerIncorrect(question, correctAnswer string) {
	v.update(EventFeedback, func(s *ViewState) {
		s.Feedback = &Feedback{Question: question, CorrectAnswer: correctAnswer}
	})
}

// SetInputEnabled disables the input at once. Enabling is deferred by the
// focus delay, and a later disable cancels a pending enable.
func (v *View) SetInputEnabled(enabled bool) {
	v.mu.Lock()
	if v.focusTask != nil {
		v.focusTask.Cancel()
		v.focusTask = nil
	}
	if enabled {
		v.focusTask = v.scheduler.Once(v.focusDelay, func() {
			v.update(EventInput, func(s *ViewState) {
				s.InputEnabled = true
			})
		})
		v.mu.Unlock()
		return
	}
	v.mu.Unlock()

	v.update(EventInput, func(s *ViewState) {
		s.InputEnabled = false
	})
}

func (v *View) DisplayResult(r quiz.Result) {
	v.update(EventResult, func(s *ViewState) {
		s.Screen = ScreenResult
		s.Result = &ResultView{
			Correct:      r.Correct,
			Total:        r.Total,
			RetryAllowed: r.RetryAllowed,
		}
	})
}

// Reset returns the view to the menu screen.
func (v *View) Reset() {
	v.mu.Lock()
	if v.focusTask != nil {
		v.focusTask.Cancel()
		v.focusTask = nil
	}
	v.mu.Unlock()

	v.update(EventState, func(s *ViewState) {
		*s = ViewState{Screen: ScreenMenu}
	})
}

func (v *View) update(eventType string, fn func(*ViewState)) {
	v.mu.Lock()
	fn(&v.state)
	event := Event{Type: eventType, State: v.state}
	subs := make([]*subscriber, 0, len(v.subs))
	for sub := range v.subs {
		subs = append(subs, sub)
	}
	v.mu.Unlock()

	if len(subs) == 0 {
		return
	}

	payload, err := json.Marshal(event)
	if err != nil {
		v.logger.Error("failed to encode view event", "error", err, "type", eventType)
		return
	}
	for _, sub := range subs {
		sub.mu.Lock()
		err := sub.conn.WriteMessage(websocket.TextMessage, payload)
		sub.mu.Unlock()

		if err != nil {
			v.logger.Warn("dropping websocket subscriber", "error", err)
			v.unsubscribe(sub)
		}
	}
}

func (v *View) unsubscribe(sub *subscriber) {
	v.mu.Lock()
	_, ok := v.subs[sub]
	delete(v.subs, sub)
	v.mu.Unlock()

	if ok {
		sub.conn.Close()
	}
}

// Close disconnects every subscriber. Hijacked connections are not closed
// by http.Server.Shutdown.
func (v *View) Close() {
	v.mu.Lock()
	subs := v.subs
	v.subs = make(map[*subscriber]struct{})
	v.mu.Unlock()

	for sub := range subs {
		sub.mu.Lock()
		sub.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		sub.mu.Unlock()
		sub.conn.Close()
	}
}

// ServeWS upgrades the request and streams view events until the client
// disconnects. The current state is sent first.
func (v *View) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := v.upgrader.Upgrade(w, r, nil)
	if err != nil {
		v.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	sub := &subscriber{conn: conn}

	v.mu.Lock()
	hello := Event{Type: EventState, State: v.state}
	v.subs[sub] = struct{}{}
	sub.mu.Lock()
	v.mu.Unlock()
	err = conn.WriteJSON(hello)
	sub.mu.Unlock()
	if err != nil {
		v.unsubscribe(sub)
		return
	}

	// Clients only listen; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	v.unsubscribe(sub)
}
