package api

import (
	"net/http"

	"github.com/geoquiz/backend/internal/domain/quiz"
	"github.com/geoquiz/backend/internal/service"
)

// ── Request / Response types ────────────────────────────────────────────────

type StartQuizRequest struct {
	Topic string `json:"topic" example:"countries" enums:"countries,capitals,flags"`
	Mode  string `json:"mode" example:"free-text" enums:"free-text,flashcard"`
	Start int    `json:"start" example:"1"`
	Stop  int    `json:"stop" example:"10"`
}

type ScoreResponse struct {
	Correct int `json:"correct" example:"2"`
	Asked   int `json:"asked" example:"3"`
	Total   int `json:"total" example:"10"`
	Ratio   int `json:"ratio" example:"67"`
}

type QuizResponse struct {
	ID        string        `json:"id" example:"4f9a7c1e-2b8d-4c3e-9a51-0d6f8e2b7c44"`
	Topic     string        `json:"topic" example:"countries"`
	Mode      string        `json:"mode" example:"free-text"`
	State     string        `json:"state" example:"running"`
	Remaining int           `json:"remaining" example:"7"`
	Title     string        `json:"title" example:"3/10, 67%"`
	Score     ScoreResponse `json:"score"`
	Missed    []string      `json:"missed"`
	View      ViewState     `json:"view"`
}

type SubmitAnswerRequest struct {
	Answer string `json:"answer" example:"Oslo"`
}

type SubmitAnswerResponse struct {
	Correct       bool         `json:"correct" example:"false"`
	Question      string       `json:"question" example:"Norge"`
	CorrectAnswer string       `json:"correct_answer" example:"Oslo"`
	Finished      bool         `json:"finished" example:"false"`
	Quiz          QuizResponse `json:"quiz"`
}

type RevealRequest struct {
	Down bool `json:"down" example:"true"`
}

type RevealResponse struct {
	Text string `json:"text" example:"Stockholm"`
}

func (h *Handler) quizResponse(s service.Snapshot) QuizResponse {
	missed := s.Missed
	if missed == nil {
		missed = []string{}
	}
	return QuizResponse{
		ID:        s.ID,
		Topic:     s.Topic.String(),
		Mode:      s.Mode.String(),
		State:     s.State.String(),
		Remaining: s.Remaining,
		Title:     s.Title,
		Score: ScoreResponse{
			Correct: s.Score.Correct,
			Asked:   s.Score.Asked,
			Total:   s.Score.Total,
			Ratio:   s.Score.Ratio,
		},
		Missed: missed,
		View:   h.view.State(),
	}
}

// ── Handlers ────────────────────────────────────────────────────────────────

// startQuiz starts a new quiz session.
// @Summary      Start a quiz
// @Description  Starts a session over entries start..stop (1-based, inclusive) of the chosen topic. Replaces any running session.
// @Tags         Quiz
// @Accept       json
// @Produce      json
// @Param        body  body      StartQuizRequest  true  "Quiz selection"
// @Success      201   {object}  QuizResponse
// @Failure      400   {object}  map[string]string  "unknown topic or mode, or empty range"
// @Failure      422   {object}  map[string]string  "topic or mode not chosen"
// @Router       /quiz [post]
func (h *Handler) startQuiz(w http.ResponseWriter, r *http.Request) {
	var req StartQuizRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	topic, err := quiz.ParseTopic(req.Topic)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	mode, err := quiz.ParseMode(req.Mode)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	snap, err := h.quiz.Start(quiz.Selection{
		Topic: topic,
		Mode:  mode,
		Start: req.Start,
		Stop:  req.Stop,
	})
	if h.handleQuizError(w, err) {
		return
	}

	respondJSON(w, http.StatusCreated, h.quizResponse(snap))
}

// getQuiz returns the current session.
// @Summary      Get the current quiz
// @Tags         Quiz
// @Produce      json
// @Success      200  {object}  QuizResponse
// @Failure      409  {object}  map[string]string  "no session"
// @Router       /quiz [get]
func (h *Handler) getQuiz(w http.ResponseWriter, r *http.Request) {
	snap, err := h.quiz.Current()
	if h.handleQuizError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, h.quizResponse(snap))
}

// endQuiz discards the current session and returns to the menu.
// @Summary      End the current quiz
// @Tags         Quiz
// @Success      204
// @Failure      409  {object}  map[string]string  "no session"
// @Router       /quiz [delete]
func (h *Handler) endQuiz(w http.ResponseWriter, r *http.Request) {
	if h.handleQuizError(w, h.quiz.End()) {
		return
	}
	h.view.Reset()
	w.WriteHeader(http.StatusNoContent)
}

// submitAnswer checks an answer to the current question.
// @Summary      Submit an answer
// @Description  Case-insensitive comparison with the expected answer. The next question is shown, or the session ends.
// @Tags         Quiz
// @Accept       json
// @Produce      json
// @Param        body  body      SubmitAnswerRequest  true  "Answer"
// @Success      200   {object}  SubmitAnswerResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string  "no running session"
// @Router       /quiz/answers [post]
func (h *Handler) submitAnswer(w http.ResponseWriter, r *http.Request) {
	var req SubmitAnswerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	out, err := h.quiz.Answer(req.Answer)
	if h.handleQuizError(w, err) {
		return
	}
	snap, err := h.quiz.Current()
	if h.handleQuizError(w, err) {
		return
	}

	respondJSON(w, http.StatusOK, SubmitAnswerResponse{
		Correct:       out.Correct,
		Question:      out.Question,
		CorrectAnswer: out.Expected,
		Finished:      out.Finished,
		Quiz:          h.quizResponse(snap),
	})
}

// revealCard flips the flashcard.
// @Summary      Flip the flashcard
// @Description  With down=true the answer is shown (the country name for flags); with down=false the question.
// @Tags         Quiz
// @Accept       json
// @Produce      json
// @Param        body  body      RevealRequest  true  "Toggle position"
// @Success      200   {object}  RevealResponse
// @Failure      409   {object}  map[string]string  "no session"
// @Router       /quiz/reveal [post]
func (h *Handler) revealCard(w http.ResponseWriter, r *http.Request) {
	var req RevealRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	text, err := h.quiz.Reveal(req.Down)
	if h.handleQuizError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, RevealResponse{Text: text})
}

// retryQuiz restarts the session over the missed questions.
// @Summary      Retry missed questions
// @Tags         Quiz
// @Produce      json
// @Success      200  {object}  QuizResponse
// @Failure      409  {object}  map[string]string  "nothing to retry"
// @Router       /quiz/retry [post]
func (h *Handler) retryQuiz(w http.ResponseWriter, r *http.Request) {
	snap, err := h.quiz.Retry()
	if h.handleQuizError(w, err) {
		return
	}
	respondJSON(w, http.StatusOK, h.quizResponse(snap))
}

// quizEvents streams view updates.
// @Summary      Subscribe to view updates
// @Description  Upgrades to a WebSocket. The current view state is sent first, then one Event per update.
// @Tags         Quiz
// @Success      101
// @Router       /quiz/events [get]
func (h *Handler) quizEvents(w http.ResponseWriter, r *http.Request) {
	h.view.ServeWS(w, r)
}
