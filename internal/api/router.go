package api

import "net/http"

func RegisterRoutes(mux *http.ServeMux, h *Handler) {
	// Dataset
	mux.HandleFunc("GET /dataset", h.getDataset)
	mux.HandleFunc("GET /flags/{country}", h.getFlag)

	// Quiz
	mux.HandleFunc("POST /quiz", h.startQuiz)
	mux.HandleFunc("GET /quiz", h.getQuiz)
	mux.HandleFunc("DELETE /quiz", h.endQuiz)
	mux.HandleFunc("POST /quiz/answers", h.submitAnswer)
	mux.HandleFunc("POST /quiz/reveal", h.revealCard)
	mux.HandleFunc("POST /quiz/retry", h.retryQuiz)
	mux.HandleFunc("GET /quiz/events", h.quizEvents)
}
