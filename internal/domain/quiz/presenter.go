package quiz

// Prompt is what the presentation layer shows for one question. For
// TopicFlags Text is the country whose flag should be displayed.
type Prompt struct {
	Topic Topic
	Mode  Mode
	Text  string
}

// Result is shown when a session ends.
type Result struct {
	Correct      int
	Total        int
	RetryAllowed bool
}

// Presenter receives view updates from a Session. Implementations must be
// safe to call from a scheduled callback.
type Presenter interface {
	UpdateQuestion(p Prompt)
	UpdateTitle(title string)
	SetAnswerCorrect()
	SetAnswerIncorrect(question, correctAnswer string)
	SetInputEnabled(enabled bool)
	DisplayResult(r Result)
}
