package domain

// Question is a single translation exercise.
// Text is in the learner's language, Ans in the target language.
type Question struct {
	ID    int64
	Theme string
	Text  string
	Ans   string
}

// QuestionMap converts a question into its transport representation.
func QuestionMap(q Question) map[string]any {
	return map[string]any{
		"id":    q.ID,
		"theme": q.Theme,
		"text":  q.Text,
		"ans":   q.Ans,
	}
}
