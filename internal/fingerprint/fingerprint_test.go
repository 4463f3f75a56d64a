package fingerprint

import (
	"crypto/sha256"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/conorfennell/myeng/internal/domain"
)

func TestNormalize(t *testing.T) {
	q := domain.Question{
		Theme: "  Greetings ",
		Text:  "  Как   дела? \r\n",
		Ans:   "How are you?",
	}
	assert.Equal(t, "greetings\x00как дела?\x00how are you?", Normalize(q))
}

func TestOf(t *testing.T) {
	t.Run("matches sha256 of normalized form", func(t *testing.T) {
		q := domain.Question{Theme: "T", Text: "Q", Ans: "A"}
		expected := fmt.Sprintf("%x", sha256.Sum256([]byte("t\x00q\x00a")))
		assert.Equal(t, expected, Of(q))
	})

	t.Run("is deterministic", func(t *testing.T) {
		q1 := domain.Question{Text: "Test"}
		q2 := domain.Question{Text: "Test"}
		assert.Equal(t, Of(q1), Of(q2))
	})

	t.Run("ignores case and spacing", func(t *testing.T) {
		q1 := domain.Question{Theme: "food", Text: "  яблоко ", Ans: "An  apple"}
		q2 := domain.Question{Theme: "Food", Text: "Яблоко", Ans: "an apple"}
		assert.Equal(t, Of(q1), Of(q2))
	})

	t.Run("ids do not matter", func(t *testing.T) {
		assert.Equal(t, Of(domain.Question{ID: 1, Text: "x"}), Of(domain.Question{ID: 2, Text: "x"}))
	})

	t.Run("field boundaries matter", func(t *testing.T) {
		q1 := domain.Question{Text: "ab", Ans: "c"}
		q2 := domain.Question{Text: "a", Ans: "bc"}
		assert.NotEqual(t, Of(q1), Of(q2))
	})

	t.Run("different questions differ", func(t *testing.T) {
		assert.NotEqual(t, Of(domain.Question{Text: "one"}), Of(domain.Question{Text: "two"}))
	})
}
