package fingerprint

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"github.com/conorfennell/myeng/internal/domain"
)

// Normalize concatenates the question's theme, phrase and translation
// after cleaning each part: whitespace is trimmed and collapsed,
// letters are lowercased and line endings unified.
func Normalize(q domain.Question) string {
	normalizePart := func(part string) string {
		p := strings.ToLower(part)
		p = strings.ReplaceAll(p, "\r\n", "\n")
		lines := strings.Split(p, "\n")
		for i, line := range lines {
			lines[i] = strings.Join(strings.Fields(line), " ")
		}
		return strings.TrimSpace(strings.Join(lines, "\n"))
	}

	// Joined with a separator that cannot appear inside a normalized part,
	// so ("ab", "c") and ("a", "bc") differ.
	return strings.Join([]string{
		normalizePart(q.Theme),
		normalizePart(q.Text),
		normalizePart(q.Ans),
	}, "\x00")
}

// Of returns the SHA-256 of the normalized question as a hex string.
// Questions that differ only in case or spacing share a fingerprint.
func Of(q domain.Question) string {
	sum := sha256.Sum256([]byte(Normalize(q)))
	return fmt.Sprintf("%x", sum)
}
