package domain

// Test is a themed set of questions handed out to users one at a time.
// Questions is an opaque payload assembled by the client.
type Test struct {
	ID          int64
	Theme       string
	Questions   string
	PassedUsers PassedUsers
}

// TestMap converts a test into its transport representation.
// passed_users keeps the comma-terminated wire format.
func TestMap(t Test) map[string]any {
	return map[string]any{
		"id":           t.ID,
		"theme":        t.Theme,
		"questions":    t.Questions,
		"passed_users": t.PassedUsers.String(),
	}
}
