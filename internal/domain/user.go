package domain

// User is a registered learner. The ID is supplied by the client
// (the chat bot uses the messenger account id).
type User struct {
	ID           int64
	Surname      string
	Name         string
	Age          int
	Address      string
	Email        string
	TelegramName string
	Aim          string
	Password     string
}

// UserMap converts a user into its transport representation.
func UserMap(u User) map[string]any {
	return map[string]any{
		"id":            u.ID,
		"surname":       u.Surname,
		"name":          u.Name,
		"age":           u.Age,
		"address":       u.Address,
		"email":         u.Email,
		"telegram_name": u.TelegramName,
		"aim":           u.Aim,
		"password":      u.Password,
	}
}
