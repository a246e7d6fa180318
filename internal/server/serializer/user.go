package serializer

import "github.com/mdouchement/pantry/internal/model"

// User serializes the public fields of a user.
// The password hash never leaves the server.
func User(m *model.User) map[string]interface{} {
	return map[string]interface{}{
		"id":       m.ID,
		"username": m.Username,
		"email":    m.Email,
	}
}
