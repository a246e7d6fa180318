package model

// A User represents a database record.
// The password only holds the argon2 hash, never the plain text.
type User struct {
	Base `msgpack:",inline" storm:"inline"`

	Username string `json:"username" msgpack:"username"           storm:"unique"`
	Email    string `json:"email"    msgpack:"email"              storm:"unique"`
	Password string `json:"-"        msgpack:"password,omitempty"`
}
