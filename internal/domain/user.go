package domain

// User represents a registered user. The credential pair is stored and
// compared as plain text; the application has no real authentication layer.
type User struct {
	Username string `json:"username"`
	Password string `json:"password"`
}
