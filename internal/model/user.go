// Package model defines domain entities for the application.
package model

// User represents an API consumer. The API key is issued server-side at
// creation time and doubles as the bearer credential; it is never
// serialized back out.
type User struct {
	Username string `json:"username"`
	Fullname string `json:"fullname"`
	APIKey   string `json:"-"`
}
