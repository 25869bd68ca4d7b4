// ABOUTME: User model for the authenticated Beeminder account.
// ABOUTME: Read-mostly; mutated only by the remote service.
package models

// User is the authenticated Beeminder account. Goals holds the slugs of
// the goals the user owns.
type User struct {
	Username      string   `json:"username"`
	Timezone      string   `json:"timezone,omitempty"`
	Goals         []string `json:"goals,omitempty"`
	UpdatedAt     int64    `json:"updated_at,omitempty"`
	CreatedAt     int64    `json:"created_at,omitempty"`
	UrgencyLoad   int      `json:"urgency_load,omitempty"`
	DeadbeatSince *int64   `json:"deadbeat,omitempty"`
}
