package models

// ClassProfile is the identity and theming record for one tenant. It is
// written wholesale by prefetch (replace-on-id) and never partially mutated
// locally.
type ClassProfile struct {
	ID              string `db:"id" json:"id"`
	Name            string `db:"name" json:"name"`
	TargetAge       int    `db:"target_age" json:"target_age"`
	PrimaryColor    string `db:"primary_color" json:"primary_color"`
	SecondaryColor  string `db:"secondary_color" json:"secondary_color"`
	AccentColor     string `db:"accent_color" json:"accent_color"`
	BackgroundColor string `db:"background_color" json:"background_color"`
}

// Child is one enrolled participant. Read-only on-device: deactivation
// happens remotely and arrives through the next prefetch.
type Child struct {
	ID           string `db:"id" json:"id"`
	ClassID      string `db:"class_id" json:"class_id"`
	FullName     string `db:"full_name" json:"full_name"`
	ContactPhone string `db:"contact_phone" json:"contact_phone"`
	Active       bool   `db:"active" json:"active"`
}
