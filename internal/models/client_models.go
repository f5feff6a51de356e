package models

import "time"

// Client represents a gym member.
type Client struct {
	ID          int64   `json:"id" db:"id"`
	FirstName   string  `json:"first_name" db:"first_name"`
	LastName    string  `json:"last_name" db:"last_name"`
	NationalID  string  `json:"national_id" db:"national_id"`
	Email       *string `json:"email,omitempty" db:"email"`
	PhoneNumber *string `json:"phone_number,omitempty" db:"phone_number"`
	Address     *string `json:"address,omitempty" db:"address"`
	BirthDate   *string `json:"birth_date,omitempty" db:"birth_date"` // YYYY-MM-DD
	// CheckInToken identifies the client in the QR scanning flow. Generated
	// once, lazily, never rotated.
	CheckInToken *string   `json:"check_in_token,omitempty" db:"check_in_token"`
	Status       string    `json:"status" db:"status"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// FullName joins first and last name for display.
func (c *Client) FullName() string {
	return c.FirstName + " " + c.LastName
}
