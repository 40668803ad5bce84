package models

import "time"

type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"`
	Role      string    `json:"role"` // admin, editor, viewer
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomTheme is a user-defined theme persisted by name
type CustomTheme struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Primary   string `json:"primary_color"`
	Secondary string `json:"secondary_color"`
	CreatedAt string `json:"created_at"`
}
