package models

import "time"

// Account is a registered user's durable identity and credentials.
// PasswordHash never leaves the server; clients only ever see AccountView.
type Account struct {
	ID           string
	Email        string
	PasswordHash []byte
	FirstName    string
	LastName     string
	Phone        string
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// AccountView is the redacted representation of an Account that is safe
// to return to clients. Field names follow the public API contract.
type AccountView struct {
	ID        string     `json:"_id"`
	Email     string     `json:"email"`
	FirstName string     `json:"firstName"`
	LastName  string     `json:"lastName"`
	Phone     string     `json:"phone,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin,omitempty"`
}

// View redacts the account for client consumption.
func (a Account) View() AccountView {
	return AccountView{
		ID:        a.ID,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		Phone:     a.Phone,
		CreatedAt: a.CreatedAt,
		LastLogin: a.LastLoginAt,
	}
}
