package account

import "time"

// Account is one registered user as persisted in the "accounts" record.
// The secret field holds a bcrypt hash, never the raw secret.
type Account struct {
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Secret    string    `json:"secret"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"createdAt"`
}

type RegisterParams struct {
	Name          string
	Email         string
	Phone         string
	Secret        string
	ConfirmSecret string
}

// UpdateProfileParams carries a full profile-settings save. Email is the
// current directory key; NewEmail, when set and different, re-keys the
// account.
type UpdateProfileParams struct {
	Email    string
	NewEmail string
	Name     string
	Phone    string
	Address  string
}
