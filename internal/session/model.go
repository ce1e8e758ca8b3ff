package session

import "markethub/internal/account"

// Session is the persisted projection of the logged-in account. It is the
// whole content of the "session" record; Address and Secret deliberately
// stay behind in the directory.
type Session struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func Project(acc account.Account) Session {
	return Session{
		Name:  acc.Name,
		Email: acc.Email,
		Phone: acc.Phone,
	}
}
