package domain

import "time"

// User es el registro persistido de una cuenta.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Created      time.Time  `json:"created"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	Token        string     `json:"-"`
	Active       bool       `json:"active"`
}

// Phone pertenece a exactamente un usuario.
type Phone struct {
	ID          int64  `json:"id"`
	Number      string `json:"number"`
	CityCode    int    `json:"citycode"`
	CountryCode string `json:"countrycode"`
	UserID      string `json:"user_id"`
}

// PhoneView es la forma publica de un telefono en las respuestas.
type PhoneView struct {
	Number      string `json:"number"`
	CityCode    int    `json:"citycode"`
	CountryCode string `json:"countrycode"`
}

// UserView es la representacion completa devuelta por sign-up y login.
type UserView struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Phones    []PhoneView `json:"phones"`
	Created   time.Time   `json:"created"`
	LastLogin *time.Time  `json:"lastLogin"`
	Token     string      `json:"token"`
	IsActive  bool        `json:"isActive"`
}

// NewUserView arma la vista a partir del usuario y sus telefonos.
func NewUserView(user User, phones []Phone) UserView {
	views := make([]PhoneView, 0, len(phones))
	for _, p := range phones {
		views = append(views, PhoneView{
			Number:      p.Number,
			CityCode:    p.CityCode,
			CountryCode: p.CountryCode,
		})
	}
	return UserView{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		Phones:    views,
		Created:   user.Created,
		LastLogin: user.LastLogin,
		Token:     user.Token,
		IsActive:  user.Active,
	}
}
