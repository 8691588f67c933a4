package domain

// User представляет зарегистрированного пользователя
type User struct {
	UserID      string `json:"userId"`
	FullName    string `json:"fullName"`
	Email       string `json:"email,omitempty"`
	Skills      string `json:"skills"`
	JobTitle    string `json:"jobTitle"`
	Description string `json:"description"`
	Img         string `json:"img,omitempty"`
}

// UserProfile представляет публичную часть профиля (используется в списках участников)
type UserProfile struct {
	UserID   string `json:"userId"`
	FullName string `json:"fullName"`
	Img      string `json:"img,omitempty"`
}

// Profile возвращает публичную часть профиля пользователя
func (u *User) Profile() UserProfile {
	return UserProfile{
		UserID:   u.UserID,
		FullName: u.FullName,
		Img:      u.Img,
	}
}

// UserUpdate содержит изменяемые поля профиля.
// Email и пароль через обновление профиля не меняются.
type UserUpdate struct {
	FullName    string
	Skills      string
	JobTitle    string
	Description string
	Img         string
}
