package models

// User - покупатель, вошедший в систему; читается из сессии.
type User struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	EmailAddress string `json:"emailAddress"`
	Role         string `json:"role,omitempty"`
}

// DirectAwardProject - проект прямого присуждения на дашборде покупателя.
type DirectAwardProject struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	LockedAt string `json:"lockedAt,omitempty"`
}

// ListMeta - метаданные постраничных списков Data API.
type ListMeta struct {
	Total int `json:"total"`
}
