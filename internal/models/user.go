package models

type UserDoc struct {
	UserID       int      `json:"userId" bson:"userId"`
	Email        string   `json:"email" bson:"email"`
	PasswordHash string   `json:"passwordHash" bson:"passwordHash"`
	Role         string   `json:"role" bson:"role"`
	FirstName    string   `json:"firstName,omitempty" bson:"firstName,omitempty"`
	LastName     string   `json:"lastName,omitempty" bson:"lastName,omitempty"`
	FavGenres    []string `json:"favGenres,omitempty" bson:"favGenres,omitempty"`
	CreatedAt    string   `json:"createdAt" bson:"createdAt"`
	UpdatedAt    string   `json:"updatedAt" bson:"updatedAt"`
}
