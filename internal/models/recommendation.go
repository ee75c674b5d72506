package models

import "time"

// Historial de consultas de recomendación (se guarda en Mongo, igual que
// el historial de la colección recommendations: no rompe la respuesta si
// falla el insert).
type Recommendation struct {
	ID        string    `bson:"_id,omitempty" json:"id"`
	Mode      string    `bson:"mode" json:"mode"` // "item" | "basket" | "customer"
	UserID    int       `bson:"userId,omitempty" json:"userId,omitempty"`
	Input     []string  `bson:"input" json:"input"`
	Items     []string  `bson:"items" json:"items"`
	TopN      int       `bson:"topN" json:"topN"`
	Params    any       `bson:"params" json:"params"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
