package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RuleDoc es una regla de asociación en formato persistible/JSON.
// Conviction infinita (confianza == 1) se guarda como math.MaxFloat64
// porque encoding/json no acepta +Inf; el orden relativo no cambia.
type RuleDoc struct {
	Antecedent []string `json:"antecedent" bson:"antecedent"`
	Consequent []string `json:"consequent" bson:"consequent"`
	Support    float64  `json:"support" bson:"support"`
	Confidence float64  `json:"confidence" bson:"confidence"`
	Lift       float64  `json:"lift" bson:"lift"`
	Leverage   float64  `json:"leverage" bson:"leverage"`
	Conviction float64  `json:"conviction" bson:"conviction"`
}

type MiningParams struct {
	MinSupport     float64 `json:"minSupport" bson:"minSupport"`
	MinConfidence  float64 `json:"minConfidence" bson:"minConfidence"`
	MaxItemsetSize int     `json:"maxItemsetSize" bson:"maxItemsetSize"`
}

// RuleSetDoc es un rule set minado completo: cache derivado, con clave
// lógica (params + hash del corpus de canastas). Si nada cambió, el
// próximo remine reutiliza el documento en vez de volver a minar.
type RuleSetDoc struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Params      MiningParams       `json:"params" bson:"params"`
	CorpusHash  string             `json:"corpusHash" bson:"corpusHash"`
	BasketCount int                `json:"basketCount" bson:"basketCount"`
	ItemCount   int                `json:"itemCount" bson:"itemCount"`
	RuleCount   int                `json:"ruleCount" bson:"ruleCount"`
	Distributed bool               `json:"distributed" bson:"distributed"`
	ElapsedMS   int64              `json:"elapsedMs" bson:"elapsedMs"`
	Rules       []RuleDoc          `json:"rules" bson:"rules"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}
