package service

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discosml/internal/recommender"
)

func TestCorpusHash(t *testing.T) {
	a := [][]string{{"milk", "bread"}, {"eggs"}}
	b := [][]string{{"eggs"}, {"milk", "bread"}}

	// el orden de las canastas no cambia el hash
	assert.Equal(t, CorpusHash(a), CorpusHash(b))

	// un corpus distinto da un hash distinto
	c := [][]string{{"milk", "bread"}, {"eggs", "butter"}}
	assert.NotEqual(t, CorpusHash(a), CorpusHash(c))

	// mismo multiconjunto, distinta partición: no debe colisionar
	d := [][]string{{"milk"}, {"bread", "eggs"}}
	assert.NotEqual(t, CorpusHash(a), CorpusHash(d))

	assert.NotEmpty(t, CorpusHash(nil))
}

func TestRuleDocRoundTrip(t *testing.T) {
	rules := []recommender.Rule{
		{
			Antecedent: []string{"butter"},
			Consequent: []string{"bread"},
			Support:    0.5,
			Confidence: 1.0,
			Lift:       1.2,
			Leverage:   0.083,
			Conviction: math.Inf(1),
		},
		{
			Antecedent: []string{"milk", "bread"},
			Consequent: []string{"butter"},
			Support:    1.0 / 3,
			Confidence: 2.0 / 3,
			Lift:       4.0 / 3,
			Leverage:   0.083,
			Conviction: 1.5,
		},
	}

	docs := ruleDocs(rules)
	require.Len(t, docs, 2)

	// +Inf se serializa como MaxFloat64 (JSON no lo soporta) y vuelve a +Inf
	assert.Equal(t, math.MaxFloat64, docs[0].Conviction)
	assert.Equal(t, 1.5, docs[1].Conviction)

	back := rulesFromDocs(docs)
	assert.Equal(t, rules, back)
}
