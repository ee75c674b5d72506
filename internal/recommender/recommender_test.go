package recommender

import (
	"context"
	"math"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// canastas de referencia: 6 pedidos de un almacén
func groceryBaskets() [][]string {
	return [][]string{
		{"milk", "bread", "butter"},
		{"bread", "butter"},
		{"milk", "bread"},
		{"milk", "bread", "butter", "eggs"},
		{"bread", "eggs"},
		{"milk", "eggs"},
	}
}

func fitGrocery(t *testing.T) *Recommender {
	t.Helper()
	rec, err := New(Config{MinSupport: 0.3, MinConfidence: 0.5}, nil)
	require.NoError(t, err)
	require.NoError(t, rec.Fit(context.Background(), groceryBaskets()))
	return rec
}

// soporte calculado a mano: fracción de canastas que contienen todos los ítems
func manualSupport(baskets [][]string, items []string) float64 {
	count := 0
	for _, b := range baskets {
		set := make(map[string]bool, len(b))
		for _, it := range b {
			set[it] = true
		}
		ok := true
		for _, it := range items {
			if !set[it] {
				ok = false
				break
			}
		}
		if ok {
			count++
		}
	}
	return float64(count) / float64(len(baskets))
}

func itemsetSupportMap(rec *Recommender) map[string]float64 {
	out := make(map[string]float64)
	for _, is := range rec.Itemsets() {
		sorted := append([]string(nil), is.Items...)
		sort.Strings(sorted)
		out[strings.Join(sorted, ",")] = is.Support
	}
	return out
}

func supportKey(items []string) string {
	sorted := append([]string(nil), items...)
	sort.Strings(sorted)
	return strings.Join(sorted, ",")
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"valida", Config{MinSupport: 0.3, MinConfidence: 0.5}, true},
		{"bordes en 1", Config{MinSupport: 1, MinConfidence: 1}, true},
		{"support cero", Config{MinSupport: 0, MinConfidence: 0.5}, false},
		{"support negativo", Config{MinSupport: -0.1, MinConfidence: 0.5}, false},
		{"support mayor a 1", Config{MinSupport: 1.1, MinConfidence: 0.5}, false},
		{"confidence cero", Config{MinSupport: 0.3, MinConfidence: 0}, false},
		{"confidence mayor a 1", Config{MinSupport: 0.3, MinConfidence: 1.5}, false},
		{"max itemset negativo", Config{MinSupport: 0.3, MinConfidence: 0.5, MaxItemsetSize: -1}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := New(tc.cfg, nil)
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrBadConfig)
			}
		})
	}
}

func TestFrequentItemsets(t *testing.T) {
	rec := fitGrocery(t)
	baskets := groceryBaskets()
	supports := itemsetSupportMap(rec)

	// {bread, butter} aparece en 3/6 canastas
	require.Contains(t, supports, "bread,butter")
	assert.InDelta(t, 0.5, supports["bread,butter"], 1e-9)

	// {butter, eggs} solo en 1/6, queda fuera con min_support=0.3
	assert.NotContains(t, supports, "butter,eggs")

	// cada soporte publicado coincide con el conteo manual y está en [0,1]
	for _, is := range rec.Itemsets() {
		assert.GreaterOrEqual(t, is.Support, 0.0)
		assert.LessOrEqual(t, is.Support, 1.0)
		assert.GreaterOrEqual(t, is.Support, rec.Params().MinSupport)
		assert.InDelta(t, manualSupport(baskets, is.Items), is.Support, 1e-9)
	}
}

func TestRuleMetrics(t *testing.T) {
	rec := fitGrocery(t)
	baskets := groceryBaskets()
	supports := itemsetSupportMap(rec)

	rules := rec.Rules()
	require.NotEmpty(t, rules)

	for _, r := range rules {
		require.NotEmpty(t, r.Antecedent)
		require.NotEmpty(t, r.Consequent)
		for _, a := range r.Antecedent {
			assert.NotContains(t, r.Consequent, a, "antecedente y consecuente deben ser disjuntos")
		}

		supAnt := supports[supportKey(r.Antecedent)]
		supCons := supports[supportKey(r.Consequent)]
		full := manualSupport(baskets, append(append([]string{}, r.Antecedent...), r.Consequent...))

		// soporte de la regla = soporte de la unión, y nunca supera el de sus partes
		assert.InDelta(t, full, r.Support, 1e-9)
		assert.LessOrEqual(t, r.Support, supAnt+1e-9)
		assert.LessOrEqual(t, r.Support, supCons+1e-9)

		// definiciones de las métricas
		assert.InDelta(t, full/supAnt, r.Confidence, 1e-9)
		assert.InDelta(t, r.Confidence/supCons, r.Lift, 1e-9)
		assert.InDelta(t, full-supAnt*supCons, r.Leverage, 1e-9)

		// umbrales
		assert.GreaterOrEqual(t, r.Confidence, rec.Params().MinConfidence)
		assert.GreaterOrEqual(t, r.Support, rec.Params().MinSupport)
		assert.GreaterOrEqual(t, r.Lift, 0.0)

		if r.Confidence == 1 {
			assert.True(t, math.IsInf(r.Conviction, 1), "conviction debe ser +Inf con confianza 1")
		} else {
			assert.InDelta(t, (1-supCons)/(1-r.Confidence), r.Conviction, 1e-9)
		}
	}
}

func TestLiftSymmetry(t *testing.T) {
	rec := fitGrocery(t)

	// lift(A->B) == lift(B->A) cuando ambas direcciones pasan el umbral
	byKey := make(map[string]Rule)
	for _, r := range rec.Rules() {
		byKey[supportKey(r.Antecedent)+"=>"+supportKey(r.Consequent)] = r
	}
	checked := 0
	for _, r := range rec.Rules() {
		if rev, ok := byKey[supportKey(r.Consequent)+"=>"+supportKey(r.Antecedent)]; ok {
			assert.InDelta(t, r.Lift, rev.Lift, 1e-9)
			checked++
		}
	}
	require.Greater(t, checked, 0, "el dataset debería tener al menos un par de reglas espejo")
}

func TestCanonicalOrder(t *testing.T) {
	rules := fitGrocery(t).Rules()
	require.NotEmpty(t, rules)

	for i := 1; i < len(rules); i++ {
		prev, cur := rules[i-1], rules[i]
		if prev.Lift == cur.Lift {
			assert.GreaterOrEqual(t, prev.Confidence, cur.Confidence)
		} else {
			assert.Greater(t, prev.Lift, cur.Lift)
		}
	}
}

func TestRefitIsDeterministic(t *testing.T) {
	rec1 := fitGrocery(t)
	first := rec1.Rules()

	// mismo dataset, misma instancia: Fit reemplaza todo y el resultado
	// es idéntico (mismos miembros, mismo orden)
	require.NoError(t, rec1.Fit(context.Background(), groceryBaskets()))
	require.Equal(t, first, rec1.Rules())

	// y en una instancia nueva también
	rec2 := fitGrocery(t)
	require.Equal(t, first, rec2.Rules())
}

func TestRecommendForItem(t *testing.T) {
	rec := fitGrocery(t)

	// butter siempre co-ocurre con bread, la recomendación tiene que salir
	recs := rec.RecommendForItem("butter", 5)
	assert.Contains(t, recs, "bread")
	assert.NotContains(t, recs, "butter", "nunca se recomienda el propio ítem")

	// cap de top_n
	assert.LessOrEqual(t, len(rec.RecommendForItem("milk", 2)), 2)

	// sin duplicados
	seen := make(map[string]bool)
	for _, it := range recs {
		assert.False(t, seen[it], "recomendación duplicada: %s", it)
		seen[it] = true
	}

	// ítem nunca visto: lista vacía, sin panic
	assert.Empty(t, rec.RecommendForItem("nonexistent_item", 5))
}

func TestRecommendForBasket(t *testing.T) {
	rec := fitGrocery(t)

	// milk co-ocurre con bread y eggs en 2 de sus 3 canastas
	recs := rec.RecommendForBasket([]string{"milk"}, 5)
	require.NotEmpty(t, recs)
	assert.NotContains(t, recs, "milk")

	found := false
	for _, it := range recs {
		if it == "bread" || it == "eggs" {
			found = true
		}
	}
	assert.True(t, found, "esperaba bread o eggs para la canasta [milk]")

	// nada de lo que ya está en la canasta
	recs = rec.RecommendForBasket([]string{"milk", "bread"}, 5)
	assert.NotContains(t, recs, "milk")
	assert.NotContains(t, recs, "bread")

	// canasta vacía: vacío, no error
	assert.Empty(t, rec.RecommendForBasket(nil, 5))
	assert.Empty(t, rec.RecommendForBasket([]string{}, 5))

	// ítems desconocidos en la canasta simplemente no matchean
	assert.Empty(t, rec.RecommendForBasket([]string{"zzz", "yyy"}, 5))
}

func TestQueriesBeforeFit(t *testing.T) {
	rec, err := New(Config{MinSupport: 0.3, MinConfidence: 0.5}, nil)
	require.NoError(t, err)

	assert.Empty(t, rec.Rules())
	assert.Empty(t, rec.Itemsets())
	assert.Empty(t, rec.RecommendForItem("milk", 5))
	assert.Empty(t, rec.RecommendForBasket([]string{"milk"}, 5))
}

func TestNoFrequentItemsets(t *testing.T) {
	// umbral imposible: ningún itemset llega, las consultas devuelven vacío
	rec, err := New(Config{MinSupport: 0.99, MinConfidence: 0.5}, nil)
	require.NoError(t, err)
	require.NoError(t, rec.Fit(context.Background(), groceryBaskets()))

	assert.Empty(t, rec.Rules())
	assert.Empty(t, rec.RecommendForItem("milk", 5))
	assert.Empty(t, rec.RecommendForBasket([]string{"milk", "bread"}, 5))
}

func TestEmptyAndDegenerateInput(t *testing.T) {
	rec, err := New(Config{MinSupport: 0.3, MinConfidence: 0.5}, nil)
	require.NoError(t, err)

	// cero canastas: no revienta, queda vacío
	require.NoError(t, rec.Fit(context.Background(), nil))
	assert.Empty(t, rec.Rules())

	// canastas vacías: solo suman al denominador
	require.NoError(t, rec.Fit(context.Background(), [][]string{{}, {}, {"a", "b"}, {"a", "b"}}))
	supports := itemsetSupportMap(rec)
	assert.InDelta(t, 0.5, supports["a,b"], 1e-9)
}

func TestDuplicatesInBasketCountOnce(t *testing.T) {
	rec, err := New(Config{MinSupport: 0.5, MinConfidence: 0.5}, nil)
	require.NoError(t, err)

	// modelo de pertenencia: repetir un ítem no infla su soporte
	require.NoError(t, rec.Fit(context.Background(), [][]string{
		{"a", "a", "a", "b"},
		{"a", "b", "b"},
		{"c"},
		{"c"},
	}))

	supports := itemsetSupportMap(rec)
	assert.InDelta(t, 0.5, supports["a"], 1e-9)
	assert.InDelta(t, 0.5, supports["a,b"], 1e-9)
}

func TestVocabularyGrowsAcrossFits(t *testing.T) {
	rec := fitGrocery(t)
	before := rec.Vocabulary()

	more := append(groceryBaskets(), []string{"milk", "cheese"}, []string{"cheese", "bread"})
	require.NoError(t, rec.Fit(context.Background(), more))

	after := rec.Vocabulary()
	require.Greater(t, len(after), len(before))

	// las posiciones de los ítems ya conocidos no se mueven
	for i, it := range before {
		assert.Equal(t, it, after[i])
	}
	assert.Contains(t, after, "cheese")
}

func TestMaxItemsetSizeCap(t *testing.T) {
	rec, err := New(Config{MinSupport: 0.3, MinConfidence: 0.5, MaxItemsetSize: 1}, nil)
	require.NoError(t, err)
	require.NoError(t, rec.Fit(context.Background(), groceryBaskets()))

	// con itemsets de a lo sumo 1 ítem no hay reglas posibles
	assert.Empty(t, rec.Rules())
	for _, is := range rec.Itemsets() {
		assert.Len(t, is.Items, 1)
	}
}

func TestRestore(t *testing.T) {
	mined := fitGrocery(t).Rules()

	rec, err := New(Config{MinSupport: 0.3, MinConfidence: 0.5}, nil)
	require.NoError(t, err)
	rec.Restore(mined)

	require.Equal(t, mined, rec.Rules())
	assert.Contains(t, rec.RecommendForItem("butter", 5), "bread")
}

func TestContainsAll(t *testing.T) {
	assert.True(t, ContainsAll([]int{1, 2, 3, 7}, []int{2, 7}))
	assert.True(t, ContainsAll([]int{1, 2, 3}, []int{1, 2, 3}))
	assert.True(t, ContainsAll([]int{5}, nil))
	assert.False(t, ContainsAll([]int{1, 3}, []int{2}))
	assert.False(t, ContainsAll([]int{1, 2}, []int{1, 2, 3}))
	assert.False(t, ContainsAll(nil, []int{0}))
}
