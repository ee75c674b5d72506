package recommender

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

const (
	DefaultTopN = 5
)

// ErrBadConfig se devuelve cuando los umbrales están fuera de rango.
var ErrBadConfig = errors.New("configuración inválida del recomendador")

// Config son los parámetros de minado. MinSupport y MinConfidence deben
// estar en (0, 1]. MaxItemsetSize limita el tamaño de los itemsets
// explorados (0 = sin límite); sirve de freno contra explosión combinatoria
// cuando MinSupport es muy bajo.
type Config struct {
	MinSupport     float64
	MinConfidence  float64
	MaxItemsetSize int
}

func (c Config) Validate() error {
	if c.MinSupport <= 0 || c.MinSupport > 1 {
		return fmt.Errorf("%w: min_support=%v (debe estar en (0,1])", ErrBadConfig, c.MinSupport)
	}
	if c.MinConfidence <= 0 || c.MinConfidence > 1 {
		return fmt.Errorf("%w: min_confidence=%v (debe estar en (0,1])", ErrBadConfig, c.MinConfidence)
	}
	if c.MaxItemsetSize < 0 {
		return fmt.Errorf("%w: max_itemset_size=%d (no puede ser negativo)", ErrBadConfig, c.MaxItemsetSize)
	}
	return nil
}

// Itemset es un conjunto de ítems con su soporte (fracción de canastas
// que lo contienen completo).
type Itemset struct {
	Items   []string `json:"items"`
	Support float64  `json:"support"`
}

// Rule es una regla de asociación antecedente -> consecuente con sus
// métricas. Conviction es +Inf cuando la confianza es exactamente 1
// (asociación "infinitamente" más fuerte que la independencia).
type Rule struct {
	Antecedent []string `json:"antecedent"`
	Consequent []string `json:"consequent"`
	Support    float64  `json:"support"`
	Confidence float64  `json:"confidence"`
	Lift       float64  `json:"lift"`
	Leverage   float64  `json:"leverage"`
	Conviction float64  `json:"conviction"`
}

// SupportCounter cuenta, para cada candidato, en cuántas canastas aparece
// completo. Candidatos y canastas vienen como índices del vocabulario,
// ordenados ascendente. La implementación local recorre todo en memoria;
// el contador del cluster reparte las canastas entre nodos ML.
type SupportCounter interface {
	CountSupports(ctx context.Context, level int, candidates [][]int, baskets [][]int) ([]int, error)
}

// estado minado: se construye completo y se publica con un solo swap de
// puntero, así los lectores nunca ven un minado a medias.
type minedState struct {
	itemsets []Itemset
	rules    []Rule
}

// Recommender mina itemsets frecuentes (Apriori nivel a nivel) y genera
// reglas de asociación ordenadas por lift y confianza. El vocabulario de
// ítems se fija en el primer Fit y se extiende explícitamente en Fits
// posteriores: las posiciones de los ítems ya conocidos nunca cambian.
type Recommender struct {
	cfg     Config
	counter SupportCounter

	// fitMu serializa los Fit entre sí; mu protege vocabulario y estado
	// publicados frente a los lectores.
	fitMu sync.Mutex
	mu    sync.RWMutex

	vocab    []string
	vocabIdx map[string]int
	state    *minedState
}

// New crea el recomendador. Si counter es nil se usa el contador local.
func New(cfg Config, counter SupportCounter) (*Recommender, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if counter == nil {
		counter = LocalCounter{}
	}
	return &Recommender{
		cfg:      cfg,
		counter:  counter,
		vocabIdx: make(map[string]int),
	}, nil
}

// Params devuelve la configuración con la que se construyó la instancia.
func (r *Recommender) Params() Config { return r.cfg }

// Fit re-mina itemsets y reglas desde cero sobre las canastas dadas,
// reemplazando cualquier resultado anterior. Los ítems repetidos dentro
// de una canasta cuentan una sola vez (modelo de pertenencia, no de
// cantidades) y las canastas vacías solo aportan al denominador.
func (r *Recommender) Fit(ctx context.Context, baskets [][]string) error {
	return r.FitWithCounter(ctx, baskets, r.counter)
}

// FitWithCounter es Fit con un contador de soportes explícito. Lo usa el
// servicio de minado para intentar primero el conteo distribuido y caer
// al local si el cluster falla. Ambos contadores producen exactamente los
// mismos itemsets frecuentes: "frecuente" es propiedad matemática del
// soporte, no de la estrategia de conteo.
func (r *Recommender) FitWithCounter(ctx context.Context, baskets [][]string, counter SupportCounter) error {
	if counter == nil {
		counter = LocalCounter{}
	}
	r.fitMu.Lock()
	defer r.fitMu.Unlock()

	// 1) Vocabulario: copia del actual + ítems nuevos en orden de aparición.
	vocab := append([]string(nil), r.vocab...)
	idx := make(map[string]int, len(vocab))
	for i, it := range vocab {
		idx[it] = i
	}
	for _, b := range baskets {
		for _, it := range b {
			if _, ok := idx[it]; !ok {
				idx[it] = len(vocab)
				vocab = append(vocab, it)
			}
		}
	}

	// 2) Codificar canastas como índices únicos ordenados (one-hot implícito).
	encoded := encodeBaskets(baskets, idx)

	// 3) Minar. Un resultado vacío no es error: queda un rule set vacío.
	st, err := r.mine(ctx, counter, encoded, vocab, len(baskets))
	if err != nil {
		return err
	}

	// 4) Publicar todo de una vez.
	r.mu.Lock()
	r.vocab = vocab
	r.vocabIdx = idx
	r.state = st
	r.mu.Unlock()
	return nil
}

// Restore publica un rule set ya minado (p.ej. cargado de Mongo) sin
// volver a minar. Los itemsets no se reconstruyen: solo se necesitan las
// reglas para responder consultas.
func (r *Recommender) Restore(rules []Rule) {
	r.fitMu.Lock()
	defer r.fitMu.Unlock()

	vocab := append([]string(nil), r.vocab...)
	idx := make(map[string]int, len(vocab))
	for i, it := range vocab {
		idx[it] = i
	}
	register := func(items []string) {
		for _, it := range items {
			if _, ok := idx[it]; !ok {
				idx[it] = len(vocab)
				vocab = append(vocab, it)
			}
		}
	}
	for _, rl := range rules {
		register(rl.Antecedent)
		register(rl.Consequent)
	}

	st := &minedState{rules: append([]Rule(nil), rules...)}
	sortRules(st.rules)

	r.mu.Lock()
	r.vocab = vocab
	r.vocabIdx = idx
	r.state = st
	r.mu.Unlock()
}

func (r *Recommender) snapshot() *minedState {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.state
}

// Rules devuelve las reglas minadas en el orden canónico (lift desc,
// confianza desc). Antes del primer Fit devuelve una lista vacía.
func (r *Recommender) Rules() []Rule {
	st := r.snapshot()
	if st == nil {
		return []Rule{}
	}
	out := make([]Rule, len(st.rules))
	copy(out, st.rules)
	return out
}

// Itemsets devuelve los itemsets frecuentes del último Fit.
func (r *Recommender) Itemsets() []Itemset {
	st := r.snapshot()
	if st == nil {
		return []Itemset{}
	}
	out := make([]Itemset, len(st.itemsets))
	copy(out, st.itemsets)
	return out
}

// Vocabulary devuelve el universo de ítems en orden de aparición.
func (r *Recommender) Vocabulary() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.vocab...)
}

// RecommendForItem devuelve hasta topN consecuentes de reglas cuyo
// antecedente contiene item, en orden de regla (primero-visto gana en la
// deduplicación, no se re-agregan scores). Ítem desconocido o sin Fit
// previo: lista vacía, nunca error.
func (r *Recommender) RecommendForItem(item string, topN int) []string {
	out := []string{}
	st := r.snapshot()
	if st == nil || len(st.rules) == 0 {
		return out
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	seen := map[string]bool{item: true}
	for _, rule := range st.rules {
		if !containsItem(rule.Antecedent, item) {
			continue
		}
		for _, c := range rule.Consequent {
			if seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
			if len(out) >= topN {
				return out
			}
		}
	}
	return out
}

// RecommendForBasket devuelve hasta topN consecuentes de reglas cuyo
// antecedente es subconjunto de la canasta (no igualdad: una regla con
// antecedente más chico también dispara). Los ítems ya presentes en la
// canasta se excluyen. Canasta vacía: lista vacía.
func (r *Recommender) RecommendForBasket(basket []string, topN int) []string {
	out := []string{}
	st := r.snapshot()
	if st == nil || len(st.rules) == 0 || len(basket) == 0 {
		return out
	}
	if topN <= 0 {
		topN = DefaultTopN
	}

	inBasket := make(map[string]bool, len(basket))
	for _, it := range basket {
		inBasket[it] = true
	}

	seen := make(map[string]bool, len(basket))
	for _, rule := range st.rules {
		if !subsetOf(rule.Antecedent, inBasket) {
			continue
		}
		for _, c := range rule.Consequent {
			if inBasket[c] || seen[c] {
				continue
			}
			seen[c] = true
			out = append(out, c)
			if len(out) >= topN {
				return out
			}
		}
	}
	return out
}

func containsItem(items []string, item string) bool {
	for _, it := range items {
		if it == item {
			return true
		}
	}
	return false
}

func subsetOf(items []string, set map[string]bool) bool {
	for _, it := range items {
		if !set[it] {
			return false
		}
	}
	return true
}
