package recommender

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ============================================================
//  Minado Apriori nivel a nivel + generación de reglas
// ============================================================

// encodeBaskets convierte cada canasta en índices de vocabulario únicos y
// ordenados. Duplicados dentro de una canasta se descartan.
func encodeBaskets(baskets [][]string, idx map[string]int) [][]int {
	encoded := make([][]int, 0, len(baskets))
	for _, b := range baskets {
		seen := make(map[int]bool, len(b))
		row := make([]int, 0, len(b))
		for _, it := range b {
			i, ok := idx[it]
			if !ok || seen[i] {
				continue
			}
			seen[i] = true
			row = append(row, i)
		}
		sort.Ints(row)
		encoded = append(encoded, row)
	}
	return encoded
}

// itemsetKey es la clave canónica de un itemset (índices ascendentes).
func itemsetKey(items []int) string {
	var sb strings.Builder
	for i, v := range items {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(v))
	}
	return sb.String()
}

func itemNames(items []int, vocab []string) []string {
	out := make([]string, len(items))
	for i, v := range items {
		out[i] = vocab[v]
	}
	return out
}

// mine ejecuta la búsqueda nivel a nivel: arranca con los ítems sueltos y
// crece uniendo itemsets frecuentes, podando todo candidato con algún
// subconjunto infrecuente (anti-monotonía del soporte).
func (r *Recommender) mine(ctx context.Context, counter SupportCounter, baskets [][]int, vocab []string, total int) (*minedState, error) {
	st := &minedState{itemsets: []Itemset{}, rules: []Rule{}}
	if total == 0 || len(vocab) == 0 {
		return st, nil
	}

	supports := make(map[string]float64)

	// nivel 1: cada ítem del vocabulario por separado
	candidates := make([][]int, len(vocab))
	for i := range vocab {
		candidates[i] = []int{i}
	}

	var frequent [][][]int
	for level := 1; len(candidates) > 0; level++ {
		if r.cfg.MaxItemsetSize > 0 && level > r.cfg.MaxItemsetSize {
			break
		}

		counts, err := counter.CountSupports(ctx, level, candidates, baskets)
		if err != nil {
			return nil, err
		}
		if len(counts) != len(candidates) {
			return nil, fmt.Errorf("contador de soportes devolvió %d conteos para %d candidatos", len(counts), len(candidates))
		}

		var freq [][]int
		for i, cand := range candidates {
			sup := float64(counts[i]) / float64(total)
			if sup >= r.cfg.MinSupport {
				freq = append(freq, cand)
				supports[itemsetKey(cand)] = sup
			}
		}
		if len(freq) == 0 {
			break
		}
		frequent = append(frequent, freq)
		candidates = nextCandidates(freq, supports)
	}

	for _, lvl := range frequent {
		for _, is := range lvl {
			st.itemsets = append(st.itemsets, Itemset{
				Items:   itemNames(is, vocab),
				Support: supports[itemsetKey(is)],
			})
		}
	}

	st.rules = deriveRules(frequent, supports, vocab, r.cfg.MinConfidence)
	sortRules(st.rules)
	return st, nil
}

// nextCandidates genera los candidatos de tamaño k+1 uniendo pares de
// itemsets frecuentes de tamaño k que comparten los primeros k-1 índices.
// freq llega en orden lexicográfico y la salida lo conserva, lo que hace
// al minado determinista para una misma entrada.
func nextCandidates(freq [][]int, supports map[string]float64) [][]int {
	k := len(freq[0])
	var out [][]int
	for i := 0; i < len(freq); i++ {
		for j := i + 1; j < len(freq); j++ {
			if !samePrefix(freq[i], freq[j], k-1) {
				break
			}
			cand := make([]int, 0, k+1)
			cand = append(cand, freq[i]...)
			cand = append(cand, freq[j][k-1])
			if hasInfrequentSubset(cand, supports) {
				continue
			}
			out = append(out, cand)
		}
	}
	return out
}

func samePrefix(a, b []int, n int) bool {
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// hasInfrequentSubset aplica la poda anti-monótona: si algún subconjunto
// de tamaño k-1 no fue frecuente, el candidato tampoco puede serlo.
func hasInfrequentSubset(cand []int, supports map[string]float64) bool {
	sub := make([]int, 0, len(cand)-1)
	for d := range cand {
		sub = sub[:0]
		for i, v := range cand {
			if i != d {
				sub = append(sub, v)
			}
		}
		if _, ok := supports[itemsetKey(sub)]; !ok {
			return true
		}
	}
	return false
}

// deriveRules genera, para cada itemset frecuente de tamaño >= 2, todas
// las particiones antecedente/consecuente no triviales y se queda con las
// que pasan minConfidence. Los soportes de antecedente y consecuente
// siempre están en el mapa: todo subconjunto de un frecuente es frecuente.
func deriveRules(frequent [][][]int, supports map[string]float64, vocab []string, minConfidence float64) []Rule {
	rules := []Rule{}

	for lvlIdx, lvl := range frequent {
		if lvlIdx == 0 {
			continue // itemsets de tamaño 1 no generan reglas
		}
		for _, is := range lvl {
			k := len(is)
			supFull := supports[itemsetKey(is)]

			for mask := 1; mask < (1<<k)-1; mask++ {
				ant := make([]int, 0, k-1)
				cons := make([]int, 0, k-1)
				for i := 0; i < k; i++ {
					if mask&(1<<i) != 0 {
						ant = append(ant, is[i])
					} else {
						cons = append(cons, is[i])
					}
				}

				supAnt := supports[itemsetKey(ant)]
				supCons := supports[itemsetKey(cons)]

				confidence := supFull / supAnt
				if confidence < minConfidence {
					continue
				}

				conviction := math.Inf(1)
				if confidence < 1 {
					conviction = (1 - supCons) / (1 - confidence)
				}

				rules = append(rules, Rule{
					Antecedent: itemNames(ant, vocab),
					Consequent: itemNames(cons, vocab),
					Support:    supFull,
					Confidence: confidence,
					Lift:       confidence / supCons,
					Leverage:   supFull - supAnt*supCons,
					Conviction: conviction,
				})
			}
		}
	}
	return rules
}

// sortRules deja las reglas en el orden canónico: lift desc y, a igualdad
// de lift, confianza desc. El sort estable conserva el orden de generación
// para empates totales, así dos Fit con la misma entrada dan el mismo orden.
func sortRules(rules []Rule) {
	sort.SliceStable(rules, func(i, j int) bool {
		if rules[i].Lift != rules[j].Lift {
			return rules[i].Lift > rules[j].Lift
		}
		return rules[i].Confidence > rules[j].Confidence
	})
}

// ============================================================
//  Contador local de soportes
// ============================================================

// LocalCounter cuenta soportes recorriendo todas las canastas en memoria.
type LocalCounter struct{}

func (LocalCounter) CountSupports(ctx context.Context, level int, candidates [][]int, baskets [][]int) ([]int, error) {
	counts := make([]int, len(candidates))
	for bi, b := range baskets {
		// control de cancelación cada cierta cantidad de canastas
		if bi%1024 == 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
		}
		for ci, cand := range candidates {
			if ContainsAll(b, cand) {
				counts[ci]++
			}
		}
	}
	return counts, nil
}

// ContainsAll indica si basket (índices ascendentes) contiene todos los
// índices de cand (también ascendentes). Barrido tipo merge.
func ContainsAll(basket, cand []int) bool {
	if len(cand) > len(basket) {
		return false
	}
	i := 0
	for _, want := range cand {
		for i < len(basket) && basket[i] < want {
			i++
		}
		if i >= len(basket) || basket[i] != want {
			return false
		}
		i++
	}
	return true
}
