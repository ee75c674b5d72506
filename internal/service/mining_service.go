package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"discosml/internal/cache"
	"discosml/internal/cluster"
	"discosml/internal/models"
	"discosml/internal/recommender"
	"discosml/internal/repository"
)

const (
	DefaultMinItemsPerBasket = 2
	DefaultMinItemFrequency  = 2

	clusterTimeout = 30 * time.Second
)

// Evento de progreso del minado, para el stream WebSocket del admin.
type MiningProgress struct {
	Stage   string `json:"stage"` // baskets | counting | rules | cached | done | error
	Msg     string `json:"msg"`
	Level   int    `json:"level,omitempty"`
	Baskets int    `json:"baskets,omitempty"`
	Rules   int    `json:"rules,omitempty"`
}

// MiningService orquesta el pipeline de minado: extrae canastas de los
// pedidos, re-entrena el recomendador (con el cluster de nodos ML si hay,
// local si no) y persiste el rule set resultante como cache derivado.
type MiningService struct {
	orders    *repository.OrderRepository
	ruleRepo  *repository.RuleRepository
	rec       *recommender.Recommender
	nodeAddrs []string

	// un solo remine a la vez; las consultas siguen sirviéndose del
	// estado anterior mientras tanto
	mu sync.Mutex
}

func NewMiningService(
	orders *repository.OrderRepository,
	ruleRepo *repository.RuleRepository,
	rec *recommender.Recommender,
	nodeAddrs []string,
) *MiningService {
	return &MiningService{
		orders:    orders,
		ruleRepo:  ruleRepo,
		rec:       rec,
		nodeAddrs: nodeAddrs,
	}
}

// LoadLatest carga en memoria el rule set persistido más reciente que
// matchee los parámetros actuales. Se llama al arrancar la API para no
// re-minar en cada deploy. Si no hay nada persistido no es error.
func (s *MiningService) LoadLatest(ctx context.Context) error {
	params := s.params()
	doc, err := s.ruleRepo.FindLatest(ctx, params)
	if err != nil {
		return err
	}
	if doc == nil {
		log.Printf("[mining] no hay rule set persistido para params=%+v, se requiere remine", params)
		return nil
	}

	s.rec.Restore(rulesFromDocs(doc.Rules))
	log.Printf("[mining] rule set cargado: %d reglas, corpus=%s, minado %s",
		doc.RuleCount, doc.CorpusHash, doc.CreatedAt.Format(time.RFC3339))
	return nil
}

// Remine re-ejecuta el pipeline completo. onProgress es opcional (lo usa
// el WS de admin); se invoca en la goroutine del minado.
func (s *MiningService) Remine(ctx context.Context, req models.RemineRequest, onProgress func(MiningProgress)) (*models.RemineResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	emit := func(p MiningProgress) {
		if onProgress != nil {
			onProgress(p)
		}
	}

	if req.MinItemsPerBasket <= 0 {
		req.MinItemsPerBasket = DefaultMinItemsPerBasket
	}
	if req.MinItemFrequency <= 0 {
		req.MinItemFrequency = DefaultMinItemFrequency
	}

	opts := repository.BasketOptions{
		MinItemsPerBasket: req.MinItemsPerBasket,
		MinItemFrequency:  req.MinItemFrequency,
		UseAlbumTitle:     true,
		StartDate:         req.StartDate,
		EndDate:           req.EndDate,
	}

	// 1) Canastas desde Mongo
	var baskets [][]string
	var err error
	if req.GroupByCustomer {
		baskets, err = s.orders.GetCustomerBaskets(ctx, opts)
	} else {
		baskets, err = s.orders.GetOrderBaskets(ctx, opts)
	}
	if err != nil {
		emit(MiningProgress{Stage: "error", Msg: err.Error()})
		return nil, err
	}
	emit(MiningProgress{Stage: "baskets", Msg: "canastas extraídas", Baskets: len(baskets)})

	params := s.params()
	hash := CorpusHash(baskets)

	// 2) Cache derivado: mismos params + mismo corpus = mismo rule set
	if !req.Force {
		cached, err := s.ruleRepo.FindByKey(ctx, params, hash)
		if err != nil {
			return nil, err
		}
		if cached != nil {
			s.rec.Restore(rulesFromDocs(cached.Rules))
			emit(MiningProgress{Stage: "cached", Msg: "rule set reutilizado desde Mongo", Rules: cached.RuleCount})
			return &models.RemineResult{
				BasketCount: cached.BasketCount,
				ItemCount:   cached.ItemCount,
				RuleCount:   cached.RuleCount,
				Distributed: cached.Distributed,
				FromCache:   true,
				CorpusHash:  hash,
				ElapsedMS:   0,
			}, nil
		}
	}

	// 3) Minar: cluster si hay nodos, local si no (o si el cluster falla)
	start := time.Now()
	distributed := false

	if len(s.nodeAddrs) > 0 {
		emit(MiningProgress{Stage: "counting", Msg: "contando soportes en el cluster ML"})
		err = s.rec.FitWithCounter(ctx, baskets, cluster.NewCounter(s.nodeAddrs, clusterTimeout))
		if err != nil {
			log.Printf("[mining] conteo distribuido falló (%v), cayendo a conteo local", err)
			err = s.rec.Fit(ctx, baskets)
		} else {
			distributed = true
		}
	} else {
		emit(MiningProgress{Stage: "counting", Msg: "contando soportes en memoria"})
		err = s.rec.Fit(ctx, baskets)
	}
	if err != nil {
		emit(MiningProgress{Stage: "error", Msg: err.Error()})
		return nil, err
	}
	elapsed := time.Since(start)

	rules := s.rec.Rules()
	itemCount := len(s.rec.Vocabulary())
	emit(MiningProgress{Stage: "rules", Msg: "reglas generadas", Rules: len(rules)})

	// 4) Persistir el rule set (no rompe el remine si falla)
	doc := &models.RuleSetDoc{
		Params:      params,
		CorpusHash:  hash,
		BasketCount: len(baskets),
		ItemCount:   itemCount,
		RuleCount:   len(rules),
		Distributed: distributed,
		ElapsedMS:   elapsed.Milliseconds(),
		Rules:       ruleDocs(rules),
	}
	if err := s.ruleRepo.Insert(ctx, doc); err != nil {
		log.Printf("[mining] error guardando rule set en Mongo: %v", err)
	}

	// 5) Invalidar recomendaciones cacheadas en Redis
	if err := cache.DeleteByPrefix(ctx, "rec:"); err != nil {
		log.Printf("[mining] error invalidando cache Redis: %v", err)
	}

	emit(MiningProgress{Stage: "done", Msg: "minado completo", Baskets: len(baskets), Rules: len(rules)})

	return &models.RemineResult{
		BasketCount: len(baskets),
		ItemCount:   itemCount,
		RuleCount:   len(rules),
		Distributed: distributed,
		FromCache:   false,
		CorpusHash:  hash,
		ElapsedMS:   elapsed.Milliseconds(),
	}, nil
}

func (s *MiningService) params() models.MiningParams {
	cfg := s.rec.Params()
	return models.MiningParams{
		MinSupport:     cfg.MinSupport,
		MinConfidence:  cfg.MinConfidence,
		MaxItemsetSize: cfg.MaxItemsetSize,
	}
}

// CorpusHash identifica el conjunto de canastas sin importar el orden en
// que llegaron: cada canasta ya viene con ítems ordenados, acá se ordenan
// las canastas serializadas y se hashea todo junto.
func CorpusHash(baskets [][]string) string {
	rows := make([]string, len(baskets))
	for i, b := range baskets {
		rows[i] = strings.Join(b, "\x1f")
	}
	sort.Strings(rows)

	h := sha256.New()
	for _, row := range rows {
		h.Write([]byte(row))
		h.Write([]byte{'\x1e'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// ============ conversión Rule <-> RuleDoc ============
// Conviction +Inf no sobrevive encoding/json, se guarda como MaxFloat64.

func ruleDocs(rules []recommender.Rule) []models.RuleDoc {
	out := make([]models.RuleDoc, len(rules))
	for i, r := range rules {
		conv := r.Conviction
		if math.IsInf(conv, 1) {
			conv = math.MaxFloat64
		}
		out[i] = models.RuleDoc{
			Antecedent: r.Antecedent,
			Consequent: r.Consequent,
			Support:    r.Support,
			Confidence: r.Confidence,
			Lift:       r.Lift,
			Leverage:   r.Leverage,
			Conviction: conv,
		}
	}
	return out
}

func rulesFromDocs(docs []models.RuleDoc) []recommender.Rule {
	out := make([]recommender.Rule, len(docs))
	for i, d := range docs {
		conv := d.Conviction
		if conv == math.MaxFloat64 {
			conv = math.Inf(1)
		}
		out[i] = recommender.Rule{
			Antecedent: d.Antecedent,
			Consequent: d.Consequent,
			Support:    d.Support,
			Confidence: d.Confidence,
			Lift:       d.Lift,
			Leverage:   d.Leverage,
			Conviction: conv,
		}
	}
	return out
}
