package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"discosml/internal/cache"
	"discosml/internal/models"
	"discosml/internal/recommender"
	"discosml/internal/repository"
)

const (
	DefaultTopN = 5
	MaxTopN     = 20 // por seguridad, no deja pedir 1000 ítems

	recCacheTTL = 60 * 60 // 1 hora, en segundos
)

// RecommendService responde las consultas de recomendación sobre el
// recomendador compartido, con cache Redis e historial en Mongo.
type RecommendService struct {
	rec     *recommender.Recommender
	orders  *repository.OrderRepository
	recRepo *repository.RecommendationRepository
}

func NewRecommendService(
	rec *recommender.Recommender,
	orders *repository.OrderRepository,
	recRepo *repository.RecommendationRepository,
) *RecommendService {
	return &RecommendService{
		rec:     rec,
		orders:  orders,
		recRepo: recRepo,
	}
}

func normTopN(n int) int {
	if n <= 0 {
		return DefaultTopN
	}
	if n > MaxTopN {
		return MaxTopN
	}
	return n
}

// ForItem: "los que compraron X también compraron...". refresh saltea el
// cache Redis. Ítem desconocido: lista vacía, no error.
func (s *RecommendService) ForItem(ctx context.Context, userID int, item string, topN int, refresh bool) ([]string, error) {
	topN = normTopN(topN)
	key := fmt.Sprintf("rec:item:%s:n:%d", item, topN)

	var cached []string
	if !refresh {
		if ok, err := cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	items := s.rec.RecommendForItem(item, topN)

	s.saveHistory(ctx, "item", userID, []string{item}, items, topN)

	if err := cache.SetJSON(ctx, key, items, recCacheTTL); err != nil {
		log.Printf("[recommend] error cacheando en Redis: %v", err)
	}
	return items, nil
}

// ForBasket: reglas cuyo antecedente es subconjunto de la canasta.
func (s *RecommendService) ForBasket(ctx context.Context, userID int, basket []string, topN int, refresh bool) ([]string, error) {
	topN = normTopN(topN)
	key := basketCacheKey(basket, topN)

	var cached []string
	if !refresh {
		if ok, err := cache.GetJSON(ctx, key, &cached); err == nil && ok {
			return cached, nil
		}
	}

	items := s.rec.RecommendForBasket(basket, topN)

	s.saveHistory(ctx, "basket", userID, basket, items, topN)

	if err := cache.SetJSON(ctx, key, items, recCacheTTL); err != nil {
		log.Printf("[recommend] error cacheando en Redis: %v", err)
	}
	return items, nil
}

// ForCustomer recomienda sobre toda la historia de compras del cliente:
// su canasta acumulada entra como consulta de canasta. Cliente sin
// compras: lista vacía. No se cachea porque la historia cambia con cada
// pedido.
func (s *RecommendService) ForCustomer(ctx context.Context, customerID, topN int) ([]string, error) {
	topN = normTopN(topN)

	history, err := s.orders.GetCustomerHistory(ctx, customerID, true)
	if err != nil {
		return nil, err
	}
	if len(history) == 0 {
		return []string{}, nil
	}

	items := s.rec.RecommendForBasket(history, topN)

	s.saveHistory(ctx, "customer", customerID, history, items, topN)
	return items, nil
}

// Rules devuelve el rule set completo en el orden canónico, en formato
// JSON-friendly (conviction infinita capada a MaxFloat64).
func (s *RecommendService) Rules() []models.RuleDoc {
	return ruleDocs(s.rec.Rules())
}

// History lista el historial de consultas de un usuario.
func (s *RecommendService) History(ctx context.Context, userID int, limit int64) ([]models.Recommendation, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.recRepo.FindByUser(ctx, userID, limit)
}

// saveHistory guarda la consulta en Mongo; si falla solo se loguea, la
// respuesta al cliente no se rompe.
func (s *RecommendService) saveHistory(ctx context.Context, mode string, userID int, input, items []string, topN int) {
	if s.recRepo == nil {
		return
	}
	cfg := s.rec.Params()
	rec := &models.Recommendation{
		Mode:   mode,
		UserID: userID,
		Input:  input,
		Items:  items,
		TopN:   topN,
		Params: map[string]any{
			"minSupport":    cfg.MinSupport,
			"minConfidence": cfg.MinConfidence,
		},
		CreatedAt: time.Now(),
	}
	if err := s.recRepo.Insert(ctx, rec); err != nil {
		log.Printf("[recommend] error guardando historial en Mongo: %v", err)
	}
}

func basketCacheKey(basket []string, topN int) string {
	sorted := append([]string(nil), basket...)
	sort.Strings(sorted)
	return fmt.Sprintf("rec:basket:%s:n:%d", strings.Join(sorted, "|"), topN)
}
