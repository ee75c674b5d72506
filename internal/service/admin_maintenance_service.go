package service

import (
	"context"
	"net"
	"time"

	"discosml/internal/models"
	"discosml/internal/recommender"
	"discosml/internal/repository"
)

// AdminMaintenanceService arma el resumen de estado del minado y pinguea
// los nodos ML para el panel de admin.
type AdminMaintenanceService struct {
	orders    *repository.OrderRepository
	albums    *repository.AlbumRepository
	ruleRepo  *repository.RuleRepository
	rec       *recommender.Recommender
	nodeAddrs []string
}

func NewAdminMaintenanceService(
	orders *repository.OrderRepository,
	albums *repository.AlbumRepository,
	ruleRepo *repository.RuleRepository,
	rec *recommender.Recommender,
	nodeAddrs []string,
) *AdminMaintenanceService {
	return &AdminMaintenanceService{
		orders:    orders,
		albums:    albums,
		ruleRepo:  ruleRepo,
		rec:       rec,
		nodeAddrs: nodeAddrs,
	}
}

// GetMiningStatus devuelve el resumen global del estado del minado.
func (s *AdminMaintenanceService) GetMiningStatus(ctx context.Context) (*models.AdminMiningStatus, error) {
	orderCount, err := s.orders.Count(ctx)
	if err != nil {
		return nil, err
	}
	albumCount, err := s.albums.Count(ctx)
	if err != nil {
		return nil, err
	}
	setCount, err := s.ruleRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	cfg := s.rec.Params()
	status := &models.AdminMiningStatus{
		Orders:       orderCount,
		Albums:       albumCount,
		StoredSets:   setCount,
		LoadedRules:  len(s.rec.Rules()),
		ItemUniverse: len(s.rec.Vocabulary()),
		Params: models.MiningParams{
			MinSupport:     cfg.MinSupport,
			MinConfidence:  cfg.MinConfidence,
			MaxItemsetSize: cfg.MaxItemsetSize,
		},
		MLNodes: s.nodeAddrs,
	}

	latest, err := s.ruleRepo.FindLatest(ctx, status.Params)
	if err != nil {
		return nil, err
	}
	if latest != nil {
		status.LastMinedAt = &latest.CreatedAt
		status.LastCorpus = latest.CorpusHash
	}

	return status, nil
}

// PingNodes verifica conectividad TCP contra cada nodo ML.
func (s *AdminMaintenanceService) PingNodes(ctx context.Context) []models.MLNodeStatus {
	out := make([]models.MLNodeStatus, 0, len(s.nodeAddrs))

	d := net.Dialer{Timeout: 3 * time.Second}
	for _, addr := range s.nodeAddrs {
		start := time.Now()
		st := models.MLNodeStatus{Addr: addr}

		conn, err := d.DialContext(ctx, "tcp", addr)
		if err != nil {
			st.Error = err.Error()
		} else {
			st.OK = true
			st.LatencyMS = time.Since(start).Milliseconds()
			_ = conn.Close()
		}
		out = append(out, st)
	}
	return out
}
