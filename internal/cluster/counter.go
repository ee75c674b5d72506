package cluster

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// Counter implementa recommender.SupportCounter repartiendo el conteo
// entre los nodos ML. Cada nivel del Apriori se fanea en paralelo a todos
// los nodos y los conteos parciales se suman por candidato. Si algún nodo
// falla, el nivel completo falla: el servicio de minado decide si cae al
// contador local.
type Counter struct {
	nodeAddrs []string
	timeout   time.Duration
}

func NewCounter(nodeAddrs []string, timeout time.Duration) *Counter {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Counter{nodeAddrs: nodeAddrs, timeout: timeout}
}

func (c *Counter) CountSupports(ctx context.Context, level int, candidates [][]int, baskets [][]int) ([]int, error) {
	if len(c.nodeAddrs) == 0 {
		return nil, fmt.Errorf("no hay nodos ML configurados (ML_NODE_ADDRS vacío)")
	}
	shards := len(c.nodeAddrs)

	ctxTimeout, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resCh := make(chan *CountResponse, shards)
	errCh := make(chan error, shards)

	var wg sync.WaitGroup
	for shardID, addr := range c.nodeAddrs {
		wg.Add(1)
		go func(addr string, shardID int) {
			defer wg.Done()
			task := &CountTask{
				Level:      level,
				ShardID:    shardID,
				Shards:     shards,
				Candidates: candidates,
				Baskets:    baskets,
			}
			resp, err := SendTask(ctxTimeout, addr, task)
			if err != nil {
				errCh <- fmt.Errorf("nodo %s: %w", addr, err)
				return
			}
			resCh <- resp
		}(addr, shardID)
	}

	wg.Wait()
	close(resCh)
	close(errCh)

	if len(errCh) > 0 {
		return nil, <-errCh
	}

	// sumar conteos parciales por candidato
	counts := make([]int, len(candidates))
	for resp := range resCh {
		if len(resp.Counts) != len(candidates) {
			return nil, fmt.Errorf("shard %d devolvió %d conteos para %d candidatos",
				resp.ShardID, len(resp.Counts), len(candidates))
		}
		for i, n := range resp.Counts {
			counts[i] += n
		}
	}
	return counts, nil
}
