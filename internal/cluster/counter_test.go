package cluster

import (
	"bufio"
	"context"
	"encoding/json"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"discosml/internal/recommender"
)

// startFakeNode levanta un nodo ML de prueba que atiende una conexión por
// vez con el mismo protocolo que cmd/mlnode.
func startFakeNode(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { ln.Close() })

	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			go func(conn net.Conn) {
				defer conn.Close()
				dec := json.NewDecoder(bufio.NewReader(conn))
				var task CountTask
				if err := dec.Decode(&task); err != nil {
					return
				}
				counts := make([]int, len(task.Candidates))
				for i, b := range task.Baskets {
					if i%task.Shards != task.ShardID {
						continue
					}
					for ci, cand := range task.Candidates {
						if recommender.ContainsAll(b, cand) {
							counts[ci]++
						}
					}
				}
				_ = json.NewEncoder(conn).Encode(&CountResponse{ShardID: task.ShardID, Counts: counts})
			}(conn)
		}
	}()
	return ln.Addr().String()
}

func TestCountSupportsMatchesLocal(t *testing.T) {
	baskets := [][]int{
		{0, 1, 2},
		{1, 2},
		{0, 1},
		{0, 1, 2, 3},
		{1, 3},
		{0, 3},
		{2},
	}
	candidates := [][]int{{0}, {1}, {2}, {3}, {0, 1}, {1, 2}, {0, 1, 2}}

	want, err := recommender.LocalCounter{}.CountSupports(context.Background(), 1, candidates, baskets)
	require.NoError(t, err)

	// 1 nodo y 3 nodos tienen que dar exactamente lo mismo que el conteo local
	for _, nodes := range []int{1, 3} {
		addrs := make([]string, nodes)
		for i := range addrs {
			addrs[i] = startFakeNode(t)
		}
		got, err := NewCounter(addrs, 5*time.Second).CountSupports(context.Background(), 1, candidates, baskets)
		require.NoError(t, err)
		assert.Equal(t, want, got, "con %d nodos", nodes)
	}
}

func TestCountSupportsNodeDown(t *testing.T) {
	// un nodo vivo y uno caído: el nivel completo falla
	alive := startFakeNode(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	dead := ln.Addr().String()
	ln.Close()

	_, err = NewCounter([]string{alive, dead}, 2*time.Second).
		CountSupports(context.Background(), 1, [][]int{{0}}, [][]int{{0}, {0, 1}})
	require.Error(t, err)
}

func TestCountSupportsNoNodes(t *testing.T) {
	_, err := NewCounter(nil, time.Second).
		CountSupports(context.Background(), 1, [][]int{{0}}, [][]int{{0}})
	require.Error(t, err)
}

func TestFitWithClusterCounter(t *testing.T) {
	// minado de punta a punta con contador distribuido vs local
	baskets := [][]string{
		{"milk", "bread", "butter"},
		{"bread", "butter"},
		{"milk", "bread"},
		{"milk", "bread", "butter", "eggs"},
		{"bread", "eggs"},
		{"milk", "eggs"},
	}

	local, err := recommender.New(recommender.Config{MinSupport: 0.3, MinConfidence: 0.5}, nil)
	require.NoError(t, err)
	require.NoError(t, local.Fit(context.Background(), baskets))

	addrs := []string{startFakeNode(t), startFakeNode(t)}
	distributed, err := recommender.New(recommender.Config{MinSupport: 0.3, MinConfidence: 0.5},
		NewCounter(addrs, 5*time.Second))
	require.NoError(t, err)
	require.NoError(t, distributed.Fit(context.Background(), baskets))

	assert.Equal(t, local.Rules(), distributed.Rules())
	assert.Equal(t, local.Itemsets(), distributed.Itemsets())
}
