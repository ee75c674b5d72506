package main

import (
	"bufio"
	"encoding/json"
	"log"
	"net"
	"os"
	"time"

	"discosml/internal/cluster"
	"discosml/internal/recommender"
)

func main() {
	addr := os.Getenv("ML_NODE_ADDR")
	if addr == "" {
		addr = ":9001"
	}

	nodeID := os.Getenv("NODE_ID")
	if nodeID == "" {
		nodeID = "?"
	}

	log.Printf("[ML NODE %s] escuchando en %s", nodeID, addr)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Fatal(err)
	}

	for {
		conn, err := ln.Accept()
		if err != nil {
			log.Println("accept error:", err)
			continue
		}
		go handleConn(nodeID, conn)
	}
}

func handleConn(nodeID string, conn net.Conn) {
	defer conn.Close()

	dec := json.NewDecoder(bufio.NewReader(conn))
	var task cluster.CountTask
	if err := dec.Decode(&task); err != nil {
		log.Printf("[ML NODE %s] decode task error: %v", nodeID, err)
		return
	}

	log.Printf("[ML NODE %s] tarea recibida: nivel=%d shard=%d/%d candidatos=%d canastas=%d",
		nodeID, task.Level, task.ShardID, task.Shards, len(task.Candidates), len(task.Baskets))

	start := time.Now()
	counts := countShard(task)
	elapsed := time.Since(start)

	log.Printf("[ML NODE %s] completado: nivel=%d shard=%d/%d tiempo=%s",
		nodeID, task.Level, task.ShardID, task.Shards, elapsed)

	resp := cluster.CountResponse{
		ShardID: task.ShardID,
		Counts:  counts,
	}

	if err := json.NewEncoder(conn).Encode(&resp); err != nil {
		log.Printf("[ML NODE %s] encode resp error: %v", nodeID, err)
	}
}

// countShard cuenta, para cada candidato, en cuántas canastas de este
// shard aparece completo. La canasta i le toca a este nodo si
// i % Shards == ShardID, el mismo reparto que asume el coordinador.
func countShard(task cluster.CountTask) []int {
	counts := make([]int, len(task.Candidates))

	for idx, basket := range task.Baskets {
		if task.Shards > 0 && idx%task.Shards != task.ShardID {
			continue
		}
		for ci, cand := range task.Candidates {
			if recommender.ContainsAll(basket, cand) {
				counts[ci]++
			}
		}
	}
	return counts
}
