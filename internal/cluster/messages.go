package cluster

// Tarea enviada desde el coordinador (API) a cada nodo ML. Cada nodo
// cuenta soportes sobre su shard de canastas: la canasta i le toca al
// nodo con i % Shards == ShardID. Candidatos y canastas viajan como
// índices de vocabulario (orden ascendente), los nombres no hacen falta
// para contar.
type CountTask struct {
	Level      int     `json:"level"`
	ShardID    int     `json:"shardId"` // id del shard (0..Shards-1)
	Shards     int     `json:"shards"`  // total de shards/nodos
	Candidates [][]int `json:"candidates"`
	Baskets    [][]int `json:"baskets"`
}

// Conteo parcial: no devuelve soportes finales, sino conteos por candidato
// para que el coordinador sume entre shards y divida por el total.
type CountResponse struct {
	ShardID int   `json:"shardId"`
	Counts  []int `json:"counts"`
}
