package models

import "time"

// Resumen del estado del minado para el panel de admin.
type AdminMiningStatus struct {
	Orders       int64        `json:"orders"`
	Albums       int64        `json:"albums"`
	StoredSets   int64        `json:"storedRuleSets"`
	LoadedRules  int          `json:"loadedRules"`
	ItemUniverse int          `json:"itemUniverse"`
	Params       MiningParams `json:"params"`
	LastMinedAt  *time.Time   `json:"lastMinedAt,omitempty"`
	LastCorpus   string       `json:"lastCorpusHash,omitempty"`
	MLNodes      []string     `json:"mlNodes"`
}

// Estado de un nodo ML (ping TCP simple).
type MLNodeStatus struct {
	Addr      string `json:"addr"`
	OK        bool   `json:"ok"`
	LatencyMS int64  `json:"latencyMs"`
	Error     string `json:"error,omitempty"`
}

// Parámetros del remine lanzado por admin.
type RemineRequest struct {
	MinItemsPerBasket int    `json:"minItemsPerBasket"`
	MinItemFrequency  int    `json:"minItemFrequency"`
	GroupByCustomer   bool   `json:"groupByCustomer"`
	StartDate         string `json:"startDate,omitempty"`
	EndDate           string `json:"endDate,omitempty"`
	Force             bool   `json:"force"`
}

type RemineResult struct {
	BasketCount int    `json:"basketCount"`
	ItemCount   int    `json:"itemCount"`
	RuleCount   int    `json:"ruleCount"`
	Distributed bool   `json:"distributed"`
	FromCache   bool   `json:"fromCache"`
	CorpusHash  string `json:"corpusHash"`
	ElapsedMS   int64  `json:"elapsedMs"`
}
