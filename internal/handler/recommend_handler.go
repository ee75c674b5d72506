package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"discosml/internal/service"

	"github.com/go-chi/chi/v5"
)

type RecommendHandler struct {
	svc *service.RecommendService
}

func NewRecommendHandler(s *service.RecommendService) *RecommendHandler {
	return &RecommendHandler{svc: s}
}

// @Summary Recomendaciones para un ítem ("los que compraron X también compraron...")
// @Tags recommend
// @Produce json
// @Param item query string true "título del álbum"
// @Param n query int false "cantidad de recomendaciones (máx 20)"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {array} string
// @Router /recommendations/item [get]
func (h *RecommendHandler) GetForItem(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	item := r.URL.Query().Get("item")
	if item == "" {
		http.Error(w, "item query param requerido", http.StatusBadRequest)
		return
	}
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))
	refresh := r.URL.Query().Get("refresh") == "true"

	userID := UserIDFromContext(r.Context())

	items, err := h.svc.ForItem(r.Context(), userID, item, n, refresh)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}

type basketRequest struct {
	Basket []string `json:"basket"`
	N      int      `json:"n"`
}

// @Summary Recomendaciones para una canasta completa
// @Description Dispara las reglas cuyo antecedente es subconjunto de la canasta.
// @Tags recommend
// @Accept json
// @Produce json
// @Param body body basketRequest true "canasta"
// @Param refresh query bool false "si true, ignora cache Redis"
// @Success 200 {array} string
// @Router /recommendations/basket [post]
func (h *RecommendHandler) PostForBasket(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req basketRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	refresh := r.URL.Query().Get("refresh") == "true"

	userID := UserIDFromContext(r.Context())

	items, err := h.svc.ForBasket(r.Context(), userID, req.Basket, req.N, refresh)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}

// @Summary Recomendaciones para el usuario autenticado
// @Description Usa toda la historia de compras del usuario como canasta.
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Param n query int false "cantidad de recomendaciones (máx 20)"
// @Success 200 {array} string
// @Router /me/recommendations [get]
func (h *RecommendHandler) GetMyRecommendations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID := UserIDFromContext(r.Context())
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))

	items, err := h.svc.ForCustomer(r.Context(), userID, n)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}

// @Summary Recomendaciones para un usuario cualquiera (admin)
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Param id path int true "userId"
// @Param n query int false "cantidad de recomendaciones (máx 20)"
// @Success 200 {array} string
// @Router /users/{id}/recommendations [get]
func (h *RecommendHandler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID, _ := strconv.Atoi(chi.URLParam(r, "id"))
	n, _ := strconv.Atoi(r.URL.Query().Get("n"))

	items, err := h.svc.ForCustomer(r.Context(), userID, n)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(items)
}

// @Summary Historial de recomendaciones del usuario autenticado
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Param limit query int false "cantidad (máx 100)"
// @Success 200 {array} models.Recommendation
// @Router /me/recommendations/history [get]
func (h *RecommendHandler) GetMyHistory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	userID := UserIDFromContext(r.Context())
	limit, _ := strconv.ParseInt(r.URL.Query().Get("limit"), 10, 64)

	hist, err := h.svc.History(r.Context(), userID, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(hist)
}

// @Summary Rule set completo (admin)
// @Description Todas las reglas minadas, orden canónico: lift desc, confianza desc.
// @Tags recommend
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.RuleDoc
// @Router /admin/rules [get]
func (h *RecommendHandler) GetRules(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(h.svc.Rules())
}
