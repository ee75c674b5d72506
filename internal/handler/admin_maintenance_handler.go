package handler

import (
	"encoding/json"
	"net/http"

	"discosml/internal/models"
	"discosml/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

// AdminMaintenanceHandler expone endpoints de mantenimiento del minado.
type AdminMaintenanceHandler struct {
	maint  *service.AdminMaintenanceService
	mining *service.MiningService
}

// NewAdminMaintenanceHandler crea el handler.
func NewAdminMaintenanceHandler(maint *service.AdminMaintenanceService, mining *service.MiningService) *AdminMaintenanceHandler {
	return &AdminMaintenanceHandler{maint: maint, mining: mining}
}

// @Summary Estado del minado de reglas
// @Description Conteos de pedidos/álbumes/rule sets, reglas cargadas en memoria y último minado.
// @Tags admin-maintenance
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.AdminMiningStatus
// @Failure 500 {string} string "error interno"
// @Router /admin/mining/status [get]
func (h *AdminMaintenanceHandler) GetStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.maint.GetMiningStatus(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, status)
}

// @Summary Estado de los nodos ML
// @Tags admin-maintenance
// @Security BearerAuth
// @Produce json
// @Success 200 {array} models.MLNodeStatus
// @Router /admin/mining/nodes [get]
func (h *AdminMaintenanceHandler) GetNodes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.maint.PingNodes(r.Context()))
}

// @Summary Re-minar reglas de asociación
// @Description Reconstruye las canastas desde los pedidos y re-entrena el recomendador. Si el corpus y los parámetros no cambiaron, reutiliza el rule set persistido (salvo force=true).
// @Tags admin-maintenance
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body models.RemineRequest true "parámetros del minado"
// @Success 200 {object} models.RemineResult
// @Failure 400 {string} string "body inválido"
// @Failure 500 {string} string "error interno"
// @Router /admin/mining/remine [post]
func (h *AdminMaintenanceHandler) PostRemine(w http.ResponseWriter, r *http.Request) {
	var req models.RemineRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "body inválido", http.StatusBadRequest)
		return
	}

	res, err := h.mining.Remine(r.Context(), req, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// upgrader global (no afecta a swagger)
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary Re-minado con progreso en tiempo real (WebSocket)
// @Description Abre un WS, lanza el remine y va empujando eventos de progreso hasta el resultado final.
// @Tags admin-maintenance
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/mining/ws [get]
func (h *AdminMaintenanceHandler) RemineWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, "no se pudo abrir WebSocket", http.StatusBadRequest)
		return
	}
	defer conn.Close()

	var req models.RemineRequest
	if v := r.URL.Query().Get("force"); v == "true" {
		req.Force = true
	}

	conn.WriteJSON(map[string]any{
		"type": "start",
		"msg":  "conexión WS abierta, iniciando minado…",
	})

	res, err := h.mining.Remine(r.Context(), req, func(p service.MiningProgress) {
		conn.WriteJSON(map[string]any{
			"type":     "progress",
			"progress": p,
		})
	})
	if err != nil {
		conn.WriteJSON(map[string]any{
			"type":  "error",
			"error": err.Error(),
		})
		return
	}

	conn.WriteJSON(map[string]any{
		"type":   "result",
		"result": res,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Helper para montar rutas en main.go
func MountAdminMiningRoutes(r chi.Router, h *AdminMaintenanceHandler) {
	r.Route("/admin/mining", func(r chi.Router) {
		r.Get("/status", h.GetStatus)
		r.Get("/nodes", h.GetNodes)
		r.Post("/remine", h.PostRemine)
		r.Get("/ws", h.RemineWS)
	})
}
