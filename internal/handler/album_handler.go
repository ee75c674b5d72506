package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"discosml/internal/service"

	"github.com/go-chi/chi/v5"
)

type AlbumHandler struct {
	svc *service.AlbumService
}

func NewAlbumHandler(s *service.AlbumService) *AlbumHandler {
	return &AlbumHandler{svc: s}
}

// @Summary Obtener álbum por id
// @Tags albums
// @Produce json
// @Param id path int true "albumId"
// @Success 200 {object} models.AlbumDoc
// @Failure 404 {string} string "no encontrado"
// @Router /albums/{id} [get]
func (h *AlbumHandler) GetAlbum(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	albumID, _ := strconv.Atoi(chi.URLParam(r, "id"))

	a, err := h.svc.GetByID(r.Context(), albumID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	if a == nil {
		http.Error(w, "album not found", http.StatusNotFound)
		return
	}
	_ = json.NewEncoder(w).Encode(a)
}

// @Summary Buscar álbumes
// @Tags albums
// @Produce json
// @Param q query string false "título o artista"
// @Param genre query string false "género"
// @Param yearFrom query int false "año desde"
// @Param yearTo query int false "año hasta"
// @Success 200 {array} models.AlbumDoc
// @Router /albums/search [get]
func (h *AlbumHandler) Search(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	q := r.URL.Query().Get("q")
	genre := r.URL.Query().Get("genre")
	yearFrom, _ := strconv.Atoi(r.URL.Query().Get("yearFrom"))
	yearTo, _ := strconv.Atoi(r.URL.Query().Get("yearTo"))
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	albums, err := h.svc.Search(r.Context(), q, genre, yearFrom, yearTo, limit, offset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(albums)
}

// @Summary Álbumes más vendidos
// @Tags albums
// @Produce json
// @Param limit query int false "cantidad (máx 100)"
// @Success 200 {array} models.TopAlbum
// @Router /albums/top [get]
func (h *AlbumHandler) Top(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	top, err := h.svc.TopSellers(r.Context(), limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(top)
}

type createAlbumRequest struct {
	Title  string  `json:"title"`
	Artist string  `json:"artist"`
	Genre  string  `json:"genre"`
	Year   int     `json:"year"`
	Price  float64 `json:"price"`
	Stock  int     `json:"stock"`
}

// @Summary Crear álbum
// @Tags albums
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param body body createAlbumRequest true "álbum"
// @Success 201 {object} models.AlbumDoc
// @Failure 400 {string} string "body inválido"
// @Router /admin/albums [post]
func (h *AlbumHandler) CreateAlbum(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	var req createAlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	a, err := h.svc.Create(r.Context(), service.CreateAlbumData{
		Title:  req.Title,
		Artist: req.Artist,
		Genre:  req.Genre,
		Year:   req.Year,
		Price:  req.Price,
		Stock:  req.Stock,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(a)
}

type updateAlbumRequest struct {
	Title  *string  `json:"title"`
	Artist *string  `json:"artist"`
	Genre  *string  `json:"genre"`
	Year   *int     `json:"year"`
	Price  *float64 `json:"price"`
	Stock  *int     `json:"stock"`
}

// @Summary Actualizar álbum
// @Tags albums
// @Security BearerAuth
// @Accept json
// @Param id path int true "albumId"
// @Param body body updateAlbumRequest true "campos a actualizar"
// @Success 200 {object} map[string]any
// @Router /admin/albums/{id} [put]
func (h *AlbumHandler) UpdateAlbum(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	albumID, _ := strconv.Atoi(chi.URLParam(r, "id"))

	var req updateAlbumRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	err := h.svc.Update(r.Context(), albumID, service.UpdateAlbumData{
		Title:  req.Title,
		Artist: req.Artist,
		Genre:  req.Genre,
		Year:   req.Year,
		Price:  req.Price,
		Stock:  req.Stock,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"updated": true})
}
