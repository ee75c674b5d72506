package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	_ "discosml/docs" // swagger docs

	"discosml/internal/cache"
	"discosml/internal/config"
	"discosml/internal/db"
	"discosml/internal/handler"
	"discosml/internal/recommender"
	"discosml/internal/repository"
	"discosml/internal/service"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

// @title DiscosML Vinyl Recommender API
// @version 1.0
// @description API de recomendaciones por reglas de asociación (Apriori, Mongo, Redis)
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()

	// Mongo y Redis
	db.InitMongo(cfg)
	cache.InitRedis(cfg)

	// repos
	userRepo := repository.NewUserRepository()
	albumRepo := repository.NewAlbumRepository()
	orderRepo := repository.NewOrderRepository()
	ruleRepo := repository.NewRuleRepository()
	recRepo := repository.NewRecommendationRepository()

	// ============================
	// Leer direcciones de nodos ML
	// ============================
	var mlNodes []string
	if env := os.Getenv("ML_NODE_ADDRS"); env != "" {
		for _, v := range strings.Split(env, ",") {
			v = strings.TrimSpace(v)
			if v != "" {
				mlNodes = append(mlNodes, v)
			}
		}
	}
	if len(mlNodes) == 0 {
		log.Println("[main] sin nodos ML configurados, el minado corre local")
	}

	// recomendador compartido entre servicios
	rec, err := recommender.New(recommender.Config{
		MinSupport:     cfg.MinSupport,
		MinConfidence:  cfg.MinConfidence,
		MaxItemsetSize: cfg.MaxItemsetSize,
	}, nil)
	if err != nil {
		log.Fatalf("[main] configuración del recomendador inválida: %v", err)
	}

	// services
	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret)
	albumSvc := service.NewAlbumService(albumRepo, orderRepo)
	miningSvc := service.NewMiningService(orderRepo, ruleRepo, rec, mlNodes)
	recSvc := service.NewRecommendService(rec, orderRepo, recRepo)
	adminMaintSvc := service.NewAdminMaintenanceService(orderRepo, albumRepo, ruleRepo, rec, mlNodes)

	// cargar el último rule set persistido (si existe) en vez de re-minar
	{
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if err := miningSvc.LoadLatest(ctx); err != nil {
			log.Printf("[main] no se pudo cargar el rule set persistido: %v", err)
		}
		cancel()
	}

	// handlers
	authH := handler.NewAuthHandler(authSvc)
	albumH := handler.NewAlbumHandler(albumSvc)
	recH := handler.NewRecommendHandler(recSvc)
	adminMaintH := handler.NewAdminMaintenanceHandler(adminMaintSvc, miningSvc)

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// =============
	// Rutas públicas
	// =============
	r.Get("/health", handler.Health)

	r.Post("/auth/register", authH.Register)
	r.Post("/auth/login", authH.Login)

	// Catálogo (público)
	r.Get("/albums/search", albumH.Search)
	r.Get("/albums/top", albumH.Top)
	r.Get("/albums/{id}", albumH.GetAlbum)

	// Recomendaciones (públicas: el carrito del frontend no siempre tiene sesión)
	r.Get("/recommendations/item", recH.GetForItem)
	r.Post("/recommendations/basket", recH.PostForBasket)

	// ===========================
	// Rutas protegidas con JWT
	// ===========================
	authMw := handler.JWTAuth(cfg.JWTSecret)

	r.Group(func(r chi.Router) {
		r.Use(authMw)

		// ---- Endpoints /me (USER normal) ----
		r.Route("/me", func(r chi.Router) {
			r.Get("/recommendations", recH.GetMyRecommendations)
			r.Get("/recommendations/history", recH.GetMyHistory)
		})

		// ---- Endpoints solo ADMIN ----
		r.Group(func(r chi.Router) {
			r.Use(handler.AdminOnly())

			// gestión de usuarios
			r.Get("/users", authH.ListUsers)
			r.Route("/users/{id}", func(r chi.Router) {
				r.Get("/", authH.GetUserByID)
				r.Put("/update", authH.UpdateUser)
				r.Get("/recommendations", recH.GetRecommendations)
			})

			// gestión de catálogo
			r.Post("/admin/albums", albumH.CreateAlbum)
			r.Put("/admin/albums/{id}", albumH.UpdateAlbum)

			// rule set completo
			r.Get("/admin/rules", recH.GetRules)

			// --- mantenimiento del minado ---
			handler.MountAdminMiningRoutes(r, adminMaintH)
		})
	})

	// Swagger UI
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log.Printf("HTTP escuchando en :%s", cfg.HTTPPort)
	log.Fatal(http.ListenAndServe(":"+cfg.HTTPPort, r))
}
