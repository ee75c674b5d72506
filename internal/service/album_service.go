package service

import (
	"context"
	"fmt"
	"time"

	"discosml/internal/models"
	"discosml/internal/repository"
)

type AlbumService struct {
	albums *repository.AlbumRepository
	orders *repository.OrderRepository
}

func NewAlbumService(albums *repository.AlbumRepository, orders *repository.OrderRepository) *AlbumService {
	return &AlbumService{albums: albums, orders: orders}
}

func (s *AlbumService) GetByID(ctx context.Context, albumID int) (*models.AlbumDoc, error) {
	return s.albums.GetByID(ctx, albumID)
}

func (s *AlbumService) Search(ctx context.Context, q, genre string, yearFrom, yearTo, limit, offset int) ([]models.AlbumDoc, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.albums.Search(ctx, q, genre, yearFrom, yearTo, limit, offset)
}

// TopSellers: ranking de títulos más vendidos agregado sobre los pedidos.
func (s *AlbumService) TopSellers(ctx context.Context, limit int) ([]models.TopAlbum, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.orders.TopSellers(ctx, int64(limit))
}

type CreateAlbumData struct {
	Title  string
	Artist string
	Genre  string
	Year   int
	Price  float64
	Stock  int
}

func (s *AlbumService) Create(ctx context.Context, data CreateAlbumData) (*models.AlbumDoc, error) {
	if data.Title == "" || data.Artist == "" {
		return nil, fmt.Errorf("title y artist son obligatorios")
	}
	if data.Price < 0 {
		return nil, fmt.Errorf("price no puede ser negativo")
	}

	existing, err := s.albums.GetByTitle(ctx, data.Title)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("ya existe un álbum con título %q", data.Title)
	}

	nextID, err := s.albums.GetNextAlbumID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC().Format(time.RFC3339)
	a := &models.AlbumDoc{
		AlbumID:   nextID,
		Title:     data.Title,
		Artist:    data.Artist,
		Genre:     data.Genre,
		Year:      data.Year,
		Price:     data.Price,
		Stock:     data.Stock,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.albums.Insert(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

type UpdateAlbumData struct {
	Title  *string
	Artist *string
	Genre  *string
	Year   *int
	Price  *float64
	Stock  *int
}

func (s *AlbumService) Update(ctx context.Context, albumID int, data UpdateAlbumData) error {
	a, err := s.albums.GetByID(ctx, albumID)
	if err != nil {
		return err
	}
	if a == nil {
		return fmt.Errorf("album %d no encontrado", albumID)
	}

	update := map[string]any{}
	if data.Title != nil {
		if *data.Title == "" {
			return fmt.Errorf("title cannot be empty")
		}
		update["title"] = *data.Title
	}
	if data.Artist != nil {
		update["artist"] = *data.Artist
	}
	if data.Genre != nil {
		update["genre"] = *data.Genre
	}
	if data.Year != nil {
		update["year"] = *data.Year
	}
	if data.Price != nil {
		if *data.Price < 0 {
			return fmt.Errorf("price no puede ser negativo")
		}
		update["price"] = *data.Price
	}
	if data.Stock != nil {
		update["stock"] = *data.Stock
	}

	if len(update) == 0 {
		return fmt.Errorf("no fields to update")
	}
	update["updatedAt"] = time.Now().UTC().Format(time.RFC3339)

	return s.albums.UpdateByID(ctx, albumID, update)
}
