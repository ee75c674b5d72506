package repository

import (
	"context"

	"discosml/internal/db"
	"discosml/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AlbumRepository struct {
	col *mongo.Collection
}

func NewAlbumRepository() *AlbumRepository {
	return &AlbumRepository{col: db.DB().Collection("albums")}
}

func (r *AlbumRepository) GetByID(ctx context.Context, albumID int) (*models.AlbumDoc, error) {
	var a models.AlbumDoc
	err := r.col.FindOne(ctx, bson.M{"albumId": albumID}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AlbumRepository) GetByTitle(ctx context.Context, title string) (*models.AlbumDoc, error) {
	var a models.AlbumDoc
	err := r.col.FindOne(ctx, bson.M{"title": title}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *AlbumRepository) Search(
	ctx context.Context,
	q string,
	genre string,
	yearFrom, yearTo int,
	limit, offset int,
) ([]models.AlbumDoc, error) {

	filter := bson.M{}

	if q != "" {
		// busca en título o artista
		filter["$or"] = bson.A{
			bson.M{"title": bson.M{"$regex": q, "$options": "i"}},
			bson.M{"artist": bson.M{"$regex": q, "$options": "i"}},
		}
	}
	if genre != "" {
		filter["genre"] = genre
	}
	if yearFrom > 0 || yearTo > 0 {
		yearCond := bson.M{}
		if yearFrom > 0 {
			yearCond["$gte"] = yearFrom
		}
		if yearTo > 0 {
			yearCond["$lte"] = yearTo
		}
		filter["year"] = yearCond
	}

	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(int64(offset)).
		SetSort(bson.D{{Key: "albumId", Value: 1}})

	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.AlbumDoc
	for cur.Next(ctx) {
		var a models.AlbumDoc
		if err := cur.Decode(&a); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, cur.Err()
}

func (r *AlbumRepository) GetNextAlbumID(ctx context.Context) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "albumId", Value: -1}})
	var a models.AlbumDoc
	err := r.col.FindOne(ctx, bson.M{}, opts).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return a.AlbumID + 1, nil
}

func (r *AlbumRepository) Insert(ctx context.Context, a *models.AlbumDoc) error {
	_, err := r.col.InsertOne(ctx, a)
	return err
}

// UpdateByID aplica un $set parcial sobre el álbum.
func (r *AlbumRepository) UpdateByID(ctx context.Context, albumID int, update bson.M) error {
	res, err := r.col.UpdateOne(ctx,
		bson.M{"albumId": albumID},
		bson.M{"$set": update},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *AlbumRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
