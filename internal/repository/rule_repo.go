package repository

import (
	"context"
	"time"

	"discosml/internal/db"
	"discosml/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RuleRepository struct {
	col *mongo.Collection
}

func NewRuleRepository() *RuleRepository {
	return &RuleRepository{col: db.DB().Collection("rules")}
}

// FindByKey busca un rule set ya minado con los mismos parámetros y el
// mismo hash de corpus. Si existe, el minado se puede saltear.
func (r *RuleRepository) FindByKey(ctx context.Context, params models.MiningParams, corpusHash string) (*models.RuleSetDoc, error) {
	var doc models.RuleSetDoc
	err := r.col.FindOne(ctx, bson.M{
		"params.minSupport":     params.MinSupport,
		"params.minConfidence":  params.MinConfidence,
		"params.maxItemsetSize": params.MaxItemsetSize,
		"corpusHash":            corpusHash,
	}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

// FindLatest devuelve el rule set más reciente para los parámetros dados
// (para cargar en memoria al arrancar la API sin re-minar).
func (r *RuleRepository) FindLatest(ctx context.Context, params models.MiningParams) (*models.RuleSetDoc, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	var doc models.RuleSetDoc
	err := r.col.FindOne(ctx, bson.M{
		"params.minSupport":     params.MinSupport,
		"params.minConfidence":  params.MinConfidence,
		"params.maxItemsetSize": params.MaxItemsetSize,
	}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *RuleRepository) Insert(ctx context.Context, doc *models.RuleSetDoc) error {
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}
	_, err := r.col.InsertOne(ctx, doc)
	return err
}

func (r *RuleRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}
