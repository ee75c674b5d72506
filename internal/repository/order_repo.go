package repository

import (
	"context"
	"sort"
	"strconv"

	"discosml/internal/db"
	"discosml/internal/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{col: db.DB().Collection("orders")}
}

func (r *OrderRepository) GetByID(ctx context.Context, orderID int) (*models.OrderDoc, error) {
	var o models.OrderDoc
	err := r.col.FindOne(ctx, bson.M{"orderId": orderID}).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetByCustomer(ctx context.Context, customerID int, limit, offset int) ([]models.OrderDoc, error) {
	opts := options.Find().
		SetLimit(int64(limit)).
		SetSkip(int64(offset)).
		SetSort(bson.D{{Key: "orderDate", Value: -1}})

	cur, err := r.col.Find(ctx, bson.M{"customerId": customerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.OrderDoc
	for cur.Next(ctx) {
		var o models.OrderDoc
		if err := cur.Decode(&o); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, cur.Err()
}

func (r *OrderRepository) Insert(ctx context.Context, o *models.OrderDoc) error {
	_, err := r.col.InsertOne(ctx, o)
	return err
}

func (r *OrderRepository) GetNextOrderID(ctx context.Context) (int, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "orderId", Value: -1}})
	var o models.OrderDoc
	err := r.col.FindOne(ctx, bson.M{}, opts).Decode(&o)
	if err == mongo.ErrNoDocuments {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return o.OrderID + 1, nil
}

func (r *OrderRepository) Count(ctx context.Context) (int64, error) {
	return r.col.CountDocuments(ctx, bson.M{})
}

// TopSellers agrega las líneas de todos los pedidos y devuelve los
// títulos más vendidos por cantidad.
func (r *OrderRepository) TopSellers(ctx context.Context, limit int64) ([]models.TopAlbum, error) {
	pipeline := bson.A{
		bson.D{{Key: "$unwind", Value: "$items"}},
		bson.D{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$items.title"},
			{Key: "quantity", Value: bson.D{{Key: "$sum", Value: "$items.quantity"}}},
			{Key: "orders", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "quantity", Value: -1}}}},
		bson.D{{Key: "$limit", Value: limit}},
	}

	cur, err := r.col.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.TopAlbum
	for cur.Next(ctx) {
		var t models.TopAlbum
		if err := cur.Decode(&t); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, cur.Err()
}

// ============ EXTRACCIÓN DE CANASTAS PARA EL RECOMENDADOR ============

// BasketOptions controla cómo se arman y filtran las canastas.
type BasketOptions struct {
	MinItemsPerBasket int    // mínimo de álbumes distintos por canasta
	MinItemFrequency  int    // mínimo de canastas en que debe aparecer un álbum
	UseAlbumTitle     bool   // true: títulos como ítems; false: albumId
	StartDate         string // cota inferior inclusiva de orderDate (YYYY-MM-DD)
	EndDate           string // cota superior inclusiva
}

// GetOrderBaskets arma canastas de transacción agrupadas por pedido:
// cada canasta son los álbumes distintos comprados juntos en un pedido.
// Deduplica dentro del pedido, ordena los ítems para que el resultado sea
// reproducible, filtra por fecha, poda álbumes globalmente infrecuentes y
// descarta canastas que quedan demasiado chicas tras la poda.
func (r *OrderRepository) GetOrderBaskets(ctx context.Context, opts BasketOptions) ([][]string, error) {
	orders, err := r.findForBaskets(ctx, opts)
	if err != nil {
		return nil, err
	}

	baskets := make([][]string, 0, len(orders))
	for _, o := range orders {
		baskets = append(baskets, basketFromItems(o.Items, opts.UseAlbumTitle))
	}
	return PruneBaskets(baskets, opts.MinItemsPerBasket, opts.MinItemFrequency), nil
}

// GetCustomerBaskets agrupa por cliente: la canasta de un cliente son los
// álbumes distintos que compró en todos sus pedidos del rango. Mismo
// pipeline de poda que las canastas por pedido.
func (r *OrderRepository) GetCustomerBaskets(ctx context.Context, opts BasketOptions) ([][]string, error) {
	orders, err := r.findForBaskets(ctx, opts)
	if err != nil {
		return nil, err
	}

	byCustomer := make(map[int][]models.OrderItemDoc)
	var customerIDs []int
	for _, o := range orders {
		if _, ok := byCustomer[o.CustomerID]; !ok {
			customerIDs = append(customerIDs, o.CustomerID)
		}
		byCustomer[o.CustomerID] = append(byCustomer[o.CustomerID], o.Items...)
	}
	sort.Ints(customerIDs)

	baskets := make([][]string, 0, len(customerIDs))
	for _, id := range customerIDs {
		baskets = append(baskets, basketFromItems(byCustomer[id], opts.UseAlbumTitle))
	}
	return PruneBaskets(baskets, opts.MinItemsPerBasket, opts.MinItemFrequency), nil
}

// GetCustomerHistory devuelve los ítems distintos comprados por un
// cliente (para recomendar "sobre toda su historia de compras").
func (r *OrderRepository) GetCustomerHistory(ctx context.Context, customerID int, useTitle bool) ([]string, error) {
	orders, err := r.GetByCustomer(ctx, customerID, 10000, 0)
	if err != nil {
		return nil, err
	}

	var items []models.OrderItemDoc
	for _, o := range orders {
		items = append(items, o.Items...)
	}
	return basketFromItems(items, useTitle), nil
}

func (r *OrderRepository) findForBaskets(ctx context.Context, opts BasketOptions) ([]models.OrderDoc, error) {
	filter := bson.M{}
	if opts.StartDate != "" || opts.EndDate != "" {
		dateCond := bson.M{}
		if opts.StartDate != "" {
			dateCond["$gte"] = opts.StartDate
		}
		if opts.EndDate != "" {
			dateCond["$lte"] = opts.EndDate
		}
		filter["orderDate"] = dateCond
	}

	findOpts := options.Find().SetProjection(bson.M{
		"orderId":    1,
		"customerId": 1,
		"orderDate":  1,
		"items":      1,
	})

	cur, err := r.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []models.OrderDoc
	for cur.Next(ctx) {
		var o models.OrderDoc
		if err := cur.Decode(&o); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, cur.Err()
}

func basketFromItems(items []models.OrderItemDoc, useTitle bool) []string {
	seen := make(map[string]bool, len(items))
	var basket []string
	for _, it := range items {
		v := it.Title
		if !useTitle {
			v = strconv.Itoa(it.AlbumID)
		}
		if v == "" || seen[v] {
			continue
		}
		seen[v] = true
		basket = append(basket, v)
	}
	sort.Strings(basket)
	return basket
}

// PruneBaskets aplica los filtros de tamaño y frecuencia global:
//  1. descarta canastas con menos de minItems ítems,
//  2. quita ítems que aparecen en menos de minFreq canastas,
//  3. vuelve a descartar canastas que quedaron chicas.
//
// Exportada porque es lógica pura y se testea sin Mongo.
func PruneBaskets(baskets [][]string, minItems, minFreq int) [][]string {
	if minItems < 1 {
		minItems = 1
	}

	sized := make([][]string, 0, len(baskets))
	for _, b := range baskets {
		if len(b) >= minItems {
			sized = append(sized, b)
		}
	}

	if minFreq > 1 {
		freq := make(map[string]int)
		for _, b := range sized {
			for _, it := range b {
				freq[it]++
			}
		}

		filtered := make([][]string, 0, len(sized))
		for _, b := range sized {
			keep := make([]string, 0, len(b))
			for _, it := range b {
				if freq[it] >= minFreq {
					keep = append(keep, it)
				}
			}
			if len(keep) >= minItems {
				filtered = append(filtered, keep)
			}
		}
		return filtered
	}
	return sized
}
