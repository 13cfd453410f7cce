package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/kusina/canteen-api/internal/core/domain"
	"github.com/kusina/canteen-api/internal/core/ports"
)

const collectionOrders = "orders"

type OrderRepository struct {
	col *mongo.Collection
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{col: db.Collection(collectionOrders)}
}

type mongoOrder struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	UserID       string             `bson:"user_id"`
	MenuID       string             `bson:"menu_id"`
	Quantity     int                `bson:"quantity"`
	Total        string             `bson:"total"`
	Status       string             `bson:"status"`
	CreatedAt    time.Time          `bson:"created_at"`
	SettlementID string             `bson:"settlement_id,omitempty"`
	SettledAt    *time.Time         `bson:"settled_at,omitempty"`
}

func (o mongoOrder) toDomain() (*domain.Order, error) {
	total, err := decimal.NewFromString(o.Total)
	if err != nil {
		return nil, fmt.Errorf("order %s: bad stored total %q: %w", o.ID.Hex(), o.Total, err)
	}
	return &domain.Order{
		ID:        o.ID.Hex(),
		UserID:    o.UserID,
		MenuID:    o.MenuID,
		Quantity:  o.Quantity,
		Total:     total,
		Status:    domain.OrderStatus(o.Status),
		CreatedAt: o.CreatedAt.UTC(),
	}, nil
}

func (r *OrderRepository) Insert(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoOrder{
		UserID:    order.UserID,
		MenuID:    order.MenuID,
		Quantity:  order.Quantity,
		Total:     order.Total.String(),
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	created := *order
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

// FindByID scopes the lookup to the owner when userID is non-empty; an order
// belonging to someone else reads as not found.
func (r *OrderRepository) FindByID(ctx context.Context, id, userID string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	filter := bson.M{"_id": oid}
	if userID != "" {
		filter["user_id"] = userID
	}

	var doc mongoOrder
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return doc.toDomain()
}

func (r *OrderRepository) List(ctx context.Context, filter ports.OrderListFilter) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.UserID != "" {
		query["user_id"] = filter.UserID
	}
	if filter.Status != "" {
		query["status"] = string(filter.Status)
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cur.Close(ctx)

	return decodeOrders(ctx, cur)
}

// UpdatePendingQuantity rewrites quantity and total on a pending order owned
// by userID. The guard rides in the filter so a concurrent settlement cannot
// race the edit.
func (r *OrderRepository) UpdatePendingQuantity(ctx context.Context, id, userID string, quantity int, total decimal.Decimal) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	filter := bson.M{
		"_id":     oid,
		"user_id": userID,
		"status":  string(domain.StatusPending),
	}
	update := bson.M{"$set": bson.M{
		"quantity": quantity,
		"total":    total.String(),
	}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc mongoOrder
	err = r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		return doc.toDomain()
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("update order: %w", err)
	}
	return nil, r.disambiguate(ctx, oid, userID, domain.ErrOrderNotPending)
}

// DeletePending removes a pending order owned by userID.
func (r *OrderRepository) DeletePending(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrOrderNotFound
	}

	filter := bson.M{
		"_id":     oid,
		"user_id": userID,
		"status":  string(domain.StatusPending),
	}
	res, err := r.col.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	if res.DeletedCount == 0 {
		return r.disambiguate(ctx, oid, userID, domain.ErrOrderNotPending)
	}
	return nil
}

// SettlePending flips every pending order of userID created at or before the
// cutoff to paid, in a single server-side update. The batch is stamped with a
// settlement id so the exact set of settled orders can be read back.
func (r *OrderRepository) SettlePending(ctx context.Context, userID string, before time.Time) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	batchID := primitive.NewObjectID().Hex()
	now := time.Now().UTC()

	filter := bson.M{
		"user_id":    userID,
		"status":     string(domain.StatusPending),
		"created_at": bson.M{"$lte": before},
	}
	update := bson.M{"$set": bson.M{
		"status":        string(domain.StatusPaid),
		"settlement_id": batchID,
		"settled_at":    now,
	}}

	res, err := r.col.UpdateMany(ctx, filter, update)
	if err != nil {
		return nil, fmt.Errorf("settle orders: %w", err)
	}
	if res.ModifiedCount == 0 {
		return nil, nil
	}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"settlement_id": batchID}, opts)
	if err != nil {
		return nil, fmt.Errorf("read settled orders: %w", err)
	}
	defer cur.Close(ctx)

	return decodeOrders(ctx, cur)
}

// MarkDone moves a paid order to done. Any owner may be targeted; the caller
// is expected to have checked the admin role already.
func (r *OrderRepository) MarkDone(ctx context.Context, id string) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrOrderNotFound
	}

	filter := bson.M{"_id": oid, "status": string(domain.StatusPaid)}
	update := bson.M{"$set": bson.M{"status": string(domain.StatusDone)}}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc mongoOrder
	err = r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == nil {
		return doc.toDomain()
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("mark order done: %w", err)
	}

	current, ferr := r.FindByID(ctx, id, "")
	if ferr != nil {
		return nil, ferr
	}
	return nil, fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, current.Status, domain.StatusDone)
}

// disambiguate tells a missing order apart from a guard failure after a
// guarded write matched nothing.
func (r *OrderRepository) disambiguate(ctx context.Context, oid primitive.ObjectID, userID string, guardErr error) error {
	var doc mongoOrder
	err := r.col.FindOne(ctx, bson.M{"_id": oid, "user_id": userID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.ErrOrderNotFound
		}
		return fmt.Errorf("find order: %w", err)
	}
	return guardErr
}

// EnsureIndexes creates the query indexes backing order listings and
// settlement sweeps.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "settlement_id", Value: 1}}, Options: options.Index().SetSparse(true)},
	})
	return err
}

func decodeOrders(ctx context.Context, cur *mongo.Cursor) ([]*domain.Order, error) {
	var orders []*domain.Order
	for cur.Next(ctx) {
		var doc mongoOrder
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode order: %w", err)
		}
		order, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	return orders, cur.Err()
}
