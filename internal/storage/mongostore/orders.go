package mongostore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/linemk/flower-delivery/internal/domain/models"
	"github.com/linemk/flower-delivery/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// orderDocument - заказ в том виде, в котором он пишется в коллекцию orders.
// Ссылки позиций хранятся как ObjectID, если это валидный hex, иначе строкой.
type orderDocument struct {
	ID                  primitive.ObjectID     `bson:"_id,omitempty"`
	OrderNumber         string                 `bson:"order_number"`
	Customer            models.Customer        `bson:"customer"`
	DeliveryAddress     models.DeliveryAddress `bson:"delivery_address"`
	Items               []orderItemDocument    `bson:"items"`
	TotalAmount         float64                `bson:"total_amount"`
	Currency            string                 `bson:"currency"`
	Status              models.OrderStatus     `bson:"status"`
	DeliveryDate        time.Time              `bson:"delivery_date"`
	SpecialInstructions string                 `bson:"special_instructions,omitempty"`
	CreatedAt           time.Time              `bson:"created_at"`
	UpdatedAt           time.Time              `bson:"updated_at"`
}

type orderItemDocument struct {
	ProductID   any     `bson:"product_id"`
	ShopID      any     `bson:"shop_id"`
	ProductName string  `bson:"product_name"`
	Price       float64 `bson:"price"`
	Quantity    int     `bson:"quantity"`
	Subtotal    float64 `bson:"subtotal"`
}

func (s *Store) InsertOrder(ctx context.Context, order *models.Order) (*models.Order, error) {
	const op = "storage.mongostore.InsertOrder"

	doc := s.toDocument(order)
	res, err := s.db.Collection(CollectionOrders).InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, mapWriteError(err))
	}

	oid, ok := res.InsertedID.(primitive.ObjectID)
	if !ok {
		return nil, fmt.Errorf("%s: unexpected inserted id type %T", op, res.InsertedID)
	}

	// возвращаем документ так, как он сохранён
	var created models.Order
	err = s.db.Collection(CollectionOrders).FindOne(ctx, bson.M{"_id": oid}).Decode(&created)
	if err != nil {
		return nil, fmt.Errorf("%s: read back: %w", op, err)
	}
	return &created, nil
}

func (s *Store) OrderByID(ctx context.Context, id string) (*models.Order, error) {
	const op = "storage.mongostore.OrderByID"

	var order models.Order
	if err := s.findByID(ctx, CollectionOrders, id, &order); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &order, nil
}

func (s *Store) ListOrders(ctx context.Context, page storage.Page) ([]models.Order, int64, error) {
	const op = "storage.mongostore.ListOrders"

	page = page.Normalize()
	coll := s.db.Collection(CollectionOrders)

	total, err := coll.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("%s: count: %w", op, err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}).
		SetSkip(int64(page.Offset())).
		SetLimit(int64(page.Limit))

	cur, err := coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: find: %w", op, err)
	}
	orders := make([]models.Order, 0, page.Limit)
	if err := cur.All(ctx, &orders); err != nil {
		return nil, 0, fmt.Errorf("%s: decode: %w", op, err)
	}
	return orders, total, nil
}

// NextOrderSequence увеличивает счётчик года в коллекции counters одной
// атомарной операцией findOneAndUpdate.
func (s *Store) NextOrderSequence(ctx context.Context, year int) (int64, error) {
	const op = "storage.mongostore.NextOrderSequence"

	filter := bson.M{"_id": counterID(year)}
	update := bson.M{"$inc": bson.M{"seq": int64(1)}}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := s.db.Collection(CollectionCounters).FindOneAndUpdate(ctx, filter, update, opts).Decode(&counter)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, fmt.Errorf("%s: counter %s not returned", op, counterID(year))
		}
		return 0, fmt.Errorf("%s: %w", op, mapWriteError(err))
	}
	return counter.Seq, nil
}

func counterID(year int) string {
	return fmt.Sprintf("orders-%d", year)
}

func (s *Store) toDocument(order *models.Order) orderDocument {
	items := make([]orderItemDocument, 0, len(order.Items))
	for i, item := range order.Items {
		items = append(items, orderItemDocument{
			ProductID:   s.itemRef(order.OrderNumber, i, "product_id", item.ProductID),
			ShopID:      s.itemRef(order.OrderNumber, i, "shop_id", item.ShopID),
			ProductName: item.ProductName,
			Price:       item.Price,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal,
		})
	}

	return orderDocument{
		OrderNumber:         order.OrderNumber,
		Customer:            order.Customer,
		DeliveryAddress:     order.DeliveryAddress,
		Items:               items,
		TotalAmount:         order.TotalAmount,
		Currency:            order.Currency,
		Status:              order.Status,
		DeliveryDate:        order.DeliveryDate,
		SpecialInstructions: order.SpecialInstructions,
		CreatedAt:           order.CreatedAt,
		UpdatedAt:           order.UpdatedAt,
	}
}

// itemRef приводит ссылку позиции к ObjectID. Невалидная ссылка не
// отклоняется, а сохраняется строкой как есть.
func (s *Store) itemRef(orderNumber string, index int, field, ref string) any {
	if oid, err := primitive.ObjectIDFromHex(ref); err == nil {
		return oid
	}
	s.log.Warn("storing opaque item reference",
		slog.String("op", "storage.mongostore.itemRef"),
		slog.String("order_number", orderNumber),
		slog.Int("item", index),
		slog.String("field", field),
		slog.String("ref", ref),
	)
	return ref
}
