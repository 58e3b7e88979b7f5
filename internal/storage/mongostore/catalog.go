package mongostore

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/linemk/flower-delivery/internal/domain/models"
	"github.com/linemk/flower-delivery/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

func (s *Store) ListShops(ctx context.Context, filter storage.ShopFilter) ([]models.Shop, error) {
	const op = "storage.mongostore.ListShops"

	shops := make([]models.Shop, 0)
	if err := s.find(ctx, CollectionShops, shopQuery(filter), &shops); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return shops, nil
}

func (s *Store) ShopByID(ctx context.Context, id string) (*models.Shop, error) {
	const op = "storage.mongostore.ShopByID"

	var shop models.Shop
	if err := s.findByID(ctx, CollectionShops, id, &shop); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &shop, nil
}

// ListProducts возвращает storage.ErrInvalidID, если ShopID задан не в формате ObjectID
func (s *Store) ListProducts(ctx context.Context, filter storage.ProductFilter) ([]models.Product, error) {
	const op = "storage.mongostore.ListProducts"

	query, err := productQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	products := make([]models.Product, 0)
	if err := s.find(ctx, CollectionProducts, query, &products); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return products, nil
}

func (s *Store) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	const op = "storage.mongostore.ProductByID"

	var product models.Product
	if err := s.findByID(ctx, CollectionProducts, id, &product); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &product, nil
}

func (s *Store) find(ctx context.Context, collection string, query bson.M, dst any) error {
	cur, err := s.db.Collection(collection).Find(ctx, query)
	if err != nil {
		return fmt.Errorf("find %s: %w", collection, mapWriteError(err))
	}
	if err := cur.All(ctx, dst); err != nil {
		return fmt.Errorf("decode %s: %w", collection, err)
	}
	return nil
}

func (s *Store) findByID(ctx context.Context, collection, id string, dst any) error {
	oid, err := objectID(id)
	if err != nil {
		return err
	}
	err = s.db.Collection(collection).FindOne(ctx, bson.M{"_id": oid}).Decode(dst)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("find %s by id: %w", collection, mapWriteError(err))
	}
	return nil
}

func shopQuery(f storage.ShopFilter) bson.M {
	query := bson.M{}
	if f.Search != "" {
		re := containsRegex(f.Search)
		query["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"address.street": re},
			bson.M{"address.district": re},
		}
	}
	if f.District != "" {
		query["address.district"] = f.District
	}
	if f.MinRating != nil {
		query["rating"] = bson.M{"$gte": *f.MinRating}
	}
	if f.IsActive != nil {
		query["is_active"] = *f.IsActive
	}
	return query
}

func productQuery(f storage.ProductFilter) (bson.M, error) {
	query := bson.M{}
	if f.ShopID != "" {
		oid, err := objectID(f.ShopID)
		if err != nil {
			return nil, err
		}
		query["shop_id"] = oid
	}
	if f.Category != "" {
		query["category"] = f.Category
	}
	if f.Search != "" {
		re := containsRegex(f.Search)
		query["$or"] = bson.A{
			bson.M{"name": re},
			bson.M{"description": re},
		}
	}
	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		query["price"] = price
	}
	if f.IsAvailable != nil {
		query["is_available"] = *f.IsAvailable
	}
	return query, nil
}

// containsRegex - поиск подстроки без учёта регистра, спецсимволы экранируются
func containsRegex(s string) primitive.Regex {
	return primitive.Regex{Pattern: regexp.QuoteMeta(s), Options: "i"}
}
