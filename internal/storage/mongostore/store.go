// Package mongostore реализует storage.Store поверх MongoDB.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/linemk/flower-delivery/internal/domain/models"
	"github.com/linemk/flower-delivery/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/sync/errgroup"
)

// Имена коллекций
const (
	CollectionShops    = "shops"
	CollectionProducts = "products"
	CollectionOrders   = "orders"
	CollectionCounters = "counters"
)

// код ошибки MongoDB "Document failed validation"
const codeDocumentValidation = 121

type Store struct {
	log    *slog.Logger
	client *mongo.Client
	db     *mongo.Database
}

var _ storage.Store = (*Store)(nil)

func New(log *slog.Logger, client *mongo.Client, db *mongo.Database) *Store {
	return &Store{log: log, client: client, db: db}
}

func (s *Store) Mode() storage.Mode {
	return storage.ModeProduction
}

func (s *Store) Close(ctx context.Context) error {
	if s.client == nil {
		return nil
	}
	return s.client.Disconnect(ctx)
}

func (s *Store) Stats(ctx context.Context) (models.Stats, error) {
	const op = "storage.mongostore.Stats"

	var stats models.Stats
	counts := []struct {
		collection string
		filter     bson.M
		dst        *int64
	}{
		{CollectionShops, bson.M{}, &stats.TotalShops},
		{CollectionProducts, bson.M{}, &stats.TotalProducts},
		{CollectionOrders, bson.M{}, &stats.TotalOrders},
		{CollectionShops, bson.M{"is_active": true}, &stats.ActiveShops},
		{CollectionProducts, bson.M{"is_available": true}, &stats.AvailableProducts},
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, c := range counts {
		g.Go(func() error {
			n, err := s.db.Collection(c.collection).CountDocuments(gctx, c.filter)
			if err != nil {
				return fmt.Errorf("count %s: %w", c.collection, err)
			}
			*c.dst = n
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return models.Stats{}, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}

// objectID разбирает hex-идентификатор без обращения к базе
func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, storage.ErrInvalidID
	}
	return oid, nil
}

// mapWriteError переводит ошибки записи драйвера в ошибки storage
func mapWriteError(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %v", storage.ErrDuplicateOrderNumber, err)
	}
	var we mongo.WriteException
	if errors.As(err, &we) {
		for _, e := range we.WriteErrors {
			if e.Code == codeDocumentValidation {
				return fmt.Errorf("%w: %v", storage.ErrSchemaViolation, err)
			}
		}
	}
	if mongo.IsNetworkError(err) || mongo.IsTimeout(err) {
		return fmt.Errorf("%w: %v", storage.ErrConnectivity, err)
	}
	return err
}
