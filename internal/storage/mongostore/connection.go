package mongostore

import (
	"context"
	"fmt"
	"time"

	"github.com/linemk/flower-delivery/internal/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Connect подключается к MongoDB и проверяет соединение ping-запросом.
// timeout ограничивает выбор сервера и ping; ошибки оборачивают
// storage.ErrConnectivity.
func Connect(ctx context.Context, uri, database string, timeout time.Duration) (*mongo.Client, *mongo.Database, error) {
	const op = "storage.mongostore.Connect"

	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(2 * timeout).
		SetServerSelectionTimeout(timeout).
		SetMaxPoolSize(100)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: connect: %w: %v", op, storage.ErrConnectivity, err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("%s: ping: %w: %v", op, storage.ErrConnectivity, err)
	}

	return client, client.Database(database), nil
}
