package cart

import (
	"context"
	"errors"
)

// Key ключ, под которым корзина хранится целиком
const Key = "flowerCart"

var ErrNotFound = errors.New("cart storage: key not found")

// Storage описывает долговременное хранилище корзины на стороне клиента.
// Значение перезаписывается целиком при каждом изменении корзины.
type Storage interface {
	// Load возвращает сохранённое значение или ErrNotFound.
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}
