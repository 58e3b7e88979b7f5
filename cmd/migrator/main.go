package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/mongodb"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"
	"github.com/linemk/flower-delivery/internal/config"
	"github.com/linemk/flower-delivery/internal/storage/mongostore"
	"github.com/linemk/flower-delivery/internal/storage/postgres"
	"go.mongodb.org/mongo-driver/bson"
)

const migrationTable = "schema_migrations"

// buildMongoMigrateURL добавляет к URI имя базы и коллекцию истории миграций
func buildMongoMigrateURL(uri, database string) (string, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return "", fmt.Errorf("parse mongo uri: %w", err)
	}
	u.Path = "/" + database
	q := u.Query()
	q.Set("x-migrations-collection", migrationTable)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// buildPostgresMigrateURL добавляет к DSN таблицу истории миграций
func buildPostgresMigrateURL(dsn string) string {
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "x-migrations-table=" + migrationTable
}

func main() {
	var configPath, driver, migrationsPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.StringVar(&driver, "driver", "", "database driver: mongo or postgres (default from config)")
	flag.StringVar(&migrationsPath, "migrations-path", "", "path to migration files (default <migrations.path>/<driver>)")
	flag.Parse()

	_ = godotenv.Load()

	if configPath == "" {
		configPath = os.Getenv("CONFIG_PATH")
	}
	if configPath == "" {
		log.Fatal("CONFIG_PATH not exists")
	}
	cfg := config.MustLoadByPath(configPath)

	if driver == "" {
		driver = cfg.Storage.Driver
	}
	if migrationsPath == "" {
		migrationsPath = filepath.Join(cfg.Migrations.Path, driver)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	switch driver {
	case config.DriverMongo:
		migrateMongo(ctx, cfg, migrationsPath)
	case config.DriverPostgres:
		migratePostgres(ctx, cfg, migrationsPath)
	default:
		log.Fatalf("unsupported driver %q: expected %s or %s", driver, config.DriverMongo, config.DriverPostgres)
	}
}

func migrateMongo(ctx context.Context, cfg *config.Config, migrationsPath string) {
	target, err := buildMongoMigrateURL(cfg.Mongo.URI, cfg.Mongo.Database)
	if err != nil {
		log.Fatalf("invalid mongo uri: %v", err)
	}
	apply(migrationsPath, target)

	client, db, err := mongostore.Connect(ctx, cfg.Mongo.URI, cfg.Mongo.Database, cfg.Storage.ConnectTimeout)
	if err != nil {
		log.Fatalf("failed to connect to mongo: %v", err)
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	names, err := db.ListCollectionNames(ctx, bson.D{})
	if err != nil {
		log.Fatalf("failed to list collections: %v", err)
	}
	fmt.Println("Current collections in the database:")
	for _, name := range names {
		fmt.Println(" -", name)
	}
}

func migratePostgres(ctx context.Context, cfg *config.Config, migrationsPath string) {
	if cfg.Database.Password == "" {
		log.Fatal("DB_PASSWORD environment variable is required")
	}
	apply(migrationsPath, buildPostgresMigrateURL(cfg.Database.DSN()))

	db, err := postgres.Open(ctx, cfg.Database.DSN(), cfg.Storage.ConnectTimeout)
	if err != nil {
		log.Fatalf("failed to open database: %v", err)
	}
	defer db.Close()

	printTables(ctx, db)
}

func apply(migrationsPath, target string) {
	// Создаем объект мигратора
	m, err := migrate.New("file://"+migrationsPath, target)
	if err != nil {
		log.Fatalf("failed to create migrate instance: %v", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil {
		if errors.Is(err, migrate.ErrNoChange) {
			fmt.Println("No migrations to apply")
			return
		}
		log.Fatalf("migration failed: %v", err)
	}
	log.Println("Migrations applied successfully")
}

func printTables(ctx context.Context, db *sql.DB) {
	rows, err := db.QueryContext(ctx, `
		SELECT table_name
		FROM information_schema.tables
		WHERE table_schema = 'public'
		ORDER BY table_name
	`)
	if err != nil {
		log.Fatalf("failed to query tables: %v", err)
	}
	defer rows.Close()

	fmt.Println("Current tables in the database:")
	for rows.Next() {
		var tableName string
		if err := rows.Scan(&tableName); err != nil {
			log.Fatalf("failed to scan row: %v", err)
		}
		fmt.Println(" -", tableName)
	}
	if err := rows.Err(); err != nil {
		log.Fatalf("error reading rows: %v", err)
	}
}
