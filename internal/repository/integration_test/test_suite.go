package integration_test

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"deliveryhub/internal/pkg/config"
	"deliveryhub/internal/pkg/postgres"
	"deliveryhub/pkg/logger/zap_adapter"
	"deliveryhub/pkg/querier"
	"deliveryhub/pkg/tx"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testDBName     = "deliveryhub"
	testDBUser     = "deliveryhub"
	testDBPassword = "deliveryhub"
)

var (
	pool     *pgxpool.Pool
	poolOnce sync.Once
)

// getPool поднимает базу один раз на процесс тестов. Если POSTGRES_HOST задан
// (Makefile подгружает .env.test), используется внешняя база, иначе testcontainers.
func getPool() *pgxpool.Pool {
	poolOnce.Do(func() {
		ctx := context.Background()

		cfg := databaseFromEnv()
		if cfg.Host == "" {
			cfg = startContainer(ctx)
		}

		zapLogger := zap_adapter.NewNop()

		connPool, err := postgres.NewConnPool(ctx, zapLogger, cfg)
		if err != nil {
			log.Fatalf("failed to connect to test database: %v", err)
		}

		if err := postgres.Migrate(ctx, zapLogger, connPool); err != nil {
			log.Fatalf("failed to migrate test database: %v", err)
		}

		pool = connPool
	})

	return pool
}

func databaseFromEnv() *config.Database {
	return &config.Database{
		Host:     os.Getenv("POSTGRES_HOST"),
		Port:     os.Getenv("POSTGRES_PORT"),
		User:     os.Getenv("POSTGRES_USER"),
		Password: os.Getenv("POSTGRES_PASSWORD"),
		DBName:   os.Getenv("POSTGRES_DB"),
		SSLMode:  os.Getenv("POSTGRES_SSLMODE"),
	}
}

func startContainer(ctx context.Context) *config.Database {
	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase(testDBName),
		tcpostgres.WithUsername(testDBUser),
		tcpostgres.WithPassword(testDBPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		log.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := container.Host(ctx)
	if err != nil {
		log.Fatalf("failed to get postgres container host: %v", err)
	}

	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		log.Fatalf("failed to get postgres container port: %v", err)
	}

	return &config.Database{
		Host:     host,
		Port:     port.Port(),
		User:     testDBUser,
		Password: testDBPassword,
		DBName:   testDBName,
		SSLMode:  "disable",
	}
}

func GetQuerier() *querier.Querier {
	return querier.New(getPool(), pgxv5.DefaultCtxGetter)
}

func GetTxManager() *tx.Manager {
	return tx.New(getPool())
}

func SetupDB(t *testing.T, setupSql string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, setupSql)

	require.NoError(t, err)
}

func TeardownDB(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := GetQuerier().Exec(ctx, `
		TRUNCATE TABLE deliveries, delivery_outbox RESTART IDENTITY CASCADE;
	`)
	require.NoError(t, err)
}
