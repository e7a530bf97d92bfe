package store

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	perrors "github.com/gocatalog/productsvc/internal/product/errors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const skipIntegrationTests = "PRODUCT_SKIP_INTEGRATION_TESTS"

// ProductStoreSuite is a test suite for the PgStore implementation.
type ProductStoreSuite struct {
	suite.Suite                             // Embedding testify suite for structured testing
	pgContainer *postgres.PostgresContainer // PostgreSQL container for integration tests
	dbPool      *pgxpool.Pool               // PostgreSQL connection pool for integration tests
	store       ProductStore                //
	logger      *slog.Logger                // Logger for the test suite
	ctx         context.Context             // Context for the test suite, used for cancellation and timeouts
}

// SetupSuite initializes the test suite by setting up a PostgreSQL container,
func (s *ProductStoreSuite) SetupSuite() {
	s.ctx = context.Background()
	var err error
	s.logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))

	dbName := "products_db"
	dbUser := "user"
	dbPassword := "password"

	// 1. Start a PostgreSQL container with the specified configuration. Wait for the container to be ready.
	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:17.5-alpine",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPassword),
		// Wait for a specific log message indicating the database service is ready.
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
		// Ensure the container is ready to accept connections on the default PostgreSQL port.
		testcontainers.WithWaitStrategy(
			wait.ForListeningPort("5432/tcp"),
		),
	)
	require.NoError(s.T(), err, "Failed to run PostgreSQL container")

	// 2. Get the connection string from the container
	connStr, err := s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get connection string from container")

	// 3. create a new pgxpool instance using the connection string
	s.dbPool, err = pgxpool.New(s.ctx, connStr)
	require.NoError(s.T(), err, "Failed to create pgxpool")

	// 3.1 Ping the database to ensure the connection is established
	for i := range 10 {
		s.logger.Info("Pinging PostgreSQL database", "attempt", i+1)
		err = s.dbPool.Ping(s.ctx)
		if err == nil {
			break
		}
		time.Sleep(time.Second * 2)
	}
	require.NoError(s.T(), err, "Failed to connect to PostgreSQL after retries")

	// 4. Database migration
	// Build path to migrations directory
	wd, _ := os.Getwd()
	migrationsPath := filepath.Join(wd, "..", "..", "..", "migrations")
	sourceURL := "file://" + migrationsPath
	// Create a new migrate instance with the source URL and connection string
	m, err := migrate.New(sourceURL, connStr)
	require.NoError(s.T(), err, "Failed to create migrate instance")
	// Apply all available migrations
	err = m.Up()
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		_, _ = m.Close()
		require.NoError(s.T(), err, "Failed to apply migrations")
	}
	s.logger.Info("Migrations applied")

	// 5. Create the store under test
	s.store = NewPgStore(s.dbPool)
}

// TearDownSuite cleans up resources after all tests in the suite have run.
func (s *ProductStoreSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.logger.Warn("Failed to terminate PostgreSQL container", "error", err)
		}
	}
}

// SetupTest prepares the database for each test by truncating the products table.
func (s *ProductStoreSuite) SetupTest() {
	_, err := s.dbPool.Exec(s.ctx, "TRUNCATE TABLE products RESTART IDENTITY CASCADE")
	require.NoError(s.T(), err, "Failed to truncate products table")
}

// TestProductStoreIntegration runs the PgStore integration tests.
func TestProductStoreIntegration(t *testing.T) {
	// Skip integration tests if the environment variable is set
	if os.Getenv(skipIntegrationTests) == "1" {
		t.Skip("Skipping integration tests based on " + skipIntegrationTests + " env var")
	}
	// Run the test suite
	suite.Run(t, new(ProductStoreSuite))
}

func (s *ProductStoreSuite) TestCreateAssignsID() {
	// when
	created, err := s.store.Create(s.ctx, "Apple iPhone 15 Pro Max", 59900, 100)

	// then
	require.NoError(s.T(), err)
	assert.Positive(s.T(), created.ID)
	assert.Equal(s.T(), "Apple iPhone 15 Pro Max", created.Name)
	assert.Equal(s.T(), int64(59900), created.Price)
	assert.Equal(s.T(), int32(100), created.Quantity)
	assert.False(s.T(), created.CreatedAt.IsZero())
}

func (s *ProductStoreSuite) TestCreateThenFindByIDRoundTrip() {
	// given
	created, err := s.store.Create(s.ctx, "Samsung Galaxy S23 Ultra", 119900, 50)
	require.NoError(s.T(), err)

	// when
	found, err := s.store.FindByID(s.ctx, created.ID)

	// then
	require.NoError(s.T(), err)
	assert.Equal(s.T(), created.ID, found.ID)
	assert.Equal(s.T(), created.Name, found.Name)
	assert.Equal(s.T(), created.Price, found.Price)
	assert.Equal(s.T(), created.Quantity, found.Quantity)
}

func (s *ProductStoreSuite) TestFindByIDNotFound() {
	_, err := s.store.FindByID(s.ctx, 424242)

	assert.ErrorIs(s.T(), err, perrors.ErrProductNotFound)
}

func (s *ProductStoreSuite) TestFindAllAndCount() {
	// given
	names := []string{"Toy", "Lamp", "Mug"}
	var lastID int64
	for _, name := range names {
		created, err := s.store.Create(s.ctx, name, 100, 1)
		require.NoError(s.T(), err)
		lastID = created.ID
	}
	require.NoError(s.T(), s.store.DeleteByID(s.ctx, lastID))

	// when
	list, err := s.store.FindAll(s.ctx)
	require.NoError(s.T(), err)
	count, errCount := s.store.Count(s.ctx)
	require.NoError(s.T(), errCount)

	// then: N creates and one delete leave N-1 records
	assert.Len(s.T(), list, len(names)-1)
	assert.Equal(s.T(), int64(len(names)-1), count)
}

func (s *ProductStoreSuite) TestUpdateOverwritesMutableFields() {
	// given
	created, err := s.store.Create(s.ctx, "Toy", 199, 3)
	require.NoError(s.T(), err)

	// when
	updated, err := s.store.Update(s.ctx, created.ID, "Lamp", 500, 10)

	// then
	require.NoError(s.T(), err)
	assert.Equal(s.T(), created.ID, updated.ID)
	assert.Equal(s.T(), "Lamp", updated.Name)
	assert.Equal(s.T(), int64(500), updated.Price)
	assert.Equal(s.T(), int32(10), updated.Quantity)
}

func (s *ProductStoreSuite) TestUpdateNotFound() {
	_, err := s.store.Update(s.ctx, 424242, "Lamp", 500, 10)

	assert.ErrorIs(s.T(), err, perrors.ErrProductNotFound)
}

func (s *ProductStoreSuite) TestDeleteByID() {
	// given
	created, err := s.store.Create(s.ctx, "Toy", 199, 3)
	require.NoError(s.T(), err)

	// when
	err = s.store.DeleteByID(s.ctx, created.ID)

	// then
	require.NoError(s.T(), err)
	_, err = s.store.FindByID(s.ctx, created.ID)
	assert.ErrorIs(s.T(), err, perrors.ErrProductNotFound)

	err = s.store.DeleteByID(s.ctx, created.ID)
	assert.ErrorIs(s.T(), err, perrors.ErrProductNotFound)
}
