package service_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sunline-energie/offer-api/internal/database"
	"github.com/sunline-energie/offer-api/internal/domain"
	"github.com/sunline-energie/offer-api/internal/repository"
	"github.com/sunline-energie/offer-api/internal/service"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func newProductService(t *testing.T) *service.ProductService {
	t.Helper()
	return service.NewProductService(repository.NewProductRepository(testDB(t)), zap.NewNop())
}

func TestProductServiceCreate(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.ProductDTO{
		Category:  string(domain.CategoryModule),
		ModelName: "Vertex S+ 440",
		Brand:     "Trina Solar",
		PriceEuro: 98.50,
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.Equal(t, domain.CategoryModule, created.Category)

	loaded, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Trina Solar", loaded.Brand)
}

func TestProductServiceCreateRejectsUnknownCategory(t *testing.T) {
	svc := newProductService(t)

	_, err := svc.Create(context.Background(), &domain.ProductDTO{
		Category:  "Windrad",
		ModelName: "W-1",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCategory)
}

func TestProductServiceCreateRejectsDuplicateModel(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &domain.ProductDTO{
		Category:  string(domain.CategoryModule),
		ModelName: "Alpha 400",
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, &domain.ProductDTO{
		Category:  string(domain.CategoryInverter),
		ModelName: "Alpha 400",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateModel)
}

func TestProductServiceUpdate(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, &domain.ProductDTO{
		Category:  string(domain.CategoryModule),
		ModelName: "Alpha 400",
	})
	require.NoError(t, err)
	second, err := svc.Create(ctx, &domain.ProductDTO{
		Category:  string(domain.CategoryModule),
		ModelName: "Beta 420",
	})
	require.NoError(t, err)

	t.Run("keeping the own model name is allowed", func(t *testing.T) {
		updated, err := svc.Update(ctx, first.ID, &domain.ProductDTO{
			Category:  string(domain.CategoryModule),
			ModelName: "Alpha 400",
			Brand:     "SolarMax",
		})
		require.NoError(t, err)
		assert.Equal(t, first.ID, updated.ID)
		assert.Equal(t, "SolarMax", updated.Brand)
	})

	t.Run("taking another product's model name is not", func(t *testing.T) {
		_, err := svc.Update(ctx, second.ID, &domain.ProductDTO{
			Category:  string(domain.CategoryModule),
			ModelName: "Alpha 400",
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateModel)
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := svc.Update(ctx, 4711, &domain.ProductDTO{
			Category:  string(domain.CategoryModule),
			ModelName: "Gamma 500",
		})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestProductServiceLookupInterface(t *testing.T) {
	svc := newProductService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.ProductDTO{
		Category:  string(domain.CategoryStorage),
		ModelName: "RESU 10H",
	})
	require.NoError(t, err)

	byID, err := svc.ByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "RESU 10H", byID.ModelName)

	byName, err := svc.ByModelName(ctx, "RESU 10H")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byName.ID)

	_, err = svc.ByID(ctx, 4711)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
