package repositories_test

import (
	"context"
	"os"
	"testing"
	"time"

	"sweetshop/internal/models"
	"sweetshop/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type repoSet struct {
	products     repositories.ProductRepository
	orders       repositories.OrderRepository
	transactions repositories.TransactionRepository
	users        repositories.UserRepository
}

func memoryRepos(t *testing.T) repoSet {
	t.Helper()
	return repoSet{
		products:     repositories.NewInMemoryProductRepository(),
		orders:       repositories.NewInMemoryOrderRepository(),
		transactions: repositories.NewInMemoryTransactionRepository(),
		users:        repositories.NewInMemoryUserRepository(),
	}
}

func sqliteRepos(t *testing.T) repoSet {
	t.Helper()
	dsn := "file:" + uuid.New().String() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Product{}, &models.Order{}, &models.Transaction{}, &models.User{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return repoSet{
		products:     repositories.NewGORMProductRepository(db),
		orders:       repositories.NewGORMOrderRepository(db),
		transactions: repositories.NewGORMTransactionRepository(db),
		users:        repositories.NewGORMUserRepository(db),
	}
}

func mongoRepos(t *testing.T) repoSet {
	t.Helper()
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("MONGO_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	require.NoError(t, err)
	require.NoError(t, client.Ping(ctx, nil))

	db := client.Database("sweetshop_test_" + uuid.New().String()[:8])
	t.Cleanup(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		db.Drop(ctx)
		client.Disconnect(ctx)
	})
	users := repositories.NewMongoUserRepository(db)
	require.NoError(t, users.EnsureIndexes(ctx))
	return repoSet{
		products:     repositories.NewMongoProductRepository(db),
		orders:       repositories.NewMongoOrderRepository(db),
		transactions: repositories.NewMongoTransactionRepository(db),
		users:        users,
	}
}

func forEachBackend(t *testing.T, fn func(t *testing.T, repos repoSet)) {
	backends := map[string]func(*testing.T) repoSet{
		"memory": memoryRepos,
		"sqlite": sqliteRepos,
		"mongo":  mongoRepos,
	}
	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			fn(t, open(t))
		})
	}
}

func TestProductRepository_CRUD(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos repoSet) {
		ctx := context.Background()

		croissant := models.NewProduct("", models.ProductDraft{
			Name:      "Croissant",
			Price:     decimal.RequireFromString("3.50"),
			Image:     "https://img.example/croissant.jpg",
			Available: true,
			Category:  "Pastries",
		})
		require.NoError(t, repos.products.Create(ctx, &croissant))
		assert.NotEmpty(t, croissant.ID)
		assert.False(t, croissant.CreatedAt.IsZero())

		time.Sleep(5 * time.Millisecond)
		baguette := models.NewProduct("", models.ProductDraft{
			Name:      "Baguette",
			Price:     decimal.RequireFromString("2.25"),
			Image:     "https://img.example/baguette.jpg",
			Available: false,
			Category:  "Bread",
		})
		require.NoError(t, repos.products.Create(ctx, &baguette))

		all, err := repos.products.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.Equal(t, "Baguette", all[0].Name, "newest first")
		assert.Equal(t, "Croissant", all[1].Name)

		got, err := repos.products.GetByID(ctx, croissant.ID)
		require.NoError(t, err)
		assert.True(t, got.Price.Equal(decimal.RequireFromString("3.5")))
		assert.True(t, got.Available)

		got.Name = "Butter Croissant"
		got.Price = decimal.RequireFromString("4")
		require.NoError(t, repos.products.Update(ctx, got))

		got, err = repos.products.GetByID(ctx, croissant.ID)
		require.NoError(t, err)
		assert.Equal(t, "Butter Croissant", got.Name)
		assert.Equal(t, "4", got.Price.String())

		missing := models.NewProduct(uuid.New().String(), models.ProductDraft{Name: "Ghost", Image: "x"})
		assert.ErrorIs(t, repos.products.Update(ctx, &missing), repositories.ErrNotFound)

		require.NoError(t, repos.products.Delete(ctx, croissant.ID))
		_, err = repos.products.GetByID(ctx, croissant.ID)
		assert.ErrorIs(t, err, repositories.ErrNotFound)
		assert.ErrorIs(t, repos.products.Delete(ctx, croissant.ID), repositories.ErrNotFound)

		all, err = repos.products.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestOrderRepository_CreateAndUpdateStatus(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos repoSet) {
		ctx := context.Background()

		order := &models.Order{
			Customer: models.Customer{
				Name:    "Mina",
				Phone:   "+8801700000000",
				Email:   "mina@example.com",
				Address: "12 Baker Street",
			},
			Items: []models.LineItem{
				{ProductID: "p1", Name: "Cupcake", Price: decimal.RequireFromString("2.50"), Quantity: 4},
				{ProductID: "p2", Name: "Brownie", Price: decimal.RequireFromString("3"), Quantity: 1},
			},
			Totals: models.Totals{
				Subtotal:   decimal.RequireFromString("13"),
				Shipping:   decimal.RequireFromString("50"),
				GrandTotal: decimal.RequireFromString("63"),
			},
			Status: models.OrderStatusPending,
		}
		require.NoError(t, repos.orders.Create(ctx, order))
		require.NotEmpty(t, order.ID)

		got, err := repos.orders.GetByID(ctx, order.ID)
		require.NoError(t, err)
		assert.Equal(t, "Mina", got.Customer.Name)
		require.Len(t, got.Items, 2)
		assert.Equal(t, "Cupcake", got.Items[0].Name)
		assert.Equal(t, 4, got.Items[0].Quantity)
		assert.True(t, got.Items[0].Price.Equal(decimal.RequireFromString("2.5")))
		assert.True(t, got.Totals.GrandTotal.Equal(decimal.NewFromInt(63)))
		assert.Equal(t, models.OrderStatusPending, got.Status)

		updated, err := repos.orders.UpdateStatus(ctx, order.ID, models.OrderStatusShipped)
		require.NoError(t, err)
		assert.Equal(t, models.OrderStatusShipped, updated.Status)
		assert.Len(t, updated.Items, 2, "items untouched by status change")

		_, err = repos.orders.UpdateStatus(ctx, uuid.New().String(), models.OrderStatusShipped)
		assert.ErrorIs(t, err, repositories.ErrNotFound)

		_, err = repos.orders.GetByID(ctx, "missing")
		assert.ErrorIs(t, err, repositories.ErrNotFound)

		all, err := repos.orders.GetAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}

func TestTransactionRepository_OrderedByDate(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos repoSet) {
		ctx := context.Background()

		entries := []models.TransactionDraft{
			{Type: models.TransactionExpense, Description: "Flour", Category: "Ingredients", Amount: decimal.NewFromInt(40), Date: "2025-04-03"},
			{Type: models.TransactionEarning, Description: "Sales", Category: "Sales", Amount: decimal.NewFromInt(120), Date: "2025-04-01"},
			{Type: models.TransactionEarning, Description: "Catering", Category: "Sales", Amount: decimal.NewFromInt(300), Date: "2025-04-03"},
		}
		var ids []string
		for _, draft := range entries {
			txn := &models.Transaction{TransactionDraft: draft}
			require.NoError(t, repos.transactions.Create(ctx, txn))
			ids = append(ids, txn.ID)
			time.Sleep(2 * time.Millisecond)
		}

		all, err := repos.transactions.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "Sales", all[0].Description)
		assert.Equal(t, "Flour", all[1].Description)
		assert.Equal(t, "Catering", all[2].Description)

		got, err := repos.transactions.GetByID(ctx, ids[0])
		require.NoError(t, err)
		got.Amount = decimal.RequireFromString("45.75")
		got.Description = "Flour and sugar"
		require.NoError(t, repos.transactions.Update(ctx, got))

		got, err = repos.transactions.GetByID(ctx, ids[0])
		require.NoError(t, err)
		assert.Equal(t, "Flour and sugar", got.Description)
		assert.Equal(t, "45.75", got.Amount.String())

		require.NoError(t, repos.transactions.Delete(ctx, ids[1]))
		assert.ErrorIs(t, repos.transactions.Delete(ctx, ids[1]), repositories.ErrNotFound)
		_, err = repos.transactions.GetByID(ctx, ids[1])
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}

func TestUserRepository_UniqueAndLookups(t *testing.T) {
	forEachBackend(t, func(t *testing.T, repos repoSet) {
		ctx := context.Background()

		user := &models.User{Username: "baker", Email: "baker@example.com", Password: "hash", Role: models.RoleAdmin}
		require.NoError(t, repos.users.Create(ctx, user))
		require.NotEmpty(t, user.ID)

		byName, err := repos.users.GetByUsername(ctx, "baker")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byName.ID)

		byEmail, err := repos.users.GetByEmail(ctx, "baker@example.com")
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, byEmail.Role)

		byID, err := repos.users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "baker", byID.Username)

		dup := &models.User{Username: "baker", Email: "other@example.com", Password: "hash", Role: models.RoleUser}
		assert.ErrorIs(t, repos.users.Create(ctx, dup), repositories.ErrDuplicate)

		_, err = repos.users.GetByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, repositories.ErrNotFound)
	})
}
