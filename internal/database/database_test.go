package database

import (
	"testing"

	"sweetshop/internal/config"
	"sweetshop/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenGORM_SQLiteMigrates(t *testing.T) {
	dsn := "file:" + uuid.New().String() + "?mode=memory&cache=shared"
	db, err := OpenGORM(config.DriverSQLite, dsn)
	require.NoError(t, err)

	for _, model := range []interface{}{&models.Product{}, &models.Order{}, &models.Transaction{}, &models.User{}} {
		assert.True(t, db.Migrator().HasTable(model))
	}
	assert.True(t, db.Migrator().HasColumn(&models.Order{}, "customer_email"))
	assert.True(t, db.Migrator().HasColumn(&models.Order{}, "grand_total"))
}

func TestOpenGORM_UnsupportedDriver(t *testing.T) {
	_, err := OpenGORM("mysql", "")
	assert.Error(t, err)
}
