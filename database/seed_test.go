package database_test

import (
	"os"
	"testing"

	"github.com/ecoradom4/cine-backend/helper"
	"github.com/ecoradom4/cine-backend/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.Movie{}, &model.Branch{}))
	return db
}

// Trùng tên phim thì slug nhận hậu tố đếm tăng dần
func TestGenerateUniqueMovieSlug(t *testing.T) {
	db := openTestDB(t)
	title := "Phim Trung Ten " + uuid.New().String()[:8]

	first := helper.GenerateUniqueMovieSlug(db, title)
	require.NoError(t, db.Create(&model.Movie{Title: title, Duration: 100, Slug: first}).Error)

	second := helper.GenerateUniqueMovieSlug(db, title)
	assert.Equal(t, first+"-1", second)
	require.NoError(t, db.Create(&model.Movie{Title: title, Duration: 100, Slug: second}).Error)

	third := helper.GenerateUniqueMovieSlug(db, title)
	assert.Equal(t, first+"-2", third)
}

func TestGenerateUniqueBranchSlug(t *testing.T) {
	db := openTestDB(t)
	name := "Chi Nhanh " + uuid.New().String()[:8]

	first := helper.GenerateUniqueBranchSlug(db, name)
	require.NoError(t, db.Create(&model.Branch{Name: name, Slug: first}).Error)

	second := helper.GenerateUniqueBranchSlug(db, name)
	assert.Equal(t, first+"-1", second)
}
