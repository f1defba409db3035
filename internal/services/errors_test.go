package services

import (
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/RazanRezq/munjiz/internal/database/testutil"
	"github.com/RazanRezq/munjiz/internal/models"
)

func TestIsUniqueConstraintErrorVendors(t *testing.T) {
	require.False(t, isUniqueConstraintError(nil))
	require.True(t, isUniqueConstraintError(gorm.ErrDuplicatedKey))
	require.True(t, isUniqueConstraintError(&pgconn.PgError{Code: "23505"}))
	require.False(t, isUniqueConstraintError(&pgconn.PgError{Code: "42601"}))
	require.True(t, isUniqueConstraintError(&mysql.MySQLError{Number: 1062}))
	require.False(t, isUniqueConstraintError(&mysql.MySQLError{Number: 1045}))
	require.False(t, isUniqueConstraintError(errors.New("connection refused")))
}

func TestIsUniqueConstraintErrorFromDriver(t *testing.T) {
	db := testutil.MustOpenTestDB(t)

	first := models.User{Email: "dup@example.com"}
	require.NoError(t, db.Create(&first).Error)

	second := models.User{Email: "dup@example.com"}
	err := db.Create(&second).Error
	require.Error(t, err)
	require.True(t, isUniqueConstraintError(err))
}
