package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yukikurage/taskboard-client/internal/config"
	"github.com/yukikurage/taskboard-client/internal/constants"
)

func newSQLiteStorage(t *testing.T) Storage {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	s, err := NewGorm(db)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newRedisStorage(t *testing.T) Storage {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedis(client, DefaultRedisPrefix)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestStorageBackends(t *testing.T) {
	backends := map[string]func(t *testing.T) Storage{
		"memory": func(*testing.T) Storage { return NewMemory() },
		"sqlite": newSQLiteStorage,
		"redis":  newRedisStorage,
	}

	for name, open := range backends {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := open(t)

			_, ok, err := s.Get(ctx, constants.StorageKeyAccessToken)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, s.Set(ctx, constants.StorageKeyAccessToken, "tok-1"))
			require.NoError(t, s.Set(ctx, constants.StorageKeyRefreshToken, "ref-1"))
			require.NoError(t, s.Set(ctx, constants.StorageKeyAccessToken, "tok-2"))

			v, ok, err := s.Get(ctx, constants.StorageKeyAccessToken)
			require.NoError(t, err)
			assert.True(t, ok)
			assert.Equal(t, "tok-2", v)

			require.NoError(t, s.Delete(ctx, constants.StorageKeyAccessToken, constants.StorageKeyRefreshToken, "missing"))

			_, ok, err = s.Get(ctx, constants.StorageKeyAccessToken)
			require.NoError(t, err)
			assert.False(t, ok)
			_, ok, err = s.Get(ctx, constants.StorageKeyRefreshToken)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestRedisStorage_Namespacing(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s := NewRedis(client, "app:")

	require.NoError(t, s.Set(context.Background(), "access_token", "abc"))

	got, err := mr.Get("app:access_token")
	require.NoError(t, err)
	assert.Equal(t, "abc", got)
}

func TestGormStorage_DatabaseErrors(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(mysql.New(mysql.Config{Conn: sqlDB, SkipInitializeWithVersion: true}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	s := &Gorm{db: db}

	boom := errors.New("connection reset")
	mock.ExpectQuery("SELECT").WillReturnError(boom)

	_, ok, err := s.Get(context.Background(), constants.StorageKeyAccessToken)
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)

	mock.ExpectBegin()
	mock.ExpectExec("DELETE").WillReturnError(boom)
	mock.ExpectRollback()

	err = s.Delete(context.Background(), constants.StorageKeyAccessToken)
	assert.ErrorIs(t, err, boom)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOpen_MemoryAndUnknown(t *testing.T) {
	s, err := Open(&config.Config{StorageDriver: "memory"})
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, s)

	_, err = Open(&config.Config{StorageDriver: "floppy"})
	assert.Error(t, err)
}

func TestOpen_Redis(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := Open(&config.Config{StorageDriver: "redis", RedisAddr: mr.Addr()})
	require.NoError(t, err)
	defer s.Close()
	assert.IsType(t, &Redis{}, s)
}
