package persistent

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestUserRepository_GetByUsername(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username", "email", "password", "image_url", "bio"}).
		AddRow("user-1", "birdwatcher", "bird@test.com", "hash", "/static/images/default-pic.png", "I watch birds.")
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username =`).
		WithArgs("birdwatcher", 1).
		WillReturnRows(rows)

	user, err := repo.GetByUsername("birdwatcher")

	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.Equal(t, "bird@test.com", user.Email)
	assert.Equal(t, "I watch birds.", user.Bio)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "users" WHERE id =`).
		WithArgs("missing", 1).
		WillReturnError(gorm.ErrRecordNotFound)

	user, err := repo.GetByID("missing")

	assert.Nil(t, user)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Search_WithQuery(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username"}).
		AddRow("user-2", "birdsong").
		AddRow("user-1", "birdwatcher")
	mock.ExpectQuery(`SELECT \* FROM "users" WHERE username LIKE .* ORDER BY username ASC`).
		WithArgs("%bird%").
		WillReturnRows(rows)

	users, err := repo.Search("bird")

	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "birdsong", users[0].Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Search_EmptyQueryListsAll(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "username"}).
		AddRow("user-1", "birdwatcher")
	mock.ExpectQuery(`SELECT \* FROM "users" ORDER BY username ASC`).
		WillReturnRows(rows)

	users, err := repo.Search("")

	require.NoError(t, err)
	assert.Len(t, users, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_IsFollowing(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "follows" WHERE follower_id =`).
		WithArgs("user-1", "user-2").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	following, err := repo.IsFollowing("user-1", "user-2")

	require.NoError(t, err)
	assert.True(t, following)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_IsFollowing_NoEdge(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "follows" WHERE follower_id =`).
		WithArgs("user-1", "user-2").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	following, err := repo.IsFollowing("user-1", "user-2")

	require.NoError(t, err)
	assert.False(t, following)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_GetFollowingIDs(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"followee_id"}).
		AddRow("user-2").
		AddRow("user-3")
	mock.ExpectQuery(`SELECT "followee_id" FROM "follows" WHERE follower_id =`).
		WithArgs("user-1").
		WillReturnRows(rows)

	ids, err := repo.GetFollowingIDs("user-1")

	require.NoError(t, err)
	assert.Equal(t, []string{"user-2", "user-3"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_CreateFollow_AlreadyExists(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	rows := sqlmock.NewRows([]string{"id", "follower_id", "followee_id"}).
		AddRow("follow-1", "user-1", "user-2")
	mock.ExpectQuery(`SELECT \* FROM "follows" WHERE follower_id =`).
		WithArgs("user-1", "user-2", 1).
		WillReturnRows(rows)

	// No insert expected when the edge already exists
	err := repo.CreateFollow("user-1", "user-2")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_DeleteFollow(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "follows" WHERE follower_id =`).
		WithArgs("user-1", "user-2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.DeleteFollow("user-1", "user-2")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepository_Delete_CascadesInOneTransaction(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewUserRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "likes" WHERE message_id IN`).
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "likes" WHERE user_id =`).
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`DELETE FROM "messages" WHERE user_id =`).
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "follows" WHERE follower_id =`).
		WithArgs("user-1", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "users" WHERE id =`).
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete("user-1")

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
