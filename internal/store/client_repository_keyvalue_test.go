package store

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestKeyValueRepository_Get(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewKeyValueRepository(db)

	mock.ExpectQuery(getKeyValue).
		WithArgs("pending_mutations:customer").
		WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow([]byte(`[]`)))

	value, err := repo.Get(context.Background(), "pending_mutations:customer")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), value)
}

func TestKeyValueRepository_GetMissingKey(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewKeyValueRepository(db)

	mock.ExpectQuery(getKeyValue).
		WithArgs("absent").
		WillReturnRows(sqlmock.NewRows([]string{"value"}))

	_, err := repo.Get(context.Background(), "absent")
	require.ErrorIs(t, err, ErrKeyNotFound)
}

func TestKeyValueRepository_SetUpserts(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewKeyValueRepository(db)

	mock.ExpectExec(setKeyValue).
		WithArgs("k", []byte("v")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Set(context.Background(), "k", []byte("v")))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestKeyValueRepository_Delete(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewKeyValueRepository(db)

	mock.ExpectExec(deleteKeyValue).
		WithArgs("k").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Delete(context.Background(), "k"))
}

func TestAdminRepository_EnsureSeededInsertsDefault(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdminRepository(db)

	mock.ExpectQuery(countAdminRows).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(0)))
	mock.ExpectExec(insertAdminRow).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.EnsureSeeded(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepository_EnsureSeededSkipsExistingRow(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdminRepository(db)

	mock.ExpectQuery(countAdminRows).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))

	require.NoError(t, repo.EnsureSeeded(context.Background()))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAdminRepository_PasswordHash(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdminRepository(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("0000"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(getAdminPassword).
		WillReturnRows(sqlmock.NewRows([]string{"password"}).AddRow(string(hash)))

	stored, err := repo.PasswordHash(context.Background())
	require.NoError(t, err)
	assert.Equal(t, string(hash), stored)
}

func TestAdminRepository_PasswordHashNotSeeded(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdminRepository(db)

	mock.ExpectQuery(getAdminPassword).
		WillReturnRows(sqlmock.NewRows([]string{"password"}))

	_, err := repo.PasswordHash(context.Background())
	require.ErrorIs(t, err, ErrAdminNotSeeded)
}

func TestAdminRepository_SetPasswordHashNotSeeded(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewAdminRepository(db)

	mock.ExpectExec(updateAdminPassword).
		WithArgs("new-hash").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.SetPasswordHash(context.Background(), "new-hash")
	require.ErrorIs(t, err, ErrAdminNotSeeded)
}
