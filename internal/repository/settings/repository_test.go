package settings

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"

	"github.com/club-invaders/fanclub/internal/entity"
)

func newMockRepo(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db := bun.NewDB(sqlDB, pgdialect.New())
	return &Repository{writer: db, reader: db}, mock
}

func settingColumns() []string {
	return []string{"id", "key", "value", "created_at", "updated_at"}
}

func TestGetByKey(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM "settings" AS "s" WHERE \(s\.key = 'bank_transfer_info'\) LIMIT 1`).
		WillReturnRows(sqlmock.NewRows(settingColumns()).
			AddRow(1, entity.SettingBankTransferInfo, []byte(`{"bankName":"BML"}`), now, now))

	setting, err := repo.GetByKey(context.Background(), entity.SettingBankTransferInfo)
	require.NoError(t, err)
	assert.Equal(t, entity.SettingBankTransferInfo, setting.Key)
	assert.JSONEq(t, `{"bankName":"BML"}`, string(setting.Value))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByKeyNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM "settings"`).
		WillReturnRows(sqlmock.NewRows(settingColumns()))

	_, err := repo.GetByKey(context.Background(), entity.SettingSizeGuide)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpsertUpdatesExistingRow(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now()

	mock.ExpectQuery(`SELECT (.+) FROM "settings"`).
		WillReturnRows(sqlmock.NewRows(settingColumns()).
			AddRow(1, entity.SettingBankTransferInfo, []byte(`{}`), now, now))
	mock.ExpectExec(`UPDATE "settings"`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Upsert(context.Background(), entity.SettingBankTransferInfo, json.RawMessage(`{"bankName":"MIB"}`))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Two writers that both pass the existence check before either has written
// each take the INSERT path, leaving duplicate rows for one key. The
// interleaving is scripted here; with real concurrency it happens whenever
// both SELECTs land before either INSERT.
func TestUpsertDuplicateRowsWhenWritersInterleave(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM "settings"`).
		WillReturnRows(sqlmock.NewRows(settingColumns()))
	mock.ExpectQuery(`INSERT INTO "settings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	mock.ExpectQuery(`SELECT (.+) FROM "settings"`).
		WillReturnRows(sqlmock.NewRows(settingColumns()))
	mock.ExpectQuery(`INSERT INTO "settings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))

	err := repo.Upsert(context.Background(), entity.SettingBankTransferInfo, json.RawMessage(`{"bankName":"BML"}`))
	require.NoError(t, err)
	err = repo.Upsert(context.Background(), entity.SettingBankTransferInfo, json.RawMessage(`{"bankName":"MIB"}`))
	require.NoError(t, err)

	// Both writers inserted; neither took the UPDATE path.
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertInsertsMissingRow(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT (.+) FROM "settings"`).
		WillReturnRows(sqlmock.NewRows(settingColumns()))
	mock.ExpectQuery(`INSERT INTO "settings"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	err := repo.Upsert(context.Background(), entity.SettingSizeGuide, json.RawMessage(`{"adult":[]}`))
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
