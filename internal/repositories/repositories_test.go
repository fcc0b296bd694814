package repositories

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return db, mock
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}

func TestPagination_Normalize(t *testing.T) {
	assert.Equal(t, Pagination{Page: 1, Limit: DefaultPageSize}, Pagination{}.Normalize())
	assert.Equal(t, MaxPageSize, Pagination{Page: 2, Limit: 1000}.Normalize().Limit)
	assert.Equal(t, 40, Pagination{Page: 3, Limit: 20}.Offset())
}

func TestContainsPattern_EscapesWildcards(t *testing.T) {
	assert.Equal(t, "%live%", containsPattern("live"))
	assert.Equal(t, `%100\%%`, containsPattern("100%"))
	assert.Equal(t, `%a\_b%`, containsPattern("a_b"))
	assert.Equal(t, `%c:\\d%`, containsPattern(`c:\d`))
}

func TestRecruitRepository_ListSearchIsLiteral(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "recruits" WHERE .*title ILIKE .* OR brand_name ILIKE `).
		WithArgs(`%50\%\_off%`, `%50\%\_off%`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	items, total, err := NewRecruitRepository().List(db, RecruitFilter{Query: "50%_off"})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecruitRepository_FindByIDNotFound(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "recruits"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := NewRecruitRepository().FindByID(db, "missing")
	assert.ErrorIs(t, err, ErrRecruitNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferRepository_HoldIfPending(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewOfferRepository()
	now := time.Now()

	mock.ExpectExec(`UPDATE "offers" SET .* WHERE id = .* AND status = `).WillReturnResult(sqlmock.NewResult(0, 1))
	held, err := repo.HoldIfPending(db, "o1", now)
	require.NoError(t, err)
	assert.True(t, held)

	// второй прогон: строка уже не pending
	mock.ExpectExec(`UPDATE "offers" SET .* WHERE id = .* AND status = `).WillReturnResult(sqlmock.NewResult(0, 0))
	held, err = repo.HoldIfPending(db, "o1", now)
	require.NoError(t, err)
	assert.False(t, held)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProposalRepository_HoldIfPendingError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`UPDATE "proposals" SET`).WillReturnError(errors.New("conn reset"))

	held, err := NewProposalRepository().HoldIfPending(db, "p1", time.Now())
	assert.Error(t, err)
	assert.False(t, held)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOfferRepository_FindExpiredPending(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT "id" FROM "offers" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("o1").AddRow("o2"))

	ids, err := NewOfferRepository().FindExpiredPending(db, time.Now(), 100)
	require.NoError(t, err)
	assert.Equal(t, []string{"o1", "o2"}, ids)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCounterRepository_Increment(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`UPDATE "shorts" SET "views"=views \+ .* WHERE id = `).WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, NewCounterRepository().Increment(db, KindShort, "s1", MetricView))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCounterRepository_RejectsUnknownTargets(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewCounterRepository()

	assert.ErrorIs(t, repo.Increment(db, "users", "u1", MetricView), ErrUnknownCounter)
	assert.ErrorIs(t, repo.Increment(db, KindRecruit, "r1", "likes; DROP TABLE"), ErrUnknownCounter)
	assert.NoError(t, mock.ExpectationsWereMet())
}
