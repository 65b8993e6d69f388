package store

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medtrust/internal/patient"
	"medtrust/pkg/platform/sentinel"
)

func TestInMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewInMemoryStore(patient.Record{Name: "John Doe", Diagnosis: "asthma"})

	r, err := s.Get(ctx, "john_doe")
	require.NoError(t, err)
	assert.Equal(t, "asthma", r.Diagnosis)
	assert.Equal(t, "john_doe", r.ID)

	r.Diagnosis = "changed"
	again, err := s.Get(ctx, "john_doe")
	require.NoError(t, err)
	assert.Equal(t, "asthma", again.Diagnosis, "callers get a copy")

	_, err = s.Get(ctx, "jane_doe")
	assert.ErrorIs(t, err, sentinel.ErrNotFound)
}

var selectPatient = regexp.QuoteMeta(`SELECT id, name, age, gender, email, diagnosis, treatment, notes`)

func TestPostgresStoreGet(t *testing.T) {
	ctx := context.Background()
	columns := []string{"id", "name", "age", "gender", "email", "diagnosis", "treatment", "notes"}

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(selectPatient).WithArgs("john_doe").WillReturnRows(
			sqlmock.NewRows(columns).AddRow("john_doe", "John Doe", 54, "M", "john@example.org", "COPD", "inhaler", "smoker"))

		r, err := NewPostgresStore(db).Get(ctx, "john_doe")
		require.NoError(t, err)
		assert.Equal(t, 54, r.Age)
		assert.Equal(t, "COPD", r.Diagnosis)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("null age", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(selectPatient).WithArgs("jane").WillReturnRows(
			sqlmock.NewRows(columns).AddRow("jane", "Jane", nil, "", "", "", "", ""))

		r, err := NewPostgresStore(db).Get(ctx, "jane")
		require.NoError(t, err)
		assert.Zero(t, r.Age)
	})

	t.Run("missing", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(selectPatient).WithArgs("ghost").WillReturnRows(sqlmock.NewRows(columns))

		_, err = NewPostgresStore(db).Get(ctx, "ghost")
		assert.ErrorIs(t, err, sentinel.ErrNotFound)
	})

	t.Run("driver failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(selectPatient).WithArgs("john_doe").WillReturnError(errors.New("timeout"))

		_, err = NewPostgresStore(db).Get(ctx, "john_doe")
		require.Error(t, err)
		assert.NotErrorIs(t, err, sentinel.ErrNotFound)
	})
}

func TestPostgresStoreUpsertDerivesID(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO patients`)).
		WithArgs("mary-ann", "Mary-Ann", 30, "F", "", "", "", "").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = NewPostgresStore(db).Upsert(context.Background(), patient.Record{Name: "Mary-Ann", Age: 30, Gender: "F"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
