package postgres

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medtrust/internal/audit"
)

func TestStoreAppend(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	id := uuid.New()
	at := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)
	conf := 0.9

	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO access_audit`)).
		WithArgs(id, at, "Dr. X", "doctor", "Emergency Access", "john_doe", "10.0.0.1", "Chrome on Linux", "Granted",
			"sealed", true, "emergency", sqlmock.AnyArg(), "model", 3, "").
		WillReturnResult(sqlmock.NewResult(1, 1))

	err = New(db).Append(context.Background(), audit.Entry{
		ID: id, Timestamp: at, Actor: "Dr. X", Role: "doctor", Action: audit.ActionEmergency,
		Patient: "john_doe", IP: "10.0.0.1", Device: "Chrome on Linux", Status: audit.StatusGranted,
		Justification: "sealed", Sealed: true, AILabel: "emergency", AIConfidence: &conf, AISource: "model", TrustDelta: 3,
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStoreListByActor(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	cols := []string{"id", "occurred_at", "actor", "role", "action", "patient", "ip", "device", "status",
		"justification", "sealed", "ai_label", "ai_confidence", "ai_source", "trust_delta", "duration"}
	id1, id2 := uuid.New(), uuid.New()
	at := time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)

	mock.ExpectQuery(regexp.QuoteMeta(`FROM access_audit WHERE actor = $1`)).WithArgs("Dr. X").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(id1.String(), at, "Dr. X", "doctor", "Normal Access (In-Network)", "john_doe", "192.168.1.5", "", "Granted",
				"", false, "", nil, "", 2, "").
			AddRow(id2.String(), at.Add(time.Minute), "Dr. X", "doctor", "Restricted Access (Outside Network)", "john_doe", "10.0.0.1", "", "Flagged",
				"", false, "restricted", 0.55, "model", -3, ""))

	entries, err := New(db).ListByActor(context.Background(), "Dr. X")
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, id1, entries[0].ID)
	assert.Equal(t, audit.ActionNormalInNetwork, entries[0].Action)
	assert.Nil(t, entries[0].AIConfidence)

	assert.Equal(t, audit.StatusFlagged, entries[1].Status)
	require.NotNil(t, entries[1].AIConfidence)
	assert.InDelta(t, 0.55, *entries[1].AIConfidence, 1e-9)
	assert.Equal(t, -3, entries[1].TrustDelta)
}
