package student_test

import (
	"context"
	"testing"
	"time"

	"eventdesk/internal/adapters/storage"
	studentstore "eventdesk/internal/adapters/storage/student"
	"eventdesk/internal/domain/student"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	db, err := storage.OpenSandbox(ctx, time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	s := studentstore.NewSQLiteStore(db)

	zuriel := student.Student{ID: "2023M1025", RFID: "0004521987", Name: "Zuriel Eliazar D. Calix", Course: "BSCS", Year: 3, Section: "B"}
	walkIn := student.Student{ID: "2025M0142", Name: "Miguel T. Santos", Course: "BSIS", Year: 1, Section: "C"}
	require.NoError(t, s.Save(ctx, zuriel))
	require.NoError(t, s.Save(ctx, walkIn))

	got, err := s.GetByID(ctx, "2023m1025")
	require.NoError(t, err)
	assert.Equal(t, zuriel, got)

	byTag, err := s.FindByIdentifier(ctx, " 0004521987 ")
	require.NoError(t, err)
	assert.Equal(t, zuriel.ID, byTag.ID)

	byID, err := s.FindByIdentifier(ctx, "2025M0142")
	require.NoError(t, err)
	assert.Empty(t, byID.RFID)

	_, err = s.GetByID(ctx, "nobody")
	assert.ErrorIs(t, err, student.ErrNotFound)
	_, err = s.FindByIdentifier(ctx, "nobody")
	assert.ErrorIs(t, err, student.ErrNotFound)

	all, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	assert.Error(t, s.Save(ctx, student.Student{ID: "x"}), "invalid students are rejected")
}
