package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Harshitk-cp/casebook/internal/domain"
	"github.com/Harshitk-cp/casebook/internal/testhelpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestAgentStore_InsertAndList(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	s := NewAgentStore(db.SQL(), db.Dialect())
	ctx := context.Background()

	agents := []domain.Agent{
		{Name: "Ana", IncorporationDate: date("2018-01-02"), Role: domain.RoleDelegado},
		{Name: "Bruno", IncorporationDate: date("2020-11-30"), Role: domain.RoleInspetor},
	}
	require.NoError(t, s.Insert(ctx, agents))
	assert.Equal(t, int64(1), agents[0].ID)
	assert.Equal(t, int64(2), agents[1].ID)

	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Ana", got[0].Name)
	assert.Equal(t, "2018-01-02", got[0].IncorporationDate.Format(time.DateOnly))
	assert.Equal(t, domain.RoleDelegado, got[0].Role)
	assert.Equal(t, "Bruno", got[1].Name)
	assert.Equal(t, domain.RoleInspetor, got[1].Role)
}

func TestAgentStore_DeleteAllAndResetSequence(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	s := NewAgentStore(db.SQL(), db.Dialect())
	ctx := context.Background()

	agents := []domain.Agent{
		{Name: "Ana", IncorporationDate: date("2018-01-02"), Role: domain.RoleDelegado},
		{Name: "Bruno", IncorporationDate: date("2020-11-30"), Role: domain.RoleInspetor},
		{Name: "Carla", IncorporationDate: date("2021-05-05"), Role: domain.RoleInspetor},
	}
	require.NoError(t, s.Insert(ctx, agents))

	n, err := s.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)

	// Without a reset the counter keeps going.
	again := []domain.Agent{{Name: "Dora", IncorporationDate: date("2022-02-02"), Role: domain.RoleDelegado}}
	require.NoError(t, s.Insert(ctx, again))
	assert.Equal(t, int64(4), again[0].ID)

	_, err = s.DeleteAll(ctx)
	require.NoError(t, err)
	require.NoError(t, s.ResetSequence(ctx))

	again[0].ID = 0
	require.NoError(t, s.Insert(ctx, again))
	assert.Equal(t, int64(1), again[0].ID)
}

func TestCaseStore_InsertAndList(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	agents := NewAgentStore(db.SQL(), db.Dialect())
	cases := NewCaseStore(db.SQL(), db.Dialect())
	ctx := context.Background()

	require.NoError(t, agents.Insert(ctx, []domain.Agent{
		{Name: "Ana", IncorporationDate: date("2018-01-02"), Role: domain.RoleDelegado},
	}))

	in := []domain.Case{
		{Title: "Roubo", Description: "Roubo a mão armada", Status: domain.StatusAberto, AgentID: 1},
		{Title: "Fraude", Description: "Fraude bancária", Status: domain.StatusSolucionado, AgentID: 1},
	}
	require.NoError(t, cases.Insert(ctx, in))
	assert.Equal(t, int64(1), in[0].ID)
	assert.Equal(t, int64(2), in[1].ID)

	got, err := cases.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, in[0], got[0])
	assert.Equal(t, in[1], got[1])
}

func TestCaseStore_InsertUnknownAgent(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	cases := NewCaseStore(db.SQL(), db.Dialect())

	err := cases.Insert(context.Background(), []domain.Case{
		{Title: "Roubo", Description: "x", Status: domain.StatusAberto, AgentID: 42},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrForeignKey), "got %v", err)
}

func TestAgentStore_DeleteAllReferenced(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	agents := NewAgentStore(db.SQL(), db.Dialect())
	cases := NewCaseStore(db.SQL(), db.Dialect())
	ctx := context.Background()

	require.NoError(t, agents.Insert(ctx, []domain.Agent{
		{Name: "Ana", IncorporationDate: date("2018-01-02"), Role: domain.RoleDelegado},
	}))
	require.NoError(t, cases.Insert(ctx, []domain.Case{
		{Title: "Roubo", Description: "x", Status: domain.StatusAberto, AgentID: 1},
	}))

	_, err := agents.DeleteAll(ctx)
	require.ErrorIs(t, err, ErrForeignKey)
	assert.Equal(t, 1, testhelpers.Count(t, db, "agentes"))

	n, err := cases.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = agents.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestCaseStore_ListEmpty(t *testing.T) {
	db := testhelpers.NewTestDB(t)
	got, err := NewCaseStore(db.SQL(), db.Dialect()).List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDateColumn(t *testing.T) {
	var got time.Time

	require.NoError(t, dateColumn{&got}.Scan("2019-06-15"))
	assert.Equal(t, "2019-06-15", got.Format(time.DateOnly))

	require.NoError(t, dateColumn{&got}.Scan([]byte("2021-03-22T00:00:00Z")))
	assert.Equal(t, "2021-03-22", got.Format(time.DateOnly))

	want := date("2020-02-29")
	require.NoError(t, dateColumn{&got}.Scan(want))
	assert.Equal(t, want, got)

	assert.Error(t, dateColumn{&got}.Scan(42))
	assert.Error(t, dateColumn{&got}.Scan("not a date"))
}
