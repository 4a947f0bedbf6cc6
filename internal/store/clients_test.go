package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"depot-rest-api/internal/model"
)

func TestClientInsertAndSearch(t *testing.T) {
	db := newTestDB(t)
	clients := NewClients(db)
	ctx := context.Background()

	_, err := clients.Insert(ctx, model.InsertClient{
		Name: "acme corp", Password: "digest", Ctype: model.ClientNormal,
		Contactor: "wile", ContactorTel: "555-0100", Email: "wile@acme.test",
	})
	require.NoError(t, err)
	_, err = clients.Insert(ctx, model.InsertClient{
		Name: "acme labs", Password: "digest", Ctype: model.ClientImportant,
	})
	require.NoError(t, err)
	_, err = clients.Insert(ctx, model.InsertClient{
		Name: "globex", Password: "digest", Ctype: model.ClientNormal,
	})
	require.NoError(t, err)

	all, err := clients.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	like, err := clients.ByNameLike(ctx, "acme")
	require.NoError(t, err)
	assert.Len(t, like, 2)

	important, err := clients.ByType(ctx, model.ClientImportant)
	require.NoError(t, err)
	require.Len(t, important, 1)
	assert.Equal(t, "acme labs", important[0].Name)
}

func TestClientUpdateType(t *testing.T) {
	db := newTestDB(t)
	clients := NewClients(db)
	ctx := context.Background()

	id, err := clients.Insert(ctx, model.InsertClient{
		Name: "acme", Password: "digest", Ctype: model.ClientNormal,
	})
	require.NoError(t, err)

	rows, err := clients.UpdateType(ctx, id, model.ClientAbnormal)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), rows)

	got, err := clients.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, model.ClientAbnormal, got.Ctype)
	assert.Equal(t, "digest", got.Password, "type change never touches credentials")
}

func TestClientPartialUpdate(t *testing.T) {
	db := newTestDB(t)
	clients := NewClients(db)
	ctx := context.Background()

	id, err := clients.Insert(ctx, model.InsertClient{
		Name: "acme", Password: "digest", Ctype: model.ClientNormal,
		Contactor: "wile", Email: "old@acme.test",
	})
	require.NoError(t, err)

	email := "new@acme.test"
	rows, err := clients.Update(ctx, model.UpdateClient{ID: id, Email: &email})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), rows)

	got, err := clients.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "new@acme.test", got.Email)
	assert.Equal(t, "wile", got.Contactor)
}
