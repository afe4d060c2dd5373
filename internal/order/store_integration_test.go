//go:build integration

package order

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nao1215/crm/pkg/migration"
	"github.com/nao1215/crm/pkg/testutil"
)

func TestSQLStore_Postgres(t *testing.T) {
	db := testutil.StartPostgres(t)
	ctx := context.Background()
	require.NoError(t, migration.Run(ctx, db, migrations, "migrations"))

	store := NewSQLStore(db)
	base := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

	require.NoError(t, store.Insert(ctx, Order{ID: "order_1", CustomerID: "cust_1", ProductName: "Book", Price: 15, CreatedAt: base}))
	require.NoError(t, store.Insert(ctx, Order{ID: "order_2", CustomerID: "cust_1", ProductName: "Pen", Price: 2.5, CreatedAt: base.Add(time.Second)}))

	got, err := store.ListByCustomer(ctx, "cust_1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "order_1", got[0].ID)
	assert.Equal(t, "order_2", got[1].ID)

	err = store.Insert(ctx, Order{ID: "order_3", CustomerID: "cust_1", ProductName: "Bad", Price: -1, CreatedAt: base})
	assert.Error(t, err, "CHECK制約で負の価格は拒否される")
}
