package session

import (
	"context"
	"database/sql"
	"testing"

	"github.com/akarpov/blogbox/internal/client/api"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE metadata (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);
`)
	require.NoError(t, err)
	return db
}

func insertMeta(t *testing.T, db *sql.DB, k string, v []byte) {
	t.Helper()
	_, err := db.Exec(`INSERT INTO metadata(key,value) VALUES(?,?)`, k, v)
	require.NoError(t, err)
}

var ann = api.UserProfile{ID: "u1", Name: "Ann", Email: "ann@example.com"}

func TestStoreWriteReadRoundTrip(t *testing.T) {
	db := setupDB(t)
	store := NewSQLiteStore(db)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, Session{Token: "tok-1", User: ann}))

	got, err := store.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok-1", got.Token)
	require.Equal(t, ann, got.User)
}

func TestStoreReadEmpty(t *testing.T) {
	store := NewSQLiteStore(setupDB(t))

	got, err := store.Read(context.Background())
	require.NoError(t, err)
	require.True(t, got.IsEmpty())
}

func TestStoreReadCorruptUserDegradesToEmpty(t *testing.T) {
	tests := []struct {
		name string
		blob []byte
	}{
		{name: "not json", blob: []byte("{broken")},
		{name: "wrong shape", blob: []byte(`[1,2,3]`)},
		{name: "missing id", blob: []byte(`{"name":"Ann"}`)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			db := setupDB(t)
			insertMeta(t, db, "token", []byte("tok-1"))
			insertMeta(t, db, "user", tc.blob)

			got, err := NewSQLiteStore(db).Read(context.Background())
			require.NoError(t, err)
			require.True(t, got.IsEmpty(), "corrupt user must not surface a half-populated pair")
		})
	}
}

func TestStoreWriteOverwrites(t *testing.T) {
	db := setupDB(t)
	store := NewSQLiteStore(db)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, Session{Token: "old", User: ann}))

	bob := api.UserProfile{ID: "u2", Name: "Bob", Email: "bob@example.com"}
	require.NoError(t, store.Write(ctx, Session{Token: "new", User: bob}))

	got, err := store.Read(ctx)
	require.NoError(t, err)
	require.Equal(t, "new", got.Token)
	require.Equal(t, bob, got.User)
}

func TestStoreClearIsIdempotent(t *testing.T) {
	db := setupDB(t)
	store := NewSQLiteStore(db)
	ctx := context.Background()

	require.NoError(t, store.Write(ctx, Session{Token: "tok-1", User: ann}))
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))

	got, err := store.Read(ctx)
	require.NoError(t, err)
	require.True(t, got.IsEmpty())
}

func TestInitDatabaseCreatesSchema(t *testing.T) {
	dsn := "file:" + t.TempDir() + "/state.db"
	db, err := InitDatabase(context.Background(), dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := NewSQLiteStore(db)
	require.NoError(t, store.Write(context.Background(), Session{Token: "t", User: ann}))

	got, err := store.Read(context.Background())
	require.NoError(t, err)
	require.Equal(t, "t", got.Token)
}
