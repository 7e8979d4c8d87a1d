package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_SetGet(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "users_db", []byte(`[]`)))

	got, err := s.Get(ctx, "users_db")
	require.NoError(t, err)
	assert.Equal(t, []byte(`[]`), got)
	assert.Equal(t, 1, s.Len())
}

func TestStore_Get_Missing(t *testing.T) {
	s := New()

	got, err := s.Get(context.Background(), "user")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestStore_ValuesAreCopied(t *testing.T) {
	s := New()
	ctx := context.Background()

	in := []byte("light")
	require.NoError(t, s.Set(ctx, "theme_mode", in))
	in[0] = 'X'

	out, err := s.Get(ctx, "theme_mode")
	require.NoError(t, err)
	assert.Equal(t, "light", string(out))

	out[0] = 'Y'
	again, err := s.Get(ctx, "theme_mode")
	require.NoError(t, err)
	assert.Equal(t, "light", string(again))
}

func TestStore_Remove(t *testing.T) {
	s := New()
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "user", []byte(`{}`)))
	require.NoError(t, s.Remove(ctx, "user"))
	require.NoError(t, s.Remove(ctx, "user"), "removing a missing key is a no-op")

	got, err := s.Get(ctx, "user")
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Equal(t, 0, s.Len())
}

func TestStore_CanceledContext(t *testing.T) {
	s := New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.Set(ctx, "user", []byte(`{}`)), context.Canceled)
	_, err := s.Get(ctx, "user")
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, s.Remove(ctx, "user"), context.Canceled)
}
