package verify

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func setupStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(mr.Close)

	store := NewStoreWithClient(redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	}))
	return store, mr
}

func TestGenerateCodeIsSixDigits(t *testing.T) {
	for range 20 {
		code := GenerateCode()
		assert.Len(t, code, 6)
		assert.Regexp(t, `^[0-9]{6}$`, code)
	}
}

func TestSaveAndCheck(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	assert.NoError(t, store.Save(ctx, "john@example.com", "123456"))

	ok, err := store.Check(ctx, "john@example.com", "123456")
	assert.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.Check(ctx, "john@example.com", "999999")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestCheckUnknownEmail(t *testing.T) {
	store, _ := setupStore(t)

	ok, err := store.Check(context.Background(), "ghost@example.com", "123456")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestSaveReplacesPendingCode(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	assert.NoError(t, store.Save(ctx, "john@example.com", "111111"))
	assert.NoError(t, store.Save(ctx, "john@example.com", "222222"))

	ok, _ := store.Check(ctx, "john@example.com", "111111")
	assert.False(t, ok)
	ok, _ = store.Check(ctx, "john@example.com", "222222")
	assert.True(t, ok)
}

func TestCodeExpires(t *testing.T) {
	store, mr := setupStore(t)
	ctx := context.Background()

	assert.NoError(t, store.Save(ctx, "john@example.com", "123456"))

	mr.FastForward(CodeTTL + 1)

	ok, err := store.Check(ctx, "john@example.com", "123456")
	assert.NoError(t, err)
	assert.False(t, ok)
}

func TestConsumeRemovesCode(t *testing.T) {
	store, _ := setupStore(t)
	ctx := context.Background()

	assert.NoError(t, store.Save(ctx, "john@example.com", "123456"))
	assert.NoError(t, store.Consume(ctx, "john@example.com"))

	ok, err := store.Check(ctx, "john@example.com", "123456")
	assert.NoError(t, err)
	assert.False(t, ok)
}
