package setup

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// reversingStore finishes later requests first so arrival order is the
// reverse of submission order.
type reversingStore struct {
	total    int
	dropEcho bool
}

func (s reversingStore) Create(ctx context.Context, request Request) (Created, error) {
	name := request.Record.(Etiquette).Name
	index, _ := strconv.Atoi(name)

	time.Sleep(time.Duration(s.total-index) * 5 * time.Millisecond)

	token := request.Token
	if s.dropEcho {
		token = ""
	}
	return Created{ID: "etq:" + name, Token: token}, nil
}

func etiquetteRequests(n int) []Request {
	requests := []Request{}
	for i := 0; i < n; i++ {
		requests = append(requests, Request{
			Kind:   KindEtiquette,
			Record: Etiquette{Name: strconv.Itoa(i), Color: ColorBlue, IsActive: true, Calendar: "cal:1"},
		})
	}
	return requests
}

func TestNewWriter(t *testing.T) {
	writer, err := NewWriter("", 0)
	require.NoError(t, err)
	assert.Equal(t, Sequential{}, writer)

	writer, err = NewWriter("Concurrent", 0)
	require.NoError(t, err)
	assert.Equal(t, Concurrent{Limit: defaultConcurrency}, writer)

	_, err = NewWriter("parallel", 0)
	assert.Error(t, err)
}

func TestSequentialWriter(t *testing.T) {
	t.Run("golden path", func(t *testing.T) {
		store := NewMemoryStore()

		created, err := Sequential{}.CreateAll(context.Background(), store, etiquetteRequests(3))

		require.NoError(t, err)
		require.Len(t, created, 3)

		stored := store.Records(KindEtiquette)
		for i := range created {
			assert.Equal(t, stored[i].ID, created[i].ID)
			assert.Equal(t, strconv.Itoa(i), stored[i].Request.Record.(Etiquette).Name)
		}
	})

	t.Run("stops at the first failure", func(t *testing.T) {
		store := NewMemoryStore()
		store.FailOn(KindEtiquette, errors.New("boom"))

		_, err := Sequential{}.CreateAll(context.Background(), store, etiquetteRequests(3))

		assert.True(t, IsFailureCode(err, CodeStoreWriteFailed))
		assert.Equal(t, 1, store.Calls())
	})
}

func TestConcurrentWriter(t *testing.T) {
	t.Run("restores submission order", func(t *testing.T) {
		created, err := Concurrent{Limit: 5}.CreateAll(context.Background(), reversingStore{total: 5}, etiquetteRequests(5))

		require.NoError(t, err)
		require.Len(t, created, 5)
		for i, c := range created {
			assert.Equal(t, fmt.Sprintf("etq:%d", i), c.ID)
			assert.NotEmpty(t, c.Token)
		}
	})

	t.Run("keeps caller supplied tokens", func(t *testing.T) {
		requests := etiquetteRequests(2)
		requests[0].Token = "first"
		requests[1].Token = "second"

		created, err := Concurrent{}.CreateAll(context.Background(), NewMemoryStore(), requests)

		require.NoError(t, err)
		assert.Equal(t, "first", created[0].Token)
		assert.Equal(t, "second", created[1].Token)
	})

	t.Run("fails when the store does not echo tokens", func(t *testing.T) {
		_, err := Concurrent{Limit: 2}.CreateAll(context.Background(), reversingStore{total: 2, dropEcho: true}, etiquetteRequests(2))

		assert.True(t, IsFailureCode(err, CodeStoreWriteFailed))
	})

	t.Run("any failure fails the batch", func(t *testing.T) {
		store := NewMemoryStore()
		store.FailOn(KindEtiquette, errors.New("boom"))

		created, err := Concurrent{Limit: 2}.CreateAll(context.Background(), store, etiquetteRequests(4))

		assert.Nil(t, created)
		assert.True(t, IsFailureCode(err, CodeStoreWriteFailed))
		assert.Contains(t, err.Error(), "boom")
	})
}
