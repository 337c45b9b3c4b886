package cart

import (
	"testing"

	"github.com/scentalux/storefront/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryRepo struct {
	nextID uint
	items  []model.CartItem
}

func (r *memoryRepo) Items(username string) ([]model.CartItem, error) {
	var out []model.CartItem
	for _, item := range r.items {
		if item.Username == username {
			out = append(out, item)
		}
	}
	return out, nil
}

func (r *memoryRepo) Get(username string, perfumeID uint) (*model.CartItem, error) {
	for _, item := range r.items {
		if item.Username == username && item.PerfumeID == perfumeID {
			found := item
			return &found, nil
		}
	}
	return nil, nil
}

func (r *memoryRepo) Save(item *model.CartItem) error {
	for i, existing := range r.items {
		if existing.ID == item.ID && item.ID != 0 {
			r.items[i] = *item
			return nil
		}
	}
	r.nextID++
	item.ID = r.nextID
	r.items = append(r.items, *item)
	return nil
}

func (r *memoryRepo) Delete(username string, perfumeID uint) error {
	for i, item := range r.items {
		if item.Username == username && item.PerfumeID == perfumeID {
			r.items = append(r.items[:i], r.items[i+1:]...)
			return nil
		}
	}
	return nil
}

func (r *memoryRepo) DeleteAll(username string) error {
	var kept []model.CartItem
	for _, item := range r.items {
		if item.Username != username {
			kept = append(kept, item)
		}
	}
	r.items = kept
	return nil
}

type stubStock map[uint]model.Perfume

func (s stubStock) Get(id uint) (model.Perfume, bool) {
	p, ok := s[id]
	return p, ok
}

func newTestCart(stock stubStock) (*Store, *memoryRepo) {
	repo := &memoryRepo{}
	return NewStore(repo, stock), repo
}

func TestStore_Add(t *testing.T) {
	stock := stubStock{1: {ID: 1, Name: "Noir", Stock: 3}}

	t.Run("adds and merges lines", func(t *testing.T) {
		store, _ := newTestCart(stock)

		require.NoError(t, store.Add("ana", 1, 2))
		items, err := store.Items("ana")
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)

		require.NoError(t, store.Add("ana", 1, 1))
		items, _ = store.Items("ana")
		assert.Equal(t, 3, items[0].Quantity)
	})

	t.Run("rejects exceeding stock and leaves the cart unchanged", func(t *testing.T) {
		store, _ := newTestCart(stock)

		require.NoError(t, store.Add("ana", 1, 2))
		err := store.Add("ana", 1, 2)
		assert.ErrorIs(t, err, ErrInsufficientStock)

		items, _ := store.Items("ana")
		require.Len(t, items, 1)
		assert.Equal(t, 2, items[0].Quantity)
	})

	t.Run("unknown perfume", func(t *testing.T) {
		store, _ := newTestCart(stock)
		assert.ErrorIs(t, store.Add("ana", 99, 1), ErrUnknownPerfume)
	})

	t.Run("non-positive quantity defaults to one", func(t *testing.T) {
		store, _ := newTestCart(stock)
		require.NoError(t, store.Add("ana", 1, 0))
		items, _ := store.Items("ana")
		require.Len(t, items, 1)
		assert.Equal(t, 1, items[0].Quantity)
	})
}

func TestStore_SetQuantity(t *testing.T) {
	stock := stubStock{1: {ID: 1, Name: "Noir", Stock: 3}}

	t.Run("zero or below removes the line", func(t *testing.T) {
		store, _ := newTestCart(stock)
		require.NoError(t, store.Add("ana", 1, 2))

		require.NoError(t, store.SetQuantity("ana", 1, 0))
		items, _ := store.Items("ana")
		assert.Empty(t, items)
	})

	t.Run("quantity above stock is corrected down, not rejected", func(t *testing.T) {
		store, _ := newTestCart(stock)
		require.NoError(t, store.Add("ana", 1, 1))

		require.NoError(t, store.SetQuantity("ana", 1, 10))
		items, _ := store.Items("ana")
		require.Len(t, items, 1)
		assert.Equal(t, 3, items[0].Quantity)
	})
}

func TestStore_IdentityScoping(t *testing.T) {
	stock := stubStock{1: {ID: 1, Stock: 5}, 2: {ID: 2, Stock: 5}}
	store, _ := newTestCart(stock)

	require.NoError(t, store.Add("ana", 1, 2))
	require.NoError(t, store.Add("luis", 1, 1))
	require.NoError(t, store.Add("luis", 2, 4))

	anaCount, err := store.Count("ana")
	require.NoError(t, err)
	assert.Equal(t, 2, anaCount)

	luisCount, _ := store.Count("luis")
	assert.Equal(t, 5, luisCount)

	// logout clears only that identity's lines
	require.NoError(t, store.Clear("luis"))
	luisItems, _ := store.Items("luis")
	assert.Empty(t, luisItems)
	anaItems, _ := store.Items("ana")
	assert.Len(t, anaItems, 1)
}
