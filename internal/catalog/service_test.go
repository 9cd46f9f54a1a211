package catalog

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// memRepo is a Repository over a plain slice, mirroring the
// load-transform-save contract of the Redis-backed one.
type memRepo struct {
	products []Product
	saves    int
}

func (m *memRepo) Load(ctx context.Context) ([]Product, error) {
	out := make([]Product, len(m.products))
	copy(out, m.products)
	return out, nil
}

func (m *memRepo) Save(ctx context.Context, products []Product) error {
	m.products = products
	m.saves++
	return nil
}

func fixtureRepo() *memRepo {
	return &memRepo{products: []Product{
		{ID: 1, Name: "くるみぱん", Price: 173, Image: "img", Category: CategorySoft,
			Channel: ChannelBoth, TodayStock: 2, AdvanceStock: 0, TotalStock: 2, IsAvailable: true},
		{ID: 2, Name: "バゲット", Price: 313, Image: "img", Category: CategoryHard,
			Channel: ChannelAdvance, TodayStock: 0, AdvanceStock: 5, TotalStock: 5, IsAvailable: true},
	}}
}

func TestUpdateChannelStockRecomputesTotals(t *testing.T) {
	repo := fixtureRepo()
	svc := &Service{Repo: repo}

	p, err := svc.UpdateChannelStock(context.Background(), 1, ChannelToday, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, p.TodayStock)
	assert.Equal(t, 0, p.TotalStock)
	assert.False(t, p.IsAvailable)
	assert.Equal(t, 1, repo.saves)
}

func TestUpdateChannelStockOverwritesManualToggle(t *testing.T) {
	repo := fixtureRepo()
	svc := &Service{Repo: repo}

	p, err := svc.ToggleAvailability(context.Background(), 1)
	require.NoError(t, err)
	require.False(t, p.IsAvailable)

	// Any stock write flips the flag back on while stock remains.
	p, err = svc.UpdateChannelStock(context.Background(), 1, ChannelAdvance, 4)
	require.NoError(t, err)
	assert.True(t, p.IsAvailable)
	assert.Equal(t, 6, p.TotalStock)
}

func TestUpdateChannelStockRejectsNegative(t *testing.T) {
	repo := fixtureRepo()
	svc := &Service{Repo: repo}

	_, err := svc.UpdateChannelStock(context.Background(), 1, ChannelToday, -1)
	assert.ErrorIs(t, err, ErrNegativeStock)
	assert.Zero(t, repo.saves)
}

func TestUpdateChannelStockRejectsBothChannel(t *testing.T) {
	svc := &Service{Repo: fixtureRepo()}
	_, err := svc.UpdateChannelStock(context.Background(), 1, ChannelBoth, 3)
	assert.ErrorIs(t, err, ErrBadChannel)
}

func TestToggleAvailabilityLeavesStockAlone(t *testing.T) {
	repo := fixtureRepo()
	svc := &Service{Repo: repo}

	p, err := svc.ToggleAvailability(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, p.IsAvailable)
	assert.Equal(t, 5, p.TotalStock)

	p, err = svc.ToggleAvailability(context.Background(), 2)
	require.NoError(t, err)
	assert.True(t, p.IsAvailable)
}

func TestUpdatePriceDoesNotValidate(t *testing.T) {
	svc := &Service{Repo: fixtureRepo()}

	p, err := svc.UpdatePrice(context.Background(), 1, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Price)
}

func TestMutateUnknownProduct(t *testing.T) {
	svc := &Service{Repo: fixtureRepo()}
	_, err := svc.UpdatePrice(context.Background(), 99, 100)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaveProductValidates(t *testing.T) {
	repo := fixtureRepo()
	svc := &Service{Repo: repo}

	_, fieldErrs, err := svc.SaveProduct(context.Background(), Product{ID: 1})
	require.NoError(t, err)
	for _, field := range []string{"name", "price", "category", "reservation_type", "image"} {
		assert.Contains(t, fieldErrs, field)
	}
	assert.Zero(t, repo.saves)
}

func TestSaveProductRecomputesDerivedFields(t *testing.T) {
	repo := fixtureRepo()
	svc := &Service{Repo: repo}

	p, fieldErrs, err := svc.SaveProduct(context.Background(), Product{
		ID: 1, Name: "くるみぱん", Price: 180, Image: "img",
		Category: CategorySoft, Channel: ChannelToday,
		TodayStock: 3, AdvanceStock: 1,
		TotalStock: 99, IsAvailable: false, // both overwritten on save
	})
	require.NoError(t, err)
	require.Empty(t, fieldErrs)
	assert.Equal(t, 4, p.TotalStock)
	assert.True(t, p.IsAvailable)
	assert.Equal(t, 180, p.Price)
}

func TestDefaultProducts(t *testing.T) {
	products := DefaultProducts()
	require.Len(t, products, 31)

	seen := map[int]bool{}
	for _, p := range products {
		assert.False(t, seen[p.ID], "duplicate id %d", p.ID)
		seen[p.ID] = true
		assert.NotEmpty(t, p.Name)
		assert.Greater(t, p.Price, 0)
		assert.Equal(t, p.TodayStock+p.AdvanceStock, p.TotalStock)
		assert.Equal(t, p.TotalStock > 0, p.IsAvailable)
	}
}

func TestAlerts(t *testing.T) {
	products := []Product{
		{ID: 1, TodayStock: 0, AdvanceStock: 5},
		{ID: 2, TodayStock: 2, AdvanceStock: 9},
		{ID: 3, TodayStock: 8, AdvanceStock: 8},
	}

	soldOut := SoldOutToday(products)
	require.Len(t, soldOut, 1)
	assert.Equal(t, 1, soldOut[0].ID)

	low := LowStock(products)
	require.Len(t, low, 1)
	assert.Equal(t, 2, low[0].ID)
}
