package defaults

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/club-invaders/fanclub/internal/cart"
)

func TestMerchItemsAreStable(t *testing.T) {
	items := MerchItems()
	require.Len(t, items, 4)
	assert.Equal(t, "Invaders Jersey", items[0].Name)
	assert.Equal(t, "Away Kit", items[3].Name)

	for _, item := range items {
		assert.NotZero(t, item.ID)
		assert.NotZero(t, cart.ParsePrice(item.Price), "default price must be computable: %s", item.Name)
		assert.NotZero(t, cart.ParsePrice(item.KidsPrice))
		assert.NotEmpty(t, item.Image)
	}

	// Callers may mutate the returned slice without corrupting later reads.
	items[0].Name = "changed"
	assert.Equal(t, "Invaders Jersey", MerchItems()[0].Name)
}

func TestHeroesRoster(t *testing.T) {
	heroes := Heroes()
	require.Len(t, heroes, 12)
	for _, h := range heroes {
		assert.NotEmpty(t, h.Name)
		assert.NotEmpty(t, h.Position)
	}
	assert.Equal(t, "Goalkeeper", heroes[0].Position)
	assert.Equal(t, "Substitute", heroes[11].Position)
}

func TestBankTransferInfoComplete(t *testing.T) {
	info := BankTransferInfo()
	assert.NotEmpty(t, info.BankName)
	assert.NotEmpty(t, info.AccountName)
	assert.NotEmpty(t, info.AccountNumber)
}

func TestSizeGuideMatchesSelectableSizes(t *testing.T) {
	guide := SizeGuide()
	require.Len(t, guide.Adult, 6)
	require.Len(t, guide.Kids, 6)

	for i, size := range cart.SizesFor(cart.CategoryAdult) {
		assert.Equal(t, size, guide.Adult[i].Size)
	}
	for i, size := range cart.SizesFor(cart.CategoryKids) {
		assert.Equal(t, size, guide.Kids[i].Size)
		assert.NotEmpty(t, guide.Kids[i].Age)
	}
}
