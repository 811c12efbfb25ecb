package payment

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCondenseItemsTruncatesName(t *testing.T) {
	items := []checkoutItem{
		{ID: 1, Name: strings.Repeat("x", 40), Quantity: 2, Price: 9.99},
		{ID: 2, Name: "short", Quantity: 1, Price: 4.5},
	}

	condensed := condenseItems(items)

	assert.Len(t, condensed, 2)
	assert.Len(t, condensed[0].Name, 30)
	assert.Equal(t, 2, condensed[0].Qty)
	assert.Equal(t, "short", condensed[1].Name)
}

func TestCondenseShipping(t *testing.T) {
	addr := checkoutAddress{
		FirstName: "Jane",
		LastName:  "Doe",
		Address:   strings.Repeat("a", 80),
		Country:   "Kenya",
	}

	condensed := condenseShipping(addr)

	assert.Equal(t, "Jane Doe", condensed.Name)
	assert.Len(t, condensed.Address, 50)
	assert.Equal(t, "Kenya", condensed.Country)
}

func TestTruncateMultibyte(t *testing.T) {
	assert.Equal(t, "héllo", truncate("héllo", 10))
	assert.Equal(t, "hél", truncate("héllo", 3))
}

func TestToMinorUnits(t *testing.T) {
	assert.Equal(t, int64(2000), toMinorUnits(20.00))
	assert.Equal(t, int64(435), toMinorUnits(4.35))
	assert.Equal(t, int64(1), toMinorUnits(0.005))
}

func TestFitsMetadata(t *testing.T) {
	assert.True(t, fitsMetadata(condensedShipping{Name: "Jane Doe", Country: "BE"}))

	var huge []condensedItem
	for i := 0; i < 40; i++ {
		huge = append(huge, condensedItem{ID: uint(i), Name: strings.Repeat("n", 30), Qty: 1, Price: 10})
	}
	assert.False(t, fitsMetadata(huge))
}
