package payment

import (
	"encoding/json"
	"math"
)

// Stripe rejects metadata values longer than 500 characters.
const metadataValueLimit = 500

type condensedItem struct {
	ID    uint    `json:"id"`
	Name  string  `json:"name"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
}

type condensedShipping struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Country string `json:"country"`
}

type checkoutItem struct {
	ID       uint    `json:"id"`
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type checkoutAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address   string `json:"address"`
	Country   string `json:"country"`
}

func condenseItems(items []checkoutItem) []condensedItem {
	out := make([]condensedItem, 0, len(items))
	for _, item := range items {
		out = append(out, condensedItem{
			ID:    item.ID,
			Name:  truncate(item.Name, 30),
			Qty:   item.Quantity,
			Price: item.Price,
		})
	}
	return out
}

func condenseShipping(addr checkoutAddress) condensedShipping {
	return condensedShipping{
		Name:    addr.FirstName + " " + addr.LastName,
		Address: truncate(addr.Address, 50),
		Country: addr.Country,
	}
}

// fitsMetadata checks the serialized value against the per-value limit.
func fitsMetadata(v interface{}) bool {
	b, err := json.Marshal(v)
	return err == nil && len(b) <= metadataValueLimit
}

// truncate cuts s to at most n runes without splitting a multi-byte character.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

// toMinorUnits converts a decimal amount to integer cents.
func toMinorUnits(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
