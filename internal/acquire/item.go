package acquire

import (
	"github.com/wonny/lmed/internal/instrument"
)

// Item is one unit of acquisition work: an outright instrument or a spread,
// identified by its provider RIC.
type Item struct {
	RIC         string
	Description string
}

// ItemsFromUniverse builds one item per universe instrument, in order.
func ItemsFromUniverse(u instrument.Universe) []Item {
	items := make([]Item, 0, u.Len())
	for _, ins := range u.Instruments {
		items = append(items, Item{
			RIC:         ins.RIC(),
			Description: ins.Name(),
		})
	}
	return items
}

// ItemsFromSpreads builds one item per spread combination, in order.
func ItemsFromSpreads(spreads []instrument.Spread) []Item {
	items := make([]Item, 0, len(spreads))
	for _, s := range spreads {
		items = append(items, Item{
			RIC:         s.RIC(),
			Description: s.Description(),
		})
	}
	return items
}
