package catalog

type Category string

const (
	CategorySoft Category = "soft"
	CategoryHard Category = "hard"
)

// Channel names one of the two stock pools a product can be reserved
// from. A product sold on both channels carries ChannelBoth.
type Channel string

const (
	ChannelToday   Channel = "today"
	ChannelAdvance Channel = "advance"
	ChannelBoth    Channel = "both"
)

func ValidReservationChannel(c Channel) bool {
	return c == ChannelToday || c == ChannelAdvance
}

// Product is one sellable item. TotalStock is recomputed from the two
// pools on every stock mutation. IsAvailable is a stored flag: stock
// mutations force it to TotalStock>0, while the admin toggle flips it
// independently of stock.
type Product struct {
	ID           int      `json:"id"`
	Name         string   `json:"name"`
	Price        int      `json:"price"` // yen
	Image        string   `json:"image"`
	Category     Category `json:"category"`
	Channel      Channel  `json:"reservation_type"`
	TodayStock   int      `json:"today_stock"`
	AdvanceStock int      `json:"advance_stock"`
	TotalStock   int      `json:"stock"`
	IsAvailable  bool     `json:"is_available"`
}

// SellsOn reports whether the product is offered on channel c.
func (p Product) SellsOn(c Channel) bool {
	return p.Channel == c || p.Channel == ChannelBoth
}

// RawStock returns the stock pool backing channel c, before any cart
// quantities are subtracted.
func (p Product) RawStock(c Channel) int {
	if c == ChannelToday {
		return p.TodayStock
	}
	return p.AdvanceStock
}

func (p *Product) setChannelStock(c Channel, n int) {
	if c == ChannelToday {
		p.TodayStock = n
	} else {
		p.AdvanceStock = n
	}
	p.TotalStock = p.TodayStock + p.AdvanceStock
	// Stock-driven updates rewrite the flag, clobbering any manual
	// stop-selling toggle. Kept from the source system.
	p.IsAvailable = p.TotalStock > 0
}
