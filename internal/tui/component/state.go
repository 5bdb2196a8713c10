package component

import (
	"github.com/gmwallet/gm/internal/tui/events"
	"github.com/gmwallet/gm/internal/tui/theme"
)

// SharedState is the application snapshot read by composite widgets when
// rendering. It is only mutated on the UI goroutine.
type SharedState struct {
	Theme *theme.Theme

	CurrentAccount string
	EthPrice       string
	// Online is nil until the first price fetch settles.
	Online *bool

	TestnetMode         bool
	Currency            string
	AlchemyKeyAvailable bool

	Assets       []events.Asset
	AssetsLoaded bool
	AssetsError  string

	PendingTransfers []events.TransferRequested
}

// NewSharedState returns a state with the default theme.
func NewSharedState() *SharedState {
	return &SharedState{Theme: theme.Dark(), Currency: "USD"}
}

// Apply folds a background event into the snapshot and reports whether
// anything changed.
func (s *SharedState) Apply(ev events.Event) bool {
	switch e := ev.(type) {
	case events.PriceUpdate:
		online := true
		s.EthPrice, s.Online = e.Price, &online
	case events.PriceError:
		offline := false
		s.Online = &offline
	case events.AccountChange:
		if s.CurrentAccount == e.Address {
			return false
		}
		s.CurrentAccount = e.Address
		s.Assets, s.AssetsLoaded, s.AssetsError = nil, false, ""
	case events.AssetsUpdate:
		s.Assets, s.AssetsLoaded, s.AssetsError = e.Assets, true, ""
	case events.AssetsUpdateError:
		s.AssetsError = e.Err.Error()
	case events.TransferRequested:
		s.PendingTransfers = append(s.PendingTransfers, e)
	default:
		return false
	}

	return true
}

// PriceLabel is the ETH price line shown in the sidebar.
func (s *SharedState) PriceLabel() string {
	if s.EthPrice != "" {
		return s.EthPrice
	}
	if s.Online != nil && !*s.Online {
		return "Unable to fetch"
	}

	return "Loading..."
}

// Portfolio sums the USD value of all assets. ok is false until assets
// have been loaded.
func (s *SharedState) Portfolio() (total float64, ok bool) {
	if !s.AssetsLoaded {
		return 0, false
	}
	for _, a := range s.Assets {
		total += a.USDValue()
	}

	return total, true
}

// ShowPortfolio mirrors the conditions under which a portfolio can be
// computed: mainnet, an account, and an API key for the asset source.
func (s *SharedState) ShowPortfolio() bool {
	return !s.TestnetMode && s.CurrentAccount != "" && s.AlchemyKeyAvailable
}
