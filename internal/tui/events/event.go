// Package events defines everything the TUI event loop delivers to pages:
// key presses read from the terminal and results produced by background
// work. Events are handled one at a time on the UI goroutine.
package events

import (
	"time"

	"github.com/gdamore/tcell/v2"
)

// Event is a closed set; every variant lives in this package.
type Event interface {
	isEvent()
}

// Input is a key press.
type Input struct {
	Key *tcell.EventKey
}

// ConfigUpdate signals that persisted settings changed.
type ConfigUpdate struct{}

// PriceUpdate carries a freshly fetched ETH price, already formatted.
type PriceUpdate struct {
	Price string
}

// PriceError reports that the price source is unreachable.
type PriceError struct {
	Err error
}

// AccountChange switches the active account.
type AccountChange struct {
	Address string
}

// Asset is one token balance of the active account.
type Asset struct {
	Symbol   string
	Balance  float64
	USDPrice float64
}

// USDValue returns the balance valued in USD.
func (a Asset) USDValue() float64 {
	return a.Balance * a.USDPrice
}

// AssetsUpdate replaces the asset list of the active account.
type AssetsUpdate struct {
	Assets []Asset
}

// AssetsUpdateError reports a failed asset refresh.
type AssetsUpdateError struct {
	Err error
}

// TransferRequested is published when the user confirms a transfer.
type TransferRequested struct {
	To     string
	Amount string
	Unit   string
}

// Tick is emitted periodically by the Ticker source.
type Tick struct {
	At time.Time
}

func (Input) isEvent()             {}
func (ConfigUpdate) isEvent()      {}
func (PriceUpdate) isEvent()       {}
func (PriceError) isEvent()        {}
func (AccountChange) isEvent()     {}
func (AssetsUpdate) isEvent()      {}
func (AssetsUpdateError) isEvent() {}
func (TransferRequested) isEvent() {}
func (Tick) isEvent()              {}
