package tui

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/gmwallet/gm/internal/tui/component"
	"github.com/gmwallet/gm/internal/tui/events"
	"github.com/gmwallet/gm/internal/tui/widgets"
)

type sendField int

const (
	sendHeading sendField = iota
	sendTo
	sendAmount
	sendConfirm
	sendError
	sendNetwork
)

var sendFields = []sendField{sendHeading, sendTo, sendAmount, sendConfirm, sendError, sendNetwork}

func (f sendField) Field() (widgets.Field, error) {
	switch f {
	case sendHeading:
		return &widgets.Heading{Text: "Send"}, nil
	case sendTo:
		return &widgets.InputBox{Label: "To", EmptyText: "0x..."}, nil
	case sendAmount:
		return &widgets.InputBox{Label: "Amount", EmptyText: "0.0", Currency: "ETH"}, nil
	case sendConfirm:
		return &widgets.Button{Label: "Confirm"}, nil
	case sendError:
		return &widgets.ErrorText{}, nil
	case sendNetwork:
		return &widgets.DisplayText{}, nil
	}

	return nil, fmt.Errorf("unknown send field %d", int(f))
}

var (
	errBadAddress = errors.New("recipient must be a 0x-prefixed 20-byte hex address")
	errBadAmount  = errors.New("amount must be a positive number")

	addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
	amountPattern  = regexp.MustCompile(`^[0-9]+(\.[0-9]+)?$`)
)

func validateAddress(s string) error {
	if !addressPattern.MatchString(s) {
		return errBadAddress
	}

	return nil
}

func validateAmount(s string) error {
	if !amountPattern.MatchString(s) {
		return errBadAmount
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v <= 0 {
		return errBadAmount
	}

	return nil
}

// SendPage collects a recipient and an amount and publishes the transfer
// request once confirmed.
type SendPage struct {
	form    *widgets.Form[sendField]
	summary *widgets.TextPopup
}

func NewSendPage() (*SendPage, error) {
	form, err := widgets.NewForm(sendFields, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build send form: %w", err)
	}

	return &SendPage{form: form, summary: widgets.NewTextPopup("Transfer")}, nil
}

func (p *SendPage) Name() string {
	return "Send"
}

func (p *SendPage) Hints() []string {
	return []string{"<Tab> Next", "<Enter> Confirm", "<Esc> Back"}
}

// Reload updates the unit and network note after a testnet toggle.
func (p *SendPage) Reload(shared *component.SharedState) error {
	if shared.TestnetMode {
		p.form.SetCurrency(sendAmount, "SepoliaETH")
		p.form.SetText(sendNetwork, "Testnet mode: transfers use the Sepolia network")
	} else {
		p.form.SetCurrency(sendAmount, "ETH")
		p.form.SetText(sendNetwork, "")
	}

	return nil
}

func (p *SendPage) HandleEvent(_ context.Context, ev events.Event, tx chan<- events.Event) (component.HandleResult, error) {
	if result, ok := p.summary.HandleEvent(ev); ok {
		return result, nil
	}

	var result component.HandleResult
	err := p.form.HandleEvent(ev, func(id sendField, f *widgets.Form[sendField]) error {
		if id != sendConfirm {
			return nil
		}
		p.confirm(f, tx)
		return nil
	})
	if err != nil {
		return result, err
	}

	if p.summary.IsShown() || p.form.IsSomePopupOpen() {
		result.EscIgnores = 1
	}

	return result, nil
}

func (p *SendPage) confirm(f *widgets.Form[sendField], tx chan<- events.Event) {
	to := strings.TrimSpace(f.Text(sendTo))
	amount := strings.TrimSpace(f.Text(sendAmount))

	if err := validateAddress(to); err != nil {
		f.SetText(sendError, err.Error())
		return
	}
	if err := validateAmount(amount); err != nil {
		f.SetText(sendError, err.Error())
		return
	}

	unit, _ := f.Currency(sendAmount)
	req := events.TransferRequested{To: to, Amount: amount, Unit: unit}
	if !events.TrySend(tx, req) {
		f.SetText(sendError, "transfer queue is busy, try again")
		return
	}

	f.SetText(sendError, "")
	f.SetText(sendTo, "")
	f.SetText(sendAmount, "")
	p.summary.SetText(fmt.Sprintf("Transfer of %s %s to %s requested.", amount, unit, to))
}

func (p *SendPage) Render(screen tcell.Screen, area component.Rect, shared *component.SharedState) component.Rect {
	inner := area.Margin(1, 0)
	p.form.Render(screen, inner, shared.Theme)
	p.summary.Render(screen, area, shared.Theme)

	return area
}
