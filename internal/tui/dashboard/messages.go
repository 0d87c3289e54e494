package dashboard

import (
	"github.com/alexisbeaulieu97/tradeboard/internal/nav"
)

// Page determines which screen to render
type Page int

const (
	PageTrades Page = iota
	PageOverview
	PageCandles
)

var pages = []Page{PageTrades, PageOverview, PageCandles}

// Route returns the navigation route of the page.
func (p Page) Route() string {
	switch p {
	case PageOverview:
		return nav.RouteTableOverview
	case PageCandles:
		return nav.RouteCandleSticks
	default:
		return nav.RouteHome
	}
}

// readyMsg marks the first frame as shown.
type readyMsg struct{}

// drainMsg runs work deferred by table callbacks.
type drainMsg struct{}

// chartLoadedMsg ends the loading state of a symbol's chart.
type chartLoadedMsg struct {
	Symbol string
}

// ErrorMsg shows a dismissible banner.
type ErrorMsg struct {
	Message string
}

// ClearErrorMsg hides the banner.
type ClearErrorMsg struct{}
