package tui

// UI layout constants

const (
	// Modal dimensions
	ModalWidthMargin       = 6  // m.width - 6
	ModalHeightMargin      = 3  // m.height - 3
	ModalWidthMarginNarrow = 10 // focused modals
	ModalHeightMarginMed   = 4

	// BrowserChromeLines is title, blank line, column header, footer and status bar
	BrowserChromeLines = 7

	// Modal content calculations
	ModalOverheadLines = 6 // Title (2) + padding (2) + border (2)
	ModalFooterLines   = 2 // Footer + blank line

	// MaxFooterMessage is the longest status/error text shown in the footer
	MaxFooterMessage = 100

	// HistoryLoadLimit is how many history rows the history modal loads
	HistoryLoadLimit = 200

	// Sample input modal width
	SampleModalWidth = 44
)
