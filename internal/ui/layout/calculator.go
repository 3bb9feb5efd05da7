// Package layout provides pure functions for UI dimension calculations.
package layout

// MinContentHeight is the smallest playlist panel height worth drawing.
const MinContentHeight = 5

// PopupMargin is the horizontal space kept around popups on each side.
const PopupMargin = 4

// MaxPopupWidth caps popup width on wide terminals.
const MaxPopupWidth = 80

// ContentOpts contains the parameters needed to calculate content height.
type ContentOpts struct {
	PlayerBarHeight int
	JobBarHeight    int // 0 if no active jobs
	ErrorLines      int // 0 if no error is shown
}

// ContentHeight calculates the height left for the playlist panel: the
// terminal height minus the player bar, job bar and error line.
func ContentHeight(windowHeight int, opts ContentOpts) int {
	height := windowHeight
	height -= opts.PlayerBarHeight
	height -= opts.JobBarHeight
	height -= opts.ErrorLines
	return max(height, MinContentHeight)
}

// PopupWidth returns the width available to a popup.
func PopupWidth(windowWidth int) int {
	return max(min(windowWidth-2*PopupMargin, MaxPopupWidth), 20)
}

// PopupHeight returns the height available to a popup.
func PopupHeight(windowHeight int) int {
	return max(windowHeight-4, 5)
}
