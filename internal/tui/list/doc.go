// Package listview provides the Bubble Tea picker that drives an items list.
//
// The picker owns no selection state. It decodes keys into items list
// operations and draws the filtered options through a scroll.Panel:
//   - Typing filters the list and re-marks the selected or first option
//   - Up/down move the mark and scroll it into view; past either end the
//     add-tag row is highlighted when a tag is offered
//   - Enter toggles the marked option or adds the search term as a tag
//   - Backspace on an empty search removes the most recent selection
//
// Layout follows the panel's two-phase protocol: every change to the filtered
// sequence issues a ticket, and the ticket is redeemed in the update that
// follows the next draw with the measured row height. Tickets overtaken by a
// later change are dropped.
package listview
