// Package scroll computes which slice of a long option list a renderer has to
// draw, and where to scroll to bring an option into view.
//
// Calculator holds the measured dimensions (uniform item height and viewport
// height) and turns a scroll offset into a Range. Panel drives a Calculator
// through the two-phase cycle a renderer needs: heights are only known after a
// representative item has been drawn, so every items change hands out a Ticket
// that the renderer redeems once layout has happened. Tickets from an older
// items change are rejected.
//
// Heights are in whatever unit the renderer measures: pixels in a browser,
// rows in a terminal.
package scroll
