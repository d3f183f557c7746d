// Package counter serves the click counter fragments.
//
// GET on the read route renders the whole "counter" block; POST on the
// increment route bumps the shared store and renders only the "count" block,
// which is the numeral the page swaps in place.
package counter
