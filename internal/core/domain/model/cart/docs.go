// Package cart holds the buyer's in-progress order.
//
// Cart is an immutable value: every operation returns a new Cart and leaves the receiver
// untouched, so a snapshot taken at checkout is never affected by later edits. Operations on
// unknown line ids are no-ops. Store wraps a Cart for the single place in the application that
// owns it and releases image previews whenever images leave the cart.
package cart
