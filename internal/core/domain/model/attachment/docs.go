// Package attachment manages the photos a buyer attaches to a cart line.
//
// An Image owns a preview handle minted by a Previews implementation. Handles are scarce and are
// never reclaimed implicitly: the Manager revokes them when an image is removed, when its line is
// dropped, or when the cart is cleared. Revoking twice is a no-op.
package attachment
