package domain

import "errors"

var (
	// ErrAlreadyInCart is a notice, not a failure: the cart is unchanged.
	ErrAlreadyInCart = errors.New("item already in cart")
	// ErrStateCorrupt marks a stored record that could not be decoded.
	ErrStateCorrupt = errors.New("stored state is corrupt")
	// ErrSlotEmpty is returned by slot stores when nothing is stored under a key.
	ErrSlotEmpty = errors.New("slot is empty")
)
