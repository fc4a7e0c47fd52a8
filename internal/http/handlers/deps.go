package handlers

import (
	"revivedgoods/internal/services"
	"revivedgoods/internal/ws"
)

type Deps struct {
	Sessions *services.Sessions

	CatalogHandler  *CatalogHandler
	ProductHandler  *ProductHandler
	CartHandler     *CartHandler
	WishlistHandler *WishlistHandler
	ListingHandler  *ListingHandler
	APIHandler      *APIHandler
	SocketHandler   *SocketHandler
}

func NewDeps(sessions *services.Sessions, hub *ws.Hub) *Deps {
	return &Deps{
		Sessions:        sessions,
		CatalogHandler:  &CatalogHandler{},
		ProductHandler:  &ProductHandler{},
		CartHandler:     &CartHandler{},
		WishlistHandler: &WishlistHandler{},
		ListingHandler:  &ListingHandler{},
		APIHandler:      &APIHandler{},
		SocketHandler:   &SocketHandler{Hub: hub},
	}
}
