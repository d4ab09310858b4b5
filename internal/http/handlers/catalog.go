package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bigtrip/internal/repositories"
)

// CatalogHandler serves the immutable destination and offer catalogs.
type CatalogHandler struct {
	Destinations repositories.DestinationRepository
	Offers       repositories.OfferRepository
}

// GET /big-trip/destinations
func (h CatalogHandler) ListDestinations(c *gin.Context) {
	records, err := h.Destinations.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}

// GET /big-trip/offers
func (h CatalogHandler) ListOffers(c *gin.Context) {
	records, err := h.Offers.List(c.Request.Context())
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, records)
}
