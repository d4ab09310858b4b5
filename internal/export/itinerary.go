// Package export renders a printable itinerary document from the point
// collection.
package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"

	"bigtrip/internal/catalog"
	"bigtrip/internal/domain/models"
	"bigtrip/internal/trip"
	"bigtrip/internal/utils"
)

const layoutItineraryTime = "02 Jan 2006 15:04"

// Itinerary produces the PDF bytes and a suggested filename for the given
// collection. Points are listed in day order with destination, dates, offers
// and prices, headed by the trip summary.
func Itinerary(points []models.Point, destinations *catalog.Destinations, offers *catalog.Offers) ([]byte, string, error) {
	summary := trip.Summarize(points, destinations, offers)
	ordered := trip.SortPoints(points, trip.SortDay)

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Trip Itinerary", false)
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, "TRIP ITINERARY")
	pdf.Ln(12)

	pdf.SetFont("Helvetica", "", 12)
	for _, line := range []string{
		fmt.Sprintf("Route    : %s", safe(summary.Route, "-")),
		fmt.Sprintf("Dates    : %s", safe(summary.Duration, "-")),
		fmt.Sprintf("Total    : %d", summary.Cost),
	} {
		pdf.Cell(0, 7, tr(line))
		pdf.Ln(7)
	}
	pdf.Ln(4)

	for i, point := range ordered {
		name := point.Destination
		if destination, err := destinations.ByID(point.Destination); err == nil {
			name = destination.Name
		}

		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, tr(fmt.Sprintf("%d. %s — %s", i+1, utils.CapitalizeFirst(string(point.Type)), name)))
		pdf.Ln(7)

		pdf.SetFont("Helvetica", "", 11)
		pdf.Cell(0, 6, fmt.Sprintf("    %s -> %s", point.DateFrom.Format(layoutItineraryTime), point.DateTo.Format(layoutItineraryTime)))
		pdf.Ln(6)
		pdf.Cell(0, 6, fmt.Sprintf("    Base price: %d", point.BasePrice))
		pdf.Ln(6)
		for _, offer := range offers.Checked(point) {
			pdf.Cell(0, 6, fmt.Sprintf("    + %s (%d)", offer.Title, offer.Price))
			pdf.Ln(6)
		}
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, "", fmt.Errorf("render itinerary pdf: %w", err)
	}

	filename := fmt.Sprintf("ITINERARY_%s.pdf", time.Now().Format("20060102"))
	return buf.Bytes(), filename, nil
}

func safe(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
