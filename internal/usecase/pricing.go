package usecase

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cuidaelmango/backend/internal/domain"
)

// secondUnitPattern recognizes the two phrasings of the second-unit
// discount used on store listings: "2DO AL 70%" and "SEGUNDO AL 70%".
var secondUnitPattern = regexp.MustCompile(`(?i)(?:2DO|SEGUNDO)\s+AL\s+(\d+)\s*%`)

// regularPriceMarker is the literal promo text meaning "no promotion"
const regularPriceMarker = "precio regular"

// PriceLine computes the total charged for one cart line and the
// effective unit price of a discounted unit.
//
// A "2do al X%" promo charges full price for the first unit of each
// pair and X% of the unit price for the second; units are paired up
// and any leftover unit pays full price. A single unit never gets the
// discount. Any other non-empty promo text is taken to mean the listed
// price already includes the discount, so no adjustment is applied.
func PriceLine(unitPrice float64, promoText string, quantity int) (total, effectiveUnit float64, err error) {
	if unitPrice <= 0 {
		return 0, 0, domain.ErrInvalidPrice
	}
	if quantity < 1 {
		return 0, 0, domain.ErrInvalidQuantity
	}

	promo := strings.TrimSpace(promoText)
	if promo == "" || strings.EqualFold(promo, regularPriceMarker) {
		return unitPrice * float64(quantity), unitPrice, nil
	}

	if m := secondUnitPattern.FindStringSubmatch(promo); m != nil {
		pct, convErr := strconv.Atoi(m[1])
		if convErr == nil {
			discounted := unitPrice * float64(pct) / 100

			if quantity == 1 {
				// Only one unit: the discount never applies
				return unitPrice, unitPrice, nil
			}

			pairs := quantity / 2
			remainder := quantity % 2
			total := float64(pairs)*(unitPrice+discounted) + float64(remainder)*unitPrice
			return total, discounted, nil
		}
	}

	// Unrecognized promo: assume the listed price is already discounted
	return unitPrice * float64(quantity), unitPrice, nil
}

// HasPromo reports whether the promo text denotes an actual promotion
// rather than the regular-price marker.
func HasPromo(promoText string) bool {
	promo := strings.TrimSpace(promoText)
	return promo != "" && !strings.EqualFold(promo, regularPriceMarker)
}
