package utils

import "shiptix/internal/domain/models"

// farePercent is the share of the class price paid per passenger category.
var farePercent = map[models.PassengerCategory]int64{
	models.PassengerAdult:  100,
	models.PassengerSenior: 100,
	models.PassengerChild:  100,
	models.PassengerInfant: 0,
}

// ComputeFare returns the total for a party travelling on one fare class.
func ComputeFare(unitPrice int64, counts models.PassengerCounts) int64 {
	if unitPrice <= 0 {
		return 0
	}
	var total int64
	for _, cat := range models.PassengerCategories {
		total += FareFor(unitPrice, cat) * int64(counts.Get(cat))
	}
	return total
}

// FareFor returns the price a single passenger of cat pays.
func FareFor(unitPrice int64, cat models.PassengerCategory) int64 {
	if unitPrice <= 0 {
		return 0
	}
	return unitPrice * farePercent[cat] / 100
}
