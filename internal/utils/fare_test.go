package utils

import (
	"testing"

	"shiptix/internal/domain/models"
)

func TestFareFor(t *testing.T) {
	cases := map[models.PassengerCategory]int64{
		models.PassengerAdult:  350000,
		models.PassengerSenior: 350000,
		models.PassengerChild:  350000,
		models.PassengerInfant: 0,
	}
	for cat, want := range cases {
		if got := FareFor(350000, cat); got != want {
			t.Errorf("FareFor(350000, %s) = %d, want %d", cat, got, want)
		}
	}
	if got := FareFor(-1, models.PassengerAdult); got != 0 {
		t.Errorf("FareFor(-1, adult) = %d, want 0", got)
	}
}

func TestComputeFare_SumsPerPassengerFares(t *testing.T) {
	counts := models.PassengerCounts{Adults: 2, Seniors: 1, Children: 1, Infants: 1}
	var want int64
	for _, cat := range models.PassengerCategories {
		want += FareFor(550000, cat) * int64(counts.Get(cat))
	}
	if got := ComputeFare(550000, counts); got != want || got != 2200000 {
		t.Errorf("ComputeFare = %d, want %d (2200000)", got, want)
	}
}
