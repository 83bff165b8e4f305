package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// Harga tiket disimpan dalam rupiah utuh, tanpa sen.

// FormatRupiah menulis nominal seperti "Rp350.000" (negatif: "-Rp350.000").
func FormatRupiah(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	digits := strconv.FormatInt(amount, 10)

	b := make([]byte, 0, len(digits)+len(digits)/3+3)
	if neg {
		b = append(b, '-')
	}
	b = append(b, "Rp"...)
	lead := len(digits) % 3
	if lead == 0 {
		lead = 3
	}
	b = append(b, digits[:lead]...)
	for i := lead; i < len(digits); i += 3 {
		b = append(b, '.')
		b = append(b, digits[i:i+3]...)
	}
	return string(b)
}

// ParseRupiah membaca harga dari form admin: "350000", "Rp 350.000" atau
// "Rp350.000,00". Bagian sen yang tidak nol ditolak.
func ParseRupiah(s string) (int64, error) {
	raw := strings.TrimSpace(s)
	body := raw
	if len(body) >= 2 && strings.EqualFold(body[:2], "rp") {
		body = strings.TrimSpace(body[2:])
	}
	if whole, cents, ok := strings.Cut(body, ","); ok {
		if strings.Trim(cents, "0") != "" {
			return 0, fmt.Errorf("nominal %q memuat sen", raw)
		}
		body = whole
	}
	body = strings.NewReplacer(".", "", " ", "").Replace(body)
	if body == "" {
		return 0, fmt.Errorf("nominal %q kosong", raw)
	}
	n, err := strconv.ParseInt(body, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("nominal %q tidak valid", raw)
	}
	return n, nil
}
