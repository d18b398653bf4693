package inventory

import "fmt"

// Barkodlar Code 128 (B alt kümesi) ile basılıyor: yazdırılabilir ASCII,
// en fazla 128 karakter.
const maxBarcodeLen = 128

// ValidateBarcode - Barkod Code 128 ile kodlanabilir mi
func ValidateBarcode(s string) error {
	if s == "" {
		return fmt.Errorf("barkod boş olamaz")
	}
	if len(s) > maxBarcodeLen {
		return fmt.Errorf("barkod en fazla %d karakter olabilir", maxBarcodeLen)
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 32 || s[i] > 126 {
			return fmt.Errorf("barkod Code 128 dışı karakter içeriyor: %q", s[i])
		}
	}
	return nil
}

// BarcodeFromID - Barkod verilmediyse kayıt id'sinden üretilir; sıfır dolgulu
// sayı hem Code 128 için geçerli hem de tablo genelinde tekil.
func BarcodeFromID(id uint) string {
	return fmt.Sprintf("%012d", id)
}
