package generation

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CodeRecord is one generated barcode entry; it feeds both the workbook and
// the rendered image set.
type CodeRecord struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Data        string    `json:"data"`
	GeneratedAt time.Time `json:"generated_at"`
}

// GenerateCodes produces quantity unique code records for the standard. IDs
// follow the TYPE + 8-hex-of-uuid convention. Numeric-only symbologies get a
// digit payload derived from the same uuid so every unit renders to an image.
func GenerateCodes(standardKey string, quantity int) []CodeRecord {
	now := time.Now().UTC()
	out := make([]CodeRecord, 0, quantity)
	for i := 0; i < quantity; i++ {
		id := uuid.New()
		// Uppercase hex keeps the payload inside the code39 charset.
		codeID := fmt.Sprintf("%s%s", strings.ToUpper(standardKey), strings.ToUpper(id.String()[:8]))
		out = append(out, CodeRecord{
			ID:          codeID,
			Type:        standardKey,
			Data:        payloadFor(standardKey, id, codeID),
			GeneratedAt: now,
		})
	}
	return out
}

func payloadFor(standardKey string, id uuid.UUID, fallback string) string {
	switch standardKey {
	case "ean13":
		// 12 digits; the renderer appends the checksum digit.
		return digitsFrom(id, 12)
	case "upc":
		// UPC-A is EAN-13 with a leading zero.
		return "0" + digitsFrom(id, 11)
	default:
		return fallback
	}
}

func digitsFrom(id uuid.UUID, n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		b.WriteByte('0' + id[i%len(id)]%10)
	}
	return b.String()
}
