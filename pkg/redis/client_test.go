package redis

import "testing"

func TestQuoteKeyNormalizesState(t *testing.T) {
	t.Parallel()

	c := &Client{}

	if got := c.QuoteKey("qr_code", 10, "  Gujarat "); got != "bg:quote:qr_code:10:gujarat" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := c.QuoteKey("ean13", 5, ""); got != "bg:quote:ean13:5:other" {
		t.Fatalf("unexpected key %q", got)
	}
}
