package types

import "testing"

func TestHasMinimumContact(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		email string
		want  bool
	}{
		{"Asha", "asha@example.com", true},
		{"", "asha@example.com", false},
		{"Asha", "", false},
		{"  ", "  ", false},
	}
	for _, tc := range cases {
		c := CustomerDetails{Name: tc.name, Email: tc.email}
		if got := c.HasMinimumContact(); got != tc.want {
			t.Fatalf("name=%q email=%q: expected %v, got %v", tc.name, tc.email, tc.want, got)
		}
	}
}
