package utils

import "testing"

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"+62 812-3456-789", "628123456789"},
		{"081234567890", "6281234567890"},
		{"62811111111", "62811111111"},
	}

	for _, tc := range cases {
		if got := NormalizePhone(tc.in); got != tc.want {
			t.Errorf("NormalizePhone(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestWhatsAppLink(t *testing.T) {
	link := WhatsAppLink("0812345678", "Halo Budi! Kode: FLASH#0042")

	want := "https://wa.me/62812345678?text=Halo+Budi%21+Kode%3A+FLASH%230042"
	if link != want {
		t.Errorf("link = %q, want %q", link, want)
	}
}
