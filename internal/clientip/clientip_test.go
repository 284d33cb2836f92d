package clientip

import "testing"

func TestIsValid_IPv4(t *testing.T) {
	valid := []string{
		"0.0.0.0",
		"1.2.3.4",
		"127.0.0.1",
		"192.168.1.100",
		"255.255.255.255",
	}
	for _, ip := range valid {
		if !IsValid(ip) {
			t.Errorf("expected %q to be valid", ip)
		}
	}

	invalid := []string{
		"",
		"256.1.1.1",
		"1.256.1.1",
		"1.1.1.256",
		"999.999.999.999",
		"1.2.3",
		"1.2.3.4.5",
		"1.2.3.",
		"a.b.c.d",
		"1.2.3.4a",
		"1234.1.1.1",
		"unknown",
	}
	for _, ip := range invalid {
		if IsValid(ip) {
			t.Errorf("expected %q to be invalid", ip)
		}
	}
}

func TestIsValid_IPv6(t *testing.T) {
	valid := []string{
		"2001:0db8:85a3:0000:0000:8a2e:0370:7334",
		"fe80:1:2:3:4:5:6:7",
		"0:0:0:0:0:0:0:1",
		"ABCD:ef01:2345:6789:abcd:EF01:2345:6789",
	}
	for _, ip := range valid {
		if !IsValid(ip) {
			t.Errorf("expected %q to be valid", ip)
		}
	}

	// The shorthand form is deliberately rejected.
	invalid := []string{
		"::1",
		"2001:db8::1",
		"fe80:1:2:3:4:5:6",
		"fe80:1:2:3:4:5:6:7:8",
		"fe80:1:2:3:4:5:6:zzzz",
		"fe80:1:2:3:4:5:6:12345",
		":::::::",
	}
	for _, ip := range invalid {
		if IsValid(ip) {
			t.Errorf("expected %q to be invalid", ip)
		}
	}
}

func TestFromHeaders(t *testing.T) {
	cases := []struct {
		name         string
		forwardedFor string
		realIP       string
		want         string
	}{
		{"forwarded_single", "1.2.3.4", "", "1.2.3.4"},
		{"forwarded_list_takes_first", "1.2.3.4, 5.6.7.8", "", "1.2.3.4"},
		{"forwarded_list_with_spaces", "  1.2.3.4 , 5.6.7.8", "9.9.9.9", "1.2.3.4"},
		{"fallback_to_real_ip", "", "5.6.7.8", "5.6.7.8"},
		{"forwarded_wins_over_real_ip", "1.2.3.4", "5.6.7.8", "1.2.3.4"},
		{"both_empty", "", "", ""},
		{"invalid_forwarded_not_replaced", "not-an-ip", "5.6.7.8", ""},
		{"invalid_real_ip", "", "unknown", ""},
		{"empty_first_token_falls_back", " , 5.6.7.8", "9.9.9.9", "9.9.9.9"},
		{"ipv6_forwarded", "2001:0db8:85a3:0000:0000:8a2e:0370:7334", "", "2001:0db8:85a3:0000:0000:8a2e:0370:7334"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FromHeaders(tc.forwardedFor, tc.realIP)
			if got != tc.want {
				t.Errorf("FromHeaders(%q, %q) = %q, want %q", tc.forwardedFor, tc.realIP, got, tc.want)
			}
		})
	}
}
