package whitelist

import "testing"

func TestIsTrusted(t *testing.T) {
	c := NewChecker([]string{"Corp.Example.COM", "  partner.example.org  ", ""}, nil)

	cases := []struct {
		sender string
		want   bool
	}{
		{"alerts@corp.example.com", true},
		{"ALERTS@CORP.EXAMPLE.COM", true},
		{"billing@partner.example.org", true},
		{"someone@evil.example.net", false},
		{"corp.example.com", false},
		{"a@b@corp.example.com", false},
		{"", false},
	}

	for _, tc := range cases {
		if got := c.IsTrusted(tc.sender); got != tc.want {
			t.Errorf("IsTrusted(%q) = %v, want %v", tc.sender, got, tc.want)
		}
	}
}

func TestIsTrusted_EmptyList(t *testing.T) {
	c := NewChecker(nil, nil)
	if c.IsTrusted("anyone@anywhere.com") {
		t.Error("empty checker should trust nobody")
	}
}
