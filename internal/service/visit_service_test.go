package service

import (
	"context"
	"linguacert_backend/internal/config"
	"testing"
)

func TestLookupPrivateAddressesShortCircuit(t *testing.T) {
	// private and loopback addresses must resolve without any HTTP call or
	// log output; the service here has no client and no initialized logger,
	// so reaching either would panic
	svc := &VisitService{Config: &config.GeoIPConfig{BaseURL: "http://ip-api.com/json"}}

	for _, ip := range []string{"127.0.0.1", "::1", "10.0.0.5", "192.168.1.20", "0.0.0.0"} {
		country, city := svc.lookup(context.Background(), ip)
		if country != "Local" || city != "Local" {
			t.Errorf("lookup(%q) = (%q, %q), want (Local, Local)", ip, country, city)
		}
	}
}

func TestIsPrivateIP(t *testing.T) {
	cases := []struct {
		ip   string
		want bool
	}{
		{"127.0.0.1", true},
		{"10.1.2.3", true},
		{"172.16.0.1", true},
		{"192.168.0.1", true},
		{"::1", true},
		{"0.0.0.0", true},
		{"203.0.113.9", false},
		{"8.8.8.8", false},
		{"not-an-ip", false},
	}
	for _, tc := range cases {
		if got := isPrivateIP(tc.ip); got != tc.want {
			t.Errorf("isPrivateIP(%q) = %v, want %v", tc.ip, got, tc.want)
		}
	}
}
