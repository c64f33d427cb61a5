package pageinsight

import (
	"errors"
	"net/netip"
	"testing"
)

func TestIsPublicAddr(t *testing.T) {
	tests := []struct {
		ip     string
		public bool
	}{
		{ip: "127.0.0.1", public: false},
		{ip: "::1", public: false},
		{ip: "10.0.0.1", public: false},
		{ip: "172.16.0.1", public: false},
		{ip: "192.168.1.1", public: false},
		{ip: "169.254.169.254", public: false},
		{ip: "fe80::1", public: false},
		{ip: "100.64.0.1", public: false},
		{ip: "192.0.2.1", public: false},
		{ip: "198.51.100.1", public: false},
		{ip: "203.0.113.1", public: false},
		{ip: "198.19.255.254", public: false},
		{ip: "240.0.0.1", public: false},
		{ip: "2001:db8::1", public: false},
		{ip: "0.0.0.0", public: false},
		{ip: "::", public: false},
		{ip: "::ffff:127.0.0.1", public: false},
		{ip: "::ffff:10.0.0.1", public: false},

		{ip: "::ffff:8.8.8.8", public: true},
		{ip: "8.8.8.8", public: true},
		{ip: "1.1.1.1", public: true},
		{ip: "93.184.216.34", public: true},
		{ip: "100.63.255.255", public: true},
		{ip: "100.128.0.1", public: true},
		{ip: "2606:4700:4700::1111", public: true},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			addr := netip.MustParseAddr(tt.ip)
			if got := isPublicAddr(addr); got != tt.public {
				t.Errorf("isPublicAddr(%s) = %v, want %v", tt.ip, got, tt.public)
			}
		})
	}
}

func TestRequirePublicAddress(t *testing.T) {
	tests := []struct {
		address string
		wantErr bool
	}{
		{address: "93.184.216.34:443", wantErr: false},
		{address: "127.0.0.1:80", wantErr: true},
		{address: "10.0.0.5:6379", wantErr: true},
		{address: "[::ffff:127.0.0.1]:80", wantErr: true},
		{address: "127.0.0.1", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			err := requirePublicAddress("tcp", tt.address, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("requirePublicAddress(%q) error = %v, wantErr %v", tt.address, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errNonPublicAddress) {
				t.Errorf("error %v does not wrap errNonPublicAddress", err)
			}
		})
	}
}
