package cidr

import "testing"

func TestParseIPv4(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    uint32
		wantErr bool
	}{
		{
			name: "zero address",
			in:   "0.0.0.0",
			want: 0,
		},
		{
			name: "loopback",
			in:   "127.0.0.1",
			want: 0x7f000001,
		},
		{
			name: "broadcast",
			in:   "255.255.255.255",
			want: 0xffffffff,
		},
		{
			name: "documentation range",
			in:   "192.0.2.1",
			want: 0xc0000201,
		},
		{
			name:    "too few octets",
			in:      "10.0.0",
			wantErr: true,
		},
		{
			name:    "too many octets",
			in:      "10.0.0.1.2",
			wantErr: true,
		},
		{
			name:    "octet out of range",
			in:      "10.0.0.256",
			wantErr: true,
		},
		{
			name:    "negative octet",
			in:      "10.0.0.-1",
			wantErr: true,
		},
		{
			name:    "leading zero octet",
			in:      "10.0.0.01",
			wantErr: true,
		},
		{
			name:    "non-numeric",
			in:      "ten.0.0.1",
			wantErr: true,
		},
		{
			name:    "empty",
			in:      "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseIPv4(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseIPv4(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseIPv4(%q) = %#x, want %#x", tt.in, got, tt.want)
			}
		})
	}
}

func TestMask(t *testing.T) {
	tests := []struct {
		name      string
		prefixLen int
		want      uint32
	}{
		{name: "zero", prefixLen: 0, want: 0},
		{name: "eight", prefixLen: 8, want: 0xff000000},
		{name: "sixteen", prefixLen: 16, want: 0xffff0000},
		{name: "twenty-four", prefixLen: 24, want: 0xffffff00},
		{name: "thirty-two", prefixLen: 32, want: 0xffffffff},
		{name: "negative", prefixLen: -1, want: 0},
		{name: "too large", prefixLen: 33, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Mask(tt.prefixLen); got != tt.want {
				t.Errorf("Mask(%d) = %#x, want %#x", tt.prefixLen, got, tt.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	tests := []struct {
		name      string
		address   string
		network   string
		prefixLen int
		want      bool
	}{
		{
			name:      "inside /24",
			address:   "192.168.1.50",
			network:   "192.168.1.0",
			prefixLen: 24,
			want:      true,
		},
		{
			name:      "outside /24",
			address:   "192.168.2.50",
			network:   "192.168.1.0",
			prefixLen: 24,
			want:      false,
		},
		{
			name:      "inside /16",
			address:   "10.0.200.1",
			network:   "10.0.0.0",
			prefixLen: 16,
			want:      true,
		},
		{
			name:      "default route matches everything",
			address:   "203.0.113.77",
			network:   "0.0.0.0",
			prefixLen: 0,
			want:      true,
		},
		{
			name:      "host route exact match",
			address:   "10.0.1.2",
			network:   "10.0.1.2",
			prefixLen: 32,
			want:      true,
		},
		{
			name:      "host route near miss",
			address:   "10.0.1.3",
			network:   "10.0.1.2",
			prefixLen: 32,
			want:      false,
		},
		{
			name:      "network with host bits set",
			address:   "10.0.1.200",
			network:   "10.0.1.55",
			prefixLen: 24,
			want:      true,
		},
		{
			name:      "malformed address",
			address:   "not-an-ip",
			network:   "10.0.0.0",
			prefixLen: 8,
			want:      false,
		},
		{
			name:      "malformed network",
			address:   "10.0.0.1",
			network:   "10.0.0",
			prefixLen: 8,
			want:      false,
		},
		{
			name:      "prefix length above 32",
			address:   "10.0.0.1",
			network:   "10.0.0.1",
			prefixLen: 33,
			want:      false,
		},
		{
			name:      "negative prefix length",
			address:   "10.0.0.1",
			network:   "10.0.0.1",
			prefixLen: -1,
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Contains(tt.address, tt.network, tt.prefixLen)
			if got != tt.want {
				t.Errorf("Contains(%q, %q, %d) = %v, want %v",
					tt.address, tt.network, tt.prefixLen, got, tt.want)
			}
		})
	}
}

func TestContainsZeroPrefixMatchesAnyValidAddress(t *testing.T) {
	addresses := []string{"0.0.0.0", "1.2.3.4", "10.0.0.1", "172.16.31.254", "255.255.255.255"}
	for _, addr := range addresses {
		if !Contains(addr, "0.0.0.0", 0) {
			t.Errorf("Contains(%q, 0.0.0.0, 0) = false, want true", addr)
		}
	}
}
