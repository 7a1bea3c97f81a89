package flowstore

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNewCodec(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		tokenKey string
		wantErr  bool
	}{
		{
			name: "random key",
		},
		{
			name:     "valid key",
			tokenKey: base64.StdEncoding.EncodeToString([]byte(strings.Repeat("k", 96))),
		},
		{
			name:     "key too short",
			tokenKey: base64.StdEncoding.EncodeToString([]byte("short")),
			wantErr:  true,
		},
		{
			name:     "not base64",
			tokenKey: "not base64!",
			wantErr:  true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if _, err := NewCodec(tt.tokenKey); (err != nil) != tt.wantErr {
				t.Errorf("NewCodec() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestCodec_SealOpen(t *testing.T) {
	t.Parallel()

	codec, err := NewCodec("")
	if err != nil {
		t.Fatalf("NewCodec() error = %v", err)
	}

	tokens := &Tokens{
		AccessToken:  "access",
		IDToken:      "id",
		RefreshToken: "refresh",
		Expiry:       time.Date(2025, 4, 4, 12, 0, 0, 0, time.UTC),
	}

	sealed, err := codec.Seal("abc", tokens)
	if err != nil {
		t.Fatalf("Codec.Seal() error = %v", err)
	}
	if strings.Contains(sealed, "access") || strings.Contains(sealed, "refresh") {
		t.Errorf("Codec.Seal() = %q, contains plaintext token", sealed)
	}

	got, err := codec.Open("abc", sealed)
	if err != nil {
		t.Fatalf("Codec.Open() error = %v", err)
	}
	if diff := cmp.Diff(tokens, got); diff != "" {
		t.Errorf("Codec.Open() mismatch (-want +got):\n%s", diff)
	}

	if _, err := codec.Open("other", sealed); err == nil {
		t.Errorf("Codec.Open() with another correlation id error = nil, want error")
	}
}
