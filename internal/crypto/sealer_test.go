package crypto

import (
	"errors"
	"testing"
)

func TestNewSealer_EmptySecret(t *testing.T) {
	if _, err := NewSealer(""); !errors.Is(err, ErrEmptySecret) {
		t.Fatalf("expected ErrEmptySecret, got %v", err)
	}
}

func TestSealOpen(t *testing.T) {
	s, err := NewSealer("correct horse battery staple")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Run("round_trip", func(t *testing.T) {
		token, err := s.SealString(`{"total_revenue":18000}`)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got, err := s.OpenString(token)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != `{"total_revenue":18000}` {
			t.Errorf("expected original plaintext, got %q", got)
		}
	})

	t.Run("nonce_is_random", func(t *testing.T) {
		a, _ := s.SealString("same")
		b, _ := s.SealString("same")
		if a == b {
			t.Error("expected distinct ciphertexts for identical plaintexts")
		}
	})

	t.Run("wrong_key", func(t *testing.T) {
		token, _ := s.SealString("secret")
		other, _ := NewSealer("another secret")
		if _, err := other.OpenString(token); !errors.Is(err, ErrDecrypt) {
			t.Fatalf("expected ErrDecrypt, got %v", err)
		}
	})

	t.Run("tampered", func(t *testing.T) {
		token, _ := s.SealString("secret")
		b := []byte(token)
		if b[10] == 'A' {
			b[10] = 'B'
		} else {
			b[10] = 'A'
		}
		if _, err := s.OpenString(string(b)); !errors.Is(err, ErrDecrypt) {
			t.Fatalf("expected ErrDecrypt, got %v", err)
		}
	})

	t.Run("garbage", func(t *testing.T) {
		for _, in := range []string{"", "not base64!", "c2hvcnQ="} {
			if _, err := s.OpenString(in); !errors.Is(err, ErrDecrypt) {
				t.Errorf("input %q: expected ErrDecrypt, got %v", in, err)
			}
		}
	})

	t.Run("same_secret_same_key", func(t *testing.T) {
		token, _ := s.SealString("stable")
		again, _ := NewSealer("correct horse battery staple")
		if got, err := again.OpenString(token); err != nil || got != "stable" {
			t.Errorf("expected decrypt with re-derived key, got %q, %v", got, err)
		}
	})
}
