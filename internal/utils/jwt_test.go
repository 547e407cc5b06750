package utils

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAccessTokenClaimsRoundTrip(t *testing.T) {
	tribe := uint64(9)
	tok, err := NewAccessToken("test-secret", Claims{
		UserID:      42,
		Role:        "admin",
		TribeID:     &tribe,
		IsSuperuser: true,
	}, 15)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	if !tok.Exp.After(time.Now().UTC()) {
		t.Fatal("expiry not in the future")
	}

	parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("parse: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"].(float64) != 42 {
		t.Fatalf("sub = %v, want 42", claims["sub"])
	}
	if claims["role"] != "admin" {
		t.Fatalf("role = %v, want admin", claims["role"])
	}
	if claims["tribe_id"].(float64) != 9 {
		t.Fatalf("tribe_id = %v, want 9", claims["tribe_id"])
	}
	if claims["su"] != true {
		t.Fatalf("su = %v, want true", claims["su"])
	}
}

func TestAccessTokenOmitsTribeWhenNil(t *testing.T) {
	tok, err := NewAccessToken("s", Claims{UserID: 1, Role: "user"}, 5)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	parsed, err := jwt.Parse(tok.Token, func(tk *jwt.Token) (interface{}, error) {
		return []byte("s"), nil
	})
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if _, ok := parsed.Claims.(jwt.MapClaims)["tribe_id"]; ok {
		t.Fatal("tribe_id claim present for tribe-less user")
	}
}

func TestHashRefreshRawStable(t *testing.T) {
	a := HashRefreshRaw("abc")
	b := HashRefreshRaw("abc")
	if a != b {
		t.Fatal("hash not deterministic")
	}
	if len(a) != 64 {
		t.Fatalf("hash length = %d, want 64", len(a))
	}
	if a == HashRefreshRaw("abd") {
		t.Fatal("distinct inputs collided")
	}
}
