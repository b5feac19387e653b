package service

import (
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestQRCodecRoundTrip(t *testing.T) {
	codec := NewQRCodec("test-secret", time.Hour)
	traderID := uuid.New()
	issuedAt := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	codec.Now = func() time.Time { return issuedAt.Add(5 * time.Minute) }

	payload := codec.Encode(traderID, issuedAt)

	gotID, gotIssued, err := codec.Decode(payload)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if gotID != traderID {
		t.Errorf("trader id = %s, want %s", gotID, traderID)
	}
	if !gotIssued.Equal(issuedAt) {
		t.Errorf("issued at = %s, want %s", gotIssued, issuedAt)
	}
}

func TestQRCodecRejectsTamperedPayload(t *testing.T) {
	codec := NewQRCodec("test-secret", 0)
	payload := codec.Encode(uuid.New(), time.Now())

	raw, _ := base64.RawURLEncoding.DecodeString(payload)
	// Flip one signature byte.
	raw[len(raw)-1] ^= 0x01
	tampered := base64.RawURLEncoding.EncodeToString(raw)

	if _, _, err := codec.Decode(tampered); !errors.Is(err, ErrInvalidQR) {
		t.Errorf("err = %v, want ErrInvalidQR", err)
	}
}

func TestQRCodecRejectsGarbage(t *testing.T) {
	codec := NewQRCodec("test-secret", 0)

	for _, payload := range []string{
		"",
		"not base64 at all!!!",
		base64.RawURLEncoding.EncodeToString([]byte("one|two")),
		base64.RawURLEncoding.EncodeToString([]byte("not-a-uuid|123|deadbeef")),
		base64.RawURLEncoding.EncodeToString([]byte(uuid.NewString() + "|notanumber|deadbeef")),
	} {
		if _, _, err := codec.Decode(payload); !errors.Is(err, ErrInvalidQR) {
			t.Errorf("Decode(%q) err = %v, want ErrInvalidQR", payload, err)
		}
	}
}

func TestQRCodecRejectsWrongSecret(t *testing.T) {
	mint := NewQRCodec("secret-a", 0)
	verify := NewQRCodec("secret-b", 0)

	payload := mint.Encode(uuid.New(), time.Now())
	if _, _, err := verify.Decode(payload); !errors.Is(err, ErrInvalidQR) {
		t.Errorf("err = %v, want ErrInvalidQR", err)
	}
}

func TestQRCodecExpiry(t *testing.T) {
	codec := NewQRCodec("test-secret", time.Hour)
	issuedAt := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	payload := codec.Encode(uuid.New(), issuedAt)

	codec.Now = func() time.Time { return issuedAt.Add(59 * time.Minute) }
	if _, _, err := codec.Decode(payload); err != nil {
		t.Errorf("within max age: err = %v, want nil", err)
	}

	codec.Now = func() time.Time { return issuedAt.Add(2 * time.Hour) }
	if _, _, err := codec.Decode(payload); !errors.Is(err, ErrExpiredQR) {
		t.Errorf("past max age: err = %v, want ErrExpiredQR", err)
	}

	// MaxAge 0 disables expiry.
	forever := NewQRCodec("test-secret", 0)
	forever.Now = func() time.Time { return issuedAt.AddDate(10, 0, 0) }
	old := forever.Encode(uuid.New(), issuedAt)
	if _, _, err := forever.Decode(old); err != nil {
		t.Errorf("no max age: err = %v, want nil", err)
	}
}
