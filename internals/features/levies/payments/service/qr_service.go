package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Errors surfaced to the verification gateway. Controllers map ErrInvalidQR to
// the INVALID_QR error code; a malformed payload must never panic.
var (
	ErrInvalidQR = errors.New("invalid qr payload")
	ErrExpiredQR = errors.New("qr payload expired")
)

// QRCodec signs and verifies trader QR payloads. The payload is
// base64url(traderID|issuedUnix|hex(hmac-sha256(secret, traderID|issuedUnix))).
type QRCodec struct {
	Secret []byte
	// MaxAge 0 means payloads never expire.
	MaxAge time.Duration
	Now    func() time.Time
}

func NewQRCodec(secret string, maxAge time.Duration) *QRCodec {
	return &QRCodec{
		Secret: []byte(secret),
		MaxAge: maxAge,
		Now:    time.Now,
	}
}

func (q *QRCodec) sign(traderID uuid.UUID, issuedUnix int64) string {
	mac := hmac.New(sha256.New, q.Secret)
	fmt.Fprintf(mac, "%s|%d", traderID, issuedUnix)
	return hex.EncodeToString(mac.Sum(nil))
}

// Encode mints a signed payload for a trader.
func (q *QRCodec) Encode(traderID uuid.UUID, issuedAt time.Time) string {
	issuedUnix := issuedAt.Unix()
	raw := fmt.Sprintf("%s|%d|%s", traderID, issuedUnix, q.sign(traderID, issuedUnix))
	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// Decode validates a scanned payload and returns the encoded trader id.
func (q *QRCodec) Decode(payload string) (uuid.UUID, time.Time, error) {
	raw, err := base64.RawURLEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return uuid.Nil, time.Time{}, ErrInvalidQR
	}
	parts := strings.Split(string(raw), "|")
	if len(parts) != 3 {
		return uuid.Nil, time.Time{}, ErrInvalidQR
	}

	traderID, err := uuid.Parse(parts[0])
	if err != nil {
		return uuid.Nil, time.Time{}, ErrInvalidQR
	}
	issuedUnix, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil {
		return uuid.Nil, time.Time{}, ErrInvalidQR
	}

	expected := q.sign(traderID, issuedUnix)
	if !hmac.Equal([]byte(expected), []byte(parts[2])) {
		return uuid.Nil, time.Time{}, ErrInvalidQR
	}

	issuedAt := time.Unix(issuedUnix, 0).UTC()
	if q.MaxAge > 0 && q.Now().Sub(issuedAt) > q.MaxAge {
		return uuid.Nil, time.Time{}, ErrExpiredQR
	}
	return traderID, issuedAt, nil
}
