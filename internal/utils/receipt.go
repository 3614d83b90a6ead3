package utils // package utils provides helpers for issuing and verifying ticket receipts

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
	"github.com/google/uuid"

	"github.com/iliyamo/flatdango/internal/model"
)

// ErrInvalidReceipt is returned for receipts that fail signature or claim
// validation.
var ErrInvalidReceipt = errors.New("invalid ticket receipt")

// ReceiptClaims are the claims carried by a signed ticket receipt.  Seat is
// the ordinal of the ticket in the screening, i.e. tickets_sold right after
// the purchase.
type ReceiptClaims struct {
	MovieID  string `json:"movie_id"`
	Title    string `json:"title"`
	Showtime string `json:"showtime"`
	Seat     int    `json:"seat"`
	jwt.RegisteredClaims
}

// Receipt is a signed proof of purchase handed to the buyer.
type Receipt struct {
	Code     string    // the serialized JWT string
	ID       string    // jti, unique per purchase
	IssuedAt time.Time // UTC
	Claims   ReceiptClaims
}

// IssueReceipt signs an HS256 receipt for the ticket just sold for movie.
// movie must be the record returned by the catalog after the purchase.
func IssueReceipt(secret string, movie model.Movie) (Receipt, error) {
	now := time.Now().UTC().Truncate(time.Second)
	claims := ReceiptClaims{
		MovieID:  movie.ID,
		Title:    movie.Title,
		Showtime: movie.Showtime,
		Seat:     movie.TicketsSold,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:       uuid.NewString(),
			Issuer:   "flatdango",
			Subject:  movie.ID,
			IssuedAt: jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return Receipt{}, err
	}
	return Receipt{Code: signed, ID: claims.ID, IssuedAt: now, Claims: claims}, nil
}

// VerifyReceipt parses code and checks its signature.  Only HS256 is
// accepted.
func VerifyReceipt(secret, code string) (*ReceiptClaims, error) {
	var claims ReceiptClaims
	tok, err := jwt.ParseWithClaims(code, &claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer("flatdango"))
	if err != nil || !tok.Valid {
		return nil, ErrInvalidReceipt
	}
	if claims.MovieID == "" || claims.Seat <= 0 {
		return nil, ErrInvalidReceipt
	}
	return &claims, nil
}
