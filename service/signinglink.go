package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sukhbir4393/SignSecure-E-Signature-Platform/config"
	"github.com/sukhbir4393/SignSecure-E-Signature-Platform/model"
)

// SigningLinkService issues and resolves the tokens embedded in signing
// links. A token is an HS256 JWT bound to one document + signer with an
// expiry, so links cannot be guessed from a signer id or replayed against
// another document. Resolution fails closed: any mismatch yields the same
// not-found rejection without revealing document state.
type SigningLinkService struct {
	secret  []byte
	expiry  time.Duration
	baseURL string
}

type signingClaims struct {
	DocumentID string `json:"document_id"`
	SignerID   string `json:"signer_id"`
	jwt.RegisteredClaims
}

func NewSigningLinkService(cfg *config.SigningConfig) *SigningLinkService {
	return &SigningLinkService{
		secret:  []byte(cfg.LinkSecret),
		expiry:  time.Duration(cfg.LinkExpireHours) * time.Hour,
		baseURL: cfg.BaseURL,
	}
}

// Issue mints a signing-link token for one signer on one document.
func (s *SigningLinkService) Issue(documentID, signerID string) (string, error) {
	now := time.Now()
	claims := signingClaims{
		DocumentID: documentID,
		SignerID:   signerID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign link token: %w", err)
	}
	return signed, nil
}

// Resolve verifies the token against the document it was presented for and
// returns the signer id it is bound to.
func (s *SigningLinkService) Resolve(documentID, tokenString string) (string, error) {
	claims := &signingClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	if err != nil || !token.Valid {
		return "", fmt.Errorf("signing link: %w", model.ErrNotFound)
	}
	if claims.DocumentID != documentID || claims.SignerID == "" {
		return "", fmt.Errorf("signing link: %w", model.ErrNotFound)
	}
	return claims.SignerID, nil
}

// URL builds the public signing URL for a token.
func (s *SigningLinkService) URL(documentID, token string) string {
	return fmt.Sprintf("%s/sign/%s/%s", s.baseURL, documentID, token)
}
