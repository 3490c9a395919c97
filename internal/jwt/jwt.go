package jwt

import (
	"crypto/rsa"
	"errors"
	"fmt"
	"os"
	"strconv"
	"texasholdem-server/internal/config"
	"time"

	jwtgo "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Issuer issues the JWT
const Issuer = "texasholdem-server"

// Audience is the intended JWT audience
const Audience = "texasholdem-players"

// TokenLifetime is how long a signed token is accepted
const TokenLifetime = time.Hour * 24

var publicKey *rsa.PublicKey
var privateKey *rsa.PrivateKey

// ErrKeysNotLoaded is returned when tokens are used before LoadKeys() or SetKeys()
var ErrKeysNotLoaded = errors.New("jwt keys have not been loaded")

// LoadKeys will load the public and private keys named in the config
// this method should only be called once.
func LoadKeys() error {
	cfg := config.Instance().JWT
	return loadKeys(cfg.PublicKey, cfg.PrivateKey)
}

// SetKeys replaces the signing keys
func SetKeys(key *rsa.PrivateKey) {
	privateKey = key
	publicKey = &key.PublicKey
}

func loadKeys(publicPath, privatePath string) error {
	b, err := os.ReadFile(publicPath)
	if err != nil {
		return fmt.Errorf("could not read public key: %w", err)
	}

	pub, err := jwtgo.ParseRSAPublicKeyFromPEM(b)
	if err != nil {
		return fmt.Errorf("could not parse RSA public key: %w", err)
	}

	b, err = os.ReadFile(privatePath)
	if err != nil {
		return fmt.Errorf("could not read private key: %w", err)
	}

	priv, err := jwtgo.ParseRSAPrivateKeyFromPEM(b)
	if err != nil {
		return fmt.Errorf("could not parse RSA private key: %w", err)
	}

	publicKey = pub
	privateKey = priv
	return nil
}

// Sign will sign a JWT for the player ID
func Sign(playerID int64) (string, error) {
	if privateKey == nil {
		return "", ErrKeysNotLoaded
	}

	now := time.Now()
	token := jwtgo.NewWithClaims(jwtgo.SigningMethodRS256, jwtgo.RegisteredClaims{
		Audience:  jwtgo.ClaimStrings{Audience},
		ID:        uuid.New().String(),
		IssuedAt:  jwtgo.NewNumericDate(now),
		ExpiresAt: jwtgo.NewNumericDate(now.Add(TokenLifetime)),
		Issuer:    Issuer,
		Subject:   strconv.FormatInt(playerID, 10),
	})

	return token.SignedString(privateKey)
}

// ValidPlayerID will validate a signed JWT and return the player it names
func ValidPlayerID(signedString string) (int64, error) {
	if publicKey == nil {
		return 0, ErrKeysNotLoaded
	}

	token, err := jwtgo.ParseWithClaims(signedString, &jwtgo.RegisteredClaims{}, func(token *jwtgo.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwtgo.SigningMethodRSA); !ok {
			return nil, errors.New("expected RS256 signing method")
		}

		return publicKey, nil
	})

	if err != nil {
		return 0, err
	}

	if token.Valid {
		if claims, ok := token.Claims.(*jwtgo.RegisteredClaims); ok {
			if !containsAudience(claims.Audience, Audience) {
				return 0, errors.New("invalid audience")
			}

			if claims.Issuer != Issuer {
				return 0, errors.New("invalid issuer")
			}

			return strconv.ParseInt(claims.Subject, 10, 64)
		}

		return 0, fmt.Errorf("expected jwt.RegisteredClaims, got %T", token.Claims)
	}

	logrus.Warn("token claims were not valid. did not expect to reach this code")
	return 0, errors.New("claims were not valid")
}

func containsAudience(audiences jwtgo.ClaimStrings, target string) bool {
	for _, aud := range audiences {
		if aud == target {
			return true
		}
	}
	return false
}
