package oauth

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/oauth2"

	"github.com/dmitrymomot/socialauth/pkg/cache"
)

const (
	appleAudience  = "https://appleid.apple.com"
	appleSecretTTL = time.Hour
)

type appleKeys struct {
	TeamID     string `mapstructure:"teamID" validate:"required"`
	KeyID      string `mapstructure:"keyID" validate:"required"`
	PrivateKey string `mapstructure:"privateKeyString" validate:"required"`
}

// NewApple is the Factory for Sign in with Apple. The client secret is an
// ES256 JWT signed with the team's private key; the profile is read from the
// id_token returned by the token endpoint.
func NewApple(name string, cfg map[string]any, verify VerifyFunc, opts ...Option) (Strategy, error) {
	var c OAuth2Config
	if err := decodeConfig(cfg, &c); err != nil {
		return nil, err
	}
	var keys appleKeys
	if err := decodeConfig(cfg, &keys); err != nil {
		return nil, err
	}
	key, err := jwt.ParseECPrivateKeyFromPEM([]byte(keys.PrivateKey))
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, fmt.Errorf("apple private key: %w", err))
	}

	s := newOAuth2(name, AppleEndpoint, c, verify, newOptions(opts))
	s.secret = appleSecret(s.opts.secrets, c.ClientID, keys, key)
	s.fetch = appleProfile(name)
	// Required by Apple whenever a scope is requested, accepted otherwise.
	s.authParams = map[string]string{"response_mode": "form_post"}
	return s, nil
}

func appleSecret(c cache.Cache[string], clientID string, keys appleKeys, key *ecdsa.PrivateKey) func(context.Context) (string, error) {
	cacheKey := "apple:" + clientID + ":" + keys.KeyID
	return func(ctx context.Context) (string, error) {
		return cache.GetOrSet(ctx, c, cacheKey, func(context.Context) (string, time.Duration, error) {
			now := time.Now()
			tok := jwt.NewWithClaims(jwt.SigningMethodES256, jwt.RegisteredClaims{
				Issuer:    keys.TeamID,
				Subject:   clientID,
				Audience:  jwt.ClaimStrings{appleAudience},
				IssuedAt:  jwt.NewNumericDate(now),
				ExpiresAt: jwt.NewNumericDate(now.Add(appleSecretTTL)),
			})
			tok.Header["kid"] = keys.KeyID
			signed, err := tok.SignedString(key)
			if err != nil {
				return "", 0, err
			}
			return signed, appleSecretTTL - time.Minute, nil
		})
	}
}

// appleProfile returns the id_token claims. The token comes straight from the
// token endpoint over TLS, so its signature is not checked again. On first
// login Apple also posts a "user" field with the name, kept under "user".
func appleProfile(name string) func(context.Context, *http.Request, *oauth2.Config, *oauth2.Token) (RawProfile, error) {
	return func(_ context.Context, r *http.Request, _ *oauth2.Config, tok *oauth2.Token) (RawProfile, error) {
		return appleClaims(name, r, tok)
	}
}

func appleClaims(name string, r *http.Request, tok *oauth2.Token) (RawProfile, error) {
	raw := RawProfile{Provider: name}

	idToken, _ := tok.Extra("id_token").(string)
	if idToken == "" {
		return raw, errors.Join(ErrDecodeFailed, errors.New("token response has no id_token"))
	}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(idToken, claims); err != nil {
		return raw, errors.Join(ErrDecodeFailed, fmt.Errorf("parse id_token: %w", err))
	}

	if u := r.FormValue("user"); u != "" {
		var user map[string]any
		if err := json.Unmarshal([]byte(u), &user); err == nil {
			claims["user"] = user
		}
	}

	raw.JSON = claims
	raw.Body, _ = json.Marshal(claims)
	return raw, nil
}
