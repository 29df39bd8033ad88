package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

const maxProfileSize = 1 << 20

// RawProfile is the profile payload as returned by the provider.
type RawProfile struct {
	JSON     map[string]any
	Provider string
	Body     []byte
}

// VerifyFunc receives the tokens and raw profile of a completed handshake and
// returns the authenticated user. For OAuth1 strategies refreshToken carries
// the access token secret.
type VerifyFunc func(r *http.Request, accessToken, refreshToken string, raw RawProfile) (any, error)

// Strategy drives one provider's handshake.
type Strategy interface {
	// Name is the flow name the strategy was created with.
	Name() string

	// Challenge starts the handshake, usually by redirecting to the provider.
	// params are extra authorization parameters such as scope.
	Challenge(w http.ResponseWriter, r *http.Request, params map[string]string) error

	// Complete handles the provider's callback and returns what VerifyFunc returned.
	Complete(w http.ResponseWriter, r *http.Request) (any, error)
}

// Factory builds a Strategy from an adapted configuration map.
type Factory func(name string, cfg map[string]any, verify VerifyFunc, opts ...Option) (Strategy, error)

var validate = validator.New(validator.WithRequiredStructEnabled())

// decodeConfig maps cfg onto out and validates it.
func decodeConfig(cfg map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:       scopeHook,
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}
	if err := dec.Decode(cfg); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}
	if err := validate.Struct(out); err != nil {
		return errors.Join(ErrInvalidConfig, err)
	}
	return nil
}

// scopeHook splits "a b,c" into []string{"a", "b", "c"}.
func scopeHook(from, to reflect.Type, data any) (any, error) {
	if from.Kind() != reflect.String || to.Kind() != reflect.Slice || to.Elem().Kind() != reflect.String {
		return data, nil
	}
	return splitScope(reflect.ValueOf(data).String()), nil
}

func splitScope(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ' ' })
}

// callbackURL resolves a relative callback against the incoming request.
func callbackURL(r *http.Request, callback string) string {
	if u, err := url.Parse(callback); err != nil || u.IsAbs() {
		return callback
	}
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = proto
	}
	return scheme + "://" + r.Host + callback
}

// withQuery sets params on rawURL's query.
func withQuery(rawURL string, params map[string]string) (string, error) {
	if len(params) == 0 {
		return rawURL, nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}
	q := u.Query()
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// fetchJSON GETs a profile document with an already authorized client.
func fetchJSON(ctx context.Context, client *http.Client, provider, profileURL string) (RawProfile, error) {
	raw := RawProfile{Provider: provider}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, profileURL, nil)
	if err != nil {
		return raw, errors.Join(ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return raw, errors.Join(ErrFetchFailed, fmt.Errorf("fetch profile: %w", err))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxProfileSize))
	if err != nil {
		return raw, errors.Join(ErrFetchFailed, fmt.Errorf("read profile: %w", err))
	}
	if resp.StatusCode != http.StatusOK {
		return raw, errors.Join(ErrRequestFailed, fmt.Errorf("profile request failed: status=%d body=%s", resp.StatusCode, body))
	}

	raw.Body = body
	if err := json.Unmarshal(body, &raw.JSON); err != nil {
		return raw, errors.Join(ErrDecodeFailed, fmt.Errorf("decode profile: %w", err))
	}
	if raw.JSON == nil {
		return raw, errors.Join(ErrDecodeFailed, errors.New("profile is not a JSON object"))
	}
	return raw, nil
}
