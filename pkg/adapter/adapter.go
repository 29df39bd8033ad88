package adapter

import (
	"errors"
	"fmt"
	"maps"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/dmitrymomot/socialauth/pkg/provider"
)

// Well-known fields every adapted config starts with.
const (
	FieldClientID          = "clientID"
	FieldClientSecret      = "clientSecret"
	FieldCallbackURL       = "callbackURL"
	FieldPassReqToCallback = "passReqToCallback"
)

// Adapter turns canonical provider settings into the config layout
// a provider strategy expects. It holds no mutable state.
type Adapter struct {
	rules    *provider.RuleSet
	validate *validator.Validate
	baseURL  string
}

// New creates an adapter that resolves callback URLs against baseURL.
// A nil rule set means no provider has special cases.
func New(baseURL string, rules *provider.RuleSet) *Adapter {
	if rules == nil {
		rules = provider.NewRuleSet(nil)
	}
	return &Adapter{
		rules:    rules,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		baseURL:  strings.TrimRight(baseURL, "/"),
	}
}

// BaseURL returns the absolute base the callback URLs are built from.
func (a *Adapter) BaseURL() string {
	return a.baseURL
}

// Adapt builds the config for provider id.
//
// The result is assembled in a fixed order: strategy overrides, extra
// credential fields, the mandatory fields, then the provider rule's
// renames, injections and static merge. Later steps overwrite earlier ones.
func (a *Adapter) Adapt(id provider.ID, s provider.Settings) (Config, error) {
	if err := a.check(s); err != nil {
		return nil, fmt.Errorf("%w (provider %q)", err, id)
	}

	cfg := make(Config, len(s.StrategyOverrides)+len(s.Credentials.Extra)+4)
	maps.Copy(cfg, s.StrategyOverrides)
	maps.Copy(cfg, s.Credentials.Extra)
	cfg[FieldClientID] = s.Credentials.ClientID
	cfg[FieldClientSecret] = s.Credentials.ClientSecret
	cfg[FieldCallbackURL] = a.baseURL + s.URLs.Callback
	cfg[FieldPassReqToCallback] = true

	rule := a.rules.For(id)

	for _, rn := range rule.Rename {
		v, ok := cfg[rn.From]
		if !ok || rn.From == rn.To {
			continue
		}
		cfg[rn.To] = v
		delete(cfg, rn.From)
	}

	if len(rule.Inject) > 0 {
		ctx := provider.InjectContext{BaseURL: a.baseURL, Settings: s.Clone()}
		for name, fn := range rule.Inject {
			cfg[name] = fn(ctx)
		}
	}

	maps.Copy(cfg, rule.StaticMerge)

	return cfg, nil
}

func (a *Adapter) check(s provider.Settings) error {
	err := a.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Join(ErrInvalidSettings, err)
	}

	var missing, invalid []string
	for _, fe := range verrs {
		switch fe.StructField() {
		case "ClientID", "ClientSecret":
			missing = append(missing, fe.StructField())
		default:
			invalid = append(invalid, fe.Namespace())
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", ErrMissingCredential, strings.Join(missing, ", "))
	}
	return fmt.Errorf("%w: %s", ErrInvalidSettings, strings.Join(invalid, ", "))
}
