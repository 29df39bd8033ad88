package provider

import "maps"

// Credentials holds the client credentials issued by a provider.
// Extra carries engine-specific optional fields (e.g. Apple teamID, keyID).
type Credentials struct {
	Extra        map[string]any `yaml:"extra,omitempty" json:"extra,omitempty" mapstructure:"extra"`
	ClientID     string         `yaml:"clientID" json:"clientID" mapstructure:"clientID" validate:"required"`
	ClientSecret string         `yaml:"clientSecret" json:"clientSecret" mapstructure:"clientSecret" validate:"required"`
}

// URLs are the four route paths of a provider flow.
type URLs struct {
	Auth     string `yaml:"auth" json:"auth" mapstructure:"auth" validate:"required,startswith=/"`
	Callback string `yaml:"callback" json:"callback" mapstructure:"callback" validate:"required,startswith=/"`
	Success  string `yaml:"success" json:"success" mapstructure:"success" validate:"required"`
	Fail     string `yaml:"fail" json:"fail" mapstructure:"fail" validate:"required"`
}

// Settings is the canonical, provider-agnostic configuration of one provider.
type Settings struct {
	AuthParameters    map[string]string `yaml:"authParameters,omitempty" json:"authParameters,omitempty" mapstructure:"authParameters"`
	StrategyOverrides map[string]any    `yaml:"strategy,omitempty" json:"strategy,omitempty" mapstructure:"strategy"`
	URLs              URLs              `yaml:"urls" json:"urls" mapstructure:"urls"`
	Credentials       Credentials       `yaml:"credentials" json:"credentials" mapstructure:"credentials"`
}

// Clone returns a copy that shares no maps with s.
// Nested values inside StrategyOverrides and Extra are copied shallowly.
func (s Settings) Clone() Settings {
	out := s
	out.AuthParameters = maps.Clone(s.AuthParameters)
	out.StrategyOverrides = maps.Clone(s.StrategyOverrides)
	out.Credentials.Extra = maps.Clone(s.Credentials.Extra)
	return out
}

// Extra returns the named extra credential field as a string.
func (s Settings) Extra(name string) string {
	if s.Credentials.Extra == nil {
		return ""
	}
	v, _ := s.Credentials.Extra[name].(string)
	return v
}
