// Package adapter converts canonical provider settings into the flat config
// shape a provider strategy expects.
//
// Every provider starts from the same canonical input:
//
//	settings := provider.Settings{
//		Credentials: provider.Credentials{ClientID: "id", ClientSecret: "secret"},
//		URLs: provider.URLs{
//			Auth:     "/auth/twitter",
//			Callback: "/auth/twitter/callback",
//			Success:  "/",
//			Fail:     "/login",
//		},
//	}
//
//	a := adapter.New("https://app.example.com", provider.DefaultRules())
//	cfg, err := a.Adapt(provider.Twitter, settings)
//	// cfg["consumerKey"] == "id", cfg["callbackURL"] == "https://app.example.com/auth/twitter/callback"
//
// Provider rules are applied in a fixed order: renames, then injections, then
// the static merge. A rename whose source field is absent is skipped.
package adapter
