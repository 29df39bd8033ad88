// Package socialauth adds social login to a net/http application from one
// uniform settings shape per provider.
//
// Every provider is configured the same way, whatever its handshake needs:
//
//	settings := map[socialauth.ProviderID]socialauth.Settings{
//	    "github": {
//	        Credentials: socialauth.Credentials{ClientID: id, ClientSecret: secret},
//	        URLs: socialauth.URLs{
//	            Auth:     "/auth/github",
//	            Callback: "/auth/github/callback",
//	            Success:  "/",
//	            Fail:     "/login",
//	        },
//	    },
//	}
//
// The manager adapts the settings to what each provider's strategy expects
// (OAuth2, OAuth1 or Sign in with Apple), binds the auth and callback routes,
// and reduces the provider's profile to a common shape before calling the
// single AuthFunc:
//
//	auth, _ := socialauth.New(socialauth.WithBaseURL("https://example.com"))
//	if err := auth.RegisterAll(settings); err != nil {
//	    log.Warn("provider setup", "error", err)
//	}
//
//	r := chi.NewRouter()
//	auth.Routes(r)
//	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
//	    sess, err := auth.CurrentUser(r)
//	    // ...
//	})
//
// Unsupported or misconfigured providers are skipped and reported; the
// others keep working. Failed logins redirect to URLs.Fail with a flash
// message that Manager.Flash pops.
//
// Settings can be loaded from YAML with config.LoadProviders; the
// socialauth command serves a ready-made login server.
package socialauth
