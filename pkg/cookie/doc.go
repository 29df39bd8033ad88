// Package cookie writes and reads the cookies used by the login flow: the
// signed OAuth state, the signed session key and the encrypted failure flash.
//
//	m, err := cookie.New(
//		cookie.WithSecret(os.Getenv("COOKIE_SECRET")), // 32+ bytes
//		cookie.WithSecure(true),
//	)
//
//	_ = m.SetSigned(w, "session_key", id, 86400)
//	id, err := m.GetSigned(r, "session_key") // ErrBadSig if tampered
//
//	_ = m.SetFlash(w, cookie.Flash{Type: "error", Message: "access denied"})
//	f, err := m.PopFlash(w, r) // read once
//
// Signatures cover the cookie name, so a value signed for one cookie is
// rejected when replayed under another. Without a secret only Get, Set and
// Clear work; the rest return ErrNoSecret.
package cookie
