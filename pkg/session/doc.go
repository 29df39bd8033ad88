// Package session keeps the user returned by a successful social login
// between requests.
//
// The session ID travels in the signed "session_key" cookie; the session
// itself lives in a Store. CacheStore works with any cache backend:
//
//	store := session.NewCacheStore(cache.NewMemory[session.Session](cache.MemoryConfig{CleanupInterval: time.Minute}))
//	sessions := session.NewManager(store, cookies, 24*time.Hour)
//
//	sess, err := sessions.Login(w, r, "github", "583231", user)
//	sess, err = sessions.Current(r)
//	u, err := session.User[profile.Profile](sess)
//	err = sessions.Logout(w, r)
package session
