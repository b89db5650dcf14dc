// Package authtransport implements the authenticated request pipeline as an
// http.RoundTripper chain.
//
// Transport attaches the stored bearer token to outgoing API calls, detects
// authorization failures, and performs a synchronous refresh-and-retry
// protocol before giving up. Callers never handle token attachment or refresh
// themselves; they inject the chain into their http.Client and issue plain
// requests.
//
// Routes matching the public-route predicate (login, registration, token
// refresh, password recovery) bypass the pipeline entirely: no token is
// attached and no 401 handling occurs.
//
// Concurrency: the 401-handling branch is a critical section guarded by a
// mutex. Under contention exactly one refresh network call is issued; every
// other caller blocks, then either retries with the token the winner
// installed or observes the original 401.
package authtransport
