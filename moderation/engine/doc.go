// Moderation rules engine for real-time group-chat abuse filtering.
//
// This package (`github.com/groupguard/bouncer/moderation/engine`) contains a "rules engine" which inspects every inbound text message and drives enforcement. Messages flow through pre-filters (no text, excluded senders, forwarded content, active restrictions), then an ordered chain of classifiers where the first match wins. Rule matches queue effects (timed sender restrictions, duplicate tracking, window resets) which the engine persists to the shared registries before performing best-effort gateway enforcement (recent-message sweeps and permission restrictions).
//
// See `moderation/rules` for the classifiers themselves, and `cmd/bouncer` for a daemon built on this package.
package engine
