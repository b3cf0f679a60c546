// Package dataset loads and caches the precomputed dashboard inputs: the
// unified observations/events table, the event feature series, the
// event-indicator impact matrix and the 2025-2027 forecasts.
//
// Loading is fail-soft throughout. A missing or malformed file produces a
// user-visible warning on the snapshot and an empty placeholder; no load
// error ever reaches the presentation layer. Datasets are memoized for the
// process lifetime; Reload or a restart are the only refresh paths.
package dataset
