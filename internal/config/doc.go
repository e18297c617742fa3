// Package config loads and watches the holdshift configuration.
//
// Configuration comes from three layers, later layers winning: built-in
// defaults, a TOML file, and HOLDSHIFT_* environment variables. A Store
// holds the current snapshot behind an atomic pointer so the event path
// can read thresholds on every keystroke without locking, while a
// file watcher swaps in a fresh snapshot when the user edits the file.
// Invalid values are clamped back to defaults and reported as warnings;
// a reload that fails to parse keeps the previous good snapshot.
package config
