// Package config provides scrollmux settings loading and live reload.
//
// Settings are read from a TOML file. A missing file is not an error;
// defaults apply. The Watcher monitors the settings file with fsnotify
// and delivers freshly-loaded settings to a handler after a short
// debounce, so running trackers can pick up changes without a restart.
package config
