// Package config loads, normalizes, and validates pdfsim configuration.
//
// Settings come from a TOML file (the --config flag,
// ~/.config/pdfsim/config.toml or ./pdfsim.toml, first match wins) layered
// over Default. A missing file is not an error. PDFSIM_HOME overrides the
// workspace directory when the file leaves it empty.
package config
