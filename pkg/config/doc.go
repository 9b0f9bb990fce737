// Package config defines the configuration structures for Echo PDK and the
// loading pipeline that fills them: YAML file, then defaults, then ECHO_*
// environment variable overrides, then validation. Validation collects every
// problem into a single ValidationError instead of stopping at the first.
package config
