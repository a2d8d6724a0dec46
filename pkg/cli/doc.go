// Package cli implements the mockmaster command line.
//
// Every command registers itself on rootCmd from its own init function.
// Configuration is resolved once per invocation in rootCmd's
// PersistentPreRunE (defaults, global and local files, environment, then
// flags) and shared through the package-level cfg and logger.
package cli
