// Package config collects run settings from flags, IMAGE_STENCIL_*
// environment variables and, for anything still missing, interactive
// prompts.
package config
