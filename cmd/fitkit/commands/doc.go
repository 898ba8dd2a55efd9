// Package commands defines the fitkit command tree: model discovery,
// configuration management, single fits and concurrent comparisons.
package commands
