// Package logging provides concrete implementations of the pgfix.Logger interface.
package logging
