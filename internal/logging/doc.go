// Package logging provides a unified logging interface for the sumset tools.
// Components log through the Logger interface; ZerologAdapter backs it with
// zerolog in JSON or console form.
package logging
