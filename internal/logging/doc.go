// Package logging provides leveled logging for the virtual museum service.
//
// The log level is controlled by the LOG_LEVEL environment variable
// (debug, info, warn, error) or by setting DEBUG=true, which forces
// debug-level output. The default level is info.
package logging
