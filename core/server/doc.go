// Package server holds the HTTP server configuration.
//
// The main application entry point handles the server startup; this
// package only defines the settings embedded by core/config, such as the
// listen port and the API key protecting the inventory endpoints.
package server
