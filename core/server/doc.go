// Package server holds the HTTP server configuration and the port binder.
//
// While the main application entry point handles the server startup, this
// package defines the configuration structure and valid values for server
// settings, and the Binder that turns a requested host/port into an owned
// listening socket.
//
// # Port fallback
//
// Development machines tend to have the popular ports taken. Bind tries the
// requested port first, then the next DefaultSearchWidth ports in ascending
// order, and finally asks the OS for an ephemeral port, so the server comes
// up without the user having to hunt for a free port themselves.
//
// # Usage
//
//	res, err := server.NewBinder().Bind(ctx, server.BindRequest{
//	    Host:        cfg.Host,
//	    Port:        cfg.Port,
//	    SearchWidth: server.DefaultSearchWidth,
//	})
package server
