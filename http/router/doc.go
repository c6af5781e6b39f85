// Package router wraps a gorilla/mux router with a stack of middlewares applied to every request.
package router
