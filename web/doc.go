// Package web serves the chat over HTTP. Each browser conversation gets a
// session id; its dialogue state lives in a session.Store between requests.
package web
