/*
Package response defines the Sink an httpd component writes a single HTTP response to,
and implements it on top of [net/http.ResponseWriter] with [Writer].

A Sink separates declaring a response from sending it.
Status, content type and content length are recorded until FlushHeaders sends them.
Text written to Writer() is buffered until Flush.
Raw streams go straight to the client with ServeStream,
which refuses to run before the headers have been flushed:
a body byte can never precede a declared Content-Length.
*/
package response
