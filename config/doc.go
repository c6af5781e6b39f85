/*
Package config loads and exposes the settings an httpd server runs with.

Settings come from the "httpd.conf" file found in the base path.
The file is line oriented, each line a directive name followed by its value:

	# comments and blank lines are skipped
	Listen 8080
	DocumentRoot www/
	MaxThreads 10
	KeepAlive on
	ErrorDocument404 errors/404.html
	ErrorDocument403 errors/403.html
	ServletMappedExtension dhtml
	MimeType conf/mime.types
	DefaultMimeType text/plain
	DirectoryIndex home.html default.html

Unknown directives are ignored.
Paths are relative to the base path.
*/
package config
