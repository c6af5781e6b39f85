package errorhandler

import (
	"html/template"
	"io"
)

var documentTmpl = template.Must(template.New("error").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
<style>body{font-family:sans-serif;margin:2em;}h1{font-size:1.5em;}</style>
</head>
<body>
<h1>{{ .Title }}</h1>
<p>{{ .Message }}</p>
</body>
</html>
`))

// A Document is the synthesized HTML page for an error without an override document.
type Document struct {
	Title   string
	Message string
}

// Render writes the escaped HTML of d to w.
func (d Document) Render(w io.Writer) error {
	return documentTmpl.Execute(w, d)
}
