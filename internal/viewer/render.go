package viewer

import (
	"html/template"
	"io"
)

var directiveTmpl = template.Must(template.New("directive").Parse(`
{{- if eq .Mode "embed_document" -}}
<iframe class="doc-viewer" src="{{.Locator}}" title="Document preview"></iframe>
{{- else if eq .Mode "embed_image" -}}
<img class="doc-viewer" src="{{.Locator}}" alt="Document preview">
{{- else if eq .Mode "link_out" -}}
<a class="doc-viewer" href="{{.Locator}}" target="_blank" rel="noopener noreferrer">Open document</a>
{{- end -}}
`))

// Render writes the HTML fragment for d. NoOp writes nothing.
func Render(w io.Writer, d Directive) error {
	return directiveTmpl.Execute(w, d)
}
