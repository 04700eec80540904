package codegen

import "text/template"

var tmpl = template.Must(template.New("codegen").Parse(`
{{- define "file" -}}
{{.Header}}
// Source: {{.Source}}

package {{.Package}}
{{if .Imports}}
import (
{{- range .Imports}}
	{{if .Alias}}{{.Alias}} {{end}}{{printf "%q" .Path}}
{{- end}}
)
{{end}}
{{- range .Structs}}
{{template "struct" .}}
{{- end}}
{{- end}}

{{- define "struct"}}
{{- if .Declare}}
type {{.Name}} struct {
{{- range .Fields}}
	{{.Name}} {{.Type}}
{{- end}}
}
{{end}}
{{- with .Constructor}}
// {{.Name}} returns a new {{$.Name}} with every cached value empty.
func {{.Name}}({{range $i, $p := .Params}}{{if $i}}, {{end}}{{$p.Name}} {{$p.Type}}{{end}}) *{{$.Name}} {
	return &{{$.Name}}{
{{- range .Inits}}
		{{.Field}}: {{.Value}},
{{- end}}
	}
}
{{end}}
{{- range .Methods}}
{{- if eq .Kind "get"}}
// {{.Name}} returns {{.Field}}.
func ({{$.Recv}} *{{$.Name}}) {{.Name}}() {{.Type}} {
	return {{$.Recv}}.{{.Field}}
}
{{else if eq .Kind "set"}}
// {{.Name}} replaces {{.Field}}.{{if .Invalidates}} The cached {{.Invalidates}} is cleared first.{{end}}
func ({{$.Recv}} *{{$.Name}}) {{.Name}}({{.Param}} {{.Type}}) {
{{- if .Invalidates}}
	{{$.Recv}}.{{.Invalidates}}.Invalidate()
{{- end}}
	{{$.Recv}}.{{.Field}} = {{.Param}}
}
{{else if eq .Kind "compute"}}
// {{.Name}} returns {{.Field}}, computing it with {{.Func}} when no cached value is present.
func ({{$.Recv}} *{{$.Name}}) {{.Name}}() {{.Type}} {
	return {{$.Recv}}.{{.Field}}.GetOrInit(func() {{.Type}} {
		return {{.Func}}({{range $i, $a := .Args}}{{if $i}}, {{end}}{{$.Recv}}.{{$a}}{{end}})
	})
}
{{end}}
{{- end}}
{{- if or .Targets .Cells}}
// Compile-time checks for the fields {{.Name}} invalidates and caches.
func _() {
	var {{$.Recv}} {{.Name}}
{{- range .Targets}}
	var _ interface{ Invalidate() } = &{{$.Recv}}.{{.Field}}
{{- end}}
{{- range .Cells}}
	var _ interface {
		Invalidate()
		GetOrInit(func() {{.Type}}) {{.Type}}
	} = &{{$.Recv}}.{{.Field}}
{{- end}}
}
{{end}}
{{- end}}
`))
