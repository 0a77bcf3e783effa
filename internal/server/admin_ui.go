package server

import (
	"html/template"
	"net/http"
)

var adminTmpl = template.Must(template.New("routes").Parse(`<!doctype html>
<html>
<head><title>fairies-and-unicorns routes</title></head>
<body>
<h1>API routes</h1>
<table border="1" cellpadding="4">
<tr><th>Method</th><th>Pattern</th><th>Summary</th><th>Example body</th></tr>
{{range .Routes}}<tr><td>{{.Method}}</td><td>{{.Pattern}}</td><td>{{.Summary}}</td><td><code>{{.ExampleBody}}</code></td></tr>
{{end}}</table>
</body>
</html>`))

type adminPageData struct {
	Routes []RouteDoc
}

// RegisterAdminUI exposes the route registry for operators, as JSON
// and as a plain HTML table.
func RegisterAdminUI(mux *http.ServeMux, rr *RouteRegistry) {
	mux.HandleFunc("GET /_/admin/routes.json", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, rr.List())
	})

	mux.HandleFunc("GET /_/admin", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		if err := adminTmpl.Execute(w, adminPageData{Routes: rr.List()}); err != nil {
			http.Error(w, err.Error(), 500)
		}
	})
}
