package resolver

import (
	"html/template"
	"io"
	"time"

	"shorturl-platform/internal/model"
)

const defaultCloakTitle = "Redirecting…"

var cloakTemplate = template.Must(template.New("cloak").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<meta name="robots" content="noindex, nofollow">
<title>{{.Title}}</title>
</head>
<body>
<main>
<h1>{{.Title}}</h1>
{{if .Description}}<p>{{.Description}}</p>{{end}}
<noscript><p><a href="{{.URL}}" rel="noreferrer">Continue</a></p></noscript>
</main>
<script>
var destination = {{.URL}};
setTimeout(function () { window.location.replace(destination); }, {{.DelayMS}});
</script>
</body>
</html>
`))

type cloakPage struct {
	Title       string
	Description string
	URL         string
	DelayMS     int64
}

// RenderCloakPage 渲染伪装中间页, 页面在 delay 后由脚本跳转到原始地址
func RenderCloakPage(w io.Writer, link model.Link, delay time.Duration) error {
	page := cloakPage{
		Title:       link.CloakTitle,
		Description: link.CloakDescription,
		URL:         link.OriginalURL,
		DelayMS:     delay.Milliseconds(),
	}
	if page.Title == "" {
		page.Title = link.Title
	}
	if page.Title == "" {
		page.Title = defaultCloakTitle
	}
	return cloakTemplate.Execute(w, page)
}
