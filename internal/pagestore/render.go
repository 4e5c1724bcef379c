package pagestore

import (
	"bytes"
	"html/template"
)

// RenderHTML produces a self-contained static document for a page. The
// markup is intentionally plain; the editor front end owns the real
// rendering, this export only needs to stand alone.
func RenderHTML(rec Record) ([]byte, error) {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, rec); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<meta name="description" content="{{.Description}}">
<style>
  body { margin: 0; font-family: {{.Page.Typography.Body}}, sans-serif;
         background: {{.Page.ColorScheme.Background}}; color: {{.Page.ColorScheme.Text}}; }
  h1, h2 { font-family: {{.Page.Typography.Heading}}, sans-serif; }
  section { padding: 4rem 1.5rem; max-width: 960px; margin: 0 auto; }
  .cta { display: inline-block; margin-top: 1.5rem; padding: 0.75rem 2rem;
         background: {{.Page.ColorScheme.Accent}}; color: {{.Page.ColorScheme.Background}};
         border-radius: 6px; text-decoration: none; font-weight: 600; }
  .items { display: grid; gap: 1.5rem; grid-template-columns: repeat(auto-fit, minmax(240px, 1fr)); margin-top: 2rem; }
  .item h3 { margin: 0 0 0.5rem; }
  {{if .Page.SmoothScroll}}html { scroll-behavior: smooth; }{{end}}
</style>
</head>
<body>
{{range .Page.Sections}}
<section id="{{.ID}}" data-type="{{.Type}}" data-variant="{{.Content.Variant}}">
  <h2>{{.Content.Heading}}</h2>
  {{if .Content.Subheading}}<p>{{.Content.Subheading}}</p>{{end}}
  {{if .Content.BodyText}}<p>{{.Content.BodyText}}</p>{{end}}
  {{if .Items}}<div class="items">
    {{range .Items}}<div class="item">
      <h3>{{.Title}}{{if .Value}} <span>{{.Value}}</span>{{end}}</h3>
      {{if .Description}}<p>{{.Description}}</p>{{end}}
      {{if .Label}}<small>{{.Label}}</small>{{end}}
    </div>{{end}}
  </div>{{end}}
  {{if .Content.CTAText}}<a class="cta" href="{{if .Content.CTALink}}{{.Content.CTALink}}{{else}}#{{end}}">{{.Content.CTAText}}</a>{{end}}
</section>
{{end}}
</body>
</html>
`))
