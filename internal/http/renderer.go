package httpx

import (
	"bytes"
	"errors"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
)

// TemplateRenderer renders HTML templates for UI responses.
type TemplateRenderer struct {
	t      *template.Template
	logger *slog.Logger
}

// TemplateRendererConfig holds configuration for creating a TemplateRenderer.
type TemplateRendererConfig struct {
	TemplateFS fs.FS        // Filesystem containing templates (required)
	Logger     *slog.Logger // Logger for template errors (optional)
}

// NewTemplateRenderer constructs a renderer by parsing templates from the provided config.
func NewTemplateRenderer(cfg TemplateRendererConfig) (*TemplateRenderer, error) {
	if cfg.TemplateFS == nil {
		return nil, errors.New("TemplateFS is required")
	}

	renderer := &TemplateRenderer{logger: cfg.Logger}

	var t *template.Template
	funcs := createTemplateFuncs(&t)
	var err error
	t, err = template.New("root").Funcs(funcs).ParseFS(cfg.TemplateFS,
		"*.tmpl",
		"pages/*.tmpl",
		"partials/*.tmpl",
	)
	if err != nil {
		if cfg.Logger != nil {
			cfg.Logger.Error("template parsing failed",
				slog.Any("error", err),
				slog.String("phase", "initialization"),
			)
		}
		return nil, err
	}
	renderer.t = t
	return renderer, nil
}

// RenderFull renders the full page (layout + page content).
func (r *TemplateRenderer) RenderFull(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.renderTemplate(w, "layout", data)
}

// RenderPartial renders only the main content area.
func (r *TemplateRenderer) RenderPartial(w http.ResponseWriter, _ *http.Request, data any) error {
	return r.renderTemplate(w, "content", data)
}

func (r *TemplateRenderer) renderTemplate(w http.ResponseWriter, templateName string, data any) error {
	var buf bytes.Buffer
	if err := r.t.ExecuteTemplate(&buf, templateName, data); err != nil {
		r.logTemplateError(templateName, err)
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := buf.WriteTo(w); err != nil {
		if r.logger != nil {
			r.logger.Error("failed to write rendered template",
				slog.String("template", templateName),
				slog.Any("error", err),
			)
		}
		return err
	}

	return nil
}

// logTemplateError logs a template execution error with context.
func (r *TemplateRenderer) logTemplateError(templateName string, err error) {
	if r.logger == nil || err == nil {
		return
	}
	r.logger.Error("template execution failed",
		slog.String("template", templateName),
		slog.Any("error", err),
	)
}

func createTemplateFuncs(t **template.Template) template.FuncMap {
	return template.FuncMap{
		"sectionTmpl": ContentTemplateFor,
		"renderSection": func(page string, data any) (template.HTML, error) {
			if t == nil || *t == nil {
				return "", errors.New("template not initialized")
			}
			var buf bytes.Buffer
			if err := (*t).ExecuteTemplate(&buf, ContentTemplateFor(page), data); err != nil {
				return "", err
			}
			// #nosec G203 - The HTML here is rendered by our own trusted templates (html/template),
			// and is embedded back into the same template set. User-provided values were already
			// auto-escaped during ExecuteTemplate above.
			return template.HTML(buf.String()), nil
		},
	}
}
