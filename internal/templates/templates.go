package templates

import (
	"embed"
	"html/template"
	"io"
	"sync"
)

//go:embed *.html
var templateFiles embed.FS

// IndexPage is the data the chat page renders with
type IndexPage struct {
	Title      string
	Storefront string
}

// TemplateManager parses embedded pages once and reuses them
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager creates a new template manager
func NewTemplateManager() *TemplateManager {
	return &TemplateManager{
		templates: make(map[string]*template.Template),
	}
}

// LoadTemplate loads a template by name, caching it for future use
func (tm *TemplateManager) LoadTemplate(name string) (*template.Template, error) {
	tm.mutex.RLock()
	tmpl, exists := tm.templates[name]
	tm.mutex.RUnlock()

	if exists {
		return tmpl, nil
	}

	tm.mutex.Lock()
	defer tm.mutex.Unlock()

	// Double-check after acquiring write lock
	if tmpl, exists := tm.templates[name]; exists {
		return tmpl, nil
	}

	content, err := templateFiles.ReadFile(name + ".html")
	if err != nil {
		return nil, err
	}

	tmpl, err = template.New(name).Parse(string(content))
	if err != nil {
		return nil, err
	}

	tm.templates[name] = tmpl
	return tmpl, nil
}

// Render executes the named page into w
func (tm *TemplateManager) Render(w io.Writer, name string, data interface{}) error {
	tmpl, err := tm.LoadTemplate(name)
	if err != nil {
		return err
	}
	return tmpl.Execute(w, data)
}

var globalTemplateManager = NewTemplateManager()

// GetTemplate gets a template from the global manager
func GetTemplate(name string) (*template.Template, error) {
	return globalTemplateManager.LoadTemplate(name)
}

// Render executes a page from the global manager
func Render(w io.Writer, name string, data interface{}) error {
	return globalTemplateManager.Render(w, name, data)
}
