package email

import (
	"fmt"
	"html/template"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// TemplateManager реализует TemplateRenderer для управления шаблонами email
type TemplateManager struct {
	templates map[string]*template.Template
	mutex     sync.RWMutex
}

// NewTemplateManager создает новый менеджер шаблонов
func NewTemplateManager() *TemplateManager {
	return &TemplateManager{
		templates: make(map[string]*template.Template),
	}
}

// Render рендерит шаблон с данными
func (tm *TemplateManager) Render(templateName string, data TemplateData) (string, error) {
	tm.mutex.RLock()
	tpl, exists := tm.templates[templateName]
	tm.mutex.RUnlock()

	if !exists {
		return "", fmt.Errorf("template not found: %s", templateName)
	}

	var buf strings.Builder
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// AddTemplate добавляет шаблон в менеджер
func (tm *TemplateManager) AddTemplate(name string, templateStr string) error {
	tpl, err := template.New(name).Parse(templateStr)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	tm.mutex.Lock()
	tm.templates[name] = tpl
	tm.mutex.Unlock()

	return nil
}

// LoadTemplates загружает шаблоны из директории
func (tm *TemplateManager) LoadTemplates(dirPath string) error {
	return filepath.WalkDir(dirPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() || !strings.HasSuffix(path, ".html") {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", path, err)
		}

		templateName := strings.TrimSuffix(filepath.Base(path), ".html")
		if err := tm.AddTemplate(templateName, string(content)); err != nil {
			return fmt.Errorf("failed to add template %s: %w", templateName, err)
		}

		return nil
	})
}

// RegisterDefaults добавляет встроенные шаблоны уведомлений
func (tm *TemplateManager) RegisterDefaults() error {
	for name, body := range defaultTemplates {
		if err := tm.AddTemplate(name, body); err != nil {
			return err
		}
	}
	return nil
}

// Subject - тема письма для встроенного шаблона
func Subject(templateName string) string {
	if s, ok := defaultSubjects[templateName]; ok {
		return s
	}
	return "HostMarket notification"
}

var defaultSubjects = map[string]string{
	TemplateApplicationSubmitted:     "New application to your recruit",
	TemplateApplicationStatusChanged: "Your application status changed",
	TemplateOfferReceived:            "You received a new offer",
	TemplateOfferStatusChanged:       "Offer status changed",
	TemplateProposalReceived:         "You received a new proposal",
	TemplateProposalStatusChanged:    "Proposal status changed",
}

var defaultTemplates = map[string]string{
	TemplateApplicationSubmitted: `<p>Hello {{.Name}},</p>
<p>A new application was submitted to <b>{{.RecruitTitle}}</b>.</p>`,
	TemplateApplicationStatusChanged: `<p>Hello {{.Name}},</p>
<p>Your application to <b>{{.RecruitTitle}}</b> is now <b>{{.Status}}</b>.</p>`,
	TemplateOfferReceived: `<p>Hello {{.Name}},</p>
<p><b>{{.BrandName}}</b> sent you an offer.{{if .ReplyDeadline}} Please reply before {{.ReplyDeadline}}.{{end}}</p>`,
	TemplateOfferStatusChanged: `<p>Hello {{.Name}},</p>
<p>Offer {{.OfferID}} is now <b>{{.Status}}</b>.{{if .ResponseMessage}}</p><p>{{.ResponseMessage}}{{end}}</p>`,
	TemplateProposalReceived: `<p>Hello {{.Name}},</p>
<p><b>{{.BrandName}}</b> sent you a proposal.</p>`,
	TemplateProposalStatusChanged: `<p>Hello {{.Name}},</p>
<p>Proposal {{.ProposalID}} is now <b>{{.Status}}</b>.</p>`,
}

// GetTemplate возвращает шаблон по имени (для тестирования)
func (tm *TemplateManager) GetTemplate(name string) *template.Template {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()
	return tm.templates[name]
}

// TemplateNames возвращает список имен загруженных шаблонов
func (tm *TemplateManager) TemplateNames() []string {
	tm.mutex.RLock()
	defer tm.mutex.RUnlock()

	names := make([]string, 0, len(tm.templates))
	for name := range tm.templates {
		names = append(names, name)
	}

	return names
}
