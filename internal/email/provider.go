package email

// Provider - отправка писем
type Provider interface {
	// Send отправляет готовое письмо
	Send(email *Email) error

	// SendTemplate рендерит шаблон и отправляет результат как HTML
	SendTemplate(to []string, subject string, templateName string, data TemplateData) error

	// Validate проверяет конфигурацию провайдера
	Validate() error

	Close() error
}

// TemplateRenderer - рендеринг шаблонов писем
type TemplateRenderer interface {
	Render(templateName string, data TemplateData) (string, error)
	AddTemplate(name string, template string) error
	LoadTemplates(dirPath string) error
}
