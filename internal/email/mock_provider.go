package email

import "sync"

// SentMessage - письмо, запомненное MockProvider
type SentMessage struct {
	To       []string
	Subject  string
	Template string
	Data     TemplateData
}

// MockProvider используется для тестов и локальной разработки без SMTP.
type MockProvider struct {
	mu   sync.Mutex
	sent []SentMessage
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Send(email *Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentMessage{To: email.To, Subject: email.Subject})
	return nil
}

func (m *MockProvider) SendTemplate(to []string, subject string, templateName string, data TemplateData) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, SentMessage{To: to, Subject: subject, Template: templateName, Data: data})
	return nil
}

func (m *MockProvider) Validate() error { return nil }
func (m *MockProvider) Close() error    { return nil }

// Sent возвращает копию отправленных писем
func (m *MockProvider) Sent() []SentMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]SentMessage, len(m.sent))
	copy(out, m.sent)
	return out
}
