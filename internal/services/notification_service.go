package services

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"hostmarket_backend/internal/email"
	"hostmarket_backend/internal/logger"
	"hostmarket_backend/internal/repositories"
)

// NotificationService отправляет письма о событиях заявок и предложений.
// Отправка асинхронная: ошибки только логируются и не влияют на ответ.
type NotificationService interface {
	Notify(ctx context.Context, db *gorm.DB, userID, templateName string, data email.TemplateData)
	// Wait дожидается уже запущенных отправок (остановка сервера, тесты)
	Wait()
}

type notificationService struct {
	userRepo repositories.UserRepository
	provider email.Provider
	wg       sync.WaitGroup
}

func NewNotificationService(userRepo repositories.UserRepository, provider email.Provider) NotificationService {
	return &notificationService{userRepo: userRepo, provider: provider}
}

func (s *notificationService) Notify(ctx context.Context, db *gorm.DB, userID, templateName string, data email.TemplateData) {
	if s.provider == nil || userID == "" {
		return
	}

	// адрес ищем синхронно: db принадлежит запросу
	user, err := s.userRepo.FindByID(withCtx(ctx, db), userID)
	if err != nil {
		logger.CtxWarn(ctx, "notification recipient not found", "user_id", userID, "template", templateName, "error", err)
		return
	}

	payload := email.TemplateData{"Name": user.Name}
	for k, v := range data {
		payload[k] = v
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		err := s.provider.SendTemplate([]string{user.Email}, email.Subject(templateName), templateName, payload)
		logger.WorkerLog("notifier", templateName, err, "user_id", userID)
	}()
}

func (s *notificationService) Wait() {
	s.wg.Wait()
}
