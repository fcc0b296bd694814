package repositories

import (
	"errors"

	"hostmarket_backend/internal/models"

	"gorm.io/gorm"
)

var ErrUnknownCounter = errors.New("unknown counter")

// Kind и Metric трекинга. Колонки берутся только из этого списка, в SQL не
// попадает ничего пришедшего из запроса.
const (
	KindRecruit = "recruit"
	KindNews    = "news"
	KindShort   = "short"

	MetricView  = "view"
	MetricClick = "click"
)

var counterColumns = map[string]string{
	MetricView:  "views",
	MetricClick: "clicks",
}

type CounterRepository interface {
	Increment(db *gorm.DB, kind, id, metric string) error
}

type CounterRepositoryImpl struct{}

func NewCounterRepository() CounterRepository {
	return &CounterRepositoryImpl{}
}

// CounterTarget проверяет пару kind/metric без обращения к базе
func CounterTarget(kind, metric string) (interface{}, string, error) {
	column, ok := counterColumns[metric]
	if !ok {
		return nil, "", ErrUnknownCounter
	}
	switch kind {
	case KindRecruit:
		return &models.Recruit{}, column, nil
	case KindNews:
		return &models.News{}, column, nil
	case KindShort:
		return &models.Short{}, column, nil
	}
	return nil, "", ErrUnknownCounter
}

// Increment не трогает updated_at: счетчик не является правкой документа
func (r *CounterRepositoryImpl) Increment(db *gorm.DB, kind, id, metric string) error {
	model, column, err := CounterTarget(kind, metric)
	if err != nil {
		return err
	}
	return db.Model(model).Where("id = ?", id).UpdateColumn(column, gorm.Expr(column+" + ?", 1)).Error
}
