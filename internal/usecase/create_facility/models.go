package create_facility

import "time"

// Request модель запроса на создание парковки
type Request struct {
	OwnerID        int64    // ID владельца
	Name           string   // Название парковки
	Floors         int      // Количество этажей
	Rows           int      // Количество рядов на этаже
	Columns        int      // Количество мест в ряду
	Categories     []string // Поддерживаемые категории транспорта (опционально)
	BaseRate       float64  // Базовая ставка за час
	DynamicPricing *bool    // Динамическое ценообразование (опционально, по умолчанию включено)
}

// Response модель ответа с созданной парковкой.
// Сетка слотов в ответ не включается: она может содержать тысячи записей
// и доступна через GET парковки.
type Response struct {
	ID             int64     // ID созданной парковки
	OwnerID        int64     // ID владельца
	Name           string    // Название
	Floors         int       // Количество этажей
	Rows           int       // Количество рядов
	Columns        int       // Количество мест в ряду
	Categories     []string  // Поддерживаемые категории
	BaseRate       float64   // Базовая ставка за час
	DynamicPricing bool      // Динамическое ценообразование
	TotalSlots     int       // Размер сгенерированной сетки
	CreatedAt      time.Time // Время создания
	UpdatedAt      time.Time // Время обновления
}
