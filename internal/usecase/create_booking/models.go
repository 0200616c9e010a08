package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	CustomerID      int64   // ID пользователя
	FacilityID      int64   // ID парковки
	SlotID          *string // Конкретный слот (опционально, иначе подбирается оптимальный)
	VehicleCategory *string // Категория транспорта (опционально, иначе берется из выбранного транспорта)
	VehiclePlate    *string // Госномер (опционально)
}

// Breakdown составляющие ставки на момент создания бронирования
type Breakdown struct {
	BaseRate            float64 // Базовая ставка за час
	OccupancyMultiplier float64 // Множитель загруженности
	OccupancyLabel      string  // Метка загруженности
	PeakMultiplier      float64 // Множитель пикового часа
	PeakLabel           string  // Метка пикового часа
	FinalRate           float64 // Итоговая ставка за час
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64     // ID созданного бронирования
	CustomerID      int64     // ID пользователя
	FacilityID      int64     // ID парковки
	SlotID          string    // Назначенный слот
	VehicleCategory string    // Категория транспорта
	VehiclePlate    *string   // Госномер
	StartTime       time.Time // Время начала парковки
	Status          string    // Статус бронирования
	PaymentStatus   string    // Статус оплаты

	RateSnapshot float64   // Зафиксированная ставка за час
	Pricing      Breakdown // Детализация ставки

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
