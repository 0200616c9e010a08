package complete_booking

import "time"

// Request модель запроса на завершение бронирования
type Request struct {
	BookingID int64 // ID бронирования
	UserID    int64 // ID пользователя, завершающего бронирование
}

// Breakdown составляющие ставки, зафиксированные при создании бронирования
type Breakdown struct {
	BaseRate            float64 // Базовая ставка за час
	OccupancyMultiplier float64 // Множитель загруженности
	OccupancyLabel      string  // Метка загруженности
	PeakMultiplier      float64 // Множитель пикового часа
	PeakLabel           string  // Метка пикового часа
	FinalRate           float64 // Итоговая ставка за час
}

// Response модель ответа с завершенным бронированием (чек для пользователя)
type Response struct {
	ID              int64     // ID бронирования
	CustomerID      int64     // ID пользователя
	FacilityID      int64     // ID парковки
	SlotID          string    // Слот
	VehicleCategory string    // Категория транспорта
	VehiclePlate    *string   // Госномер
	StartTime       time.Time // Время начала парковки
	EndTime         time.Time // Время завершения
	Status          string    // Статус бронирования
	PaymentStatus   string    // Статус оплаты
	PaymentRef      string    // Платежная ссылка, назначенная при завершении

	RateSnapshot    float64   // Зафиксированная ставка за час
	Pricing         Breakdown // Детализация ставки
	DurationMinutes int       // Оплачиваемая длительность в минутах
	TotalAmount     float64   // Итоговая сумма

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
