package userservice

// Vehicle модель транспортного средства из UserService
type Vehicle struct {
	ID           int64  `json:"id"`
	UserID       int64  `json:"user_id"`
	LicensePlate string `json:"license_plate"`
	Category     string `json:"category"` // Категория транспорта (car, bike, ev)
	IsSelected   bool   `json:"is_selected"`
}

// ErrorResponse модель ошибки от UserService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}
