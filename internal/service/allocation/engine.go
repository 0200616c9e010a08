package allocation

import (
	"github.com/m04kA/SMC-ParkingService/internal/domain"
)

// Engine подбирает оптимальный слот по взвешенной оценке трёх критериев:
// удалённость от входа, загруженность этажа и удобство выезда.
// Меньшая оценка - лучший слот.
type Engine struct {
	distanceWeight      float64
	occupancyWeight     float64
	accessibilityWeight float64
}

// Option настройка движка подбора
type Option func(*Engine)

// WithWeights переопределяет веса критериев оценки
// Сумма весов 1.0 сохраняет оценку в диапазоне [0, 1]
func WithWeights(distance, occupancy, accessibility float64) Option {
	return func(e *Engine) {
		e.distanceWeight = distance
		e.occupancyWeight = occupancy
		e.accessibilityWeight = accessibility
	}
}

// NewEngine создает движок подбора со стандартными весами
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		distanceWeight:      domain.WeightDistance,
		occupancyWeight:     domain.WeightOccupancy,
		accessibilityWeight: domain.WeightAccessibility,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// FindOptimal возвращает копию лучшего свободного слота запрошенной категории
//
// Кандидаты сравниваются строгим "меньше", поэтому при равных оценках побеждает
// слот, который встретился раньше в порядке генерации (этаж -> ряд -> место).
// Слоты парковки не изменяются: резервирование - отдельный шаг вызывающей стороны.
func (e *Engine) FindOptimal(facility *domain.Facility, category domain.VehicleCategory) (domain.Slot, error) {
	// Загруженность считаем по этажам один раз, а не на каждого кандидата
	floorOccupancy := make(map[int]float64, facility.Floors)
	for floor := 0; floor < facility.Floors; floor++ {
		floorOccupancy[floor] = facility.FloorOccupancy(floor)
	}

	var best *domain.Slot
	var bestScore float64

	for i := range facility.Slots {
		slot := &facility.Slots[i]
		if !slot.IsAvailable() || !slot.Accepts(category) {
			continue
		}

		score := e.score(facility, slot, floorOccupancy[slot.Floor])
		if best == nil || score < bestScore {
			best = slot
			bestScore = score
		}
	}

	if best == nil {
		return domain.Slot{}, ErrNoSlotAvailable
	}

	return *best, nil
}

// Score вычисляет взвешенную оценку слота в диапазоне [0, 1]
func (e *Engine) Score(facility *domain.Facility, slot *domain.Slot) float64 {
	return e.score(facility, slot, facility.FloorOccupancy(slot.Floor))
}

func (e *Engine) score(facility *domain.Facility, slot *domain.Slot, floorOccupancy float64) float64 {
	return e.distanceWeight*distanceScore(facility, slot) +
		e.occupancyWeight*floorOccupancy +
		e.accessibilityWeight*accessibilityScore(facility, slot)
}

// distanceScore нормализует удалённость слота от входа (этаж 0, ряд 0, место 0)
func distanceScore(facility *domain.Facility, slot *domain.Slot) float64 {
	maxFloor := maxIndex(facility.Floors)
	maxRow := maxIndex(facility.Rows)
	maxColumn := maxIndex(facility.Columns)

	denominator := maxFloor + maxRow + maxColumn
	if denominator < 1 {
		denominator = 1
	}

	return float64(slot.Floor+slot.Row+slot.Column) / float64(denominator)
}

// accessibilityScore оценивает удобство выезда: крайние места ряда ближе к проезду,
// нижние ряды ближе к выходу
func accessibilityScore(facility *domain.Facility, slot *domain.Slot) float64 {
	maxRow := maxIndex(facility.Rows)
	maxColumn := maxIndex(facility.Columns)

	fromEdge := slot.Column
	if maxColumn-slot.Column < fromEdge {
		fromEdge = maxColumn - slot.Column
	}

	denominator := maxColumn/2 + maxRow
	if denominator < 1 {
		denominator = 1
	}

	return float64(fromEdge+slot.Row) / float64(denominator)
}

// maxIndex возвращает максимальный индекс измерения, но не меньше 1,
// чтобы одноэтажные и однорядные парковки не давали деления на ноль
func maxIndex(dimension int) int {
	if dimension-1 > 1 {
		return dimension - 1
	}
	return 1
}
