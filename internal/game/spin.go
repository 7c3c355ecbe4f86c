package game

import "math"

const (
	// доли сегмента, ближе которых к границе стрелка не должна останавливаться
	deadZoneEdge = 0.15
	// куда сдвигаем остановку при коррекции мертвой зоны
	deadZoneSnapLow  = 0.25
	deadZoneSnapHigh = 0.75

	// полные обороты для обычного спина
	minFullTurns = 3
	// полные обороты для подкрученного спина (визуально неотличим)
	minRiggedTurns = 5
)

// RigDirective включает подкрученный спин: индекс выбирается
// из FavoredIndices вместо честного случайного исхода
type RigDirective struct {
	Active         bool
	FavoredIndices []int
}

// SpinResult - итог разрешения спина: финальный накопленный угол
// вращения для анимации и индекс выигравшего сегмента
type SpinResult struct {
	TargetRotation float64 `json:"target_rotation"`
	SegmentIndex   int     `json:"segment_index"`
}

// нормализует угол в [0, 360)
func normalizeAngle(deg float64) float64 {
	m := math.Mod(deg, 360)
	if m < 0 {
		m += 360
	}
	return m
}

// возвращает угол под неподвижной стрелкой: колесо вращается,
// стрелка стоит, поэтому угол стрелки движется против вращения
func pointerAngle(rotation float64) float64 {
	return normalizeAngle(360 - normalizeAngle(rotation))
}

// LandingIndex вычисляет индекс сегмента под стрелкой для данного
// накопленного угла вращения. Детерминирован по rotation mod 360.
func LandingIndex(rotation float64, segmentCount int) int {
	segmentAngle := 360.0 / float64(segmentCount)
	idx := int(pointerAngle(rotation) / segmentAngle)
	// страховка от погрешности float на границе 360
	return idx % segmentCount
}

// PositionInSegment возвращает положение стрелки внутри сегмента в [0, 1)
func PositionInSegment(rotation float64, segmentCount int) float64 {
	segmentAngle := 360.0 / float64(segmentCount)
	return math.Mod(pointerAngle(rotation), segmentAngle) / segmentAngle
}

// AdjustDeadZone сдвигает угол вращения так, чтобы стрелка не
// останавливалась ближе 15% к границе сегмента. Индекс сегмента
// не меняется - корректируется только угол для анимации.
func AdjustDeadZone(rotation float64, segmentCount int) float64 {
	segmentAngle := 360.0 / float64(segmentCount)
	pa := pointerAngle(rotation)
	segStart := math.Floor(pa/segmentAngle) * segmentAngle
	pos := (pa - segStart) / segmentAngle

	var target float64
	switch {
	case pos < deadZoneEdge:
		target = segStart + deadZoneSnapLow*segmentAngle
	case pos > 1-deadZoneEdge:
		target = segStart + deadZoneSnapHigh*segmentAngle
	default:
		return rotation
	}

	// увеличение угла вращения уменьшает угол стрелки, поэтому знак прямой
	return rotation + (pa - target)
}

// ResolveSpin разрешает спин: выбирает финальный угол вращения и
// индекс выигравшего сегмента. Чистое вычисление, без побочных
// эффектов. segmentCount должен быть >= 2 (гарантируется вызывающим).
func ResolveSpin(currentRotation float64, segmentCount int, rig *RigDirective) SpinResult {
	if rig != nil && rig.Active {
		return resolveRigged(currentRotation, segmentCount, rig.FavoredIndices)
	}

	fullTurns := minFullTurns + secureRandInt(3)
	finalOffset := secureRandFloat() * 360

	candidate := currentRotation + float64(fullTurns)*360 + finalOffset
	index := LandingIndex(candidate, segmentCount)
	candidate = AdjustDeadZone(candidate, segmentCount)

	return SpinResult{TargetRotation: candidate, SegmentIndex: index}
}

// подкрученный путь: сегмент выбирается из желаемого набора, угол
// подбирается так, чтобы центр сегмента оказался под стрелкой
func resolveRigged(currentRotation float64, segmentCount int, favored []int) SpinResult {
	index := 0
	if len(favored) > 0 {
		index = favored[secureRandInt(int64(len(favored)))]
	}
	if index < 0 || index >= segmentCount {
		index = 0
	}

	segmentAngle := 360.0 / float64(segmentCount)
	centerPointer := (float64(index) + 0.5) * segmentAngle
	// остаток угла вращения, при котором стрелка указывает на центр сегмента
	residue := normalizeAngle(360 - centerPointer)

	// дополнительные полные обороты чисто для визуального эффекта
	fullTurns := minRiggedTurns + secureRandInt(4)
	base := currentRotation - normalizeAngle(currentRotation)
	candidate := base + float64(fullTurns)*360 + residue

	return SpinResult{TargetRotation: candidate, SegmentIndex: index}
}
