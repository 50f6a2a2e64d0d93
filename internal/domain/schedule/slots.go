package schedule

import "time"

// Slot — кандидат на время записи. Занятые слоты не выбрасываются, а
// помечаются Available=false: клиент рассчитывает на стабильный набор слотов.
type Slot struct {
	Start     time.Time
	End       time.Time
	Available bool
}

type Interval struct {
	Start time.Time
	End   time.Time
}

// BuildSlots генерирует кандидатов с шагом step по рабочему окну
// [windowStart, windowEnd). Кандидат, чьё окно не умещается до windowEnd,
// не выдаётся вовсе (частичных слотов нет). Порядок — по возрастанию времени.
func BuildSlots(windowStart, windowEnd time.Time, dur, step time.Duration, busy []Interval) []Slot {
	if dur <= 0 || step <= 0 {
		return nil
	}
	if !windowEnd.After(windowStart) {
		return nil
	}

	var slots []Slot
	for t := windowStart; !t.Add(dur).After(windowEnd); t = t.Add(step) {
		end := t.Add(dur)
		slots = append(slots, Slot{
			Start:     t,
			End:       end,
			Available: !overlapsAny(t, end, busy),
		})
	}
	return slots
}

func overlapsAny(start, end time.Time, busy []Interval) bool {
	for _, b := range busy {
		// полуоткрытые интервалы: [start,end) пересекает [b.Start,b.End)
		// тогда и только тогда, когда start < b.End && b.Start < end
		if start.Before(b.End) && b.Start.Before(end) {
			return true
		}
	}
	return false
}
