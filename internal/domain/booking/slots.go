package booking

// Krok mřížky a fallback délka služby, když referenční data chybí.
const (
	SlotIntervalMin    = 30
	DefaultDurationMin = 60
)

// GenerateSlots vrací začátky volných termínů pro jeden den, vzestupně.
// Kandidáti běží po SlotIntervalMin od otevření; kandidát přežije, jen
// když se služba stihne do zavíračky (start + délka <= close, takže se
// nikdy nepřeteče přes půlnoc) a nekříží žádný obsazený interval.
// Pro zavřený den vrací prázdný výsledek, ne chybu.
func GenerateSlots(day DayHours, durationMin int, booked []TimeInterval) []ClockTime {
	if day.Closed() || durationMin <= 0 {
		return nil
	}

	window := day.Window()

	var slots []ClockTime
	for start := window.Start; start < window.End; start = start.Add(SlotIntervalMin) {
		candidate := NewInterval(start, durationMin)
		if candidate.End > window.End {
			continue
		}

		if conflicts(candidate, booked) {
			continue
		}

		slots = append(slots, start)
	}

	return slots
}

func conflicts(candidate TimeInterval, booked []TimeInterval) bool {
	for _, b := range booked {
		if candidate.Intersects(b) {
			return true
		}
	}
	return false
}
