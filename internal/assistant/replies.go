package assistant

import (
	"fmt"
	"strings"
	"time"

	"github.com/strelka-labs/meeting-assistant/internal/model"
)

// User-visible strings are Russian, same as the rest of the assistant's
// query language.

func fallbackName(name string) string {
	if name == "" {
		return "Коллега"
	}
	return name
}

func clarifyReply(name string) string {
	return fmt.Sprintf("Извините, %s, не понял. Примеры:\n• «Лейсан завтра в 13:00»\n• «Измени встречу 8 ноября, добавь Регина»", name)
}

func apologyReply(name string) string {
	return fmt.Sprintf("Ой, %s, что-то пошло не так… 🙏", name)
}

func formatDayTime(t time.Time) string {
	return t.UTC().Format("02.01 15:04")
}

func createdReply(name string, m *model.Meeting) string {
	reply := fmt.Sprintf("Принято, %s! 🗓\n«%s» на %s", name, m.Title, m.StartTime.UTC().Format("02.01 в 15:04"))
	if m.Location != nil {
		reply += "\n📍 " + *m.Location
	}
	return reply
}

func scheduleReply(name, period string, items []*model.Meeting) string {
	if len(items) == 0 {
		return fmt.Sprintf("%s, в этот период встреч нет. ☕", name)
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Расписание %s, %s:\n", period, name)
	for _, m := range items {
		fmt.Fprintf(&b, "\n• %s — %s", formatDayTime(m.StartTime), m.Title)
	}
	return b.String()
}

// ambiguousReply enumerates all candidates in the order the store
// returned them; no mutation accompanies this reply.
func ambiguousReply(items []*model.Meeting) string {
	var b strings.Builder
	b.WriteString("Найдено несколько встреч:\n")
	for i, m := range items {
		fmt.Fprintf(&b, "\n%d. %s — %s", i+1, formatDayTime(m.StartTime), m.Title)
	}
	b.WriteString("\n\nУточните точнее.")
	return b.String()
}

func notFoundReply(query string) string {
	return fmt.Sprintf("Не нашёл встречи с «%s».", query)
}

func monthPeriodLabel(dateFilter string) string {
	f := strings.ToLower(strings.TrimSpace(dateFilter))
	if f == "этот месяц" || f == "в этом месяце" {
		return "в этом месяце"
	}
	return "в " + f
}
