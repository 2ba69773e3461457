package llm

import (
	"fmt"
	"strings"
)

// BuildVenuePrompt returns the system instruction for the venue assistant.
// extra, when non-empty, is appended as additional venue facts.
func BuildVenuePrompt(venueName string, extra ...string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Ты — дружелюбный помощник развлекательного центра «%s». ", venueName)
	b.WriteString("Отвечай кратко и по делу, на русском языке. ")
	b.WriteString("Если не знаешь точного ответа о ценах, расписании или наличии мест, ")
	b.WriteString("предложи оставить заявку на бронирование или связаться с администратором. ")
	b.WriteString("Не выдумывай факты о центре.")

	for _, e := range extra {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		b.WriteString("\n\n")
		b.WriteString(e)
	}
	return b.String()
}
