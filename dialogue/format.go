package dialogue

import (
	"fmt"
	"strings"

	"github.com/tbxark/talentscout/questions"
)

// FormatQuestions renders generated questions as a nested markdown list under QuestionsHeader.
func FormatQuestions(items []questions.TechQuestions) string {
	var sb strings.Builder
	sb.WriteString(QuestionsHeader)
	for _, item := range items {
		sb.WriteString(fmt.Sprintf("\n- **%s**", item.Technology))
		for i, q := range item.Questions {
			sb.WriteString(fmt.Sprintf("\n    %d. %s", i+1, q))
		}
	}
	return sb.String()
}
