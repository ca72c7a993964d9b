package advisor

import (
	"fmt"
	"strings"

	"netivim/entity"
)

const instructionTemplate = `You are a specialized educational consultant for unique schools in Israel.
Context: You are embedded in the "Netivim 360" app.
List of schools currently in the user's view:
%s

Instructions:
1. Answer in Hebrew.
2. Be warm, professional, and pedagogical.
3. Recommend specific schools from the list if they match the user's criteria.
4. Explain pedagogical terms (e.g., Waldorf, Montessori, Democratic) briefly if asked.
5. Use web search grounding for real-time news or details not in the provided school list.
6. If you mention a school, ensure its name is accurate to the list.`

// SchoolContext lists the visible schools, one per line.
func SchoolContext(schools []entity.School) string {
	if len(schools) == 0 {
		return "(no schools match the current filters)"
	}
	lines := make([]string, len(schools))
	for i, s := range schools {
		lines[i] = fmt.Sprintf("- %s (%s): %s, grades %s", s.Name, s.Type.Label(), s.City, s.Grades)
	}
	return strings.Join(lines, "\n")
}

func SystemInstruction(schools []entity.School) string {
	return fmt.Sprintf(instructionTemplate, SchoolContext(schools))
}
