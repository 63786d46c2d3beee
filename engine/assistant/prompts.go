package assistant

import (
	"fmt"
	"strings"
)

// Generation parameters are per-operation constants, not user-configurable.
const (
	maxCompletionTokens = 300
	queryTemperature    = 0.8
	reminderTemperature = 0.4
)

const querySystemPrompt = "Eres un asistente experto en análisis de gastos, " +
	"tendencias financieras y contexto económico. " +
	"Responde en español claro y concreto."

const reminderSystemPrompt = "Eres un asistente de organización de tareas y recordatorios. " +
	"Confirma el recordatorio recibido con una respuesta breve y accionable, en español."

// reminderUserText folds the optional reminder metadata into the user prompt.
func reminderUserText(in *ReminderInput) string {
	var b strings.Builder
	b.WriteString(in.Text)
	if in.DueDate != "" {
		fmt.Fprintf(&b, "\nFecha límite: %s", in.DueDate)
	}
	if in.Priority != nil {
		fmt.Fprintf(&b, "\nPrioridad: %d", *in.Priority)
	}
	if in.Category != "" {
		fmt.Fprintf(&b, "\nCategoría: %s", in.Category)
	}
	return b.String()
}

// queryMessage is the human-readable summary embedded into the deep link.
func queryMessage(question, answer string) string {
	return fmt.Sprintf("Pregunta: %s\n\nRespuesta: %s", question, answer)
}

// reminderMessage is the deep-link text for a confirmed reminder.
func reminderMessage(text, answer string) string {
	return fmt.Sprintf("Recordatorio: %s\n\n%s", text, answer)
}
