package comment

import (
	"fmt"
	"sort"
	"strings"

	"lsu-service/internal/evaluation"
	"lsu-service/internal/student"
)

// SystemPrompt frames every generation call. The wording matches the persona
// used on the livret forms and is part of the audit trail.
const SystemPrompt = "Tu es un enseignant expérimenté qui rédige des commentaires " +
	"d'évaluation pour le Livret Scolaire Unique. Tes commentaires sont " +
	"bienveillants, précis et constructifs."

// BuildPrompt renders the user prompt for one generation call. It is a pure
// function: identical inputs produce byte-identical output. Evaluations are
// sorted by subject name so the prompt does not depend on fetch order.
//
// Callers guarantee that the evaluations belong to the given pupil and
// period; this is not re-validated here.
func BuildPrompt(pupil *student.Student, evaluations []evaluation.Evaluation, kind Kind, observations, period string) string {
	className := ""
	if pupil.Class != nil {
		className = pupil.Class.Name
	}

	sorted := make([]evaluation.Evaluation, len(evaluations))
	copy(sorted, evaluations)
	sort.SliceStable(sorted, func(i, j int) bool {
		return subjectName(sorted[i]) < subjectName(sorted[j])
	})

	var b strings.Builder
	fmt.Fprintf(&b, "Élève: %s - Classe: %s\n", pupil.FullName(), className)
	fmt.Fprintf(&b, "Période: %s\n", period)
	fmt.Fprintf(&b, "Type de commentaire: %s\n\n", kind)
	fmt.Fprintf(&b, "Observations de l'enseignant: %s\n\n", observations)

	b.WriteString("Évaluations de la période:\n")
	for _, eval := range sorted {
		fmt.Fprintf(&b, "- %s: %s\n", subjectName(eval), eval.Level)
		if eval.Comment != "" {
			fmt.Fprintf(&b, "  Commentaire: %s\n", eval.Comment)
		}
	}

	fmt.Fprintf(&b, "\nGénère un commentaire %s pour %s en te basant sur ces informations. Le commentaire doit être:\n", kind, pupil.FullName())
	b.WriteString("- Bienveillant et encourageant\n")
	b.WriteString("- Précis sur les acquis et les difficultés\n")
	b.WriteString("- Constructif avec des pistes d'amélioration\n")
	fmt.Fprintf(&b, "- Adapté au niveau de la classe %s\n", className)
	b.WriteString("- Entre 3 et 5 phrases maximum\n")

	return b.String()
}

func subjectName(eval evaluation.Evaluation) string {
	if eval.Subject == nil {
		return ""
	}
	return eval.Subject.Name
}
