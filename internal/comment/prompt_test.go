package comment_test

import (
	"strings"
	"testing"

	"lsu-service/internal/class"
	"lsu-service/internal/comment"
	"lsu-service/internal/evaluation"
	"lsu-service/internal/student"
	"lsu-service/internal/subject"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPupil() *student.Student {
	return &student.Student{
		ID:        7,
		FirstName: "Emma",
		LastName:  "Dubois",
		ClassID:   3,
		Class: &class.Class{
			ID:         3,
			Name:       "CP",
			SchoolYear: "2024-2025",
			TeacherID:  1,
		},
	}
}

func testEvaluations() []evaluation.Evaluation {
	return []evaluation.Evaluation{
		{
			StudentID: 7,
			Period:    "P1",
			Level:     evaluation.LevelVeryGood,
			Subject:   &subject.Subject{Name: "Mathématiques", Code: "MA"},
		},
		{
			StudentID: 7,
			Period:    "P1",
			Level:     evaluation.LevelSatisfactory,
			Comment:   "Bonne progression en lecture",
			Subject:   &subject.Subject{Name: "Français", Code: "FR"},
		},
	}
}

func TestBuildPrompt(t *testing.T) {
	t.Run("ContainsPupilAndPeriodHeader", func(t *testing.T) {
		prompt := comment.BuildPrompt(testPupil(), testEvaluations(), comment.KindBulletin, "Très bonne élève", "P1")

		assert.Contains(t, prompt, "Élève: Emma Dubois - Classe: CP\n")
		assert.Contains(t, prompt, "Période: P1\n")
		assert.Contains(t, prompt, "Type de commentaire: bulletin\n")
		assert.Contains(t, prompt, "Observations de l'enseignant: Très bonne élève\n")
	})

	t.Run("EvaluationsSortedBySubjectName", func(t *testing.T) {
		// Input order has Mathématiques first; the prompt must list
		// Français first regardless.
		prompt := comment.BuildPrompt(testPupil(), testEvaluations(), comment.KindBulletin, "", "P1")

		fr := strings.Index(prompt, "- Français: Satisfaisant")
		ma := strings.Index(prompt, "- Mathématiques: Très bien")
		require.GreaterOrEqual(t, fr, 0)
		require.GreaterOrEqual(t, ma, 0)
		assert.Less(t, fr, ma)
	})

	t.Run("SubjectCommentOnlyWhenPresent", func(t *testing.T) {
		prompt := comment.BuildPrompt(testPupil(), testEvaluations(), comment.KindBulletin, "", "P1")

		assert.Contains(t, prompt, "  Commentaire: Bonne progression en lecture\n")
		assert.Equal(t, 1, strings.Count(prompt, "  Commentaire:"))
	})

	t.Run("ClosingInstructions", func(t *testing.T) {
		prompt := comment.BuildPrompt(testPupil(), testEvaluations(), comment.KindLivret, "", "P2")

		assert.Contains(t, prompt, "Génère un commentaire livret pour Emma Dubois")
		assert.Contains(t, prompt, "- Bienveillant et encourageant\n")
		assert.Contains(t, prompt, "- Précis sur les acquis et les difficultés\n")
		assert.Contains(t, prompt, "- Constructif avec des pistes d'amélioration\n")
		assert.Contains(t, prompt, "- Adapté au niveau de la classe CP\n")
		assert.Contains(t, prompt, "- Entre 3 et 5 phrases maximum\n")
	})

	t.Run("Deterministic", func(t *testing.T) {
		first := comment.BuildPrompt(testPupil(), testEvaluations(), comment.KindBulletin, "obs", "P1")

		reversed := testEvaluations()
		reversed[0], reversed[1] = reversed[1], reversed[0]
		second := comment.BuildPrompt(testPupil(), reversed, comment.KindBulletin, "obs", "P1")

		assert.Equal(t, first, second)
	})

	t.Run("DoesNotReorderCallerSlice", func(t *testing.T) {
		evals := testEvaluations()
		comment.BuildPrompt(testPupil(), evals, comment.KindBulletin, "", "P1")

		assert.Equal(t, "Mathématiques", evals[0].Subject.Name)
	})

	t.Run("EmptyEvaluations", func(t *testing.T) {
		prompt := comment.BuildPrompt(testPupil(), nil, comment.KindObservation, "Observation libre", "P3")

		assert.Contains(t, prompt, "Évaluations de la période:\n")
		assert.NotContains(t, prompt, "- Français")
		assert.Contains(t, prompt, "Génère un commentaire observation pour Emma Dubois")
	})
}
