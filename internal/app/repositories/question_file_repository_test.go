package repositories

import (
	"fmt"
	"strings"
	"testing"
)

// The catalog queries feed combines and bundles directly; a soft deleted
// question set must not leak its files into either. SoftDelete only flags
// question_sets, so the guard has to live in these queries.
func TestCatalogQueriesExcludeSoftDeletedSets(t *testing.T) {
	const guard = "qs.deleted_at IS NULL"

	if !strings.Contains(findByQuestionSetIDsQuery, guard) {
		t.Error("FindByQuestionSetIDs query lost the soft delete guard")
	}
	if !strings.Contains(findByCombineModeQueryFmt, guard) {
		t.Error("FindByCombineMode query lost the soft delete guard")
	}
}

func TestCombineModeQueryConditions(t *testing.T) {
	answers := fmt.Sprintf(findByCombineModeQueryFmt, combineCondAnswersOnly)
	if !strings.Contains(answers, "LIKE 'answers%'") {
		t.Errorf("answers-only query missing ordinal-aware category match:\n%s", answers)
	}

	defaultMode := fmt.Sprintf(findByCombineModeQueryFmt, combineCondQuestionsAndTestCases)
	if !strings.Contains(defaultMode, "'questions'") || !strings.Contains(defaultMode, "'testCases'") {
		t.Errorf("default-mode query missing category filter:\n%s", defaultMode)
	}
}
