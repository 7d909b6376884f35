package models

import "testing"

func TestParseFileFormat(t *testing.T) {
	cases := []struct {
		in   string
		want FileFormat
		ok   bool
	}{
		{"pdf", FormatPDF, true},
		{"PDF", FormatPDF, true},
		{".docx", FormatDOCX, true},
		{"Txt", FormatTXT, true},
		{"doc", "", false},
		{"", "", false},
		{"jpg", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseFileFormat(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseFileFormat(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestParseCombineMode(t *testing.T) {
	cases := []struct {
		in   string
		want CombineMode
		ok   bool
	}{
		{"", CombineQuestionsAndTestCases, true},
		{"questions", CombineQuestionsAndTestCases, true},
		{"Questions", CombineQuestionsAndTestCases, true},
		{"answers", CombineAnswersOnly, true},
		{"ANSWERS", CombineAnswersOnly, true},
		{"testcases", "", false},
		{"everything", "", false},
	}

	for _, tc := range cases {
		got, ok := ParseCombineMode(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseCombineMode(%q) = (%q, %v), want (%q, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestQuestionFileCategoryPredicates(t *testing.T) {
	q := QuestionFile{Category: CategoryQuestions}
	if !q.IsQuestions() || q.IsAnswers() || q.IsTestCases() {
		t.Error("questions category misclassified")
	}

	// Ordinal-suffixed answer keys still count as answers.
	for _, cat := range []string{"answers", "answers1", "answers2"} {
		f := QuestionFile{Category: cat}
		if !f.IsAnswers() {
			t.Errorf("category %q should be an answer key", cat)
		}
	}

	tc := QuestionFile{Category: CategoryTestCases}
	if !tc.IsTestCases() || tc.IsAnswers() {
		t.Error("testCases category misclassified")
	}
}

func TestQuestionFileExtension(t *testing.T) {
	f := QuestionFile{OriginalName: "kunci jawaban.DOCX"}
	if got := f.Extension(); got != ".DOCX" {
		t.Errorf("got %q, want .DOCX", got)
	}
	f = QuestionFile{OriginalName: "noext"}
	if got := f.Extension(); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}
