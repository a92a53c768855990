package recommend

import (
	"strings"
	"testing"

	"github.com/lexiqa-labs/lexiqa-core/internal/core/domain"
)

func TestDetectRedFlags_UnlimitedLiability(t *testing.T) {
	content := &domain.DocumentContent{
		Text: "The contractor accepts unlimited liability for all losses arising under this agreement.",
	}

	flags := DetectRedFlags(content)
	if len(flags) == 0 {
		t.Fatal("expected a red flag for unlimited liability")
	}

	var found *domain.RedFlag
	for _, f := range flags {
		if f.Title == "Unlimited Liability Clause" {
			found = f
		}
	}
	if found == nil {
		t.Fatal("unlimited liability flag not detected")
	}
	if found.RiskLevel != domain.RiskCritical {
		t.Errorf("RiskLevel = %s, want critical", found.RiskLevel)
	}
	if !strings.Contains(found.Excerpt, "unlimited liability") {
		t.Errorf("excerpt %q should contain the matched clause", found.Excerpt)
	}
	if found.Confidence <= 0 || found.Confidence > 1 {
		t.Errorf("Confidence = %v, want in (0,1]", found.Confidence)
	}
}

func TestDetectRedFlags_Indemnification(t *testing.T) {
	content := &domain.DocumentContent{
		Text: "Party A shall indemnify Party B against all claims.",
	}

	flags := DetectRedFlags(content)
	var found *domain.RedFlag
	for _, f := range flags {
		if f.Title == "Indemnification Obligation" {
			found = f
		}
	}
	if found == nil {
		t.Fatal("indemnification flag not detected")
	}
	if found.RiskLevel != domain.RiskHigh {
		t.Errorf("RiskLevel = %s, want high", found.RiskLevel)
	}
}

func TestDetectRedFlags_PageAttribution(t *testing.T) {
	pageOne := "This agreement is made between the parties. "
	pageTwo := "The license granted hereunder is a perpetual license."
	content := &domain.DocumentContent{
		Text: pageOne + pageTwo,
		PageMap: []domain.PageSpan{
			{Page: 1, StartChar: 0, EndChar: len(pageOne)},
			{Page: 2, StartChar: len(pageOne), EndChar: len(pageOne) + len(pageTwo)},
		},
	}

	flags := DetectRedFlags(content)
	var found *domain.RedFlag
	for _, f := range flags {
		if f.Title == "Perpetual or Irrevocable Grant" {
			found = f
		}
	}
	if found == nil {
		t.Fatal("perpetual license flag not detected")
	}
	if found.PageNumber != 2 {
		t.Errorf("PageNumber = %d, want 2", found.PageNumber)
	}
}

func TestDetectRedFlags_OnePerPatternPerPage(t *testing.T) {
	content := &domain.DocumentContent{
		Text: "The term shall automatically renew each year. " +
			"If not cancelled it will automatically renew again.",
	}

	flags := DetectRedFlags(content)
	count := 0
	for _, f := range flags {
		if f.Title == "Automatic Renewal" {
			count++
		}
	}
	if count != 1 {
		t.Errorf("got %d automatic renewal flags on one page, want 1", count)
	}
}

func TestDetectRedFlags_CleanDocument(t *testing.T) {
	content := &domain.DocumentContent{
		Text: "The parties will meet quarterly to review progress on the project.",
	}
	if flags := DetectRedFlags(content); len(flags) != 0 {
		t.Errorf("expected no flags for a benign document, got %d", len(flags))
	}
	if flags := DetectRedFlags(nil); flags == nil || len(flags) != 0 {
		t.Error("nil content should yield an empty, non-nil slice")
	}
}
