package pipeline

import (
	"math"
	"testing"

	"github.com/theirongolddev/tally/internal/model"
)

func TestDetectAnomalies_SingleRecordNeverFlagged(t *testing.T) {
	l := model.Ledger{
		expense(t, "2025-06-01", "Rent", "900"),
		expense(t, "2025-06-01", "Food", "1"),
		expense(t, "2025-06-02", "Food", "2"),
	}
	for _, a := range DetectAnomalies(l, 0) {
		if a.Category == "Rent" {
			t.Fatalf("single-record category flagged: %+v", a)
		}
	}
}

func TestDetectAnomalies_IdenticalAmountsSkipped(t *testing.T) {
	l := model.Ledger{
		expense(t, "2025-06-01", "Coffee", "0.1"),
		expense(t, "2025-06-02", "Coffee", "0.1"),
		expense(t, "2025-06-03", "Coffee", "0.1"),
	}
	if got := DetectAnomalies(l, 0); len(got) != 0 {
		t.Fatalf("zero-variance category produced %d anomalies", len(got))
	}
}

func TestDetectAnomalies_ThreeRecordExample(t *testing.T) {
	l := model.Ledger{
		expense(t, "2025-06-01", "Food", "10"),
		expense(t, "2025-06-02", "Food", "1000"),
		expense(t, "2025-06-03", "Food", "12"),
	}

	// With n=3 the sample z-score cannot exceed (n-1)/sqrt(n) ~ 1.155
	if got := DetectAnomalies(l, DefaultAnomalyThreshold); len(got) != 0 {
		t.Fatalf("threshold 2.0 flagged %d records, want 0", len(got))
	}

	got := DetectAnomalies(l, 1.0)
	if len(got) != 1 {
		t.Fatalf("threshold 1.0 flagged %d records, want 1", len(got))
	}
	if !got[0].Amount.Equal(dec("1000")) {
		t.Fatalf("flagged amount = %s, want 1000", got[0].Amount)
	}
	if got[0].ZScore < 1.15 || got[0].ZScore > 1.1548 {
		t.Fatalf("ZScore = %.4f, want ~1.1547", got[0].ZScore)
	}
}

func TestDetectAnomalies_DefaultThreshold(t *testing.T) {
	l := model.Ledger{}
	amounts := []string{"10", "11", "12", "10", "11", "12", "10", "11", "12"}
	for _, a := range amounts {
		l = l.Append(expense(t, "2025-06-01", "Food", a))
	}
	l = l.Append(expense(t, "2025-06-02", "Food", "500"))
	l = l.Append(expense(t, "2025-06-02", "Bills", "40"))
	l = l.Append(expense(t, "2025-06-03", "Bills", "42"))

	got := DetectAnomalies(l, DefaultAnomalyThreshold)
	if len(got) != 1 {
		t.Fatalf("flagged %d records, want 1", len(got))
	}
	a := got[0]
	if a.Category != "Food" || !a.Amount.Equal(dec("500")) {
		t.Fatalf("flagged %s %s, want Food 500", a.Category, a.Amount)
	}
	if math.Abs(a.ZScore) <= DefaultAnomalyThreshold {
		t.Fatalf("ZScore = %.3f, want > 2", a.ZScore)
	}
}

func TestDetectAnomalies_NegativeZAndLedgerOrder(t *testing.T) {
	l := model.Ledger{}
	for i := 0; i < 9; i++ {
		l = l.Append(expense(t, "2025-06-01", "Salary", "-1000"))
	}
	l = l.Append(expense(t, "2025-06-02", "Salary", "5000"))
	for i := 0; i < 9; i++ {
		l = l.Append(expense(t, "2025-06-03", "Food", "20"))
	}
	l = l.Append(expense(t, "2025-06-04", "Food", "-400"))

	got := DetectAnomalies(l, DefaultAnomalyThreshold)
	if len(got) != 2 {
		t.Fatalf("flagged %d records, want 2", len(got))
	}
	if got[0].Category != "Salary" || got[1].Category != "Food" {
		t.Fatalf("order = [%s %s], want ledger order [Salary Food]", got[0].Category, got[1].Category)
	}
	if got[1].ZScore >= 0 {
		t.Fatalf("Food ZScore = %.3f, want negative", got[1].ZScore)
	}
}
