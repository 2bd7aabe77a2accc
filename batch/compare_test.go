package batch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"pricelens/models"
)

func TestCompareOutcome(t *testing.T) {
	tests := []struct {
		name string
		ours string
		comp string
		want models.ComparisonOutcome
	}{
		{"cheaper", "£100.00", "£120.00", models.OutcomeLower},
		{"more expensive", "£120.00", "£100.00", models.OutcomeHigher},
		{"equal", "£99.99", "£99.99", models.OutcomeEqual},
		{"mixed locales equal", "€476,00", "€476.00", models.OutcomeEqual},
		{"unparseable ours", "call us", "£10.00", models.OutcomeUnknown},
		{"unparseable theirs", "£10.00", "", models.OutcomeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareOutcome(tt.ours, tt.comp))
		})
	}
}

func TestFormatDetailsLower(t *testing.T) {
	details := FormatDetails(models.OutcomeLower, "£100.00", "£120.00")

	assert.Equal(t, "competitive", details.Status)
	assert.Equal(t, "+20.00", details.Difference)
	assert.Contains(t, details.Message, "16.67% lower")
	assert.Equal(t, "Good position - we are cheaper", details.Recommendation)
}

func TestFormatDetailsHigher(t *testing.T) {
	details := FormatDetails(models.OutcomeHigher, "£120.00", "£100.00")

	assert.Equal(t, "expensive", details.Status)
	assert.Equal(t, "-20.00", details.Difference)
	assert.Contains(t, details.Message, "16.67% higher")
}

func TestFormatDetailsEqual(t *testing.T) {
	details := FormatDetails(models.OutcomeEqual, "£50.00", "£50.00")

	assert.Equal(t, "equal", details.Status)
	assert.Equal(t, "0.00", details.Difference)
}

func TestFormatDetailsUnknown(t *testing.T) {
	details := FormatDetails(models.OutcomeUnknown, "n/a", "£50.00")

	assert.Equal(t, "unknown", details.Status)
	assert.Equal(t, "N/A", details.Difference)
}
