package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepSheet_Normalize_NilLists(t *testing.T) {
	sheet := &PrepSheet{
		ExecutiveSummary: "Summary",
		Background:       "Background",
	}

	sheet.Normalize()

	assert.NotNil(t, sheet.KeyIssues)
	assert.NotNil(t, sheet.WitnessAnalyses)
	assert.NotNil(t, sheet.PolicyImplications)
	assert.NotNil(t, sheet.StakeholderPositions)
	assert.NotNil(t, sheet.AnticipatedQuestions)
	assert.NotNil(t, sheet.Controversies)
	assert.NotNil(t, sheet.DataPoints)
	assert.NotNil(t, sheet.Recommendations)
	assert.Empty(t, sheet.KeyIssues)
}

func TestPrepSheet_Normalize_NestedLists(t *testing.T) {
	sheet := &PrepSheet{
		ExecutiveSummary: "Summary",
		Background:       "Background",
		KeyIssues:        []KeyIssue{{Issue: "Broadband funding"}},
		WitnessAnalyses:  []WitnessAnalysis{{Name: "Dr. Jane Smith"}},
	}

	sheet.Normalize()

	assert.NotNil(t, sheet.KeyIssues[0].TalkingPoints)
	assert.NotNil(t, sheet.WitnessAnalyses[0].SuggestedQuestions)
}

func TestPrepSheet_Normalize_PreservesExisting(t *testing.T) {
	sheet := &PrepSheet{
		ExecutiveSummary: "Summary",
		Background:       "Background",
		Recommendations:  []string{"Ask about timelines"},
	}

	sheet.Normalize()

	require.Len(t, sheet.Recommendations, 1)
	assert.Equal(t, "Ask about timelines", sheet.Recommendations[0])
}

func TestPrepSheet_SerializesAllListFields(t *testing.T) {
	sheet := &PrepSheet{
		ExecutiveSummary: "Summary",
		Background:       "Background",
	}
	sheet.Normalize()

	data, err := json.Marshal(sheet)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))

	for _, field := range []string{
		"key_issues", "witness_analyses", "policy_implications",
		"stakeholder_positions", "anticipated_questions", "controversies",
		"data_points", "recommendations",
	} {
		value, ok := decoded[field]
		require.True(t, ok, "field %s missing from serialized sheet", field)
		assert.NotNil(t, value, "field %s serialized as null", field)
	}
}
