package llm

import (
	"testing"
)

func TestExtractJSON_PlainObject(t *testing.T) {
	input := `{"intent": "DASHBOARD_OVERVIEW", "confidence": 0.9}`
	result, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != input {
		t.Errorf("expected %q, got %q", input, result)
	}
}

func TestExtractJSON_PlainArray(t *testing.T) {
	input := `["USER_ANALYTICS", "ACTIVE_USERS"]`
	result, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != input {
		t.Errorf("expected %q, got %q", input, result)
	}
}

func TestExtractJSON_ArrayInMarkdownFence(t *testing.T) {
	input := "```json\n[\"SOFTWARE_ROI\"]\n```"
	expected := `["SOFTWARE_ROI"]`
	result, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != expected {
		t.Errorf("expected %q, got %q", expected, result)
	}
}

func TestExtractJSON_WithThinkTags(t *testing.T) {
	input := `<think>
The question is about licensing costs.
</think>
["INVESTMENT_ANALYSIS"]`

	expected := `["INVESTMENT_ANALYSIS"]`
	result, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != expected {
		t.Errorf("expected %q, got %q", expected, result)
	}
}

func TestExtractJSON_SurroundingProse(t *testing.T) {
	input := `Here are the intents I identified: ["USAGE_COMPLIANCE", "LOW_USAGE_ALERT"] based on the question.`
	expected := `["USAGE_COMPLIANCE", "LOW_USAGE_ALERT"]`
	result, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != expected {
		t.Errorf("expected %q, got %q", expected, result)
	}
}

func TestExtractJSON_BracketsInsideStrings(t *testing.T) {
	input := `{"note": "values like [1, 2] and {x} stay intact"}`
	result, err := ExtractJSON(input)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result != input {
		t.Errorf("expected %q, got %q", input, result)
	}
}

func TestExtractJSON_NoJSON(t *testing.T) {
	_, err := ExtractJSON("I could not determine any intents for this question.")
	if err == nil {
		t.Fatal("expected error for response without JSON")
	}
}

func TestParseJSONResponse_StringSlice(t *testing.T) {
	result, err := ParseJSONResponse[[]string](`Intents: ["DASHBOARD_OVERVIEW"]`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result) != 1 || result[0] != "DASHBOARD_OVERVIEW" {
		t.Errorf("unexpected result: %v", result)
	}
}

func TestParseJSONResponse_TypeMismatch(t *testing.T) {
	_, err := ParseJSONResponse[[]string](`{"not": "an array"}`)
	if err == nil {
		t.Fatal("expected unmarshal error")
	}
}
