package nlp

import (
	"strings"
	"testing"
)

func TestNewEngine_DefaultsToRule(t *testing.T) {
	engine, err := NewEngine(Config{})
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	if _, ok := engine.(*RuleEngine); !ok {
		t.Errorf("Expected RuleEngine by default, got %T", engine)
	}
}

func TestNewEngine_Providers(t *testing.T) {
	cases := []struct {
		provider string
		wantType string
	}{
		{"rule", "*nlp.RuleEngine"},
		{"RULE", "*nlp.RuleEngine"},
		{"spacy", "*nlp.SpacyEngine"},
		{"openai", "*nlp.OpenAIEngine"},
	}
	for _, tc := range cases {
		engine, err := NewEngine(Config{Provider: tc.provider, APIKey: "test-key"})
		if err != nil {
			t.Errorf("NewEngine(%q) failed: %v", tc.provider, err)
			continue
		}
		if got := typeName(engine); got != tc.wantType {
			t.Errorf("NewEngine(%q) = %s, want %s", tc.provider, got, tc.wantType)
		}
	}
}

func TestNewEngine_UnknownProvider(t *testing.T) {
	_, err := NewEngine(Config{Provider: "bert"})
	if err == nil {
		t.Fatal("Expected error for unknown provider")
	}
	if !strings.Contains(err.Error(), "bert") {
		t.Errorf("Expected provider name in error, got: %v", err)
	}
}

func typeName(v interface{}) string {
	switch v.(type) {
	case *RuleEngine:
		return "*nlp.RuleEngine"
	case *SpacyEngine:
		return "*nlp.SpacyEngine"
	case *OpenAIEngine:
		return "*nlp.OpenAIEngine"
	default:
		return "unknown"
	}
}
