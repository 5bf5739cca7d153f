package ui

import (
	"reflect"
	"testing"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1       string
		s2       string
		expected int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"restTemplate", "restTemplat", 1},
		{"dataSource", "dataSorce", 1},
	}

	for _, tt := range tests {
		t.Run(tt.s1+"_"+tt.s2, func(t *testing.T) {
			result := LevenshteinDistance(tt.s1, tt.s2)
			if result != tt.expected {
				t.Errorf("LevenshteinDistance(%q, %q) = %d; want %d", tt.s1, tt.s2, result, tt.expected)
			}
		})
	}
}

func TestFindSimilar(t *testing.T) {
	candidates := []string{"restTemplate", "webClient", "dataSource", "dataSources", "transactionManager"}

	tests := []struct {
		name     string
		target   string
		expected []string
	}{
		{"exact match", "webClient", []string{"webClient"}},
		{"typo", "restTemplat", []string{"restTemplate"}},
		{"case insensitive", "DATASOURCE", []string{"dataSource", "dataSources"}},
		{"closest first", "dataSourcess", []string{"dataSources", "dataSource"}},
		{"no match", "entityManagerFactory", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FindSimilar(tt.target, candidates)
			if !reflect.DeepEqual(result, tt.expected) {
				t.Errorf("FindSimilar(%q) = %v; want %v", tt.target, result, tt.expected)
			}
		})
	}
}

func TestFindSimilarLimit(t *testing.T) {
	candidates := []string{"bean1", "bean2", "bean3", "bean4", "bean5"}
	result := FindSimilar("bean", candidates)
	if len(result) != DefaultMaxSuggestions {
		t.Fatalf("expected %d suggestions, got %v", DefaultMaxSuggestions, result)
	}
	if !reflect.DeepEqual(result, []string{"bean1", "bean2", "bean3"}) {
		t.Errorf("expected candidates in order, got %v", result)
	}
}
