package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spring-attic/spring-native-aot/internal/compiler/pipeline"
)

func TestBeanTable(t *testing.T) {
	var buf bytes.Buffer
	table := NewBeanTable(&buf, true)

	table.Add(pipeline.BeanReport{Name: "restTemplate", Type: "RestTemplate", Creator: "Config.rest()", Status: pipeline.StatusRegistered})
	table.Add(pipeline.BeanReport{Name: "hidden", Type: "Hidden", Status: pipeline.StatusDelegated})

	if table.Len() != 2 {
		t.Fatalf("expected 2 rows, got %d", table.Len())
	}

	table.Render()
	expected := []string{
		"BEAN          TYPE          CREATOR        STATUS",
		"────────────  ────────────  ─────────────  ──────────",
		"restTemplate  RestTemplate  Config.rest()  registered",
		"hidden        Hidden        -              delegated",
	}
	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	if len(lines) != len(expected) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(expected), len(lines), buf.String())
	}
	for i, want := range expected {
		if lines[i] != want {
			t.Errorf("line %d = %q; want %q", i, lines[i], want)
		}
	}
}

func TestBeanTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	NewBeanTable(&buf, true).Render()

	want := "BEAN  TYPE  CREATOR  STATUS\n────  ────  ───────  ──────\n"
	if buf.String() != want {
		t.Errorf("got %q; want %q", buf.String(), want)
	}
}

func TestBeanTableColorsStatus(t *testing.T) {
	var buf bytes.Buffer
	table := NewBeanTable(&buf, false)
	table.Add(pipeline.BeanReport{Name: "broken", Type: "Broken", Status: pipeline.StatusFailed})
	table.Add(pipeline.BeanReport{Name: "odd", Type: "Odd", Status: "unheard of"})
	table.Render()

	lines := strings.Split(buf.String(), "\n")
	if !strings.Contains(lines[2], "\x1b[31mfailed") {
		t.Errorf("expected failed status in red, got %q", lines[2])
	}
	if !strings.HasPrefix(lines[2], "broken  Broken  -        ") {
		t.Errorf("expected plain cells padded on their text, got %q", lines[2])
	}
	if strings.Contains(lines[3], "\x1b[3") {
		t.Errorf("expected unknown status uncolored, got %q", lines[3])
	}
}

func TestWriteBeanDetails(t *testing.T) {
	var buf bytes.Buffer
	WriteBeanDetails(&buf, pipeline.BeanReport{
		Name:              "hidden",
		Type:              "com.example.internal.Hidden",
		Creator:           "com.example.internal.Hidden()",
		InjectionPoints:   2,
		PrivilegedPackage: "com.example.internal",
		Method:            "registerHidden",
		Status:            pipeline.StatusDelegated,
	}, true)

	want := strings.Join([]string{
		"hidden",
		"──────",
		"Type:             com.example.internal.Hidden",
		"Status:           delegated",
		"Creator:          com.example.internal.Hidden()",
		"Injection points: 2",
		"Package:          com.example.internal",
		"Method:           registerHidden",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestWriteBeanDetailsSkipsUnknownAttributes(t *testing.T) {
	var buf bytes.Buffer
	WriteBeanDetails(&buf, pipeline.BeanReport{
		Name:   "broken",
		Type:   "com.example.Broken",
		Status: pipeline.StatusFailed,
		Error:  errors.New("no constructor"),
	}, true)

	output := buf.String()
	for _, label := range []string{"Creator:", "Package:", "Method:"} {
		if strings.Contains(output, label) {
			t.Errorf("expected no %s line, got %q", label, output)
		}
	}
	if !strings.Contains(output, "Error:  no constructor\n") {
		t.Errorf("expected aligned error, got %q", output)
	}
}

func TestWriteRunSummary(t *testing.T) {
	var buf bytes.Buffer
	WriteRunSummary(&buf, &pipeline.Result{
		RunID:       "0b7e",
		Sources:     []string{"a.java", "b.java"},
		NativeFiles: []string{"reflect-config.json"},
		Duration:    1234567 * time.Microsecond,
	}, "com.example.ContextBootstrapInitializer", true)

	want := strings.Join([]string{
		"Run:          0b7e",
		"Class:        com.example.ContextBootstrapInitializer",
		"Sources:      2",
		"Native files: 1",
		"Duration:     1.235s",
		"",
	}, "\n")
	if buf.String() != want {
		t.Errorf("got:\n%s\nwant:\n%s", buf.String(), want)
	}
}

func TestPad(t *testing.T) {
	tests := []struct {
		input    string
		width    int
		last     bool
		expected string
	}{
		{"abc", 5, false, "abc    "},
		{"abc", 3, false, "abc  "},
		{"abcdef", 3, false, "abcdef  "},
		{"──", 4, false, "──    "},
		{"abc", 5, true, "abc"},
	}

	for _, tt := range tests {
		if got := pad(tt.input, tt.width, tt.last); got != tt.expected {
			t.Errorf("pad(%q, %d, %v) = %q; want %q", tt.input, tt.width, tt.last, got, tt.expected)
		}
	}
}
