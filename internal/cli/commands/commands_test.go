package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSnapshot = `
application: sample
classes:
  - name: com.example.SampleConfiguration
    annotations:
      - type: org.springframework.context.annotation.Configuration
    constructors:
      - {}
    methods:
      - name: stringBean
        returns: java.lang.String
  - name: org.springframework.web.client.RestTemplate
    constructors:
      - {}
  - name: com.example.internal.Hidden
    visibility: package
    constructors:
      - {}
  - name: com.example.Ambiguous
    constructors:
      - parameters:
          - name: name
            type: java.lang.String
      - parameters:
          - name: count
            type: java.lang.Integer
beans:
  - name: sampleConfiguration
    class: com.example.SampleConfiguration
  - name: stringBean
    type: java.lang.String
    factory_bean: sampleConfiguration
    factory_method: stringBean
  - name: restTemplate
    class: org.springframework.web.client.RestTemplate
  - name: hidden
    class: com.example.internal.Hidden
  - name: ambiguous
    class: com.example.Ambiguous
  - name: ignored
    class: com.example.SampleConfiguration
`

const testConfig = `
project_name: sample
snapshot: snapshot.yml
hints:
  - hints.yml
output:
  dir: out
  package: com.example
generator:
  exclude_names:
    - ignored
log:
  level: error
watch:
  debounce: 50ms
`

// newProject writes a configuration, a snapshot and its hints to a temp dir
// and returns the configuration path
func newProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "snapshot.yml"), []byte(testSnapshot), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "hints.yml"), []byte("hints: []\n"), 0644))
	path := filepath.Join(dir, "aotgen.yml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append(args, "--no-color"))
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	assert.Equal(t, "aotgen", cmd.Use)
	assert.NotEmpty(t, cmd.Short)
	assert.NotEmpty(t, cmd.Long)

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, expected := range []string{"version", "init", "generate", "inspect", "watch", "completion"} {
		assert.Contains(t, names, expected)
	}

	for _, flag := range []string{"config", "no-color", "verbose"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestVersionCommand(t *testing.T) {
	Version = "1.0.0-test"
	GitCommit = "abc123"
	defer func() { Version, GitCommit = "dev", "unknown" }()

	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "aotgen version: 1.0.0-test")
	assert.Contains(t, out, "Git commit: abc123")
	assert.Contains(t, out, "Go version: go")
}

func TestCompletionCommand(t *testing.T) {
	out, _, err := execute(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "aotgen")

	_, _, err = execute(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestGenerateCommand(t *testing.T) {
	path := newProject(t)
	dir := filepath.Dir(path)

	out, _, err := execute(t, "generate", "--config", path)
	require.NoError(t, err)

	outDir := filepath.Join(dir, "out")
	assert.Contains(t, out, "✓ Generated 6 bean(s) into "+outDir)
	assert.Contains(t, out, "Class:")
	assert.Contains(t, out, "com.example.ContextBootstrapInitializer")
	assert.Contains(t, out, filepath.Join("sources", "com", "example", "ContextBootstrapInitializer.java"))

	source, err := os.ReadFile(filepath.Join(outDir, "sources", "com", "example", "ContextBootstrapInitializer.java"))
	require.NoError(t, err)
	assert.Contains(t, string(source), `BeanDefinitionRegistrar.of("restTemplate", RestTemplate.class)`)
	assert.NotContains(t, string(source), `"ignored"`)

	_, err = os.Stat(filepath.Join(outDir, "resources", "META-INF", "native-image", "reflect-config.json"))
	assert.NoError(t, err)
}

func TestGenerateCommandOverrides(t *testing.T) {
	path := newProject(t)
	dir := filepath.Dir(path)

	_, _, err := execute(t, "generate", "--config", path, "--output", "custom", "--package", "org.acme")
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "custom", "sources", "org", "acme", "ContextBootstrapInitializer.java"))
	assert.NoError(t, err)

	_, _, err = execute(t, "generate", "--config", path, "--package", "org.1acme")
	require.Error(t, err)
	var cfgErr *configError
	assert.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, err.Error(), "Output.Package must be a Java package name")
}

func TestGenerateCommandErrors(t *testing.T) {
	path := newProject(t)
	require.NoError(t, os.Remove(filepath.Join(filepath.Dir(path), "snapshot.yml")))

	_, _, err := execute(t, "generate", "--config", path)
	assert.Error(t, err)

	_, _, err = execute(t, "generate", "--config", filepath.Join(t.TempDir(), "missing.yml"))
	var cfgErr *configError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestInspectCommand(t *testing.T) {
	path := newProject(t)

	out, _, err := execute(t, "inspect", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "BEAN")
	assert.Contains(t, out, "restTemplate")
	assert.Contains(t, out, "com.example.SampleConfiguration()")
	assert.Contains(t, out, "6 beans: 3 registered, 1 delegated, 1 excluded, 1 skipped")
	assert.Regexp(t, `run [0-9a-f-]{36}\n`, out)

	_, err = os.Stat(filepath.Join(filepath.Dir(path), "out"))
	assert.True(t, os.IsNotExist(err), "inspect must not write output")
}

func TestInspectCommandFilters(t *testing.T) {
	path := newProject(t)

	out, _, err := execute(t, "inspect", "--config", path, "--status", "delegated")
	require.NoError(t, err)
	table := strings.SplitN(out, "\n\n", 2)[0]
	assert.Contains(t, table, "hidden")
	assert.NotContains(t, table, "restTemplate")

	out, _, err = execute(t, "inspect", "--config", path, "--bean", "hidden")
	require.NoError(t, err)
	assert.Contains(t, out, "Status:")
	assert.Contains(t, out, "delegated")
	assert.Contains(t, out, "com.example.internal")
	assert.Contains(t, out, "registerHidden")

	_, _, err = execute(t, "inspect", "--config", path, "--bean", "hiden")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown bean "hiden" (did you mean: hidden`)
}

func TestInitCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "aotgen.yml")

	out, _, err := execute(t, "init", "--yes", "--config", path, "--name", "demo", "--package", "org.acme.app")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Created "+path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), "org.acme.app")
	assert.Contains(t, string(content), "demo")

	_, _, err = execute(t, "init", "--yes", "--config", path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "init", "--yes", "--force", "--config", path, "--package", "org.acme.other")
	require.NoError(t, err)
	p, err := loadProject(&globalOptions{configPath: path})
	require.NoError(t, err)
	assert.Equal(t, "org.acme.other", p.config.Output.Package)
	assert.Equal(t, "snapshot.yml", p.config.Snapshot)
	options, err := p.pipelineOptions()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "snapshot.yml"), options.Snapshot)

	_, _, err = execute(t, "init", "--yes", "--force", "--config", path, "--package", "not a package")
	var cfgErr *configError
	assert.ErrorAs(t, err, &cfgErr)
}

func TestPipelineOptionsExpandsHintDirectories(t *testing.T) {
	path := newProject(t)
	dir := filepath.Dir(path)
	hintsDir := filepath.Join(dir, "hints")
	require.NoError(t, os.MkdirAll(hintsDir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(hintsDir, "web.yml"), []byte("hints: []\n"), 0644))

	p, err := loadProject(&globalOptions{configPath: path})
	require.NoError(t, err)
	p.config.Hints = []string{"hints.yml", "hints"}

	options, err := p.pipelineOptions()
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "hints.yml"),
		filepath.Join(hintsDir, "web.yml"),
	}, options.Hints)
	assert.Equal(t, filepath.Join(dir, "out"), options.OutputDir)
	assert.Equal(t, []string{"ignored"}, options.Generator.ExcludeNames)
}
