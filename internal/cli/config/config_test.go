package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp makes a fresh temp dir the working directory.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	// Resolve symlinks so comparisons match os.Getwd.
	wd, err := os.Getwd()
	require.NoError(t, err)
	ResetConfig()
	t.Cleanup(ResetConfig)
	return wd
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ConfigFileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("input-dir", "", "")
	fs.String("output-dir", "", "")
	fs.String("schema-path", "", "")
	fs.String("exclude", "", "")
	fs.String("delimiter", "", "")
	fs.String("format", "", "")
	fs.Int("workers", 0, "")
	fs.Bool("continue-on-error", false, "")
	fs.String("state", "", "")
	fs.BoolP("verbose", "v", false, "")
	fs.StringP("output", "o", "", "")
	return fs
}

func TestLoadConfig_Defaults(t *testing.T) {
	root := chdirTemp(t)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, DefaultInputDir), cfg.InputDir)
	assert.Equal(t, filepath.Join(root, DefaultOutputDir), cfg.OutputDir)
	assert.Equal(t, filepath.Join(root, DefaultSchemaPath), cfg.SchemaPath)
	assert.Equal(t, filepath.Join(root, DefaultStateFile), cfg.StatePath)
	assert.Equal(t, "", cfg.Exclude)
	assert.Equal(t, ",", cfg.Delimiter)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, DefaultWorkers, cfg.Workers)
	assert.False(t, cfg.ContinueOnError)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Empty(t, GetConfigFileUsed())
	assert.Same(t, cfg, GetCurrentConfig())
}

func TestLoadConfig_File(t *testing.T) {
	root := chdirTemp(t)
	writeConfig(t, root, `
input_dir: seeds
exclude: Draft
format: yaml
workers: 2
continue_on_error: true
delimiter: ";"
`)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "seeds"), cfg.InputDir)
	assert.Equal(t, "Draft", cfg.Exclude)
	assert.Equal(t, "yaml", cfg.Format)
	assert.Equal(t, 2, cfg.Workers)
	assert.True(t, cfg.ContinueOnError)
	assert.Equal(t, filepath.Join(root, ConfigFileName), GetConfigFileUsed())
}

func TestLoadConfig_FoundFromSubdirectory(t *testing.T) {
	root := chdirTemp(t)
	writeConfig(t, root, "output_dir: out\n")
	sub := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	t.Chdir(sub)

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, root, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(root, "out"), cfg.OutputDir)
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	chdirTemp(t)
	other := t.TempDir()
	path := filepath.Join(other, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("schema_path: schema.prisma\n"), 0o644))

	cfg, err := LoadConfig(path, nil)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), "schema.prisma"), cfg.SchemaPath)
	assert.Equal(t, path, GetConfigFileUsed())
}

func TestLoadConfig_Precedence(t *testing.T) {
	root := chdirTemp(t)
	writeConfig(t, root, "workers: 2\nformat: yaml\nexclude: file\n")
	t.Setenv("LEAPSEED_WORKERS", "3")
	t.Setenv("LEAPSEED_EXCLUDE", "env")

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--workers", "5"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Workers, "flag beats env")
	assert.Equal(t, "env", cfg.Exclude, "env beats file")
	assert.Equal(t, "yaml", cfg.Format, "file beats default")
}

func TestLoadConfig_FlagPathsRelativeToCWD(t *testing.T) {
	root := chdirTemp(t)
	writeConfig(t, root, "workers: 4\n")
	sub := filepath.Join(root, "sub")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	t.Chdir(sub)

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--input-dir", "in", "--state", "ledger.db"}))

	cfg, err := LoadConfig("", flags)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(sub, "in"), cfg.InputDir)
	assert.Equal(t, filepath.Join(sub, "ledger.db"), cfg.StatePath)
	assert.Equal(t, filepath.Join(root, DefaultOutputDir), cfg.OutputDir)
}

func TestLoadConfig_ExpandsEnvVars(t *testing.T) {
	root := chdirTemp(t)
	t.Setenv("SEED_ROOT", "/srv/seeds")
	writeConfig(t, root, "input_dir: ${SEED_ROOT}/csv\noutput_dir: ${UNSET_LEAPSEED_VAR}/json\n")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Equal(t, "/srv/seeds/csv", cfg.InputDir)
	assert.Equal(t, filepath.Join(root, "${UNSET_LEAPSEED_VAR}", "json"), cfg.OutputDir)
}

func TestLoadConfig_EmptyStateDisablesLedger(t *testing.T) {
	root := chdirTemp(t)
	writeConfig(t, root, "state_path: \"\"\n")

	cfg, err := LoadConfig("", nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.StatePath)
}

func TestLoadConfig_Invalid(t *testing.T) {
	root := chdirTemp(t)
	writeConfig(t, root, "format: xml\n")

	_, err := LoadConfig("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format")
	assert.Nil(t, GetCurrentConfig())
}

func TestLoadConfig_MalformedFile(t *testing.T) {
	root := chdirTemp(t)
	writeConfig(t, root, "workers: [1\n")

	_, err := LoadConfig("", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config file")
}

func validConfig() Config {
	return Config{
		InputDir:   "in",
		OutputDir:  "out",
		SchemaPath: "schema.prisma",
		Delimiter:  ",",
		Format:     "json",
		Workers:    1,
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"empty input", func(c *Config) { c.InputDir = "" }, "input_dir is required"},
		{"empty output", func(c *Config) { c.OutputDir = "" }, "output_dir is required"},
		{"empty schema", func(c *Config) { c.SchemaPath = "" }, "schema_path is required"},
		{"long delimiter", func(c *Config) { c.Delimiter = ";;" }, "single character"},
		{"quote delimiter", func(c *Config) { c.Delimiter = `"` }, "single character"},
		{"unknown format", func(c *Config) { c.Format = "csv" }, "format must be"},
		{"zero workers", func(c *Config) { c.Workers = 0 }, "workers must be at least 1"},
		{"unknown output", func(c *Config) { c.OutputFormat = "html" }, "output must be"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDelimiterRune(t *testing.T) {
	tests := []struct {
		in   string
		want rune
	}{
		{"", ','},
		{",", ','},
		{";", ';'},
		{"tab", '\t'},
		{`\t`, '\t'},
		{"\t", '\t'},
		{"|", '|'},
		{"§", '§'},
	}
	for _, tt := range tests {
		c := Config{Delimiter: tt.in}
		got, err := c.DelimiterRune()
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestValidateDirectories(t *testing.T) {
	dir := t.TempDir()

	c := Config{InputDir: dir}
	assert.NoError(t, c.ValidateDirectories())

	c.InputDir = filepath.Join(dir, "missing")
	err := c.ValidateDirectories()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does not exist")

	file := filepath.Join(dir, "f.csv")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	c.InputDir = file
	assert.ErrorContains(t, c.ValidateDirectories(), "not a directory")
}

func TestGetLogger_Default(t *testing.T) {
	assert.NotNil(t, GetLogger(t.Context()))
}
