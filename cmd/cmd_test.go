package cmd

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/workbench/internal/contract"
	"github.com/huangsam/workbench/schema"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFieldFlags(t *testing.T, args ...string) *pflag.FlagSet {
	t.Helper()
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	for _, name := range []string{"name", "breed", "age", "weight", "intake-date"} {
		flags.String(name, "", "")
	}
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestFieldsFromFlags(t *testing.T) {
	t.Run("only changed flags are supplied", func(t *testing.T) {
		fields, err := fieldsFromFlags(newFieldFlags(t, "--weight", "13.5", "--name", ""))
		require.NoError(t, err)

		require.NotNil(t, fields.Weight)
		assert.Equal(t, 13.5, *fields.Weight)
		require.NotNil(t, fields.Name, "an explicit empty value still counts")
		assert.Empty(t, *fields.Name)
		assert.Nil(t, fields.Breed)
		assert.Nil(t, fields.Age)
		assert.Nil(t, fields.IntakeDate)
	})

	t.Run("non-numeric age", func(t *testing.T) {
		_, err := fieldsFromFlags(newFieldFlags(t, "--age", "old"))
		require.Error(t, err)
		assert.True(t, schema.IsValidation(err))
		assert.Contains(t, err.Error(), "--age")
	})

	t.Run("nothing set", func(t *testing.T) {
		fields, err := fieldsFromFlags(newFieldFlags(t))
		require.NoError(t, err)
		assert.True(t, fields.Empty())
	})
}

func TestRunServeRequiresAService(t *testing.T) {
	err := runServe(context.Background(), &contract.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both services are disabled")
}

func TestRunServeStopsOnCancel(t *testing.T) {
	dir := t.TempDir()
	prev := cfg
	t.Cleanup(func() { cfg = prev })
	cfg = &contract.Config{
		DogsBackend: schema.MemoryBackend,
		DefectsFile: filepath.Join(dir, "defects.json"),
		DogsAddr:    "127.0.0.1:0",
		DefectsAddr: "127.0.0.1:0",
		CORS:        true,
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.NoError(t, runServe(ctx, cfg))
}

func TestDogsCommands(t *testing.T) {
	dir := t.TempDir()
	dataFile := filepath.Join(dir, "data.json")
	outFile := filepath.Join(dir, "out.json")
	require.NoError(t, os.WriteFile(dataFile, []byte(`[{"id":1,"name":"Rex","breed":"Boxer","age":5,"weight":30,"intakeDate":"2023-05-01"}]`), 0o644))

	run := func(args ...string) error {
		rootCmd.SetArgs(append(args, "--dogs-db-connect", dataFile, "--output", "json", "--output-file", outFile))
		return Execute()
	}

	require.NoError(t, run("dogs", "create",
		"--name", "Toby", "--breed", "Beagle", "--age", "3", "--weight", "12.5", "--intake-date", "2024-01-10"))

	var created []schema.Dog
	content, err := os.ReadFile(outFile)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(content, &created))
	require.Len(t, created, 1)
	assert.Equal(t, int64(2), created[0].ID)

	require.NoError(t, run("dogs", "list", "--sort", "age"))

	var listed []schema.Dog
	content, err = os.ReadFile(outFile)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(content, &listed))
	require.Len(t, listed, 2)
	assert.Equal(t, "Toby", listed[0].Name)
	assert.Equal(t, "Rex", listed[1].Name)

	err = run("dogs", "get", "99")
	require.Error(t, err)
	assert.True(t, schema.IsNotFound(err))
}
