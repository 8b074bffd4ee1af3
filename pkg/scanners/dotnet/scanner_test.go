package dotnet

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))
}

func TestDotNetScanner_DetectProject(t *testing.T) {
	dir := t.TempDir()
	scanner := NewScanner()

	assert.False(t, scanner.DetectProject(context.Background(), dir))

	writeFile(t, dir, "app.csproj", "<Project/>")
	assert.True(t, scanner.DetectProject(context.Background(), dir))
}

func TestParseProjectFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.csproj", `<Project Sdk="Microsoft.NET.Sdk">
  <ItemGroup>
    <PackageReference Include="Newtonsoft.Json" Version="13.0.1" />
    <PackageReference Include="Serilog" Version="2.12.0" />
  </ItemGroup>
</Project>`)

	deps, err := parseProjectFile(filepath.Join(dir, "app.csproj"))
	require.NoError(t, err)
	require.Len(t, deps, 2)
	assert.Equal(t, "Newtonsoft.Json", deps[0].Name)
	assert.Equal(t, "13.0.1", deps[0].Version)
	assert.Equal(t, "Serilog", deps[1].Name)
}

func TestParsePackagesConfig(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "packages.config", `<?xml version="1.0" encoding="utf-8"?>
<packages>
  <package id="Newtonsoft.Json" version="13.0.1" targetFramework="net452" />
  <package id="NUnit" version="3.13.3" targetFramework="net452" />
</packages>`)

	deps, err := parsePackagesConfig(filepath.Join(dir, "packages.config"))
	require.NoError(t, err)
	require.Len(t, deps, 2)
	assert.Equal(t, "Newtonsoft.Json", deps[0].Name)
	assert.Equal(t, "13.0.1", deps[0].Version)
}

func TestParsePaketLock(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "paket.lock", `REFERENCES

NUGET
  remote: https://api.nuget.org/v3/index.json
    Newtonsoft.Json (13.0.1)
    Serilog (2.12.0)

GITHUB
  remote: some/repo
    file.fs
`)

	deps, err := parsePaketLock(filepath.Join(dir, "paket.lock"))
	require.NoError(t, err)
	require.Len(t, deps, 2)
	assert.Equal(t, "Newtonsoft.Json", deps[0].Name)
	assert.Equal(t, "Serilog", deps[1].Name)
}

func TestDotNetScanner_DeduplicatesAcrossManifests(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.csproj", `<Project>
  <ItemGroup>
    <PackageReference Include="Newtonsoft.Json" Version="13.0.1" />
  </ItemGroup>
</Project>`)
	writeFile(t, dir, "packages.config", `<packages>
  <package id="Newtonsoft.Json" version="13.0.1" />
  <package id="NUnit" version="3.13.3" />
</packages>`)

	deps, err := NewScanner().CollectDependencies(context.Background(), dir)
	require.NoError(t, err)
	require.Len(t, deps, 2)
}
