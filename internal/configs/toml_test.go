package configs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestSaveAndLoadTOML(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "test.toml")

	type TestStruct struct {
		Cipher string
		Length int
		Keys   map[string]string
	}

	originalData := TestStruct{
		Cipher: "aes-256-cbc",
		Length: 30,
		Keys:   map[string]string{"vellum.cipher": "aes-256-cbc"},
	}

	err := SaveTOML(testFile, originalData)
	if err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	loadedData := TestStruct{}
	err = LoadTOML(testFile, &loadedData)
	if err != nil {
		t.Fatalf("LoadTOML failed: %v", err)
	}

	if loadedData.Cipher != originalData.Cipher {
		t.Errorf("Expected Cipher %q, got %q", originalData.Cipher, loadedData.Cipher)
	}

	if loadedData.Length != originalData.Length {
		t.Errorf("Expected Length %d, got %d", originalData.Length, loadedData.Length)
	}

	if loadedData.Keys["vellum.cipher"] != "aes-256-cbc" {
		t.Errorf("Expected dotted key to survive, got %v", loadedData.Keys)
	}
}

func TestLoadTOMLNonExistent(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "nonexistent.toml")

	type TestStruct struct {
		Name string
	}

	data := TestStruct{}
	err := LoadTOML(testFile, &data)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Expected fs.ErrNotExist for non-existent file, got %v", err)
	}
}

func TestSaveTOMLCreatesDirectory(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "subdir", "test.toml")

	type TestStruct struct {
		Name string
	}

	data := TestStruct{Name: "Test"}
	err := SaveTOML(testFile, data)
	if err != nil {
		t.Fatalf("SaveTOML failed: %v", err)
	}

	info, err := os.Stat(testFile)
	if os.IsNotExist(err) {
		t.Fatal("File was not created")
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected 0600 permissions, got %o", info.Mode().Perm())
	}
}

func TestSaveTOMLLeavesNoTempFiles(t *testing.T) {
	tempDir := t.TempDir()
	testFile := filepath.Join(tempDir, "test.toml")

	for i := 0; i < 3; i++ {
		if err := SaveTOML(testFile, map[string]int{"n": i}); err != nil {
			t.Fatalf("SaveTOML failed: %v", err)
		}
	}

	entries, err := os.ReadDir(tempDir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the target file, found %d entries", len(entries))
	}
}
