package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestGetFileExtension(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"scan.png", "png"},
		{"dir/scan.JPG", "jpg"},
		{"scan.tar.gz", "gz"},
		{"noext", ""},
	}

	for _, test := range tests {
		if result := GetFileExtension(test.input); result != test.expected {
			t.Errorf("GetFileExtension(%q) = %q, expected %q", test.input, result, test.expected)
		}
	}
}

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		input    string
		expected bool
	}{
		{"scan.png", true},
		{"scan.jpg", true},
		{"scan.JPEG", true},
		{"scan.bmp", true},
		{"scan.tif", true},
		{"scan.tiff", true},
		{"scan.json", false},
		{"scan", false},
	}

	for _, test := range tests {
		if result := IsImageFile(test.input); result != test.expected {
			t.Errorf("IsImageFile(%q) = %v, expected %v", test.input, result, test.expected)
		}
	}
}

func TestAnnotationPath(t *testing.T) {
	tests := []struct {
		imagePath string
		dir       string
		expected  string
	}{
		{"/data/scan.png", "", "/data/scan.json"},
		{"/data/scan.jpg", "/out", "/out/scan.json"},
		{"scan.tiff", "", "scan.json"},
	}

	for _, test := range tests {
		if result := AnnotationPath(test.imagePath, test.dir); result != test.expected {
			t.Errorf("AnnotationPath(%q, %q) = %q, expected %q",
				test.imagePath, test.dir, result, test.expected)
		}
	}
}

func TestPreviewPath(t *testing.T) {
	result := PreviewPath("/data/scan.png", "", "png")
	if result != "/data/scan_preview.png" {
		t.Errorf("PreviewPath = %q, expected %q", result, "/data/scan_preview.png")
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present.txt")
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	if !FileExists(path) {
		t.Error("Expected FileExists true for existing file")
	}

	if FileExists(filepath.Join(dir, "absent.txt")) {
		t.Error("Expected FileExists false for missing file")
	}

	if FileExists(dir) {
		t.Error("Expected FileExists false for a directory")
	}
}
