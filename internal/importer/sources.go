package importer

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/piwi3910/GangSheet/internal/model"
)

// imageExtensions lists the file extensions the decoder understands.
var imageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".bmp":  true,
	".tif":  true,
	".tiff": true,
	".webp": true,
}

// IsImageFile reports whether path has a supported image extension.
func IsImageFile(path string) bool {
	return imageExtensions[strings.ToLower(filepath.Ext(path))]
}

// ScanDirectory collects every supported image below dir in lexical order.
// Hidden files and directories are skipped. Without recursive only the top
// level is read.
func ScanDirectory(dir string, recursive bool) ImportResult {
	result := ImportResult{}

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("Cannot read %s: %v", path, err))
			if d != nil && d.IsDir() && path != dir {
				return fs.SkipDir
			}
			return nil
		}
		if path == dir {
			return nil
		}
		hidden := strings.HasPrefix(d.Name(), ".")
		if d.IsDir() {
			if hidden || !recursive {
				return fs.SkipDir
			}
			return nil
		}
		if hidden || !IsImageFile(path) {
			return nil
		}
		result.Assets = append(result.Assets, model.NewSourceAsset(labelFromPath(path), path))
		return nil
	})
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot scan directory: %v", err))
	}

	if len(result.Assets) == 0 && len(result.Errors) == 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("No images found in %s", dir))
	}
	return result
}

// ImportPath imports one command line input: a directory, a CSV, Excel or
// YAML manifest, or a single image file.
func ImportPath(path string, recursive bool) ImportResult {
	info, err := os.Stat(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open %s: %v", path, err)}}
	}
	if info.IsDir() {
		return ScanDirectory(path, recursive)
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".tsv", ".txt":
		return ImportCSV(path)
	case ".xlsx", ".xlsm":
		return ImportExcel(path)
	case ".yaml", ".yml":
		return ImportYAML(path)
	}

	if IsImageFile(path) {
		return ImportResult{Assets: []model.SourceAsset{model.NewSourceAsset(labelFromPath(path), path)}}
	}
	return ImportResult{Errors: []string{fmt.Sprintf("Unsupported input %s", path)}}
}

// ImportPaths imports every input in order and merges the results.
func ImportPaths(paths []string, recursive bool) ImportResult {
	result := ImportResult{}
	for _, p := range paths {
		result.Merge(ImportPath(p, recursive))
	}
	return result
}
