package config

import (
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// SeedIncludedFiles copies every file under srcRoot matching the
// include_patterns glob set into destRoot, preserving relative paths and
// file mode. This is how gitignored files a service needs at runtime
// (.env, local config) ride along into a fresh worktree, which git
// itself would never copy. A single file's copy failure is collected as
// a warning rather than aborting the rest of the seed.
func (s IncludePatternsSection) SeedIncludedFiles(srcRoot, destRoot string) (copied []string, warnings []string) {
	if !s.Enabled || len(s.Patterns) == 0 {
		return nil, nil
	}
	maxBytes := s.maxFileSizeBytes()

	_ = filepath.WalkDir(srcRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			warnings = append(warnings, path+": "+err.Error())
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		rel, err := filepath.Rel(srcRoot, path)
		if err != nil || !s.MatchesAny(rel) {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			warnings = append(warnings, rel+": "+err.Error())
			return nil
		}
		if maxBytes > 0 && info.Size() > maxBytes {
			warnings = append(warnings, rel+": exceeds max_file_size")
			return nil
		}
		dst := filepath.Join(destRoot, rel)
		if err := copyFilePreservingMode(path, dst, info.Mode()); err != nil {
			warnings = append(warnings, rel+": "+err.Error())
			return nil
		}
		copied = append(copied, rel)
		return nil
	})
	return copied, warnings
}

// maxFileSizeBytes parses MaxFileSize (e.g. "10MB", "512KB"); an empty
// or unparsable value disables the size cap.
func (s IncludePatternsSection) maxFileSizeBytes() int64 {
	v := strings.TrimSpace(s.MaxFileSize)
	if v == "" {
		return 0
	}
	multiplier := int64(1)
	switch {
	case strings.HasSuffix(v, "MB"):
		multiplier = 1024 * 1024
		v = strings.TrimSuffix(v, "MB")
	case strings.HasSuffix(v, "KB"):
		multiplier = 1024
		v = strings.TrimSuffix(v, "KB")
	case strings.HasSuffix(v, "B"):
		v = strings.TrimSuffix(v, "B")
	}
	n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
	if err != nil {
		return 0
	}
	return n * multiplier
}

func copyFilePreservingMode(src, dst string, mode fs.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0755); err != nil {
		return err
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, mode)
	if err != nil {
		return err
	}
	defer out.Close()

	_, err = io.Copy(out, in)
	return err
}
