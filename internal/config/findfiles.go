package config

import (
	"io/fs"
	"path/filepath"

	"github.com/pkg/errors"
)

const configFileExt = ".hcl"

// listConfigFiles returns every .hcl file below dir in lexical order.
func listConfigFiles(dir string) ([]string, error) {
	var files []string

	walkErr := filepath.WalkDir(dir, func(path string, entry fs.DirEntry, err error) error {
		switch {
		case err != nil:
			return err
		case entry.IsDir(), filepath.Ext(entry.Name()) != configFileExt:
			return nil
		}
		files = append(files, path)
		return nil
	})
	if walkErr != nil {
		return nil, errors.Wrapf(walkErr, "failed to scan %s", dir)
	}

	if len(files) == 0 {
		return nil, errors.Errorf("no %s configuration files found in %s", configFileExt, dir)
	}
	return files, nil
}
