package pageseg

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// LoadLabels reads the class names the layout detector was trained with from
// the given text file.  It should contain one label per line in class index
// order, the first line being the background class which may be left empty.
// Lines starting with '#' are treated as comments and skipped.
func LoadLabels(file string) ([]string, error) {

	// open the file
	f, err := os.Open(file)

	if err != nil {
		return nil, fmt.Errorf("error opening file: %w", err)
	}

	defer f.Close()

	// create a scanner to read the file.
	scanner := bufio.NewScanner(f)

	var labels []string

	// read and trim each line
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if strings.HasPrefix(line, "#") {
			continue
		}

		labels = append(labels, line)
	}

	// check for errors during scanning
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %w", err)
	}

	// drop trailing blank lines, only the background entry may be empty
	for len(labels) > 1 && labels[len(labels)-1] == "" {
		labels = labels[:len(labels)-1]
	}

	if len(labels) == 0 {
		return nil, fmt.Errorf("no labels found in file: %s", file)
	}

	return labels, nil
}
