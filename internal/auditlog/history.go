package auditlog

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Recent returns up to n of the newest batches in the log at path, oldest
// first. Each batch holds its raw lines from the start marker through the end
// marker. Lines before the first start marker form a batch of their own. A
// missing file yields no batches and no error.
func Recent(path string, n int) ([][]string, error) {
	if n <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	var batches [][]string
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if len(batches) == 0 || isStartMarker(line) {
			if len(batches) == n {
				batches = append(batches[:0], batches[1:]...)
			}
			batches = append(batches, nil)
		}
		last := len(batches) - 1
		batches[last] = append(batches[last], line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}
	return batches, nil
}

// Record lines start with "- " or "  => ", so only markers begin with "[".
func isStartMarker(line string) bool {
	return strings.HasPrefix(line, "[") && strings.Contains(line, "] batch ") && strings.HasSuffix(line, " started")
}
