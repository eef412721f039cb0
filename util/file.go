package util

import (
	"bufio"
	"encoding/json"
	"os"
	"path"
	"strings"
	"sync"
)

// takes a save path and a variable number of strings and writes them to file separated by new lines
func WriteToFile(savePath string, content ...string) error {
	if err := EnsureDir(path.Dir(savePath)); err != nil {
		return err
	}
	return os.WriteFile(savePath, []byte(strings.Join(content, "\n")+"\n"), 0644)
}

func AppendToFile(savePath string, content ...string) error {
	f, err := os.OpenFile(savePath, os.O_APPEND|os.O_WRONLY|os.O_CREATE, 0644)
	if err != nil {
		return err
	}

	defer f.Close()

	for _, s := range content {
		if _, err = f.WriteString(s + "\n"); err != nil {
			return err
		}
	}
	return nil
}

// ReadLines returns the non empty lines of a file
func ReadLines(filePath string) ([]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	lines := make([]string, 0)
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// WriteJSON stores v indented at savePath
func WriteJSON(savePath string, v interface{}) error {
	bs, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return WriteToFile(savePath, string(bs))
}

// EnsureDir creates the folder (and parents) if it does not exist yet
func EnsureDir(dir string) error {
	if _, err := os.Stat(dir); err == nil {
		return nil
	}
	return os.MkdirAll(dir, os.ModePerm)
}

// Delete everything in the directory except the files in keep
func RemoveContents(dir string, keep ...string) error {
	d, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer d.Close()
	names, err := d.Readdirnames(-1)
	if err != nil {
		return err
	}
	kept := make(map[string]bool)
	for _, k := range keep {
		kept[k] = true
	}
	for _, name := range names {
		if kept[name] {
			continue
		}
		if err = os.RemoveAll(path.Join(dir, name)); err != nil {
			return err
		}
	}
	return nil
}

// JSONLWriter appends one JSON document per line, safe for concurrent use
type JSONLWriter struct {
	mu   sync.Mutex
	path string
}

func NewJSONLWriter(filePath string) *JSONLWriter {
	return &JSONLWriter{path: filePath}
}

func (w *JSONLWriter) Path() string {
	return w.path
}

func (w *JSONLWriter) Write(v interface{}) error {
	bs, err := json.Marshal(v)
	if err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	return AppendToFile(w.path, string(bs))
}
