package logtail

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/tidwall/gjson"
)

// Read returns at most maxLines from the end of the file at path. A
// non-positive maxLines returns the whole file. A missing file is not an
// error; paddock may not have logged anything yet.
func Read(path string, maxLines int) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	if maxLines <= 0 {
		var lines []string
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read log: %w", err)
		}
		return lines, nil
	}

	ring := make([]string, maxLines)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one decoded line of paddock's JSON log.
type Entry struct {
	Time    string
	Level   string
	Message string
	Fields  []Field
	Raw     string
}

// Field is a structured key/value pair attached to an entry.
type Field struct {
	Key   string
	Value string
}

var reservedKeys = map[string]struct{}{
	"ts":     {},
	"level":  {},
	"msg":    {},
	"caller": {},
	"logger": {},
}

// Parse decodes a zap JSON line. Lines that are not JSON objects come back
// with only Raw and Message set.
func Parse(line string) Entry {
	entry := Entry{Raw: line}
	trimmed := strings.TrimSpace(line)
	if !gjson.Valid(trimmed) {
		entry.Message = trimmed
		return entry
	}
	root := gjson.Parse(trimmed)
	if !root.IsObject() {
		entry.Message = trimmed
		return entry
	}

	entry.Time = root.Get("ts").String()
	entry.Level = strings.ToUpper(root.Get("level").String())
	entry.Message = root.Get("msg").String()
	root.ForEach(func(key, value gjson.Result) bool {
		if _, ok := reservedKeys[key.String()]; !ok {
			entry.Fields = append(entry.Fields, Field{Key: key.String(), Value: value.String()})
		}
		return true
	})
	sort.SliceStable(entry.Fields, func(i, j int) bool { return entry.Fields[i].Key < entry.Fields[j].Key })
	return entry
}

// String renders the entry on a single line: "time LEVEL message k=v ...".
func (e Entry) String() string {
	if e.Level == "" && e.Time == "" {
		return e.Message
	}
	parts := make([]string, 0, 3+len(e.Fields))
	if e.Time != "" {
		parts = append(parts, shortTime(e.Time))
	}
	if e.Level != "" {
		parts = append(parts, e.Level)
	}
	if e.Message != "" {
		parts = append(parts, e.Message)
	}
	for _, f := range e.Fields {
		parts = append(parts, f.Key+"="+f.Value)
	}
	return strings.Join(parts, " ")
}

// shortTime keeps the clock portion of an ISO8601 timestamp.
func shortTime(ts string) string {
	if i := strings.IndexByte(ts, 'T'); i >= 0 && len(ts) >= i+9 {
		return ts[i+1 : i+9]
	}
	return ts
}
