// Testing helpers that capture zerolog JSON output in memory so tests can
// assert on messages and structured fields.

package log

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"
)

// lockedBuffer serializes writes from concurrent goroutines.
type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func (b *lockedBuffer) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.buf.Reset()
}

// TestLogger is a Logger that captures all records in memory.
type TestLogger struct {
	*ZerologLogger
	buffer *lockedBuffer
}

// NewTestLogger creates a TestLogger with the specified minimum level.
//
// Example:
//
//	logger := log.NewTestLogger(log.LevelDebug)
//	runner := async.NewRunner(async.WithLogger(logger))
//	...
//	if !logger.ContainsField(log.TaskStateKey, log.StateCompleted) { ... }
func NewTestLogger(level Level) *TestLogger {
	buf := &lockedBuffer{}
	return &TestLogger{ZerologLogger: NewZerologLogger(buf, level), buffer: buf}
}

// Output returns everything captured so far.
func (t *TestLogger) Output() string {
	return t.buffer.String()
}

// GetLogEntries parses the captured output into one map per record.
func (t *TestLogger) GetLogEntries() ([]map[string]interface{}, error) {
	var entries []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(t.buffer.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// ContainsMessage checks if any captured record contains message.
func (t *TestLogger) ContainsMessage(message string) bool {
	return strings.Contains(t.buffer.String(), message)
}

// ContainsField checks if any captured record has key set to value.
// Numbers decode as float64.
func (t *TestLogger) ContainsField(key string, value interface{}) bool {
	entries, err := t.GetLogEntries()
	if err != nil {
		return false
	}
	for _, entry := range entries {
		if v, ok := entry[key]; ok && v == value {
			return true
		}
	}
	return false
}

// Clear clears all captured log content.
func (t *TestLogger) Clear() {
	t.buffer.Reset()
}

// TestLoggerProvider implements LoggerProvider for testing scenarios.
type TestLoggerProvider struct {
	logger *TestLogger
}

// NewTestLoggerProvider creates a provider whose loggers all write to one TestLogger.
func NewTestLoggerProvider(level Level) *TestLoggerProvider {
	return &TestLoggerProvider{logger: NewTestLogger(level)}
}

// GetLogger implements LoggerProvider.GetLogger.
func (p *TestLoggerProvider) GetLogger() Logger {
	return p.logger
}

// GetLoggerWithName implements LoggerProvider.GetLoggerWithName.
func (p *TestLoggerProvider) GetLoggerWithName(name string) Logger {
	return p.logger.With(ComponentKey, name)
}

// SetLevel implements LoggerProvider.SetLevel.
func (p *TestLoggerProvider) SetLevel(level Level) {
	p.logger.ZerologLogger = NewZerologLogger(p.logger.buffer, level)
}

// Logger returns the capturing logger.
func (p *TestLoggerProvider) Logger() *TestLogger {
	return p.logger
}
