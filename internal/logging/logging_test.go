package logging

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
	"github.com/td0m/taskmaster/internal/config"
)

func TestNew(t *testing.T) {
	is := is.New(t)
	var buf bytes.Buffer
	log, err := New(&config.Config{Env: config.EnvProd, LogLevel: "warn"}, &buf)
	is.NoErr(err)

	log.Info().Msg("dropped")
	is.Equal(buf.Len(), 0)

	log.Warn().Str("task_id", "a").Msg("kept")
	var line map[string]interface{}
	is.NoErr(json.Unmarshal(buf.Bytes(), &line))
	is.Equal(line["message"], "kept")
	is.Equal(line["task_id"], "a")
	is.True(line["timestamp"] != nil)
	is.True(line["pid"] != nil)
}

func TestNew_BadLevel(t *testing.T) {
	is := is.New(t)
	_, err := New(&config.Config{Env: config.EnvProd, LogLevel: "loud"}, &bytes.Buffer{})
	is.True(err != nil)
}

func TestOpenFile(t *testing.T) {
	is := is.New(t)
	f, err := OpenFile(filepath.Join(t.TempDir(), "taskmaster.log"))
	is.NoErr(err)
	is.NoErr(f.Close())
}
