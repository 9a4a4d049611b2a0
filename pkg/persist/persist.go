package persist

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/td0m/taskmaster/pkg/task"
)

// TasksKey is the key the whole task collection is stored under
const TasksKey = "todoTasks"

type Persistor interface {
	Save([]task.Task) error
	Load() ([]task.Task, error)
}

var _ Persistor = &JSON{}

// DecodeError means the stored record exists but could not be read back
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return "decode tasks: " + e.Err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

type JSON struct {
	kv  KV
	key string
}

func InJSON(kv KV) *JSON {
	return &JSON{kv: kv, key: TasksKey}
}

// Save overwrites the stored collection with ts
func (j JSON) Save(ts []task.Task) error {
	bs, err := json.Marshal(newSavable(ts))
	if err != nil {
		return err
	}
	return j.kv.Set(j.key, bs)
}

// Load reads the stored collection. Nothing stored yet means no tasks;
// a record that cannot be decoded is reported as a *DecodeError.
func (j JSON) Load() ([]task.Task, error) {
	bs, err := j.kv.Get(j.key)
	if errors.Is(err, ErrNotFound) {
		return []task.Task{}, nil
	}
	if err != nil {
		return nil, err
	}
	var ss []savable
	if err := json.Unmarshal(bs, &ss); err != nil {
		return nil, &DecodeError{Err: err}
	}
	tasks, err := load(ss)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return tasks, nil
}

type renamer interface {
	Rename(from, to string) error
}

// Quarantine moves an unreadable record aside so the next Save does not
// destroy it, and returns the key it now lives under. Earlier quarantined
// records are kept: the new key is "<key>.corrupt-<timestamp>", with a
// counter appended if that is taken too.
func (j JSON) Quarantine(now time.Time) (string, error) {
	r, ok := j.kv.(renamer)
	if !ok {
		return "", errors.New("storage cannot move records")
	}
	base := j.key + ".corrupt-" + now.UTC().Format("20060102T150405Z")
	to := base
	for i := 2; ; i++ {
		err := r.Rename(j.key, to)
		if !errors.Is(err, ErrExists) {
			return to, err
		}
		to = fmt.Sprintf("%s-%d", base, i)
	}
}
