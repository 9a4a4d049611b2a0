package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/td0m/taskmaster/pkg/persist"
	"github.com/td0m/taskmaster/pkg/task"
)

func main() {
	years := 10
	perDay := 30
	total := 365 * perDay * years
	dir, err := os.MkdirTemp("", "taskmaster")
	check(err)
	defer os.RemoveAll(dir)

	kv, err := persist.OpenDir(dir)
	check(err)
	p := persist.InJSON(kv)

	now := time.Now()
	priorities := []task.Priority{task.Low, task.Medium, task.High}
	tasks := make([]task.Task, total)
	for i := range tasks {
		t := task.Task{
			ID:        task.NewID(),
			Text:      randomString(40),
			Completed: i%3 == 0,
			Priority:  priorities[rand.Intn(len(priorities))],
			Notified:  i%2 == 0,
		}
		if i%2 == 0 {
			r := now.Add(time.Duration(rand.Intn(60*24*365)) * time.Minute)
			t.Reminder = &r
		}
		tasks[i] = t
	}
	writeTime := measureTime(func() {
		err := p.Save(tasks)
		check(err)
	})

	readTime := measureTime(func() {
		_, err := p.Load()
		check(err)
	})

	info, err := os.Stat(filepath.Join(dir, persist.TasksKey))
	check(err)
	fmt.Printf("Tasks: %d years, %d per day (%d total)\n", years, perDay, total)
	fmt.Printf("File size: %dMB\n", info.Size()/1024/1024)
	fmt.Printf("Write time: %dms\n", writeTime.Milliseconds())
	fmt.Printf("Read time: %dms\n", readTime.Milliseconds())
}

func check(err error) {
	if err != nil {
		panic(err)
	}
}

func measureTime(fn func()) time.Duration {
	start := time.Now()
	fn()
	return time.Since(start)
}

const letters = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789 "

func randomString(l int) string {
	b := make([]byte, l)
	for i := range b {
		b[i] = letters[rand.Intn(len(letters))]
	}
	return string(b)
}
