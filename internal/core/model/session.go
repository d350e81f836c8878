package model

import (
	"fmt"
	"time"
)

// Session is an ordered list of exercises run back-to-back.
type Session struct {
	ID        string     `yaml:"id"`
	Title     string     `yaml:"title"`
	Date      time.Time  `yaml:"date"`
	Exercises []Exercise `yaml:"exercises"`
}

// TotalSeconds sums the length of every exercise.
func (session Session) TotalSeconds() int {
	total := 0
	for _, exercise := range session.Exercises {
		total += exercise.TotalSeconds()
	}
	return total
}

// TotalTimeText formats the session length as "m:ss min".
func (session Session) TotalTimeText() string {
	seconds := session.TotalSeconds()
	return fmt.Sprintf("%d:%02d min", seconds/60, seconds%60)
}

// ExerciseCountText describes how many exercises the session holds.
func (session Session) ExerciseCountText() string {
	if len(session.Exercises) == 1 {
		return "1 exercise"
	}
	return fmt.Sprintf("%d exercises", len(session.Exercises))
}

// Validate checks every exercise in order.
func (session Session) Validate() error {
	for _, exercise := range session.Exercises {
		if err := exercise.Validate(); err != nil {
			return err
		}
	}
	return nil
}
