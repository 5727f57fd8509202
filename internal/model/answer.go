package model

import (
	"encoding/json"
	"fmt"
)

// StepAnswer is a validated answer for a single onboarding step. Each step has
// a dedicated variant so the stored shape stays typed end to end.
type StepAnswer interface {
	stepAnswer()
}

// HabitChanges is the answer to sleepHabitChange: one or more selected
// statements, each drawn from SleepHabitChangeOptions.
type HabitChanges []string

func (HabitChanges) stepAnswer() {}

// StruggleDuration is the answer to sleepStruggleDurationFrom: one of
// SleepStruggleDurations.
type StruggleDuration string

func (StruggleDuration) stepAnswer() {}

// Meridiem is a 12-hour clock period.
type Meridiem string

const (
	MeridiemAM Meridiem = "AM"
	MeridiemPM Meridiem = "PM"
)

// ClockTime is the answer to timeToGoForSleep and timeToWakeUp.
type ClockTime struct {
	Hour   int      `json:"hour"`
	Period Meridiem `json:"period"`
}

func (ClockTime) stepAnswer() {}

// SleepHours is the answer to typicalSleepHours.
type SleepHours int

func (SleepHours) stepAnswer() {}

// DecodeAnswer unmarshals a stored answer value into the variant that belongs
// to the given step.
func DecodeAnswer(step Step, raw json.RawMessage) (StepAnswer, error) {
	switch step {
	case StepSleepHabitChange:
		var a HabitChanges
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("failed to decode %s answer: %w", step, err)
		}
		return a, nil
	case StepSleepStruggleDurationFrom:
		var a StruggleDuration
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("failed to decode %s answer: %w", step, err)
		}
		return a, nil
	case StepTimeToGoForSleep, StepTimeToWakeUp:
		var a ClockTime
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("failed to decode %s answer: %w", step, err)
		}
		return a, nil
	case StepTypicalSleepHours:
		var a SleepHours
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("failed to decode %s answer: %w", step, err)
		}
		return a, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownStep, step)
	}
}
