// Package validator schema-checks a single onboarding step payload against the
// step catalog and normalizes the answer to its canonical shape.
package validator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/dtroode/sleeptracker-server/internal/model"
)

// Error describes a rejected onboarding payload. Field is the offending field
// path and Raw the input as received, kept for diagnostics.
type Error struct {
	Field   string
	Message string
	Raw     json.RawMessage
}

func (e *Error) Error() string {
	return e.Message
}

func newError(field, message string, raw json.RawMessage) *Error {
	return &Error{Field: field, Message: message, Raw: raw}
}

// ValidateStep checks that payload is a JSON object holding exactly one
// recognized step key and that its value satisfies the step's schema.
// On success it returns the step together with the normalized answer.
func ValidateStep(payload json.RawMessage) (model.Step, model.StepAnswer, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return "", nil, newError("", "onboarding data must be an object", payload)
	}

	if len(fields) != 1 {
		return "", nil, newError("", "onboarding data must contain exactly one field", payload)
	}

	for key, value := range fields {
		step := model.Step(key)
		if !step.Valid() {
			return "", nil, newError(key, fmt.Sprintf("%q is not a known onboarding field", key), payload)
		}

		answer, err := validateAnswer(step, value)
		if err != nil {
			return "", nil, err
		}
		return step, answer, nil
	}

	// unreachable: the map has exactly one entry
	return "", nil, newError("", "onboarding data must contain exactly one field", payload)
}

func validateAnswer(step model.Step, raw json.RawMessage) (model.StepAnswer, error) {
	switch step {
	case model.StepSleepHabitChange:
		return validateHabitChanges(raw)
	case model.StepSleepStruggleDurationFrom:
		return validateStruggleDuration(raw)
	case model.StepTimeToGoForSleep, model.StepTimeToWakeUp:
		return validateClockTime(step, raw)
	case model.StepTypicalSleepHours:
		return validateSleepHours(raw)
	default:
		return nil, newError(string(step), fmt.Sprintf("%q is not a known onboarding field", step), raw)
	}
}

func validateHabitChanges(raw json.RawMessage) (model.StepAnswer, error) {
	field := string(model.StepSleepHabitChange)

	var choices []string
	if err := json.Unmarshal(raw, &choices); err != nil {
		return nil, newError(field, field+" must be an array of strings", raw)
	}
	if len(choices) == 0 {
		return nil, newError(field, field+" must contain at least one option", raw)
	}

	seen := make(map[string]bool, len(choices))
	for _, choice := range choices {
		if !slices.Contains(model.SleepHabitChangeOptions, choice) {
			return nil, newError(field, fmt.Sprintf("%s contains an unknown option: %q", field, choice), raw)
		}
		if seen[choice] {
			return nil, newError(field, fmt.Sprintf("%s must not repeat an option: %q", field, choice), raw)
		}
		seen[choice] = true
	}

	return model.HabitChanges(choices), nil
}

func validateStruggleDuration(raw json.RawMessage) (model.StepAnswer, error) {
	field := string(model.StepSleepStruggleDurationFrom)

	var choice string
	if err := json.Unmarshal(raw, &choice); err != nil {
		return nil, newError(field, field+" must be a string", raw)
	}
	if !slices.Contains(model.SleepStruggleDurations, choice) {
		return nil, newError(field, fmt.Sprintf("%s must be one of %s", field, strings.Join(model.SleepStruggleDurations, ", ")), raw)
	}

	return model.StruggleDuration(choice), nil
}

func validateClockTime(step model.Step, raw json.RawMessage) (model.StepAnswer, error) {
	field := string(step)

	var value struct {
		Hour   *json.Number `json:"hour"`
		Period *string      `json:"period"`
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	dec.UseNumber()
	if err := dec.Decode(&value); err != nil {
		return nil, newError(field, field+" must be an object with hour and period", raw)
	}

	if value.Hour == nil {
		return nil, newError(field+".hour", field+".hour is required", raw)
	}
	hour, err := value.Hour.Int64()
	if err != nil || hour < model.MinClockHour || hour > model.MaxClockHour {
		return nil, newError(field+".hour",
			fmt.Sprintf("%s.hour must be an integer between %d and %d", field, model.MinClockHour, model.MaxClockHour), raw)
	}

	if value.Period == nil {
		return nil, newError(field+".period", field+".period is required", raw)
	}
	period := model.Meridiem(strings.ToUpper(*value.Period))
	if period != model.MeridiemAM && period != model.MeridiemPM {
		return nil, newError(field+".period", field+".period must be AM or PM", raw)
	}

	return model.ClockTime{Hour: int(hour), Period: period}, nil
}

func validateSleepHours(raw json.RawMessage) (model.StepAnswer, error) {
	field := string(model.StepTypicalSleepHours)

	var value json.Number
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&value); err != nil {
		return nil, newError(field, field+" must be a number", raw)
	}

	hours, err := value.Int64()
	if err != nil || hours < model.MinSleepHours || hours > model.MaxSleepHours {
		return nil, newError(field,
			fmt.Sprintf("%s must be an integer between %d and %d", field, model.MinSleepHours, model.MaxSleepHours), raw)
	}

	return model.SleepHours(hours), nil
}
